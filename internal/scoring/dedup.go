package scoring

// Near-duplicate uploads (re-encodes, regional re-uploads, trimmed cuts)
// are common on the platform. Clustering collapses them so the same
// content is never selected twice under different titles.

// Cluster groups admitted candidates into duplicate clusters and returns
// one representative per cluster, ordered by each cluster's first
// appearance in the input. Clusters are the connected components of the
// pairwise duplicate predicate, so two titles that are each similar to a
// third land in one cluster even if they are not similar to each other.
func (e *Engine) Cluster(admitted []Scored) []Scored {
	n := len(admitted)
	if n <= 1 {
		out := make([]Scored, n)
		copy(out, admitted)
		return out
	}

	tokens := make([]map[string]struct{}, n)
	for i, s := range admitted {
		tokens[i] = dedupTokens(s.Candidate.Title, e.stopWords)
	}

	uf := newUnionFind(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if e.isDuplicate(admitted[i], admitted[j], tokens[i], tokens[j]) {
				uf.union(i, j)
			}
		}
	}

	// Pick the representative per component, keeping first-seen order.
	repByRoot := make(map[int]int, n)
	var order []int
	for i := 0; i < n; i++ {
		root := uf.find(i)
		best, seen := repByRoot[root]
		if !seen {
			repByRoot[root] = i
			order = append(order, root)
			continue
		}
		if beats(admitted[i], admitted[best]) {
			repByRoot[root] = i
		}
	}

	out := make([]Scored, 0, len(order))
	for _, root := range order {
		out = append(out, admitted[repByRoot[root]])
	}
	return out
}

// isDuplicate is the pairwise predicate: title similarity above the
// configured ratio AND duration proximity. Proximity holds when the
// durations are within the absolute tolerance or within the relative
// tolerance of the larger duration; an unknown duration cannot disprove
// duplication, so it counts as proximate.
func (e *Engine) isDuplicate(a, b Scored, aTokens, bTokens map[string]struct{}) bool {
	if jaccard(aTokens, bTokens) <= e.opts.SimilarityRatio {
		return false
	}
	da, db := a.Candidate.Duration, b.Candidate.Duration
	if da <= 0 || db <= 0 {
		return true
	}
	diff := da - db
	if diff < 0 {
		diff = -diff
	}
	if diff <= e.opts.DurationToleranceSec {
		return true
	}
	longer := da
	if db > longer {
		longer = db
	}
	return float64(diff) <= e.opts.DurationTolerancePct*float64(longer)
}

// beats reports whether a should represent a cluster over b: higher
// score, then more recent upload date (unknown dates lose), then longer
// duration.
func beats(a, b Scored) bool {
	if a.Total != b.Total {
		return a.Total > b.Total
	}
	au, bu := a.Candidate.UploadDate, b.Candidate.UploadDate
	if !au.Equal(bu) {
		if bu.IsZero() {
			return true
		}
		if au.IsZero() {
			return false
		}
		return au.After(bu)
	}
	return a.Candidate.Duration > b.Candidate.Duration
}

// unionFind is a plain disjoint-set forest with path halving.
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &unionFind{parent: parent, rank: make([]int, n)}
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if u.rank[ra] < u.rank[rb] {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
	if u.rank[ra] == u.rank[rb] {
		u.rank[ra]++
	}
}
