package scoring

import "sort"

// Select orders representatives by descending total score and truncates
// to the limit. The sort is stable, so exact ties keep the clusterer's
// order. A nil or empty input returns an empty selection, never an error.
func (e *Engine) Select(representatives []Scored, limit int) []Scored {
	out := make([]Scored, len(representatives))
	copy(out, representatives)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
