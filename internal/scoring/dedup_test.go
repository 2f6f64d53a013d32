package scoring

import (
	"testing"
	"time"
)

func scoredItem(id, title string, total float64, duration int, upload time.Time) Scored {
	return Scored{
		Candidate: Candidate{ID: id, Title: title, Duration: duration, UploadDate: upload},
		Total:     total,
	}
}

func selectedIDs(items []Scored) []string {
	ids := make([]string, len(items))
	for i, s := range items {
		ids[i] = s.Candidate.ID
	}
	return ids
}

func TestClusterTransitiveClosure(t *testing.T) {
	e := testEngine(t)
	// a~b and b~c by the predicate, but a and c differ too much to match
	// directly. All three must still collapse into one cluster.
	a := scoredItem("a", "alpha beta gamma delta epsilon zeta eta theta iota kappa", 90, 600, time.Time{})
	b := scoredItem("b", "alpha beta gamma delta epsilon zeta eta theta iota lambda", 80, 600, time.Time{})
	c := scoredItem("c", "alpha beta gamma delta epsilon zeta eta theta sigma lambda", 70, 600, time.Time{})

	reps := e.Cluster([]Scored{a, b, c})
	if len(reps) != 1 {
		t.Fatalf("expected one cluster, got representatives %v", selectedIDs(reps))
	}
	if reps[0].Candidate.ID != "a" {
		t.Errorf("representative = %q, want the max-score member %q", reps[0].Candidate.ID, "a")
	}
}

func TestClusterPredicateRequiresBothSignals(t *testing.T) {
	e := testEngine(t)
	title := "alpha beta gamma delta epsilon zeta eta theta iota kappa"

	t.Run("similar titles, far-apart durations stay separate", func(t *testing.T) {
		a := scoredItem("a", title, 90, 600, time.Time{})
		b := scoredItem("b", title, 80, 1200, time.Time{})
		if reps := e.Cluster([]Scored{a, b}); len(reps) != 2 {
			t.Errorf("expected two clusters, got %v", selectedIDs(reps))
		}
	})

	t.Run("close durations, dissimilar titles stay separate", func(t *testing.T) {
		a := scoredItem("a", title, 90, 600, time.Time{})
		b := scoredItem("b", "totally different words entirely unlike those", 80, 610, time.Time{})
		if reps := e.Cluster([]Scored{a, b}); len(reps) != 2 {
			t.Errorf("expected two clusters, got %v", selectedIDs(reps))
		}
	})

	t.Run("absolute tolerance suffices", func(t *testing.T) {
		a := scoredItem("a", title, 90, 600, time.Time{})
		b := scoredItem("b", title, 80, 628, time.Time{})
		if reps := e.Cluster([]Scored{a, b}); len(reps) != 1 {
			t.Errorf("expected one cluster, got %v", selectedIDs(reps))
		}
	})

	t.Run("relative tolerance suffices for long videos", func(t *testing.T) {
		// 3500 vs 3600: 100 s apart (over the 30 s absolute tolerance)
		// but within 10% of the larger duration.
		a := scoredItem("a", title, 90, 3500, time.Time{})
		b := scoredItem("b", title, 80, 3600, time.Time{})
		if reps := e.Cluster([]Scored{a, b}); len(reps) != 1 {
			t.Errorf("expected one cluster, got %v", selectedIDs(reps))
		}
	})

	t.Run("unknown duration cannot disprove duplication", func(t *testing.T) {
		a := scoredItem("a", title, 90, 0, time.Time{})
		b := scoredItem("b", title, 80, 3600, time.Time{})
		if reps := e.Cluster([]Scored{a, b}); len(reps) != 1 {
			t.Errorf("expected one cluster, got %v", selectedIDs(reps))
		}
	})
}

func TestClusterRepresentativeTieBreaks(t *testing.T) {
	e := testEngine(t)
	title := "alpha beta gamma delta epsilon zeta eta theta iota kappa"
	newer := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	older := time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		items  []Scored
		wantID string
	}{
		{
			name: "highest score wins",
			items: []Scored{
				scoredItem("low", title, 70, 600, newer),
				scoredItem("high", title, 95, 600, older),
			},
			wantID: "high",
		},
		{
			name: "score tie broken by newer upload",
			items: []Scored{
				scoredItem("old", title, 80, 600, older),
				scoredItem("new", title, 80, 600, newer),
			},
			wantID: "new",
		},
		{
			name: "unknown upload date loses the tie",
			items: []Scored{
				scoredItem("undated", title, 80, 600, time.Time{}),
				scoredItem("dated", title, 80, 600, older),
			},
			wantID: "dated",
		},
		{
			name: "full tie broken by longer duration",
			items: []Scored{
				scoredItem("short", title, 80, 600, newer),
				scoredItem("long", title, 80, 620, newer),
			},
			wantID: "long",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reps := e.Cluster(tt.items)
			if len(reps) != 1 {
				t.Fatalf("expected one cluster, got %v", selectedIDs(reps))
			}
			if reps[0].Candidate.ID != tt.wantID {
				t.Errorf("representative = %q, want %q", reps[0].Candidate.ID, tt.wantID)
			}
		})
	}
}

func TestClusterPreservesOrderAcrossClusters(t *testing.T) {
	e := testEngine(t)
	a := scoredItem("a", "alpha beta gamma delta epsilon zeta eta theta", 90, 600, time.Time{})
	b := scoredItem("b", "completely unrelated wording about other things", 85, 300, time.Time{})
	c := scoredItem("c", "alpha beta gamma delta epsilon zeta eta theta", 80, 610, time.Time{})

	reps := e.Cluster([]Scored{a, b, c})
	got := selectedIDs(reps)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("representatives = %v, want [a b] in first-seen order", got)
	}
}
