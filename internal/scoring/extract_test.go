package scoring

import (
	"math"
	"testing"
	"time"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultOptions())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func entryPoints(b Breakdown, label string) (float64, bool) {
	for _, e := range b {
		if e.Label == label {
			return e.Points, true
		}
	}
	return 0, false
}

func TestTitleRelevance(t *testing.T) {
	e := testEngine(t)
	target := Target{Name: "Breaking Bad", EpisodeTitle: "Pilot"}

	tests := []struct {
		name       string
		title      string
		wantLabels []string
		skipLabels []string
	}{
		{
			name:       "name and episode present",
			title:      "Breaking Bad: Pilot - Full Episode",
			wantLabels: []string{"name match", "episode title match", "word overlap"},
			skipLabels: []string{"foreign title before name"},
		},
		{
			name:       "foreign title ahead of the name",
			title:      "Wrong Turn Six Meets Breaking Bad",
			wantLabels: []string{"name match", "foreign title before name"},
		},
		{
			name:       "whitespace run inside the name still draws the penalty",
			title:      "Wrong Turn Six Meets Breaking  Bad",
			wantLabels: []string{"name match", "foreign title before name"},
		},
		{
			name:       "single lowercase word ahead is not a title",
			title:      "the Breaking Bad retrospective",
			skipLabels: []string{"foreign title before name"},
		},
		{
			name:       "name absent",
			title:      "Better Call Saul Season 1",
			skipLabels: []string{"name match", "episode title match"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := e.Score(target, Candidate{Title: tt.title}, ModeExtras)
			for _, label := range tt.wantLabels {
				if _, ok := entryPoints(s.Breakdown, label); !ok {
					t.Errorf("breakdown %v missing %q", s.Breakdown, label)
				}
			}
			for _, label := range tt.skipLabels {
				if _, ok := entryPoints(s.Breakdown, label); ok {
					t.Errorf("breakdown %v should not contain %q", s.Breakdown, label)
				}
			}
		})
	}
}

func TestWordOverlapIsIntersectionOverUnion(t *testing.T) {
	e := testEngine(t)
	s := e.Score(Target{Name: "Breaking Bad"}, Candidate{Title: "Breaking Bad Pilot Scene Compilation"}, ModeExtras)
	// |{breaking,bad}| / |{breaking,bad,pilot,scene,compilation}| = 2/5
	got, ok := entryPoints(s.Breakdown, "word overlap")
	if !ok {
		t.Fatal("word overlap entry missing")
	}
	want := 2.0 / 5.0 * DefaultWeights().WordOverlapMax
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("word overlap = %v, want %v", got, want)
	}
}

func TestChannelRelevance(t *testing.T) {
	e := testEngine(t)

	tests := []struct {
		name      string
		target    Target
		channel   string
		wantLabel string
	}{
		{"network substring", Target{Name: "Foundation", Secondary: "Apple TV+"}, "Apple TV", "network channel match"},
		{"network abbreviation", Target{Name: "Top Gear", Secondary: "BBC"}, "BBC Studios", "network channel match"},
		{"known BTS channel", Target{Name: "Dune"}, "Rotten Tomatoes TV", "known channel"},
		{"unrelated channel type", Target{Name: "Foundation"}, "Durham Sixth Form Centre", "unrelated channel type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := e.Score(tt.target, Candidate{Title: "x", Channel: tt.channel}, ModeExtras)
			if _, ok := entryPoints(s.Breakdown, tt.wantLabel); !ok {
				t.Errorf("breakdown %v missing %q", s.Breakdown, tt.wantLabel)
			}
		})
	}
}

func TestContentKeywords(t *testing.T) {
	e := testEngine(t)
	w := DefaultWeights()

	t.Run("each positive keyword contributes independently", func(t *testing.T) {
		s := e.Score(Target{Name: "Dune"}, Candidate{Title: "Dune official featurette interview"}, ModeExtras)
		var positives int
		for _, en := range s.Breakdown {
			if en.Points == w.PositiveKeyword {
				positives++
			}
		}
		if positives != 3 {
			t.Errorf("got %d positive keyword entries, want 3 (%v)", positives, s.Breakdown)
		}
	})

	t.Run("bare trailer is penalized extra", func(t *testing.T) {
		s := e.Score(Target{Name: "Dune"}, Candidate{Title: "Dune trailer"}, ModeExtras)
		if _, ok := entryPoints(s.Breakdown, "trailer without extras content"); !ok {
			t.Errorf("expected bare trailer penalty in %v", s.Breakdown)
		}
	})

	t.Run("trailer with BTS wording avoids the extra penalty", func(t *testing.T) {
		s := e.Score(Target{Name: "Dune"}, Candidate{Title: "Dune trailer breakdown featurette"}, ModeExtras)
		if _, ok := entryPoints(s.Breakdown, "trailer without extras content"); ok {
			t.Errorf("unexpected bare trailer penalty in %v", s.Breakdown)
		}
		// "trailer" still draws its regular negative keyword penalty.
		if pts, ok := entryPoints(s.Breakdown, `keyword "trailer"`); !ok || pts != w.NegativeKeyword {
			t.Errorf("expected trailer keyword penalty, got %v", s.Breakdown)
		}
	})
}

func TestDurationPlausibility(t *testing.T) {
	e := testEngine(t)

	tests := []struct {
		name      string
		mode      Mode
		duration  int
		wantLabel string
	}{
		{"episode in band", ModeEpisode, 47 * 60, "duration in band"},
		{"episode clip-length", ModeEpisode, 30, "duration too short"},
		{"episode compilation-length", ModeEpisode, 3 * 3600, "duration too long"},
		{"extras short-form in band", ModeExtras, 240, "duration in band"},
		{"extras over ceiling", ModeExtras, 2 * 3600, "duration too long"},
		{"unknown duration contributes nothing", ModeExtras, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := e.Score(Target{Name: "x"}, Candidate{Title: "y", Duration: tt.duration}, tt.mode)
			for _, label := range []string{"duration in band", "duration too short", "duration too long"} {
				_, ok := entryPoints(s.Breakdown, label)
				if label == tt.wantLabel && !ok {
					t.Errorf("missing %q in %v", label, s.Breakdown)
				}
				if label != tt.wantLabel && ok {
					t.Errorf("unexpected %q in %v", label, s.Breakdown)
				}
			}
		})
	}
}

func TestPopularitySteps(t *testing.T) {
	e := testEngine(t)
	w := DefaultWeights()

	tests := []struct {
		views int64
		want  float64
	}{
		{0, 0},
		{9_999, 0},
		{10_000, w.Views10K},
		{50_000, w.Views50K},
		{150_000, w.Views100K},
		{500_000, w.Views500K},
		{3_500_000, w.Views1M},
	}
	var prev float64
	for _, tt := range tests {
		s := e.Score(Target{Name: "x"}, Candidate{Title: "y", Views: tt.views}, ModeExtras)
		got, _ := entryPoints(s.Breakdown, "view count")
		if got != tt.want {
			t.Errorf("views %d: got %v, want %v", tt.views, got, tt.want)
		}
		if got < prev {
			t.Errorf("views %d: step function not monotonic (%v < %v)", tt.views, got, prev)
		}
		prev = got
	}
}

func TestRecencySteps(t *testing.T) {
	e := testEngine(t)
	w := DefaultWeights()
	ref := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		target Target
		upload time.Time
		want   float64
	}{
		{"within 30 days", Target{Name: "x", ReferenceDate: ref}, ref.AddDate(0, 0, 14), w.Recency30},
		{"uploaded before air date", Target{Name: "x", ReferenceDate: ref}, ref.AddDate(0, 0, -14), w.Recency30},
		{"within 90 days", Target{Name: "x", ReferenceDate: ref}, ref.AddDate(0, 0, 60), w.Recency90},
		{"within a year", Target{Name: "x", ReferenceDate: ref}, ref.AddDate(0, 6, 0), w.Recency365},
		{"over a year", Target{Name: "x", ReferenceDate: ref}, ref.AddDate(2, 0, 0), 0},
		{"unknown upload date", Target{Name: "x", ReferenceDate: ref}, time.Time{}, 0},
		{"unknown reference date", Target{Name: "x"}, ref, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := e.Score(tt.target, Candidate{Title: "y", UploadDate: tt.upload}, ModeExtras)
			var got float64
			for _, en := range s.Breakdown {
				if en.Points == w.Recency30 || en.Points == w.Recency90 || en.Points == w.Recency365 {
					got = en.Points
				}
			}
			if got != tt.want {
				t.Errorf("got %v, want %v (%v)", got, tt.want, s.Breakdown)
			}
		})
	}
}

func TestResolutionTiers(t *testing.T) {
	e := testEngine(t)
	w := DefaultWeights()

	tests := []struct {
		height int
		want   float64
	}{
		{2160, w.Res1080},
		{1080, w.Res1080},
		{720, w.Res720},
		{480, w.Res480},
		{400, 0},
		{240, w.ResSub360},
		{0, 0},
	}
	for _, tt := range tests {
		s := e.Score(Target{Name: "x"}, Candidate{Title: "y", Height: tt.height}, ModeExtras)
		var got float64
		for _, en := range s.Breakdown {
			if len(en.Label) >= 10 && en.Label[:10] == "resolution" {
				got = en.Points
			}
		}
		if got != tt.want {
			t.Errorf("height %d: got %v, want %v", tt.height, got, tt.want)
		}
	}
}

func TestShortTitleBonus(t *testing.T) {
	e := testEngine(t)

	short := e.Score(Target{Name: "x"}, Candidate{Title: "Dune featurette"}, ModeExtras)
	long := e.Score(Target{Name: "x"}, Candidate{Title: "Dune featurette " +
		"with every single deleted scene, cast reaction, table read and panel from the press tour"}, ModeExtras)

	shortPts, ok := entryPoints(short.Breakdown, "short title")
	if !ok || shortPts <= 0 {
		t.Errorf("short title should earn a bonus, got %v", short.Breakdown)
	}
	if _, ok := entryPoints(long.Breakdown, "short title"); ok {
		t.Errorf("long title should not earn the bonus, got %v", long.Breakdown)
	}
}
