// Package scoring ranks YouTube search results against a media target.
// It is a pure computation: no I/O, no persistence, no randomness. Raw
// candidates flow through scoring, admission, duplicate clustering, and
// selection, each stage producing a new annotated view.
package scoring

import "time"

// Target is the media item being matched: a series episode or a movie's
// extras bucket. Secondary is the network (TV) or studio (movie).
type Target struct {
	Name          string
	Secondary     string
	EpisodeTitle  string
	ReferenceDate time.Time // air date; zero = unknown
}

// Candidate is one video search result. Zero values mean the field was
// absent in the provider's response: Duration 0, Views 0, Height 0, and
// a zero UploadDate all contribute nothing to the score.
type Candidate struct {
	ID         string
	Title      string
	Channel    string
	Duration   int // seconds
	Views      int64
	UploadDate time.Time
	Height     int // vertical resolution in pixels
	URL        string
}

// Entry is one signed point contribution with a human-readable label.
type Entry struct {
	Label  string
	Points float64
}

// Breakdown is the ordered list of point contributions for one
// (Target, Candidate) pair. It is produced once and never mutated.
type Breakdown []Entry

// Total returns the arithmetic sum of all entries.
func (b Breakdown) Total() float64 {
	var sum float64
	for _, e := range b {
		sum += e.Points
	}
	return sum
}

// Scored pairs a candidate with its breakdown. Total always equals
// Breakdown.Total(); it is cached so later stages never re-sum.
type Scored struct {
	Candidate Candidate
	Breakdown Breakdown
	Total     float64
}

// Mode selects the operating profile: direct episode matching keeps at
// most one winner, extras collection keeps up to the configured cap.
type Mode int

const (
	ModeEpisode Mode = iota
	ModeExtras
)

func (m Mode) String() string {
	switch m {
	case ModeEpisode:
		return "episode"
	case ModeExtras:
		return "extras"
	default:
		return "unknown"
	}
}

// Result carries the final selection plus every scored candidate so
// callers can render per-candidate breakdowns in verbose output.
type Result struct {
	Selected []Scored
	Scored   []Scored
}
