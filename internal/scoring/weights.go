package scoring

import (
	"fmt"
	"math"
)

// Weights is the tunable point table for every signal extractor. All
// values are overridable through configuration; the defaults below are
// the contract, not constants baked into the extractors.
type Weights struct {
	// Title relevance
	NameMatch      float64 `mapstructure:"name_match"`       // target name is a substring of the title
	EpisodeMatch   float64 `mapstructure:"episode_match"`    // episode title is a substring of the title
	WordOverlapMax float64 `mapstructure:"word_overlap_max"` // scaled by token intersection-over-union
	LeadingTitle   float64 `mapstructure:"leading_title"`    // another proper-noun title before the target name

	// Channel relevance
	NetworkChannel   float64 `mapstructure:"network_channel"`   // channel matches the target's network/studio
	KnownChannel     float64 `mapstructure:"known_channel"`     // channel on the known BTS-content allow-list
	UnrelatedChannel float64 `mapstructure:"unrelated_channel"` // channel on the unrelated-type deny-list

	// Content-type keywords
	PositiveKeyword float64 `mapstructure:"positive_keyword"` // per matching positive keyword
	NegativeKeyword float64 `mapstructure:"negative_keyword"` // per matching negative keyword
	BareTrailer     float64 `mapstructure:"bare_trailer"`     // trailer keyword with no positive keyword

	// Duration plausibility
	DurationInBand   float64 `mapstructure:"duration_in_band"`
	DurationTooShort float64 `mapstructure:"duration_too_short"`
	DurationTooLong  float64 `mapstructure:"duration_too_long"`

	// Popularity step function, highest matching tier wins
	Views10K  float64 `mapstructure:"views_10k"`
	Views50K  float64 `mapstructure:"views_50k"`
	Views100K float64 `mapstructure:"views_100k"`
	Views500K float64 `mapstructure:"views_500k"`
	Views1M   float64 `mapstructure:"views_1m"`

	// Upload-date proximity to the target reference date
	Recency30  float64 `mapstructure:"recency_30d"`
	Recency90  float64 `mapstructure:"recency_90d"`
	Recency365 float64 `mapstructure:"recency_365d"`

	// Resolution tier table
	Res1080   float64 `mapstructure:"res_1080"`
	Res720    float64 `mapstructure:"res_720"`
	Res480    float64 `mapstructure:"res_480"`
	ResSub360 float64 `mapstructure:"res_sub_360"`

	// Short-title bonus, scaled down as the title approaches the cutoff
	ShortTitleMax float64 `mapstructure:"short_title_max"`
}

// DefaultWeights returns the stock point table.
func DefaultWeights() Weights {
	return Weights{
		NameMatch:      50,
		EpisodeMatch:   30,
		WordOverlapMax: 30,
		LeadingTitle:   -80,

		NetworkChannel:   50,
		KnownChannel:     40,
		UnrelatedChannel: -50,

		PositiveKeyword: 15,
		NegativeKeyword: -30,
		BareTrailer:     -40,

		DurationInBand:   20,
		DurationTooShort: -50,
		DurationTooLong:  -50,

		Views10K:  2,
		Views50K:  4,
		Views100K: 6,
		Views500K: 8,
		Views1M:   10,

		Recency30:  20,
		Recency90:  10,
		Recency365: 5,

		Res1080:   15,
		Res720:    10,
		Res480:    5,
		ResSub360: -10,

		ShortTitleMax: 15,
	}
}

// Lists holds the immutable keyword and channel tables injected into the
// extractors. All entries are matched against normalized (lower-cased,
// whitespace-collapsed) text.
type Lists struct {
	PositiveKeywords  []string `mapstructure:"positive_keywords"`
	NegativeKeywords  []string `mapstructure:"negative_keywords"`
	TrailerKeywords   []string `mapstructure:"trailer_keywords"`
	KnownChannels     []string `mapstructure:"known_channels"`
	UnrelatedChannels []string `mapstructure:"unrelated_channels"`
	StopWords         []string `mapstructure:"stop_words"`
}

// DefaultLists returns the stock keyword and channel tables.
func DefaultLists() Lists {
	return Lists{
		PositiveKeywords: []string{
			"behind the scenes",
			"behind the scene",
			"bts",
			"making of",
			"making-of",
			"backstage",
			"featurette",
			"interview",
			"documentary",
			"official",
			"verified",
			"vevo",
			"exclusive",
		},
		NegativeKeywords: []string{
			"compilation",
			"playlist",
			"reaction",
			"review",
			"recap",
			"ending explained",
			"theories",
			"trailer",
			"clip",
			"parody",
		},
		TrailerKeywords: []string{
			"trailer",
			"teaser",
		},
		// Channels that specialize in BTS/press content, with the name
		// variants they publish under.
		KnownChannels: []string{
			"filmisnow",
			"rotten tomatoes",
			"rotten tomatoes tv",
			"ign",
			"entertainment weekly",
			"collider",
			"comicbook.com",
			"screen rant",
			"screenrant",
			"variety",
			"the hollywood reporter",
			"hollywood reporter",
			"deadline",
			"den of geek",
			"syfy",
			"nerdist",
			"movie trailers source",
			"joblo",
		},
		UnrelatedChannels: []string{
			"school",
			"university",
			"college",
			"museum",
			"art gallery",
			"sixth form",
			"centre",
		},
		StopWords: []string{"the", "and", "for", "with", "from"},
	}
}

// DurationBand bounds duration plausibility for one mode, in seconds.
// Durations inside [BonusMin, BonusMax] earn the in-band bonus; below
// ShortFloor or above LongCeiling they are penalized.
type DurationBand struct {
	BonusMin    int `mapstructure:"bonus_min"`
	BonusMax    int `mapstructure:"bonus_max"`
	ShortFloor  int `mapstructure:"short_floor"`
	LongCeiling int `mapstructure:"long_ceiling"`
}

// Options is the complete engine configuration: the weight table, the
// keyword/channel tables, admission thresholds, duplicate tolerances,
// and selection caps.
type Options struct {
	Weights Weights `mapstructure:"weights"`
	Lists   Lists   `mapstructure:"lists"`

	MinScoreEpisode float64 `mapstructure:"min_score_episode"`
	MinScoreExtras  float64 `mapstructure:"min_score_extras"`
	MaxExtras       int     `mapstructure:"max_extras"`

	SimilarityRatio      float64 `mapstructure:"similarity_ratio"`
	DurationToleranceSec int     `mapstructure:"duration_tolerance_sec"`
	DurationTolerancePct float64 `mapstructure:"duration_tolerance_pct"`

	EpisodeBand DurationBand `mapstructure:"episode_band"`
	ExtrasBand  DurationBand `mapstructure:"extras_band"`

	ShortTitleChars int `mapstructure:"short_title_chars"`
}

// DefaultOptions returns the stock engine configuration.
func DefaultOptions() Options {
	return Options{
		Weights: DefaultWeights(),
		Lists:   DefaultLists(),

		MinScoreEpisode: 50,
		MinScoreExtras:  65,
		MaxExtras:       20,

		SimilarityRatio:      0.80,
		DurationToleranceSec: 30,
		DurationTolerancePct: 0.10,

		// Full episodes run anywhere from a few minutes to two hours.
		EpisodeBand: DurationBand{BonusMin: 300, BonusMax: 7200, ShortFloor: 60, LongCeiling: 7200},
		// Extras are short-form: no lower bound on the bonus band.
		ExtrasBand: DurationBand{BonusMin: 0, BonusMax: 1800, ShortFloor: 45, LongCeiling: 3600},

		ShortTitleChars: 100,
	}
}

// Threshold returns the admission threshold for a mode.
func (o Options) Threshold(m Mode) float64 {
	if m == ModeEpisode {
		return o.MinScoreEpisode
	}
	return o.MinScoreExtras
}

// Cap returns the selection cap for a mode.
func (o Options) Cap(m Mode) int {
	if m == ModeEpisode {
		return 1
	}
	return o.MaxExtras
}

func (o Options) band(m Mode) DurationBand {
	if m == ModeEpisode {
		return o.EpisodeBand
	}
	return o.ExtrasBand
}

// Validate fails fast on configuration that would make scoring
// meaningless, so a bad config is distinguishable from a run that
// legitimately found nothing.
func (o Options) Validate() error {
	if math.IsNaN(o.MinScoreEpisode) || math.IsInf(o.MinScoreEpisode, 0) {
		return fmt.Errorf("min_score_episode must be a real number")
	}
	if math.IsNaN(o.MinScoreExtras) || math.IsInf(o.MinScoreExtras, 0) {
		return fmt.Errorf("min_score_extras must be a real number")
	}
	if o.SimilarityRatio < 0 || o.SimilarityRatio > 1 {
		return fmt.Errorf("similarity_ratio must be within [0, 1], got %v", o.SimilarityRatio)
	}
	if o.DurationToleranceSec < 0 {
		return fmt.Errorf("duration_tolerance_sec must be non-negative, got %d", o.DurationToleranceSec)
	}
	if o.DurationTolerancePct < 0 || o.DurationTolerancePct > 1 {
		return fmt.Errorf("duration_tolerance_pct must be within [0, 1], got %v", o.DurationTolerancePct)
	}
	if o.MaxExtras < 1 {
		return fmt.Errorf("max_extras must be at least 1, got %d", o.MaxExtras)
	}
	if o.ShortTitleChars < 1 {
		return fmt.Errorf("short_title_chars must be positive, got %d", o.ShortTitleChars)
	}
	for _, b := range []struct {
		name string
		band DurationBand
	}{{"episode_band", o.EpisodeBand}, {"extras_band", o.ExtrasBand}} {
		if b.band.BonusMin < 0 || b.band.BonusMax < b.band.BonusMin {
			return fmt.Errorf("%s bonus range is invalid", b.name)
		}
		if b.band.ShortFloor < 0 || b.band.LongCeiling < b.band.ShortFloor {
			return fmt.Errorf("%s floor/ceiling range is invalid", b.name)
		}
	}
	return nil
}
