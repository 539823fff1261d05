package scoring

import (
	"fmt"
	"math"
	"strings"
)

// Scheme selects how keyword, semantic and experience signals are blended.
type Scheme string

const (
	// SchemeA blends keyword ratio, semantic similarity and normalized
	// experience with fixed weights.
	SchemeA Scheme = "A"
	// SchemeB gives experience its own slot of ExperienceWeight points and
	// scales the keyword percentage into the rest.
	SchemeB Scheme = "B"
)

// Defaults for Config.
const (
	DefaultScheme               = SchemeB
	DefaultExperienceWeight     = 20.0
	DefaultPenaltyPerYear       = 5.0
	DefaultKeywordWeight        = 0.60
	DefaultSemanticWeight       = 0.35
	DefaultExperienceNormWeight = 0.05
	DefaultExperienceNormYears  = 10.0
)

type Config struct {
	Scheme Scheme `mapstructure:"scheme" json:"scheme"`
	// ExperienceWeight is the number of points out of 100 experience is worth.
	// Nil takes DefaultExperienceWeight; an explicit 0 turns the slot off.
	ExperienceWeight *float64 `mapstructure:"experience-weight" json:"experience_weight,omitempty"`
	// PenaltyPerYear is subtracted from ExperienceWeight for every missing year.
	// Nil takes DefaultPenaltyPerYear.
	PenaltyPerYear *float64 `mapstructure:"penalty-per-year" json:"penalty_per_year,omitempty"`

	KeywordWeight        float64 `mapstructure:"keyword-weight" json:"keyword_weight"`
	SemanticWeight       float64 `mapstructure:"semantic-weight" json:"semantic_weight"`
	ExperienceNormWeight float64 `mapstructure:"experience-norm-weight" json:"experience_norm_weight"`
	ExperienceNormYears  float64 `mapstructure:"experience-norm-years" json:"experience_norm_years"`
}

// DefaultConfig returns Scheme B with a 20 point experience slot and a 5 point
// penalty per missing year.
func DefaultConfig() Config {
	return Config{
		Scheme:               DefaultScheme,
		ExperienceWeight:     Float(DefaultExperienceWeight),
		PenaltyPerYear:       Float(DefaultPenaltyPerYear),
		KeywordWeight:        DefaultKeywordWeight,
		SemanticWeight:       DefaultSemanticWeight,
		ExperienceNormWeight: DefaultExperienceNormWeight,
		ExperienceNormYears:  DefaultExperienceNormYears,
	}
}

// Float returns a pointer to v, for the optional Config fields.
func Float(v float64) *float64 {
	return &v
}

// withDefaults fills unset fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if strings.TrimSpace(string(c.Scheme)) == "" {
		c.Scheme = d.Scheme
	}
	c.Scheme = Scheme(strings.ToUpper(strings.TrimSpace(string(c.Scheme))))
	if c.ExperienceWeight == nil {
		c.ExperienceWeight = d.ExperienceWeight
	}
	if c.PenaltyPerYear == nil {
		c.PenaltyPerYear = d.PenaltyPerYear
	}
	if c.KeywordWeight == 0 && c.SemanticWeight == 0 && c.ExperienceNormWeight == 0 {
		c.KeywordWeight = d.KeywordWeight
		c.SemanticWeight = d.SemanticWeight
		c.ExperienceNormWeight = d.ExperienceNormWeight
	}
	if c.ExperienceNormYears == 0 {
		c.ExperienceNormYears = d.ExperienceNormYears
	}
	return c
}

func (c Config) validate() error {
	switch c.Scheme {
	case SchemeA, SchemeB:
	default:
		return fmt.Errorf("unknown scoring scheme %q", c.Scheme)
	}
	if w := *c.ExperienceWeight; w < 0 || w > 100 || math.IsNaN(w) {
		return fmt.Errorf("experience weight must be within [0, 100], got %v", w)
	}
	if p := *c.PenaltyPerYear; p < 0 || math.IsNaN(p) {
		return fmt.Errorf("penalty per year must not be negative, got %v", p)
	}
	if c.KeywordWeight < 0 || c.SemanticWeight < 0 || c.ExperienceNormWeight < 0 {
		return fmt.Errorf("scheme A weights must not be negative")
	}
	if c.ExperienceNormYears < 0 {
		return fmt.Errorf("experience normalization years must not be negative, got %v", c.ExperienceNormYears)
	}
	return nil
}

// Breakdown is the per candidate and job score with the inputs it was built
// from, after clamping.
type Breakdown struct {
	Scheme                  Scheme  `json:"scheme"`
	KeywordRatio            float64 `json:"keyword_ratio"`
	SemanticSimilarity      float64 `json:"semantic_similarity"`
	ExperienceYears         int     `json:"experience_years"`
	RequiredExperienceYears int     `json:"required_experience_years"`
	ExperienceScore         float64 `json:"experience_score"`
	FinalPercentage         float64 `json:"final_percentage"`
}

// Scorer turns match signals into a final percentage. It is immutable and safe
// for concurrent use.
type Scorer struct {
	cfg Config

	experienceWeight float64
	penaltyPerYear   float64
}

// New validates cfg and returns a Scorer. Unset fields take their defaults.
func New(cfg Config) (*Scorer, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Scorer{
		cfg:              cfg,
		experienceWeight: *cfg.ExperienceWeight,
		penaltyPerYear:   *cfg.PenaltyPerYear,
	}, nil
}

// Config returns the effective configuration. Both optional fields are set.
func (s *Scorer) Config() Config {
	cfg := s.cfg
	cfg.ExperienceWeight = Float(s.experienceWeight)
	cfg.PenaltyPerYear = Float(s.penaltyPerYear)
	return cfg
}

// ExperienceWeight returns the effective experience slot size.
func (s *Scorer) ExperienceWeight() float64 {
	return s.experienceWeight
}

// ExperienceScore returns the experience slot value: the full weight when
// nothing is required or the requirement is met, otherwise the weight less
// PenaltyPerYear for each missing year, never below zero. Negative years count
// as zero.
func (s *Scorer) ExperienceScore(years, required int) float64 {
	if years < 0 {
		years = 0
	}
	if required <= 0 || years >= required {
		return s.experienceWeight
	}
	shortfall := float64(required - years)
	return math.Max(0, s.experienceWeight-s.penaltyPerYear*shortfall)
}

// Score combines the keyword ratio and semantic similarity, both in [0, 1],
// with experience. Out of range and NaN inputs are clamped first. The final
// percentage is clamped to [0, 100] and rounded to two decimals.
func (s *Scorer) Score(keywordRatio, semanticSimilarity float64, experienceYears, requiredYears int) Breakdown {
	if experienceYears < 0 {
		experienceYears = 0
	}

	b := Breakdown{
		Scheme:                  s.cfg.Scheme,
		KeywordRatio:            Clamp01(keywordRatio),
		SemanticSimilarity:      Clamp01(semanticSimilarity),
		ExperienceYears:         experienceYears,
		RequiredExperienceYears: requiredYears,
		ExperienceScore:         s.ExperienceScore(experienceYears, requiredYears),
	}

	var final float64
	switch s.cfg.Scheme {
	case SchemeA:
		norm := 1.0
		if s.cfg.ExperienceNormYears > 0 {
			norm = math.Min(float64(experienceYears)/s.cfg.ExperienceNormYears, 1)
		}
		blend := s.cfg.KeywordWeight*b.KeywordRatio +
			s.cfg.SemanticWeight*b.SemanticSimilarity +
			s.cfg.ExperienceNormWeight*norm
		final = Clamp01(blend) * 100
	default:
		keyword := math.Min(b.KeywordRatio*100, 100)
		final = keyword*(100-s.experienceWeight)/100 + b.ExperienceScore
	}

	b.FinalPercentage = Round2(clamp(final, 0, 100))
	return b
}

// Clamp01 clamps v into [0, 1]; NaN becomes 0.
func Clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
