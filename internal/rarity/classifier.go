package rarity

import (
	"errors"
	"math"
)

// Stats are the battle stats shown on a card instance.
type Stats struct {
	Atk int `mapstructure:"atk"`
	Def int `mapstructure:"def"`
}

// Thresholds holds every tunable constant of the classifier.
type Thresholds struct {
	// Minimum score for each tier above common.
	Rare      float64 `mapstructure:"rare"`
	Epic      float64 `mapstructure:"epic"`
	Legendary float64 `mapstructure:"legendary"`

	// Length heuristic used when a source has no complexity score.
	AnswerRunesCap int     `mapstructure:"answer_runes_cap"`
	PromptRunesCap int     `mapstructure:"prompt_runes_cap"`
	AnswerWeight   float64 `mapstructure:"answer_weight"`
	PromptWeight   float64 `mapstructure:"prompt_weight"`

	NoveltyBonus float64 `mapstructure:"novelty_bonus"`
	MomentumBias float64 `mapstructure:"momentum_bias"`

	BaseStats map[Tier]Stats `mapstructure:"base_stats"`
	AtkScale  float64        `mapstructure:"atk_scale"`
	DefScale  float64        `mapstructure:"def_scale"`
}

// DefaultThresholds returns the tuned defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Rare:           0.35,
		Epic:           0.60,
		Legendary:      0.85,
		AnswerRunesCap: 24,
		PromptRunesCap: 120,
		AnswerWeight:   0.6,
		PromptWeight:   0.4,
		NoveltyBonus:   0.10,
		MomentumBias:   0.15,
		BaseStats: map[Tier]Stats{
			Common:    {Atk: 10, Def: 8},
			Rare:      {Atk: 16, Def: 12},
			Epic:      {Atk: 24, Def: 18},
			Legendary: {Atk: 34, Def: 26},
		},
		AtkScale: 6,
		DefScale: 4,
	}
}

// Validate checks that the tier cut-offs are ordered and inside (0,1].
func (t Thresholds) Validate() error {
	if !(0 < t.Rare && t.Rare < t.Epic && t.Epic < t.Legendary && t.Legendary <= 1) {
		return errors.New("rarity thresholds must satisfy 0 < rare < epic < legendary <= 1")
	}
	if t.AnswerRunesCap <= 0 || t.PromptRunesCap <= 0 {
		return errors.New("rarity rune caps must be positive")
	}
	for _, tier := range AllTiers() {
		if _, ok := t.BaseStats[tier]; !ok {
			return errors.New("rarity base stats missing tier " + string(tier))
		}
	}
	return nil
}

// Input is what the classifier needs to know about a source.
type Input struct {
	// Complexity is the authored difficulty in [0,1]; nil means unknown.
	Complexity  *float64
	PromptRunes int
	AnswerRunes int
	ReviewCount int
	HasSRS      bool
}

// Result is the classification of one source for one battle.
type Result struct {
	Tier  Tier
	Score float64
	Atk   int
	Def   int
}

// Classifier assigns rarity tiers and stats. It is deterministic.
type Classifier struct {
	Thresholds Thresholds
}

// NewClassifier creates a classifier with the given thresholds.
func NewClassifier(t Thresholds) *Classifier {
	return &Classifier{Thresholds: t}
}

// Classify scores in and maps the score to a tier and stats. Higher momentum
// pushes cards toward harder tiers.
func (c *Classifier) Classify(in Input, momentum int) Result {
	score := c.Score(in, momentum)
	tier := c.TierFor(score)
	base := c.Thresholds.BaseStats[tier]
	return Result{
		Tier:  tier,
		Score: score,
		Atk:   base.Atk + int(math.Round(c.Thresholds.AtkScale*score)),
		Def:   base.Def + int(math.Round(c.Thresholds.DefScale*score)),
	}
}

// Score returns the clamped [0,1] difficulty score.
func (c *Classifier) Score(in Input, momentum int) float64 {
	t := c.Thresholds

	var base float64
	if in.Complexity != nil {
		base = clamp01(*in.Complexity)
	} else {
		answer := math.Min(float64(in.AnswerRunes)/float64(t.AnswerRunesCap), 1)
		prompt := math.Min(float64(in.PromptRunes)/float64(t.PromptRunesCap), 1)
		base = t.AnswerWeight*answer + t.PromptWeight*prompt
	}

	if in.HasSRS && in.ReviewCount == 0 {
		base += t.NoveltyBonus
	}

	m := math.Max(0, math.Min(100, float64(momentum)))
	base += t.MomentumBias * (m - 50) / 50

	return clamp01(base)
}

// TierFor maps a score to a tier using the thresholds.
func (c *Classifier) TierFor(score float64) Tier {
	switch {
	case score >= c.Thresholds.Legendary:
		return Legendary
	case score >= c.Thresholds.Epic:
		return Epic
	case score >= c.Thresholds.Rare:
		return Rare
	default:
		return Common
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
