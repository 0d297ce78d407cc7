package battle

import (
	"errors"
	"fmt"

	"github.com/abhisek/flashwiz/internal/momentum"
	"github.com/abhisek/flashwiz/internal/rarity"
	"github.com/abhisek/flashwiz/internal/xp"
)

const (
	// DefaultBattleSize is the number of cards in a battle.
	DefaultBattleSize = 5

	// DefaultMCQRatio is the chance a non-legendary card becomes multiple choice.
	DefaultMCQRatio = 0.5

	// MinDistractors is the fewest wrong options a multiple choice card needs.
	MinDistractors = 3

	// MaxDistractors is the most wrong options shown with a multiple choice card.
	MaxDistractors = 3
)

// Config controls battle generation.
type Config struct {
	BattleSize     int     `mapstructure:"battle_size"`
	MCQRatio       float64 `mapstructure:"mcq_ratio"`
	MinDistractors int     `mapstructure:"min_distractors"`
	MaxDistractors int     `mapstructure:"max_distractors"`
}

// DefaultConfig returns sensible defaults for battle generation.
func DefaultConfig() Config {
	return Config{
		BattleSize:     DefaultBattleSize,
		MCQRatio:       DefaultMCQRatio,
		MinDistractors: MinDistractors,
		MaxDistractors: MaxDistractors,
	}
}

// Validate checks the configuration for impossible values.
func (c Config) Validate() error {
	if c.BattleSize <= 0 {
		return fmt.Errorf("battle size must be positive, got %d", c.BattleSize)
	}
	if c.MCQRatio < 0 || c.MCQRatio > 1 {
		return fmt.Errorf("mcq ratio must be within [0,1], got %v", c.MCQRatio)
	}
	if c.MinDistractors < 1 || c.MaxDistractors < c.MinDistractors {
		return errors.New("distractor bounds must satisfy 1 <= min <= max")
	}
	return nil
}

// Tuning groups every product-tuned constant used during a battle.
type Tuning struct {
	Battle   Config            `mapstructure:"battle"`
	Rarity   rarity.Thresholds `mapstructure:"rarity"`
	Momentum momentum.Weights  `mapstructure:"momentum"`
	XP       xp.Table          `mapstructure:"xp"`
}

// DefaultTuning returns the defaults of every package.
func DefaultTuning() Tuning {
	return Tuning{
		Battle:   DefaultConfig(),
		Rarity:   rarity.DefaultThresholds(),
		Momentum: momentum.DefaultWeights(),
		XP:       xp.DefaultTable(),
	}
}

// Validate checks every section.
func (t Tuning) Validate() error {
	if err := t.Battle.Validate(); err != nil {
		return fmt.Errorf("battle: %w", err)
	}
	if err := t.Rarity.Validate(); err != nil {
		return fmt.Errorf("rarity: %w", err)
	}
	if t.Momentum.StreakCap <= 0 {
		return errors.New("momentum: streak cap must be positive")
	}
	if t.Momentum.AccuracyWeight < 0 || t.Momentum.StreakWeight < 0 {
		return errors.New("momentum: weights must be non-negative")
	}
	for _, tier := range rarity.AllTiers() {
		if _, ok := t.XP.TierBase[tier]; !ok {
			return fmt.Errorf("xp: missing base for tier %s", tier)
		}
	}
	return nil
}
