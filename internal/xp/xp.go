// Package xp computes experience points earned per battle answer.
package xp

import (
	"math"

	"github.com/abhisek/flashwiz/internal/challenge"
	"github.com/abhisek/flashwiz/internal/progress"
	"github.com/abhisek/flashwiz/internal/rarity"
)

// Table holds the XP tuning constants.
type Table struct {
	TierBase map[rarity.Tier]int `mapstructure:"tier_base"`

	// AtkDivisor converts card ATK into bonus XP (atk/AtkDivisor).
	AtkDivisor int `mapstructure:"atk_divisor"`

	// MomentumBonus is the multiplier bonus at momentum 100.
	MomentumBonus float64 `mapstructure:"momentum_bonus"`

	// TextBonus is the extra share awarded for free-text challenges.
	TextBonus float64 `mapstructure:"text_bonus"`
}

// DefaultTable returns the tuned defaults.
func DefaultTable() Table {
	return Table{
		TierBase: map[rarity.Tier]int{
			rarity.Common:    10,
			rarity.Rare:      15,
			rarity.Epic:      25,
			rarity.Legendary: 40,
		},
		AtkDivisor:    5,
		MomentumBonus: 0.5,
		TextBonus:     0.15,
	}
}

// Compute returns the XP for one answer. Incorrect answers earn nothing.
func (t Table) Compute(tier rarity.Tier, momentum int, isCorrect bool, atk int) int {
	if !isCorrect {
		return 0
	}
	m := math.Max(0, math.Min(100, float64(momentum)))
	bonus := 0
	if t.AtkDivisor > 0 && atk > 0 {
		bonus = atk / t.AtkDivisor
	}
	base := float64(t.TierBase[tier] + bonus)
	return int(math.Round(base * (1 + t.MomentumBonus*m/100)))
}

// ApplyChallengeBonus adds the free-text bonus to xp. Other types are unchanged.
func (t Table) ApplyChallengeBonus(xp int, ct challenge.Type) int {
	if ct != challenge.TypeText || xp <= 0 {
		return xp
	}
	return int(math.Round(float64(xp) * (1 + t.TextBonus)))
}

// Compute uses DefaultTable.
func Compute(tier rarity.Tier, momentum int, isCorrect bool, atk int) int {
	return DefaultTable().Compute(tier, momentum, isCorrect, atk)
}

// ApplyChallengeBonus uses DefaultTable.
func ApplyChallengeBonus(xp int, ct challenge.Type) int {
	return DefaultTable().ApplyChallengeBonus(xp, ct)
}

// Level returns the level reached with total xp.
func Level(xp int) int {
	return progress.LevelFor(xp)
}
