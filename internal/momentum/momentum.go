package momentum

import (
	"math"
	"time"

	"github.com/abhisek/flashwiz/internal/progress"
)

const (
	// DefaultAccuracyWeight is the share of momentum driven by rolling accuracy.
	DefaultAccuracyWeight = 0.8

	// DefaultStreakWeight is the share of momentum driven by the day streak.
	DefaultStreakWeight = 0.2

	// DefaultStreakCap is the streak length at which the streak term saturates.
	DefaultStreakCap = 10
)

// Weights tunes the momentum formula.
type Weights struct {
	AccuracyWeight float64 `mapstructure:"accuracy_weight"`
	StreakWeight   float64 `mapstructure:"streak_weight"`
	StreakCap      int     `mapstructure:"streak_cap"`
}

// DefaultWeights returns the accuracy-dominant weighting with a capped streak bonus.
func DefaultWeights() Weights {
	return Weights{
		AccuracyWeight: DefaultAccuracyWeight,
		StreakWeight:   DefaultStreakWeight,
		StreakCap:      DefaultStreakCap,
	}
}

// Compute maps rolling accuracy and the day streak into a 0-100 momentum score.
func Compute(p progress.Progress, w Weights) int {
	accuracy := clamp(p.RollingAccuracy, 0, 100)
	score := w.AccuracyWeight*accuracy + w.StreakWeight*100*StreakFactor(p.CurrentStreak, w.StreakCap)
	return int(math.Round(clamp(score, 0, 100)))
}

// StreakFactor returns the 0-1 contribution of a streak, saturating at cap.
func StreakFactor(streak, cap int) float64 {
	if cap <= 0 || streak <= 0 {
		return 0
	}
	if streak >= cap {
		return 1
	}
	return float64(streak) / float64(cap)
}

// Apply records one answer: rolling window, day streak, the miss penalty for
// wrong answers, then a fresh momentum score. XP and level are untouched.
func Apply(p progress.Progress, isCorrect bool, now time.Time, w Weights) progress.Progress {
	out := p.Clone()

	rolling := UpdateRolling(p, isCorrect)
	out.RecentAnswers = rolling.RecentAnswers
	out.RollingAccuracy = rolling.RollingAccuracy

	streak := UpdateStreak(p, now)
	out.CurrentStreak = streak.CurrentStreak
	out.LastActiveDate = streak.LastActiveDate
	if !isCorrect {
		out.CurrentStreak = ApplyMissPenalty(out.CurrentStreak)
	}

	out.MomentumScore = Compute(out, w)
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
