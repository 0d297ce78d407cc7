package momentum

import (
	"time"

	"github.com/abhisek/flashwiz/internal/progress"
)

// Streak is the result of recording activity for a calendar day.
type Streak struct {
	CurrentStreak  int
	LastActiveDate string
}

// UpdateStreak records activity on the local calendar day of now.
//
// Same day as LastActiveDate: unchanged. The following day: +1. Any other gap,
// or no usable previous date: reset to 1. LastActiveDate is always set to
// today. Correctness plays no part here; see ApplyMissPenalty.
func UpdateStreak(p progress.Progress, now time.Time) Streak {
	loc := now.Location()
	today := startOfDay(now)
	todayStr := today.Format(progress.DateLayout)

	last, ok := p.LastActive(loc)
	if !ok {
		return Streak{CurrentStreak: 1, LastActiveDate: todayStr}
	}

	switch {
	case last.Equal(today):
		return Streak{CurrentStreak: p.CurrentStreak, LastActiveDate: todayStr}
	case last.Equal(today.AddDate(0, 0, -1)):
		return Streak{CurrentStreak: p.CurrentStreak + 1, LastActiveDate: todayStr}
	default:
		return Streak{CurrentStreak: 1, LastActiveDate: todayStr}
	}
}

// ApplyMissPenalty is the per-miss streak decrement applied after UpdateStreak
// when an answer is wrong. Never goes below zero.
func ApplyMissPenalty(streak int) int {
	if streak <= 1 {
		return 0
	}
	return streak - 1
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
