package battle

import (
	"time"

	"github.com/abhisek/flashwiz/internal/momentum"
	"github.com/abhisek/flashwiz/internal/rarity"
)

// TierResult tracks per-rarity results for the summary screen.
type TierResult struct {
	Tier    rarity.Tier
	Seen    int
	Correct int
	XP      int
}

// Summary holds the data displayed on the result screen.
type Summary struct {
	BattleID      string
	DeckID        string
	TotalCards    int
	Answered      int
	Correct       int
	Accuracy      float64
	TotalXP       int
	LevelBefore   int
	LevelAfter    int
	MomentumStart int
	MomentumEnd   int
	StateStart    momentum.State
	StateEnd      momentum.State
	Duration      time.Duration
	Skipped       int
	Tiers         []TierResult
}

// LeveledUp reports whether the battle crossed a level boundary.
func (s *Summary) LeveledUp() bool {
	return s.LevelAfter > s.LevelBefore
}

func buildSummary(s *Session) *Summary {
	byTier := make(map[rarity.Tier]*TierResult)
	for _, r := range s.results {
		tr := byTier[r.Instance.Tier]
		if tr == nil {
			tr = &TierResult{Tier: r.Instance.Tier}
			byTier[r.Instance.Tier] = tr
		}
		tr.Seen++
		tr.XP += r.XPEarned
		if r.Correct {
			tr.Correct++
		}
	}

	var tiers []TierResult
	for _, t := range rarity.AllTiers() {
		if tr, ok := byTier[t]; ok {
			tiers = append(tiers, *tr)
		}
	}

	var accuracy float64
	if len(s.results) > 0 {
		accuracy = float64(s.correct) / float64(len(s.results))
	}

	var duration time.Duration
	if !s.startedAt.IsZero() {
		duration = s.now().Sub(s.startedAt)
	}

	return &Summary{
		BattleID:      s.battleID,
		DeckID:        s.deckID,
		TotalCards:    len(s.queue),
		Answered:      len(s.results),
		Correct:       s.correct,
		Accuracy:      accuracy,
		TotalXP:       s.totalXP,
		LevelBefore:   s.startProgress.Level,
		LevelAfter:    s.progress.Level,
		MomentumStart: s.startProgress.MomentumScore,
		MomentumEnd:   s.progress.MomentumScore,
		StateStart:    momentum.StateFor(s.startProgress.MomentumScore),
		StateEnd:      momentum.StateFor(s.progress.MomentumScore),
		Duration:      duration,
		Skipped:       len(s.skipped),
		Tiers:         tiers,
	}
}
