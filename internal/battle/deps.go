package battle

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/abhisek/flashwiz/internal/cards"
	"github.com/abhisek/flashwiz/internal/progress"
	"github.com/abhisek/flashwiz/internal/srs"
	"github.com/abhisek/flashwiz/internal/store"
)

// ProgressStore loads and saves the per-user progress document.
type ProgressStore interface {
	// LoadProgress returns the stored progress, creating it with defaults
	// when the user has none.
	LoadProgress(ctx context.Context, userID string) (progress.Progress, error)

	// SaveProgress upserts the progress document.
	SaveProgress(ctx context.Context, userID string, p progress.Progress) error
}

// CardPool provides the cards and concepts eligible for a battle.
type CardPool interface {
	ReviewableSources(ctx context.Context, deckID string) ([]cards.Source, error)
}

// SRSSink receives spaced-repetition writebacks for deck cards.
type SRSSink interface {
	WriteSRS(ctx context.Context, cardID string, u srs.Update) error
}

// EventRecorder appends battle history. Optional.
type EventRecorder interface {
	AppendAnswer(ctx context.Context, data store.AnswerEventData) error
	AppendBattle(ctx context.Context, data store.BattleEventData) error
}

// Rand is the random source used for card and distractor selection.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a seeded random source. The same seed always produces the
// same battles for the same pool and progress.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewTimeRand returns a random source seeded from the clock.
func NewTimeRand() *rand.Rand {
	return NewRand(uint64(time.Now().UnixNano()))
}
