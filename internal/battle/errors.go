package battle

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPool is returned when a deck has no usable cards or concepts.
	ErrEmptyPool = errors.New("no reviewable cards in deck")

	// ErrNotInBattle is returned by battle operations outside the battle phase.
	ErrNotInBattle = errors.New("no battle in progress")

	// ErrAlreadyAnswered is returned when the current card was already answered.
	ErrAlreadyAnswered = errors.New("card already answered")

	// ErrNotAnswered is returned when advancing past an unanswered card.
	ErrNotAnswered = errors.New("current card not answered yet")
)

// PoolFetchError reports that the card pool for a deck could not be loaded.
type PoolFetchError struct {
	DeckID string
	Err    error
}

func (e *PoolFetchError) Error() string {
	return fmt.Sprintf("fetch card pool for deck %s: %v", e.DeckID, e.Err)
}

func (e *PoolFetchError) Unwrap() error { return e.Err }

// PersistError reports a failed write of progress or SRS state. It never ends
// a battle; the in-memory state stays authoritative.
type PersistError struct {
	Op  string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
