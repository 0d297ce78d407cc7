// Package srs computes the spaced-repetition writeback for a card answered in
// battle. Scheduling itself is delegated to FSRS.
package srs

import (
	"time"

	"github.com/open-spaced-repetition/go-fsrs/v3"

	"github.com/abhisek/flashwiz/internal/cards"
)

// Update is the set of SRS fields written back to a card after an answer.
type Update struct {
	State       cards.SRSState
	Step        int
	Stability   float64
	Difficulty  float64
	Due         time.Time
	LastReview  time.Time
	ReviewCount int
}

// Scheduler maps battle answers onto FSRS reviews.
type Scheduler struct {
	fsrs *fsrs.FSRS
}

// NewScheduler creates a scheduler with the default FSRS parameters.
func NewScheduler() *Scheduler {
	return NewSchedulerWithParams(fsrs.DefaultParam())
}

// NewSchedulerWithParams creates a scheduler with custom FSRS parameters.
func NewSchedulerWithParams(p fsrs.Parameters) *Scheduler {
	return &Scheduler{fsrs: fsrs.NewFSRS(p)}
}

// Review returns the state after answering a card at now. A correct answer is
// rated Good, an incorrect one Again.
func (s *Scheduler) Review(cur cards.SRS, isCorrect bool, now time.Time) Update {
	rating := fsrs.Again
	if isCorrect {
		rating = fsrs.Good
	}

	next := s.fsrs.Repeat(toFSRS(cur, now), now)[rating].Card
	state := fromFSRSState(next.State)

	return Update{
		State:       state,
		Step:        nextStep(cur, state),
		Stability:   next.Stability,
		Difficulty:  next.Difficulty,
		Due:         next.Due,
		LastReview:  now,
		ReviewCount: cur.ReviewCount + 1,
	}
}

// Apply copies u onto a card's SRS fields.
func (u Update) Apply(c cards.SRS) cards.SRS {
	c.State = u.State
	c.Step = u.Step
	c.Stability = u.Stability
	c.Difficulty = u.Difficulty
	c.Due = u.Due
	c.LastReview = u.LastReview
	c.ReviewCount = u.ReviewCount
	return c
}

// nextStep counts consecutive reviews within a learning phase. It resets when
// the card graduates to review.
func nextStep(cur cards.SRS, next cards.SRSState) int {
	switch next {
	case cards.StateReview, cards.StateNew:
		return 0
	}
	if cur.State == next {
		return cur.Step + 1
	}
	return 1
}

func toFSRS(c cards.SRS, now time.Time) fsrs.Card {
	card := fsrs.NewCard()
	if c.State == cards.StateNew || c.Stability <= 0 {
		card.Due = now
		return card
	}

	card.State = toFSRSState(c.State)
	card.Stability = c.Stability
	card.Difficulty = c.Difficulty
	card.Due = c.Due
	card.Reps = uint64(c.ReviewCount)
	card.LastReview = c.LastReview
	if card.Due.IsZero() {
		card.Due = now
	}
	if !c.LastReview.IsZero() && c.Due.After(c.LastReview) {
		card.ScheduledDays = uint64(c.Due.Sub(c.LastReview).Hours() / 24)
	}
	return card
}

func toFSRSState(s cards.SRSState) fsrs.State {
	switch s {
	case cards.StateLearning:
		return fsrs.Learning
	case cards.StateReview:
		return fsrs.Review
	case cards.StateRelearning:
		return fsrs.Relearning
	default:
		return fsrs.New
	}
}

func fromFSRSState(s fsrs.State) cards.SRSState {
	switch s {
	case fsrs.Learning:
		return cards.StateLearning
	case fsrs.Review:
		return cards.StateReview
	case fsrs.Relearning:
		return cards.StateRelearning
	default:
		return cards.StateNew
	}
}
