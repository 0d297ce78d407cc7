// Package cards defines the battle sources: deck cards with their own
// spaced-repetition state and battle-only concepts without one.
package cards

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Source is the capability set the battle engine needs from a card or concept.
type Source interface {
	SourceID() string
	PromptText() string
	CorrectAnswers() []string

	// HasIndependentSRS reports whether answers should be written back to the
	// source's spaced-repetition state.
	HasIndependentSRS() bool

	// Complexity returns the authored difficulty in [0,1], or ok=false when
	// the source carries none.
	Complexity() (value float64, ok bool)

	// Reviews is the number of completed reviews, zero for concepts.
	Reviews() int
}

// SRSState is the scheduling phase of a card.
type SRSState int

const (
	StateNew SRSState = iota
	StateLearning
	StateReview
	StateRelearning
)

func (s SRSState) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateLearning:
		return "learning"
	case StateReview:
		return "review"
	case StateRelearning:
		return "relearning"
	default:
		return "unknown"
	}
}

// SRS holds the per-card spaced-repetition fields owned by the review flow.
type SRS struct {
	State       SRSState
	Step        int
	Stability   float64
	Difficulty  float64
	Due         time.Time
	LastReview  time.Time
	ReviewCount int
}

// Card is a deck card.
type Card struct {
	ID        string
	DeckID    string
	Front     string
	Back      string
	Aliases   []string
	SRS       SRS
	CreatedAt time.Time
}

func (c Card) SourceID() string        { return c.ID }
func (c Card) PromptText() string      { return c.Front }
func (c Card) HasIndependentSRS() bool { return true }
func (c Card) Reviews() int            { return c.SRS.ReviewCount }

// CorrectAnswers returns the back of the card followed by any accepted aliases.
func (c Card) CorrectAnswers() []string {
	return answerList(c.Back, c.Aliases)
}

// CurrentSRS returns the card's scheduling fields.
func (c Card) CurrentSRS() SRS { return c.SRS }

// Complexity is never authored for deck cards.
func (c Card) Complexity() (float64, bool) { return 0, false }

// Concept is a battle-only card-like entity. It never has SRS state.
type Concept struct {
	ID         string
	DeckID     string
	Prompt     string
	Answer     string
	Aliases    []string
	Difficulty *float64
	CreatedAt  time.Time
}

func (c Concept) SourceID() string         { return c.ID }
func (c Concept) PromptText() string       { return c.Prompt }
func (c Concept) HasIndependentSRS() bool  { return false }
func (c Concept) Reviews() int             { return 0 }
func (c Concept) CorrectAnswers() []string { return answerList(c.Answer, c.Aliases) }

func (c Concept) Complexity() (float64, bool) {
	if c.Difficulty == nil {
		return 0, false
	}
	return *c.Difficulty, true
}

// Deck is a named collection of cards and concepts.
type Deck struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Valid reports whether s can be turned into a battle card: it needs a prompt
// and at least one non-blank answer.
func Valid(s Source) bool {
	if s == nil || s.SourceID() == "" || strings.TrimSpace(s.PromptText()) == "" {
		return false
	}
	return PrimaryAnswer(s) != ""
}

// PrimaryAnswer returns the first non-blank accepted answer, trimmed.
func PrimaryAnswer(s Source) string {
	for _, a := range s.CorrectAnswers() {
		if t := strings.TrimSpace(a); t != "" {
			return t
		}
	}
	return ""
}

// RuneLen counts characters rather than bytes.
func RuneLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

func answerList(primary string, aliases []string) []string {
	out := make([]string, 0, len(aliases)+1)
	out = append(out, primary)
	out = append(out, aliases...)
	return out
}
