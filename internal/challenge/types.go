// Package challenge holds battle card instances and answer checking.
package challenge

import "github.com/abhisek/flashwiz/internal/rarity"

// Type is how a card instance is answered.
type Type string

const (
	TypeMCQ  Type = "mcq"
	TypeText Type = "text"
)

// DisplayName returns a human-readable label for the challenge type.
func (t Type) DisplayName() string {
	switch t {
	case TypeMCQ:
		return "Multiple Choice"
	case TypeText:
		return "Free Text"
	default:
		return string(t)
	}
}

// CardInstance is one battle-scoped presentation of a source.
type CardInstance struct {
	CardID         string
	IsConcept      bool
	Tier           rarity.Tier
	Score          float64
	Atk            int
	Def            int
	Type           Type
	Prompt         string
	CorrectAnswers []string

	// Options holds the shuffled choices for TypeMCQ, nil otherwise.
	Options []string
}

// PrimaryAnswer is the answer revealed after a wrong guess.
func (c CardInstance) PrimaryAnswer() string {
	if len(c.CorrectAnswers) == 0 {
		return ""
	}
	return c.CorrectAnswers[0]
}
