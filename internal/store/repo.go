package store

import (
	"context"
	"time"

	"github.com/abhisek/flashwiz/internal/cards"
	"github.com/abhisek/flashwiz/internal/progress"
	"github.com/abhisek/flashwiz/internal/srs"
)

// ProgressRepo manages the per-user progress document.
type ProgressRepo interface {
	// LoadProgress returns the stored progress, creating a default document
	// when the user has none.
	LoadProgress(ctx context.Context, userID string) (progress.Progress, error)

	// SaveProgress validates and upserts the progress document.
	SaveProgress(ctx context.Context, userID string, p progress.Progress) error

	// Reset deletes the user's progress. The next load recreates defaults.
	Reset(ctx context.Context, userID string) error
}

// DeckInfo is a deck with its source counts.
type DeckInfo struct {
	cards.Deck
	Cards    int
	Concepts int
}

// NewCard holds the fields needed to create a card.
type NewCard struct {
	Front   string
	Back    string
	Aliases []string
}

// NewConcept holds the fields needed to create a concept.
type NewConcept struct {
	Prompt     string
	Answer     string
	Aliases    []string
	Difficulty *float64
}

// DeckRepo manages decks, cards and concepts. It is also the battle card pool
// and the SRS writeback sink.
type DeckRepo interface {
	CreateDeck(ctx context.Context, name string) (cards.Deck, error)

	// FindDeck looks a deck up by id or by name.
	FindDeck(ctx context.Context, idOrName string) (cards.Deck, error)
	ListDecks(ctx context.Context) ([]DeckInfo, error)
	DeleteDeck(ctx context.Context, deckID string) error

	AddCard(ctx context.Context, deckID string, c NewCard) (cards.Card, error)
	ListCards(ctx context.Context, deckID string) ([]cards.Card, error)
	AddConcept(ctx context.Context, deckID string, c NewConcept) (cards.Concept, error)
	ListConcepts(ctx context.Context, deckID string) ([]cards.Concept, error)

	// ReviewableSources returns every card and concept of a deck.
	ReviewableSources(ctx context.Context, deckID string) ([]cards.Source, error)

	// WriteSRS stores the scheduling fields of a card.
	WriteSRS(ctx context.Context, cardID string, u srs.Update) error
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	From  time.Time // timestamp >= From
}

// EventRepo provides append and query access to battle history.
type EventRepo interface {
	AppendAnswer(ctx context.Context, data AnswerEventData) error
	AppendBattle(ctx context.Context, data BattleEventData) error

	// RecentBattles returns the user's battles, newest first.
	RecentBattles(ctx context.Context, userID string, opts QueryOpts) ([]BattleEvent, error)

	// AnswerStats aggregates the user's answers per rarity tier.
	AnswerStats(ctx context.Context, userID string) (AnswerStats, error)
}
