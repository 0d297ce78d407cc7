package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	decksColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "name", Type: field.TypeString, Unique: true},
		{Name: "created_at", Type: field.TypeString},
	}
	decksTable = &schema.Table{
		Name:       "decks",
		Columns:    decksColumns,
		PrimaryKey: []*schema.Column{decksColumns[0]},
	}

	cardsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "deck_id", Type: field.TypeString},
		{Name: "front", Type: field.TypeString},
		{Name: "back", Type: field.TypeString},
		{Name: "aliases", Type: field.TypeString, Default: "[]"},
		{Name: "srs_state", Type: field.TypeInt, Default: 0},
		{Name: "srs_step", Type: field.TypeInt, Default: 0},
		{Name: "srs_stability", Type: field.TypeFloat64, Default: 0},
		{Name: "srs_difficulty", Type: field.TypeFloat64, Default: 0},
		{Name: "srs_due", Type: field.TypeString, Default: ""},
		{Name: "srs_last_review", Type: field.TypeString, Default: ""},
		{Name: "review_count", Type: field.TypeInt, Default: 0},
		{Name: "created_at", Type: field.TypeString},
	}
	cardsTable = &schema.Table{
		Name:       "cards",
		Columns:    cardsColumns,
		PrimaryKey: []*schema.Column{cardsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{{
			Symbol:     "cards_decks_cards",
			Columns:    []*schema.Column{cardsColumns[1]},
			RefTable:   decksTable,
			RefColumns: []*schema.Column{decksColumns[0]},
			OnDelete:   schema.Cascade,
		}},
		Indexes: []*schema.Index{
			{Name: "cards_deck_id", Columns: []*schema.Column{cardsColumns[1]}},
		},
	}

	conceptsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "deck_id", Type: field.TypeString},
		{Name: "prompt", Type: field.TypeString},
		{Name: "answer", Type: field.TypeString},
		{Name: "aliases", Type: field.TypeString, Default: "[]"},
		{Name: "difficulty", Type: field.TypeFloat64, Nullable: true},
		{Name: "created_at", Type: field.TypeString},
	}
	conceptsTable = &schema.Table{
		Name:       "concepts",
		Columns:    conceptsColumns,
		PrimaryKey: []*schema.Column{conceptsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{{
			Symbol:     "concepts_decks_concepts",
			Columns:    []*schema.Column{conceptsColumns[1]},
			RefTable:   decksTable,
			RefColumns: []*schema.Column{decksColumns[0]},
			OnDelete:   schema.Cascade,
		}},
		Indexes: []*schema.Index{
			{Name: "concepts_deck_id", Columns: []*schema.Column{conceptsColumns[1]}},
		},
	}

	progressColumns = []*schema.Column{
		{Name: "user_id", Type: field.TypeString},
		{Name: "data", Type: field.TypeString},
		{Name: "updated_at", Type: field.TypeString},
	}
	progressTable = &schema.Table{
		Name:       "progress",
		Columns:    progressColumns,
		PrimaryKey: []*schema.Column{progressColumns[0]},
	}

	answerEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeString},
		{Name: "battle_id", Type: field.TypeString},
		{Name: "user_id", Type: field.TypeString},
		{Name: "deck_id", Type: field.TypeString},
		{Name: "card_id", Type: field.TypeString},
		{Name: "is_concept", Type: field.TypeInt},
		{Name: "tier", Type: field.TypeString},
		{Name: "challenge_type", Type: field.TypeString},
		{Name: "correct", Type: field.TypeInt},
		{Name: "xp_earned", Type: field.TypeInt},
		{Name: "momentum_before", Type: field.TypeInt},
		{Name: "momentum_after", Type: field.TypeInt},
	}
	answerEventsTable = &schema.Table{
		Name:       "answer_events",
		Columns:    answerEventsColumns,
		PrimaryKey: []*schema.Column{answerEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "answer_events_user", Columns: []*schema.Column{answerEventsColumns[4]}},
			{Name: "answer_events_battle", Columns: []*schema.Column{answerEventsColumns[3]}},
		},
	}

	battleEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeString},
		{Name: "battle_id", Type: field.TypeString},
		{Name: "user_id", Type: field.TypeString},
		{Name: "deck_id", Type: field.TypeString},
		{Name: "cards", Type: field.TypeInt},
		{Name: "answered", Type: field.TypeInt},
		{Name: "correct", Type: field.TypeInt},
		{Name: "xp_earned", Type: field.TypeInt},
		{Name: "level_before", Type: field.TypeInt},
		{Name: "level_after", Type: field.TypeInt},
		{Name: "momentum_start", Type: field.TypeInt},
		{Name: "momentum_end", Type: field.TypeInt},
		{Name: "duration_secs", Type: field.TypeInt},
	}
	battleEventsTable = &schema.Table{
		Name:       "battle_events",
		Columns:    battleEventsColumns,
		PrimaryKey: []*schema.Column{battleEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "battle_events_user", Columns: []*schema.Column{battleEventsColumns[4]}},
		},
	}

	// tables holds every table managed by the store, in creation order.
	tables = []*schema.Table{
		decksTable,
		cardsTable,
		conceptsTable,
		progressTable,
		answerEventsTable,
		battleEventsTable,
	}
)

// migrate diffs the live database against tables and applies the missing
// changes. Columns and indexes are never dropped.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
