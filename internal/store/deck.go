package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/flashwiz/internal/cards"
	"github.com/abhisek/flashwiz/internal/srs"
)

var cardColumns = []string{
	"id", "deck_id", "front", "back", "aliases",
	"srs_state", "srs_step", "srs_stability", "srs_difficulty",
	"srs_due", "srs_last_review", "review_count", "created_at",
}

var conceptColumns = []string{
	"id", "deck_id", "prompt", "answer", "aliases", "difficulty", "created_at",
}

// deckRepo implements DeckRepo.
type deckRepo struct {
	drv *entsql.Driver
}

func (r *deckRepo) CreateDeck(ctx context.Context, name string) (cards.Deck, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return cards.Deck{}, fmt.Errorf("deck name is required")
	}
	d := cards.Deck{ID: uuid.NewString(), Name: name, CreatedAt: time.Now().UTC()}

	query, args := builder().Insert("decks").
		Columns("id", "name", "created_at").
		Values(d.ID, d.Name, formatTime(d.CreatedAt)).
		Query()
	if _, err := r.drv.ExecContext(ctx, query, args...); err != nil {
		return cards.Deck{}, fmt.Errorf("create deck %q: %w", name, err)
	}
	return d, nil
}

func (r *deckRepo) FindDeck(ctx context.Context, idOrName string) (cards.Deck, error) {
	b := builder()
	query, args := b.Select("id", "name", "created_at").
		From(b.Table("decks")).
		Where(entsql.Or(entsql.EQ("id", idOrName), entsql.EQ("name", idOrName))).
		Limit(1).
		Query()

	rows, err := r.drv.QueryContext(ctx, query, args...)
	if err != nil {
		return cards.Deck{}, fmt.Errorf("query deck: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return cards.Deck{}, fmt.Errorf("query deck: %w", err)
		}
		return cards.Deck{}, fmt.Errorf("deck %q: %w", idOrName, ErrNotFound)
	}
	var (
		d  cards.Deck
		ts string
	)
	if err := rows.Scan(&d.ID, &d.Name, &ts); err != nil {
		return cards.Deck{}, fmt.Errorf("scan deck: %w", err)
	}
	d.CreatedAt = parseTime(ts)
	return d, nil
}

func (r *deckRepo) ListDecks(ctx context.Context) ([]DeckInfo, error) {
	b := builder()
	query, args := b.Select("id", "name", "created_at").
		From(b.Table("decks")).
		OrderBy("name").
		Query()

	rows, err := r.drv.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query decks: %w", err)
	}
	var decks []DeckInfo
	for rows.Next() {
		var (
			d  DeckInfo
			ts string
		)
		if err := rows.Scan(&d.ID, &d.Name, &ts); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan deck: %w", err)
		}
		d.CreatedAt = parseTime(ts)
		decks = append(decks, d)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	for i := range decks {
		if decks[i].Cards, err = r.count(ctx, "cards", decks[i].ID); err != nil {
			return nil, err
		}
		if decks[i].Concepts, err = r.count(ctx, "concepts", decks[i].ID); err != nil {
			return nil, err
		}
	}
	return decks, nil
}

func (r *deckRepo) count(ctx context.Context, table, deckID string) (int, error) {
	b := builder()
	query, args := b.Select(entsql.Count("*")).
		From(b.Table(table)).
		Where(entsql.EQ("deck_id", deckID)).
		Query()

	rows, err := r.drv.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	defer rows.Close()

	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("scan %s count: %w", table, err)
		}
	}
	return n, rows.Err()
}

func (r *deckRepo) DeleteDeck(ctx context.Context, deckID string) error {
	query, args := builder().Delete("decks").
		Where(entsql.EQ("id", deckID)).
		Query()
	res, err := r.drv.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete deck: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("deck %q: %w", deckID, ErrNotFound)
	}
	return nil
}

func (r *deckRepo) AddCard(ctx context.Context, deckID string, in NewCard) (cards.Card, error) {
	deck, err := r.FindDeck(ctx, deckID)
	if err != nil {
		return cards.Card{}, err
	}
	c := cards.Card{
		ID:        uuid.NewString(),
		DeckID:    deck.ID,
		Front:     strings.TrimSpace(in.Front),
		Back:      strings.TrimSpace(in.Back),
		Aliases:   in.Aliases,
		CreatedAt: time.Now().UTC(),
	}
	if !cards.Valid(c) {
		return cards.Card{}, fmt.Errorf("card needs a front and a back")
	}
	aliases, err := encodeAliases(c.Aliases)
	if err != nil {
		return cards.Card{}, err
	}

	query, args := builder().Insert("cards").
		Columns(cardColumns...).
		Values(c.ID, c.DeckID, c.Front, c.Back, aliases,
			int(c.SRS.State), c.SRS.Step, c.SRS.Stability, c.SRS.Difficulty,
			formatTime(c.SRS.Due), formatTime(c.SRS.LastReview), c.SRS.ReviewCount,
			formatTime(c.CreatedAt)).
		Query()
	if _, err := r.drv.ExecContext(ctx, query, args...); err != nil {
		return cards.Card{}, fmt.Errorf("insert card: %w", err)
	}
	return c, nil
}

func (r *deckRepo) ListCards(ctx context.Context, deckID string) ([]cards.Card, error) {
	b := builder()
	query, args := b.Select(cardColumns...).
		From(b.Table("cards")).
		Where(entsql.EQ("deck_id", deckID)).
		OrderBy("created_at", "id").
		Query()

	rows, err := r.drv.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var out []cards.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *deckRepo) AddConcept(ctx context.Context, deckID string, in NewConcept) (cards.Concept, error) {
	deck, err := r.FindDeck(ctx, deckID)
	if err != nil {
		return cards.Concept{}, err
	}
	if in.Difficulty != nil && (*in.Difficulty < 0 || *in.Difficulty > 1) {
		return cards.Concept{}, fmt.Errorf("concept difficulty must be within [0,1], got %v", *in.Difficulty)
	}
	c := cards.Concept{
		ID:         uuid.NewString(),
		DeckID:     deck.ID,
		Prompt:     strings.TrimSpace(in.Prompt),
		Answer:     strings.TrimSpace(in.Answer),
		Aliases:    in.Aliases,
		Difficulty: in.Difficulty,
		CreatedAt:  time.Now().UTC(),
	}
	if !cards.Valid(c) {
		return cards.Concept{}, fmt.Errorf("concept needs a prompt and an answer")
	}
	aliases, err := encodeAliases(c.Aliases)
	if err != nil {
		return cards.Concept{}, err
	}

	var difficulty any
	if c.Difficulty != nil {
		difficulty = *c.Difficulty
	}
	query, args := builder().Insert("concepts").
		Columns(conceptColumns...).
		Values(c.ID, c.DeckID, c.Prompt, c.Answer, aliases, difficulty, formatTime(c.CreatedAt)).
		Query()
	if _, err := r.drv.ExecContext(ctx, query, args...); err != nil {
		return cards.Concept{}, fmt.Errorf("insert concept: %w", err)
	}
	return c, nil
}

func (r *deckRepo) ListConcepts(ctx context.Context, deckID string) ([]cards.Concept, error) {
	b := builder()
	query, args := b.Select(conceptColumns...).
		From(b.Table("concepts")).
		Where(entsql.EQ("deck_id", deckID)).
		OrderBy("created_at", "id").
		Query()

	rows, err := r.drv.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query concepts: %w", err)
	}
	defer rows.Close()

	var out []cards.Concept
	for rows.Next() {
		var (
			c          cards.Concept
			aliases    string
			difficulty sql.NullFloat64
			created    string
		)
		if err := rows.Scan(&c.ID, &c.DeckID, &c.Prompt, &c.Answer, &aliases, &difficulty, &created); err != nil {
			return nil, fmt.Errorf("scan concept: %w", err)
		}
		if c.Aliases, err = decodeAliases(aliases); err != nil {
			return nil, err
		}
		if difficulty.Valid {
			v := difficulty.Float64
			c.Difficulty = &v
		}
		c.CreatedAt = parseTime(created)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *deckRepo) ReviewableSources(ctx context.Context, deckID string) ([]cards.Source, error) {
	deck, err := r.FindDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}
	cs, err := r.ListCards(ctx, deck.ID)
	if err != nil {
		return nil, err
	}
	concepts, err := r.ListConcepts(ctx, deck.ID)
	if err != nil {
		return nil, err
	}

	out := make([]cards.Source, 0, len(cs)+len(concepts))
	for _, c := range cs {
		out = append(out, c)
	}
	for _, c := range concepts {
		out = append(out, c)
	}
	return out, nil
}

func (r *deckRepo) WriteSRS(ctx context.Context, cardID string, u srs.Update) error {
	query, args := builder().Update("cards").
		Set("srs_state", int(u.State)).
		Set("srs_step", u.Step).
		Set("srs_stability", u.Stability).
		Set("srs_difficulty", u.Difficulty).
		Set("srs_due", formatTime(u.Due)).
		Set("srs_last_review", formatTime(u.LastReview)).
		Set("review_count", u.ReviewCount).
		Where(entsql.EQ("id", cardID)).
		Query()
	res, err := r.drv.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("write srs for card %s: %w", cardID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("card %q: %w", cardID, ErrNotFound)
	}
	return nil
}

func scanCard(rows *sql.Rows) (cards.Card, error) {
	var (
		c                    cards.Card
		aliases              string
		state                int
		due, review, created string
	)
	err := rows.Scan(&c.ID, &c.DeckID, &c.Front, &c.Back, &aliases,
		&state, &c.SRS.Step, &c.SRS.Stability, &c.SRS.Difficulty,
		&due, &review, &c.SRS.ReviewCount, &created)
	if err != nil {
		return cards.Card{}, fmt.Errorf("scan card: %w", err)
	}
	if c.Aliases, err = decodeAliases(aliases); err != nil {
		return cards.Card{}, err
	}
	c.SRS.State = cards.SRSState(state)
	c.SRS.Due = parseTime(due)
	c.SRS.LastReview = parseTime(review)
	c.CreatedAt = parseTime(created)
	return c, nil
}

func encodeAliases(aliases []string) (string, error) {
	clean := make([]string, 0, len(aliases))
	for _, a := range aliases {
		if t := strings.TrimSpace(a); t != "" {
			clean = append(clean, t)
		}
	}
	raw, err := json.Marshal(clean)
	if err != nil {
		return "", fmt.Errorf("encode aliases: %w", err)
	}
	return string(raw), nil
}

func decodeAliases(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode aliases: %w", err)
	}
	return out, nil
}
