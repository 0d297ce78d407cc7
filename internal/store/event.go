package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// AnswerEventData captures one answered battle card.
type AnswerEventData struct {
	BattleID       string
	UserID         string
	DeckID         string
	CardID         string
	IsConcept      bool
	Tier           string
	ChallengeType  string
	Correct        bool
	XPEarned       int
	MomentumBefore int
	MomentumAfter  int
	AnsweredAt     time.Time
}

// BattleEventData captures a finished battle.
type BattleEventData struct {
	BattleID      string
	UserID        string
	DeckID        string
	Cards         int
	Answered      int
	Correct       int
	XPEarned      int
	LevelBefore   int
	LevelAfter    int
	MomentumStart int
	MomentumEnd   int
	DurationSecs  int
}

// BattleEvent is a stored battle with its ordering metadata.
type BattleEvent struct {
	Sequence  int64
	Timestamp time.Time
	BattleEventData
}

// TierStat is the answer tally for one rarity tier.
type TierStat struct {
	Answered int
	Correct  int
	XP       int
}

// AnswerStats aggregates a user's battle answers.
type AnswerStats struct {
	Answered int
	Correct  int
	XP       int
	ByTier   map[string]TierStat
}

// Accuracy returns the fraction of correct answers, or 0 with no answers.
func (a AnswerStats) Accuracy() float64 {
	if a.Answered == 0 {
		return 0
	}
	return float64(a.Correct) / float64(a.Answered)
}

// sequenceCounter manages the global monotonic sequence number shared by
// answer and battle events so history can be ordered across both tables.
//
// Uses raw SQL because the increment must be atomic at the database level.
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic across connections.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *eventRepo) AppendAnswer(ctx context.Context, data AnswerEventData) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	ts := data.AnsweredAt
	if ts.IsZero() {
		ts = time.Now()
	}

	query, args := builder().Insert("answer_events").
		Columns("sequence", "timestamp", "battle_id", "user_id", "deck_id", "card_id",
			"is_concept", "tier", "challenge_type", "correct", "xp_earned",
			"momentum_before", "momentum_after").
		Values(seq, formatTime(ts), data.BattleID, data.UserID, data.DeckID, data.CardID,
			boolInt(data.IsConcept), data.Tier, data.ChallengeType, boolInt(data.Correct),
			data.XPEarned, data.MomentumBefore, data.MomentumAfter).
		Query()
	if _, err := r.drv.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendBattle(ctx context.Context, data BattleEventData) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	query, args := builder().Insert("battle_events").
		Columns("sequence", "timestamp", "battle_id", "user_id", "deck_id", "cards",
			"answered", "correct", "xp_earned", "level_before", "level_after",
			"momentum_start", "momentum_end", "duration_secs").
		Values(seq, formatTime(time.Now()), data.BattleID, data.UserID, data.DeckID, data.Cards,
			data.Answered, data.Correct, data.XPEarned, data.LevelBefore, data.LevelAfter,
			data.MomentumStart, data.MomentumEnd, data.DurationSecs).
		Query()
	if _, err := r.drv.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append battle event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentBattles(ctx context.Context, userID string, opts QueryOpts) ([]BattleEvent, error) {
	b := builder()
	pred := entsql.EQ("user_id", userID)
	if !opts.From.IsZero() {
		pred = entsql.And(pred, entsql.GTE("timestamp", formatTime(opts.From)))
	}
	sel := b.Select("sequence", "timestamp", "battle_id", "user_id", "deck_id", "cards",
		"answered", "correct", "xp_earned", "level_before", "level_after",
		"momentum_start", "momentum_end", "duration_secs").
		From(b.Table("battle_events")).
		Where(pred).
		OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.drv.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query battle events: %w", err)
	}
	defer rows.Close()

	var out []BattleEvent
	for rows.Next() {
		var (
			ev BattleEvent
			ts string
		)
		if err := rows.Scan(&ev.Sequence, &ts, &ev.BattleID, &ev.UserID, &ev.DeckID, &ev.Cards,
			&ev.Answered, &ev.Correct, &ev.XPEarned, &ev.LevelBefore, &ev.LevelAfter,
			&ev.MomentumStart, &ev.MomentumEnd, &ev.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan battle event: %w", err)
		}
		ev.Timestamp = parseTime(ts)
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (r *eventRepo) AnswerStats(ctx context.Context, userID string) (AnswerStats, error) {
	b := builder()
	query, args := b.Select("tier", entsql.Count("*"), entsql.Sum("correct"), entsql.Sum("xp_earned")).
		From(b.Table("answer_events")).
		Where(entsql.EQ("user_id", userID)).
		GroupBy("tier").
		Query()

	stats := AnswerStats{ByTier: make(map[string]TierStat)}
	rows, err := r.drv.QueryContext(ctx, query, args...)
	if err != nil {
		return stats, fmt.Errorf("query answer stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tier             string
			answered         int
			correct, xpTotal sql.NullInt64
		)
		if err := rows.Scan(&tier, &answered, &correct, &xpTotal); err != nil {
			return stats, fmt.Errorf("scan answer stats: %w", err)
		}
		ts := TierStat{Answered: answered, Correct: int(correct.Int64), XP: int(xpTotal.Int64)}
		stats.ByTier[tier] = ts
		stats.Answered += ts.Answered
		stats.Correct += ts.Correct
		stats.XP += ts.XP
	}
	return stats, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
