package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/flashwiz/internal/progress"
)

// progressRepo implements ProgressRepo, storing one JSON document per user.
type progressRepo struct {
	drv *entsql.Driver
}

func (r *progressRepo) LoadProgress(ctx context.Context, userID string) (progress.Progress, error) {
	b := builder()
	query, args := b.Select("data").
		From(b.Table("progress")).
		Where(entsql.EQ("user_id", userID)).
		Query()

	rows, err := r.drv.QueryContext(ctx, query, args...)
	if err != nil {
		return progress.Progress{}, fmt.Errorf("query progress: %w", err)
	}
	var (
		raw   string
		found bool
	)
	if rows.Next() {
		found = true
		if err := rows.Scan(&raw); err != nil {
			rows.Close()
			return progress.Progress{}, fmt.Errorf("scan progress: %w", err)
		}
	}
	if err := rows.Close(); err != nil {
		return progress.Progress{}, fmt.Errorf("close progress rows: %w", err)
	}

	if !found {
		p := progress.Default()
		if err := r.SaveProgress(ctx, userID, p); err != nil {
			return progress.Progress{}, fmt.Errorf("create default progress: %w", err)
		}
		return p, nil
	}

	if err := validateProgressJSON([]byte(raw)); err != nil {
		return progress.Progress{}, fmt.Errorf("load progress for %s: %w", userID, err)
	}
	var p progress.Progress
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return progress.Progress{}, fmt.Errorf("decode progress: %w", err)
	}
	return p.Normalize(), nil
}

func (r *progressRepo) SaveProgress(ctx context.Context, userID string, p progress.Progress) error {
	if p.RecentAnswers == nil {
		p.RecentAnswers = []bool{}
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := validateProgressJSON(raw); err != nil {
		return fmt.Errorf("save progress for %s: %w", userID, err)
	}

	query, args := builder().Insert("progress").
		Columns("user_id", "data", "updated_at").
		Values(userID, string(raw), formatTime(time.Now())).
		OnConflict(
			entsql.ConflictColumns("user_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.drv.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

func (r *progressRepo) Reset(ctx context.Context, userID string) error {
	query, args := builder().Delete("progress").
		Where(entsql.EQ("user_id", userID)).
		Query()
	res, err := r.drv.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
