package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type SummaryRepo struct {
	db *sql.DB
}

func NewSummaryRepo(db *sql.DB) *SummaryRepo {
	return &SummaryRepo{db: db}
}

func (r *SummaryRepo) Upsert(ctx context.Context, s DailySummary) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO daily_summary (date, completed_count, scheduled_count, cleared)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			completed_count = excluded.completed_count,
			scheduled_count = excluded.scheduled_count,
			cleared = excluded.cleared
	`, s.Date, s.CompletedCount, s.ScheduledCount, boolToInt(s.Cleared))
	if err != nil {
		return fmt.Errorf("summary upsert: %w", err)
	}
	return nil
}

func (r *SummaryRepo) Get(ctx context.Context, date string) (*DailySummary, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT date, completed_count, scheduled_count, cleared
		FROM daily_summary WHERE date = ?
	`, date)
	var (
		s       DailySummary
		cleared int
	)
	if err := row.Scan(&s.Date, &s.CompletedCount, &s.ScheduledCount, &cleared); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("summary get: %w", err)
	}
	s.Cleared = cleared != 0
	return &s, nil
}

// ListSince returns summaries with date >= since, newest first.
func (r *SummaryRepo) ListSince(ctx context.Context, since string) ([]DailySummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, completed_count, scheduled_count, cleared
		FROM daily_summary
		WHERE date >= ?
		ORDER BY date DESC
	`, since)
	if err != nil {
		return nil, fmt.Errorf("summary list: %w", err)
	}
	defer rows.Close()

	var out []DailySummary
	for rows.Next() {
		var (
			s       DailySummary
			cleared int
		)
		if err := rows.Scan(&s.Date, &s.CompletedCount, &s.ScheduledCount, &cleared); err != nil {
			return nil, fmt.Errorf("summary scan: %w", err)
		}
		s.Cleared = cleared != 0
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("summary rows: %w", err)
	}
	return out, nil
}

func (r *SummaryRepo) CountCleared(ctx context.Context) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM daily_summary WHERE cleared = 1`)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("summary cleared count: %w", err)
	}
	return n, nil
}
