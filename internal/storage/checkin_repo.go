package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type CheckinRepo struct {
	db *sql.DB
}

func NewCheckinRepo(db *sql.DB) *CheckinRepo {
	return &CheckinRepo{db: db}
}

const checkinColumns = `id, habit_id, date, status, fast, created_at`

// Upsert writes the checkin for (habit, date); a second mark on the same day
// overwrites the first (last write wins).
func (r *CheckinRepo) Upsert(ctx context.Context, habitID int64, date, status string, fast bool) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO checkins (habit_id, date, status, fast)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(habit_id, date) DO UPDATE SET status = excluded.status, fast = excluded.fast
	`, habitID, date, status, boolToInt(fast))
	if err != nil {
		return fmt.Errorf("checkin upsert: %w", err)
	}
	return nil
}

func (r *CheckinRepo) Get(ctx context.Context, habitID int64, date string) (*Checkin, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+checkinColumns+` FROM checkins WHERE habit_id = ? AND date = ?
	`, habitID, date)
	return scanCheckin(row)
}

func (r *CheckinRepo) Delete(ctx context.Context, habitID int64, date string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM checkins WHERE habit_id = ? AND date = ?`, habitID, date)
	if err != nil {
		return fmt.Errorf("checkin delete: %w", err)
	}
	return nil
}

func (r *CheckinRepo) DeleteByHabitIn(ctx context.Context, q Q, habitID int64) error {
	_, err := q.ExecContext(ctx, `DELETE FROM checkins WHERE habit_id = ?`, habitID)
	if err != nil {
		return fmt.Errorf("checkin delete by habit: %w", err)
	}
	return nil
}

// ListByHabitSince returns a habit's checkins with date >= since, newest first.
func (r *CheckinRepo) ListByHabitSince(ctx context.Context, habitID int64, since string) ([]Checkin, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+checkinColumns+` FROM checkins
		WHERE habit_id = ? AND date >= ?
		ORDER BY date DESC
	`, habitID, since)
	if err != nil {
		return nil, fmt.Errorf("checkin list: %w", err)
	}
	return collectCheckins(rows)
}

// ListRange returns all checkins with since <= date <= until, any habit.
func (r *CheckinRepo) ListRange(ctx context.Context, since, until string) ([]Checkin, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+checkinColumns+` FROM checkins
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC
	`, since, until)
	if err != nil {
		return nil, fmt.Errorf("checkin range: %w", err)
	}
	return collectCheckins(rows)
}

func (r *CheckinRepo) ListByDate(ctx context.Context, date string) ([]Checkin, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+checkinColumns+` FROM checkins WHERE date = ? ORDER BY habit_id ASC
	`, date)
	if err != nil {
		return nil, fmt.Errorf("checkin by date: %w", err)
	}
	return collectCheckins(rows)
}

// CountDone returns the all-time number of done checkins, and how many of
// those were marked fast.
func (r *CheckinRepo) CountDone(ctx context.Context) (total, fast int, err error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(fast), 0) FROM checkins WHERE status = 'done'
	`)
	if err := row.Scan(&total, &fast); err != nil {
		return 0, 0, fmt.Errorf("checkin count: %w", err)
	}
	return total, fast, nil
}

func collectCheckins(rows *sql.Rows) ([]Checkin, error) {
	defer rows.Close()
	var out []Checkin
	for rows.Next() {
		c, err := scanCheckin(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("checkin rows: %w", err)
	}
	return out, nil
}

func scanCheckin(row scanner) (*Checkin, error) {
	var (
		c    Checkin
		fast int
	)
	if err := row.Scan(&c.ID, &c.HabitID, &c.Date, &c.Status, &fast, &c.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("checkin scan: %w", err)
	}
	c.Fast = fast != 0
	return &c, nil
}
