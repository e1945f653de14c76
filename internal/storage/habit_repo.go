package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type HabitRepo struct {
	db *sql.DB
}

func NewHabitRepo(db *sql.DB) *HabitRepo {
	return &HabitRepo{db: db}
}

type HabitInsert struct {
	Title            string
	Identity         string
	ObviousCue       *string
	AttractiveBundle *string
	EasyStep         string
	SatisfyingReward *string
	Schedule         string
	Category         *string

	// CreatedAt is set by the caller so the stored creation day follows the
	// caller's clock, not the database's UTC clock. Sqlite's
	// CURRENT_TIMESTAMP would shift the creation day forward for anyone west
	// of Greenwich in the evening.
	CreatedAt time.Time
}

const habitColumns = `id, title, identity, obvious_cue, attractive_bundle, easy_step, satisfying_reward, schedule, category, created_at`

func (r *HabitRepo) Insert(ctx context.Context, in HabitInsert) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO habits (title, identity, obvious_cue, attractive_bundle, easy_step, satisfying_reward, schedule, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, in.Title, in.Identity, in.ObviousCue, in.AttractiveBundle, in.EasyStep, in.SatisfyingReward, in.Schedule, in.Category, in.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("habit insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("habit last insert id: %w", err)
	}
	return id, nil
}

func (r *HabitRepo) Get(ctx context.Context, id int64) (*Habit, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+habitColumns+` FROM habits WHERE id = ?`, id)
	return scanHabit(row)
}

func (r *HabitRepo) ListAll(ctx context.Context) ([]Habit, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+habitColumns+` FROM habits ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("habit list: %w", err)
	}
	defer rows.Close()

	var out []Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("habit rows: %w", err)
	}
	return out, nil
}

func (r *HabitRepo) Update(ctx context.Context, h *Habit) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE habits
		SET title = ?, identity = ?, obvious_cue = ?, attractive_bundle = ?,
			easy_step = ?, satisfying_reward = ?, schedule = ?, category = ?
		WHERE id = ?
	`, h.Title, h.Identity, h.ObviousCue, h.AttractiveBundle, h.EasyStep, h.SatisfyingReward, h.Schedule, h.Category, h.ID)
	if err != nil {
		return fmt.Errorf("habit update: %w", err)
	}
	return nil
}

// DeleteIn removes a habit. Checkin cascade is handled by the caller in the
// same transaction.
func (r *HabitRepo) DeleteIn(ctx context.Context, q Q, id int64) error {
	_, err := q.ExecContext(ctx, `DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("habit delete: %w", err)
	}
	return nil
}

func scanHabit(row scanner) (*Habit, error) {
	var (
		h        Habit
		cue      sql.NullString
		bundle   sql.NullString
		reward   sql.NullString
		category sql.NullString
	)
	if err := row.Scan(&h.ID, &h.Title, &h.Identity, &cue, &bundle, &h.EasyStep, &reward, &h.Schedule, &category, &h.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("habit scan: %w", err)
	}
	h.ObviousCue = nullStr(cue)
	h.AttractiveBundle = nullStr(bundle)
	h.SatisfyingReward = nullStr(reward)
	h.Category = nullStr(category)
	return &h, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func nullStr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
