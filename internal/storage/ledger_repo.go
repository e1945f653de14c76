package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type LedgerRepo struct {
	db *sql.DB
}

func NewLedgerRepo(db *sql.DB) *LedgerRepo {
	return &LedgerRepo{db: db}
}

// InsertIn appends an audit row; always called in the same transaction as
// the profile update it records.
func (r *LedgerRepo) InsertIn(ctx context.Context, q Q, e LedgerEntry) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO reward_ledger (id, date, habit_id, quest_id, xp_delta, gold_delta, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Date, e.HabitID, e.QuestID, e.XPDelta, e.GoldDelta, e.Reason)
	if err != nil {
		return fmt.Errorf("ledger insert: %w", err)
	}
	return nil
}

// ListByDate exists for display/debugging; the engine never reads the
// ledger back.
func (r *LedgerRepo) ListByDate(ctx context.Context, date string) ([]LedgerEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, date, habit_id, quest_id, xp_delta, gold_delta, reason, created_at
		FROM reward_ledger
		WHERE date = ?
		ORDER BY created_at ASC
	`, date)
	if err != nil {
		return nil, fmt.Errorf("ledger list: %w", err)
	}
	defer rows.Close()

	var out []LedgerEntry
	for rows.Next() {
		var (
			e       LedgerEntry
			habitID sql.NullInt64
			questID sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Date, &habitID, &questID, &e.XPDelta, &e.GoldDelta, &e.Reason, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("ledger scan: %w", err)
		}
		if habitID.Valid {
			v := habitID.Int64
			e.HabitID = &v
		}
		e.QuestID = nullStr(questID)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ledger rows: %w", err)
	}
	return out, nil
}

func (r *LedgerRepo) CountByReason(ctx context.Context, reason string) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reward_ledger WHERE reason = ?`, reason)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("ledger count: %w", err)
	}
	return n, nil
}
