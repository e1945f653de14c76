package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type QuestRepo struct {
	db *sql.DB
}

func NewQuestRepo(db *sql.DB) *QuestRepo {
	return &QuestRepo{db: db}
}

func (r *QuestRepo) ListActivePool(ctx context.Context) ([]QuestPoolEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, category, xp_reward, gold_reward, is_active
		FROM quest_pool
		WHERE is_active = 1
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("quest pool list: %w", err)
	}
	defer rows.Close()

	var out []QuestPoolEntry
	for rows.Next() {
		e, err := scanPoolEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quest pool rows: %w", err)
	}
	return out, nil
}

func (r *QuestRepo) InsertDaily(ctx context.Context, id string, questID int64, date string) error {
	return r.InsertDailyIn(ctx, r.db, id, questID, date)
}

func (r *QuestRepo) InsertDailyIn(ctx context.Context, q Q, id string, questID int64, date string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO daily_quests (id, quest_id, date) VALUES (?, ?, ?)
	`, id, questID, date)
	if err != nil {
		return fmt.Errorf("daily quest insert: %w", err)
	}
	return nil
}

// ListDaily returns the assignment batch for a date with the pool quest
// joined in.
func (r *QuestRepo) ListDaily(ctx context.Context, date string) ([]DailyQuest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT dq.id, dq.quest_id, dq.date, dq.completed, dq.completed_at,
			qp.id, qp.title, qp.description, qp.category, qp.xp_reward, qp.gold_reward, qp.is_active
		FROM daily_quests dq
		JOIN quest_pool qp ON qp.id = dq.quest_id
		WHERE dq.date = ?
		ORDER BY dq.id ASC
	`, date)
	if err != nil {
		return nil, fmt.Errorf("daily quest list: %w", err)
	}
	defer rows.Close()

	var out []DailyQuest
	for rows.Next() {
		var (
			dq          DailyQuest
			completed   int
			completedAt sql.NullTime
			qp          QuestPoolEntry
			desc        sql.NullString
			active      int
		)
		if err := rows.Scan(&dq.ID, &dq.QuestID, &dq.Date, &completed, &completedAt,
			&qp.ID, &qp.Title, &desc, &qp.Category, &qp.XPReward, &qp.GoldReward, &active); err != nil {
			return nil, fmt.Errorf("daily quest scan: %w", err)
		}
		dq.Completed = completed != 0
		if completedAt.Valid {
			t := completedAt.Time
			dq.CompletedAt = &t
		}
		qp.Description = nullStr(desc)
		qp.IsActive = active != 0
		dq.Quest = &qp
		out = append(out, dq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("daily quest rows: %w", err)
	}
	return out, nil
}

func (r *QuestRepo) GetDaily(ctx context.Context, id string) (*DailyQuest, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT dq.id, dq.quest_id, dq.date, dq.completed, dq.completed_at,
			qp.id, qp.title, qp.description, qp.category, qp.xp_reward, qp.gold_reward, qp.is_active
		FROM daily_quests dq
		JOIN quest_pool qp ON qp.id = dq.quest_id
		WHERE dq.id = ?
	`, id)

	var (
		dq          DailyQuest
		completed   int
		completedAt sql.NullTime
		qp          QuestPoolEntry
		desc        sql.NullString
		active      int
	)
	if err := row.Scan(&dq.ID, &dq.QuestID, &dq.Date, &completed, &completedAt,
		&qp.ID, &qp.Title, &desc, &qp.Category, &qp.XPReward, &qp.GoldReward, &active); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("daily quest get: %w", err)
	}
	dq.Completed = completed != 0
	if completedAt.Valid {
		t := completedAt.Time
		dq.CompletedAt = &t
	}
	qp.Description = nullStr(desc)
	qp.IsActive = active != 0
	dq.Quest = &qp
	return &dq, nil
}

func (r *QuestRepo) MarkCompletedIn(ctx context.Context, q Q, id string, at time.Time) error {
	_, err := q.ExecContext(ctx, `
		UPDATE daily_quests SET completed = 1, completed_at = ? WHERE id = ?
	`, at, id)
	if err != nil {
		return fmt.Errorf("daily quest complete: %w", err)
	}
	return nil
}

func (r *QuestRepo) DeleteDailyIn(ctx context.Context, q Q, date string) error {
	_, err := q.ExecContext(ctx, `DELETE FROM daily_quests WHERE date = ?`, date)
	if err != nil {
		return fmt.Errorf("daily quest delete: %w", err)
	}
	return nil
}

// ListDailyRange returns assignments with since <= date <= until, joined.
func (r *QuestRepo) ListDailyRange(ctx context.Context, since, until string) ([]DailyQuest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT dq.id, dq.quest_id, dq.date, dq.completed, dq.completed_at,
			qp.id, qp.title, qp.description, qp.category, qp.xp_reward, qp.gold_reward, qp.is_active
		FROM daily_quests dq
		JOIN quest_pool qp ON qp.id = dq.quest_id
		WHERE dq.date >= ? AND dq.date <= ?
		ORDER BY dq.date ASC, dq.id ASC
	`, since, until)
	if err != nil {
		return nil, fmt.Errorf("daily quest range: %w", err)
	}
	defer rows.Close()

	var out []DailyQuest
	for rows.Next() {
		var (
			dq          DailyQuest
			completed   int
			completedAt sql.NullTime
			qp          QuestPoolEntry
			desc        sql.NullString
			active      int
		)
		if err := rows.Scan(&dq.ID, &dq.QuestID, &dq.Date, &completed, &completedAt,
			&qp.ID, &qp.Title, &desc, &qp.Category, &qp.XPReward, &qp.GoldReward, &active); err != nil {
			return nil, fmt.Errorf("daily quest range scan: %w", err)
		}
		dq.Completed = completed != 0
		if completedAt.Valid {
			t := completedAt.Time
			dq.CompletedAt = &t
		}
		qp.Description = nullStr(desc)
		qp.IsActive = active != 0
		dq.Quest = &qp
		out = append(out, dq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("daily quest range rows: %w", err)
	}
	return out, nil
}

// HasRefreshed reports whether the once-per-day refresh was already spent.
func (r *QuestRepo) HasRefreshed(ctx context.Context, date string) (bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT 1 FROM quest_refreshes WHERE date = ? LIMIT 1`, date)
	var one int
	if err := row.Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("refresh lookup: %w", err)
	}
	return true, nil
}

func (r *QuestRepo) MarkRefreshedIn(ctx context.Context, q Q, date string) error {
	_, err := q.ExecContext(ctx, `INSERT OR IGNORE INTO quest_refreshes (date) VALUES (?)`, date)
	if err != nil {
		return fmt.Errorf("refresh mark: %w", err)
	}
	return nil
}

func scanPoolEntry(row scanner) (*QuestPoolEntry, error) {
	var (
		e      QuestPoolEntry
		desc   sql.NullString
		active int
	)
	if err := row.Scan(&e.ID, &e.Title, &desc, &e.Category, &e.XPReward, &e.GoldReward, &active); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("quest pool scan: %w", err)
	}
	e.Description = nullStr(desc)
	e.IsActive = active != 0
	return &e, nil
}
