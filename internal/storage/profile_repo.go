package storage

import (
	"context"
	"database/sql"
	"fmt"
)

const MainProfileKey = "main_user"

type ProfileRepo struct {
	db *sql.DB
}

func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) Get(ctx context.Context, key string) (*Profile, error) {
	return r.getIn(ctx, r.db, key)
}

func (r *ProfileRepo) getIn(ctx context.Context, q Q, key string) (*Profile, error) {
	row := q.QueryRowContext(ctx, `SELECT key, xp, gold, level, rank, created_at FROM profile WHERE key = ?`, key)

	var p Profile
	if err := row.Scan(&p.Key, &p.XP, &p.Gold, &p.Level, &p.Rank, &p.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("profile get: %w", err)
	}
	return &p, nil
}

func (r *ProfileRepo) GetOrCreateMain(ctx context.Context) (*Profile, error) {
	p, err := r.Get(ctx, MainProfileKey)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	if _, err := r.db.ExecContext(ctx, `INSERT INTO profile (key) VALUES (?)`, MainProfileKey); err != nil {
		return nil, fmt.Errorf("profile insert: %w", err)
	}
	return r.Get(ctx, MainProfileKey)
}

func (r *ProfileRepo) Update(ctx context.Context, p *Profile) error {
	return r.UpdateIn(ctx, r.db, p)
}

// UpdateIn writes the profile through q so callers can bundle the update
// with its ledger row in one transaction.
func (r *ProfileRepo) UpdateIn(ctx context.Context, q Q, p *Profile) error {
	_, err := q.ExecContext(ctx, `
		UPDATE profile
		SET xp = ?, gold = ?, level = ?, rank = ?
		WHERE key = ?
	`, p.XP, p.Gold, p.Level, p.Rank, p.Key)
	if err != nil {
		return fmt.Errorf("profile update: %w", err)
	}
	return nil
}
