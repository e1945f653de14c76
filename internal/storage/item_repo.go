package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type ItemRepo struct {
	db *sql.DB
}

func NewItemRepo(db *sql.DB) *ItemRepo {
	return &ItemRepo{db: db}
}

const itemColumns = `id, type, name, rarity, effect_type, effect_value, effect_category`

func (r *ItemRepo) Get(ctx context.Context, id int64) (*Item, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	return scanItem(row)
}

func (r *ItemRepo) GetByTypeName(ctx context.Context, typ, name string) (*Item, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE type = ? AND name = ?`, typ, name)
	return scanItem(row)
}

func (r *ItemRepo) ListCatalog(ctx context.Context) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+itemColumns+` FROM items ORDER BY type ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("item catalog: %w", err)
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("item rows: %w", err)
	}
	return out, nil
}

// AddOwned records ownership of a catalog item. Duplicate unlocks are
// ignored (the loot roller should already have excluded owned keys).
func (r *ItemRepo) AddOwned(ctx context.Context, itemID int64) error {
	_, err := r.db.ExecContext(ctx, `INSERT OR IGNORE INTO user_items (item_id) VALUES (?)`, itemID)
	if err != nil {
		return fmt.Errorf("user item insert: %w", err)
	}
	return nil
}

func (r *ItemRepo) ListOwned(ctx context.Context) ([]UserItem, error) {
	return r.listOwned(ctx, ``)
}

func (r *ItemRepo) ListEquipped(ctx context.Context) ([]UserItem, error) {
	return r.listOwned(ctx, `AND ui.equipped = 1`)
}

func (r *ItemRepo) listOwned(ctx context.Context, extra string) ([]UserItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ui.id, ui.item_id, ui.equipped, ui.unlocked_at,
			i.id, i.type, i.name, i.rarity, i.effect_type, i.effect_value, i.effect_category
		FROM user_items ui
		JOIN items i ON i.id = ui.item_id
		WHERE 1=1 `+extra+`
		ORDER BY ui.unlocked_at ASC, ui.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("user item list: %w", err)
	}
	defer rows.Close()

	var out []UserItem
	for rows.Next() {
		var (
			ui       UserItem
			equipped int
			et       sql.NullString
			ev       sql.NullInt64
			ec       sql.NullString
		)
		if err := rows.Scan(&ui.ID, &ui.ItemID, &equipped, &ui.UnlockedAt,
			&ui.Item.ID, &ui.Item.Type, &ui.Item.Name, &ui.Item.Rarity, &et, &ev, &ec); err != nil {
			return nil, fmt.Errorf("user item scan: %w", err)
		}
		ui.Equipped = equipped != 0
		ui.Item.EffectType = nullStr(et)
		ui.Item.EffectCategory = nullStr(ec)
		if ev.Valid {
			v := int(ev.Int64)
			ui.Item.EffectValue = &v
		}
		out = append(out, ui)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("user item rows: %w", err)
	}
	return out, nil
}

// UnequipTypeIn clears the equipped flag on every owned item of the given
// type; pair with SetEquippedIn inside one transaction to keep the
// one-item-per-slot rule.
func (r *ItemRepo) UnequipTypeIn(ctx context.Context, q Q, typ string) error {
	_, err := q.ExecContext(ctx, `
		UPDATE user_items SET equipped = 0
		WHERE item_id IN (SELECT id FROM items WHERE type = ?)
	`, typ)
	if err != nil {
		return fmt.Errorf("unequip type: %w", err)
	}
	return nil
}

func (r *ItemRepo) SetEquippedIn(ctx context.Context, q Q, itemID int64, equipped bool) error {
	res, err := q.ExecContext(ctx, `UPDATE user_items SET equipped = ? WHERE item_id = ?`, boolToInt(equipped), itemID)
	if err != nil {
		return fmt.Errorf("set equipped: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set equipped rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("item %d is not owned", itemID)
	}
	return nil
}

func scanItem(row scanner) (*Item, error) {
	var (
		it Item
		et sql.NullString
		ev sql.NullInt64
		ec sql.NullString
	)
	if err := row.Scan(&it.ID, &it.Type, &it.Name, &it.Rarity, &et, &ev, &ec); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("item scan: %w", err)
	}
	it.EffectType = nullStr(et)
	it.EffectCategory = nullStr(ec)
	if ev.Valid {
		v := int(ev.Int64)
		it.EffectValue = &v
	}
	return &it, nil
}
