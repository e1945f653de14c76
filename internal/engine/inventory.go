package engine

import (
	"context"
	"database/sql"
	"strconv"

	"habitquest/internal/storage"
)

func (s *Service) Inventory(ctx context.Context) ([]storage.UserItem, error) {
	return s.items.ListOwned(ctx)
}

func (s *Service) Catalog(ctx context.Context) ([]storage.Item, error) {
	return s.items.ListCatalog(ctx)
}

func (s *Service) Effects(ctx context.Context) (EquippedEffects, error) {
	return s.equippedEffects(ctx)
}

// Equip puts an owned item on, displacing whatever held its slot. One item
// per type; the swap happens in a single transaction.
func (s *Service) Equip(ctx context.Context, itemID int64) (*storage.Item, error) {
	item, err := s.items.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, NotFoundError{Kind: "item", ID: strconv.FormatInt(itemID, 10)}
	}

	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.items.UnequipTypeIn(ctx, tx, item.Type); err != nil {
			return err
		}
		return s.items.SetEquippedIn(ctx, tx, itemID, true)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) Unequip(ctx context.Context, itemID int64) (*storage.Item, error) {
	item, err := s.items.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, NotFoundError{Kind: "item", ID: strconv.FormatInt(itemID, 10)}
	}
	if err := s.items.SetEquippedIn(ctx, s.db, itemID, false); err != nil {
		return nil, err
	}
	return item, nil
}
