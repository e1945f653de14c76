package root

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"habitquest/internal/config"
	"habitquest/internal/engine"
	"habitquest/internal/storage"
)

func openDB(ctx context.Context) (*sql.DB, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o700); err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	db, cleanup, err := openDB(ctx)
	if err != nil {
		return nil, nil, err
	}
	return engine.NewService(db), cleanup, nil
}
