package main

import (
	"context"
	"fmt"

	"lumia/internal/config"
	"lumia/internal/settings"
	"lumia/internal/store"
	"lumia/internal/store/file"
	"lumia/internal/store/postgres"
	"lumia/internal/store/sqlite"
)

const configPath = "lumia.yaml"

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendFile:
		return file.New(cfg.Store.Path), nil
	case config.BackendSQLite:
		return sqlite.New(ctx, cfg.Store.DSN)
	case config.BackendPostgres:
		return postgres.New(ctx, cfg.Store.DSN)
	default:
		return nil, fmt.Errorf("unsupported store backend: %q", cfg.Store.Backend)
	}
}

// openDocument loads the config, opens the store, and loads the settings
// document. When loading triggered the legacy-schema migration, the
// upgraded document is persisted right away.
func openDocument(ctx context.Context) (*config.Config, store.Store, *settings.Document, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	doc, migrated, err := st.Load(ctx)
	if err != nil {
		st.Close(ctx)
		return nil, nil, nil, err
	}
	if doc.LumiaOOCInterval == nil && cfg.DefaultOOCInterval > 0 {
		interval := cfg.DefaultOOCInterval
		doc.LumiaOOCInterval = &interval
	}
	if migrated {
		if err := st.Save(ctx, doc); err != nil {
			st.Close(ctx)
			return nil, nil, nil, err
		}
	}
	return cfg, st, doc, nil
}
