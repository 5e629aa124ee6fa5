// Package sqlite persists the settings document in a single-row sqlite
// table, for hosts that keep extension state in their own database file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lumia/internal/settings"
	"lumia/internal/store"

	_ "modernc.org/sqlite"
)

var _ store.Store = (*Client)(nil)

type Client struct {
	db *sql.DB
}

func New(ctx context.Context, dsn string) (*Client, error) {
	driverDSN, err := parseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing sqlite DSN: %w", err)
	}

	db, err := sql.Open("sqlite", driverDSN)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA busy_timeout = 30000;",
		"PRAGMA journal_mode = WAL;",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", pragma, err)
		}
	}

	ddl := `
	CREATE TABLE IF NOT EXISTS lumia_settings (
		id         INTEGER PRIMARY KEY CHECK (id = 1),
		document   TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT (datetime('now'))
	);
	`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensuring settings table: %w", err)
	}

	return &Client{db: db}, nil
}

func (c *Client) Load(ctx context.Context) (*settings.Document, bool, error) {
	var document string
	err := c.db.QueryRowContext(ctx, `SELECT document FROM lumia_settings WHERE id = 1`).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return settings.New(), false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading settings: %w", err)
	}
	doc, migrated, err := settings.Decode([]byte(document))
	if err != nil {
		return nil, false, fmt.Errorf("loading settings: %w", err)
	}
	return doc, migrated, nil
}

func (c *Client) Save(ctx context.Context, doc *settings.Document) error {
	data, err := doc.Encode()
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	query := `
	INSERT INTO lumia_settings (id, document, updated_at)
	VALUES (1, ?, datetime('now'))
	ON CONFLICT (id) DO UPDATE SET
		document = excluded.document,
		updated_at = datetime('now')
	`
	if _, err := c.db.ExecContext(ctx, query, string(data)); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

func (c *Client) Close(ctx context.Context) error {
	return c.db.Close()
}
