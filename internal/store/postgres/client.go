// Package postgres persists the settings document as a single jsonb row,
// for multi-machine setups sharing one settings store.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lumia/internal/settings"
	"lumia/internal/store"
)

var _ store.Store = (*Client)(nil)

type Client struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*Client, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}

	ddl := `
	CREATE TABLE IF NOT EXISTS lumia_settings (
		id         INTEGER PRIMARY KEY CHECK (id = 1),
		document   JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
	`
	if _, err := pool.Exec(ctx, ddl); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensuring settings table: %w", err)
	}

	return &Client{pool: pool}, nil
}

func (c *Client) Load(ctx context.Context) (*settings.Document, bool, error) {
	var document []byte
	err := c.pool.QueryRow(ctx, `SELECT document FROM lumia_settings WHERE id = 1`).Scan(&document)
	if errors.Is(err, pgx.ErrNoRows) {
		return settings.New(), false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading settings: %w", err)
	}
	doc, migrated, err := settings.Decode(document)
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
	VALUES (1, $1, now())
	ON CONFLICT (id) DO UPDATE SET
		document = excluded.document,
		updated_at = now()
	`
	if _, err := c.pool.Exec(ctx, query, data); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

func (c *Client) Close(ctx context.Context) error {
	c.pool.Close()
	return nil
}
