// Package file persists the settings document as a JSON file, written
// atomically via a rename.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"lumia/internal/settings"
	"lumia/internal/store"
)

var _ store.Store = (*Client)(nil)

type Client struct {
	path string
}

func New(path string) *Client {
	return &Client{path: path}
}

func (c *Client) Load(ctx context.Context) (*settings.Document, bool, error) {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return settings.New(), false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading settings file: %w", err)
	}
	doc, migrated, err := settings.Decode(data)
	if err != nil {
		return nil, false, fmt.Errorf("reading settings file: %w", err)
	}
	return doc, migrated, nil
}

func (c *Client) Save(ctx context.Context, doc *settings.Document) error {
	data, err := doc.Encode()
	if err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}

	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, ".lumia-*.json")
	if err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing settings file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing settings file: %w", err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing settings file: %w", err)
	}
	return nil
}

func (c *Client) Close(ctx context.Context) error {
	return nil
}
