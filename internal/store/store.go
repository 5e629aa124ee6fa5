// Package store persists the settings document. Backends share one small
// contract: load the whole document, save the whole document.
package store

import (
	"context"

	"lumia/internal/settings"
)

type Store interface {
	// Load returns the persisted document, a fresh one when nothing has
	// been persisted yet, and reports whether a legacy-schema migration
	// ran during decoding (callers should persist promptly when it did).
	Load(ctx context.Context) (*settings.Document, bool, error)
	Save(ctx context.Context, doc *settings.Document) error
	Close(ctx context.Context) error
}
