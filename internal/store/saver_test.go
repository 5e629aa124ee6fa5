package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"lumia/internal/settings"
)

type recordingStore struct {
	mu    sync.Mutex
	saves int
	last  *settings.Document
}

func (r *recordingStore) Load(ctx context.Context) (*settings.Document, bool, error) {
	return settings.New(), false, nil
}

func (r *recordingStore) Save(ctx context.Context, doc *settings.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	r.last = doc
	return nil
}

func (r *recordingStore) Close(ctx context.Context) error { return nil }

func (r *recordingStore) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

func TestSaverCoalesces(t *testing.T) {
	rec := &recordingStore{}
	saver := NewSaver(rec, 20*time.Millisecond)

	doc := settings.New()
	saver.Schedule(doc)
	saver.Schedule(doc)
	saver.Schedule(doc)

	time.Sleep(80 * time.Millisecond)
	if got := rec.count(); got != 1 {
		t.Fatalf("expected one coalesced save, got %d", got)
	}
}

func TestSaverSaveNowCancelsPending(t *testing.T) {
	rec := &recordingStore{}
	saver := NewSaver(rec, 20*time.Millisecond)

	doc := settings.New()
	saver.Schedule(doc)
	if err := saver.SaveNow(context.Background(), doc); err != nil {
		t.Fatalf("save now: %v", err)
	}
	if got := rec.count(); got != 1 {
		t.Fatalf("expected one immediate save, got %d", got)
	}

	time.Sleep(60 * time.Millisecond)
	if got := rec.count(); got != 1 {
		t.Fatalf("debounced save fired after SaveNow superseded it: %d", got)
	}
}

func TestSaverFlush(t *testing.T) {
	rec := &recordingStore{}
	saver := NewSaver(rec, time.Hour)

	doc := settings.New()
	saver.Schedule(doc)
	if err := saver.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if got := rec.count(); got != 1 {
		t.Fatalf("expected flush to run the pending save, got %d", got)
	}

	// Nothing pending: flush is a no-op.
	if err := saver.Flush(context.Background()); err != nil {
		t.Fatalf("empty flush: %v", err)
	}
	if got := rec.count(); got != 1 {
		t.Fatalf("empty flush saved anyway: %d", got)
	}
}
