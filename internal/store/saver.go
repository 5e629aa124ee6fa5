package store

import (
	"context"
	"sync"
	"time"

	"lumia/internal/settings"
)

// Saver debounces writes: rapid successive mutations coalesce into a single
// save once the window elapses. SaveNow bypasses the window for settings
// that must survive an immediate crash.
type Saver struct {
	store Store
	delay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending *settings.Document
	lastErr error
}

func NewSaver(store Store, delay time.Duration) *Saver {
	return &Saver{store: store, delay: delay}
}

// Schedule queues a save after the debounce window, superseding any save
// already queued.
func (s *Saver) Schedule(doc *settings.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = doc
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.fire)
}

// SaveNow writes immediately, cancelling any pending debounced save, which
// the write it performs supersedes.
func (s *Saver) SaveNow(ctx context.Context, doc *settings.Document) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending = nil
	s.mu.Unlock()
	return s.store.Save(ctx, doc)
}

func (s *Saver) fire() {
	s.mu.Lock()
	doc := s.pending
	s.pending = nil
	s.mu.Unlock()
	if doc == nil {
		return
	}
	if err := s.store.Save(context.Background(), doc); err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
	}
}

// Flush cancels the window and runs any pending save synchronously. It also
// surfaces the most recent background save error.
func (s *Saver) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	doc := s.pending
	s.pending = nil
	err := s.lastErr
	s.lastErr = nil
	s.mu.Unlock()

	if doc != nil {
		return s.store.Save(ctx, doc)
	}
	return err
}
