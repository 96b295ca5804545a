// Package store holds the in-memory entity collections every other component
// reads from, whichever backing mode supplied them.
//
// Writers are serialized by a mutex and work on a private clone of the
// current state; the clone is published only when the write function returns
// nil, so readers never observe a half-applied mutation.
package store

import (
	"sync"
	"time"
)

// Store is the single in-memory source of truth for one session.
type Store struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	state   *state
	nowFn   func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for Tx.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.nowFn = now
		}
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		state: newState(),
		nowFn: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// View returns the currently published state.
func (s *Store) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{s: s.state}
}

// Snapshot is shorthand for View().Snapshot().
func (s *Store) Snapshot() Snapshot {
	return s.View().Snapshot()
}

// Write runs fn against a clone of the current state and publishes the clone
// if fn returns nil. On error the store is left untouched.
func (s *Store) Write(fn func(tx *Tx) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	working := s.state.clone()
	s.mu.RUnlock()

	tx := &Tx{View: View{s: working}, now: normalizeTime(s.nowFn())}
	if err := fn(tx); err != nil {
		return err
	}

	s.mu.Lock()
	s.state = working
	s.mu.Unlock()
	return nil
}

// Replace swaps the whole state for the contents of snap.
func (s *Store) Replace(snap Snapshot) {
	_ = s.Write(func(tx *Tx) error {
		tx.ReplaceAll(snap)
		return nil
	})
}

// Clear removes every entity.
func (s *Store) Clear() {
	s.Replace(EmptySnapshot())
}
