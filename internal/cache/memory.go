package cache

import (
	"context"
	"sync"
)

// MemoryBackend keeps the record in process memory. Used by tests and when
// no durable cache is wanted.
type MemoryBackend struct {
	mu    sync.Mutex
	rec   Record
	found bool
	// FailSave makes Save return this error, for exercising write failures.
	FailSave error
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (b *MemoryBackend) Load(_ context.Context) (Record, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.found {
		return Record{}, false, nil
	}
	data := make([]byte, len(b.rec.Data))
	copy(data, b.rec.Data)
	return Record{Data: data, LastModified: b.rec.LastModified}, true, nil
}

func (b *MemoryBackend) Save(_ context.Context, rec Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailSave != nil {
		return b.FailSave
	}
	data := make([]byte, len(rec.Data))
	copy(data, rec.Data)
	b.rec = Record{Data: data, LastModified: rec.LastModified}
	b.found = true
	return nil
}

func (b *MemoryBackend) Clear(_ context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rec = Record{}
	b.found = false
	return nil
}

func (b *MemoryBackend) Close() error { return nil }
