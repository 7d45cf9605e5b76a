package store

import (
	"bytes"
	"context"
	"sync"
)

// MemoryStore keeps the document in memory. It is used by tests and by
// callers embedding the editor without a content file.
type MemoryStore struct {
	mu      sync.Mutex
	name    string
	data    []byte
	exists  bool
	saveErr error
	saves   int
}

// NewMemoryStore returns a store seeded with data. A nil slice means the
// document does not exist yet.
func NewMemoryStore(data []byte) *MemoryStore {
	s := &MemoryStore{name: "memory"}
	if data != nil {
		s.data = bytes.Clone(data)
		s.exists = true
	}
	return s
}

func (s *MemoryStore) Location() string {
	return s.name
}

func (s *MemoryStore) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.exists {
		return nil, ErrNotFound
	}
	return bytes.Clone(s.data), nil
}

func (s *MemoryStore) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saveErr != nil {
		return s.saveErr
	}
	s.data = bytes.Clone(data)
	s.exists = true
	s.saves++
	return nil
}

// FailSaves makes every following Save return err. Pass nil to recover.
func (s *MemoryStore) FailSaves(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

// Bytes returns the stored document.
func (s *MemoryStore) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return bytes.Clone(s.data)
}

// Saves counts successful saves.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
