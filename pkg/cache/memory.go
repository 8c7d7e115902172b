package cache

import (
	"context"
	"path/filepath"
	"sync"
)

// MemoryStore keeps entries in memory. Paths point into a nominal directory
// that is never written to. Useful for testing.
type MemoryStore struct {
	dir string

	mu      sync.Mutex
	entries map[string][]byte
}

// NewMemoryStore creates an empty memory store whose paths are rooted at dir.
// An empty dir selects [DefaultDir].
func NewMemoryStore(dir string) *MemoryStore {
	if dir == "" {
		dir = DefaultDir
	}
	return &MemoryStore{dir: dir, entries: make(map[string][]byte)}
}

// Path returns the nominal path for key.
func (s *MemoryStore) Path(key string) string {
	return filepath.Join(s.dir, key)
}

// Has reports whether key is stored.
func (s *MemoryStore) Has(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[key]
	return ok, nil
}

// Get returns a copy of the stored bytes.
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

// Set stores a copy of data.
func (s *MemoryStore) Set(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = append([]byte(nil), data...)
	return nil
}

// Delete removes key.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Len returns the number of stored entries.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close does nothing.
func (s *MemoryStore) Close() error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
