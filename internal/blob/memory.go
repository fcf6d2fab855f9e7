package blob

import (
	"context"
	"strings"
	"sync"
)

const memoryScheme = "mem://"

// MemoryStore implements Store backed by process memory. Intended for tests
// and ephemeral local runs.
type MemoryStore struct {
	mu   sync.RWMutex
	objs map[string][]byte
}

// NewMemory returns an in-memory attachment store.
func NewMemory() *MemoryStore {
	return &MemoryStore{objs: make(map[string][]byte)}
}

func (s *MemoryStore) Driver() Driver { return DriverMemory }

func (s *MemoryStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	s.objs[key] = stored
	return memoryScheme + key, nil
}

func (s *MemoryStore) Get(_ context.Context, url string) ([]byte, error) {
	key := strings.TrimPrefix(url, memoryScheme)
	s.mu.RLock()
	data, ok := s.objs[key]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, url string) error {
	key := strings.TrimPrefix(url, memoryScheme)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objs[key]; !ok {
		return ErrNotFound
	}
	delete(s.objs, key)
	return nil
}

// Len reports the number of stored objects.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objs)
}
