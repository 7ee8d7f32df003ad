package sysconfig

import (
	"context"
	"sort"
	"sync"

	"govassist/pkg/platform/sentinel"
)

// MemoryStore is an in-memory Store for unit tests.
type MemoryStore struct {
	mu       sync.RWMutex
	settings map[string]Setting
}

// NewMemoryStore constructs an empty in-memory configuration store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{settings: make(map[string]Setting)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (*Setting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	setting, ok := s.settings[key]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &setting, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Setting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Setting, 0, len(s.settings))
	for _, setting := range s.settings {
		out = append(out, setting)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *MemoryStore) Upsert(ctx context.Context, setting Setting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[setting.Key] = setting
	return nil
}
