package state

import (
	"context"
	"sort"
	"sync"

	opts "github.com/goliatone/go-muxopts"
)

// MemoryStore is an in-memory Store keyed by Ref.Identifier(). Registries are
// cloned on the way in and out so callers never share state with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*opts.Registry
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string]*opts.Registry{}}
}

func (s *MemoryStore) Load(_ context.Context, ref Ref) (*opts.Registry, bool, error) {
	key, err := ref.Identifier()
	if err != nil {
		return nil, false, err
	}

	s.mu.RLock()
	reg, ok := s.records[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	return reg.Clone(), true, nil
}

func (s *MemoryStore) Save(_ context.Context, ref Ref, reg *opts.Registry) error {
	key, err := ref.Identifier()
	if err != nil {
		return err
	}
	if reg == nil {
		reg = opts.NewRegistry()
	}

	s.mu.Lock()
	s.records[key] = reg.Clone()
	s.mu.Unlock()
	return nil
}

// Keys returns the stored identifiers in sorted order.
func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.records))
	for key := range s.records {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
