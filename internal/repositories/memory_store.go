package repositories

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-process Store used by tests and local runs
// without a database. Safe for concurrent use.
type MemoryStore struct {
	mu         sync.RWMutex
	namespaces map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{namespaces: make(map[string]map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, namespace, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.namespaces[namespace][key]
	return value, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, namespace, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns, ok := s.namespaces[namespace]
	if !ok {
		ns = make(map[string]string)
		s.namespaces[namespace] = ns
	}
	ns[key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, namespace, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.namespaces[namespace], key)
	return nil
}

func (s *MemoryStore) List(_ context.Context, namespace string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]Entry, 0, len(s.namespaces[namespace]))
	for k, v := range s.namespaces[namespace] {
		entries = append(entries, Entry{Key: k, Value: v})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}
