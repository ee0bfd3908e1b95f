package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/suzuryg/facial-expression-switcher/pkg/domain"
)

// Store implements ports.OutputStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]map[string][]byte
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]map[string][]byte),
	}
}

// Create allocates a namespace.
func (s *Store) Create(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[name]; ok {
		return domain.ErrOutputExists
	}
	s.data[name] = make(map[string][]byte)
	return nil
}

// Put stores a copy of data so the caller can reuse its buffer.
func (s *Store) Put(_ context.Context, name, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns, ok := s.data[name]
	if !ok {
		return domain.ErrOutputNotFound
	}
	ns[key] = append([]byte(nil), data...)
	return nil
}

// Get returns a copy of the artifact.
func (s *Store) Get(_ context.Context, name, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.data[name][key]
	if !ok {
		return nil, domain.ErrOutputNotFound
	}
	return append([]byte(nil), data...), nil
}

// List returns all namespace names, sorted.
func (s *Store) List(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a namespace.
func (s *Store) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[name]; !ok {
		return domain.ErrOutputNotFound
	}
	delete(s.data, name)
	return nil
}

// Installation implements ports.Installation in memory.
type Installation struct {
	mu   sync.RWMutex
	refs map[string]domain.ArtifactRef
}

// NewInstallation creates an empty installation.
func NewInstallation() *Installation {
	return &Installation{refs: make(map[string]domain.ArtifactRef)}
}

// Installed returns a copy of the target → reference map.
func (i *Installation) Installed(context.Context) (map[string]domain.ArtifactRef, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	out := make(map[string]domain.ArtifactRef, len(i.refs))
	for k, v := range i.refs {
		out[k] = v
	}
	return out, nil
}

// Install attaches ref to target.
func (i *Installation) Install(_ context.Context, target string, ref domain.ArtifactRef) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.refs[target] = ref
	return nil
}
