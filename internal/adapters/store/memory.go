// Package store provides DomainStore implementations backing the
// persistence collaborator: a durable sqlite store and an in-memory store
// for tests and ephemeral runs.
package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore es un DomainStore en memoria. Pensado para tests y runs
// efímeros; la implementación durable es SQLiteStore.
type MemoryStore struct {
	mu     sync.RWMutex
	scopes map[string]map[string]string // scope -> name -> sourceTag
}

// NewMemoryStore crea un store vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		scopes: make(map[string]map[string]string),
	}
}

// ListDomains retorna los dominios conocidos de un scope, ordenados.
func (m *MemoryStore) ListDomains(_ context.Context, scope string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.scopes[scope]))
	for name := range m.scopes[scope] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// AddDomains inserta dominios y retorna cuántos eran nuevos.
// Las reinserciones no modifican la etiqueta de origen original.
func (m *MemoryStore) AddDomains(_ context.Context, scope string, domains []string, sourceTag string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.scopes[scope] == nil {
		m.scopes[scope] = make(map[string]string)
	}

	added := 0
	for _, name := range domains {
		if _, exists := m.scopes[scope][name]; exists {
			continue
		}
		m.scopes[scope][name] = sourceTag
		added++
	}
	return added, nil
}

// Close implementa ports.DomainStore (no-op).
func (m *MemoryStore) Close() error {
	return nil
}
