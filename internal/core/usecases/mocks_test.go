// internal/core/usecases/mocks_test.go
package usecases

import (
	"context"
	"sync"
	"time"

	"scopetree/internal/core/domain"
)

// mockTool implementa ports.Tool con una secuencia de outcomes programada.
// El último outcome de la secuencia se repite si se agota.
type mockTool struct {
	name      string
	available bool
	outcomes  []domain.Outcome
	lines     []string

	mu     sync.Mutex
	calls  int
	closed bool
}

func newMockTool(name string, lines []string, outcomes ...domain.Outcome) *mockTool {
	if len(outcomes) == 0 {
		outcomes = []domain.Outcome{domain.OutcomeOK}
	}
	return &mockTool{
		name:      name,
		available: true,
		outcomes:  outcomes,
		lines:     lines,
	}
}

func (m *mockTool) Name() string    { return m.name }
func (m *mockTool) Available() bool { return m.available }

func (m *mockTool) Run(_ context.Context, _ domain.Target) *domain.RawResult {
	m.mu.Lock()
	idx := m.calls
	m.calls++
	m.mu.Unlock()

	if idx >= len(m.outcomes) {
		idx = len(m.outcomes) - 1
	}

	result := domain.NewRawResult(m.name)
	result.Outcome = m.outcomes[idx]
	// OK entrega la salida completa; ExecutionError conserva el stdout
	// parcial, igual que el adaptador real.
	if result.Outcome == domain.OutcomeOK || result.Outcome == domain.OutcomeExecutionError {
		result.Lines = append([]string{}, m.lines...)
	}
	return result
}

func (m *mockTool) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockTool) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockTool) wasClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// mockConfig implementa ports.ConfigStore.
type mockConfig struct {
	disabled map[string]bool
	timeouts map[string]time.Duration
}

func newMockConfig() *mockConfig {
	return &mockConfig{
		disabled: make(map[string]bool),
		timeouts: make(map[string]time.Duration),
	}
}

func (m *mockConfig) IsEnabled(tool string) bool {
	return !m.disabled[tool]
}

func (m *mockConfig) TimeoutFor(tool string) time.Duration {
	return m.timeouts[tool]
}

// mockStore implementa ports.DomainStore contabilizando llamadas.
type mockStore struct {
	mu        sync.Mutex
	existing  []string
	listErr   error
	addErr    error
	addCalls  int
	lastScope string
	lastNames []string
	lastTag   string
}

func (m *mockStore) ListDomains(_ context.Context, _ string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]string{}, m.existing...), nil
}

func (m *mockStore) AddDomains(_ context.Context, scope string, domains []string, sourceTag string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addCalls++
	if m.addErr != nil {
		return 0, m.addErr
	}
	m.lastScope = scope
	m.lastNames = append([]string{}, domains...)
	m.lastTag = sourceTag

	known := make(map[string]bool, len(m.existing))
	for _, d := range m.existing {
		known[d] = true
	}
	added := 0
	for _, d := range domains {
		if !known[d] {
			added++
		}
	}
	return added, nil
}

func (m *mockStore) Close() error { return nil }
