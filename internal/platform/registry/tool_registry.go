// internal/platform/registry/tool_registry.go
package registry

import (
	"fmt"
	"sort"
	"sync"

	"scopetree/internal/core/domain"
	"scopetree/internal/core/ports"
	"scopetree/internal/platform/logx"
)

// ToolFactory crea una instancia de Tool a partir de su descriptor.
type ToolFactory func(desc domain.ToolDescriptor, logger logx.Logger) ports.Tool

// ToolRegistry gestiona la tabla de descriptores de herramientas y su
// construcción. Las herramientas nuevas se añaden registrando descriptores,
// no escribiendo lógica de dispatch.
type ToolRegistry struct {
	mu          sync.RWMutex
	descriptors map[string]domain.ToolDescriptor
	factories   map[string]ToolFactory
	logger      logx.Logger
}

// globalRegistry es la instancia global del registry.
var (
	globalRegistry *ToolRegistry
	once           sync.Once
)

// Global retorna la instancia global del registry.
func Global() *ToolRegistry {
	once.Do(func() {
		globalRegistry = NewToolRegistry(logx.New())
	})
	return globalRegistry
}

// NewToolRegistry crea un registry vacío.
func NewToolRegistry(logger logx.Logger) *ToolRegistry {
	return &ToolRegistry{
		descriptors: make(map[string]domain.ToolDescriptor),
		factories:   make(map[string]ToolFactory),
		logger:      logger.With("component", "tool-registry"),
	}
}

// Register registra un descriptor con su factory.
// Típicamente llamado desde init() del catálogo de herramientas.
func (r *ToolRegistry) Register(desc domain.ToolDescriptor, factory ToolFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := desc.Validate(); err != nil {
		return fmt.Errorf("invalid descriptor for %q: %w", desc.Name, err)
	}

	if factory == nil {
		return fmt.Errorf("factory cannot be nil for tool %s", desc.Name)
	}

	if _, exists := r.descriptors[desc.Name]; exists {
		return fmt.Errorf("tool %s is already registered", desc.Name)
	}

	r.descriptors[desc.Name] = desc
	r.factories[desc.Name] = factory
	r.logger.Debug("tool registered", "name", desc.Name, "command", desc.Command)

	return nil
}

// Build construye las herramientas habilitadas y disponibles.
// La configuración es autoritativa sobre habilitación y timeout; las
// herramientas no instaladas se descartan con un warning, nunca con error.
func (r *ToolRegistry) Build(cfg ports.ConfigStore, logger logx.Logger) []ports.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]ports.Tool, 0, len(r.descriptors))

	for _, name := range r.sortedNames() {
		desc := r.descriptors[name]

		if !desc.Enabled || (cfg != nil && !cfg.IsEnabled(name)) {
			logger.Debug("tool disabled, skipping", "tool", name)
			continue
		}

		if cfg != nil {
			if timeout := cfg.TimeoutFor(name); timeout > 0 {
				desc.Timeout = timeout
			}
		}

		tool := r.factories[name](desc, logger)
		if !tool.Available() {
			logger.Warn("tool not installed, skipping",
				"tool", name,
				"command", desc.Command,
			)
			continue
		}

		tools = append(tools, tool)
		logger.Debug("tool built",
			"tool", name,
			"timeout", desc.Timeout.String(),
		)
	}

	logger.Info("tools built", "count", len(tools), "registered", len(r.descriptors))
	return tools
}

// List retorna los nombres de todas las herramientas registradas, ordenados.
func (r *ToolRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedNames()
}

// Descriptor retorna el descriptor de una herramienta.
func (r *ToolRegistry) Descriptor(name string) (domain.ToolDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	desc, exists := r.descriptors[name]
	return desc, exists
}

// Descriptors retorna una copia de todos los descriptores, ordenados por nombre.
func (r *ToolRegistry) Descriptors() []domain.ToolDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.ToolDescriptor, 0, len(r.descriptors))
	for _, name := range r.sortedNames() {
		out = append(out, r.descriptors[name])
	}
	return out
}

// IsRegistered verifica si una herramienta está registrada.
func (r *ToolRegistry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.descriptors[name]
	return exists
}

// Clear elimina todas las herramientas registradas (útil para testing).
func (r *ToolRegistry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.descriptors = make(map[string]domain.ToolDescriptor)
	r.factories = make(map[string]ToolFactory)
}

// sortedNames retorna los nombres registrados en orden alfabético.
// Requiere el lock tomado por el caller.
func (r *ToolRegistry) sortedNames() []string {
	names := make([]string, 0, len(r.descriptors))
	for name := range r.descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
