// internal/core/usecases/module.go
package usecases

import (
	"context"
	"fmt"

	"scopetree/internal/core/domain"
	"scopetree/internal/core/ports"
	"scopetree/internal/platform/logx"
	"scopetree/internal/platform/registry"
)

// SourceTagPassive es la etiqueta de origen con la que se persisten los
// dominios descubiertos por enumeración pasiva.
const SourceTagPassive = "passive"

// SubdomainModule es el driver de la enumeración de subdominios: resuelve el
// conjunto de herramientas activas desde la configuración, invoca al
// supervisor, agrega la salida y persiste el conjunto final.
type SubdomainModule struct {
	registry   *registry.ToolRegistry
	config     ports.ConfigStore
	store      ports.DomainStore
	supervisor *Supervisor
	aggregator *Aggregator
	logger     logx.Logger
}

// SubdomainModuleOptions configura el módulo.
type SubdomainModuleOptions struct {
	Registry   *registry.ToolRegistry
	Config     ports.ConfigStore
	Store      ports.DomainStore
	Supervisor *Supervisor
	Aggregator *Aggregator
	Logger     logx.Logger
}

// NewSubdomainModule crea el módulo de enumeración.
func NewSubdomainModule(opts SubdomainModuleOptions) *SubdomainModule {
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	if opts.Registry == nil {
		opts.Registry = registry.Global()
	}
	if opts.Supervisor == nil {
		opts.Supervisor = NewSupervisor(SupervisorOptions{Logger: opts.Logger})
	}
	if opts.Aggregator == nil {
		opts.Aggregator = NewAggregator(opts.Logger)
	}

	return &SubdomainModule{
		registry:   opts.Registry,
		config:     opts.Config,
		store:      opts.Store,
		supervisor: opts.Supervisor,
		aggregator: opts.Aggregator,
		logger:     opts.Logger.With("module", "subdomain"),
	}
}

// Name retorna el nombre del módulo.
func (m *SubdomainModule) Name() string {
	return "subdomain-enumeration"
}

// Run ejecuta un run completo de enumeración contra rawTarget.
//
// Solo un target inválido aborta el run (ErrInvalidTarget, antes de lanzar
// proceso alguno). Un conjunto de herramientas vacío produce un resultado
// vacío con warning, no un error. Los fallos por herramienta se absorben y
// degradan su contribución a vacío. Un fallo del store se degrada a warning:
// el caller siempre recibe el conjunto canónico.
func (m *SubdomainModule) Run(ctx context.Context, rawTarget string) (*domain.EnumResult, error) {
	// 1. Validar target (fail-fast).
	target, err := domain.NewTarget(rawTarget)
	if err != nil {
		return nil, err
	}

	m.logger.Info("enumerating", "target", target.Root())

	// 2. Construir herramientas habilitadas y disponibles.
	tools := m.registry.Build(m.config, m.logger)
	defer func() {
		for _, t := range tools {
			if closeErr := t.Close(); closeErr != nil {
				m.logger.Warn("failed to close tool",
					"tool", t.Name(),
					"error", closeErr.Error(),
				)
			}
		}
	}()

	// 3. Sin herramientas: resultado vacío con warning, sin escalado.
	if len(tools) == 0 {
		m.logger.Warn("no tools available", "target", target.Root())
		result := domain.NewEnumResult(target)
		result.AddWarning(m.Name(), domain.ErrNoToolsAvailable.Error())
		result.Finalize()
		return result, nil
	}

	// Dominios ya conocidos para el scope (solo informativo).
	knownBefore := 0
	if m.store != nil {
		if existing, listErr := m.store.ListDomains(ctx, target.Root()); listErr != nil {
			m.logger.Warn("failed to list known domains", "error", listErr.Error())
		} else {
			knownBefore = len(existing)
		}
	}

	// 4. Supervisor + agregador.
	raws, err := m.supervisor.Execute(ctx, target, tools)
	if err != nil {
		return nil, err
	}

	result := m.aggregator.Aggregate(target, raws)
	result.Stats.KnownBefore = knownBefore

	// Advertencias por herramienta fallida: ningún fallo se pierde en
	// silencio.
	for toolName, raw := range raws {
		if raw.Failed() {
			result.AddWarning(toolName, fmt.Sprintf(
				"%v (attempts=%d, partial_lines=%d)",
				raw.Err(), raw.Attempts, len(raw.Lines),
			))
		}
	}

	// 5. Persistir: exactamente una llamada de inserción por run exitoso.
	if m.store != nil {
		added, addErr := m.store.AddDomains(ctx, target.Root(), result.Keys(), SourceTagPassive)
		if addErr != nil {
			m.logger.Warn("failed to persist domains", "error", addErr.Error())
			result.AddWarning("store", addErr.Error())
		} else {
			result.Stats.NewlyAdded = added
			m.logger.Info("domains persisted",
				"added", added,
				"total", result.Len(),
				"source", SourceTagPassive,
			)
		}
	}

	m.logger.Info("enumeration completed",
		"target", target.Root(),
		"unique", result.Stats.Unique,
		"corroborated", result.Stats.Corroborated,
		"raw_lines", result.Stats.RawLines,
		"warnings", len(result.Warnings),
	)

	return result, nil
}
