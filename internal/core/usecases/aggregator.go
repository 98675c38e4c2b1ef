// internal/core/usecases/aggregator.go
package usecases

import (
	"strings"

	"scopetree/internal/core/domain"
	"scopetree/internal/platform/logx"
	"scopetree/internal/platform/validator"
)

// Aggregator normaliza la salida cruda por herramienta en items canónicos,
// deduplica entre herramientas y deriva confianza de la procedencia.
// Es determinista e idempotente: agregaciones repetidas del mismo mapping
// producen exactamente el mismo resultado (la procedencia es un conjunto,
// no una lista, y no depende del orden de finalización).
type Aggregator struct {
	logger logx.Logger
}

// NewAggregator crea un agregador.
func NewAggregator(logger logx.Logger) *Aggregator {
	if logger == nil {
		logger = logx.New()
	}
	return &Aggregator{
		logger: logger.With("component", "aggregator"),
	}
}

// Aggregate consume el mapping por herramienta del supervisor y construye el
// resultado canónico. Por cada línea cruda, en orden:
//  1. minúsculas y recorte de espacios;
//  2. descarta vacías;
//  3. descarta las que empiezan por comodín (*);
//  4. descarta las que no son sufijo sintáctico del target (fuga cross-scope);
//  5. descarta nombres sintácticamente inválidos;
//  6. une la herramienta productora a la procedencia de la clave.
func (a *Aggregator) Aggregate(
	target domain.Target,
	raws map[string]*domain.RawResult,
) *domain.EnumResult {
	result := domain.NewEnumResult(target)

	rawLines := 0
	dropped := 0

	for toolName, raw := range raws {
		if raw == nil {
			continue
		}

		result.ToolOutcomes[toolName] = raw.Outcome

		for _, line := range raw.Lines {
			rawLines++

			name := strings.ToLower(strings.TrimSpace(line))
			if name == "" {
				dropped++
				continue
			}

			if strings.HasPrefix(name, "*") {
				a.logger.Debug("dropping wildcard entry", "tool", toolName, "line", name)
				dropped++
				continue
			}

			if !target.InScope(name) {
				a.logger.Debug("dropping out-of-scope entry",
					"tool", toolName,
					"line", name,
					"target", target.Root(),
				)
				dropped++
				continue
			}

			if !validator.IsDomain(name) {
				a.logger.Debug("dropping invalid entry", "tool", toolName, "line", name)
				dropped++
				continue
			}

			result.Add(name, toolName)
		}
	}

	result.Stats.RawLines = rawLines
	result.Finalize()

	a.logger.Info("aggregation completed",
		"target", target.Root(),
		"raw_lines", rawLines,
		"dropped", dropped,
		"unique", result.Stats.Unique,
		"corroborated", result.Stats.Corroborated,
	)

	return result
}
