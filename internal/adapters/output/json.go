// internal/adapters/output/json.go
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"scopetree/internal/core/domain"
)

// Export es el schema JSON de un run de enumeración.
type Export struct {
	RunID      string            `json:"run_id"`
	Target     string            `json:"target"`
	Items      []ExportItem      `json:"items"`
	Stats      ExportStats       `json:"stats"`
	Outcomes   map[string]string `json:"tool_outcomes"`
	Warnings   []ExportWarning   `json:"warnings,omitempty"`
	StartTime  time.Time         `json:"start_time"`
	DurationMS int64             `json:"duration_ms"`
}

// ExportItem es un subdominio canónico con su procedencia.
type ExportItem struct {
	Key        string   `json:"key"`
	Confidence int      `json:"confidence"`
	Sources    []string `json:"sources"`
}

// ExportStats son las estadísticas del run.
type ExportStats struct {
	RawLines     int `json:"raw_lines"`
	Unique       int `json:"unique"`
	Corroborated int `json:"corroborated"`
	NewlyAdded   int `json:"newly_added"`
	KnownBefore  int `json:"known_before"`
}

// ExportWarning es una advertencia del run.
type ExportWarning struct {
	Source  string `json:"source"`
	Message string `json:"message"`
}

// BuildExport construye el schema de export desde un EnumResult.
func BuildExport(result *domain.EnumResult) Export {
	items := make([]ExportItem, 0, result.Len())
	for _, item := range result.Items() {
		items = append(items, ExportItem{
			Key:        item.Key,
			Confidence: item.Confidence(),
			Sources:    item.Sources(),
		})
	}

	outcomes := make(map[string]string, len(result.ToolOutcomes))
	for tool, outcome := range result.ToolOutcomes {
		outcomes[tool] = string(outcome)
	}

	warnings := make([]ExportWarning, 0, len(result.Warnings))
	for _, w := range result.Warnings {
		warnings = append(warnings, ExportWarning{Source: w.Source, Message: w.Message})
	}

	return Export{
		RunID:  result.RunID,
		Target: result.Target.Root(),
		Items:  items,
		Stats: ExportStats{
			RawLines:     result.Stats.RawLines,
			Unique:       result.Stats.Unique,
			Corroborated: result.Stats.Corroborated,
			NewlyAdded:   result.Stats.NewlyAdded,
			KnownBefore:  result.Stats.KnownBefore,
		},
		Outcomes:   outcomes,
		Warnings:   warnings,
		StartTime:  result.StartTime,
		DurationMS: result.Duration.Milliseconds(),
	}
}

// WriteJSON exporta el resultado a un fichero JSON dentro de dir.
// Retorna la ruta del fichero escrito.
func WriteJSON(dir string, result *domain.EnumResult) (string, error) {
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := result.StartTime.Format("20060102_150405")
	filename := fmt.Sprintf("scopetree_%s_%s.json",
		sanitizeDomainName(result.Target.Root()), timestamp)
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(BuildExport(result)); err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}

	return path, nil
}

// sanitizeDomainName convierte un dominio en un fragmento de nombre de
// fichero válido. Ejemplo: "example.com" -> "example_com"
func sanitizeDomainName(domain string) string {
	sanitized := strings.ReplaceAll(domain, ".", "_")
	sanitized = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			return r
		}
		return '_'
	}, sanitized)
	return sanitized
}
