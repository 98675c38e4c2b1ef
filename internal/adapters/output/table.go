// internal/adapters/output/table.go
package output

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"scopetree/internal/core/domain"
)

// PrintTable imprime el resultado de un run en terminal: tabla de
// subdominios con confianza y procedencia, más el resumen del run.
func PrintTable(result *domain.EnumResult) error {
	pterm.DefaultSection.Printf("Subdomains for %s", result.Target.Root())

	items := result.Items()
	if len(items) == 0 {
		pterm.Info.Println("No subdomains discovered.")
	} else {
		rows := pterm.TableData{
			{"SUBDOMAIN", "CONFIDENCE", "SOURCES"},
		}
		for _, item := range items {
			rows = append(rows, []string{
				item.Key,
				strconv.Itoa(item.Confidence()),
				strings.Join(item.Sources(), ","),
			})
		}

		if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}
	}

	// Resumen del run
	pterm.Println()
	pterm.Info.Printf("raw=%d unique=%d corroborated=%d new=%d known_before=%d duration=%s\n",
		result.Stats.RawLines,
		result.Stats.Unique,
		result.Stats.Corroborated,
		result.Stats.NewlyAdded,
		result.Stats.KnownBefore,
		result.Duration.Round(time.Millisecond),
	)

	// Desenlace por herramienta, en orden estable
	tools := make([]string, 0, len(result.ToolOutcomes))
	for tool := range result.ToolOutcomes {
		tools = append(tools, tool)
	}
	sort.Strings(tools)
	for _, tool := range tools {
		if outcome := result.ToolOutcomes[tool]; outcome != domain.OutcomeOK {
			pterm.Warning.Printf("%s: %s\n", tool, outcome)
		}
	}

	// Warnings del run
	for _, w := range result.Warnings {
		pterm.Warning.Printf("[%s] %s\n", w.Source, w.Message)
	}

	return nil
}

// PrintCatalog imprime la tabla de herramientas registradas y su estado de
// instalación (modo check).
func PrintCatalog(descs []domain.ToolDescriptor, available map[string]bool) error {
	pterm.DefaultSection.Println("Registered tools")

	rows := pterm.TableData{
		{"TOOL", "COMMAND", "TIMEOUT", "ENABLED", "INSTALLED"},
	}
	for _, d := range descs {
		installed := "no"
		if available[d.Name] {
			installed = "yes"
		}
		enabled := "no"
		if d.Enabled {
			enabled = "yes"
		}
		rows = append(rows, []string{
			d.Name,
			d.Command,
			d.Timeout.String(),
			enabled,
			installed,
		})
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		return fmt.Errorf("failed to render catalog table: %w", err)
	}
	return nil
}
