// internal/core/ports/config.go
package ports

import "time"

// ConfigStore es el colaborador de configuración consumido por el core.
// El core lo trata como autoritativo: nunca hardcodea habilitación ni
// timeouts de herramientas.
type ConfigStore interface {
	// IsEnabled indica si la herramienta está habilitada
	IsEnabled(tool string) bool

	// TimeoutFor retorna el timeout por intento de la herramienta.
	// Cero significa "usar el default del descriptor".
	TimeoutFor(tool string) time.Duration
}
