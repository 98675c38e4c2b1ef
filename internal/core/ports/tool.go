// internal/core/ports/tool.go
package ports

import (
	"context"

	"scopetree/internal/core/domain"
)

// Tool es el port primario para adaptadores de herramientas externas de
// enumeración. Cualquier herramienta (subfinder, amass, ...) se consume a
// través de esta interfaz.
type Tool interface {
	// Name retorna el identificador único de la herramienta
	Name() string

	// Available verifica si el ejecutable subyacente es resoluble en PATH.
	// Puro y barato (solo lookup de path); puede llamarse repetidamente.
	Available() bool

	// Run ejecuta la herramienta contra el target bajo su timeout por
	// intento. Los fallos (timeout, error de ejecución, no instalada) se
	// reportan dentro del RawResult, nunca como pánico ni como fallo que
	// aborte al caller; el resultado siempre es atribuible a la herramienta.
	Run(ctx context.Context, target domain.Target) *domain.RawResult

	// Close termina cualquier proceso hijo en vuelo y libera recursos.
	// Idempotente.
	Close() error
}
