// internal/core/ports/store.go
package ports

import "context"

// DomainStore es el colaborador de persistencia consumido por el core.
// El core lo trata como caja negra: solo asume que lo añadido es
// recuperable por la siguiente llamada dentro del mismo run.
type DomainStore interface {
	// ListDomains retorna los dominios conocidos para un scope, ordenados.
	ListDomains(ctx context.Context, scope string) ([]string, error)

	// AddDomains inserta dominios con una etiqueta de origen y retorna
	// cuántos eran realmente nuevos.
	AddDomains(ctx context.Context, scope string, domains []string, sourceTag string) (int, error)

	// Close cierra la conexión con el store.
	Close() error
}
