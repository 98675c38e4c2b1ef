// internal/core/domain/target.go
package domain

import (
	"fmt"

	"scopetree/internal/platform/validator"
)

// Target representa el dominio raíz objetivo de una enumeración.
// Es inmutable: se valida y normaliza una única vez al crearlo.
type Target struct {
	root string
}

// NewTarget normaliza y valida un dominio raíz.
// Retorna ErrEmptyTarget o ErrInvalidTarget si la sintaxis no es válida;
// ningún proceso hijo se lanza con un target inválido.
func NewTarget(root string) (Target, error) {
	normalized := validator.NormalizeDomain(root)
	if normalized == "" {
		return Target{}, ErrEmptyTarget
	}

	if !validator.IsDomain(normalized) {
		return Target{}, fmt.Errorf("%w: %q", ErrInvalidTarget, root)
	}

	return Target{root: normalized}, nil
}

// Root retorna el dominio raíz normalizado.
func (t Target) Root() string {
	return t.root
}

// InScope verifica si name es el propio target o un subdominio sintáctico.
// Comparación por sufijo, nunca por substring: "notexample.com" queda fuera
// del scope de "example.com".
func (t Target) InScope(name string) bool {
	return validator.InScopeOf(name, t.root)
}

// IsZero indica si el target no fue inicializado via NewTarget.
func (t Target) IsZero() bool {
	return t.root == ""
}

// String retorna una representación legible del target.
func (t Target) String() string {
	return t.root
}
