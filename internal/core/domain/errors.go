// internal/core/domain/errors.go
package domain

import "errors"

// Errores de dominio comunes.
var (
	// Target errors
	ErrEmptyTarget   = errors.New("target cannot be empty")
	ErrInvalidTarget = errors.New("invalid target domain")

	// Tool errors
	ErrToolNotRegistered = errors.New("tool not registered")
	ErrToolNotInstalled  = errors.New("tool executable not installed")
	ErrToolTimeout       = errors.New("tool execution timeout")
	ErrToolExecution     = errors.New("tool execution failed")

	// Run errors
	ErrNoToolsAvailable = errors.New("no tools available for enumeration")
	ErrRunCanceled      = errors.New("enumeration run was canceled")

	// Store errors
	ErrStoreUnavailable = errors.New("domain store unavailable")
)
