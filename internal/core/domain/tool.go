// internal/core/domain/tool.go
package domain

import "time"

// ArgsBuilder construye la línea de argumentos de una herramienta para un
// dominio objetivo concreto.
type ArgsBuilder func(targetRoot string) []string

// ToolDescriptor describe una herramienta externa de enumeración.
// Es una entrada estática de la tabla de herramientas: las nuevas
// herramientas se añaden como descriptores, no como tipos nuevos.
type ToolDescriptor struct {
	// Name es el identificador único de la herramienta (ej: "subfinder")
	Name string

	// Command es el nombre del ejecutable a resolver en PATH
	Command string

	// Args construye los argumentos para un target dado
	Args ArgsBuilder

	// Timeout es el límite de tiempo por intento de ejecución
	Timeout time.Duration

	// Enabled indica si la herramienta está habilitada por defecto;
	// la configuración puede sobreescribirlo
	Enabled bool
}

// Validate verifica que el descriptor esté completo.
func (d ToolDescriptor) Validate() error {
	if d.Name == "" || d.Command == "" {
		return ErrToolNotRegistered
	}
	if d.Args == nil {
		return ErrToolNotRegistered
	}
	if d.Timeout <= 0 {
		return ErrToolNotRegistered
	}
	return nil
}
