// internal/core/domain/raw_result.go
package domain

import "time"

// Outcome clasifica el desenlace de la ejecución de una herramienta.
type Outcome string

const (
	// OutcomeOK indica ejecución correcta (salida cero, stdout capturado).
	OutcomeOK Outcome = "ok"

	// OutcomeTimeout indica que el intento superó su límite de tiempo;
	// el proceso hijo fue terminado y la salida descartada.
	OutcomeTimeout Outcome = "timeout"

	// OutcomeExecutionError indica salida distinta de cero; el stdout
	// parcial capturado se conserva.
	OutcomeExecutionError Outcome = "execution_error"

	// OutcomeNotInstalled indica que el ejecutable no es resoluble en PATH.
	OutcomeNotInstalled Outcome = "not_installed"
)

// RawResult es la salida cruda de una herramienta para un run.
// Pertenece en exclusiva al supervisor durante la ejecución y se descarta
// tras la agregación.
type RawResult struct {
	// Tool identificador de la herramienta que produjo la salida
	Tool string

	// Lines líneas de stdout, recortadas y sin vacíos (única
	// normalización en esta capa)
	Lines []string

	// Outcome desenlace de la ejecución
	Outcome Outcome

	// Stderr contenido capturado del flujo de error (para diagnóstico)
	Stderr string

	// Attempts número de intentos consumidos (1 = sin reintentos)
	Attempts int

	// Duration tiempo total de ejecución del último intento
	Duration time.Duration
}

// NewRawResult crea un RawResult vacío para una herramienta.
func NewRawResult(tool string) *RawResult {
	return &RawResult{
		Tool:     tool,
		Lines:    []string{},
		Outcome:  OutcomeOK,
		Attempts: 1,
	}
}

// Failed indica si la ejecución terminó en fallo (el run continúa igualmente;
// la herramienta contribuye con su salida parcial o vacía).
func (r *RawResult) Failed() bool {
	return r.Outcome != OutcomeOK
}

// Retryable indica si el fallo justifica un reintento. NotInstalled es
// terminal: el binario no va a aparecer entre intentos.
func (r *RawResult) Retryable() bool {
	return r.Outcome == OutcomeTimeout || r.Outcome == OutcomeExecutionError
}

// Err mapea el outcome a su error de dominio, o nil si fue OK.
func (r *RawResult) Err() error {
	switch r.Outcome {
	case OutcomeTimeout:
		return ErrToolTimeout
	case OutcomeExecutionError:
		return ErrToolExecution
	case OutcomeNotInstalled:
		return ErrToolNotInstalled
	default:
		return nil
	}
}
