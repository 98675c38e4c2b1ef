// internal/core/usecases/supervisor.go
package usecases

import (
	"context"
	"fmt"
	"sync"
	"time"

	"scopetree/internal/core/domain"
	"scopetree/internal/core/ports"
	"scopetree/internal/platform/logx"
)

// Valores por defecto de la política de reintentos.
const (
	DefaultRetries    = 1
	DefaultRetryDelay = 5 * time.Second
)

// Supervisor ejecuta un conjunto de herramientas de forma concurrente e
// independiente contra un target. Aísla fallos: ningún fallo de una
// herramienta aborta ni retrasa los resultados de las demás.
type Supervisor struct {
	retries    int
	retryDelay time.Duration
	logger     logx.Logger
}

// SupervisorOptions configura el supervisor.
type SupervisorOptions struct {
	// Retries reintentos adicionales por herramienta tras un fallo
	Retries int

	// RetryDelay espera fija entre intentos
	RetryDelay time.Duration

	Logger logx.Logger
}

// NewSupervisor crea un supervisor con la política indicada.
func NewSupervisor(opts SupervisorOptions) *Supervisor {
	if opts.Retries < 0 {
		opts.Retries = DefaultRetries
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultRetryDelay
	}
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}

	return &Supervisor{
		retries:    opts.Retries,
		retryDelay: opts.RetryDelay,
		logger:     opts.Logger.With("component", "supervisor"),
	}
}

// Execute lanza todas las herramientas en paralelo (una goroutine por
// herramienta, sin límite: el tiempo del batch queda acotado por el máximo
// entre herramientas, no por la suma). El mapping retornado tiene exactamente
// una entrada por herramienta invocada, con éxito o sin él, de modo que el
// caller siempre puede atribuir salida (o su ausencia) a una herramienta.
//
// Si el contexto se cancela, todos los procesos hijos en vuelo se terminan y
// el run completo falla: nunca se retorna un conjunto parcial en silencio.
func (s *Supervisor) Execute(
	ctx context.Context,
	target domain.Target,
	tools []ports.Tool,
) (map[string]*domain.RawResult, error) {
	results := make(map[string]*domain.RawResult, len(tools))
	var mu sync.Mutex
	var wg sync.WaitGroup

	s.logger.Info("starting batch",
		"target", target.Root(),
		"tools", len(tools),
		"retries", s.retries,
		"retry_delay", s.retryDelay.String(),
	)

	for _, tool := range tools {
		wg.Add(1)
		go func(t ports.Tool) {
			defer wg.Done()

			res := s.runWithRetry(ctx, t, target)

			// Slot exclusivo por herramienta: sin contención entre tareas.
			mu.Lock()
			results[t.Name()] = res
			mu.Unlock()
		}(tool)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		// Los hijos ya fueron terminados por la cancelación del contexto;
		// Close() en cada herramienta cubre cualquier rezagado.
		for _, t := range tools {
			_ = t.Close()
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrRunCanceled, err)
	}

	s.logger.Info("batch completed", "tools", len(results))
	return results, nil
}

// runWithRetry ejecuta una herramienta aplicando la política de reintentos:
// ante Timeout o ExecutionError espera el delay fijo y reintenta, hasta
// agotar los intentos; NotInstalled es terminal. Tras agotar reintentos la
// herramienta queda registrada con su último resultado (parcial o vacío) en
// lugar de propagar un fallo.
func (s *Supervisor) runWithRetry(
	ctx context.Context,
	tool ports.Tool,
	target domain.Target,
) *domain.RawResult {
	var result *domain.RawResult
	maxAttempts := s.retries + 1

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			s.logger.Info("retrying tool",
				"tool", tool.Name(),
				"attempt", attempt,
				"max_attempts", maxAttempts,
			)
		}

		result = tool.Run(ctx, target)
		result.Attempts = attempt

		if ctx.Err() != nil {
			// Cancelación del batch: el resultado se descarta aguas arriba.
			return result
		}

		if !result.Failed() {
			if attempt > 1 {
				s.logger.Info("tool succeeded after retry",
					"tool", tool.Name(),
					"attempts", attempt,
				)
			}
			return result
		}

		s.logger.Warn("tool attempt failed",
			"tool", tool.Name(),
			"attempt", attempt,
			"outcome", string(result.Outcome),
		)

		if !result.Retryable() || attempt == maxAttempts {
			break
		}

		// Espera fija entre intentos, cancelable.
		select {
		case <-time.After(s.retryDelay):
		case <-ctx.Done():
			return result
		}
	}

	s.logger.Warn("tool failed after all attempts",
		"tool", tool.Name(),
		"attempts", result.Attempts,
		"outcome", string(result.Outcome),
		"partial_lines", len(result.Lines),
	)

	return result
}
