// cmd/scopetree/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scopetree/internal/adapters/output"
	"scopetree/internal/adapters/store"
	"scopetree/internal/core/usecases"
	"scopetree/internal/platform/config"
	"scopetree/internal/platform/errors"
	"scopetree/internal/platform/logx"
	"scopetree/internal/platform/registry"

	// Import tools for auto-registration via init()
	"scopetree/internal/tools"
)

var (
	// Rellenables con -ldflags en build
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// 1. Load centralized config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: configuration load failed: %v\n", err)
		os.Exit(2)
	}

	if cfg.PrintVersion {
		fmt.Printf("scopetree %s (commit=%s date=%s)\n", version, commit, date)
		return
	}

	// 2. Shared logger
	logger := logx.New()

	// 3. Check mode: report tool availability and exit
	if cfg.Check {
		if err := runCheck(); err != nil {
			logger.Err(err, "phase", "check")
			os.Exit(1)
		}
		return
	}

	if cfg.Target == "" {
		fmt.Fprintln(os.Stderr, "Error: target domain is required")
		fmt.Fprintln(os.Stderr, "Usage: scopetree -t <domain>")
		os.Exit(2)
	}

	logger.Info("scopetree starting",
		"version", version,
		"target", cfg.Target,
		"retries", cfg.Retries,
		"retry_delay_s", cfg.RetryDelayS,
	)

	// 4. Context and signals for clean shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// 5. Durable domain store
	domainStore, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		logger.Err(errors.Wrap(err, "failed to open domain store"), "phase", "store")
		os.Exit(2)
	}
	defer func() {
		if closeErr := domainStore.Close(); closeErr != nil {
			logger.Warn("failed to close store", "error", closeErr.Error())
		}
	}()

	// 6. Enumeration module
	module := usecases.NewSubdomainModule(usecases.SubdomainModuleOptions{
		Registry: registry.Global(),
		Config:   cfg,
		Store:    domainStore,
		Supervisor: usecases.NewSupervisor(usecases.SupervisorOptions{
			Retries:    cfg.Retries,
			RetryDelay: cfg.RetryDelay(),
			Logger:     logger,
		}),
		Logger: logger,
	})

	// 7. Execute run
	start := time.Now()
	result, runErr := module.Run(ctx, cfg.Target)
	elapsed := time.Since(start)

	if runErr != nil {
		logger.Err(runErr, "phase", "run", "elapsed_ms", elapsed.Milliseconds())
		os.Exit(1)
	}

	// 8. Write outputs
	if !cfg.NoTable {
		if err := output.PrintTable(result); err != nil {
			logger.Err(err, "phase", "output")
		}
	}

	path, err := output.WriteJSON(cfg.OutputDir, result)
	if err != nil {
		logger.Err(err, "phase", "output")
		os.Exit(1)
	}

	// 9. Summary
	logger.Info("scopetree finished",
		"elapsed_ms", elapsed.Milliseconds(),
		"unique", result.Stats.Unique,
		"new", result.Stats.NewlyAdded,
		"warnings", len(result.Warnings),
		"json", path,
	)
}

// runCheck imprime el catálogo de herramientas y su disponibilidad.
func runCheck() error {
	descs := registry.Global().Descriptors()

	available := make(map[string]bool, len(descs))
	for _, desc := range descs {
		tool := tools.NewCLITool(desc, logx.NewWithLevel(logx.LevelError))
		available[desc.Name] = tool.Available()
	}

	return output.PrintCatalog(descs, available)
}
