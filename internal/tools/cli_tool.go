// Package tools provides the generic adapter that wraps one external
// enumeration executable as a ports.Tool. All concrete tools are descriptor
// table entries consumed by this single implementation.
package tools

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"scopetree/internal/core/domain"
	"scopetree/internal/core/ports"
	"scopetree/internal/platform/logx"
)

// CLITool executes one external binary as a subprocess under a per-attempt
// wall-clock timeout. It handles pipe management, background stderr capture,
// context cancellation and guaranteed process cleanup.
type CLITool struct {
	desc   domain.ToolDescriptor
	logger logx.Logger

	// Process management
	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewCLITool creates a tool adapter for the given descriptor.
// Matches registry.ToolFactory.
func NewCLITool(desc domain.ToolDescriptor, logger logx.Logger) ports.Tool {
	return &CLITool{
		desc:   desc,
		logger: logger.With("tool", desc.Name),
	}
}

// Name returns the tool identifier.
func (c *CLITool) Name() string {
	return c.desc.Name
}

// Available reports whether the underlying executable resolves on PATH.
// Pure path lookup, no side effects.
func (c *CLITool) Available() bool {
	_, err := exec.LookPath(c.desc.Command)
	return err == nil
}

// Run executes the tool against the target. Faults are classified into the
// RawResult outcome instead of being raised: timeout yields an empty result,
// a non-zero exit keeps whatever partial stdout was captured, and a missing
// binary is reported as not-installed. The child process never outlives the
// per-attempt timeout.
func (c *CLITool) Run(ctx context.Context, target domain.Target) *domain.RawResult {
	result := domain.NewRawResult(c.desc.Name)
	startTime := time.Now()

	args := c.desc.Args(target.Root())

	c.logger.Debug("executing tool",
		"command", c.desc.Command,
		"args", args,
		"timeout", c.desc.Timeout.String(),
	)

	runCtx, cancel := context.WithTimeout(ctx, c.desc.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, c.desc.Command, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		result.Outcome = domain.OutcomeExecutionError
		result.Stderr = err.Error()
		return result
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		result.Outcome = domain.OutcomeExecutionError
		result.Stderr = err.Error()
		return result
	}

	// Store command reference so Close() can terminate in-flight children.
	c.mu.Lock()
	c.cmd = cmd
	c.mu.Unlock()

	if err := cmd.Start(); err != nil {
		// Available() pre-filters this, but a binary can disappear between
		// the lookup and the exec.
		if errors.Is(err, exec.ErrNotFound) {
			c.logger.Warn("executable not found", "command", c.desc.Command)
			result.Outcome = domain.OutcomeNotInstalled
		} else {
			c.logger.Warn("failed to start process", "error", err.Error())
			result.Outcome = domain.OutcomeExecutionError
		}
		result.Stderr = err.Error()
		return result
	}

	c.logger.Debug("subprocess started", "pid", cmd.Process.Pid)

	// Read stderr in background to prevent the child blocking on a full pipe.
	var stderrBytes []byte
	var stderrWg sync.WaitGroup
	stderrWg.Add(1)

	go func() {
		defer stderrWg.Done()
		data, readErr := io.ReadAll(stderr)
		if readErr != nil {
			c.logger.Debug("error reading stderr", "error", readErr.Error())
		}
		stderrBytes = data
	}()

	// Stream stdout line by line; trimming and empty-line filtering is the
	// only normalization at this layer.
	scanner := bufio.NewScanner(stdout)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		result.Lines = append(result.Lines, line)
	}

	if err := scanner.Err(); err != nil {
		c.logger.Debug("scanner error", "error", err.Error())
	}

	waitErr := cmd.Wait()
	stderrWg.Wait()

	c.mu.Lock()
	c.cmd = nil
	c.mu.Unlock()

	result.Stderr = string(stderrBytes)
	result.Duration = time.Since(startTime)

	switch {
	case runCtx.Err() == context.DeadlineExceeded:
		// Hard wall-clock bound hit: the child was killed, discard output.
		c.logger.Warn("tool timed out",
			"timeout", c.desc.Timeout.String(),
			"partial_lines", len(result.Lines),
		)
		result.Outcome = domain.OutcomeTimeout
		result.Lines = []string{}

	case waitErr != nil:
		// Tools may emit partial results before erroring; keep them.
		c.logger.Warn("tool exited with error",
			"error", waitErr.Error(),
			"partial_lines", len(result.Lines),
			"duration", result.Duration.String(),
		)
		result.Outcome = domain.OutcomeExecutionError

	default:
		c.logger.Info("tool completed",
			"lines", len(result.Lines),
			"duration", result.Duration.String(),
		)
	}

	return result
}

// Close terminates any in-flight subprocess. Safe to call multiple times.
func (c *CLITool) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cmd != nil && c.cmd.Process != nil {
		proc := c.cmd.Process
		state := c.cmd.ProcessState

		if state == nil || !state.Exited() {
			// SIGTERM first, SIGKILL if the process refuses to die.
			if err := proc.Signal(os.Interrupt); err != nil {
				if err != os.ErrProcessDone {
					c.logger.Warn("SIGTERM failed, forcing kill", "error", err.Error())
					if killErr := proc.Kill(); killErr != nil && killErr != os.ErrProcessDone {
						c.logger.Warn("failed to kill process", "error", killErr.Error())
					}
				}
			}
		}

		c.cmd = nil
	}

	return nil
}
