// internal/tools/cli_tool_test.go
package tools

import (
	"context"
	"testing"
	"time"

	"scopetree/internal/core/domain"
	"scopetree/internal/platform/logx"
	"scopetree/internal/testutil"
)

// shellTool builds a CLITool running `sh -c <script>`, which stands in for a
// real enumeration binary in tests.
func shellTool(t *testing.T, name, script string, timeout time.Duration) *CLITool {
	t.Helper()
	desc := domain.ToolDescriptor{
		Name:    name,
		Command: "sh",
		Args: func(_ string) []string {
			return []string{"-c", script}
		},
		Timeout: timeout,
		Enabled: true,
	}
	return NewCLITool(desc, logx.NewWithLevel(logx.LevelError)).(*CLITool)
}

func testTarget(t *testing.T) domain.Target {
	t.Helper()
	target, err := domain.NewTarget("example.com")
	testutil.AssertNoError(t, err, "test target should be valid")
	return target
}

func TestCLITool_Available(t *testing.T) {
	present := NewCLITool(domain.ToolDescriptor{
		Name:    "shell",
		Command: "sh",
		Args:    func(_ string) []string { return nil },
		Timeout: time.Second,
		Enabled: true,
	}, logx.NewWithLevel(logx.LevelError))
	testutil.AssertTrue(t, present.Available(), "sh resolves on PATH")

	absent := NewCLITool(domain.ToolDescriptor{
		Name:    "ghost",
		Command: "definitely-not-a-real-binary-scopetree",
		Args:    func(_ string) []string { return nil },
		Timeout: time.Second,
		Enabled: true,
	}, logx.NewWithLevel(logx.LevelError))
	testutil.AssertFalse(t, absent.Available(), "fake binary does not resolve")
}

func TestCLITool_Run_Success(t *testing.T) {
	tool := shellTool(t, "printer",
		"printf 'a.example.com\\nb.example.com\\n'", 10*time.Second)

	result := tool.Run(context.Background(), testTarget(t))

	testutil.AssertEqual(t, result.Outcome, domain.OutcomeOK, "clean exit")
	testutil.AssertEqual(t, len(result.Lines), 2, "stdout lines captured")
	testutil.AssertEqual(t, result.Lines[0], "a.example.com", "first line")
	testutil.AssertEqual(t, result.Lines[1], "b.example.com", "second line")
	testutil.AssertTrue(t, result.Duration > 0, "duration recorded")
}

func TestCLITool_Run_EmptyOutputIsSuccess(t *testing.T) {
	tool := shellTool(t, "silent", "true", 10*time.Second)

	result := tool.Run(context.Background(), testTarget(t))

	// Zero findings and a clean exit is a legitimate success.
	testutil.AssertEqual(t, result.Outcome, domain.OutcomeOK, "clean exit")
	testutil.AssertEqual(t, len(result.Lines), 0, "no output")
	testutil.AssertFalse(t, result.Failed(), "not a failure")
}

func TestCLITool_Run_BlankLinesDropped(t *testing.T) {
	tool := shellTool(t, "spacer",
		"printf 'a.example.com\\n\\n   \\nb.example.com\\n'", 10*time.Second)

	result := tool.Run(context.Background(), testTarget(t))

	testutil.AssertEqual(t, result.Outcome, domain.OutcomeOK, "clean exit")
	testutil.AssertEqual(t, len(result.Lines), 2, "blank lines filtered")
}

func TestCLITool_Run_PartialOutputOnNonZeroExit(t *testing.T) {
	tool := shellTool(t, "crasher",
		"echo x.example.com; exit 3", 10*time.Second)

	result := tool.Run(context.Background(), testTarget(t))

	testutil.AssertEqual(t, result.Outcome, domain.OutcomeExecutionError, "non-zero exit")
	testutil.AssertEqual(t, len(result.Lines), 1, "partial stdout kept")
	testutil.AssertEqual(t, result.Lines[0], "x.example.com", "partial line intact")
	testutil.AssertTrue(t, result.Failed(), "counts as failure")
	testutil.AssertTrue(t, result.Retryable(), "execution errors are retryable")
}

func TestCLITool_Run_StderrCaptured(t *testing.T) {
	tool := shellTool(t, "noisy",
		"echo diagnostic >&2; exit 1", 10*time.Second)

	result := tool.Run(context.Background(), testTarget(t))

	testutil.AssertEqual(t, result.Outcome, domain.OutcomeExecutionError, "non-zero exit")
	testutil.AssertTrue(t, len(result.Stderr) > 0, "stderr captured")
}

func TestCLITool_Run_Timeout(t *testing.T) {
	tool := shellTool(t, "sleeper",
		"echo early.example.com; sleep 5", 200*time.Millisecond)

	start := time.Now()
	result := tool.Run(context.Background(), testTarget(t))
	elapsed := time.Since(start)

	testutil.AssertEqual(t, result.Outcome, domain.OutcomeTimeout, "wall-clock bound hit")
	// A timed-out tool contributes nothing, even if it printed before dying.
	testutil.AssertEqual(t, len(result.Lines), 0, "output discarded on timeout")
	testutil.AssertTrue(t, result.Retryable(), "timeouts are retryable")
	testutil.AssertTrue(t, elapsed < 3*time.Second, "child killed at the bound")
}

func TestCLITool_Run_NotInstalled(t *testing.T) {
	tool := NewCLITool(domain.ToolDescriptor{
		Name:    "ghost",
		Command: "definitely-not-a-real-binary-scopetree",
		Args:    func(_ string) []string { return nil },
		Timeout: time.Second,
		Enabled: true,
	}, logx.NewWithLevel(logx.LevelError)).(*CLITool)

	result := tool.Run(context.Background(), testTarget(t))

	testutil.AssertEqual(t, result.Outcome, domain.OutcomeNotInstalled, "missing binary classified")
	testutil.AssertFalse(t, result.Retryable(), "not-installed is terminal")
}

func TestCLITool_Run_ContextCanceled(t *testing.T) {
	tool := shellTool(t, "sleeper", "sleep 5", 10*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	result := tool.Run(ctx, testTarget(t))
	elapsed := time.Since(start)

	testutil.AssertTrue(t, result.Failed(), "canceled run is not a success")
	testutil.AssertTrue(t, elapsed < 3*time.Second, "child killed on cancellation")
}

func TestCLITool_Close_Idempotent(t *testing.T) {
	tool := shellTool(t, "idle", "true", time.Second)

	testutil.AssertNoError(t, tool.Close(), "close with no process")
	testutil.AssertNoError(t, tool.Close(), "close is idempotent")
}

func TestCatalog_DescriptorsAreValid(t *testing.T) {
	for _, desc := range Catalog() {
		testutil.AssertNoError(t, desc.Validate(), "descriptor "+desc.Name)
		testutil.AssertTrue(t, desc.Timeout > 0, "timeout set for "+desc.Name)

		args := desc.Args("example.com")
		testutil.AssertContains(t, args, "example.com", "target injected for "+desc.Name)
	}
}
