// internal/platform/logx/logx_test.go
package logx

import (
	"testing"

	"scopetree/internal/testutil"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{in: "debug", want: LevelDebug},
		{in: "DBG", want: LevelDebug},
		{in: "info", want: LevelInfo},
		{in: "", want: LevelInfo},
		{in: "warn", want: LevelWarn},
		{in: "warning", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "  ERR  ", want: LevelError},
		{in: "garbage", want: LevelInfo},
	}

	for _, tt := range tests {
		testutil.AssertEqual(t, parseLevel(tt.in), tt.want, "level for "+tt.in)
	}
}

func TestKVPairs(t *testing.T) {
	pairs := kvPairs("tool", "subfinder", "lines", 42)
	testutil.AssertEqual(t, len(pairs), 2, "two pairs")
	testutil.AssertEqual(t, pairs[0], "tool=subfinder", "string value")
	testutil.AssertEqual(t, pairs[1], "lines=42", "int value")
}

func TestKVPairs_OddArguments(t *testing.T) {
	pairs := kvPairs("orphan")
	testutil.AssertEqual(t, len(pairs), 1, "orphan key kept")
	testutil.AssertEqual(t, pairs[0], "orphan=(missing)", "missing marker")
}

func TestNew_ReadsEnvLevel(t *testing.T) {
	t.Setenv("SCOPETREE_LOG_LEVEL", "error")

	logger := New().(*simpleLogger)
	testutil.AssertEqual(t, logger.lvl, LevelError, "env level applied")
}

func TestWith_PreservesScope(t *testing.T) {
	base := NewWithLevel(LevelInfo).(*simpleLogger)
	scoped := base.With("component", "supervisor").(*simpleLogger)

	testutil.AssertEqual(t, len(scoped.scope), 1, "scope attached")
	testutil.AssertEqual(t, scoped.scope[0], "component=supervisor", "scope value")
	testutil.AssertEqual(t, len(base.scope), 0, "base logger untouched")

	nested := scoped.With("tool", "amass").(*simpleLogger)
	testutil.AssertEqual(t, len(nested.scope), 2, "scopes accumulate")
}
