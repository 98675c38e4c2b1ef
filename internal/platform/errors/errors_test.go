// internal/platform/errors/errors_test.go
package errors

import (
	"testing"

	"scopetree/internal/testutil"
)

func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrTimeout, "running subfinder")

	testutil.AssertEqual(t, wrapped.Error(), "running subfinder: operation timed out", "message composed")
	testutil.AssertTrue(t, Is(wrapped, ErrTimeout), "cause preserved")
	testutil.AssertEqual(t, Unwrap(wrapped), ErrTimeout, "unwrap yields cause")
}

func TestWrap_Nil(t *testing.T) {
	testutil.AssertNil(t, Wrap(nil, "context"), "nil stays nil")
	testutil.AssertNil(t, Wrapf(nil, "context %d", 1), "nil stays nil")
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrNotFound, "tool %q", "amass")

	testutil.AssertEqual(t, wrapped.Error(), `tool "amass": resource not found`, "formatted message")
	testutil.AssertTrue(t, Is(wrapped, ErrNotFound), "cause preserved")
}

func TestWrap_Nested(t *testing.T) {
	inner := Wrap(ErrUnavailable, "store")
	outer := Wrap(inner, "run")

	testutil.AssertTrue(t, Is(outer, ErrUnavailable), "deep chain resolves")
	testutil.AssertEqual(t, outer.Error(), "run: store: unavailable", "chain message")
}
