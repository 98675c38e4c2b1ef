// internal/adapters/store/sqlite_test.go
package store

import (
	"context"
	"path/filepath"
	"testing"

	"scopetree/internal/testutil"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLiteStore(":memory:")
	testutil.AssertNoError(t, err, "open in-memory database")
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSQLiteStore_AddAndList(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	added, err := st.AddDomains(ctx, "example.com",
		[]string{"b.example.com", "a.example.com"}, "passive")
	testutil.AssertNoError(t, err, "add")
	testutil.AssertEqual(t, added, 2, "both new")

	names, err := st.ListDomains(ctx, "example.com")
	testutil.AssertNoError(t, err, "list")
	testutil.AssertEqual(t, len(names), 2, "both listed")
	testutil.AssertEqual(t, names[0], "a.example.com", "ordered by name")
	testutil.AssertEqual(t, names[1], "b.example.com", "ordered by name")
}

func TestSQLiteStore_ReAddCountsOnlyNew(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.AddDomains(ctx, "example.com", []string{"a.example.com"}, "passive")
	testutil.AssertNoError(t, err, "first add")

	added, err := st.AddDomains(ctx, "example.com",
		[]string{"a.example.com", "b.example.com"}, "passive")
	testutil.AssertNoError(t, err, "second add")
	testutil.AssertEqual(t, added, 1, "re-insert ignored")
}

func TestSQLiteStore_EmptyBatch(t *testing.T) {
	st := newTestStore(t)

	added, err := st.AddDomains(context.Background(), "example.com", nil, "passive")
	testutil.AssertNoError(t, err, "empty batch accepted")
	testutil.AssertEqual(t, added, 0, "nothing inserted")
}

func TestSQLiteStore_ScopesIsolated(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.AddDomains(ctx, "example.com", []string{"a.example.com"}, "passive")
	testutil.AssertNoError(t, err, "add to first scope")

	names, err := st.ListDomains(ctx, "other.org")
	testutil.AssertNoError(t, err, "list other scope")
	testutil.AssertEqual(t, len(names), 0, "scopes do not leak")
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scope.db")
	ctx := context.Background()

	st, err := NewSQLiteStore(path)
	testutil.AssertNoError(t, err, "open database file")

	_, err = st.AddDomains(ctx, "example.com", []string{"a.example.com"}, "passive")
	testutil.AssertNoError(t, err, "add")
	testutil.AssertNoError(t, st.Close(), "close")

	reopened, err := NewSQLiteStore(path)
	testutil.AssertNoError(t, err, "reopen database file")
	defer reopened.Close()

	names, err := reopened.ListDomains(ctx, "example.com")
	testutil.AssertNoError(t, err, "list after reopen")
	testutil.AssertEqual(t, len(names), 1, "data survived the reopen")
	testutil.AssertEqual(t, names[0], "a.example.com", "row intact")
}
