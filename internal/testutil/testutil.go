// Package testutil provides shared test helpers for setting up stores over
// the various storage backends.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/starford/notepad/internal/notes"
	"github.com/starford/notepad/internal/storage"
	"github.com/starford/notepad/internal/theme"
)

// Workspace bundles a store and theme flag sharing one provider.
type Workspace struct {
	KV    storage.Provider
	Notes *notes.Store
	Theme *theme.Flag
}

// TestWorkspace creates an in-memory workspace.
func TestWorkspace(t *testing.T, opts ...notes.Option) *Workspace {
	t.Helper()
	return newWorkspace(t, storage.NewMemory(), opts...)
}

// TestSQLiteWorkspace creates a workspace over a temporary SQLite database
// that is automatically cleaned up.
func TestSQLiteWorkspace(t *testing.T, opts ...notes.Option) *Workspace {
	t.Helper()
	kv, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "notepad-test.db"))
	if err != nil {
		t.Fatal(err)
	}
	return newWorkspace(t, kv, opts...)
}

func newWorkspace(t *testing.T, kv storage.Provider, opts ...notes.Option) *Workspace {
	t.Helper()
	t.Cleanup(func() { kv.Close() })
	return &Workspace{
		KV:    kv,
		Notes: notes.NewStore(kv, opts...),
		Theme: theme.NewFlag(kv, nil),
	}
}
