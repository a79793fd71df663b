// Package testutil provides shared test helpers for building an ADR
// repository, its index and the service over them.
package testutil

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/starford/adrkit/internal/adrservice"
	"github.com/starford/adrkit/internal/index"
	"github.com/starford/adrkit/internal/storage"
	"github.com/starford/adrkit/internal/templates"
)

// Layout is the directory layout used by every helper.
var Layout = adrservice.Layout{Dir: "adr", Record: "adr/RECORD.md"}

// TestDB creates a temporary SQLite index that is closed on cleanup.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	db, err := index.Open(filepath.Join(t.TempDir(), "index.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestStore creates a temporary project directory with a storage.Provider.
func TestStore(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// QuietLogger discards everything.
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// TestService wires a service over a fresh store and index using the
// default templates.
func TestService(t *testing.T) (*adrservice.Service, storage.Provider) {
	t.Helper()
	_, store := TestStore(t)
	svc := adrservice.NewService(store, TestDB(t), Layout, templates.Default(), QuietLogger())
	return svc, store
}
