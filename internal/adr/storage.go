// Package adr keeps a directory of numbered ADR documents and the
// aggregated record consistent with each other.
//
// Every operation takes the ADR directory and the record path explicitly;
// nothing here depends on the working directory or logs on its own.
package adr

import (
	"fmt"

	"github.com/starford/adrkit/internal/storage"
)

// EnsureStorage creates location (with ancestors) and an empty record at
// recordPath when they are missing. An existing record is never touched.
func EnsureStorage(fs storage.Provider, location, recordPath string) error {
	if !fs.Exists(location) {
		if err := fs.MkdirAll(location); err != nil {
			return fmt.Errorf("adr: create directory: %w", err)
		}
	}
	if !fs.Exists(recordPath) {
		if err := fs.Create(recordPath, nil); err != nil {
			return fmt.Errorf("adr: create record: %w", err)
		}
	}
	return nil
}
