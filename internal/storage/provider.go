// Package storage defines the file-system collaborator used by the ADR core.
package storage

// Provider is the interface for ADR directory and record file operations.
// All paths are relative to the provider root.
type Provider interface {
	// Exists reports whether path exists.
	Exists(path string) bool
	// MkdirAll creates dir and any missing ancestors.
	MkdirAll(dir string) error
	// List returns the sorted names of the entries directly under dir.
	List(dir string) ([]string, error)
	// Read returns the contents of path; apperr.ErrNotFound when absent.
	Read(path string) ([]byte, error)
	// Write atomically creates or truncates path with content.
	Write(path string, content []byte) error
	// Create writes a brand-new file; apperr.ErrAlreadyExists when present.
	Create(path string, content []byte) error
	// Append adds content to the end of path; apperr.ErrNotFound when absent.
	Append(path string, content []byte) error
}
