// Package storage defines the output-tree file-system abstraction.
package storage

// Provider is the interface the site generator writes through.
type Provider interface {
	// MkdirAll creates dir (relative to root) and any missing parents.
	MkdirAll(dir string) error
	// Write atomically writes content to path (relative to root).
	Write(path string, content []byte) error
}

var _ Provider = (*FS)(nil)
