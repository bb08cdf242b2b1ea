package storage

import (
	"context"
	"io"
	"time"
)

// FileInfo represents metadata about a file or directory
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
	IsDir   bool
}

// Backend defines the filesystem capabilities needed to resolve and load files.
// Implementations include the local filesystem and an in-memory tree.
type Backend interface {
	// Exists checks if a file or directory exists
	Exists(ctx context.Context, path string) (bool, error)

	// Stat returns file metadata
	Stat(ctx context.Context, path string) (*FileInfo, error)

	// List returns the direct entries of a directory, ordered by name.
	// It does not recurse into subdirectories.
	List(ctx context.Context, path string) ([]FileInfo, error)

	// Read opens a file for reading
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	// Close releases any resources held by the backend
	Close() error
}
