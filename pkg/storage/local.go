package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local is a filesystem-based storage backend.
// Relative paths are resolved against its working directory.
type Local struct {
	workDir string
}

// NewLocal creates a new local filesystem backend.
// An empty workDir means the process working directory.
func NewLocal(workDir string) (*Local, error) {
	if workDir == "" {
		return &Local{}, nil
	}

	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", absPath)
	}

	return &Local{workDir: absPath}, nil
}

// WorkDir returns the directory relative paths are resolved against
func (l *Local) WorkDir() string {
	return l.workDir
}

func (l *Local) resolve(path string) string {
	if l.workDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(l.workDir, path)
}

// Exists checks if a file or directory exists
func (l *Local) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(l.resolve(path))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check existence: %w", err)
}

// Stat returns file metadata
func (l *Local) Stat(ctx context.Context, path string) (*FileInfo, error) {
	info, err := os.Stat(l.resolve(path))
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	return &FileInfo{
		Path:    path,
		Name:    info.Name(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
		IsDir:   info.IsDir(),
	}, nil
}

// List returns the direct entries of a directory.
// Symlinks are reported as non-directories.
func (l *Local) List(ctx context.Context, path string) ([]FileInfo, error) {
	entries, err := os.ReadDir(l.resolve(path))
	if err != nil {
		return nil, fmt.Errorf("failed to list directory: %w", err)
	}

	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		fi := FileInfo{
			Path:  filepath.Join(path, entry.Name()),
			Name:  entry.Name(),
			IsDir: entry.IsDir(),
		}
		if info, err := entry.Info(); err == nil {
			fi.Size = info.Size()
			fi.ModTime = info.ModTime()
		}
		files = append(files, fi)
	}

	return files, nil
}

// Read opens a file for reading
func (l *Local) Read(ctx context.Context, path string) (io.ReadCloser, error) {
	file, err := os.Open(l.resolve(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Close releases resources (no-op for local filesystem)
func (l *Local) Close() error {
	return nil
}
