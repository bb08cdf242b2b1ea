package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

// Memory is an in-memory storage backend.
// Paths use forward slashes and are cleaned before lookup.
type Memory struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool
	now   time.Time
}

// NewMemory creates an empty in-memory backend with a root directory
func NewMemory() *Memory {
	return &Memory{
		files: make(map[string][]byte),
		dirs:  map[string]bool{".": true, "/": true},
		now:   time.Now(),
	}
}

func cleanPath(p string) string {
	return path.Clean(strings.ReplaceAll(p, "\\", "/"))
}

// AddFile stores a file and creates its parent directories
func (m *Memory) AddFile(p string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p = cleanPath(p)
	m.files[p] = append([]byte(nil), content...)
	m.addParents(p)
}

// AddDir creates a directory and its parents
func (m *Memory) AddDir(p string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p = cleanPath(p)
	m.dirs[p] = true
	m.addParents(p)
}

func (m *Memory) addParents(p string) {
	for dir := path.Dir(p); ; dir = path.Dir(dir) {
		m.dirs[dir] = true
		if dir == "." || dir == "/" {
			return
		}
	}
}

// Exists checks if a file or directory exists
func (m *Memory) Exists(ctx context.Context, p string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p = cleanPath(p)
	_, isFile := m.files[p]
	return isFile || m.dirs[p], nil
}

// Stat returns file metadata
func (m *Memory) Stat(ctx context.Context, p string) (*FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	clean := cleanPath(p)
	if content, ok := m.files[clean]; ok {
		return &FileInfo{Path: p, Name: path.Base(clean), Size: int64(len(content)), ModTime: m.now}, nil
	}
	if m.dirs[clean] {
		return &FileInfo{Path: p, Name: path.Base(clean), ModTime: m.now, IsDir: true}, nil
	}
	return nil, fmt.Errorf("failed to stat file: %w", fs.ErrNotExist)
}

// List returns the direct entries of a directory, ordered by name
func (m *Memory) List(ctx context.Context, p string) ([]FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dir := cleanPath(p)
	if !m.dirs[dir] {
		return nil, fmt.Errorf("failed to list directory: %w", fs.ErrNotExist)
	}

	var entries []FileInfo
	for name, content := range m.files {
		if path.Dir(name) == dir {
			entries = append(entries, FileInfo{
				Path:    path.Join(p, path.Base(name)),
				Name:    path.Base(name),
				Size:    int64(len(content)),
				ModTime: m.now,
			})
		}
	}
	for name := range m.dirs {
		if name != dir && path.Dir(name) == dir {
			entries = append(entries, FileInfo{
				Path:    path.Join(p, path.Base(name)),
				Name:    path.Base(name),
				ModTime: m.now,
				IsDir:   true,
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return entries, nil
}

// Read opens a file for reading
func (m *Memory) Read(ctx context.Context, p string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	clean := cleanPath(p)
	content, ok := m.files[clean]
	if !ok {
		if m.dirs[clean] {
			return nil, fmt.Errorf("failed to open file: %s is a directory", p)
		}
		return nil, fmt.Errorf("failed to open file: %w", fs.ErrNotExist)
	}

	return io.NopCloser(bytes.NewReader(content)), nil
}

// Close releases resources (no-op for memory backend)
func (m *Memory) Close() error {
	return nil
}
