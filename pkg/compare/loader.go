// Package compare loads the top-level key sets of JSON documents and
// computes which keys each document is missing relative to its siblings.
package compare

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/sdejongh/keydrift/pkg/limit"
	"github.com/sdejongh/keydrift/pkg/logging"
	"github.com/sdejongh/keydrift/pkg/models"
	"github.com/sdejongh/keydrift/pkg/storage"
	"github.com/sourcegraph/conc"
	"github.com/tidwall/gjson"
)

// ProgressFunc is called after each file is loaded
type ProgressFunc func(path string, current, total int, keys int)

// Loader reads files through a storage backend and extracts their top-level keys
type Loader struct {
	backend    storage.Backend
	logger     logging.Logger
	bufferPool *sync.Pool
	maxSize    int64        // Maximum file size in bytes, 0 = unlimited
	workers    int          // Concurrent reads, <= 1 loads sequentially
	progress   ProgressFunc // Optional progress callback
	progressMu sync.Mutex   // Serializes progress in parallel loads
}

// NewLoader creates a loader over the given backend.
// A nil logger disables logging.
func NewLoader(backend storage.Backend, logger logging.Logger) *Loader {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Loader{
		backend: backend,
		logger:  logger,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				return bytes.NewBuffer(make([]byte, 0, 32*1024))
			},
		},
	}
}

// SetMaxFileSize limits how many bytes a single file may hold.
// Zero disables the limit.
func (l *Loader) SetMaxFileSize(max int64) {
	l.maxSize = max
}

// SetWorkers sets how many files may be read at once
func (l *Loader) SetWorkers(n int) {
	l.workers = n
}

// SetProgressCallback sets a callback invoked after every loaded file
func (l *Loader) SetProgressCallback(fn ProgressFunc) {
	l.progress = fn
}

// Load reads every file and returns their key sets in input order.
// The first read or parse failure in input order aborts the whole load.
func (l *Loader) Load(ctx context.Context, files models.FileList) (*models.ContentMap, error) {
	if l.workers > 1 && len(files) > 1 {
		return l.loadParallel(ctx, files)
	}

	contents := models.NewContentMap()

	for i, file := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		keys, err := l.LoadFile(ctx, file)
		if err != nil {
			return nil, err
		}
		contents.Set(file, keys)
		l.loaded(ctx, file, i+1, len(files), keys)
	}

	return contents, nil
}

type loadResult struct {
	keys *models.KeySet
	err  error
}

// loadParallel reads files with a bounded number of goroutines. Results
// are collected by index so ordering and error selection match a
// sequential load.
func (l *Loader) loadParallel(ctx context.Context, files models.FileList) (*models.ContentMap, error) {
	results := make([]loadResult, len(files))
	sem := make(chan struct{}, l.workers)
	done := 0

	var wg conc.WaitGroup
	for i, file := range files {
		sem <- struct{}{}
		if ctx.Err() != nil {
			<-sem
			break
		}

		i, file := i, file
		wg.Go(func() {
			defer func() { <-sem }()

			keys, err := l.LoadFile(ctx, file)
			results[i] = loadResult{keys: keys, err: err}
			if err != nil {
				return
			}

			l.progressMu.Lock()
			defer l.progressMu.Unlock()
			done++
			l.loaded(ctx, file, done, len(files), keys)
		})
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	contents := models.NewContentMap()
	for i, file := range files {
		if results[i].err != nil {
			return nil, results[i].err
		}
		contents.Set(file, results[i].keys)
	}

	return contents, nil
}

func (l *Loader) loaded(ctx context.Context, file string, current, total int, keys *models.KeySet) {
	l.logger.Debug(ctx, "loaded file", logging.Fields{
		"file": file,
		"keys": keys.Len(),
	})

	if l.progress != nil {
		l.progress(file, current, total, keys.Len())
	}
}

// LoadFile reads a single file and returns its top-level keys in document order
func (l *Loader) LoadFile(ctx context.Context, path string) (*models.KeySet, error) {
	buf := l.bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		l.bufferPool.Put(buf)
	}()

	if err := l.readInto(ctx, path, buf); err != nil {
		return nil, models.NewReadError(path, err)
	}

	return ParseKeys(path, buf.Bytes())
}

func (l *Loader) readInto(ctx context.Context, path string, buf *bytes.Buffer) error {
	rc, err := l.backend.Read(ctx, path)
	if err != nil {
		return err
	}
	reader := limit.NewReadCloser(ctx, rc, l.maxSize)
	defer reader.Close()

	if _, err := buf.ReadFrom(reader); err != nil {
		return fmt.Errorf("failed to read content: %w", err)
	}
	return nil
}

// ParseKeys validates a JSON document and returns its top-level property
// names in document order. Only objects are accepted. A property repeated
// in the same document keeps its first position.
func ParseKeys(path string, data []byte) (*models.KeySet, error) {
	if !gjson.ValidBytes(data) {
		return nil, models.NewParseError(path, "invalid JSON")
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, models.NewParseError(path, "top-level value is "+describe(doc))
	}

	keys := models.NewKeySet()
	doc.ForEach(func(key, _ gjson.Result) bool {
		keys.Add(key.String())
		return true
	})

	return keys, nil
}

func describe(r gjson.Result) string {
	switch {
	case r.IsArray():
		return "an array"
	case r.Type == gjson.String:
		return "a string"
	case r.Type == gjson.Number:
		return "a number"
	case r.Type == gjson.True, r.Type == gjson.False:
		return "a boolean"
	case r.Type == gjson.Null:
		return "null"
	default:
		return "not an object"
	}
}
