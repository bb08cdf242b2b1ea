// Package resolve turns check inputs into the concrete list of files to compare.
package resolve

import (
	"context"
	"errors"
	"io/fs"
	"regexp"

	"github.com/sdejongh/keydrift/internal/platform"
	"github.com/sdejongh/keydrift/pkg/logging"
	"github.com/sdejongh/keydrift/pkg/models"
	"github.com/sdejongh/keydrift/pkg/storage"
)

// MinFiles is the smallest number of files a comparison accepts
const MinFiles = 2

// Resolver builds the file list of a check operation
type Resolver struct {
	backend storage.Backend
	logger  logging.Logger
}

// NewResolver creates a resolver over the given backend.
// A nil logger disables logging.
func NewResolver(backend storage.Backend, logger logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Resolver{
		backend: backend,
		logger:  logger,
	}
}

// Resolve returns the ordered, deduplicated list of files to compare.
// The explicit file list is used when it is not blank, otherwise the
// search path is scanned. The first failure found is returned.
func (r *Resolver) Resolve(ctx context.Context, op *models.CheckOperation) (models.FileList, error) {
	var (
		files models.FileList
		err   error
	)

	mode := op.Mode()
	switch mode {
	case models.ModeExplicit:
		files, err = r.resolveExplicit(ctx, op.Files)
	default:
		files, err = r.resolveSearch(ctx, op.SearchPath, op.Pattern(), op.ExcludePatterns)
	}
	if err != nil {
		return nil, err
	}

	r.logger.Debug(ctx, "resolved input files", logging.Fields{
		"mode":  string(mode),
		"count": len(files),
	})

	return files, nil
}

// resolveExplicit splits, deduplicates and checks the explicit file list
func (r *Resolver) resolveExplicit(ctx context.Context, text string) (models.FileList, error) {
	seen := make(map[string]struct{})
	var files models.FileList

	for _, line := range platform.SplitLines(text) {
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		files = append(files, line)
	}

	for _, file := range files {
		exists, err := r.backend.Exists(ctx, file)
		if err != nil {
			return nil, models.NewReadError(file, err)
		}
		if !exists {
			return nil, models.NewPathNotFoundError(file)
		}
	}

	if len(files) < MinFiles {
		return nil, models.NewInsufficientFilesError()
	}

	return files, nil
}

// resolveSearch lists the search directory and keeps matching files
func (r *Resolver) resolveSearch(ctx context.Context, searchPath, pattern string, exclude []string) (models.FileList, error) {
	if platform.IsBlank(searchPath) {
		return nil, models.NewEmptySearchPathError()
	}

	info, err := r.backend.Stat(ctx, searchPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, models.NewInvalidSearchPathError(searchPath, nil)
		}
		return nil, models.NewInvalidSearchPathError(searchPath, err)
	}
	if !info.IsDir {
		return nil, models.NewInvalidSearchPathError(searchPath, nil)
	}

	// Unanchored: the pattern may match anywhere in the entry name
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, models.NewInvalidSearchPatternError(pattern, err)
	}

	excluder, err := NewExcluder(exclude)
	if err != nil {
		return nil, err
	}

	entries, err := r.backend.List(ctx, searchPath)
	if err != nil {
		return nil, models.NewInvalidSearchPathError(searchPath, err)
	}

	var files models.FileList
	for _, entry := range entries {
		if entry.IsDir {
			continue
		}
		if !re.MatchString(entry.Name) {
			continue
		}
		if excluder.Excluded(entry.Name) {
			r.logger.Debug(ctx, "excluded file", logging.Fields{"name": entry.Name})
			continue
		}
		files = append(files, platform.JoinEntry(searchPath, entry.Name))
	}

	if len(files) < MinFiles {
		return nil, models.NewInsufficientFilesError()
	}

	return files, nil
}
