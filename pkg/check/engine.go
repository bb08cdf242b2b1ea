// Package check runs a key comparison from configuration to report.
package check

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sdejongh/keydrift/pkg/compare"
	"github.com/sdejongh/keydrift/pkg/logging"
	"github.com/sdejongh/keydrift/pkg/models"
	"github.com/sdejongh/keydrift/pkg/output"
	"github.com/sdejongh/keydrift/pkg/resolve"
	"github.com/sdejongh/keydrift/pkg/storage"
)

// Engine orchestrates a key comparison
type Engine struct {
	backend   storage.Backend
	formatter output.Formatter
	logger    logging.Logger
	operation *models.CheckOperation
	files     models.FileList
	writer    io.Writer
}

// NewEngine creates a new check engine.
// Input files are resolved immediately so that configuration errors
// surface before any file is read. A nil logger disables logging.
func NewEngine(
	ctx context.Context,
	backend storage.Backend,
	formatter output.Formatter,
	logger logging.Logger,
	operation *models.CheckOperation,
) (*Engine, error) {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	op := *operation
	if op.ID == "" {
		op.ID = uuid.New().String()
	}
	if op.CreatedAt.IsZero() {
		op.CreatedAt = time.Now()
	}
	operation = &op
	if err := operation.Validate(); err != nil {
		return nil, err
	}

	logger = logger.WithFields(logging.Fields{"operation": operation.ID})

	files, err := resolve.NewResolver(backend, logger).Resolve(ctx, operation)
	if err != nil {
		logger.Error(ctx, "input resolution failed", err, logging.Fields{
			"mode": string(operation.Mode()),
		})
		return nil, err
	}

	return &Engine{
		backend:   backend,
		formatter: formatter,
		logger:    logger,
		operation: operation,
		files:     files,
		writer:    os.Stdout,
	}, nil
}

// Files returns the resolved input files
func (e *Engine) Files() models.FileList {
	return append(models.FileList(nil), e.files...)
}

// Operation returns the operation being checked
func (e *Engine) Operation() *models.CheckOperation {
	return e.operation
}

// SetOutput sets the writer handed to the formatter, stdout by default
func (e *Engine) SetOutput(w io.Writer) {
	e.writer = w
}

// Run loads every resolved file, computes the missing keys and reports
// them through the formatter. When loading fails the formatter receives
// the error and the returned report has StatusFailed.
func (e *Engine) Run(ctx context.Context) (*models.CheckReport, error) {
	report := &models.CheckReport{
		OperationID: e.operation.ID,
		Mode:        e.operation.Mode(),
		StartTime:   time.Now(),
		Files:       e.Files(),
		KeyCounts:   make(map[string]int, len(e.files)),
	}
	if report.Mode == models.ModeSearch {
		report.SearchPath = e.operation.SearchPath
		report.SearchPattern = e.operation.Pattern()
	}

	if e.formatter != nil {
		if err := e.formatter.Start(e.writer, len(e.files)); err != nil {
			return nil, fmt.Errorf("failed to start formatter: %w", err)
		}
	}

	e.logger.Info(ctx, "comparing files", logging.Fields{
		"mode":  string(report.Mode),
		"files": len(e.files),
	})

	loader := compare.NewLoader(e.backend, e.logger)
	loader.SetMaxFileSize(e.operation.MaxFileSize)
	loader.SetWorkers(e.operation.MaxWorkers)
	loader.SetProgressCallback(func(path string, current, total int, keys int) {
		report.KeyCounts[path] = keys
		e.progress(output.ProgressUpdate{
			Type:        output.UpdateFileLoaded,
			FilePath:    path,
			Keys:        keys,
			CurrentFile: current,
			TotalFiles:  total,
		})
	})

	contents, err := loader.Load(ctx, e.files)
	if err != nil {
		var checkErr *models.CheckError
		if errors.As(err, &checkErr) && checkErr.Path != "" {
			e.progress(output.ProgressUpdate{
				Type:        output.UpdateFileError,
				FilePath:    checkErr.Path,
				CurrentFile: e.files.Index(checkErr.Path) + 1,
				TotalFiles:  len(e.files),
				Error:       err,
			})
		}
		return e.fail(ctx, report, err)
	}

	e.progress(output.ProgressUpdate{Type: output.UpdateDiffStart, TotalFiles: len(e.files)})

	report.Differences = compare.ComputeDiff(contents)
	report.Status = models.StatusFor(report.Differences)
	e.finish(report)

	e.logger.Info(ctx, "comparison complete", logging.Fields{
		"status":        string(report.Status),
		"files":         len(report.Files),
		"files_missing": len(report.Differences),
		"keys_missing":  report.Differences.TotalMissing(),
		"duration_ms":   report.Duration.Milliseconds(),
	})

	if e.formatter != nil {
		if err := e.formatter.Complete(report); err != nil {
			return report, fmt.Errorf("failed to complete output: %w", err)
		}
	}

	return report, nil
}

func (e *Engine) fail(ctx context.Context, report *models.CheckReport, err error) (*models.CheckReport, error) {
	report.Status = models.StatusFailed
	report.Error = err.Error()
	e.finish(report)

	e.logger.Error(ctx, "comparison failed", err, nil)

	if e.formatter != nil {
		e.formatter.Error(err)
	}
	return report, err
}

func (e *Engine) finish(report *models.CheckReport) {
	report.EndTime = time.Now()
	report.Duration = report.EndTime.Sub(report.StartTime)
}

func (e *Engine) progress(update output.ProgressUpdate) {
	if e.formatter == nil {
		return
	}
	e.formatter.Progress(update)
}
