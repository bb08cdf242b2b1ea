package models

import (
	"strings"
	"time"
)

// DefaultSearchPattern matches file names ending in .json
const DefaultSearchPattern = `\.json$`

// InputMode defines how the candidate files are discovered
type InputMode string

const (
	// ModeExplicit compares an explicit newline-separated list of files
	ModeExplicit InputMode = "explicit"
	// ModeSearch scans a directory and filters entries by pattern
	ModeSearch InputMode = "search"
)

// CheckOperation represents a key comparison configuration.
// It is built once and never mutated afterwards.
type CheckOperation struct {
	ID              string
	Files           string // newline-separated paths, blank when unused
	SearchPath      string
	SearchPattern   string
	ExcludePatterns []string
	MaxFileSize     int64 // bytes, 0 = unlimited
	MaxWorkers      int   // concurrent reads, 0 or 1 = sequential
	CreatedAt       time.Time
}

// Mode returns the input mode selected by the operation.
// A non-blank file list always wins over the search path.
func (op *CheckOperation) Mode() InputMode {
	if strings.TrimSpace(op.Files) != "" {
		return ModeExplicit
	}
	return ModeSearch
}

// Pattern returns the effective search pattern
func (op *CheckOperation) Pattern() string {
	if op.SearchPattern == "" {
		return DefaultSearchPattern
	}
	return op.SearchPattern
}

// Validate checks if the operation configuration is usable
func (op *CheckOperation) Validate() error {
	if op.ID == "" {
		return &ValidationError{Field: "ID", Message: "operation id is required"}
	}
	if op.MaxFileSize < 0 {
		return &ValidationError{Field: "MaxFileSize", Message: "must not be negative"}
	}
	if op.MaxWorkers < 0 {
		return &ValidationError{Field: "MaxWorkers", Message: "must not be negative"}
	}
	return nil
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
