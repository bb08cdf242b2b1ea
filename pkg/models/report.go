package models

import (
	"time"
)

// CheckReport represents the results of a key comparison
type CheckReport struct {
	// Operation details
	OperationID   string
	Mode          InputMode
	SearchPath    string
	SearchPattern string

	// Timing
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Files compared, in resolution order
	Files FileList

	// KeyCounts holds the number of top-level keys per file
	KeyCounts map[string]int

	// Differences found, empty when all files share the same keys
	Differences DiffReport

	// Error message when the check failed
	Error string

	// Overall status
	Status CheckStatus
}

// CheckStatus represents the overall result
type CheckStatus string

const (
	// StatusSuccess indicates all files share the same keys
	StatusSuccess CheckStatus = "success"
	// StatusDifferences indicates at least one file is missing keys
	StatusDifferences CheckStatus = "differences"
	// StatusFailed indicates the check could not be completed
	StatusFailed CheckStatus = "failed"
)

// ExitCode returns the appropriate exit code for the check status
func (s CheckStatus) ExitCode() int {
	switch s {
	case StatusSuccess:
		return 0
	case StatusDifferences:
		return 1
	case StatusFailed:
		return 2
	default:
		return 2
	}
}

// StatusFor returns the status matching a diff report
func StatusFor(diff DiffReport) CheckStatus {
	if len(diff) == 0 {
		return StatusSuccess
	}
	return StatusDifferences
}
