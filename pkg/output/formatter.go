package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/sdejongh/keydrift/pkg/models"
)

// Progress update types
const (
	UpdateFileLoaded = "file_loaded"
	UpdateFileError  = "file_error"
	UpdateDiffStart  = "diff_start"
)

// ProgressUpdate represents a progress notification during a check
type ProgressUpdate struct {
	Type        string // one of the Update* constants
	FilePath    string
	Keys        int
	CurrentFile int
	TotalFiles  int
	Error       error
}

// Formatter defines the interface for output formatting
// Implementations include human-readable, JSON and GitHub formatters
type Formatter interface {
	// Start initializes the formatter for a new check
	Start(writer io.Writer, totalFiles int) error

	// Progress reports progress while files are loaded
	Progress(update ProgressUpdate) error

	// Complete finalizes output and displays the result
	Complete(report *models.CheckReport) error

	// Error reports an error that aborted the check
	Error(err error) error

	// Name returns the formatter name
	Name() string
}

// ErrorWriterSetter is implemented by formatters whose error output
// can be redirected independently of the main writer
type ErrorWriterSetter interface {
	SetErrorWriter(w io.Writer)
}

// Formats lists the supported output formats
var Formats = []string{"human", "json", "github"}

// DiffFormats lists the supported differences report formats
var DiffFormats = []string{"human", "json"}

// NewFormatter returns the formatter registered under name.
// With progress set, the human formatter draws a progress bar while
// files are loaded.
func NewFormatter(name string, progress bool) (Formatter, error) {
	switch name {
	case "", "human":
		if progress {
			return NewProgressFormatter(), nil
		}
		return NewHumanFormatter(), nil
	case "json":
		return NewJSONFormatter(), nil
	case "github":
		return NewGitHubFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (use: %s)", name, strings.Join(Formats, ", "))
	}
}
