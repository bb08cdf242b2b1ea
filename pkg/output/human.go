package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/sdejongh/keydrift/pkg/models"
)

// Messages printed for the two possible outcomes
const (
	MessageNoDifferences = "No differences found in files!!"
	MessageDifferences   = "Differences found on the next files:"
)

// HumanFormatter formats output in human-readable format
type HumanFormatter struct {
	writer     io.Writer
	errWriter  io.Writer
	totalFiles int
	startTime  time.Time

	success *color.Color
	failure *color.Color
	file    *color.Color
}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{
		errWriter: os.Stderr,
		success:   color.New(color.FgGreen, color.Bold),
		failure:   color.New(color.FgRed, color.Bold),
		file:      color.New(color.FgYellow),
	}
}

// DisableColor turns off ANSI colors regardless of the terminal
func (f *HumanFormatter) DisableColor() {
	f.success.DisableColor()
	f.failure.DisableColor()
	f.file.DisableColor()
}

// Start initializes the formatter
func (f *HumanFormatter) Start(writer io.Writer, totalFiles int) error {
	f.writer = writer
	f.totalFiles = totalFiles
	f.startTime = time.Now()

	if writer != nil {
		fmt.Fprintf(writer, "Comparing keys of %d files\n", totalFiles)
	}

	return nil
}

// Progress reports progress during the check
func (f *HumanFormatter) Progress(update ProgressUpdate) error {
	if f.writer == nil {
		return nil
	}

	if update.Type == UpdateFileError {
		fmt.Fprintf(f.writer, "[%d/%d] ✗ %s: %v\n",
			update.CurrentFile, f.totalFiles,
			update.FilePath, update.Error)
	}

	return nil
}

// Complete finalizes output and displays the missing keys per file
func (f *HumanFormatter) Complete(report *models.CheckReport) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	fmt.Fprintf(f.writer, "\n")

	if len(report.Differences) == 0 {
		f.success.Fprintln(f.writer, MessageNoDifferences)
	} else {
		f.failure.Fprintln(f.writer, MessageDifferences)
		for _, diff := range report.Differences {
			f.file.Fprintln(f.writer, diff.File)
			for _, key := range diff.MissingKeys {
				fmt.Fprintf(f.writer, "- %s\n", key)
			}
		}
	}

	fmt.Fprintf(f.writer, "\n")
	fmt.Fprintf(f.writer, "Checked %d files in %s\n", len(report.Files), formatDuration(report.Duration))
	fmt.Fprintf(f.writer, "Status: %s\n", report.Status)

	return nil
}

// Error reports an error
func (f *HumanFormatter) Error(err error) error {
	w := f.errWriter
	if w == nil {
		w = io.Discard
	}
	f.failure.Fprintf(w, "Error: %v\n", err)
	return nil
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}

// SetErrorWriter redirects error messages, stderr by default
func (f *HumanFormatter) SetErrorWriter(w io.Writer) {
	f.errWriter = w
}

// formatDuration formats duration in human-readable format
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
}
