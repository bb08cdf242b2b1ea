package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sdejongh/keydrift/pkg/models"
)

// GitHubFormatter prints results as GitHub Actions workflow commands.
// Failures are raised with ::error:: and every file missing keys gets
// its own file annotation.
type GitHubFormatter struct {
	writer    io.Writer
	errWriter io.Writer
}

// NewGitHubFormatter creates a new workflow command formatter
func NewGitHubFormatter() *GitHubFormatter {
	return &GitHubFormatter{}
}

// Start initializes the formatter
func (f *GitHubFormatter) Start(writer io.Writer, totalFiles int) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	fmt.Fprintf(writer, "::debug::comparing keys of %d files\n", totalFiles)
	return nil
}

// Progress writes a debug line per loaded file
func (f *GitHubFormatter) Progress(update ProgressUpdate) error {
	if f.writer == nil {
		return nil
	}
	switch update.Type {
	case UpdateFileLoaded:
		fmt.Fprintf(f.writer, "::debug::loaded %s (%d keys)\n", escapeData(update.FilePath), update.Keys)
	case UpdateFileError:
		fmt.Fprintf(f.writer, "::debug::failed to load %s\n", escapeData(update.FilePath))
	}
	return nil
}

// Complete prints the outcome, annotating each file that misses keys
func (f *GitHubFormatter) Complete(report *models.CheckReport) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	if len(report.Differences) == 0 {
		fmt.Fprintln(f.writer, MessageNoDifferences)
		return nil
	}

	fmt.Fprintf(f.writer, "::error::%s\n", escapeData(MessageDifferences))
	for _, diff := range report.Differences {
		fmt.Fprintln(f.writer, diff.File)
		for _, key := range diff.MissingKeys {
			fmt.Fprintf(f.writer, "- %s\n", key)
		}
	}

	for _, diff := range report.Differences {
		fmt.Fprintf(f.writer, "::error file=%s,title=%s::%s\n",
			escapeProperty(diff.File),
			escapeProperty("Missing keys"),
			escapeData("Missing keys: "+strings.Join(diff.MissingKeys, ", ")))
	}

	return nil
}

// Error raises the failure message
func (f *GitHubFormatter) Error(err error) error {
	w := f.errWriter
	if w == nil {
		w = f.writer
	}
	if w == nil {
		w = os.Stdout
	}
	fmt.Fprintf(w, "::error::%s\n", escapeData(errString(err)))
	return nil
}

// SetErrorWriter redirects error commands, the main writer by default
func (f *GitHubFormatter) SetErrorWriter(w io.Writer) {
	f.errWriter = w
}

// Name returns the formatter name
func (f *GitHubFormatter) Name() string {
	return "github"
}

// escapeData escapes a workflow command message
func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	return strings.ReplaceAll(s, "\n", "%0A")
}

// escapeProperty escapes a workflow command property value
func escapeProperty(s string) string {
	s = escapeData(s)
	s = strings.ReplaceAll(s, ":", "%3A")
	return strings.ReplaceAll(s, ",", "%2C")
}
