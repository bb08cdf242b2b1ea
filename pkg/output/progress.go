package output

import (
	"io"
	"os"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/sdejongh/keydrift/pkg/models"
	"golang.org/x/term"
)

const progressTemplate = `{{string . "prefix"}}{{counters . }} {{bar . "[" "=" ">" " " "]"}} {{percent . }} {{string . "file"}}`

// ProgressFormatter draws a progress bar while files are loaded and
// prints the human-readable result afterwards. The bar is only drawn
// when the writer is a terminal.
type ProgressFormatter struct {
	mu        sync.Mutex
	human     *HumanFormatter
	bar       *pb.ProgressBar
	writer    io.Writer
	termWidth int
}

// NewProgressFormatter creates a new progress bar formatter
func NewProgressFormatter() *ProgressFormatter {
	return &ProgressFormatter{
		human: NewHumanFormatter(),
	}
}

// Start initializes the formatter and the progress bar
func (f *ProgressFormatter) Start(writer io.Writer, totalFiles int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer

	if err := f.human.Start(writer, totalFiles); err != nil {
		return err
	}

	// Detect terminal width to prevent line wrapping issues
	file, ok := writer.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return nil
	}
	if width, _, err := term.GetSize(int(file.Fd())); err == nil && width > 0 {
		f.termWidth = width
	}
	if f.termWidth == 0 {
		f.termWidth = 120
	}

	f.bar = pb.ProgressBarTemplate(progressTemplate).New(totalFiles)
	f.bar.SetWriter(writer)
	f.bar.SetMaxWidth(f.termWidth)
	f.bar.Set("prefix", "Loading ")
	f.bar.Start()

	return nil
}

// Progress advances the bar for every loaded file
func (f *ProgressFormatter) Progress(update ProgressUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.bar == nil {
		return f.human.Progress(update)
	}

	switch update.Type {
	case UpdateFileLoaded:
		f.bar.Set("file", update.FilePath)
		f.bar.SetCurrent(int64(update.CurrentFile))
	case UpdateDiffStart:
		f.finishBar()
	}

	return nil
}

// Complete stops the bar and prints the result
func (f *ProgressFormatter) Complete(report *models.CheckReport) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.finishBar()
	return f.human.Complete(report)
}

// Error stops the bar and reports the error
func (f *ProgressFormatter) Error(err error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.finishBar()
	return f.human.Error(err)
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}

// SetErrorWriter redirects error messages, stderr by default
func (f *ProgressFormatter) SetErrorWriter(w io.Writer) {
	f.human.SetErrorWriter(w)
}

// Active reports whether a progress bar is being drawn
func (f *ProgressFormatter) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bar != nil
}

func (f *ProgressFormatter) finishBar() {
	if f.bar == nil {
		return
	}
	f.bar.Set("file", "")
	f.bar.Finish()
	f.bar = nil
}
