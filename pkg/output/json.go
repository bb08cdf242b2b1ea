package output

import (
	"io"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"github.com/sdejongh/keydrift/pkg/models"
)

// JSONFormatter formats output as JSON for automation and scripting
type JSONFormatter struct {
	writer     io.Writer
	errWriter  io.Writer
	totalFiles int
	startTime  time.Time
	loaded     []JSONFileData // files loaded before a failure
	failedPath string
}

// JSONReportData represents the final report data
type JSONReportData struct {
	OperationID   string               `json:"operation_id"`
	Status        string               `json:"status"`
	Mode          string               `json:"mode"`
	SearchPath    string               `json:"search_path,omitempty"`
	SearchPattern string               `json:"search_pattern,omitempty"`
	Duration      string               `json:"duration"`
	DurationMs    int64                `json:"duration_ms"`
	Files         []JSONFileData       `json:"files"`
	Differences   []JSONDifferenceData `json:"differences"`
	TotalMissing  int                  `json:"total_missing"`
	Error         string               `json:"error,omitempty"`
}

// JSONFileData represents a compared file
type JSONFileData struct {
	Path string `json:"path"`
	Keys int    `json:"keys"`
}

// JSONDifferenceData represents the keys missing from one file
type JSONDifferenceData struct {
	Path        string   `json:"path"`
	MissingKeys []string `json:"missing_keys"`
}

// JSONErrorData represents a failed check
type JSONErrorData struct {
	Status string `json:"status"`
	Error  string `json:"error"`
	Kind   string `json:"kind,omitempty"`
	Path   string `json:"path,omitempty"`

	LoadedFiles []JSONFileData `json:"loaded_files,omitempty"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Start initializes the formatter
func (f *JSONFormatter) Start(writer io.Writer, totalFiles int) error {
	if writer == nil {
		writer = os.Stdout
	}
	f.writer = writer
	f.totalFiles = totalFiles
	f.startTime = time.Now()
	f.loaded = nil
	f.failedPath = ""

	return nil
}

// Progress tracks loaded and failed files; nothing is printed until
// Complete or Error so that the output stays a single JSON document
func (f *JSONFormatter) Progress(update ProgressUpdate) error {
	switch update.Type {
	case UpdateFileLoaded:
		f.loaded = append(f.loaded, JSONFileData{Path: update.FilePath, Keys: update.Keys})
	case UpdateFileError:
		f.failedPath = update.FilePath
	}
	return nil
}

// Complete finalizes output and prints the report as JSON
func (f *JSONFormatter) Complete(report *models.CheckReport) error {
	if f.writer == nil {
		f.writer = io.Discard
	}

	files := make([]JSONFileData, 0, len(report.Files))
	for _, file := range report.Files {
		files = append(files, JSONFileData{
			Path: file,
			Keys: report.KeyCounts[file],
		})
	}

	differences := make([]JSONDifferenceData, 0, len(report.Differences))
	for _, diff := range report.Differences {
		differences = append(differences, JSONDifferenceData{
			Path:        diff.File,
			MissingKeys: diff.MissingKeys,
		})
	}

	reportData := JSONReportData{
		OperationID:   report.OperationID,
		Status:        string(report.Status),
		Mode:          string(report.Mode),
		SearchPath:    report.SearchPath,
		SearchPattern: report.SearchPattern,
		Duration:      report.Duration.Round(time.Millisecond).String(),
		DurationMs:    report.Duration.Milliseconds(),
		Files:         files,
		Differences:   differences,
		TotalMissing:  report.Differences.TotalMissing(),
		Error:         report.Error,
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(reportData)
}

// Error prints the failure as a JSON document
func (f *JSONFormatter) Error(err error) error {
	data := JSONErrorData{
		Status: string(models.StatusFailed),
		Error:  errString(err),
	}
	if checkErr, ok := asCheckError(err); ok {
		data.Kind = string(checkErr.Kind)
		data.Path = checkErr.Path
	}
	if data.Path == "" {
		data.Path = f.failedPath
	}
	data.LoadedFiles = f.loaded

	w := f.errWriter
	if w == nil {
		w = f.writer
	}
	if w == nil {
		w = os.Stdout
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// SetErrorWriter redirects the error document, the main writer by default
func (f *JSONFormatter) SetErrorWriter(w io.Writer) {
	f.errWriter = w
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
