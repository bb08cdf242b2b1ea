package logging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Format represents the log output format
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// FileLoggerConfig holds configuration for file logging
type FileLoggerConfig struct {
	// Path is the log file path
	Path string
	// Format is the output format (json or text)
	Format Format
	// Level is the minimum log level
	Level Level
	// MaxSizeMB is the size in megabytes before rotation (0 = lumberjack default of 100)
	MaxSizeMB int
	// MaxBackups is the maximum number of backup files to keep (0 = keep all)
	MaxBackups int
	// Compress gzips rotated files
	Compress bool
}

// fileSink is shared by a FileLogger and the loggers derived from it
type fileSink struct {
	mu     sync.Mutex
	writer *lumberjack.Logger
}

// FileLogger implements Logger interface with rotated file output
type FileLogger struct {
	config FileLoggerConfig
	sink   *fileSink
	fields Fields
}

// NewFileLogger creates a new file logger
func NewFileLogger(config FileLoggerConfig) (*FileLogger, error) {
	// Ensure directory exists
	dir := filepath.Dir(config.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Fail early if the file cannot be opened, lumberjack opens lazily
	file, err := os.OpenFile(config.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	file.Close()

	return &FileLogger{
		config: config,
		sink: &fileSink{
			writer: &lumberjack.Logger{
				Filename:   config.Path,
				MaxSize:    config.MaxSizeMB,
				MaxBackups: config.MaxBackups,
				Compress:   config.Compress,
			},
		},
	}, nil
}

// Debug logs a debug message
func (l *FileLogger) Debug(ctx context.Context, msg string, fields Fields) {
	if l.config.Level <= DebugLevel {
		l.log(DebugLevel, msg, nil, fields)
	}
}

// Info logs an info message
func (l *FileLogger) Info(ctx context.Context, msg string, fields Fields) {
	if l.config.Level <= InfoLevel {
		l.log(InfoLevel, msg, nil, fields)
	}
}

// Warn logs a warning message
func (l *FileLogger) Warn(ctx context.Context, msg string, fields Fields) {
	if l.config.Level <= WarnLevel {
		l.log(WarnLevel, msg, nil, fields)
	}
}

// Error logs an error message
func (l *FileLogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	if l.config.Level <= ErrorLevel {
		l.log(ErrorLevel, msg, err, fields)
	}
}

// WithFields returns a logger with additional fields
func (l *FileLogger) WithFields(fields Fields) Logger {
	return &FileLogger{
		config: l.config,
		sink:   l.sink,
		fields: mergeFields(l.fields, fields),
	}
}

// Close flushes and closes the logger
func (l *FileLogger) Close() error {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	return l.sink.writer.Close()
}

// log writes a log entry
func (l *FileLogger) log(level Level, msg string, err error, fields Fields) {
	allFields := mergeFields(l.fields, fields)

	var line []byte
	var formatErr error

	if l.config.Format == FormatJSON {
		line, formatErr = formatJSON(level, msg, err, allFields)
	} else {
		line, formatErr = formatText(level, msg, err, allFields)
	}

	if formatErr != nil {
		return
	}

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.writer.Write(line)
}

// formatJSON formats a log entry as JSON
func formatJSON(level Level, msg string, err error, fields Fields) ([]byte, error) {
	entry := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"level":     levelString(level),
		"message":   msg,
	}

	if err != nil {
		entry["error"] = err.Error()
	}

	for k, v := range fields {
		entry[k] = v
	}

	data, jsonErr := json.Marshal(entry)
	if jsonErr != nil {
		return nil, jsonErr
	}

	return append(data, '\n'), nil
}

// formatText formats a log entry as plain text
func formatText(level Level, msg string, err error, fields Fields) ([]byte, error) {
	timestamp := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")

	line := fmt.Sprintf("%s [%s] %s", timestamp, levelString(level), msg)

	if err != nil {
		line += fmt.Sprintf(" error=%q", err.Error())
	}

	for _, k := range sortedKeys(fields) {
		line += fmt.Sprintf(" %s=%v", k, fields[k])
	}

	return []byte(line + "\n"), nil
}
