package config

import (
	"slices"
	"strings"

	"github.com/sdejongh/keydrift/pkg/models"
	"github.com/sdejongh/keydrift/pkg/output"
)

// Config represents the application configuration
type Config struct {
	Input       InputConfig       `yaml:"input"`
	Output      OutputConfig      `yaml:"output"`
	Performance PerformanceConfig `yaml:"performance"`
	Logging     LoggingConfig     `yaml:"logging"`
	Exclude     []string          `yaml:"exclude"`
}

// InputConfig selects the files to compare
type InputConfig struct {
	Files         string `yaml:"files"`          // Newline-separated paths, takes precedence over search_path
	SearchPath    string `yaml:"search_path"`    // Directory scanned when files is blank
	SearchPattern string `yaml:"search_pattern"` // Regular expression matched against entry names
	WorkDir       string `yaml:"workdir"`        // Base directory for relative paths (empty = cwd)
	MaxFileSize   int64  `yaml:"max_file_size"`  // Maximum size of a compared file in bytes (0 = unlimited)
}

// OutputConfig holds output-related settings
type OutputConfig struct {
	Format     string `yaml:"format"`      // "human", "json" or "github"
	Progress   bool   `yaml:"progress"`    // Show a progress bar on terminals
	Quiet      bool   `yaml:"quiet"`       // Suppress non-error output
	DiffReport string `yaml:"diff_report"` // Differences report file (empty = none)
	DiffFormat string `yaml:"diff_format"` // "human" or "json"
}

// PerformanceConfig holds performance-related settings
type PerformanceConfig struct {
	MaxWorkers int `yaml:"max_workers"` // Files read concurrently (1 = sequential)
}

// LoggingConfig holds logging-related settings
type LoggingConfig struct {
	Format     string `yaml:"format"` // "json" or "text"
	Level      string `yaml:"level"`  // "debug", "info", "warn", "error"
	File       string `yaml:"file"`   // Log file path (empty = no file log)
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	Compress   bool   `yaml:"compress"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Input: InputConfig{
			SearchPattern: models.DefaultSearchPattern,
		},
		Output: OutputConfig{
			Format:     "human",
			Progress:   false,
			Quiet:      false,
			DiffFormat: "human",
		},
		Performance: PerformanceConfig{
			MaxWorkers: 1,
		},
		Logging: LoggingConfig{
			Format:     "text",
			Level:      "info",
			File:       "",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Exclude: []string{},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if !slices.Contains(output.Formats, c.Output.Format) {
		return &models.ValidationError{
			Field:   "output.format",
			Message: "must be one of: " + strings.Join(output.Formats, ", "),
		}
	}

	if !slices.Contains(output.DiffFormats, c.Output.DiffFormat) {
		return &models.ValidationError{
			Field:   "output.diff_format",
			Message: "must be one of: " + strings.Join(output.DiffFormats, ", "),
		}
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		return &models.ValidationError{
			Field:   "logging.format",
			Message: "must be 'json' or 'text'",
		}
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return &models.ValidationError{
			Field:   "logging.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		}
	}

	if c.Input.MaxFileSize < 0 {
		return &models.ValidationError{
			Field:   "input.max_file_size",
			Message: "must not be negative",
		}
	}

	if c.Performance.MaxWorkers < 1 {
		return &models.ValidationError{
			Field:   "performance.max_workers",
			Message: "must be at least 1",
		}
	}

	if c.Logging.MaxSizeMB < 0 || c.Logging.MaxBackups < 0 {
		return &models.ValidationError{
			Field:   "logging.max_size_mb",
			Message: "rotation settings must not be negative",
		}
	}

	return nil
}

// Operation builds the check operation described by the input section
func (c *Config) Operation() *models.CheckOperation {
	exclude := make([]string, 0, len(c.Exclude))
	for _, pattern := range c.Exclude {
		if strings.TrimSpace(pattern) != "" {
			exclude = append(exclude, pattern)
		}
	}

	return &models.CheckOperation{
		Files:           c.Input.Files,
		SearchPath:      c.Input.SearchPath,
		SearchPattern:   c.Input.SearchPattern,
		ExcludePatterns: exclude,
		MaxFileSize:     c.Input.MaxFileSize,
		MaxWorkers:      c.Performance.MaxWorkers,
	}
}
