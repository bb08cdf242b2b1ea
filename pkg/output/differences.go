package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/sdejongh/keydrift/pkg/models"
)

// WriteDifferencesReport writes the differences report to a file
// Format is one of DiffFormats
func WriteDifferencesReport(report *models.CheckReport, filepath string, format string) error {
	if len(report.Differences) == 0 {
		// No differences - don't create empty file
		return nil
	}

	file, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("failed to create differences file: %w", err)
	}
	defer file.Close()

	switch format {
	case "json":
		err = writeDifferencesJSON(report, file)
	default: // "human"
		err = writeDifferencesHuman(report, file)
	}
	if err != nil {
		return fmt.Errorf("failed to write differences file: %w", err)
	}

	return file.Close()
}

// writeDifferencesHuman writes differences in human-readable format
func writeDifferencesHuman(report *models.CheckReport, w io.Writer) error {
	fmt.Fprintf(w, "Differences Report\n")
	fmt.Fprintf(w, "==================\n\n")
	fmt.Fprintf(w, "Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(w, "Mode: %s\n", report.Mode)
	if report.Mode == models.ModeSearch {
		fmt.Fprintf(w, "Search path: %s\n", report.SearchPath)
		fmt.Fprintf(w, "Search pattern: %s\n", report.SearchPattern)
	}
	fmt.Fprintf(w, "Files compared: %d\n", len(report.Files))
	fmt.Fprintf(w, "Total missing keys: %d\n\n", report.Differences.TotalMissing())

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	table.Header("File", "Keys", "Missing")

	data := make([][]string, 0, len(report.Files))
	for _, file := range report.Files {
		missing, _ := report.Differences.Lookup(file)
		data = append(data, []string{
			file,
			strconv.Itoa(report.KeyCounts[file]),
			strconv.Itoa(len(missing)),
		})
	}
	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("error formatting summary: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("error rendering summary: %w", err)
	}
	fmt.Fprintf(w, "%s\n", buf.String())

	for _, diff := range report.Differences {
		label := fmt.Sprintf("%s (%d missing)", diff.File, len(diff.MissingKeys))
		fmt.Fprintf(w, "%s\n", label)
		fmt.Fprintf(w, "%s\n", strings.Repeat("-", len(label)))
		for _, key := range diff.MissingKeys {
			fmt.Fprintf(w, "  - %s\n", key)
		}
		fmt.Fprintf(w, "\n")
	}

	return nil
}

// writeDifferencesJSON writes differences in JSON format
func writeDifferencesJSON(report *models.CheckReport, w io.Writer) error {
	output := struct {
		Generated     string                  `json:"generated"`
		OperationID   string                  `json:"operation_id"`
		Mode          string                  `json:"mode"`
		SearchPath    string                  `json:"search_path,omitempty"`
		SearchPattern string                  `json:"search_pattern,omitempty"`
		Files         []string                `json:"files"`
		TotalCount    int                     `json:"total_count"`
		Differences   []models.FileDifference `json:"differences"`
	}{
		Generated:     time.Now().Format(time.RFC3339),
		OperationID:   report.OperationID,
		Mode:          string(report.Mode),
		SearchPath:    report.SearchPath,
		SearchPattern: report.SearchPattern,
		Files:         report.Files,
		TotalCount:    report.Differences.TotalMissing(),
		Differences:   report.Differences,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
