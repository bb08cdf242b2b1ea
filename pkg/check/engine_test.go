package check

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdejongh/keydrift/pkg/logging"
	"github.com/sdejongh/keydrift/pkg/models"
	"github.com/sdejongh/keydrift/pkg/output"
	"github.com/sdejongh/keydrift/pkg/storage"
)

func newTestEngine(t *testing.T, backend storage.Backend, formatter output.Formatter, op *models.CheckOperation) *Engine {
	t.Helper()
	engine, err := NewEngine(context.Background(), backend, formatter, nil, op)
	require.NoError(t, err)
	engine.SetOutput(&bytes.Buffer{})
	return engine
}

func TestEngine_Differences(t *testing.T) {
	backend := storage.NewMemory()
	backend.AddFile("locales/file1.json", []byte(`{"common":1,"missing1":"some"}`))
	backend.AddFile("locales/file2.json", []byte(`{"common":1,"missing2":"some"}`))

	engine := newTestEngine(t, backend, nil, &models.CheckOperation{SearchPath: "locales"})
	assert.Len(t, engine.Files(), 2)
	assert.NotEmpty(t, engine.Operation().ID)

	report, err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.StatusDifferences, report.Status)
	assert.Equal(t, models.ModeSearch, report.Mode)
	assert.Equal(t, `\.json$`, report.SearchPattern)
	assert.Equal(t, 1, report.Status.ExitCode())

	missing, ok := report.Differences.Lookup(filepath.Join("locales", "file1.json"))
	require.True(t, ok)
	assert.Equal(t, []string{"missing2"}, missing)
	assert.Equal(t, 2, report.KeyCounts[filepath.Join("locales", "file2.json")])
}

func TestEngine_NoDifferences(t *testing.T) {
	backend := storage.NewMemory()
	backend.AddFile("a.json", []byte(`{"x":1,"y":2}`))
	backend.AddFile("b.json", []byte(`{"y":3,"x":4}`))

	engine := newTestEngine(t, backend, nil, &models.CheckOperation{Files: "a.json\nb.json"})
	report, err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.StatusSuccess, report.Status)
	assert.Empty(t, report.Differences)
	assert.Empty(t, report.SearchPath)
	assert.Equal(t, 0, report.Status.ExitCode())
}

func TestEngine_ResolutionFailsEagerly(t *testing.T) {
	backend := storage.NewMemory()
	backend.AddFile("a.json", []byte(`not json`))

	_, err := NewEngine(context.Background(), backend, nil, nil, &models.CheckOperation{Files: "a.json\nb.json"})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrPathNotFound)
	assert.Contains(t, err.Error(), "b.json")
}

func TestEngine_DoesNotMutateOperation(t *testing.T) {
	backend := storage.NewMemory()
	backend.AddFile("a.json", []byte(`{}`))
	backend.AddFile("b.json", []byte(`{}`))

	op := &models.CheckOperation{Files: "a.json\nb.json"}
	engine := newTestEngine(t, backend, nil, op)

	assert.Empty(t, op.ID)
	assert.NotEmpty(t, engine.Operation().ID)
}

func TestEngine_ParseFailureReported(t *testing.T) {
	backend := storage.NewMemory()
	backend.AddFile("a.json", []byte(`{"a":1}`))
	backend.AddFile("b.json", []byte(`["a"]`))

	var out bytes.Buffer
	formatter := output.NewJSONFormatter()
	engine := newTestEngine(t, backend, formatter, &models.CheckOperation{Files: "a.json\nb.json"})
	engine.SetOutput(&out)

	report, err := engine.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrParse)
	require.NotNil(t, report)
	assert.Equal(t, models.StatusFailed, report.Status)
	assert.Equal(t, 2, report.Status.ExitCode())
	assert.Contains(t, out.String(), `"kind": "parse_error"`)
	assert.Contains(t, out.String(), `"path": "b.json"`)
	assert.Contains(t, out.String(), `"loaded_files"`)
}

func TestEngine_FileErrorReachesFormatter(t *testing.T) {
	backend := storage.NewMemory()
	backend.AddFile("a.json", []byte(`{"a":1}`))
	backend.AddFile("b.json", []byte(`{"a":`))
	backend.AddFile("c.json", []byte(`{"a":1}`))

	var out, errOut bytes.Buffer
	formatter := output.NewHumanFormatter()
	formatter.DisableColor()
	formatter.SetErrorWriter(&errOut)
	engine := newTestEngine(t, backend, formatter, &models.CheckOperation{Files: "a.json\nb.json\nc.json"})
	engine.SetOutput(&out)

	_, err := engine.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, out.String(), "[2/3] ✗ b.json:")
	assert.NotEmpty(t, errOut.String())
}

func TestEngine_FormatterReceivesProgress(t *testing.T) {
	backend := storage.NewMemory()
	backend.AddFile("a.json", []byte(`{"a":1}`))
	backend.AddFile("b.json", []byte(`{"a":1,"b":2}`))
	backend.AddFile("c.json", []byte(`{"b":2}`))

	var out bytes.Buffer
	formatter := output.NewGitHubFormatter()
	engine := newTestEngine(t, backend, formatter, &models.CheckOperation{Files: "a.json\nb.json\nc.json"})
	engine.SetOutput(&out)

	report, err := engine.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, report.Differences, 2)

	lines := out.String()
	assert.Contains(t, lines, "::debug::comparing keys of 3 files")
	assert.Contains(t, lines, "::debug::loaded b.json (2 keys)")
	assert.Contains(t, lines, "::error file=a.json,title=Missing keys::Missing keys: b")
	assert.Contains(t, lines, "::error file=c.json,title=Missing keys::Missing keys: a")
}

func TestEngine_LogsToFile(t *testing.T) {
	backend := storage.NewMemory()
	backend.AddFile("a.json", []byte(`{"a":1}`))
	backend.AddFile("b.json", []byte(`{"b":1}`))

	logPath := filepath.Join(t.TempDir(), "check.log")
	logger, err := logging.NewFileLogger(logging.FileLoggerConfig{
		Path:   logPath,
		Format: logging.FormatText,
		Level:  logging.DebugLevel,
	})
	require.NoError(t, err)

	engine, err := NewEngine(context.Background(), backend, nil, logger, &models.CheckOperation{
		ID:    "op-42",
		Files: "a.json\nb.json",
	})
	require.NoError(t, err)

	_, err = engine.Run(context.Background())
	require.NoError(t, err)
	require.NoError(t, logger.Close())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	log := string(content)
	assert.Contains(t, log, "resolved input files")
	assert.Contains(t, log, "comparison complete")
	assert.Contains(t, log, "operation=op-42")
	assert.Equal(t, 2, strings.Count(log, "loaded file"))
}

// TestEngine_LocalScenario runs search mode end to end on disk
func TestEngine_LocalScenario(t *testing.T) {
	tempDir := t.TempDir()
	files := map[string]string{
		"file1.json":  `{"common":1,"missing1":"some"}`,
		"file2.ejson": `{"common":1,"missing2":"some"}`,
		"notes.txt":   `not json at all`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, name), []byte(content), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(tempDir, "nested.json"), 0755))

	backend, err := storage.NewLocal(tempDir)
	require.NoError(t, err)
	defer backend.Close()

	engine := newTestEngine(t, backend, nil, &models.CheckOperation{
		SearchPath:    ".",
		SearchPattern: "json$",
	})
	assert.Equal(t, models.FileList{"./file1.json", "./file2.ejson"}, engine.Files())

	report, err := engine.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DiffReport{
		{File: "./file1.json", MissingKeys: []string{"missing2"}},
		{File: "./file2.ejson", MissingKeys: []string{"missing1"}},
	}, report.Differences)
}
