package compare

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdejongh/keydrift/pkg/limit"
	"github.com/sdejongh/keydrift/pkg/models"
	"github.com/sdejongh/keydrift/pkg/storage"
)

func TestParseKeys(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		wantErr bool
	}{
		{"object", `{"common":1,"missing1":"some"}`, []string{"common", "missing1"}, false},
		{"empty object", `{}`, []string{}, false},
		{"nested values ignored", `{"a":{"b":1},"c":[1,2]}`, []string{"a", "c"}, false},
		{"document order", `{"z":1,"a":2,"m":3}`, []string{"z", "a", "m"}, false},
		{"duplicate keeps first", `{"a":1,"b":2,"a":3}`, []string{"a", "b"}, false},
		{"escaped key", `{"a\"b":1}`, []string{`a"b`}, false},
		{"whitespace", " \n {\"a\" : 1 } \n", []string{"a"}, false},
		{"array", `[1,2]`, nil, true},
		{"string", `"text"`, nil, true},
		{"number", `42`, nil, true},
		{"null", `null`, nil, true},
		{"truncated", `{"a":1`, nil, true},
		{"empty", ``, nil, true},
		{"trailing garbage", `{"a":1} x`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys, err := ParseKeys("test.json", []byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, models.ErrParse))
				assert.Contains(t, err.Error(), "test.json")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, keys.Keys())
		})
	}
}

func TestLoader_Load(t *testing.T) {
	backend := storage.NewMemory()
	backend.AddFile("locales/en.json", []byte(`{"title":"Hello","footer":"Bye"}`))
	backend.AddFile("locales/fr.json", []byte(`{"title":"Bonjour"}`))

	loader := NewLoader(backend, nil)

	var calls []int
	loader.SetProgressCallback(func(path string, current, total int, keys int) {
		assert.Equal(t, 2, total)
		calls = append(calls, current)
	})

	contents, err := loader.Load(context.Background(), models.FileList{"locales/fr.json", "locales/en.json"})
	require.NoError(t, err)

	assert.Equal(t, []string{"locales/fr.json", "locales/en.json"}, contents.Files())
	en, ok := contents.Get("locales/en.json")
	require.True(t, ok)
	assert.Equal(t, []string{"title", "footer"}, en.Keys())
	assert.Equal(t, []int{1, 2}, calls)
}

func TestLoader_ParseErrorAborts(t *testing.T) {
	backend := storage.NewMemory()
	backend.AddFile("a.json", []byte(`{"a":1}`))
	backend.AddFile("b.json", []byte(`[1,2,3]`))
	backend.AddFile("c.json", []byte(`{"c":1}`))

	contents, err := NewLoader(backend, nil).Load(context.Background(), models.FileList{"a.json", "b.json", "c.json"})

	require.Error(t, err)
	assert.Nil(t, contents)
	var checkErr *models.CheckError
	require.True(t, errors.As(err, &checkErr))
	assert.Equal(t, models.KindParse, checkErr.Kind)
	assert.Equal(t, "b.json", checkErr.Path)
}

func TestLoader_ReadErrorAborts(t *testing.T) {
	backend := storage.NewMemory()
	backend.AddFile("a.json", []byte(`{"a":1}`))
	backend.AddDir("dir.json")

	_, err := NewLoader(backend, nil).Load(context.Background(), models.FileList{"a.json", "gone.json"})
	assert.True(t, errors.Is(err, models.ErrRead))

	_, err = NewLoader(backend, nil).Load(context.Background(), models.FileList{"a.json", "dir.json"})
	assert.True(t, errors.Is(err, models.ErrRead))
}

func TestLoader_MaxFileSize(t *testing.T) {
	backend := storage.NewMemory()
	backend.AddFile("small.json", []byte(`{"a":1}`))
	backend.AddFile("big.json", []byte(`{"a":1,"padding":"`+strings.Repeat("x", 4096)+`"}`))

	loader := NewLoader(backend, nil)
	loader.SetMaxFileSize(1024)

	_, err := loader.Load(context.Background(), models.FileList{"small.json", "big.json"})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrRead)
	assert.ErrorIs(t, err, limit.ErrTooLarge)
	assert.Contains(t, err.Error(), "big.json")

	loader.SetMaxFileSize(0)
	_, err = loader.Load(context.Background(), models.FileList{"small.json", "big.json"})
	assert.NoError(t, err)
}

func TestLoader_Parallel(t *testing.T) {
	backend := storage.NewMemory()
	files := models.FileList{}
	for i := 0; i < 20; i++ {
		name := filepath.Join("locales", strings.Repeat("x", i+1)+".json")
		backend.AddFile(name, []byte(`{"title":1,"`+name+`":2}`))
		files = append(files, name)
	}

	loader := NewLoader(backend, nil)
	loader.SetWorkers(4)

	seen := map[int]bool{}
	loader.SetProgressCallback(func(path string, current, total int, keys int) {
		assert.Equal(t, len(files), total)
		assert.Equal(t, 2, keys)
		seen[current] = true
	})

	contents, err := loader.Load(context.Background(), files)
	require.NoError(t, err)
	assert.Equal(t, []string(files), contents.Files())
	assert.Len(t, seen, len(files))
	assert.True(t, seen[len(files)])
}

func TestLoader_ParallelReportsFirstFailureInOrder(t *testing.T) {
	backend := storage.NewMemory()
	backend.AddFile("a.json", []byte(`{"a":1}`))
	backend.AddFile("b.json", []byte(`"b"`))
	backend.AddFile("c.json", []byte(`{broken`))
	backend.AddFile("d.json", []byte(`{"d":1}`))

	loader := NewLoader(backend, nil)
	loader.SetWorkers(8)

	for i := 0; i < 10; i++ {
		_, err := loader.Load(context.Background(), models.FileList{"a.json", "b.json", "c.json", "d.json"})
		var checkErr *models.CheckError
		require.True(t, errors.As(err, &checkErr))
		assert.Equal(t, "b.json", checkErr.Path)
	}
}

func TestLoader_CancelledContext(t *testing.T) {
	backend := storage.NewMemory()
	backend.AddFile("a.json", []byte(`{}`))
	backend.AddFile("b.json", []byte(`{}`))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(backend, nil).Load(ctx, models.FileList{"a.json", "b.json"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoader_LocalFiles(t *testing.T) {
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "file1.json"), []byte(`{"common":1,"missing1":"some"}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "file2.json"), []byte(`{"common":1,"missing2":"some"}`), 0644))

	backend, err := storage.NewLocal(tempDir)
	require.NoError(t, err)
	defer backend.Close()

	contents, err := NewLoader(backend, nil).Load(context.Background(), models.FileList{"file1.json", "file2.json"})
	require.NoError(t, err)

	report := ComputeDiff(contents)
	assert.Equal(t, models.DiffReport{
		{File: "file1.json", MissingKeys: []string{"missing2"}},
		{File: "file2.json", MissingKeys: []string{"missing1"}},
	}, report)
}
