package compare

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/sdejongh/keydrift/pkg/models"
)

func contentOf(sets map[string][]string, order ...string) *models.ContentMap {
	contents := models.NewContentMap()
	for _, file := range order {
		contents.Set(file, models.NewKeySet(sets[file]...))
	}
	return contents
}

func TestComputeDiff_MissingKeysBothWays(t *testing.T) {
	contents := contentOf(map[string][]string{
		"file1.json": {"common", "missing1"},
		"file2.json": {"common", "missing2"},
	}, "file1.json", "file2.json")

	report := ComputeDiff(contents)

	assert.Equal(t, models.DiffReport{
		{File: "file1.json", MissingKeys: []string{"missing2"}},
		{File: "file2.json", MissingKeys: []string{"missing1"}},
	}, report)
}

func TestComputeDiff_IdenticalKeySetsGiveEmptyReport(t *testing.T) {
	contents := contentOf(map[string][]string{
		"file1.json": {"a", "b", "c"},
		"file2.json": {"c", "b", "a"},
	}, "file1.json", "file2.json")

	report := ComputeDiff(contents)

	assert.Empty(t, report)
	assert.Zero(t, report.TotalMissing())
}

func TestComputeDiff_KeyReportedOnceAcrossSiblings(t *testing.T) {
	contents := contentOf(map[string][]string{
		"file1.json": {"a", "X"},
		"file2.json": {"a", "X"},
		"file3.json": {"a"},
	}, "file1.json", "file2.json", "file3.json")

	report := ComputeDiff(contents)

	require.Len(t, report, 1)
	missing, ok := report.Lookup("file3.json")
	require.True(t, ok)
	assert.Equal(t, []string{"X"}, missing)
}

func TestComputeDiff_OrderFollowsFilesThenFirstSeen(t *testing.T) {
	contents := contentOf(map[string][]string{
		"en.json": {"title", "footer"},
		"fr.json": {"title", "header"},
		"de.json": {"body"},
	}, "en.json", "fr.json", "de.json")

	report := ComputeDiff(contents)

	assert.Equal(t, []string{"en.json", "fr.json", "de.json"}, report.Files())

	de, _ := report.Lookup("de.json")
	assert.Equal(t, []string{"title", "footer", "header"}, de)

	en, _ := report.Lookup("en.json")
	assert.Equal(t, []string{"header", "body"}, en)
}

func TestComputeDiff_EmptyInputs(t *testing.T) {
	assert.Empty(t, ComputeDiff(nil))
	assert.Empty(t, ComputeDiff(models.NewContentMap()))

	// Empty objects on both sides
	contents := contentOf(map[string][]string{}, "a.json", "b.json")
	assert.Empty(t, ComputeDiff(contents))
}

func TestUnion(t *testing.T) {
	contents := contentOf(map[string][]string{
		"a.json": {"x", "y"},
		"b.json": {"y", "z"},
	}, "a.json", "b.json")

	assert.Equal(t, []string{"x", "y", "z"}, Union(contents).Keys())
	assert.Zero(t, Union(nil).Len())
}

// genContent draws between 2 and 6 files, each holding a subset of a
// small key alphabet so that overlaps are frequent.
func genContent(t *rapid.T) *models.ContentMap {
	alphabet := []string{"a", "b", "c", "d", "e", "f", "g"}
	n := rapid.IntRange(2, 6).Draw(t, "files")

	contents := models.NewContentMap()
	for i := 0; i < n; i++ {
		keys := rapid.SliceOfDistinct(rapid.SampledFrom(alphabet), rapid.ID[string]).Draw(t, fmt.Sprintf("keys%d", i))
		contents.Set(fmt.Sprintf("file%d.json", i), models.NewKeySet(keys...))
	}
	return contents
}

func TestComputeDiff_Properties(t *testing.T) {
	t.Run("Idempotent", func(t *testing.T) {
		rapid.Check(t, func(rt *rapid.T) {
			contents := genContent(rt)
			assert.Equal(rt, ComputeDiff(contents), ComputeDiff(contents))
		})
	})

	t.Run("NeverListsOwnedKey", func(t *testing.T) {
		rapid.Check(t, func(rt *rapid.T) {
			contents := genContent(rt)
			for _, diff := range ComputeDiff(contents) {
				own, _ := contents.Get(diff.File)
				for _, key := range diff.MissingKeys {
					if own.Has(key) {
						rt.Fatalf("%s lists %q but owns it", diff.File, key)
					}
				}
			}
		})
	})

	t.Run("CompleteWithoutDuplicates", func(t *testing.T) {
		rapid.Check(t, func(rt *rapid.T) {
			contents := genContent(rt)
			report := ComputeDiff(contents)
			all := Union(contents)

			for _, file := range contents.Files() {
				own, _ := contents.Get(file)
				counts := make(map[string]int)
				if missing, ok := report.Lookup(file); ok {
					require.NotEmpty(rt, missing)
					for _, key := range missing {
						counts[key]++
					}
				}

				for _, key := range all.Keys() {
					want := 1
					if own.Has(key) {
						want = 0
					}
					if counts[key] != want {
						rt.Fatalf("%s: key %q reported %d times, want %d", file, key, counts[key], want)
					}
				}
			}
		})
	})

	t.Run("SharedKeySetsGiveEmptyReport", func(t *testing.T) {
		rapid.Check(t, func(rt *rapid.T) {
			keys := rapid.SliceOfDistinct(rapid.StringMatching(`[a-z]{1,5}`), rapid.ID[string]).Draw(rt, "keys")
			n := rapid.IntRange(2, 5).Draw(rt, "files")

			contents := models.NewContentMap()
			for i := 0; i < n; i++ {
				shuffled := rapid.Permutation(keys).Draw(rt, fmt.Sprintf("order%d", i))
				contents.Set(fmt.Sprintf("file%d.json", i), models.NewKeySet(shuffled...))
			}

			if report := ComputeDiff(contents); len(report) != 0 {
				rt.Fatalf("expected empty report, got %v", report)
			}
		})
	})
}
