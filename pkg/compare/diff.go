package compare

import (
	"github.com/sdejongh/keydrift/pkg/models"
)

// ComputeDiff returns, for every file, the keys found in at least one
// other file but missing from it. Files are visited in ContentMap order
// and missing keys are listed in the order they are first met. Files
// missing nothing are left out of the report.
func ComputeDiff(contents *models.ContentMap) models.DiffReport {
	var report models.DiffReport
	if contents == nil {
		return report
	}

	files := contents.Files()
	for _, a := range files {
		own, _ := contents.Get(a)
		missing := models.NewKeySet()

		for _, b := range files {
			if a == b {
				continue
			}
			other, _ := contents.Get(b)
			for _, key := range other.Keys() {
				if !own.Has(key) {
					missing.Add(key)
				}
			}
		}

		if missing.Len() > 0 {
			report = append(report, models.FileDifference{
				File:        a,
				MissingKeys: missing.Keys(),
			})
		}
	}

	return report
}

// Union returns every key found in any file, in first-seen order
func Union(contents *models.ContentMap) *models.KeySet {
	all := models.NewKeySet()
	if contents == nil {
		return all
	}
	for _, file := range contents.Files() {
		keys, _ := contents.Get(file)
		for _, key := range keys.Keys() {
			all.Add(key)
		}
	}
	return all
}
