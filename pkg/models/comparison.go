package models

// FileDifference lists the keys a file lacks compared to its siblings
type FileDifference struct {
	File        string   `json:"file"`
	MissingKeys []string `json:"missing_keys"`
}

// DiffReport holds one entry per file with at least one missing key,
// in file list order. Files without differences are absent.
type DiffReport []FileDifference

// Lookup returns the missing keys recorded for a file
func (r DiffReport) Lookup(file string) ([]string, bool) {
	for _, d := range r {
		if d.File == file {
			return d.MissingKeys, true
		}
	}
	return nil, false
}

// Files returns the files that have differences
func (r DiffReport) Files() []string {
	files := make([]string, 0, len(r))
	for _, d := range r {
		files = append(files, d.File)
	}
	return files
}

// Map returns the report as a plain file -> keys mapping
func (r DiffReport) Map() map[string][]string {
	m := make(map[string][]string, len(r))
	for _, d := range r {
		m[d.File] = d.MissingKeys
	}
	return m
}

// TotalMissing returns the number of missing keys across all files
func (r DiffReport) TotalMissing() int {
	total := 0
	for _, d := range r {
		total += len(d.MissingKeys)
	}
	return total
}
