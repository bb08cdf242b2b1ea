package platform

import (
	"path/filepath"
	"runtime"
	"strings"
)

// NormalizePath normalizes a path for the current platform.
// Trailing separators are removed except for a filesystem root.
func NormalizePath(path string) string {
	// Convert to platform-specific separators
	normalized := filepath.Clean(path)

	// On Windows, ensure UNC paths are preserved
	if runtime.GOOS == "windows" {
		if strings.HasPrefix(path, "\\\\") && !strings.HasPrefix(normalized, "\\\\") {
			normalized = "\\\\" + normalized
		}
	}

	return normalized
}

// JoinEntry joins a cleaned directory and a directory entry name with
// the platform separator. A bare "." directory is kept, so "." and
// "en.json" give "./en.json" where filepath.Join gives "en.json".
func JoinEntry(dir, name string) string {
	dir = NormalizePath(dir)
	if strings.HasSuffix(dir, string(filepath.Separator)) {
		return dir + name
	}
	return dir + string(filepath.Separator) + name
}

// IsBlank reports whether a path is empty or whitespace only
func IsBlank(path string) bool {
	return strings.TrimSpace(path) == ""
}

// SplitLines splits multi-line text into trimmed, non-blank lines
func SplitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
