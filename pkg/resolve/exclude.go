package resolve

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sdejongh/keydrift/pkg/models"
)

// Excluder drops directory entries matching any of its glob patterns.
// Patterns support:
//   - Simple glob patterns: *.tmp.json, package*.json
//   - Alternatives and classes: {schema,meta}.json, [a-c]*.json
//   - Double star, which behaves like * for a single entry name
type Excluder struct {
	patterns []string
}

// NewExcluder validates the patterns and builds an Excluder.
// Blank patterns are ignored.
func NewExcluder(patterns []string) (*Excluder, error) {
	e := &Excluder{}
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}

		// Normalize pattern
		normalized := filepath.ToSlash(pattern)
		if !doublestar.ValidatePattern(normalized) {
			return nil, &models.ValidationError{
				Field:   "exclude",
				Message: "invalid glob pattern: " + pattern,
			}
		}
		e.patterns = append(e.patterns, normalized)
	}
	return e, nil
}

// Patterns returns the normalized patterns
func (e *Excluder) Patterns() []string {
	return append([]string(nil), e.patterns...)
}

// Excluded checks if an entry name matches one of the patterns
func (e *Excluder) Excluded(name string) bool {
	if e == nil || len(e.patterns) == 0 {
		return false
	}

	for _, pattern := range e.patterns {
		if matched, err := doublestar.Match(pattern, name); err == nil && matched {
			return true
		}
	}

	return false
}
