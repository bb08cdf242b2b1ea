package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variables set by the workflow runner for action inputs
const (
	EnvFiles         = "INPUT_FILES"
	EnvSearchPath    = "INPUT_SEARCH_PATH"
	EnvSearchPattern = "INPUT_SEARCH_PATTERN"
	EnvExclude       = "INPUT_EXCLUDE"
	EnvGitHubActions = "GITHUB_ACTIONS"
)

// LookupFunc retrieves an environment variable
type LookupFunc func(key string) (string, bool)

// ApplyEnv overlays the action inputs found in the environment.
// Values are trimmed and only non-empty ones override the configuration. Running inside
// GitHub Actions switches a human output format to github.
func ApplyEnv(cfg *Config, lookup LookupFunc) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if v, ok := nonEmpty(lookup, EnvFiles); ok {
		cfg.Input.Files = v
	}
	if v, ok := nonEmpty(lookup, EnvSearchPath); ok {
		cfg.Input.SearchPath = v
	}
	if v, ok := nonEmpty(lookup, EnvSearchPattern); ok {
		cfg.Input.SearchPattern = v
	}
	if v, ok := nonEmpty(lookup, EnvExclude); ok {
		var patterns []string
		for _, line := range strings.Split(v, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				patterns = append(patterns, line)
			}
		}
		cfg.Exclude = patterns
	}

	if v, ok := nonEmpty(lookup, EnvGitHubActions); ok {
		if inActions, err := strconv.ParseBool(v); err == nil && inActions && cfg.Output.Format == "human" {
			cfg.Output.Format = "github"
		}
	}
}

// nonEmpty returns the trimmed value of an input, ignoring blank ones
func nonEmpty(lookup LookupFunc, key string) (string, bool) {
	v, ok := lookup(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
