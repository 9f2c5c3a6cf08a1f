package tools

import (
	"fmt"

	"github.com/gobwas/glob"
)

// Filter decides which tools are exposed, by glob pattern on the tool name.
type Filter struct {
	enabled  []glob.Glob
	disabled []glob.Glob
}

// NewFilter compiles enable and disable patterns. An empty enable list
// allows every tool not disabled.
func NewFilter(enabled, disabled []string) (*Filter, error) {
	f := &Filter{}

	for _, pattern := range enabled {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid enabled pattern '%s': %w", pattern, err)
		}
		f.enabled = append(f.enabled, g)
	}

	for _, pattern := range disabled {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid disabled pattern '%s': %w", pattern, err)
		}
		f.disabled = append(f.disabled, g)
	}

	return f, nil
}

// Allows reports whether the tool name passes the filter.
func (f *Filter) Allows(name string) bool {
	// Disabled patterns take precedence
	for _, pattern := range f.disabled {
		if pattern.Match(name) {
			return false
		}
	}

	if len(f.enabled) == 0 {
		return true
	}

	for _, pattern := range f.enabled {
		if pattern.Match(name) {
			return true
		}
	}
	return false
}
