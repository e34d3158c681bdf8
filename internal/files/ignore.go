// Package files provides classification helpers for project files: ignore rules,
// binary detection, project-type detection and directory collection.
package files

import (
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultIgnorePatterns are the gitignore-style globs excluded from every project.
var DefaultIgnorePatterns = []string{
	"node_modules/**",
	".git/**",
	"dist/**",
	"build/**",
	".next/**",
	"coverage/**",
	".cache/**",
	".vscode/**",
	".idea/**",
	"**/*.log",
	"**/.DS_Store",
	"**/npm-debug.log*",
	"**/yarn-debug.log*",
	"**/yarn-error.log*",
}

// PatternError reports an ignore pattern that is not a valid glob.
type PatternError struct {
	Pattern string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid ignore pattern: %q", e.Pattern)
}

// IgnoreRules is an immutable, validated set of exclusion globs.
// It is safe for concurrent use.
type IgnoreRules struct {
	patterns []string
}

// NewIgnoreRules validates patterns and returns the rule set.
func NewIgnoreRules(patterns ...string) (*IgnoreRules, error) {
	compiled := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !doublestar.ValidatePattern(p) {
			return nil, &PatternError{Pattern: p}
		}
		compiled = append(compiled, p)
	}
	return &IgnoreRules{patterns: compiled}, nil
}

// DefaultIgnoreRules returns the rule set built from DefaultIgnorePatterns.
func DefaultIgnoreRules() *IgnoreRules {
	rules, err := NewIgnoreRules(DefaultIgnorePatterns...)
	if err != nil {
		panic(fmt.Sprintf("default ignore patterns: %v", err))
	}
	return rules
}

// Patterns returns a copy of the rule set's globs.
func (r *IgnoreRules) Patterns() []string {
	out := make([]string, len(r.patterns))
	copy(out, r.patterns)
	return out
}

// ShouldInclude reports whether p matches none of the exclusion patterns.
// "**" spans any number of path segments and a trailing "/**" excludes the
// directory's whole subtree.
func (r *IgnoreRules) ShouldInclude(p string) bool {
	return !r.Ignores(p)
}

// Ignores reports whether p matches at least one exclusion pattern.
func (r *IgnoreRules) Ignores(p string) bool {
	p = normalizePath(p)
	if p == "" {
		return false
	}
	for _, pattern := range r.patterns {
		if doublestar.MatchUnvalidated(pattern, p) {
			return true
		}
	}
	return false
}

// normalizePath converts p to a clean, relative, slash-separated path.
func normalizePath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean(p)
	p = strings.TrimLeft(p, "/")
	if p == "." {
		return ""
	}
	return strings.TrimPrefix(p, "./")
}
