package files

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldInclude_DefaultRules(t *testing.T) {
	rules := DefaultIgnoreRules()

	tests := []struct {
		path string
		want bool
	}{
		{"src/app.ts", true},
		{"package.json", true},
		{"README.md", true},
		{"node_modules/foo.js", false},
		{"node_modules/react/index.js", false},
		{".git/HEAD", false},
		{"dist/bundle.js", false},
		{".next/cache/x", false},
		{"debug.log", false},
		{"logs/server.log", false},
		{"src/.DS_Store", false},
		{".DS_Store", false},
		{"npm-debug.log.1", false},
		{"pkg/yarn-error.log", false},
		{"src/logger.ts", true},
		{"./node_modules/foo.js", false},
		{"/src/app.ts", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, rules.ShouldInclude(tt.path))
		})
	}
}

func TestShouldInclude_DirectoryGlobsAreAnchored(t *testing.T) {
	rules := DefaultIgnoreRules()
	assert.True(t, rules.ShouldInclude("src/build/helpers.ts"))
}

func TestNewIgnoreRules_InvalidPattern(t *testing.T) {
	_, err := NewIgnoreRules("src/[")
	require.Error(t, err)

	var patternErr *PatternError
	assert.ErrorAs(t, err, &patternErr)
	assert.Equal(t, "src/[", patternErr.Pattern)
}

func TestNewIgnoreRules_SkipsBlankPatterns(t *testing.T) {
	rules, err := NewIgnoreRules("", "  ", "tmp/**")
	require.NoError(t, err)
	assert.Equal(t, []string{"tmp/**"}, rules.Patterns())
	assert.False(t, rules.ShouldInclude("tmp/a"))
}

func TestIgnoreRules_EmptyPathIncluded(t *testing.T) {
	assert.True(t, DefaultIgnoreRules().ShouldInclude(""))
}

func TestIgnoreRules_PatternsIsCopy(t *testing.T) {
	rules := DefaultIgnoreRules()
	p := rules.Patterns()
	p[0] = "changed"
	assert.Equal(t, DefaultIgnorePatterns[0], rules.Patterns()[0])
}
