package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		patternType PatternType
		wantType    PatternType
		wantErr     bool
	}{
		{"glob", "*(ws)*", Glob, Glob, false},
		{"regex", `^ICML \d{4}$`, Regex, Regex, false},
		{"invalid regex", "[unclosed", Regex, Regex, true},
		{"auto glob with parentheses", "*(deadline estimated)*", Auto, Glob, false},
		{"auto regex", `\bworkshop\b`, Auto, Regex, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.patternType, tt.pattern)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, m.Type())
			assert.Equal(t, tt.pattern, m.Pattern())
		})
	}
}

func TestGlobMatch(t *testing.T) {
	m, err := New(Glob, "icml*", &Options{CaseInsensitive: true})
	require.NoError(t, err)
	assert.True(t, m.Match("ICML 2025"))
	assert.True(t, m.Match("icml/ws"))
	assert.False(t, m.Match("CVPR 2025"))
}

func TestExclusions(t *testing.T) {
	mm, err := NewExclusions()
	require.NoError(t, err)
	assert.Equal(t, DefaultExclusions, mm.Patterns())

	excluded := []string{"CVPR (WS)", "WAD (ws) at CVPR", "IV (Deadline Estimated)"}
	kept := []string{"CVPR", "IV", "ITSC", "WS-ICML"}
	for _, title := range excluded {
		assert.True(t, mm.Match(title), title)
	}
	for _, title := range kept {
		assert.False(t, mm.Match(title), title)
	}
	pattern, ok := mm.MatchingPattern("IV (Deadline Estimated)")
	assert.True(t, ok)
	assert.Equal(t, "*(deadline estimated)*", pattern)

	var none *MultiMatcher
	assert.False(t, none.Match("anything"))
}

func TestGlobToRegex(t *testing.T) {
	tests := map[string]string{
		"*(ws)*": `^.*\(ws\).*$`,
		"a?c":    `^a.c$`,
		"[!a]b":  `^[^a]b$`,
		"x[yz":   `^x\[yz$`,
		`lit\*`:  `^lit\*$`,
		"a.b+c":  `^a\.b\+c$`,
	}
	for glob, want := range tests {
		assert.Equal(t, want, GlobToRegex(glob), glob)
	}
}
