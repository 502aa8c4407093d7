// Package matcher provides glob and regex pattern matching over conference
// titles. Feed passes use it to exclude rows such as workshops or entries
// whose deadline is only an estimate.
package matcher

import (
	"fmt"
	"regexp"
	"strings"
)

// PatternType represents the type of pattern matching to use.
type PatternType int

const (
	// Glob uses shell-style glob patterns (*, ?, []). "*" also matches "/".
	Glob PatternType = iota
	// Regex uses regular expressions.
	Regex
	// Auto attempts to detect the pattern type.
	Auto
)

// DefaultExclusions are the title markers of feed rows that never enter the dataset.
var DefaultExclusions = []string{
	"*(ws)*",
	"*(deadline estimated)*",
}

// Matcher is the main interface for pattern matching operations.
type Matcher interface {
	// Match checks if the input matches the pattern
	Match(input string) bool
	// Pattern returns the original pattern string.
	Pattern() string
	// Type returns the pattern type being used.
	Type() PatternType
}

type matcher struct {
	pattern     string
	patternType PatternType
	compiled    *regexp.Regexp
}

// Options configures the matcher behavior.
type Options struct {
	// CaseInsensitive makes matching case-insensitive
	CaseInsensitive bool
}

// DefaultOptions returns the default options.
func DefaultOptions() *Options {
	return &Options{}
}

// New creates a new Matcher with the specified pattern and type.
func New(patternType PatternType, pattern string, opts ...*Options) (Matcher, error) {
	options := DefaultOptions()
	if len(opts) > 0 && opts[0] != nil {
		options = opts[0]
	}

	m := &matcher{
		pattern:     pattern,
		patternType: patternType,
	}
	if patternType == Auto {
		m.patternType = detectPatternType(pattern)
	}

	if err := m.compile(options); err != nil {
		return nil, fmt.Errorf("failed to compile pattern: %w", err)
	}
	return m, nil
}

func (m *matcher) compile(opts *Options) error {
	var pattern string
	switch m.patternType {
	case Glob:
		pattern = GlobToRegex(m.pattern)
	case Regex:
		pattern = m.pattern
	default:
		return fmt.Errorf("unsupported pattern type: %v", m.patternType)
	}

	if opts.CaseInsensitive && !strings.HasPrefix(pattern, "(?i)") {
		pattern = "(?i)" + pattern
	}
	compiled, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid %s pattern: %w", m.patternType, err)
	}
	m.compiled = compiled
	return nil
}

// Match checks if the input matches the pattern.
func (m *matcher) Match(input string) bool {
	return m.compiled.MatchString(input)
}

// Pattern returns the original pattern string.
func (m *matcher) Pattern() string {
	return m.pattern
}

// Type returns the pattern type being used.
func (m *matcher) Type() PatternType {
	return m.patternType
}

// detectPatternType attempts to detect if a pattern is glob or regex.
// Parentheses are literal in titles, so they do not indicate a regex.
func detectPatternType(pattern string) PatternType {
	regexIndicators := []string{
		"^", "$", "\\d", "\\w", "\\s", "\\b",
		"(?:", "(?i)", ".*", ".+", "{", "}", "+", "|",
	}
	for _, indicator := range regexIndicators {
		if strings.Contains(pattern, indicator) {
			return Regex
		}
	}
	return Glob
}

// String returns a string representation of the PatternType.
func (pt PatternType) String() string {
	switch pt {
	case Glob:
		return "glob"
	case Regex:
		return "regex"
	case Auto:
		return "auto"
	default:
		return "unknown"
	}
}

// MultiMatcher matches when any of its patterns matches.
type MultiMatcher struct {
	matchers []Matcher
}

// NewMultiMatcher creates a matcher with multiple patterns.
func NewMultiMatcher(patterns []string, patternType PatternType, opts ...*Options) (*MultiMatcher, error) {
	mm := &MultiMatcher{
		matchers: make([]Matcher, 0, len(patterns)),
	}
	for _, pattern := range patterns {
		m, err := New(patternType, pattern, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create matcher for pattern %q: %w", pattern, err)
		}
		mm.matchers = append(mm.matchers, m)
	}
	return mm, nil
}

// NewExclusions creates the case-insensitive matcher of the given title
// markers, or of DefaultExclusions when none are given.
func NewExclusions(patterns ...string) (*MultiMatcher, error) {
	if len(patterns) == 0 {
		patterns = DefaultExclusions
	}
	return NewMultiMatcher(patterns, Auto, &Options{CaseInsensitive: true})
}

// Match returns true if any pattern matches.
func (mm *MultiMatcher) Match(input string) bool {
	_, ok := mm.MatchingPattern(input)
	return ok
}

// MatchingPattern returns the first pattern that matches input.
func (mm *MultiMatcher) MatchingPattern(input string) (string, bool) {
	if mm == nil {
		return "", false
	}
	for _, m := range mm.matchers {
		if m.Match(input) {
			return m.Pattern(), true
		}
	}
	return "", false
}

// Patterns returns the patterns in order.
func (mm *MultiMatcher) Patterns() []string {
	out := make([]string, 0, len(mm.matchers))
	for _, m := range mm.matchers {
		out = append(out, m.Pattern())
	}
	return out
}

// GlobToRegex converts a glob pattern to an anchored regex pattern.
func GlobToRegex(glob string) string {
	var regex strings.Builder
	regex.WriteString("^")

	for i := 0; i < len(glob); i++ {
		switch glob[i] {
		case '*':
			regex.WriteString(".*")
		case '?':
			regex.WriteString(".")
		case '[':
			j := i + 1
			var class strings.Builder
			if j < len(glob) && (glob[j] == '!' || glob[j] == '^') {
				class.WriteString("[^")
				j++
			} else {
				class.WriteString("[")
			}
			for ; j < len(glob) && glob[j] != ']'; j++ {
				if glob[j] == '\\' && j+1 < len(glob) {
					class.WriteByte(glob[j])
					j++
				}
				class.WriteByte(glob[j])
			}
			if j < len(glob) {
				class.WriteString("]")
				regex.WriteString(class.String())
				i = j
			} else {
				// unterminated class, match "[" literally
				regex.WriteString(`\[`)
			}
		case '\\':
			if i+1 < len(glob) {
				i++
				regex.WriteString(regexp.QuoteMeta(string(glob[i])))
			}
		default:
			regex.WriteString(regexp.QuoteMeta(string(glob[i])))
		}
	}

	regex.WriteString("$")
	return regex.String()
}
