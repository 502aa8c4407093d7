// Package normalize canonicalizes free-text conference titles and names and
// the many date spellings found across sources into comparable forms.
// All functions are pure.
package normalize

import (
	"html"
	"slices"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Decorations sources attach to conference titles. NoiseMarkers are removed
// wherever they occur and NoiseWords are dropped only as whole tokens so that
// acronyms such as ACML survive.
var (
	NoiseMarkers = []string{"--ei"}
	NoiseWords   = []string{"dagm", "ieee", "scopus", "acm"}
)

// Fold lowercases s and strips diacritics, so "Montréal" and "montreal" compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// Title strips publisher and indexing decorations and punctuation from a
// scraped title, case-insensitively, and collapses whitespace.
// "IEEE ICRA 2025" becomes "icra 2025", "DAGM-GCPR 2025" becomes "gcpr 2025"
// and "ICLR: 2025" becomes "iclr 2025".
func Title(text string) string {
	title := Fold(text)
	for _, m := range NoiseMarkers {
		title = strings.ReplaceAll(title, m, "")
	}
	tokens := strings.FieldsFunc(title, isSeparator)
	kept := tokens[:0]
	for _, tok := range tokens {
		if !slices.Contains(NoiseWords, tok) {
			kept = append(kept, tok)
		}
	}
	return strings.Join(kept, " ")
}

// Tokens splits a cleaned title into its whitespace separated tokens.
func Tokens(title string) []string {
	return strings.Fields(title)
}

// Words returns the folded words of a full conference name. Punctuation
// separates words and is dropped.
func Words(text string) []string {
	return strings.FieldsFunc(Fold(text), isSeparator)
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// StripYear removes a trailing all-digit token, e.g. ["icml", "2025"] -> ["icml"].
// A single token is returned unchanged.
func StripYear(tokens []string) []string {
	if len(tokens) < 2 || !isDigits(tokens[len(tokens)-1]) {
		return tokens
	}
	return tokens[:len(tokens)-1]
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

var markup = bluemonday.StrictPolicy()

// StripMarkup removes HTML tags from s and decodes the entities left behind.
func StripMarkup(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	return html.UnescapeString(markup.Sanitize(s))
}

// CleanCell strips markup from a scraped table cell and collapses its
// newlines, tabs and runs of spaces.
func CleanCell(s string) string {
	return strings.Join(strings.Fields(StripMarkup(s)), " ")
}
