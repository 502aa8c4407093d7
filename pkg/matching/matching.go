// Package matching scores how likely a scraped candidate is to be a given
// master conference and selects the plausible ones.
//
// The score combines two signals:
//
//	score = 0.7 * abbreviation overlap + 0.3 * name overlap
//
// where abbreviation overlap is the character-set Jaccard similarity of the
// master's acronym and the candidate's cleaned title without its year, and
// name overlap is the word-set Jaccard similarity of the full names. A cleaned
// title of exactly two tokens whose first token is the master's acronym
// ("ICML 2025") counts as a perfect abbreviation match.
package matching

import (
	"strings"

	"github.com/agentstation/confmap/pkg/conferences"
	"github.com/agentstation/confmap/pkg/constants"
	"github.com/agentstation/confmap/pkg/normalize"
)

// Matcher selects candidates for a master. The zero value is not usable; use New.
type Matcher struct {
	threshold  float64
	abbrWeight float64
	nameWeight float64
	yearWindow int
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithThreshold sets the exclusive minimum score a candidate needs.
func WithThreshold(threshold float64) Option {
	return func(m *Matcher) {
		m.threshold = threshold
	}
}

// WithWeights sets the weights of the abbreviation and name signals.
func WithWeights(abbreviation, name float64) Option {
	return func(m *Matcher) {
		m.abbrWeight = abbreviation
		m.nameWeight = name
	}
}

// WithYearWindow sets how many years around the current one a candidate may be.
func WithYearWindow(years int) Option {
	return func(m *Matcher) {
		m.yearWindow = years
	}
}

// New creates a Matcher with the default threshold, weights and year window.
func New(opts ...Option) *Matcher {
	m := &Matcher{
		threshold:  constants.MatchThreshold,
		abbrWeight: constants.AbbreviationWeight,
		nameWeight: constants.NameWeight,
		yearWindow: constants.YearWindow,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Score is the similarity of a master/candidate pair.
type Score struct {
	Abbreviation float64 `json:"abbreviation"`
	Name         float64 `json:"name"`
	Total        float64 `json:"total"`
}

// Scored pairs a candidate with its score.
type Scored struct {
	Candidate conferences.Candidate `json:"candidate"`
	Score     Score                 `json:"score"`
	InWindow  bool                  `json:"in_window"`
	Accepted  bool                  `json:"accepted"`
}

// Threshold returns the configured acceptance threshold.
func (m *Matcher) Threshold() float64 {
	return m.threshold
}

// InWindow reports whether year is a plausible edition relative to currentYear.
func (m *Matcher) InWindow(year, currentYear int) bool {
	diff := year - currentYear
	return diff >= -m.yearWindow && diff <= m.yearWindow
}

// Score computes the similarity between a master and a candidate.
func (m *Matcher) Score(master conferences.Master, candidate conferences.Candidate) Score {
	abbr := abbreviationOverlap(master.Title, candidate.Title)
	name := WordJaccard(normalize.Words(master.FullName), normalize.Words(candidate.FullName))
	return Score{
		Abbreviation: abbr,
		Name:         name,
		Total:        m.abbrWeight*abbr + m.nameWeight*name,
	}
}

// Rank scores every candidate, in input order, and marks which ones
// FindCandidates would return.
func (m *Matcher) Rank(master conferences.Master, candidates []conferences.Candidate, currentYear int) []Scored {
	out := make([]Scored, 0, len(candidates))
	for _, c := range candidates {
		s := Scored{
			Candidate: c,
			Score:     m.Score(master, c),
			InWindow:  m.InWindow(c.Year, currentYear),
		}
		s.Accepted = s.InWindow && s.Score.Total > m.threshold
		out = append(out, s)
	}
	return out
}

// FindCandidates returns the candidates that are within the year window and
// score above the threshold, in their original order. The result is empty,
// never nil, when nothing qualifies.
func (m *Matcher) FindCandidates(master conferences.Master, candidates []conferences.Candidate, currentYear int) []conferences.Candidate {
	best := []conferences.Candidate{}
	for _, s := range m.Rank(master, candidates, currentYear) {
		if s.Accepted {
			best = append(best, s.Candidate)
		}
	}
	return best
}

// abbreviationOverlap compares a master acronym with a scraped title.
func abbreviationOverlap(acronym, title string) float64 {
	want := strings.Join(strings.Fields(normalize.Fold(acronym)), "")
	tokens := normalize.Tokens(normalize.Title(title))
	if len(tokens) == 2 && tokens[0] == want {
		return 1
	}
	return CharJaccard(want, strings.Join(normalize.StripYear(tokens), ""))
}

// CharJaccard is the Jaccard similarity of the character sets of a and b,
// ignoring whitespace. Two empty strings have similarity 0.
func CharJaccard(a, b string) float64 {
	return jaccard(charSet(a), charSet(b))
}

// WordJaccard is the Jaccard similarity of two word sets.
func WordJaccard(a, b []string) float64 {
	return jaccard(wordSet(a), wordSet(b))
}

func charSet(s string) map[string]struct{} {
	set := make(map[string]struct{}, len(s))
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' {
			continue
		}
		set[string(r)] = struct{}{}
	}
	return set
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
