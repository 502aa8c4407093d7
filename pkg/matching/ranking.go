package matching

import (
	"strings"

	"github.com/agentstation/confmap/pkg/conferences"
	"github.com/agentstation/confmap/pkg/normalize"
)

// ScoreRanking computes the similarity between a deadline and a ranking row.
// An acronym equal to the deadline title, ignoring case, is a perfect
// abbreviation match. The name only counts when both sides carry one;
// otherwise the abbreviation score is the total.
func (m *Matcher) ScoreRanking(d *conferences.Deadline, r conferences.Ranking) Score {
	title := normalize.Fold(strings.TrimSpace(d.Title))
	acronym := normalize.Fold(strings.TrimSpace(r.Acronym))

	abbr := CharJaccard(title, acronym)
	if title != "" && title == acronym {
		abbr = 1
	}
	ours, theirs := normalize.Words(d.FullName), normalize.Words(r.Title)
	if len(ours) == 0 || len(theirs) == 0 {
		return Score{Abbreviation: abbr, Total: abbr}
	}
	name := WordJaccard(ours, theirs)
	return Score{
		Abbreviation: abbr,
		Name:         name,
		Total:        m.abbrWeight*abbr + m.nameWeight*name,
	}
}

// FindRanking returns the best ranking row for a deadline. Only rows scoring
// above the threshold qualify; on a tie the earlier row wins.
func (m *Matcher) FindRanking(d *conferences.Deadline, rankings []conferences.Ranking) (conferences.Ranking, bool) {
	var (
		best      conferences.Ranking
		bestScore float64
		found     bool
	)
	for _, r := range rankings {
		s := m.ScoreRanking(d, r).Total
		if s > m.threshold && s > bestScore {
			best, bestScore, found = r, s, true
		}
	}
	return best, found
}
