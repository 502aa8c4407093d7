package confmap

import (
	"context"
	"strings"

	"github.com/agentstation/confmap/pkg/conferences"
	"github.com/agentstation/confmap/pkg/matching"
)

// Search fetches the WikiCFP candidates for title and scores each of them.
// A title with a master uses the master's query and full name. Nothing is merged.
func (c *client) Search(ctx context.Context, title string, currentYear int) ([]matching.Scored, error) {
	masters, err := c.Masters()
	if err != nil {
		return nil, err
	}
	m := conferences.Master{Title: strings.ToLower(title), WikiCFPQuery: title}
	for _, candidate := range masters {
		if strings.EqualFold(candidate.Title, title) {
			m = candidate
			break
		}
	}

	candidates, err := c.options.wikicfp.Candidates(ctx, m)
	if err != nil {
		return nil, err
	}
	return c.matcher.Rank(m, candidates, currentYear), nil
}
