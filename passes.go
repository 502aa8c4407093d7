package confmap

import (
	"context"
	"strings"

	"github.com/agentstation/confmap/internal/matcher"
	"github.com/agentstation/confmap/internal/sources/core"
	"github.com/agentstation/confmap/pkg/conferences"
	"github.com/agentstation/confmap/pkg/errors"
	"github.com/agentstation/confmap/pkg/logging"
	"github.com/agentstation/confmap/pkg/reconciler"
	"github.com/agentstation/confmap/pkg/sources"
	pkgsync "github.com/agentstation/confmap/pkg/sync"
)

// pass holds the state shared by the passes of one sync run. Passes run one
// after another on a single goroutine.
type pass struct {
	client  *client
	options *pkgsync.Options
	set     *dataset
	merger  reconciler.Merger
	result  *reconciler.Result
	ranked  map[string]bool // ids already looked up in the ranking source
}

// wikicfp matches every selected master against its WikiCFP candidates and
// merges the first candidate whose detail page converts.
func (p *pass) wikicfp(ctx context.Context, masters []conferences.Master) error {
	src := p.client.options.wikicfp
	ctx = logging.WithSource(ctx, string(sources.WikiCFPID))
	start, end := p.options.Batch(len(masters))
	logging.Ctx(ctx).Info().Int("start", start).Int("end", end).Int("masters", len(masters)).Msg("Starting pass")

	for _, m := range masters[start:end] {
		if ctx.Err() != nil {
			return canceled(ctx, sources.WikiCFPID)
		}
		if !p.options.Selects(m.Title) {
			continue
		}
		p.result.Metadata.Stats.MastersProcessed++
		mctx := logging.WithConference(ctx, m.Title)
		log := logging.Ctx(mctx)

		candidates, err := src.Candidates(mctx, m)
		if err != nil {
			if ctx.Err() != nil {
				return canceled(ctx, sources.WikiCFPID)
			}
			log.Warn().Err(err).Msg("Could not fetch candidates")
			p.result.Skip(sources.WikiCFPID, m.Title, "fetch failed", err)
			continue
		}

		best := p.client.matcher.FindCandidates(m, candidates, p.options.Year())
		if len(best) == 0 {
			titles := make([]string, 0, len(candidates))
			for _, c := range candidates {
				titles = append(titles, c.String())
			}
			log.Warn().Strs("candidates", titles).Int("year", p.options.Year()).Msg("No matching candidate")
			p.result.Skip(sources.WikiCFPID, m.Title, "no match", nil)
			continue
		}

		d := p.firstDeadline(mctx, m, best)
		if d == nil {
			if ctx.Err() != nil {
				return canceled(ctx, sources.WikiCFPID)
			}
			p.result.Skip(sources.WikiCFPID, m.Title, "no candidate detail could be converted", nil)
			continue
		}

		existing := p.set.get(d.ID)
		merged, events, err := p.merger.Merge(existing, d, sources.WikiCFPID)
		if err != nil {
			p.result.Skip(sources.WikiCFPID, d.ID, "merge failed", err)
			continue
		}
		p.result.Add(events...)
		if existing != nil {
			continue
		}
		p.set.put(merged)
		if p.options.Enabled(sources.CoreID) {
			if err := p.rank(mctx, merged); err != nil {
				return err
			}
		}
	}
	return nil
}

// firstDeadline tries the candidates in order and returns the first one
// whose detail page converts. Fetch and date errors move on to the next.
func (p *pass) firstDeadline(ctx context.Context, m conferences.Master, candidates []conferences.Candidate) *conferences.Deadline {
	log := logging.Ctx(ctx)
	for _, c := range candidates {
		if ctx.Err() != nil {
			return nil
		}
		d, err := p.client.options.wikicfp.Deadline(ctx, m, c)
		switch {
		case err == nil:
			return d
		case errors.IsDateParseError(err):
			log.Warn().Err(err).Str("candidate", c.Link).Msg("Unparseable date on detail page, trying next candidate")
		case errors.IsFetchError(err):
			log.Warn().Err(err).Str("candidate", c.Link).Msg("Could not fetch detail page, trying next candidate")
		default:
			log.Warn().Err(err).Str("candidate", c.Link).Msg("Could not convert detail page, trying next candidate")
		}
	}
	return nil
}

// core looks up the ranking of every deadline not ranked earlier in the run.
func (p *pass) core(ctx context.Context) error {
	ctx = logging.WithSource(ctx, string(sources.CoreID))
	for _, d := range p.set.list() {
		if ctx.Err() != nil {
			return canceled(ctx, sources.CoreID)
		}
		if d.ID == "" || p.ranked[strings.ToLower(d.ID)] || p.set.get(d.ID) != d {
			continue
		}
		if err := p.rank(logging.WithConference(ctx, d.ID), d); err != nil {
			return err
		}
	}
	return nil
}

// rank merges the best ranking row for d. A failed lookup is a skip.
func (p *pass) rank(ctx context.Context, d *conferences.Deadline) error {
	p.ranked[strings.ToLower(d.ID)] = true
	query := core.Query(d)
	if query == "" {
		return nil
	}

	rankings, err := p.client.options.core.Rankings(ctx, query)
	if err != nil {
		if ctx.Err() != nil {
			return canceled(ctx, sources.CoreID)
		}
		logging.Ctx(ctx).Warn().Err(err).Str("query", query).Msg("Could not fetch rankings")
		p.result.Skip(sources.CoreID, d.ID, "fetch failed", err)
		return nil
	}

	r, ok := p.client.matcher.FindRanking(d, rankings)
	if !ok {
		logging.Ctx(ctx).Debug().Str("query", query).Int("rows", len(rankings)).Msg("No matching ranking")
		return nil
	}
	events, err := p.merger.MergeRanking(d, r, sources.CoreID)
	if err != nil {
		p.result.Skip(sources.CoreID, d.ID, "merge failed", err)
		return nil
	}
	p.result.Add(events...)
	return nil
}

// feed merges the rows of the deadline feed by id. Rows whose title carries
// an exclusion marker never enter the dataset.
func (p *pass) feed(ctx context.Context) error {
	ctx = logging.WithSource(ctx, string(sources.AIDeadlinesID))
	log := logging.Ctx(ctx)

	exclusions, err := matcher.NewExclusions(p.client.options.exclusions...)
	if err != nil {
		return err
	}
	log.Debug().Strs("exclusions", exclusions.Patterns()).Msg("Merging feed")

	rows, failed, err := p.client.options.feed.Deadlines(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return canceled(ctx, sources.AIDeadlinesID)
		}
		log.Warn().Err(err).Msg("Could not fetch feed")
		p.result.Skip(sources.AIDeadlinesID, "feed", "fetch failed", err)
		return nil
	}

	for _, rowErr := range failed {
		p.result.Metadata.Stats.RowsProcessed++
		p.result.Skip(sources.AIDeadlinesID, rowErr.Item(), "unmappable row", rowErr)
	}

	for _, d := range rows {
		p.result.Metadata.Stats.RowsProcessed++
		if pattern, ok := exclusions.MatchingPattern(d.Title); ok {
			log.Debug().Str("title", d.Title).Str("pattern", pattern).Msg("Excluded feed row")
			continue
		}
		existing := p.set.get(d.ID)
		merged, events, err := p.merger.Merge(existing, d, sources.AIDeadlinesID)
		if err != nil {
			p.result.Skip(sources.AIDeadlinesID, d.ID, "merge failed", err)
			continue
		}
		p.result.Add(events...)
		if existing == nil {
			p.set.put(merged)
		}
	}
	return nil
}
