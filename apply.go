package confmap

import (
	"github.com/agentstation/confmap/pkg/logging"
	"github.com/agentstation/confmap/pkg/reconciler"
	"github.com/agentstation/confmap/pkg/sources"
)

// ApplyUpdateCandidates fills fields that are missing, empty or TBA in the
// stored dataset from a curator-reviewed candidates file. Differing values
// are resolved by the configured strategy. Candidates whose id is not in the
// dataset are reported as skips. An empty path uses the configured file.
func (c *client) ApplyUpdateCandidates(path string, dryRun bool) (*reconciler.Result, error) {
	if path == "" {
		path = c.options.candidatesPath
	}
	candidates, err := loadDeadlines(path)
	if err != nil {
		return nil, err
	}
	deadlines, err := c.Deadlines()
	if err != nil {
		return nil, err
	}

	strategy, err := reconciler.NewStrategy(c.options.strategy)
	if err != nil {
		return nil, err
	}
	merger, err := reconciler.New(reconciler.WithStrategy(strategy))
	if err != nil {
		return nil, err
	}

	rr := reconciler.NewResult()
	rr.Metadata.Strategy = strategy.Type()
	rr.Metadata.DryRun = dryRun
	rr.Metadata.Sources = []sources.ID{sources.LocalID}
	set := newDataset(deadlines)
	for _, cand := range candidates {
		rr.Metadata.Stats.RowsProcessed++
		existing := set.get(cand.ID)
		if existing == nil {
			rr.Skip(sources.LocalID, cand.ID, "unknown id", nil)
			continue
		}
		_, events, err := merger.Merge(existing, cand, sources.LocalID)
		if err != nil {
			rr.Skip(sources.LocalID, cand.ID, "merge failed", err)
			continue
		}
		rr.Add(events...)
	}

	final, events := merger.Finalize(set.list())
	rr.Add(events...)
	rr.Metadata.Stats.Total = len(final)

	if !dryRun && rr.HasChanges() {
		if err := c.SaveDeadlines(final); err != nil {
			return nil, err
		}
	}
	rr.Finalize()
	logging.Info().Str("path", path).Msg(rr.Summary())
	return rr, nil
}
