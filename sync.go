package confmap

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentstation/confmap/pkg/conferences"
	"github.com/agentstation/confmap/pkg/errors"
	"github.com/agentstation/confmap/pkg/logging"
	"github.com/agentstation/confmap/pkg/provenance"
	"github.com/agentstation/confmap/pkg/reconciler"
	"github.com/agentstation/confmap/pkg/sources"
	pkgsync "github.com/agentstation/confmap/pkg/sync"
)

// Sync loads masters and the dataset, runs the enabled passes in the order
// WikiCFP, CORE, feed, finalizes the dataset and saves it unless it is a dry run.
// Failures of single items are recorded as skips; only loading, saving and
// cancellation fail the run.
func (c *client) Sync(ctx context.Context, opts ...pkgsync.Option) (*pkgsync.Result, error) {
	// Step 0: Set context
	if ctx == nil {
		ctx = context.Background()
	}

	// Step 1: Parse and validate options
	options := pkgsync.Defaults()
	options.Strategy = c.options.strategy
	options.Apply(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}
	c.fillPaths(options)

	// Step 2: Setup context with timeout
	var cancel context.CancelFunc
	if options.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
	} else {
		cancel = func() {}
	}
	defer cancel()
	ctx = logging.WithOperation(ctx, "sync")

	// Step 3: Load inputs
	masters, err := c.Masters()
	if err != nil {
		return nil, err
	}
	loaded, err := loadDeadlines(options.OutputPath)
	if err != nil {
		return nil, err
	}
	set := newDataset(loaded)

	// Step 4: Build the merger
	strategy, err := reconciler.NewStrategy(options.Strategy)
	if err != nil {
		return nil, err
	}
	tracker := provenance.NewTracker(options.ProvenancePath != "")
	merger, err := reconciler.New(reconciler.WithStrategy(strategy), reconciler.WithTracker(tracker))
	if err != nil {
		return nil, err
	}

	rr := reconciler.NewResult()
	rr.Metadata.Strategy = strategy.Type()
	rr.Metadata.DryRun = options.DryRun
	p := &pass{client: c, options: options, set: set, merger: merger, result: rr, ranked: make(map[string]bool)}

	// Step 5: Run the passes
	if options.Enabled(sources.WikiCFPID) {
		rr.Metadata.Sources = append(rr.Metadata.Sources, sources.WikiCFPID)
		if err := p.wikicfp(ctx, masters); err != nil {
			return nil, err
		}
	}
	if options.Enabled(sources.CoreID) {
		rr.Metadata.Sources = append(rr.Metadata.Sources, sources.CoreID)
		if err := p.core(ctx); err != nil {
			return nil, err
		}
	}
	if options.Enabled(sources.AIDeadlinesID) {
		rr.Metadata.Sources = append(rr.Metadata.Sources, sources.AIDeadlinesID)
		if err := p.feed(ctx); err != nil {
			return nil, err
		}
	}

	// Step 6: Deduplicate and sort
	final, events := merger.Finalize(set.list())
	rr.Add(events...)
	rr.Metadata.Stats.Total = len(final)
	rr.Provenance = tracker.Map()

	// Step 7: Save unless dry run
	if options.DryRun {
		logging.Info().Bool("dry_run", true).Msg("Dry run completed - no files written")
	} else {
		if err := c.save(final, options); err != nil {
			return nil, err
		}
		if options.ProvenancePath != "" {
			if err := provenance.Save(options.ProvenancePath, rr.Provenance); err != nil {
				return nil, err
			}
		}
	}

	rr.Finalize()
	logging.Info().
		Int("created", rr.Metadata.Stats.Created).
		Int("added", rr.Metadata.Stats.Added).
		Int("conflicts", rr.Metadata.Stats.Conflicts).
		Int("skipped", rr.Metadata.Stats.Skipped).
		Int("total", len(final)).
		Msg(rr.Summary())
	for _, s := range rr.Skipped {
		logging.Warn().Str("source", string(s.Source)).Str("item", s.Item).Err(s.Err).Msg("Skipped: " + s.Reason)
	}

	c.hooks.trigger(rr.Events, final)
	return pkgsync.FromReconcile(rr, options, len(final)), nil
}

// fillPaths resolves the output locations the caller left empty.
func (c *client) fillPaths(o *pkgsync.Options) {
	if o.OutputPath == "" {
		o.OutputPath = c.options.dataPath
	}
	if o.CSVPath == "" {
		o.CSVPath = c.options.csvPath
	}
	if o.ProvenancePath == "" {
		o.ProvenancePath = c.options.provenancePath
	}
}

func (c *client) save(final []*conferences.Deadline, o *pkgsync.Options) error {
	return writeDeadlines(o.OutputPath, o.CSVPath, final)
}

// dataset is the working set of one run: deadlines in stored order, indexed
// by the first occurrence of each id. Repeated ids are left for Finalize.
type dataset struct {
	items []*conferences.Deadline
	index map[string]*conferences.Deadline
}

func newDataset(deadlines []*conferences.Deadline) *dataset {
	s := &dataset{index: make(map[string]*conferences.Deadline, len(deadlines))}
	for _, d := range deadlines {
		s.items = append(s.items, d)
		k := strings.ToLower(d.ID)
		if _, ok := s.index[k]; !ok && k != "" {
			s.index[k] = d
		}
	}
	return s
}

func (s *dataset) get(id string) *conferences.Deadline {
	return s.index[strings.ToLower(id)]
}

func (s *dataset) put(d *conferences.Deadline) {
	s.items = append(s.items, d)
	s.index[strings.ToLower(d.ID)] = d
}

func (s *dataset) list() []*conferences.Deadline {
	return append([]*conferences.Deadline{}, s.items...)
}

// canceled wraps a context error for a pass that stopped early.
func canceled(ctx context.Context, pass sources.ID) error {
	return fmt.Errorf("%s pass: %w: %w", pass, errors.ErrCanceled, ctx.Err())
}
