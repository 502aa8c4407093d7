// Package sync provides options and results for reconciliation passes
// against external conference sources.
package sync

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agentstation/confmap/pkg/errors"
	"github.com/agentstation/confmap/pkg/reconciler"
	"github.com/agentstation/confmap/pkg/sources"
)

// Options controls one run of Client.Sync.
type Options struct {
	// Orchestration control
	DryRun  bool          // Reconcile without writing any file
	Timeout time.Duration // Timeout for the entire run, 0 means none

	// Source selection
	Sources []sources.ID // Which passes to run (empty means all)
	Titles  []string     // Restrict the WikiCFP pass to these master titles

	// Batching over the master list, masters[BatchStart:BatchEnd]
	BatchStart int
	BatchEnd   int // 0 means up to the end of the list

	// CurrentYear anchors the match year window. 0 means the current UTC year.
	CurrentYear int

	// Merge control
	Strategy reconciler.StrategyType // Conflict strategy (empty means retain-existing)

	// Output control
	OutputPath     string // Where to save the YAML dataset (empty means the configured location)
	CSVPath        string // Where to export the CSV copy (empty means the configured location)
	ProvenancePath string // Where to append provenance history (empty disables it)
}

// Apply applies the given options to the sync options.
func (s *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Defaults returns the default sync options.
func Defaults() *Options {
	return &Options{
		Strategy: reconciler.StrategyTypeRetainExisting,
	}
}

// Option is a function that configures sync Options.
type Option func(*Options)

// Year returns the year the match window is centered on.
func (s *Options) Year() int {
	if s.CurrentYear > 0 {
		return s.CurrentYear
	}
	return time.Now().UTC().Year()
}

// Enabled reports whether the pass of the given source should run.
func (s *Options) Enabled(id sources.ID) bool {
	if len(s.Sources) == 0 {
		return true
	}
	for _, src := range s.Sources {
		if src == id {
			return true
		}
	}
	return false
}

// Batch returns the half-open range of an n-element master list selected by
// BatchStart and BatchEnd, clamped to the list.
func (s *Options) Batch(n int) (int, int) {
	start, end := s.BatchStart, s.BatchEnd
	if end <= 0 || end > n {
		end = n
	}
	if start > end {
		start = end
	}
	return start, end
}

// Selects reports whether the WikiCFP pass should process the master with title.
func (s *Options) Selects(title string) bool {
	if len(s.Titles) == 0 {
		return true
	}
	for _, t := range s.Titles {
		if strings.EqualFold(t, title) {
			return true
		}
	}
	return false
}

// Validate checks if the sync options are valid.
func (s *Options) Validate() error {
	if s.Timeout < 0 {
		return &errors.ValidationError{
			Field:   "Timeout",
			Value:   s.Timeout,
			Message: "timeout must be non-negative",
		}
	}

	if s.BatchStart < 0 || s.BatchEnd < 0 {
		return &errors.ValidationError{
			Field:   "Batch",
			Value:   [2]int{s.BatchStart, s.BatchEnd},
			Message: "batch bounds must be non-negative",
		}
	}
	if s.BatchEnd > 0 && s.BatchEnd <= s.BatchStart {
		return &errors.ValidationError{
			Field:   "Batch",
			Value:   [2]int{s.BatchStart, s.BatchEnd},
			Message: fmt.Sprintf("batch end %d must be greater than start %d", s.BatchEnd, s.BatchStart),
		}
	}

	for _, id := range s.Sources {
		if !id.IsValid() {
			return &errors.ValidationError{
				Field:   "Sources",
				Value:   id,
				Message: fmt.Sprintf("unknown source '%s'", id),
			}
		}
	}

	if _, err := reconciler.NewStrategy(s.Strategy); err != nil {
		return err
	}

	for field, path := range map[string]string{"OutputPath": s.OutputPath, "CSVPath": s.CSVPath, "ProvenancePath": s.ProvenancePath} {
		if path == "" {
			continue
		}
		dir := filepath.Dir(path)
		if dir != "." && dir != "/" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				return &errors.ValidationError{
					Field:   field,
					Value:   path,
					Message: fmt.Sprintf("output directory '%s' does not exist", dir),
				}
			}
		}
	}

	return nil
}

// WithDryRun configures dry run mode.
func WithDryRun(dryRun bool) Option {
	return func(opts *Options) {
		opts.DryRun = dryRun
	}
}

// WithTimeout configures the sync timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *Options) {
		opts.Timeout = timeout
	}
}

// WithSources configures which passes to run.
func WithSources(ids ...sources.ID) Option {
	return func(opts *Options) {
		opts.Sources = ids
	}
}

// WithTitles restricts the WikiCFP pass to the given master titles.
func WithTitles(titles ...string) Option {
	return func(opts *Options) {
		opts.Titles = titles
	}
}

// WithBatch selects masters[start:end]; end 0 means the end of the list.
func WithBatch(start, end int) Option {
	return func(opts *Options) {
		opts.BatchStart = start
		opts.BatchEnd = end
	}
}

// WithCurrentYear fixes the year the match window is centered on.
func WithCurrentYear(year int) Option {
	return func(opts *Options) {
		opts.CurrentYear = year
	}
}

// WithStrategy configures the conflict strategy.
func WithStrategy(strategy reconciler.StrategyType) Option {
	return func(opts *Options) {
		opts.Strategy = strategy
	}
}

// WithOutputPath configures the output path for the YAML dataset.
func WithOutputPath(path string) Option {
	return func(opts *Options) {
		opts.OutputPath = path
	}
}

// WithCSVPath configures the output path for the CSV export.
func WithCSVPath(path string) Option {
	return func(opts *Options) {
		opts.CSVPath = path
	}
}

// WithProvenancePath enables provenance history at path.
func WithProvenancePath(path string) Option {
	return func(opts *Options) {
		opts.ProvenancePath = path
	}
}
