package reconciler

import (
	"fmt"
	"time"

	"github.com/agentstation/confmap/pkg/provenance"
	"github.com/agentstation/confmap/pkg/sources"
)

// Skip records an item a pass could not process. Skips never abort a pass.
type Skip struct {
	Source sources.ID `json:"source" yaml:"source"`
	Item   string     `json:"item" yaml:"item"`     // master title, feed row id or candidate link
	Reason string     `json:"reason" yaml:"reason"` // e.g. "no match", "fetch failed"
	Err    error      `json:"-" yaml:"-"`
}

// String implements fmt.Stringer.
func (s Skip) String() string {
	if s.Err != nil {
		return fmt.Sprintf("%s %s: %s: %v", s.Source, s.Item, s.Reason, s.Err)
	}
	return fmt.Sprintf("%s %s: %s", s.Source, s.Item, s.Reason)
}

// Result represents the outcome of a reconciliation run.
type Result struct {
	// Merge events in the order they happened
	Events []Event

	// Items that were skipped
	Skipped []Skip

	// Metadata
	Metadata ResultMetadata

	// Provenance tracking
	Provenance provenance.Map

	// Issues
	Errors   []error
	Warnings []string
}

// ResultMetadata contains metadata about the reconciliation process.
type ResultMetadata struct {
	// StartTime when reconciliation started
	StartTime time.Time

	// EndTime when reconciliation completed
	EndTime time.Time

	// Duration of the reconciliation
	Duration time.Duration

	// Sources that were reconciled
	Sources []sources.ID

	// Strategy used for conflicts
	Strategy StrategyType

	// DryRun indicates that nothing was written
	DryRun bool

	// Statistics about the reconciliation
	Stats ResultStatistics
}

// ResultStatistics contains statistics about the reconciliation.
type ResultStatistics struct {
	MastersProcessed int
	RowsProcessed    int
	Created          int
	Added            int
	Conflicts        int
	Removed          int
	Duplicates       int
	Skipped          int
	Total            int
	TotalTimeMs      int64
}

// NewResult creates a new result with defaults.
func NewResult() *Result {
	return &Result{
		Events:     []Event{},
		Skipped:    []Skip{},
		Provenance: make(provenance.Map),
		Errors:     []error{},
		Warnings:   []string{},
		Metadata: ResultMetadata{
			StartTime: time.Now(),
			Sources:   []sources.ID{},
		},
	}
}

// Add appends events and updates the statistics.
func (r *Result) Add(events ...Event) {
	for _, e := range events {
		switch e.Kind {
		case EventNew:
			r.Metadata.Stats.Created++
		case EventAdded:
			r.Metadata.Stats.Added++
		case EventConflict, EventAppended:
			r.Metadata.Stats.Conflicts++
		case EventRemoved:
			r.Metadata.Stats.Removed++
		case EventDuplicate:
			r.Metadata.Stats.Duplicates++
		}
	}
	r.Events = append(r.Events, events...)
}

// Skip records a skipped item.
func (r *Result) Skip(source sources.ID, item, reason string, err error) {
	r.Skipped = append(r.Skipped, Skip{Source: source, Item: item, Reason: reason, Err: err})
	r.Metadata.Stats.Skipped++
}

// Warn records a warning.
func (r *Result) Warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Conflicts returns the events that need manual review.
func (r *Result) Conflicts() []Event {
	return Conflicts(r.Events)
}

// IsSuccess returns true if the reconciliation finished without errors.
// Skips and conflicts do not count as errors.
func (r *Result) IsSuccess() bool {
	return len(r.Errors) == 0
}

// HasChanges returns true if any field was created, filled, appended or removed.
func (r *Result) HasChanges() bool {
	for _, e := range r.Events {
		if e.Kind != EventConflict {
			return true
		}
	}
	return false
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	if !r.IsSuccess() {
		return fmt.Sprintf("Reconciliation failed with %d errors", len(r.Errors))
	}
	s := r.Metadata.Stats
	counts := fmt.Sprintf("%d new, %d fields added, %d conflicts, %d removed, %d duplicates, %d skipped",
		s.Created, s.Added, s.Conflicts, s.Removed, s.Duplicates, s.Skipped)
	if r.Metadata.DryRun {
		return "Dry run completed. " + counts
	}
	if !r.HasChanges() {
		return "Reconciliation completed. No changes detected. " + counts
	}
	return "Reconciliation successful. " + counts
}

// Finalize calculates duration and marks completion.
func (r *Result) Finalize() {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
	r.Metadata.Stats.TotalTimeMs = r.Metadata.Duration.Milliseconds()
}
