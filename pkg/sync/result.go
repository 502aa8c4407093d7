package sync

import (
	"fmt"
	"strings"

	"github.com/agentstation/confmap/pkg/reconciler"
	"github.com/agentstation/confmap/pkg/sources"
)

// Result represents the complete result of a sync run.
type Result struct {
	// Overall statistics
	TotalChanges  int                          // Fields created, filled, appended or removed
	Conflicts     int                          // Conflicts left for manual review
	Skipped       int                          // Items a pass could not process
	SourceResults map[sources.ID]*SourceResult // Results per source

	// Operation metadata
	DryRun     bool   // Whether this was a dry run
	OutputPath string // Where the YAML dataset was written
	CSVPath    string // Where the CSV export was written
	Total      int    // Deadlines in the finalized dataset

	// Details holds the merge events and skips the counts were derived from
	Details *reconciler.Result
}

// SourceResult represents sync results for a single source.
type SourceResult struct {
	Source    sources.ID
	Created   int
	Added     int
	Conflicts int
	Removed   int
	Skipped   int
}

// HasChanges returns true if the sync result contains any changes.
func (sr *Result) HasChanges() bool {
	return sr.TotalChanges > 0
}

// HasChanges returns true if the source result contains any changes.
func (r *SourceResult) HasChanges() bool {
	return r.Created > 0 || r.Added > 0 || r.Removed > 0
}

// Summary returns a human-readable summary of the sync result.
func (sr *Result) Summary() string {
	summary := "No changes detected"
	if sr.HasChanges() {
		summary = fmt.Sprintf("%d total changes across %d sources", sr.TotalChanges, sr.sourcesChanged())
	}
	var parts []string
	if sr.Conflicts > 0 {
		parts = append(parts, fmt.Sprintf("%d conflicts to review", sr.Conflicts))
	}
	if sr.Skipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", sr.Skipped))
	}
	if len(parts) > 0 {
		summary += ", " + strings.Join(parts, ", ")
	}
	if sr.DryRun {
		summary += " (Dry run)"
	}
	return summary
}

func (sr *Result) sourcesChanged() int {
	n := 0
	for _, r := range sr.SourceResults {
		if r.HasChanges() {
			n++
		}
	}
	return n
}

// Summary returns a human-readable summary of the source result.
func (r *SourceResult) Summary() string {
	if !r.HasChanges() && r.Conflicts == 0 && r.Skipped == 0 {
		return fmt.Sprintf("%s: No changes", r.Source)
	}
	return fmt.Sprintf("%s: %d new, %d fields added, %d conflicts, %d removed, %d skipped",
		r.Source, r.Created, r.Added, r.Conflicts, r.Removed, r.Skipped)
}

// FromReconcile converts a reconciliation result into a sync result grouped by source.
func FromReconcile(rr *reconciler.Result, opts *Options, total int) *Result {
	result := &Result{
		SourceResults: make(map[sources.ID]*SourceResult),
		DryRun:        opts.DryRun,
		OutputPath:    opts.OutputPath,
		CSVPath:       opts.CSVPath,
		Total:         total,
		Details:       rr,
	}
	get := func(id sources.ID) *SourceResult {
		r, ok := result.SourceResults[id]
		if !ok {
			r = &SourceResult{Source: id}
			result.SourceResults[id] = r
		}
		return r
	}

	for _, e := range rr.Events {
		r := get(e.Source)
		switch e.Kind {
		case reconciler.EventNew:
			r.Created++
			result.TotalChanges++
		case reconciler.EventAdded:
			r.Added++
			result.TotalChanges++
		case reconciler.EventAppended:
			r.Conflicts++
			result.Conflicts++
			result.TotalChanges++
		case reconciler.EventConflict:
			r.Conflicts++
			result.Conflicts++
		case reconciler.EventRemoved, reconciler.EventNormalized, reconciler.EventDuplicate:
			r.Removed++
			result.TotalChanges++
		}
	}
	for _, s := range rr.Skipped {
		get(s.Source).Skipped++
		result.Skipped++
	}
	return result
}
