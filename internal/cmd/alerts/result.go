package alerts

import (
	"fmt"

	"github.com/agentstation/confmap/pkg/reconciler"
)

// Skip reasons reported as errors rather than folded into the skipped list.
var fetchFailures = map[string]bool{
	"fetch failed": true,
}

// ForResult summarizes a reconciliation result: a note for dry runs, an
// error per page or feed that could not be fetched, and warnings for conflicts
// and skipped items. A run with none of these gets a success alert.
func ForResult(r *reconciler.Result) []*Alert {
	var out []*Alert
	if r == nil {
		return out
	}
	if r.Metadata.DryRun {
		out = append(out, NewInfo("Dry run: no file was written"))
	}

	var items []string
	for _, s := range r.Skipped {
		if fetchFailures[s.Reason] {
			out = append(out, NewError(fmt.Sprintf("%s %s could not be fetched", s.Source, s.Item)).WithError(s.Err))
			continue
		}
		items = append(items, fmt.Sprintf("%s %s: %s", s.Source, s.Item, s.Reason))
	}

	if n := len(r.Conflicts()); n > 0 {
		out = append(out, NewWarning(fmt.Sprintf("%d conflicts to review", n)))
	}
	if len(items) > 0 {
		out = append(out, NewWarning(fmt.Sprintf("%d items skipped", len(items))).WithDetails(items...))
	}
	if len(out) == 0 || (len(out) == 1 && r.Metadata.DryRun) {
		out = append(out, NewSuccess("No conflicts"))
	}
	return out
}
