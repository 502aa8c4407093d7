package reconciler

import (
	"fmt"

	"github.com/agentstation/confmap/pkg/conferences"
	"github.com/agentstation/confmap/pkg/sources"
)

// EventKind classifies what a merge did to a field.
type EventKind string

// Event kinds.
const (
	// EventNew reports a deadline seen for the first time.
	EventNew EventKind = "new"
	// EventAdded reports an empty, unset or TBA field filled from the incoming record.
	EventAdded EventKind = "added"
	// EventConflict reports two differing non-empty values; the existing one was kept.
	EventConflict EventKind = "conflict"
	// EventAppended reports a conflict resolved by appending the incoming value in brackets.
	EventAppended EventKind = "appended"
	// EventRemoved reports a field dropped because it held the unset marker or is not published.
	EventRemoved EventKind = "removed"
	// EventNormalized reports a field rewritten into its canonical form.
	EventNormalized EventKind = "normalized"
	// EventDuplicate reports a repeated id collapsed into its first occurrence.
	EventDuplicate EventKind = "duplicate"
)

// Event is a reportable outcome of a merge. A conflict event carries the
// deadline id, the field, and both the existing and the incoming value.
type Event struct {
	Kind     EventKind         `json:"kind" yaml:"kind"`
	ID       string            `json:"id" yaml:"id"`
	Field    conferences.Field `json:"field,omitempty" yaml:"field,omitempty"`
	Existing string            `json:"existing,omitempty" yaml:"existing,omitempty"`
	Incoming string            `json:"incoming,omitempty" yaml:"incoming,omitempty"`
	Source   sources.ID        `json:"source,omitempty" yaml:"source,omitempty"`
}

// String implements fmt.Stringer.
func (e Event) String() string {
	switch e.Kind {
	case EventNew:
		return fmt.Sprintf("%s: added conference", e.ID)
	case EventAdded:
		return fmt.Sprintf("%s: added key %s: %s", e.ID, e.Field, e.Incoming)
	case EventConflict, EventAppended:
		return fmt.Sprintf("%s: key %s values: %s / %s (existing/new)", e.ID, e.Field, e.Existing, e.Incoming)
	case EventRemoved:
		return fmt.Sprintf("%s: removed key %s", e.ID, e.Field)
	case EventDuplicate:
		return fmt.Sprintf("%s: collapsed duplicate entry", e.ID)
	default:
		return fmt.Sprintf("%s: %s %s: %s -> %s", e.ID, e.Kind, e.Field, e.Existing, e.Incoming)
	}
}

// IsConflict reports whether the event needs manual review.
func (e Event) IsConflict() bool {
	return e.Kind == EventConflict || e.Kind == EventAppended
}

// Conflicts filters the conflict events out of events.
func Conflicts(events []Event) []Event {
	var out []Event
	for _, e := range events {
		if e.IsConflict() {
			out = append(out, e)
		}
	}
	return out
}
