package reconciler

import (
	"sort"
	"strings"
	"time"

	"github.com/agentstation/confmap/pkg/conferences"
	"github.com/agentstation/confmap/pkg/constants"
	"github.com/agentstation/confmap/pkg/logging"
	"github.com/agentstation/confmap/pkg/normalize"
	"github.com/agentstation/confmap/pkg/sources"
)

// FarFuture is the effective deadline of undated entries.
var FarFuture = time.Date(constants.FarFutureYear, time.January, 1, 0, 0, 0, 0, time.UTC)

// EffectiveDeadline returns the instant d sorts by. TBA, empty and
// unparseable deadlines sort as FarFuture. A bracket-appended alternative
// ("2025/1/23 23:59[2025/1/30 23:59]") sorts by its first value.
func EffectiveDeadline(d *conferences.Deadline) time.Time {
	s := d.Deadline
	if i := strings.IndexByte(s, '['); i >= 0 {
		s = s[:i]
	}
	if isUnset(s) || normalize.IsTBA(s) {
		return FarFuture
	}
	t, err := normalize.ParseDateTime(s)
	if err != nil {
		return FarFuture
	}
	return t
}

// Sort orders deadlines by effective deadline, ascending. The sort is stable.
func Sort(deadlines []*conferences.Deadline) {
	keys := make(map[*conferences.Deadline]time.Time, len(deadlines))
	for _, d := range deadlines {
		keys[d] = EffectiveDeadline(d)
	}
	sort.SliceStable(deadlines, func(i, j int) bool {
		return keys[deadlines[i]].Before(keys[deadlines[j]])
	})
}

// Finalize implements Merger. The first occurrence of an id is kept in place
// and later occurrences are merged into it. Entries without any identity are
// kept as they are.
func (m *merger) Finalize(deadlines []*conferences.Deadline) ([]*conferences.Deadline, []Event) {
	out := make([]*conferences.Deadline, 0, len(deadlines))
	seen := make(map[string]*conferences.Deadline, len(deadlines))
	var events []Event

	for _, d := range deadlines {
		if d == nil {
			continue
		}
		if d.ID == "" {
			d.ID = conferences.DeriveID(d.Title, d.Year)
		}
		key := strings.ToLower(d.ID)
		if key == "" {
			out = append(out, d)
			continue
		}
		first, ok := seen[key]
		if !ok {
			seen[key] = d
			out = append(out, d)
			continue
		}
		events = append(events, Event{Kind: EventDuplicate, ID: first.ID, Source: sources.LocalID})
		incoming := d.Clone()
		incoming.ID = first.ID
		_, merged, err := m.Merge(first, incoming, sources.LocalID)
		if err != nil {
			logging.Warn().
				Err(err).
				Str("id", first.ID).
				Msg("Cannot merge duplicate into its first occurrence")
		}
		events = append(events, merged...)
	}

	Sort(out)
	return out, events
}
