package reconciler

import (
	"strings"

	"github.com/agentstation/confmap/pkg/conferences"
	"github.com/agentstation/confmap/pkg/errors"
	"github.com/agentstation/confmap/pkg/logging"
	"github.com/agentstation/confmap/pkg/normalize"
	"github.com/agentstation/confmap/pkg/provenance"
	"github.com/agentstation/confmap/pkg/sources"
)

// Merger merges newly observed deadlines into the canonical ones.
type Merger interface {
	// Merge merges incoming into existing field by field and returns the
	// canonical deadline. A nil existing makes a normalized copy of incoming
	// the canonical deadline. Existing is updated in place.
	Merge(existing, incoming *conferences.Deadline, source sources.ID) (*conferences.Deadline, []Event, error)

	// MergeRanking merges a ranking record into existing. Only the ranking
	// and ranking_link fields are considered.
	MergeRanking(existing *conferences.Deadline, ranking conferences.Ranking, source sources.ID) ([]Event, error)

	// Finalize collapses repeated ids and sorts by effective deadline.
	Finalize(deadlines []*conferences.Deadline) ([]*conferences.Deadline, []Event)

	// Strategy returns the conflict resolution strategy in use.
	Strategy() Strategy
}

// New creates a Merger.
func New(opts ...Option) (Merger, error) {
	o, err := defaultOptions().apply(opts...)
	if err != nil {
		return nil, err
	}
	return &merger{strategy: o.strategy, tracker: o.tracker}, nil
}

type merger struct {
	strategy Strategy
	tracker  provenance.Tracker
}

// Strategy returns the conflict resolution strategy in use.
func (m *merger) Strategy() Strategy {
	return m.strategy
}

// Merge implements Merger.
func (m *merger) Merge(existing, incoming *conferences.Deadline, source sources.ID) (*conferences.Deadline, []Event, error) {
	if incoming == nil {
		return existing, nil, errors.NewValidationError("incoming", nil, "cannot merge a nil deadline")
	}

	in := incoming.Clone()
	if in.ID == "" {
		in.ID = conferences.DeriveID(in.Title, in.Year)
	}
	events := m.normalize(in, source)

	if existing == nil {
		if in.ID == "" {
			return nil, nil, errors.NewValidationError("id", in.Title, "cannot derive an id without a title")
		}
		m.trackAll(in, source)
		events = append(events, Event{Kind: EventNew, ID: in.ID, Source: source})
		return in, events, nil
	}

	if !strings.EqualFold(existing.ID, in.ID) {
		return existing, nil, errors.NewMergeError(existing.ID, in.ID, nil)
	}

	// existing holds curated data; its own normalization events are reported
	// but it is otherwise only touched by the precedence rule below.
	events = append(events, m.normalize(existing, sources.LocalID)...)

	for _, field := range conferences.MergeableFields() {
		cur, _ := existing.Get(field)
		next, _ := in.Get(field)
		value, ev := m.resolve(existing.ID, field, cur, next, source)
		if ev == nil {
			continue
		}
		if value != cur {
			if err := existing.Set(field, value); err != nil {
				return existing, events, err
			}
		}
		events = append(events, *ev)
	}

	for _, it := range in.Extra.Items() {
		cur := existing.Extra.String(it.Key)
		value, ev := m.resolve(existing.ID, conferences.Field(it.Key), cur, conferences.ValueString(it.Value), source)
		if ev == nil {
			continue
		}
		switch {
		case ev.Kind == EventAdded:
			existing.Extra.Set(it.Key, it.Value)
		case value != cur:
			existing.Extra.Set(it.Key, value)
		}
		events = append(events, *ev)
	}

	logEvents(existing.ID, source, events)
	return existing, events, nil
}

// MergeRanking implements Merger.
func (m *merger) MergeRanking(existing *conferences.Deadline, ranking conferences.Ranking, source sources.ID) ([]Event, error) {
	if existing == nil {
		return nil, errors.NewValidationError("existing", nil, "cannot merge a ranking into a nil deadline")
	}
	incoming := map[conferences.Field]string{
		conferences.FieldRanking:     ranking.Rank,
		conferences.FieldRankingLink: ranking.Link,
	}

	var events []Event
	for _, field := range conferences.RankingFields() {
		cur, _ := existing.Get(field)
		value, ev := m.resolve(existing.ID, field, cur, incoming[field], source)
		if ev == nil {
			continue
		}
		if err := existing.Set(field, value); err != nil {
			return events, err
		}
		events = append(events, *ev)
	}
	logEvents(existing.ID, source, events)
	return events, nil
}

// resolve applies the precedence rule to one field. It returns the value to
// store and the event to report, or a nil event when nothing changes.
func (m *merger) resolve(id string, field conferences.Field, existing, incoming string, source sources.ID) (string, *Event) {
	incoming = strings.TrimSpace(incoming)
	switch {
	case isUnset(incoming), existing == incoming:
		return existing, nil
	case isUnset(existing) || (normalize.IsTBA(existing) && !normalize.IsTBA(incoming)):
		m.track(id, field, source, incoming, existing, string(EventAdded))
		return incoming, &Event{Kind: EventAdded, ID: id, Field: field, Existing: existing, Incoming: incoming, Source: source}
	case normalize.IsTBA(incoming):
		// TBA never displaces a concrete value
		return existing, nil
	}

	value, kind := m.strategy.ResolveConflict(field, existing, incoming)
	m.track(id, field, source, incoming, existing, string(kind))
	return value, &Event{Kind: kind, ID: id, Field: field, Existing: existing, Incoming: incoming, Source: source}
}

func (m *merger) track(id string, field conferences.Field, source sources.ID, value, previous, reason string) {
	m.tracker.Track(id, field.String(), provenance.Provenance{
		Source:        source,
		Value:         value,
		Reason:        reason,
		PreviousValue: previous,
	})
}

func (m *merger) trackAll(d *conferences.Deadline, source sources.ID) {
	for _, field := range conferences.Fields() {
		if v, _ := d.Get(field); v != "" {
			m.track(d.ID, field, source, v, "", string(EventNew))
		}
	}
}

// isUnset reports whether a value carries no information.
func isUnset(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == unsetMarker
}

func logEvents(id string, source sources.ID, events []Event) {
	for _, e := range events {
		ev := logging.Debug()
		if e.IsConflict() {
			ev = logging.Warn()
		}
		ev.Str("id", id).
			Str("source", source.String()).
			Str("kind", string(e.Kind)).
			Str("field", e.Field.String()).
			Msg(e.String())
	}
}
