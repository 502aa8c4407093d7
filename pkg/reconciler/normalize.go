package reconciler

import (
	"strings"

	"github.com/agentstation/confmap/pkg/conferences"
	"github.com/agentstation/confmap/pkg/constants"
	"github.com/agentstation/confmap/pkg/logging"
	"github.com/agentstation/confmap/pkg/normalize"
	"github.com/agentstation/confmap/pkg/sources"
)

const (
	unsetMarker = constants.Unset
	hostKey     = "host"
)

// NormalizeDeadline rewrites d into its canonical form:
//   - fields and extra keys holding "--" are removed
//   - the unpublished "host" key is removed
//   - the note loses its boilerplate prefix and any markup
//   - date is recomputed from start and end when both are present
//
// A start or end that cannot be parsed leaves date untouched and is returned
// as an error after all other rewrites were applied.
func NormalizeDeadline(d *conferences.Deadline) ([]Event, error) {
	if d == nil {
		return nil, nil
	}
	var events []Event

	for _, field := range conferences.Fields() {
		if v, _ := d.Get(field); strings.TrimSpace(v) == unsetMarker {
			_ = d.Set(field, "")
			events = append(events, Event{Kind: EventRemoved, ID: d.ID, Field: field, Existing: v})
		}
	}
	for _, key := range d.Extra.Keys() {
		v := d.Extra.String(key)
		if key == hostKey || strings.TrimSpace(v) == unsetMarker {
			d.Extra.Delete(key)
			events = append(events, Event{Kind: EventRemoved, ID: d.ID, Field: conferences.Field(key), Existing: v})
		}
	}

	if note := cleanNote(d.Note); note != d.Note {
		events = append(events, Event{Kind: EventNormalized, ID: d.ID, Field: conferences.FieldNote, Existing: d.Note, Incoming: note})
		d.Note = note
	}

	if d.Start == "" || d.End == "" {
		return events, nil
	}
	start, err := normalize.ParseDateTime(d.Start)
	if err != nil {
		return events, err
	}
	end, err := normalize.ParseDateTime(d.End)
	if err != nil {
		return events, err
	}
	if date := normalize.DateRange(start, end); date != d.Date {
		events = append(events, Event{Kind: EventNormalized, ID: d.ID, Field: conferences.FieldDate, Existing: d.Date, Incoming: date})
		d.Date = date
	}
	return events, nil
}

func cleanNote(note string) string {
	note = strings.TrimPrefix(note, constants.NotePrefix)
	return strings.TrimSpace(normalize.StripMarkup(note))
}

// normalize runs NormalizeDeadline and logs a failed date recomputation.
func (m *merger) normalize(d *conferences.Deadline, source sources.ID) []Event {
	events, err := NormalizeDeadline(d)
	if err != nil {
		logging.Warn().
			Err(err).
			Str("id", d.ID).
			Str("source", source.String()).
			Msg("Cannot recompute date from start and end")
	}
	for i := range events {
		events[i].Source = source
	}
	return events
}
