// Package aideadlines downloads a third-party deadline feed in the
// ai-deadlines YAML format and maps its rows onto deadlines.
package aideadlines

import (
	"context"
	"strings"

	"github.com/agentstation/confmap/internal/persistence"
	"github.com/agentstation/confmap/internal/transport"
	"github.com/agentstation/confmap/pkg/conferences"
	"github.com/agentstation/confmap/pkg/constants"
	"github.com/agentstation/confmap/pkg/errors"
	"github.com/agentstation/confmap/pkg/logging"
	"github.com/agentstation/confmap/pkg/normalize"
	"github.com/agentstation/confmap/pkg/sources"
)

// Feed keys renamed onto deadline fields.
var renames = map[string]conferences.Field{
	"long": conferences.FieldFullName,
}

// Subfield tags folded into "AD".
var subReplacer = strings.NewReplacer("V2X", "AD", "IV", "AD", "AS", "AD")

// Source downloads the feed.
type Source struct {
	url    string
	client *transport.Client
}

// Option configures a feed source.
type Option func(*Source)

// WithURL overrides the feed URL.
func WithURL(u string) Option {
	return func(s *Source) {
		if u != "" {
			s.url = u
		}
	}
}

// WithClient sets the transport client.
func WithClient(c *transport.Client) Option {
	return func(s *Source) {
		s.client = c
	}
}

// New creates a feed source.
func New(opts ...Option) *Source {
	s := &Source{url: constants.AIDeadlinesFeedURL}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = transport.New(string(sources.AIDeadlinesID))
	}
	return s
}

// ID returns the source ID.
func (s *Source) ID() sources.ID {
	return sources.AIDeadlinesID
}

// Deadlines downloads the feed and maps every row. Rows that cannot be
// mapped are logged and returned as row errors.
func (s *Source) Deadlines(ctx context.Context) ([]*conferences.Deadline, []sources.RowError, error) {
	body, err := s.client.Get(ctx, s.url)
	if err != nil {
		return nil, nil, err
	}
	records, err := persistence.DecodeYAML(body)
	if err != nil {
		return nil, nil, errors.WrapFetch(string(sources.AIDeadlinesID), s.url, err)
	}

	log := logging.Ctx(ctx)
	out := make([]*conferences.Deadline, 0, len(records))
	var failed []sources.RowError
	for i, rec := range records {
		d, err := Map(rec)
		if err != nil {
			log.Warn().Err(err).Int("row", i).Str("title", rec.String("title")).Msg("Skipping feed row")
			failed = append(failed, sources.RowError{Row: i, Title: rec.String("title"), Err: err})
			continue
		}
		out = append(out, d)
	}
	return out, failed, nil
}

// Map converts one feed row: keys are renamed, subfield tags folded, "/" in
// the title becomes "-", the id is derived from title and year, and
// deadline-like values are rendered in the canonical deadline format unless
// they are TBA. Unknown keys are kept in Extra.
func Map(rec conferences.Record) (*conferences.Deadline, error) {
	rec = rec.Clone()
	for from, to := range renames {
		rec.Rename(from, string(to))
	}
	if rec.Has(string(conferences.FieldSub)) {
		rec.Set(string(conferences.FieldSub), subReplacer.Replace(rec.String(string(conferences.FieldSub))))
	}
	rec.Set(string(conferences.FieldTitle), strings.ReplaceAll(rec.String(string(conferences.FieldTitle)), "/", "-"))

	for _, key := range rec.Keys() {
		if !strings.Contains(key, "deadline") {
			continue
		}
		v := strings.TrimSpace(rec.String(key))
		if v == "" || v == constants.Unset || normalize.IsTBA(v) {
			continue
		}
		t, err := normalize.ParseDateTime(v)
		if err != nil {
			return nil, err
		}
		rec.Set(key, normalize.FormatDateTime(t, normalize.DateTimeLayout))
	}

	d, err := conferences.DeadlineFromRecord(rec)
	if err != nil {
		return nil, err
	}
	if d.Title == "" || d.Year <= 0 {
		return nil, errors.NewValidationError("title", d.Title, "feed row needs a title and a year")
	}
	d.ID = conferences.DeriveID(d.Title, d.Year)
	return d, nil
}
