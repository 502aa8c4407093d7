// Package core looks up conference rankings on the CORE ranking portal.
package core

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/agentstation/confmap/internal/transport"
	"github.com/agentstation/confmap/pkg/conferences"
	"github.com/agentstation/confmap/pkg/constants"
	"github.com/agentstation/confmap/pkg/errors"
	"github.com/agentstation/confmap/pkg/normalize"
	"github.com/agentstation/confmap/pkg/sources"
)

// Columns of the portal's result table, in order.
var Columns = []string{"Title", "Acronym", "Source", "Rank", "DBLP", "hasData?", "Primary FoR", "Comments", "Average Rating"}

// minColumns is the number of cells a row needs to carry a rank.
const minColumns = 4

// Source queries the CORE portal.
type Source struct {
	baseURL string
	edition string
	client  *transport.Client
}

// Option configures a CORE source.
type Option func(*Source)

// WithBaseURL overrides the portal URL.
func WithBaseURL(base string) Option {
	return func(s *Source) {
		if base != "" {
			s.baseURL = base
		}
	}
}

// WithEdition selects the ranking edition, e.g. "CORE2023".
func WithEdition(edition string) Option {
	return func(s *Source) {
		if edition != "" {
			s.edition = edition
		}
	}
}

// WithClient sets the transport client.
func WithClient(c *transport.Client) Option {
	return func(s *Source) {
		s.client = c
	}
}

// New creates a CORE source.
func New(opts ...Option) *Source {
	s := &Source{
		baseURL: constants.CoreBaseURL,
		edition: constants.CoreDefaultEdition,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = transport.New(string(sources.CoreID), transport.WithInterval(constants.CoreMinInterval))
	}
	return s
}

// ID returns the source ID.
func (s *Source) ID() sources.ID {
	return sources.CoreID
}

// QueryURL returns the portal URL listing the rankings that match query.
func (s *Source) QueryURL(query string) string {
	q := url.Values{}
	q.Set("search", query)
	q.Set("by", "all")
	q.Set("source", s.edition)
	q.Set("sort", "atitle")
	q.Set("page", "1")
	return s.baseURL + "?" + q.Encode()
}

// Rankings returns the rows of the edition matching query. Every ranking's
// Link is the query URL, which is what gets published as ranking_link.
func (s *Source) Rankings(ctx context.Context, query string) ([]conferences.Ranking, error) {
	pageURL := s.QueryURL(query)
	body, err := s.client.Get(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, errors.WrapFetch(string(sources.CoreID), pageURL, err)
	}

	table := doc.Find("div#search table").First()
	if table.Length() == 0 {
		return nil, errors.NewFetchError(string(sources.CoreID), pageURL, 0, "result table not found")
	}

	rankings := []conferences.Ranking{}
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		cells := row.Find("th, td")
		if cells.Length() < minColumns {
			return
		}
		cell := func(i int) string {
			if i >= cells.Length() {
				return ""
			}
			return normalize.CleanCell(cells.Eq(i).Text())
		}
		rankings = append(rankings, conferences.Ranking{
			Title:         cell(0),
			Acronym:       cell(1),
			Source:        cell(2),
			Rank:          cell(3),
			DBLP:          cell(4),
			HasData:       cell(5),
			PrimaryFoR:    cell(6),
			Comments:      cell(7),
			AverageRating: cell(8),
			Link:          pageURL,
		})
	})
	return rankings, nil
}

// Query returns the search term for a deadline: its acronym when known,
// otherwise its full name.
func Query(d *conferences.Deadline) string {
	if t := strings.TrimSpace(d.Title); t != "" {
		return t
	}
	return d.FullName
}
