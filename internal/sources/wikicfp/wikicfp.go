// Package wikicfp scrapes conference candidates and call-for-papers details
// from WikiCFP. WikiCFP asks for at most one request every five seconds;
// the source's transport client enforces that interval.
package wikicfp

import (
	"bytes"
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/agentstation/confmap/internal/transport"
	"github.com/agentstation/confmap/pkg/conferences"
	"github.com/agentstation/confmap/pkg/constants"
	"github.com/agentstation/confmap/pkg/errors"
	"github.com/agentstation/confmap/pkg/logging"
	"github.com/agentstation/confmap/pkg/normalize"
	"github.com/agentstation/confmap/pkg/sources"
)

// Result table positions among the "div.contsec table" elements.
const (
	searchTableIndex = 1
	seriesTableIndex = 3
)

// Source fetches from WikiCFP.
type Source struct {
	baseURL string
	client  *transport.Client
}

// Option configures a WikiCFP source.
type Option func(*Source)

// WithBaseURL overrides the site root, e.g. for tests.
func WithBaseURL(base string) Option {
	return func(s *Source) {
		s.baseURL = strings.TrimRight(base, "/")
	}
}

// WithClient sets the transport client.
func WithClient(c *transport.Client) Option {
	return func(s *Source) {
		s.client = c
	}
}

// New creates a WikiCFP source. Without WithClient it gets a client that
// waits constants.WikiCFPMinInterval between requests.
func New(opts ...Option) *Source {
	s := &Source{baseURL: constants.WikiCFPBaseURL}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = transport.New(string(sources.WikiCFPID), transport.WithInterval(constants.WikiCFPMinInterval))
	}
	return s
}

// ID returns the source ID.
func (s *Source) ID() sources.ID {
	return sources.WikiCFPID
}

// SearchURL returns the candidate list URL of a master and the index of
// its result table. A direct series link takes precedence over the query.
func (s *Source) SearchURL(m conferences.Master) (string, int) {
	if m.WikiCFPLink != "" {
		return m.WikiCFPLink, seriesTableIndex
	}
	q := url.Values{}
	q.Set("q", m.Query())
	q.Set("year", "f")
	return s.baseURL + constants.WikiCFPSearchPath + "?" + q.Encode(), searchTableIndex
}

// Candidates fetches the candidate list of a master.
func (s *Source) Candidates(ctx context.Context, m conferences.Master) ([]conferences.Candidate, error) {
	pageURL, table := s.SearchURL(m)
	doc, err := s.document(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	cands, err := s.parseCandidates(ctx, doc, table)
	if err != nil {
		return nil, errors.WrapFetch(string(sources.WikiCFPID), pageURL, err)
	}
	return cands, nil
}

// Deadline fetches the candidate's detail page and converts it for master m.
func (s *Source) Deadline(ctx context.Context, m conferences.Master, c conferences.Candidate) (*conferences.Deadline, error) {
	doc, err := s.document(ctx, c.Link)
	if err != nil {
		return nil, err
	}
	detail, err := parseDetail(doc)
	if err != nil {
		return nil, errors.WrapFetch(string(sources.WikiCFPID), c.Link, err)
	}
	detail.URL = c.Link
	return ToDeadline(m, c, detail)
}

func (s *Source) document(ctx context.Context, pageURL string) (*goquery.Document, error) {
	body, err := s.client.Get(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, errors.WrapFetch(string(sources.WikiCFPID), pageURL, err)
	}
	return doc, nil
}

// parseCandidates reads a result table. After the header, every candidate
// spans two rows; their cells concatenated start with the linked title
// ("ICML 2025") and the full name.
func (s *Source) parseCandidates(ctx context.Context, doc *goquery.Document, index int) ([]conferences.Candidate, error) {
	tables := doc.Find("div.contsec table")
	if tables.Length() <= index {
		return nil, errors.New("result table not found")
	}
	rows := tables.Eq(index).Find("tr")
	cands := []conferences.Candidate{}
	if rows.Length() == 0 {
		return cands, nil
	}

	log := logging.Ctx(ctx)
	for i := 1; i+1 < rows.Length(); i += 2 {
		cells := rows.Eq(i).Find("th, td").AddSelection(rows.Eq(i + 1).Find("th, td"))
		if cells.Length() < 2 {
			continue
		}
		title := normalize.CleanCell(cells.Eq(0).Text())
		tokens := strings.Fields(title)
		if len(tokens) == 0 {
			continue
		}
		year, err := strconv.Atoi(tokens[len(tokens)-1])
		if err != nil {
			log.Debug().Str("title", title).Msg("Skipping candidate without year")
			continue
		}
		href, ok := cells.Eq(0).Find("a").First().Attr("href")
		if !ok {
			log.Debug().Str("title", title).Msg("Skipping candidate without link")
			continue
		}
		cands = append(cands, conferences.Candidate{
			Title:    title,
			Link:     s.resolve(href),
			FullName: normalize.CleanCell(cells.Eq(1).Text()),
			Year:     year,
		})
	}
	return cands, nil
}

func (s *Source) resolve(href string) string {
	base, err := url.Parse(s.baseURL + "/")
	if err != nil {
		return s.baseURL + href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return s.baseURL + href
	}
	return base.ResolveReference(ref).String()
}
