// Package sources defines the contracts of the external collaborators that
// feed the reconciliation passes and the identifiers of the known sources.
//
// Sources only fetch and map data. Matching, merging and ordering happen in
// the reconciliation core, and a failing source never aborts a pass: its
// errors are logged and the affected item is skipped.
//
// Example usage:
//
//	cands, err := src.Candidates(ctx, master)
//	if err != nil {
//	    // logged, master skipped
//	}
//	for _, c := range matcher.FindCandidates(master, cands, year) {
//	    d, err := src.Deadline(ctx, master, c)
//	    ...
//	}
package sources

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/agentstation/confmap/pkg/conferences"
	"github.com/agentstation/confmap/pkg/errors"
)

// ID represents the identifier of a data source.
type ID string

// String returns the string representation of a source ID.
func (id ID) String() string {
	return string(id)
}

// Known source IDs.
const (
	WikiCFPID     ID = "wikicfp"
	CoreID        ID = "core"
	AIDeadlinesID ID = "aideadlines"
	LocalID       ID = "local"
)

// IDs returns the IDs of the external sources, in the order passes run.
func IDs() []ID {
	return []ID{
		WikiCFPID,
		CoreID,
		AIDeadlinesID,
	}
}

// IsValid returns true if the ID is one of the external sources.
func (id ID) IsValid() bool {
	return slices.Contains(IDs(), id)
}

// ParseIDs parses source names such as "wikicfp,core". An empty input
// selects every source.
func ParseIDs(names ...string) ([]ID, error) {
	var ids []ID
	for _, name := range names {
		for _, part := range strings.Split(name, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			if part == "" {
				continue
			}
			id := ID(part)
			if !id.IsValid() {
				return nil, errors.NewValidationError("source", part,
					fmt.Sprintf("unknown source, expected one of %v", IDs()))
			}
			if !slices.Contains(ids, id) {
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return IDs(), nil
	}
	return ids, nil
}

// Source is implemented by every collaborator.
type Source interface {
	// ID returns the identifier of this source
	ID() ID
}

// CandidateSource lists per-year candidates for a master and turns a matched
// candidate into a Deadline.
type CandidateSource interface {
	Source

	// Candidates fetches the candidate list for a master
	Candidates(ctx context.Context, master conferences.Master) ([]conferences.Candidate, error)

	// Deadline fetches the candidate's detail page and converts it
	Deadline(ctx context.Context, master conferences.Master, candidate conferences.Candidate) (*conferences.Deadline, error)
}

// RankingSource looks up ranking rows by a free-text query.
type RankingSource interface {
	Source

	// Rankings returns the rows matching query
	Rankings(ctx context.Context, query string) ([]conferences.Ranking, error)
}

// FeedSource yields a flat list of deadline rows, already mapped onto
// Deadline fields.
type FeedSource interface {
	Source

	// Deadlines downloads and maps the feed. Rows that cannot be mapped are
	// returned as RowErrors next to the mapped ones; the error is reserved
	// for failures of the whole feed.
	Deadlines(ctx context.Context) ([]*conferences.Deadline, []RowError, error)
}

// RowError is a feed row that could not be mapped.
type RowError struct {
	Row   int    // zero-based position in the feed
	Title string // may be empty
	Err   error
}

// Item names the row for reports: its title, or its position.
func (e RowError) Item() string {
	if e.Title != "" {
		return e.Title
	}
	return fmt.Sprintf("row %d", e.Row)
}

// Error implements error.
func (e RowError) Error() string {
	return fmt.Sprintf("feed row %s: %v", e.Item(), e.Err)
}

// Unwrap returns the mapping error.
func (e RowError) Unwrap() error {
	return e.Err
}
