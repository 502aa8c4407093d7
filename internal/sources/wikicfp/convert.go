package wikicfp

import (
	"strings"

	"github.com/agentstation/confmap/pkg/conferences"
	"github.com/agentstation/confmap/pkg/normalize"
)

// ToDeadline builds the deadline of master m's edition described by
// candidate c and its detail page. Missing or unparseable dates fail with a
// DateParseError, so the caller can move on to the next candidate.
func ToDeadline(m conferences.Master, c conferences.Candidate, d Detail) (*conferences.Deadline, error) {
	start, end, err := normalize.ParseRange(d.When)
	if err != nil {
		return nil, err
	}
	submission, err := normalize.ParseDateTime(d.SubmissionDue)
	if err != nil {
		return nil, err
	}

	dl := &conferences.Deadline{
		Title:    strings.ToUpper(m.Title),
		Year:     c.Year,
		ID:       conferences.DeriveID(m.Title, c.Year),
		FullName: c.FullName,
		Link:     d.Link,
		Deadline: normalize.FormatDeadline(submission),
		Place:    d.Where,
		Start:    normalize.FormatDate(start),
		End:      normalize.FormatDate(end),
		Date:     normalize.DateRange(start, end),
		HIndex:   m.HIndex,
		Ranking:  m.Ranking,
		Sub:      m.Sub,
		WikiCFP:  d.URL,
	}

	if d.AbstractDue != "" {
		abstract, err := normalize.ParseDateTime(d.AbstractDue)
		if err != nil {
			return nil, err
		}
		dl.AbstractDeadline = normalize.FormatDeadline(abstract)
		dl.Note = "Abstract deadline: " + normalize.FormatLongDate(abstract)
	}
	return dl, nil
}
