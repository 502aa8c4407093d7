package confmap

import (
	"fmt"
	"strings"

	"github.com/agentstation/confmap/pkg/conferences"
	"github.com/agentstation/confmap/pkg/normalize"
)

// IssueKind classifies a dataset problem.
type IssueKind string

// Issue kinds.
const (
	IssueDuplicateID     IssueKind = "duplicate-id"
	IssueMissingID       IssueKind = "missing-id"
	IssueYearMismatch    IssueKind = "year-mismatch"
	IssueInvalidDeadline IssueKind = "invalid-deadline"
)

// Issue is a problem found by Validate.
type Issue struct {
	Kind    IssueKind `json:"kind" yaml:"kind"`
	ID      string    `json:"id" yaml:"id"`
	Field   string    `json:"field,omitempty" yaml:"field,omitempty"`
	Message string    `json:"message" yaml:"message"`
}

// String implements fmt.Stringer.
func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.ID, i.Message)
}

// Validate checks the stored dataset.
func (c *client) Validate() ([]Issue, error) {
	deadlines, err := c.Deadlines()
	if err != nil {
		return nil, err
	}
	return ValidateDeadlines(deadlines), nil
}

// ValidateDeadlines reports repeated ids, ids that do not end with the
// two-digit year, and deadline fields that are neither a date nor TBA.
func ValidateDeadlines(deadlines []*conferences.Deadline) []Issue {
	var issues []Issue
	seen := make(map[string]int)
	for _, d := range deadlines {
		if d.ID == "" {
			issues = append(issues, Issue{Kind: IssueMissingID, ID: d.Title, Field: "id", Message: "record has no id"})
			continue
		}
		key := strings.ToLower(d.ID)
		seen[key]++
		if seen[key] == 2 {
			issues = append(issues, Issue{Kind: IssueDuplicateID, ID: d.ID, Field: "id", Message: "id appears more than once"})
		}

		if d.Year <= 0 || !strings.HasSuffix(d.ID, conferences.YearSuffix(d.Year)) {
			issues = append(issues, Issue{
				Kind:    IssueYearMismatch,
				ID:      d.ID,
				Field:   "year",
				Message: fmt.Sprintf("id does not end with the suffix of year %d", d.Year),
			})
		}

		for _, f := range []conferences.Field{conferences.FieldDeadline, conferences.FieldAbstractDeadline} {
			v, _ := d.Get(f)
			if f == conferences.FieldAbstractDeadline && v == "" {
				continue
			}
			if normalize.IsTBA(v) {
				continue
			}
			if _, err := normalize.ParseDateTime(v); err != nil {
				issues = append(issues, Issue{
					Kind:    IssueInvalidDeadline,
					ID:      d.ID,
					Field:   string(f),
					Message: fmt.Sprintf("%s %q is neither a date nor TBA", f, v),
				})
			}
		}
	}
	return issues
}
