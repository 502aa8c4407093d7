package conferences

import "fmt"

// Candidate is an unverified observation of one conference edition pulled
// from an external source. It has no identity beyond (Title, Year, Link).
type Candidate struct {
	Title    string `json:"title" yaml:"title"`         // As listed by the source, e.g. "ICML 2025"
	Link     string `json:"link" yaml:"link"`           // Detail page
	FullName string `json:"full_name" yaml:"full_name"` // Full name as listed by the source
	Year     int    `json:"year" yaml:"year"`
}

// String implements fmt.Stringer for log output.
func (c Candidate) String() string {
	return fmt.Sprintf("%s (%s, %d) <%s>", c.Title, c.FullName, c.Year, c.Link)
}

// Ranking is one row of a conference ranking table.
type Ranking struct {
	Title         string `json:"title" yaml:"title"`     // Full conference name
	Acronym       string `json:"acronym" yaml:"acronym"` // Matches Deadline.Title
	Source        string `json:"source" yaml:"source"`   // Ranking edition, e.g. "CORE2023"
	Rank          string `json:"rank" yaml:"rank"`
	DBLP          string `json:"dblp,omitempty" yaml:"dblp,omitempty"`
	HasData       string `json:"has_data,omitempty" yaml:"has_data,omitempty"`
	PrimaryFoR    string `json:"primary_for,omitempty" yaml:"primary_for,omitempty"`
	Comments      string `json:"comments,omitempty" yaml:"comments,omitempty"`
	AverageRating string `json:"average_rating,omitempty" yaml:"average_rating,omitempty"`
	Link          string `json:"link,omitempty" yaml:"link,omitempty"`
}
