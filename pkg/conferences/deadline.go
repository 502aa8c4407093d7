package conferences

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agentstation/confmap/pkg/errors"
)

// Deadline is the canonical, merged, per-year conference instance.
// Its identity is ID, which is DeriveID(Title, Year) when first assigned and
// never changes afterwards.
type Deadline struct {
	Title            string `json:"title" yaml:"title"`                                             // Acronym as published, e.g. "ICML"
	Year             int    `json:"year" yaml:"year"`                                               // Edition year
	ID               string `json:"id" yaml:"id"`                                                   // lowercase(title) + yy
	FullName         string `json:"full_name,omitempty" yaml:"full_name,omitempty"`                 // Full conference name
	Link             string `json:"link,omitempty" yaml:"link,omitempty"`                           // Conference home page
	Deadline         string `json:"deadline" yaml:"deadline"`                                       // "YYYY/M/D HH:MM" or "TBA"
	AbstractDeadline string `json:"abstract_deadline,omitempty" yaml:"abstract_deadline,omitempty"` // Same format as Deadline
	Timezone         string `json:"timezone,omitempty" yaml:"timezone,omitempty"`                   // e.g. "UTC-12"
	Place            string `json:"place,omitempty" yaml:"place,omitempty"`                         // City, country
	Date             string `json:"date,omitempty" yaml:"date,omitempty"`                           // "Month D - D, YYYY"
	Start            string `json:"start,omitempty" yaml:"start,omitempty"`                         // "YYYY/M/D"
	End              string `json:"end,omitempty" yaml:"end,omitempty"`                             // "YYYY/M/D"
	PapersLink       string `json:"paperslink,omitempty" yaml:"paperslink,omitempty"`
	PWCLink          string `json:"pwclink,omitempty" yaml:"pwclink,omitempty"`
	HIndex           string `json:"hindex,omitempty" yaml:"hindex,omitempty"`
	Sub              string `json:"sub,omitempty" yaml:"sub,omitempty"`                   // Subfield tag
	Ranking          string `json:"ranking,omitempty" yaml:"ranking,omitempty"`           // e.g. "A*"
	RankingLink      string `json:"ranking_link,omitempty" yaml:"ranking_link,omitempty"` // Where the ranking came from
	Note             string `json:"note,omitempty" yaml:"note,omitempty"`
	WikiCFP          string `json:"wikicfp,omitempty" yaml:"wikicfp,omitempty"` // Source reference (WikiCFP detail page)
	WikiCFPComment   string `json:"wikicfp_comment,omitempty" yaml:"wikicfp_comment,omitempty"`

	// Extra holds keys this type does not model, in input order.
	Extra Record `json:"-" yaml:"-"`
}

// DeriveID builds the identity key of a conference instance: the lowercased
// title followed by the last two digits of the year, e.g. ("icml", 2025) -> "icml25".
func DeriveID(title string, year int) string {
	if year <= 0 {
		return strings.ToLower(title)
	}
	return fmt.Sprintf("%s%02d", strings.ToLower(title), year%100)
}

// YearSuffix returns the two-digit year suffix an id must end with.
func YearSuffix(year int) string {
	return fmt.Sprintf("%02d", year%100)
}

// Clone returns a deep copy of the deadline.
func (d *Deadline) Clone() *Deadline {
	if d == nil {
		return nil
	}
	c := *d
	c.Extra = d.Extra.Clone()
	return &c
}

// DeadlineFromRecord converts a persisted record into a Deadline.
// Keys the type does not model are kept in Extra.
func DeadlineFromRecord(r Record) (*Deadline, error) {
	d := &Deadline{}
	for _, it := range r.items {
		if !IsKnownField(it.Key) {
			d.Extra.Set(it.Key, it.Value)
			continue
		}
		if err := d.Set(Field(it.Key), strings.TrimSpace(ValueString(it.Value))); err != nil {
			return nil, err
		}
	}
	if d.ID == "" && d.Title != "" && d.Year > 0 {
		d.ID = DeriveID(d.Title, d.Year)
	}
	return d, nil
}

// Record converts the deadline into an ordered record. Empty fields are
// omitted, year and numeric h-index are written as integers, and Extra keys
// follow the known fields.
func (d *Deadline) Record() Record {
	var r Record
	for _, f := range Fields() {
		switch f {
		case FieldYear:
			if d.Year != 0 {
				r.Set(string(f), d.Year)
			}
		case FieldHIndex:
			if n, err := strconv.Atoi(d.HIndex); err == nil {
				r.Set(string(f), n)
			} else if d.HIndex != "" {
				r.Set(string(f), d.HIndex)
			}
		default:
			if v, _ := d.Get(f); v != "" {
				r.Set(string(f), v)
			}
		}
	}
	for _, it := range d.Extra.items {
		r.Set(it.Key, it.Value)
	}
	return r
}

// Validate checks the identity invariants of a deadline.
func (d *Deadline) Validate() error {
	if d.ID == "" {
		return errors.NewValidationError(string(FieldID), d.ID, "id is required")
	}
	if d.Year <= 0 {
		return errors.NewValidationError(string(FieldYear), d.Year, "year is required")
	}
	if !strings.HasSuffix(d.ID, YearSuffix(d.Year)) {
		return errors.NewValidationError(string(FieldID), d.ID,
			fmt.Sprintf("id does not end with year suffix %s", YearSuffix(d.Year)))
	}
	return nil
}

func parseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.NewValidationError(string(FieldYear), s, "year must be an integer")
	}
	return year, nil
}
