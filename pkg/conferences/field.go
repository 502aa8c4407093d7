package conferences

import (
	"strconv"

	"github.com/agentstation/confmap/pkg/errors"
)

// Field names a Deadline attribute as it appears in persisted records.
type Field string

// Deadline fields in their canonical output order.
const (
	FieldTitle            Field = "title"
	FieldYear             Field = "year"
	FieldID               Field = "id"
	FieldFullName         Field = "full_name"
	FieldLink             Field = "link"
	FieldDeadline         Field = "deadline"
	FieldAbstractDeadline Field = "abstract_deadline"
	FieldTimezone         Field = "timezone"
	FieldPlace            Field = "place"
	FieldDate             Field = "date"
	FieldStart            Field = "start"
	FieldEnd              Field = "end"
	FieldPapersLink       Field = "paperslink"
	FieldPWCLink          Field = "pwclink"
	FieldHIndex           Field = "hindex"
	FieldSub              Field = "sub"
	FieldRanking          Field = "ranking"
	FieldRankingLink      Field = "ranking_link"
	FieldNote             Field = "note"
	FieldWikiCFP          Field = "wikicfp"
	FieldWikiCFPComment   Field = "wikicfp_comment"
)

// String returns the field name.
func (f Field) String() string {
	return string(f)
}

type fieldAccessor struct {
	name Field
	ptr  func(*Deadline) *string
}

// textFields lists every string attribute of a Deadline. Year is numeric and
// handled separately.
var textFields = []fieldAccessor{
	{FieldTitle, func(d *Deadline) *string { return &d.Title }},
	{FieldID, func(d *Deadline) *string { return &d.ID }},
	{FieldFullName, func(d *Deadline) *string { return &d.FullName }},
	{FieldLink, func(d *Deadline) *string { return &d.Link }},
	{FieldDeadline, func(d *Deadline) *string { return &d.Deadline }},
	{FieldAbstractDeadline, func(d *Deadline) *string { return &d.AbstractDeadline }},
	{FieldTimezone, func(d *Deadline) *string { return &d.Timezone }},
	{FieldPlace, func(d *Deadline) *string { return &d.Place }},
	{FieldDate, func(d *Deadline) *string { return &d.Date }},
	{FieldStart, func(d *Deadline) *string { return &d.Start }},
	{FieldEnd, func(d *Deadline) *string { return &d.End }},
	{FieldPapersLink, func(d *Deadline) *string { return &d.PapersLink }},
	{FieldPWCLink, func(d *Deadline) *string { return &d.PWCLink }},
	{FieldHIndex, func(d *Deadline) *string { return &d.HIndex }},
	{FieldSub, func(d *Deadline) *string { return &d.Sub }},
	{FieldRanking, func(d *Deadline) *string { return &d.Ranking }},
	{FieldRankingLink, func(d *Deadline) *string { return &d.RankingLink }},
	{FieldNote, func(d *Deadline) *string { return &d.Note }},
	{FieldWikiCFP, func(d *Deadline) *string { return &d.WikiCFP }},
	{FieldWikiCFPComment, func(d *Deadline) *string { return &d.WikiCFPComment }},
}

var fieldIndex = func() map[Field]fieldAccessor {
	m := make(map[Field]fieldAccessor, len(textFields))
	for _, f := range textFields {
		m[f.name] = f
	}
	return m
}()

// Fields returns all known Deadline fields in canonical order.
func Fields() []Field {
	out := make([]Field, 0, len(textFields)+1)
	out = append(out, FieldTitle, FieldYear)
	for _, f := range textFields[1:] {
		out = append(out, f.name)
	}
	return out
}

// MergeableFields returns the fields the merger compares. The id is the
// record's identity and never merged.
func MergeableFields() []Field {
	out := make([]Field, 0, len(textFields))
	for _, f := range Fields() {
		if f != FieldID {
			out = append(out, f)
		}
	}
	return out
}

// RankingFields are the only fields a ranking source may update.
func RankingFields() []Field {
	return []Field{FieldRanking, FieldRankingLink}
}

// IsKnownField reports whether name is a Deadline field.
func IsKnownField(name string) bool {
	if Field(name) == FieldYear {
		return true
	}
	_, ok := fieldIndex[Field(name)]
	return ok
}

// Get returns the value of field f as text. The second result is false for
// unknown fields.
func (d *Deadline) Get(f Field) (string, bool) {
	if f == FieldYear {
		if d.Year == 0 {
			return "", true
		}
		return strconv.Itoa(d.Year), true
	}
	acc, ok := fieldIndex[f]
	if !ok {
		return "", false
	}
	return *acc.ptr(d), true
}

// Set assigns value to field f.
func (d *Deadline) Set(f Field, value string) error {
	if f == FieldYear {
		year, err := parseYear(value)
		if err != nil {
			return err
		}
		d.Year = year
		return nil
	}
	acc, ok := fieldIndex[f]
	if !ok {
		return errors.NewValidationError(string(f), value, "unknown deadline field")
	}
	*acc.ptr(d) = value
	return nil
}
