package normalize

import (
	"strings"
	"time"

	"github.com/agentstation/confmap/pkg/constants"
	"github.com/agentstation/confmap/pkg/errors"
	"github.com/araddon/dateparse"
)

// Layouts tried by ParseDateTime, in priority order, before the lenient parser.
var Layouts = []string{
	"06/2/1 15:04",   // yy/d/m HH:MM
	"1/2/2006 15:04", // m/d/YYYY HH:MM
	"1/2/2006",       // m/d/YYYY
}

// Output layouts. FormatDateTime strips the leading zeros these produce.
const (
	DateLayout     = "2006/01/02"
	DateTimeLayout = "2006/01/02 15:04"
	MonthDayLayout = "January 02"
	DayYearLayout  = "02, 2006"
	LongDateLayout = "January 02, 2006"
)

// ParseDateTime parses a date or date-time in any of the known source
// spellings. It fails with a DateParseError when nothing matches.
func ParseDateTime(text string) (time.Time, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return time.Time{}, errors.NewDateParseError(text, nil, errors.New("empty date"))
	}
	for _, layout := range Layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, errors.NewDateParseError(text, Layouts, err)
	}
	return t, nil
}

// FormatDateTime renders t with layout and strips leading zeros from the
// day, month and hour components, so 2024/03/07 becomes 2024/3/7.
func FormatDateTime(t time.Time, layout string) string {
	s := strings.TrimLeft(t.Format(layout), "0")
	s = strings.ReplaceAll(s, " 0", " ")
	return strings.ReplaceAll(s, "/0", "/")
}

// FormatDate renders the canonical date, e.g. "2025/1/23".
func FormatDate(t time.Time) string {
	return FormatDateTime(t, DateLayout)
}

// FormatDeadline renders the canonical deadline of a day known only by date,
// e.g. "2025/1/23 23:59".
func FormatDeadline(t time.Time) string {
	return FormatDate(t) + " " + constants.DefaultDeadlineTime
}

// FormatLongDate renders e.g. "January 23, 2025".
func FormatLongDate(t time.Time) string {
	return FormatDateTime(t, LongDateLayout)
}

// DateRange renders the human-readable span of a conference:
// "July 13 - 19, 2025" within one month, "June 30 - July 4, 2025" otherwise.
func DateRange(start, end time.Time) string {
	if start.Month() == end.Month() {
		return FormatDateTime(start, MonthDayLayout) + " - " + FormatDateTime(end, DayYearLayout)
	}
	return FormatDateTime(start, MonthDayLayout) + " - " + FormatDateTime(end, LongDateLayout)
}

// ParseRange splits a "start - end" span, as found on WikiCFP, and parses both ends.
func ParseRange(text string) (time.Time, time.Time, error) {
	parts := strings.Split(text, "-")
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, errors.NewDateParseError(text, nil, errors.New("expected \"start - end\""))
	}
	start, err := ParseDateTime(parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ParseDateTime(parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// IsTBA reports whether s is the "to be announced" sentinel, in any case.
func IsTBA(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), constants.TBA)
}
