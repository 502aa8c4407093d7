package normalize

import (
	"testing"
	"time"

	"github.com/agentstation/confmap/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"ICML 2025", "icml 2025"},
		{"IEEE ICRA 2025", "icra 2025"},
		{"ACM MM 2024", "mm 2024"},
		{"DAGM-GCPR 2025", "gcpr 2025"},
		{"ICMLA--EI 2024", "icmla 2024"},
		{"  CVPR   2026 ", "cvpr 2026"},
		{"R&D 2025", "r d 2025"},
		{"ACML 2025", "acml 2025"},
		{"IEEE-ACM ASE 2025", "ase 2025"},
		{"ICML, 2025", "icml 2025"},
		{"ICLR: 2025", "iclr 2025"},
		{"IEEE/CVF CVPR 2025", "cvf cvpr 2025"},
		{"NeurIPS (2025)", "neurips 2025"},
	}
	for _, tt := range tests {
		if got := Title(tt.in); got != tt.want {
			t.Errorf("Title(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWords(t *testing.T) {
	assert.Equal(t,
		[]string{"international", "conference", "on", "machine", "learning"},
		Words("International Conference on Machine-Learning"))
	assert.Equal(t, []string{"ecole", "montreal"}, Words("École, Montréal"))
}

func TestStripYear(t *testing.T) {
	assert.Equal(t, []string{"icml"}, StripYear([]string{"icml", "2025"}))
	assert.Equal(t, []string{"icml"}, StripYear([]string{"icml"}))
	assert.Equal(t, []string{"acl", "findings"}, StripYear([]string{"acl", "findings"}))
}

func TestCleanCell(t *testing.T) {
	assert.Equal(t, "Jul 13, 2025 - Jul 19, 2025", CleanCell("\n\tJul 13, 2025 -\n Jul 19, 2025\t"))
	assert.Equal(t, "Vancouver, Canada", CleanCell("<b>Vancouver,</b>\n <i>Canada</i>"))
	assert.Equal(t, "AT&T Labs", CleanCell("AT&amp;T <span>Labs</span>"))
	assert.Equal(t, "R&D", CleanCell("R&D"))
}

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"25/23/1 23:59", time.Date(2025, 1, 23, 23, 59, 0, 0, time.UTC)},
		{"1/23/2025 12:00", time.Date(2025, 1, 23, 12, 0, 0, 0, time.UTC)},
		{"01/23/2025", time.Date(2025, 1, 23, 0, 0, 0, 0, time.UTC)},
		{"2025/1/23 23:59", time.Date(2025, 1, 23, 23, 59, 0, 0, time.UTC)},
		{"Jan 23, 2025", time.Date(2025, 1, 23, 0, 0, 0, 0, time.UTC)},
		{"July 13, 2025", time.Date(2025, 7, 13, 0, 0, 0, 0, time.UTC)},
		{"2025-02-07 23:59:59", time.Date(2025, 2, 7, 23, 59, 59, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseDateTime(tt.in)
		if err != nil {
			t.Errorf("ParseDateTime(%q) error: %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseDateTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseDateTimeFailure(t *testing.T) {
	for _, in := range []string{"", "   ", "TBA", "not a date"} {
		_, err := ParseDateTime(in)
		require.Error(t, err, in)
		assert.True(t, errors.IsDateParseError(err), in)
	}
}

func TestFormatDateTime(t *testing.T) {
	d := time.Date(2024, 3, 7, 9, 5, 0, 0, time.UTC)
	assert.Equal(t, "2024/3/7", FormatDate(d))
	assert.Equal(t, "2024/3/7 9:05", FormatDateTime(d, DateTimeLayout))
	assert.Equal(t, "2024/3/7 23:59", FormatDeadline(d))
	assert.Equal(t, "March 7, 2024", FormatLongDate(d))
	assert.Equal(t, "2024/12/10", FormatDate(time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC)))
}

func TestDateRange(t *testing.T) {
	start := time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "July 3 - 9, 2025", DateRange(start, time.Date(2025, 7, 9, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "June 30 - July 4, 2025",
		DateRange(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC)))
}

func TestParseRange(t *testing.T) {
	start, end, err := ParseRange("Jul 13, 2025 - Jul 19, 2025")
	require.NoError(t, err)
	assert.Equal(t, 13, start.Day())
	assert.Equal(t, 19, end.Day())

	_, _, err = ParseRange("N/A")
	assert.True(t, errors.IsDateParseError(err))
}

func TestIsTBA(t *testing.T) {
	assert.True(t, IsTBA("TBA"))
	assert.True(t, IsTBA(" tba "))
	assert.False(t, IsTBA("2025/1/1 23:59"))
}
