package table

import (
	"fmt"
	"sort"
	"time"

	"github.com/agentstation/confmap/pkg/provenance"
)

// ProvenanceToTableData converts the provenance of one deadline to table
// rows, grouped by field with the newest entry first and marked current.
func ProvenanceToTableData(byField map[string][]provenance.Provenance, now time.Time) Data {
	fields := make([]string, 0, len(byField))
	for field := range byField {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var rows [][]string
	for _, field := range fields {
		history := append([]provenance.Provenance{}, byField[field]...)
		sort.SliceStable(history, func(i, j int) bool {
			return history[i].Timestamp.After(history[j].Timestamp)
		})
		for i, entry := range history {
			name, current := "", ""
			if i == 0 {
				name, current = field, "→"
			}
			value := entry.Value
			if value == "" {
				value = "<empty>"
			}
			rows = append(rows, []string{
				name,
				current,
				value,
				string(entry.Source),
				orDash(entry.PreviousValue),
				formatTimestamp(entry.Timestamp, now),
				orDash(entry.Reason),
			})
		}
	}

	return Data{
		Headers: []string{"Field", "Curr", "Value", "Source", "Previous", "When", "Reason"},
		Rows:    rows,
		ColumnAlignment: []Align{
			AlignLeft,   // Field
			AlignCenter, // Curr
			AlignLeft,   // Value
			AlignLeft,   // Source
			AlignLeft,   // Previous
			AlignLeft,   // When
			AlignLeft,   // Reason
		},
	}
}

// formatTimestamp shows recent timestamps relative to now.
func formatTimestamp(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%d min ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%d hr ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(diff.Hours()/24))
	}
	return t.Format("2006-01-02 15:04")
}
