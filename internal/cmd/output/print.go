package output

import (
	"io"

	"github.com/agentstation/confmap/internal/cmd/table"
	"github.com/agentstation/confmap/pkg/conferences"
)

// Deadlines writes deadlines in format. Structured formats carry every
// field, including the ones the type does not model.
func Deadlines(w io.Writer, format Format, deadlines []*conferences.Deadline) error {
	if format.IsTable() {
		return NewFormatter(format).Format(w, table.DeadlinesToTableData(deadlines, format == FormatWide))
	}
	records := make([]map[string]any, 0, len(deadlines))
	for _, d := range deadlines {
		records = append(records, recordMap(d.Record()))
	}
	return NewFormatter(format).Format(w, records)
}

// Write renders data in format, using tableData for table formats.
func Write(w io.Writer, format Format, data any, tableData table.Data) error {
	if format.IsTable() {
		return NewFormatter(format).Format(w, tableData)
	}
	return NewFormatter(format).Format(w, data)
}

func recordMap(r conferences.Record) map[string]any {
	m := make(map[string]any, r.Len())
	for _, it := range r.Items() {
		m[it.Key] = it.Value
	}
	return m
}
