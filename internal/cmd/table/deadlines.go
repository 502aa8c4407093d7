package table

import (
	"fmt"
	"strconv"

	"github.com/agentstation/confmap/pkg/conferences"
	"github.com/agentstation/confmap/pkg/reconciler"
)

// DeadlinesToTableData converts deadlines to table rows. The wide layout adds
// the place, conference dates and the WikiCFP reference.
func DeadlinesToTableData(deadlines []*conferences.Deadline, wide bool) Data {
	headers := []string{"ID", "Title", "Deadline", "Abstract", "Ranking", "Sub"}
	if wide {
		headers = append(headers, "Place", "Date", "WikiCFP")
	}

	rows := make([][]string, 0, len(deadlines))
	for _, d := range deadlines {
		row := []string{
			d.ID,
			d.Title,
			orDash(d.Deadline),
			orDash(d.AbstractDeadline),
			orDash(d.Ranking),
			orDash(d.Sub),
		}
		if wide {
			row = append(row, orDash(d.Place), orDash(d.Date), orDash(d.WikiCFP))
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows}
}

// MastersToTableData converts master records to table rows.
func MastersToTableData(masters []conferences.Master) Data {
	rows := make([][]string, 0, len(masters))
	for _, m := range masters {
		rows = append(rows, []string{m.Title, orDash(m.FullName), orDash(m.Query()), orDash(m.Ranking)})
	}
	return Data{
		Headers: []string{"Title", "Full Name", "WikiCFP Query", "Ranking"},
		Rows:    rows,
	}
}

// EventsToTableData lists merge events. Only conflicts are shown unless all is set.
func EventsToTableData(events []reconciler.Event, all bool) Data {
	var rows [][]string
	for _, e := range events {
		if !all && !e.IsConflict() {
			continue
		}
		rows = append(rows, []string{
			string(e.Kind),
			e.ID,
			orDash(string(e.Field)),
			orDash(e.Existing),
			orDash(e.Incoming),
			orDash(string(e.Source)),
		})
	}
	return Data{
		Headers: []string{"Event", "ID", "Field", "Existing", "Incoming", "Source"},
		Rows:    rows,
	}
}

// SkipsToTableData lists items a reconciliation pass left out.
func SkipsToTableData(skips []reconciler.Skip) Data {
	rows := make([][]string, 0, len(skips))
	for _, s := range skips {
		reason := s.Reason
		if s.Err != nil {
			reason = fmt.Sprintf("%s: %v", reason, s.Err)
		}
		rows = append(rows, []string{string(s.Source), s.Item, reason})
	}
	return Data{
		Headers: []string{"Source", "Item", "Reason"},
		Rows:    rows,
	}
}

// StatisticsToTableData renders a reconciliation summary as a two-column table.
func StatisticsToTableData(stats reconciler.ResultStatistics) Data {
	pairs := []struct {
		name  string
		value int
	}{
		{"Masters processed", stats.MastersProcessed},
		{"Rows processed", stats.RowsProcessed},
		{"Created", stats.Created},
		{"Fields added", stats.Added},
		{"Conflicts", stats.Conflicts},
		{"Removed", stats.Removed},
		{"Duplicates", stats.Duplicates},
		{"Skipped", stats.Skipped},
		{"Total deadlines", stats.Total},
	}
	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, []string{p.name, strconv.Itoa(p.value)})
	}
	return Data{
		Headers:         []string{"Metric", "Count"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}
