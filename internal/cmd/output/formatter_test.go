package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/confmap/internal/cmd/table"
	"github.com/agentstation/confmap/pkg/conferences"
)

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"table", "WIDE", "json", "yaml", ""} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	err := NewFormatter(FormatTable).Format(&buf, table.Data{
		Headers:         []string{"ID", "Deadline"},
		Rows:            [][]string{{"icml25", "2025/1/23 23:59"}},
		ColumnAlignment: []table.Align{table.AlignLeft, table.AlignRight},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "icml25")
	assert.Contains(t, buf.String(), "2025/1/23 23:59")
}

func TestTableFormatterReflection(t *testing.T) {
	type row struct {
		FullName string `json:"full_name"`
		Year     int    `json:"year"`
		hidden   string
	}
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, []row{{FullName: "Machine Learning", Year: 2025, hidden: "x"}}))
	assert.Contains(t, buf.String(), "Machine Learning")

	td, ok := reflectTable([]*row{{FullName: "ICML", Year: 2025}, nil})
	require.True(t, ok)
	assert.Equal(t, []string{"Full Name", "Year"}, td.Headers)
	assert.Equal(t, [][]string{{"ICML", "2025"}}, td.Rows)

	td, ok = reflectTable(row{FullName: "ICML"})
	require.True(t, ok)
	assert.Equal(t, []string{"Full Name", "ICML"}, td.Rows[0])

	_, ok = reflectTable(42)
	assert.False(t, ok)
}

func TestDeadlinesJSON(t *testing.T) {
	d := &conferences.Deadline{ID: "icml25", Title: "ICML", Year: 2025, Deadline: "TBA"}
	d.Extra.Set("twitter", "@icmlconf")

	var buf bytes.Buffer
	require.NoError(t, Deadlines(&buf, FormatJSON, []*conferences.Deadline{d}))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "icml25", got[0]["id"])
	assert.Equal(t, float64(2025), got[0]["year"])
	assert.Equal(t, "@icmlconf", got[0]["twitter"])
}

func TestDeadlinesYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Deadlines(&buf, FormatYAML, []*conferences.Deadline{{ID: "kdd25", Title: "KDD", Year: 2025}}))
	assert.Contains(t, buf.String(), "id: kdd25")
}
