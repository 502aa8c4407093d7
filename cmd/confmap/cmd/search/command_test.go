package search

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/confmap/internal/cmd/cmdtest"
	"github.com/agentstation/confmap/pkg/conferences"
	"github.com/agentstation/confmap/pkg/matching"
)

func TestSearchCommand(t *testing.T) {
	ws := cmdtest.NewWorkspace(t,
		[]conferences.Master{{Title: "icml", FullName: "International Conference on Machine Learning"}},
		nil,
	)
	ws.WikiCFP.Results = map[string][]conferences.Candidate{
		"icml": {
			{Title: "ICML 2025", FullName: "International Conference on Machine Learning", Year: 2025, Link: "cfp/icml"},
			{Title: "ICRA 2025", FullName: "International Conference on Robotics and Automation", Year: 2025, Link: "cfp/icra"},
			{Title: "ICML 2019", FullName: "International Conference on Machine Learning", Year: 2019, Link: "cfp/icml19"},
		},
	}

	out, err := cmdtest.Run(t, NewCommand(ws.App(t, "json")), "ICML", "--year", "2025")
	require.NoError(t, err)

	var scored []matching.Scored
	require.NoError(t, json.Unmarshal([]byte(out), &scored))
	require.Len(t, scored, 3)
	assert.True(t, scored[0].Accepted)
	assert.False(t, scored[1].Accepted, "different acronym")
	assert.False(t, scored[2].Accepted, "outside the year window")
	assert.False(t, scored[2].InWindow)

	assert.Empty(t, ws.Deadlines(t), "search never merges")
}

func TestSearchCommandNoCandidates(t *testing.T) {
	ws := cmdtest.NewWorkspace(t, nil, nil)

	out, err := cmdtest.Run(t, NewCommand(ws.App(t, "table")), "corl")
	require.NoError(t, err)
	assert.Contains(t, out, "No candidates found")
}

func TestToTableData(t *testing.T) {
	td := ToTableData([]matching.Scored{{
		Candidate: conferences.Candidate{Title: "ICML 2025", Year: 2025, Link: "cfp/icml"},
		Score:     matching.Score{Abbreviation: 1, Name: 0.5, Total: 0.85},
		Accepted:  true,
	}})
	require.Len(t, td.Rows, 1)
	assert.Equal(t, []string{"✓", "ICML 2025", "", "2025", "1.00", "0.50", "0.85", "cfp/icml"}, td.Rows[0])
	assert.Len(t, td.ColumnAlignment, len(td.Headers))
}
