package masterdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/confmap/internal/cmd/cmdtest"
	"github.com/agentstation/confmap/pkg/conferences"
)

func TestMasterdataUpdate(t *testing.T) {
	ws := cmdtest.NewWorkspace(t,
		[]conferences.Master{{Title: "icml", FullName: "International Conference on Machine Learning"}},
		[]*conferences.Deadline{
			{Title: "ICML", Year: 2025, ID: "icml25", Deadline: "TBA"},
			{Title: "CoRL", Year: 2024, ID: "corl24", Deadline: "2024/6/6 23:59", FullName: "Conference on Robot Learning"},
		},
	)
	app := ws.App(t, "table")

	out, err := cmdtest.Run(t, NewCommand(app), "update", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Would add 1 masters")
	assert.Contains(t, out, "corl")

	masters, err := ws.Client(t).Masters()
	require.NoError(t, err)
	assert.Len(t, masters, 1, "dry run saves nothing")

	_, err = cmdtest.Run(t, NewCommand(app), "update")
	require.NoError(t, err)
	masters, err = ws.Client(t).Masters()
	require.NoError(t, err)
	require.Len(t, masters, 2)
	assert.Equal(t, conferences.Master{Title: "corl", FullName: "Conference on Robot Learning", WikiCFPQuery: "CoRL"}, masters[1])

	out, err = cmdtest.Run(t, NewCommand(app), "update")
	require.NoError(t, err)
	assert.Contains(t, out, "up to date")
}
