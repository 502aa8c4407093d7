package sources

import (
	"testing"

	"github.com/agentstation/confmap/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDs(t *testing.T) {
	ids, err := ParseIDs()
	require.NoError(t, err)
	assert.Equal(t, IDs(), ids)

	ids, err = ParseIDs("core, WikiCFP", "core")
	require.NoError(t, err)
	assert.Equal(t, []ID{CoreID, WikiCFPID}, ids)

	_, err = ParseIDs("dblp")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestIsValid(t *testing.T) {
	assert.True(t, AIDeadlinesID.IsValid())
	assert.False(t, LocalID.IsValid())
	assert.Equal(t, "core", CoreID.String())
}
