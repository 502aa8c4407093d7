package errors_test

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/agentstation/confmap/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "conference",
			ID:       "icml25",
		}
		assert.Equal(t, "conference with ID icml25 not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("master", "cvpr")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("year", 0, "must be set")
		assert.Equal(t, "validation failed for field year: must be set", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "empty title"}
		assert.Equal(t, "validation failed: empty title", err.Error())
	})
}

func TestFetchError(t *testing.T) {
	t.Run("with status code", func(t *testing.T) {
		err := pkgerrors.NewFetchError("wikicfp", "http://wikicfp.com/cfp/", 429, "too many requests")
		assert.Contains(t, err.Error(), "wikicfp")
		assert.Contains(t, err.Error(), "429")
		assert.True(t, pkgerrors.IsFetchError(err))
		assert.True(t, pkgerrors.IsRateLimited(err))
		assert.False(t, pkgerrors.IsSourceUnavailable(err))
	})

	t.Run("server error", func(t *testing.T) {
		err := pkgerrors.NewFetchError("core", "", 503, "unavailable")
		assert.True(t, pkgerrors.IsSourceUnavailable(err))
		assert.Equal(t, "fetch error from core (status 503): unavailable", err.Error())
	})

	t.Run("wrap keeps existing fetch error", func(t *testing.T) {
		inner := pkgerrors.NewFetchError("core", "u", 500, "boom")
		wrapped := pkgerrors.WrapFetch("wikicfp", "other", inner)
		var fe *pkgerrors.FetchError
		require.True(t, errors.As(wrapped, &fe))
		assert.Equal(t, "core", fe.Source)
	})

	t.Run("wrap plain error", func(t *testing.T) {
		base := errors.New("connection reset")
		wrapped := pkgerrors.WrapFetch("aideadlines", "https://example.org/feed.yml", base)
		assert.True(t, pkgerrors.IsFetchError(wrapped))
		assert.ErrorIs(t, wrapped, base)
	})

	t.Run("wrap nil", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapFetch("core", "", nil))
	})
}

func TestDateParseError(t *testing.T) {
	base := errors.New("month out of range")
	err := pkgerrors.NewDateParseError("Smarch 3", []string{"01/02/2006"}, base)

	assert.Contains(t, err.Error(), `"Smarch 3"`)
	assert.Contains(t, err.Error(), "01/02/2006")
	assert.True(t, pkgerrors.IsDateParseError(err))
	assert.True(t, pkgerrors.IsValidationError(err))
	assert.ErrorIs(t, err, base)

	wrapped := fmt.Errorf("candidate icml25: %w", err)
	assert.True(t, pkgerrors.IsDateParseError(wrapped))
}

func TestMergeError(t *testing.T) {
	err := pkgerrors.NewMergeError("icml25", "icml24", nil)
	assert.Equal(t, "cannot merge icml24 into icml25: identity mismatch", err.Error())
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestConfigError(t *testing.T) {
	err := pkgerrors.NewConfigError("batch", "batch_end must not precede batch_start", nil)
	assert.Contains(t, err.Error(), "batch")
	assert.Nil(t, err.Unwrap())
}

func TestIOError(t *testing.T) {
	base := errors.New("permission denied")
	err := pkgerrors.NewIOError("write", "/tmp/conferences.yml", base)
	assert.Equal(t, "IO error during write of /tmp/conferences.yml: permission denied", err.Error())
	assert.ErrorIs(t, err, base)

	assert.NoError(t, pkgerrors.WrapIO("read", "x", nil))
}

func TestParseError(t *testing.T) {
	t.Run("with file and line", func(t *testing.T) {
		err := &pkgerrors.ParseError{Format: "csv", File: "master_data.csv", Line: 4, Column: 2, Message: "wrong number of fields"}
		assert.Equal(t, "parse error in csv at master_data.csv:4:2: wrong number of fields", err.Error())
	})

	t.Run("no file", func(t *testing.T) {
		err := pkgerrors.WrapParse("html", "", errors.New("table not found"))
		assert.Equal(t, "html parse error: table not found", err.Error())
	})
}
