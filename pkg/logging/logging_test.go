package logging_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/agentstation/confmap/pkg/logging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := logging.DefaultConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.False(t, cfg.AddCaller)
}

func TestNewLoggerFromConfig(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(originalLevel) })

	path := filepath.Join(t.TempDir(), "confmap.log")
	logger := logging.NewLoggerFromConfig(&logging.Config{
		Level:  "warning",
		Format: "json",
		Output: path,
		Fields: map[string]any{"pass": "wikicfp"},
	})
	logger.Info().Msg("hidden")
	logger.Warn().Msg("no candidates")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "hidden")
	assert.Contains(t, string(content), "no candidates")
	assert.Contains(t, string(content), `"pass":"wikicfp"`)
}

func TestContextFields(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)
	ctx = logging.WithSource(ctx, "wikicfp")
	ctx = logging.WithConference(ctx, "icml")
	ctx = logging.WithFields(ctx, map[string]any{"year": 2025})

	logging.FromContext(ctx).Info().Msg("merged")

	tl.AssertContains(t, `"source":"wikicfp"`)
	tl.AssertContains(t, `"conference":"icml"`)
	tl.AssertContains(t, `"year":2025`)
}

func TestFromContextDefaults(t *testing.T) {
	//nolint:staticcheck // nil context is handled explicitly
	assert.Equal(t, logging.Default(), logging.FromContext(nil))
	assert.Equal(t, logging.Default(), logging.Ctx(context.Background()))
}

func TestCaptureLoggingForTest(t *testing.T) {
	tl := logging.CaptureLoggingForTest(t)
	logging.Warn().Str("id", "icml25").Msg("conflict")
	assert.Len(t, tl.Lines(), 1)
	tl.AssertContains(t, "icml25")
	tl.AssertNotContains(t, "error")
}
