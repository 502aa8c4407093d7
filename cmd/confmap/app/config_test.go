package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/agentstation/confmap/pkg/constants"
	"github.com/agentstation/confmap/pkg/errors"
	"github.com/agentstation/confmap/pkg/reconciler"
)

// isolate keeps config files and .env files of the developer out of the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

// TestLoadConfig verifies the defaults.
func TestLoadConfig(t *testing.T) {
	isolate(t)

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.DataPath != constants.DefaultConferencesPath {
		t.Errorf("DataPath = %s, want %s", config.DataPath, constants.DefaultConferencesPath)
	}
	if config.WikiCFPInterval != constants.WikiCFPMinInterval {
		t.Errorf("WikiCFPInterval = %s, want %s", config.WikiCFPInterval, constants.WikiCFPMinInterval)
	}
	if config.Strategy != reconciler.StrategyTypeRetainExisting {
		t.Errorf("Strategy = %s, want retain-existing", config.Strategy)
	}
	if config.Timeout != constants.CommandTimeout {
		t.Errorf("Timeout = %s, want %s", config.Timeout, constants.CommandTimeout)
	}
	if config.LogFormat == "" {
		t.Error("LogFormat not set to default")
	}
	if config.ProvenancePath != "" {
		t.Error("provenance must be off by default")
	}
}

// TestConfig_File verifies the search path and environment precedence.
func TestConfig_File(t *testing.T) {
	dir := isolate(t)
	content := `
data:
  conferences: out/conferences.yml
  provenance: out/provenance.yml
sources:
  wikicfp:
    interval: 10s
  core:
    edition: CORE2021
merge:
  strategy: bracket-append
batch:
  start: 20
  end: 40
`
	if err := os.WriteFile(filepath.Join(dir, "confmap.yaml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFMAP_BATCH_END", "60")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.DataPath != "out/conferences.yml" {
		t.Errorf("DataPath = %s", config.DataPath)
	}
	if config.ProvenancePath != "out/provenance.yml" {
		t.Errorf("ProvenancePath = %s", config.ProvenancePath)
	}
	if config.WikiCFPInterval != 10*time.Second {
		t.Errorf("WikiCFPInterval = %s", config.WikiCFPInterval)
	}
	if config.CoreEdition != "CORE2021" {
		t.Errorf("CoreEdition = %s", config.CoreEdition)
	}
	if config.Strategy != reconciler.StrategyTypeBracketAppend {
		t.Errorf("Strategy = %s", config.Strategy)
	}
	if config.BatchStart != 20 || config.BatchEnd != 60 {
		t.Errorf("batch = [%d:%d], want [20:60]", config.BatchStart, config.BatchEnd)
	}
}

// TestConfig_DotEnv verifies .env files are loaded.
func TestConfig_DotEnv(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("CONFMAP_USER_AGENT=dotenv/1.0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("CONFMAP_USER_AGENT") })

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config.UserAgent != "dotenv/1.0" {
		t.Errorf("UserAgent = %s, want dotenv/1.0", config.UserAgent)
	}
}

// TestConfig_Invalid verifies values the client would reject are caught early.
func TestConfig_Invalid(t *testing.T) {
	tests := map[string]string{
		"CONFMAP_MERGE_STRATEGY":           "overwrite",
		"CONFMAP_SOURCES_WIKICFP_INTERVAL": "1s",
		"CONFMAP_SOURCES_CORE_INTERVAL":    "500ms",
		"CONFMAP_BATCH_START":              "-1",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			isolate(t)
			t.Setenv(key, value)

			_, err := LoadConfig("")
			var cfgErr *errors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("LoadConfig() error = %v, want ConfigError", err)
			}
		})
	}
}

// TestConfig_UpdateFromFlags verifies flags win over loaded values.
func TestConfig_UpdateFromFlags(t *testing.T) {
	config := &Config{Format: "yaml", LogLevel: "error"}

	config.UpdateFromFlags(true, false, true, "", "")
	if !config.Verbose || !config.NoColor {
		t.Error("boolean flags not applied")
	}
	if config.Format != "yaml" || config.LogLevel != "error" {
		t.Error("empty flags must keep loaded values")
	}

	config.UpdateFromFlags(false, false, false, "json", "debug")
	if config.Format != "json" || config.LogLevel != "debug" {
		t.Error("explicit flags must override loaded values")
	}
}
