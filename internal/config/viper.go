// Package config wires viper and .env files for the confmap CLI.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g.
// CONFMAP_DATA_CONFERENCES for data.conferences.
const EnvPrefix = "CONFMAP"

// Configuration keys.
const (
	KeyMasterPath      = "data.master"
	KeyDataPath        = "data.conferences"
	KeyCSVPath         = "data.csv"
	KeyCandidatesPath  = "data.candidates"
	KeyProvenancePath  = "data.provenance"
	KeyWikiCFPURL      = "sources.wikicfp.url"
	KeyWikiCFPInterval = "sources.wikicfp.interval"
	KeyCoreURL         = "sources.core.url"
	KeyCoreEdition     = "sources.core.edition"
	KeyCoreInterval    = "sources.core.interval"
	KeyFeedURL         = "sources.aideadlines.url"
	KeyStrategy        = "merge.strategy"
	KeyBatchStart      = "batch.start"
	KeyBatchEnd        = "batch.end"
	KeyUserAgent       = "user_agent"
	KeyTimeout         = "timeout"
	KeyLogLevel        = "log.level"
	KeyLogFormat       = "log.format"
	KeyOutput          = "output"
)

// EnvFiles are loaded in order; values already set in the environment win.
var EnvFiles = []string{".env", ".env.local"}

// LoadEnvFiles loads the .env files that exist in the working directory.
func LoadEnvFiles() {
	for _, f := range EnvFiles {
		_ = godotenv.Load(f)
	}
}

// Setup binds v to the CONFMAP_ environment and reads the config file.
// An explicit configFile must exist; otherwise ./confmap.yaml and
// ~/.confmap/config.yaml are tried and a missing file is not an error.
func Setup(v *viper.Viper, configFile string) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		return v.ReadInConfig()
	}

	for _, path := range SearchPaths() {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			return v.ReadInConfig()
		}
	}
	return nil
}

// SearchPaths lists the config files tried when none is given.
func SearchPaths() []string {
	paths := []string{"confmap.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".confmap", "config.yaml"))
	}
	return paths
}

// EnvName returns the environment variable that backs key.
func EnvName(key string) string {
	r := strings.NewReplacer(".", "_", "-", "_")
	return EnvPrefix + "_" + strings.ToUpper(r.Replace(key))
}

// GetString is a helper to get string values from v.
// It checks both the OS environment and the viper configuration, so values
// exported after Setup ran are still seen.
func GetString(v *viper.Viper, key string) string {
	value := v.GetString(key)
	if value == "" {
		return os.Getenv(EnvName(key))
	}
	return value
}

// GetDuration returns key as a duration, or def when unset.
func GetDuration(v *viper.Viper, key string, def time.Duration) time.Duration {
	if !v.IsSet(key) && os.Getenv(EnvName(key)) == "" {
		return def
	}
	if d := v.GetDuration(key); d > 0 {
		return d
	}
	return def
}

// GetInt returns key as an int, or def when unset.
func GetInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	return v.GetInt(key)
}
