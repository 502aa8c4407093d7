package app

import (
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/agentstation/confmap/internal/config"
	"github.com/agentstation/confmap/pkg/constants"
	"github.com/agentstation/confmap/pkg/errors"
	"github.com/agentstation/confmap/pkg/reconciler"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Data files
	MasterPath     string
	DataPath       string
	CSVPath        string
	CandidatesPath string
	ProvenancePath string

	// Sources
	WikiCFPURL      string
	WikiCFPInterval time.Duration
	CoreURL         string
	CoreEdition     string
	CoreInterval    time.Duration
	FeedURL         string
	UserAgent       string

	// Sync defaults
	Strategy   reconciler.StrategyType
	BatchStart int
	BatchEnd   int
	Timeout    time.Duration

	// Logging configuration
	LogLevel    string // --log-level or log.level
	EnvLogLevel string // LOG_LEVEL, below -v/-q in precedence
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (CONFMAP_ prefix)
// 3. .env files
// 4. Config file (--config, ./confmap.yaml, ~/.confmap/config.yaml)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first so viper sees them as environment
	config.LoadEnvFiles()

	v := viper.New()
	if err := config.Setup(v, configFile); err != nil {
		return nil, errors.NewConfigError("config", "cannot read config file", err)
	}

	cfg := &Config{
		Format:     config.GetString(v, config.KeyOutput),
		ConfigFile: v.ConfigFileUsed(),

		MasterPath:     orDefault(config.GetString(v, config.KeyMasterPath), constants.DefaultMasterDataPath),
		DataPath:       orDefault(config.GetString(v, config.KeyDataPath), constants.DefaultConferencesPath),
		CSVPath:        orDefault(config.GetString(v, config.KeyCSVPath), constants.DefaultConferencesCSVPath),
		CandidatesPath: orDefault(config.GetString(v, config.KeyCandidatesPath), constants.DefaultUpdateCandidatesPath),
		ProvenancePath: config.GetString(v, config.KeyProvenancePath),

		WikiCFPURL:      orDefault(config.GetString(v, config.KeyWikiCFPURL), constants.WikiCFPBaseURL),
		WikiCFPInterval: config.GetDuration(v, config.KeyWikiCFPInterval, constants.WikiCFPMinInterval),
		CoreURL:         orDefault(config.GetString(v, config.KeyCoreURL), constants.CoreBaseURL),
		CoreEdition:     orDefault(config.GetString(v, config.KeyCoreEdition), constants.CoreDefaultEdition),
		CoreInterval:    config.GetDuration(v, config.KeyCoreInterval, constants.CoreMinInterval),
		FeedURL:         orDefault(config.GetString(v, config.KeyFeedURL), constants.AIDeadlinesFeedURL),
		UserAgent:       orDefault(config.GetString(v, config.KeyUserAgent), constants.DefaultUserAgent),

		Strategy:   reconciler.StrategyType(orDefault(config.GetString(v, config.KeyStrategy), string(reconciler.StrategyTypeRetainExisting))),
		BatchStart: config.GetInt(v, config.KeyBatchStart, 0),
		BatchEnd:   config.GetInt(v, config.KeyBatchEnd, 0),
		Timeout:    config.GetDuration(v, config.KeyTimeout, constants.CommandTimeout),

		LogLevel:    config.GetString(v, config.KeyLogLevel),
		EnvLogLevel: os.Getenv("LOG_LEVEL"),
		LogFormat:   orDefault(config.GetString(v, config.KeyLogFormat), getEnvOrDefault("LOG_FORMAT", "auto")),
		LogOutput:   getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values the client would otherwise reject later.
func (c *Config) Validate() error {
	if _, err := reconciler.NewStrategy(c.Strategy); err != nil {
		return errors.NewConfigError(config.KeyStrategy, err.Error(), err)
	}
	if c.WikiCFPInterval < constants.WikiCFPMinInterval {
		return errors.NewConfigError(config.KeyWikiCFPInterval,
			"must be at least "+constants.WikiCFPMinInterval.String(), nil)
	}
	if c.CoreInterval < constants.CoreMinInterval {
		return errors.NewConfigError(config.KeyCoreInterval,
			"must be at least "+constants.CoreMinInterval.String(), nil)
	}
	if c.BatchStart < 0 || c.BatchEnd < 0 {
		return errors.NewConfigError("batch", "bounds must not be negative", nil)
	}
	return nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

func getEnvOrDefault(key, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return def
}
