// Package app provides the application context and dependency management
// for the confmap CLI: configuration, logging and the lazily created
// confmap client that every command shares.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/confmap"
	"github.com/agentstation/confmap/internal/appcontext"
	"github.com/agentstation/confmap/pkg/errors"
	"github.com/agentstation/confmap/pkg/logging"
	pkgsync "github.com/agentstation/confmap/pkg/sync"
)

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)

// App represents the confmap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Client instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	client confmap.Client
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, err
	}
	app.config = config
	app.setLogger(NewLogger(config))

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Client returns the confmap client, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Client() (confmap.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}

	c, err := confmap.New(a.clientOptions()...)
	if err != nil {
		return nil, errors.NewConfigError("client", "cannot create client", err)
	}
	a.client = c
	return c, nil
}

// ClientWithOptions returns a new client with opts applied after the
// configured options.
func (a *App) ClientWithOptions(opts ...confmap.Option) (confmap.Client, error) {
	c, err := confmap.New(append(a.clientOptions(), opts...)...)
	if err != nil {
		return nil, errors.NewConfigError("client", "cannot create client with custom options", err)
	}
	return c, nil
}

// SyncDefaults returns the sync options taken from configuration.
func (a *App) SyncDefaults() []pkgsync.Option {
	return []pkgsync.Option{
		pkgsync.WithBatch(a.config.BatchStart, a.config.BatchEnd),
		pkgsync.WithStrategy(a.config.Strategy),
		pkgsync.WithTimeout(a.config.Timeout),
	}
}

// clientOptions constructs client options from the app configuration.
func (a *App) clientOptions() []confmap.Option {
	return []confmap.Option{
		confmap.WithMasterPath(a.config.MasterPath),
		confmap.WithDataPath(a.config.DataPath),
		confmap.WithCSVPath(a.config.CSVPath),
		confmap.WithCandidatesPath(a.config.CandidatesPath),
		confmap.WithProvenancePath(a.config.ProvenancePath),
		confmap.WithWikiCFPURL(a.config.WikiCFPURL),
		confmap.WithCoreURL(a.config.CoreURL),
		confmap.WithCoreEdition(a.config.CoreEdition),
		confmap.WithIntervals(a.config.WikiCFPInterval, a.config.CoreInterval),
		confmap.WithFeedURL(a.config.FeedURL),
		confmap.WithUserAgent(a.config.UserAgent),
		confmap.WithStrategy(a.config.Strategy),
	}
}

// setLogger installs logger as the app logger and the package default,
// so library code logging through the context picks it up.
func (a *App) setLogger(logger zerolog.Logger) {
	a.logger = &logger
	logging.SetDefault(logger)
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom client instance (useful for testing).
func WithClient(c confmap.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}
