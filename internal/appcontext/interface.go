// Package appcontext provides the shared application context interface
// used by all commands. Commands accept it instead of the concrete App so
// they can be tested with Mock.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/confmap"
	pkgsync "github.com/agentstation/confmap/pkg/sync"
)

// Interface defines the application context interface that commands need.
type Interface interface {
	// Client returns the default confmap client, creating it lazily if needed.
	Client() (confmap.Client, error)

	// ClientWithOptions creates a new client with options layered over the
	// configured ones, e.g. a different dataset path.
	ClientWithOptions(...confmap.Option) (confmap.Client, error)

	// SyncDefaults returns the sync options taken from configuration.
	// Command flags are appended after them and win.
	SyncDefaults() []pkgsync.Option

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, wide, json, yaml).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
