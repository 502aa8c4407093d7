package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/confmap"
	pkgsync "github.com/agentstation/confmap/pkg/sync"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	ClientFunc            func() (confmap.Client, error)
	ClientWithOptionsFunc func(...confmap.Option) (confmap.Client, error)
	SyncDefaultsFunc      func() []pkgsync.Option
	LoggerFunc            func() *zerolog.Logger
	OutputFormatValue     string
	VersionFunc           func() string
	CommitFunc            func() string
	DateFunc              func() string
	BuiltByFunc           func() string
}

// Client returns a client using the mock function or nil.
func (m *Mock) Client() (confmap.Client, error) {
	if m.ClientFunc != nil {
		return m.ClientFunc()
	}
	return nil, nil
}

// ClientWithOptions returns a client using the mock function, falling back
// to Client.
func (m *Mock) ClientWithOptions(opts ...confmap.Option) (confmap.Client, error) {
	if m.ClientWithOptionsFunc != nil {
		return m.ClientWithOptionsFunc(opts...)
	}
	return m.Client()
}

// SyncDefaults returns the mock options or none.
func (m *Mock) SyncDefaults() []pkgsync.Option {
	if m.SyncDefaultsFunc != nil {
		return m.SyncDefaultsFunc()
	}
	return nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns OutputFormatValue.
func (m *Mock) OutputFormat() string {
	return m.OutputFormatValue
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
