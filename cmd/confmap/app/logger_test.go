package app

import (
	"testing"
)

// TestDetermineLogLevel tests the log level precedence logic.
func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name:     "default level when no flags set",
			config:   &Config{},
			expected: "info",
		},
		{
			name:     "verbose flag sets debug",
			config:   &Config{Verbose: true},
			expected: "debug",
		},
		{
			name:     "quiet flag sets warn",
			config:   &Config{Quiet: true},
			expected: "warn",
		},
		{
			name:     "explicit log-level overrides verbose",
			config:   &Config{LogLevel: "error", Verbose: true},
			expected: "error",
		},
		{
			name:     "explicit log-level overrides both flags",
			config:   &Config{LogLevel: "info", Verbose: true, Quiet: true},
			expected: "info",
		},
		{
			name:     "both verbose and quiet prefers quiet",
			config:   &Config{Verbose: true, Quiet: true},
			expected: "warn",
		},
		{
			name:     "LOG_LEVEL applies without flags",
			config:   &Config{EnvLogLevel: "debug"},
			expected: "debug",
		},
		{
			name:     "verbose beats LOG_LEVEL",
			config:   &Config{EnvLogLevel: "error", Verbose: true},
			expected: "debug",
		},
		{
			name:     "invalid log level falls back to info",
			config:   &Config{LogLevel: "invalid"},
			expected: "info",
		},
		{
			name:     "level is case insensitive",
			config:   &Config{LogLevel: "TRACE"},
			expected: "trace",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := determineLogLevel(tt.config)
			if result != tt.expected {
				t.Errorf("determineLogLevel() = %q, expected %q", result, tt.expected)
			}
		})
	}
}

// TestValidateLogLevel tests log level validation.
func TestValidateLogLevel(t *testing.T) {
	for level, expected := range map[string]string{
		"trace":   "trace",
		"debug":   "debug",
		"info":    "info",
		"warn":    "warn",
		"error":   "error",
		"Warn":    "warn",
		"verbose": "info",
		"":        "info",
	} {
		if got := validateLogLevel(level); got != expected {
			t.Errorf("validateLogLevel(%q) = %q, expected %q", level, got, expected)
		}
	}
}
