package app

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/agentstation/confmap/internal/cmd/cmdtest"
	"github.com/agentstation/confmap/pkg/conferences"
	"github.com/agentstation/confmap/pkg/reconciler"
	pkgsync "github.com/agentstation/confmap/pkg/sync"
)

// TestApp_New verifies that New creates a valid App instance.
func TestApp_New(t *testing.T) {
	isolate(t)

	app, err := New("1.0.0", "abc123", "2025-01-01", "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if app.Version() != "1.0.0" {
		t.Errorf("Version() = %s, want 1.0.0", app.Version())
	}
	if app.Commit() != "abc123" {
		t.Errorf("Commit() = %s, want abc123", app.Commit())
	}
	if app.Date() != "2025-01-01" {
		t.Errorf("Date() = %s, want 2025-01-01", app.Date())
	}
	if app.BuiltBy() != "test" {
		t.Errorf("BuiltBy() = %s, want test", app.BuiltBy())
	}
	if app.Config() == nil {
		t.Error("Config() returned nil")
	}
	if app.Logger() == nil {
		t.Error("Logger() returned nil")
	}
}

// TestApp_Options verifies functional options replace the defaults.
func TestApp_Options(t *testing.T) {
	isolate(t)

	logger := zerolog.Nop()
	config := &Config{Format: "yaml", Strategy: reconciler.StrategyTypeBracketAppend}
	app, err := New("dev", "", "", "", WithConfig(config), WithLogger(&logger))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if app.Config() != config {
		t.Error("WithConfig not applied")
	}
	if app.Logger() != &logger {
		t.Error("WithLogger not applied")
	}
	if app.OutputFormat() != "yaml" {
		t.Errorf("OutputFormat() = %s, want yaml", app.OutputFormat())
	}

	got := pkgsync.Defaults().Apply(app.SyncDefaults()...)
	if got.Strategy != reconciler.StrategyTypeBracketAppend {
		t.Errorf("SyncDefaults strategy = %s", got.Strategy)
	}
}

// TestApp_Client verifies the client is created once and shared.
func TestApp_Client(t *testing.T) {
	isolate(t)

	app, err := New("dev", "", "", "")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	var wg sync.WaitGroup
	clients := make([]any, 10)
	for i := range clients {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := app.Client()
			if err != nil {
				t.Errorf("Client() failed: %v", err)
				return
			}
			clients[i] = c
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(clients); i++ {
		if clients[i] != clients[0] {
			t.Fatal("Client() returned different instances")
		}
	}

	other, err := app.ClientWithOptions()
	if err != nil {
		t.Fatalf("ClientWithOptions() failed: %v", err)
	}
	if any(other) == clients[0] {
		t.Error("ClientWithOptions() must return a new client")
	}
}

// TestApp_VersionCommand runs the version command through the root command.
func TestApp_VersionCommand(t *testing.T) {
	isolate(t)

	app, err := New("1.2.3", "deadbeef", "2025-01-01", "make")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	tests := []struct {
		args     []string
		contains []string
		excludes []string
	}{
		{args: []string{"version"}, contains: []string{"confmap 1.2.3"}, excludes: []string{"deadbeef"}},
		{args: []string{"version", "-v"}, contains: []string{"confmap 1.2.3", "deadbeef", "make"}},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			var out bytes.Buffer
			root := app.createRootCommand()
			root.SetOut(&out)
			root.SetArgs(tt.args)
			if err := root.ExecuteContext(context.Background()); err != nil {
				t.Fatalf("execute failed: %v", err)
			}
			for _, s := range tt.contains {
				if !strings.Contains(out.String(), s) {
					t.Errorf("output %q does not contain %q", out.String(), s)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(out.String(), s) {
					t.Errorf("output %q must not contain %q", out.String(), s)
				}
			}
		})
	}
}

// TestApp_ListFromEnvironment drives the CLI end to end with paths taken
// from the environment.
func TestApp_ListFromEnvironment(t *testing.T) {
	isolate(t)
	ws := cmdtest.NewWorkspace(t,
		[]conferences.Master{{Title: "icml", FullName: "International Conference on Machine Learning", Sub: "ML"}},
		[]*conferences.Deadline{
			{Title: "ICML", Year: 2025, ID: "icml25", Deadline: "2025/1/23 23:59", Sub: "ML"},
			{Title: "ICRA", Year: 2025, ID: "icra25", Deadline: "2024/9/15 23:59", Sub: "RO"},
		},
	)
	t.Setenv("CONFMAP_DATA_CONFERENCES", ws.Data)
	t.Setenv("CONFMAP_DATA_MASTER", ws.Masters)

	app, err := New("dev", "", "", "")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	var out bytes.Buffer
	root := app.createRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"list", "--sub", "ML", "-o", "json", "-q"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	var got []map[string]any
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if len(got) != 1 || got[0]["id"] != "icml25" {
		t.Errorf("list --sub ML = %v, want only icml25", got)
	}
	if app.Config().Format != "json" {
		t.Errorf("Format = %s, want json from -o", app.Config().Format)
	}
}
