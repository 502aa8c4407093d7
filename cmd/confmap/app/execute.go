package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/confmap/cmd/confmap/cmd/apply"
	"github.com/agentstation/confmap/cmd/confmap/cmd/completion"
	"github.com/agentstation/confmap/cmd/confmap/cmd/list"
	"github.com/agentstation/confmap/cmd/confmap/cmd/masterdata"
	"github.com/agentstation/confmap/cmd/confmap/cmd/search"
	cmdsync "github.com/agentstation/confmap/cmd/confmap/cmd/sync"
	"github.com/agentstation/confmap/cmd/confmap/cmd/validate"
	"github.com/agentstation/confmap/internal/cmd/globals"
)

// Execute runs the confmap CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "confmap",
		Short:   "Conference deadline dataset maintenance",
		Version: a.version,
		Long: `Confmap keeps a dataset of conference submission deadlines up to date.

It searches WikiCFP for every conference of the curated master list, looks
up CORE rankings and merges a third-party deadline feed. Existing values are
never overwritten; differing values are reported as conflicts for review.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	globals.AddFlags(rootCmd)
	rootCmd.PersistentFlags().StringVar(&a.config.ConfigFile, "config", "", "config file (default is ./confmap.yaml or ~/.confmap/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("confmap {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("config") {
		config, err := LoadConfig(a.config.ConfigFile)
		if err != nil {
			return err
		}
		a.config = config
		a.mu.Lock()
		a.client = nil
		a.mu.Unlock()
	}

	flags, err := globals.Parse(cmd)
	if err != nil {
		return err
	}
	a.config.UpdateFromFlags(flags.Verbose, flags.Quiet, flags.NoColor, flags.Output, mustGetString(cmd, "log-level"))

	a.setLogger(NewLogger(a.config))
	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(cmdsync.NewCommand(a))
	rootCmd.AddCommand(list.NewCommand(a))
	rootCmd.AddCommand(search.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(masterdata.NewCommand(a))
	rootCmd.AddCommand(apply.NewCommand(a))
	rootCmd.AddCommand(validate.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.NewVersionCommand())
	rootCmd.AddCommand(completion.NewCommand())
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("confmap %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}

// ExitOnError is a helper that prints an error and exits with status 1.
// This is meant to be used in main.go for top-level error handling.
func ExitOnError(err error) {
	if err != nil {
		//nolint:errcheck // Ignoring write error since we're exiting anyway
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetString retrieves a string flag value or panics if the flag doesn't exist.
// This should only be used for flags defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
