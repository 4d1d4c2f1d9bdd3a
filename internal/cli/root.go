package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/commentdash/internal/logging"
)

// Global flag names.
const (
	flagDebug      = "debug"
	flagConfig     = "config"
	flagProjectDir = "project-dir"
	flagStore      = "store"
	flagBaseURL    = "base-url"
	flagNoCache    = "no-cache"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root command. Without a subcommand it opens the
// dashboard.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "commentdash",
		Short:         "Browse, search, and sort comments in the terminal",
		Long:          "commentdash: a terminal dashboard for the JSONPlaceholder comment list",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd, wantsInteractive(cmd))
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd)
		},
	}

	cmd.PersistentFlags().Bool(flagDebug, false, "enable debug logging")
	cmd.PersistentFlags().String(flagConfig, "", "config file (default ~/.commentdash/config.yaml)")
	cmd.PersistentFlags().String(flagProjectDir, "", "project directory whose .commentdash/config.yaml overlays the config")
	cmd.PersistentFlags().String(flagStore, "", "state backend: file, sqlite, or memory (overrides config)")
	cmd.PersistentFlags().String(flagBaseURL, "", "API base URL (overrides config)")
	cmd.PersistentFlags().Bool(flagNoCache, false, "bypass the response cache")

	cmd.AddCommand(
		NewDashboardCmd(),
		NewListCmd(),
		NewShowCmd(),
		newStateCmd(),
		newConfigCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Open the dashboard (restores the last search, sort, and page)
  commentdash

  # Print page 2 of comments sorted by email, 50 per page
  commentdash list --sort email:asc --page 2 --page-size 50

  # Search and emit JSON with pagination metadata
  commentdash list --search "laudantium" -o json

  # Show the selected comment
  commentdash show

  # Use SQLite for persisted state
  commentdash --store sqlite

  # Clear persisted view state and selection
  commentdash state reset`

// newStateCmd creates the state command group.
func newStateCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "state", Short: "Inspect or clear persisted view state"}
	cmd.AddCommand(NewStateShowCmd(), NewStateResetCmd())
	return cmd
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigShowCmd(), NewConfigGetCmd(), NewConfigValidateCmd(),
	)
	return cmd
}
