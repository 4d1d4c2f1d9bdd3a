package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/commentdash/internal/config"
)

// ErrConfigExists is returned by config init when the file exists and
// --force is not set.
var ErrConfigExists = errors.New("configuration file already exists, use --force to overwrite")

// NewConfigInitCmd creates the config init command for initializing configuration.
// With --project-dir (or COMMENTDASH_PROJECT_DIR) and without --global it
// creates a project-local .commentdash/ directory with config.yaml and
// .gitignore. Otherwise it creates the global ~/.commentdash/config.yaml.
func NewConfigInitCmd() *cobra.Command {
	var (
		force  bool
		global bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values.

With --project-dir, creates project-local configuration at
$PROJECT/.commentdash/config.yaml with a .gitignore that keeps persisted
view state out of version control. Use --global to force global
configuration initialization.`,
		Example: `  # Create global configuration
  commentdash config init

  # Create project-local configuration
  commentdash --project-dir . config init

  # Create configuration, overwriting existing
  commentdash config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projectDir := ""
			if flagValue, _ := cmd.Flags().GetString(flagProjectDir); flagValue != "" || os.Getenv(config.EnvProjectDir) != "" {
				projectDir = config.ResolveProjectDir(cmd.Context(), flagValue, "")
			}

			if projectDir != "" && !global {
				return initProjectConfig(cmd, projectDir, force)
			}
			return initGlobalConfig(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")
	cmd.Flags().BoolVar(&global, "global", false, "force global configuration init even with a project directory")

	return cmd
}

// checkWritable refuses to overwrite an existing config unless forced.
func checkWritable(path string, force bool) error {
	if force {
		return nil
	}
	_, err := os.Stat(path)
	if err == nil {
		return ErrConfigExists
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("cannot access config path %s: %w", path, err)
	}
	return nil
}

// initProjectConfig creates project-local config at projectDir/config.yaml with .gitignore.
func initProjectConfig(cmd *cobra.Command, projectDir string, force bool) error {
	configPath := filepath.Join(projectDir, config.ConfigFileName)
	if err := checkWritable(configPath, force); err != nil {
		return err
	}

	if err := os.MkdirAll(projectDir, 0o750); err != nil {
		return fmt.Errorf("failed to create project config directory: %w", err)
	}

	cfg := config.Default()
	cfg.SetConfigPath(configPath)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	created, err := config.EnsureGitignore(projectDir)
	if err != nil {
		return fmt.Errorf("failed to create .gitignore: %w", err)
	}

	cmd.Printf("Configuration initialized at %s\n", configPath)
	if created {
		cmd.Printf("Created .gitignore to protect user-specific data\n")
	}
	return nil
}

// initGlobalConfig creates global config at ~/.commentdash/config.yaml.
func initGlobalConfig(cmd *cobra.Command, force bool) error {
	cfg := config.Default()
	path, _ := cmd.Flags().GetString(flagConfig)
	if path == "" {
		dir, err := config.GetConfigDir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, config.ConfigFileName)
	}
	cfg.SetConfigPath(path)

	if err := checkWritable(path, force); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", cfg.ConfigPath())
	return nil
}

// NewConfigShowCmd creates the config show command, which prints the
// effective configuration after the project overlay, environment, and flags.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeStructured(cmd.OutOrStdout(), OutputYAML, config.GetGlobalConfig())
		},
	}
}

// NewConfigGetCmd creates the config get command.
func NewConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print one configuration value",
		Example: `  commentdash config get source.base_url
  commentdash config get view`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := config.GetGlobalConfig().Get(args[0])
			if err != nil {
				return &ExitError{Code: ExitUsage, Err: err}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		},
	}
}

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the effective configuration: config version, source timeout,
cache TTL, store backend, and view page sizes. All problems are reported
at once.`,
		Example: `  # Validate current configuration
  commentdash config validate

  # Validate and show detailed information
  commentdash config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			if err := cfg.Validate(); err != nil {
				return &ExitError{Code: ExitConfig, Err: fmt.Errorf("configuration validation failed: %w", err)}
			}

			cmd.Printf("Configuration is valid\n")
			if verbose {
				printVerboseDetails(cmd, cfg)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")
	return cmd
}

func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	storePath, err := cfg.StorePath()
	if err != nil {
		storePath = "unavailable: " + err.Error()
	}

	cmd.Printf("\nConfiguration details:\n")
	cmd.Printf("  Config file:  %s\n", cfg.ConfigPath())
	cmd.Printf("  Base URL:     %s\n", cfg.Source.BaseURL)
	cmd.Printf("  Store:        %s (%s)\n", cfg.Store.Backend, storePath)
	cmd.Printf("  Cache:        %t\n", cfg.Cache.Enabled)
	cmd.Printf("  Page size:    %d of %v\n", cfg.View.DefaultPageSize, cfg.View.PageSizeOptions)
	cmd.Printf("  Log level:    %s\n", cfg.Logging.Level)
}
