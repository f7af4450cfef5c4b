// =============================================================================
// rtsort - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (rtsort)
//   ├── sortCmd (rtsort sort)
//   ├── columnsCmd (rtsort columns)
//   └── versionCmd (rtsort version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose, --log-format)
//   2. Loading the configuration file
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ginjaninja78/rtsort/internal/config"
	"github.com/ginjaninja78/rtsort/internal/logging"
	"github.com/spf13/cobra"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// logFormat overrides the configured log format.
var logFormat string

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "rtsort",
	Short: "Sort channel exports from RT Systems radio programmers",
	Long: `rtsort reorders the channel list exported by an RT Systems radio
programmer, which has no native sort.

The export is read, rows without any channel data are dropped, the rest are
sorted by receive frequency and renumbered from 1. Channels belonging to a
recognized service (for example "FRS/GMRS 1", "FRS/GMRS 2", ...) are moved
into a block at the end, ordered by channel number.

Example Usage:
  rtsort sort ft60.csv ft60_sorted.csv       # Sort an export
  rtsort sort ft60.csv --dry-run             # Report what would be written
  rtsort sort ft60.csv --service FRS/GMRS --service MURS
  rtsort columns ft60.csv                    # Show the columns used for sorting`,

	SilenceUsage:  true,
	SilenceErrors: true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the configuration file (ignored if the default file is absent)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	rootCmd.PersistentFlags().StringVar(
		&logFormat,
		"log-format",
		"",
		"Log format: text or json (overrides the configuration file)",
	)
}

// =============================================================================
// HELPERS
// =============================================================================

// loadConfig loads the configuration file. The default file is optional;
// a file named explicitly with --config must exist.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadOptional(cfgFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if verbose {
		cfg.LogLevel = "debug"
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}

	return cfg, nil
}

// newLogger builds the command logger. Logs go to stderr so that stdout
// stays clean for command output.
func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return logging.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
}
