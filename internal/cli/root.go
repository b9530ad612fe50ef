package cli

import (
	"github.com/spf13/cobra"

	"github.com/trnamod/trnamod/internal/report"
)

// RootOptions holds global flags for all commands, after config merge.
type RootOptions struct {
	Verbose    bool
	Format     string // "text" | "json" | "tsv"
	ConfigPath string
	DBPath     string

	// Resolved from config when the corresponding flag is unset.
	Threshold float64
	CMPath    string
	ModsDir   string
}

// NewRootCommand creates the root command for the trnamod CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "trnamod",
		Short: "tRNA modification compatibility analysis",
		Long: `trnamod maps tRNA sequences onto Sprinzl coordinates and scores them
against a catalogue of expected base modifications.

Configuration precedence is flags, then ` + ConfigFileName + `, then defaults.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(opts.ConfigPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "loading config", err)
			}
			mergeConfig(opts, cfg, cmd)

			if _, err := report.ParseFormat(opts.Format); err != nil {
				return WrapExitError(ExitCommandError, "invalid --format", err)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|tsv)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default "+ConfigFileName+")")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "SQLite database for run history")
	cmd.PersistentFlags().Float64Var(&opts.Threshold, "threshold", DefaultThreshold, "odd score cutoff")
	cmd.PersistentFlags().StringVar(&opts.ModsDir, "mods-dir", "", "directory of CUE catalogue overrides")

	// Add subcommands
	cmd.AddCommand(NewScanCommand(opts))
	cmd.AddCommand(NewAnalyzeCommand(opts))
	cmd.AddCommand(NewCompareCommand(opts))
	cmd.AddCommand(NewModsCommand(opts))
	cmd.AddCommand(NewRunsCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

// mergeConfig applies config file values beneath explicitly set flags.
func mergeConfig(opts *RootOptions, cfg *Config, cmd *cobra.Command) {
	flags := cmd.Flags()
	if cfg.Format != "" && !flags.Changed("format") {
		opts.Format = cfg.Format
	}
	if cfg.DB != "" && !flags.Changed("db") {
		opts.DBPath = cfg.DB
	}
	if cfg.Threshold != nil && !flags.Changed("threshold") {
		opts.Threshold = *cfg.Threshold
	}
	if cfg.ModsDir != "" && !flags.Changed("mods-dir") {
		opts.ModsDir = cfg.ModsDir
	}
	if cfg.CM != "" {
		opts.CMPath = cfg.CM
	}
}

// newFormatter builds the standard formatter for a command invocation.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON output
		Verbose:   opts.Verbose,
	}
}
