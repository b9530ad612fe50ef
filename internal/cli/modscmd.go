package cli

import (
	"github.com/spf13/cobra"

	"github.com/trnamod/trnamod/internal/mods"
	"github.com/trnamod/trnamod/internal/report"
	"github.com/trnamod/trnamod/internal/sprinzl"
)

// NewModsCommand creates the mods command.
func NewModsCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		position string
		name     string
	)

	cmd := &cobra.Command{
		Use:   "mods",
		Short: "List the modification catalogue",
		Long: `List the effective modification catalogue: the builtin entries plus any
CUE overrides from the configured mods directory.

--position narrows the listing to modifications expected at one Sprinzl
position; --name looks up a single modification by short name or alias.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMods(rootOpts, cmd, position, name)
		},
	}

	cmd.Flags().StringVar(&position, "position", "", "only modifications expected at this Sprinzl position")
	cmd.Flags().StringVar(&name, "name", "", "only the modification with this short name or alias")

	return cmd
}

func runMods(opts *RootOptions, cmd *cobra.Command, position, name string) error {
	formatter := newFormatter(opts, cmd)

	db, err := loadEffectiveCatalogue(opts, formatter)
	if err != nil {
		return err
	}

	entries, err := selectEntries(db, position, name)
	if err != nil {
		return err
	}

	if err := report.WriteCatalogue(formatter.Writer, report.Format(opts.Format), entries); err != nil {
		return WrapExitError(ExitCommandError, "writing catalogue", err)
	}
	return nil
}

// selectEntries applies the optional position and name filters. Both at
// once intersect: the named modification must be expected at the position.
func selectEntries(db *mods.Database, position, name string) ([]*mods.Modification, error) {
	entries := db.All()

	if position != "" {
		pos, err := sprinzl.Parse(position)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "bad --position", err)
		}
		entries = db.ByPosition(pos)
	}

	if name != "" {
		m, ok := db.ByName(name)
		if !ok {
			return nil, NewExitError(ExitCommandError, "no modification named "+name)
		}
		filtered := entries[:0:0]
		for _, e := range entries {
			if e == m {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	return entries, nil
}
