package cli

import (
	"github.com/spf13/cobra"

	"github.com/trnamod/trnamod/internal/analysis"
	"github.com/trnamod/trnamod/internal/report"
	"github.com/trnamod/trnamod/internal/store"
)

// NewRunsCommand creates the runs command group.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect recorded analysis runs",
	}

	cmd.AddCommand(newRunsListCommand(rootOpts))
	cmd.AddCommand(newRunsShowCommand(rootOpts))

	return cmd
}

func newRunsListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List runs, newest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRunsList(rootOpts, cmd)
		},
	}
}

func newRunsShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <run-id>",
		Short:         "Show the verdicts recorded under a run",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRunsShow(rootOpts, cmd, args[0])
		},
	}
}

// openRunStore opens the configured run database for reading.
func openRunStore(opts *RootOptions) (*store.Store, error) {
	if opts.DBPath == "" {
		return nil, NewExitError(ExitCommandError, "no run database: pass --db or set db in "+ConfigFileName)
	}
	s, err := store.Open(opts.DBPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "opening run database", err)
	}
	return s, nil
}

func runRunsList(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	s, err := openRunStore(opts)
	if err != nil {
		return err
	}
	defer s.Close()

	runs, err := s.ListRuns(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "listing runs", err)
	}

	if err := report.WriteRuns(formatter.Writer, report.Format(opts.Format), runs); err != nil {
		return WrapExitError(ExitCommandError, "writing runs", err)
	}
	return nil
}

func runRunsShow(opts *RootOptions, cmd *cobra.Command, runID string) error {
	formatter := newFormatter(opts, cmd)

	s, err := openRunStore(opts)
	if err != nil {
		return err
	}
	defer s.Close()

	run, err := s.GetRun(cmd.Context(), runID)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading run", err)
	}

	rows, err := s.VerdictsForRun(cmd.Context(), run.ID)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading verdicts", err)
	}

	f := report.Format(opts.Format)
	if f == report.FormatJSON {
		return report.WriteJSON(formatter.Writer, struct {
			Run      store.Run          `json:"run"`
			Verdicts []store.VerdictRow `json:"verdicts"`
		}{run, rows})
	}

	if err := report.WriteRuns(formatter.Writer, f, []store.Run{run}); err != nil {
		return WrapExitError(ExitCommandError, "writing run", err)
	}
	vs := make([]*analysis.Verdict, 0, len(rows))
	for i := range rows {
		vs = append(vs, &rows[i].Verdict)
	}
	if err := report.WriteVerdicts(formatter.Writer, f, vs); err != nil {
		return WrapExitError(ExitCommandError, "writing verdicts", err)
	}
	return nil
}
