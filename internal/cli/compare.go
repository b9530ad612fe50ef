package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/trnamod/trnamod/internal/modkit"
	"github.com/trnamod/trnamod/internal/report"
)

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		isotype string
		workers int
		minProb float64
	)

	cmd := &cobra.Command{
		Use:   "compare <fasta> <bedmethyl>",
		Short: "Reconcile catalogue expectations with modkit calls",
		Long: `Analyze sequences as the analyze command does, then join the verdicts
against modkit bedMethyl calls position by position. Each covered position
is classified by whether the catalogue expects a modification there and
whether an external call reports one.

Call probabilities are pass-through; --min-prob drops low-confidence
calls before the join.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(rootOpts, cmd, args[0], args[1], isotype, workers, minProb)
		},
	}

	cmd.Flags().StringVar(&isotype, "isotype", "", "force one isoacceptor type for all sequences")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = GOMAXPROCS)")
	cmd.Flags().Float64Var(&minProb, "min-prob", 0, "drop calls below this probability")

	return cmd
}

func runCompare(opts *RootOptions, cmd *cobra.Command, fastaPath, bedPath, isotype string, workers int, minProb float64) error {
	formatter := newFormatter(opts, cmd)

	batch, err := analyzeFasta(opts, cmd, formatter, fastaPath, isotype, workers)
	if err != nil {
		return err
	}

	f, err := os.Open(bedPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening bedMethyl", err)
	}
	defer f.Close()

	records, skipped, err := modkit.ParseBedMethyl(f)
	if err != nil {
		return WrapExitError(ExitCommandError, "parsing bedMethyl", err)
	}
	if skipped > 0 {
		formatter.VerboseLog("skipped %d malformed bedMethyl line(s)", skipped)
	}

	calls, outside := modkit.CallsFromRecords(records)
	if len(outside) > 0 {
		formatter.VerboseLog("%d call(s) outside canonical positions", len(outside))
	}
	if minProb > 0 {
		kept := calls[:0]
		for _, c := range calls {
			if c.Probability >= minProb {
				kept = append(kept, c)
			}
		}
		calls = kept
	}

	reports, orphans := modkit.ReconcileAll(batch.Verdicts, calls)
	if len(orphans) > 0 {
		formatter.VerboseLog("%d call(s) for unknown sequences", len(orphans))
	}

	if err := report.WriteReconciliation(formatter.Writer, report.Format(opts.Format), reports); err != nil {
		return WrapExitError(ExitCommandError, "writing report", err)
	}
	return nil
}
