package cli

import (
	"github.com/spf13/cobra"

	"github.com/trnamod/trnamod/internal/analysis"
	"github.com/trnamod/trnamod/internal/fasta"
	"github.com/trnamod/trnamod/internal/infernal"
	"github.com/trnamod/trnamod/internal/report"
	"github.com/trnamod/trnamod/internal/sprinzl"
	"github.com/trnamod/trnamod/internal/store"
)

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		isotype string
		workers int
	)

	cmd := &cobra.Command{
		Use:   "analyze <fasta>",
		Short: "Score sequences against the modification catalogue",
		Long: `Map mature tRNA sequences onto Sprinzl coordinates and score each one
against the expected-modification catalogue.

Sequences are taken as consensus-aligned from position 1; isoacceptor
types are read from tRNA naming conventions in the headers unless
--isotype forces one. With --db, the run and its verdicts are recorded.

Exits 1 when any sequence scores below the odd threshold.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(rootOpts, cmd, args[0], isotype, workers)
		},
	}

	cmd.Flags().StringVar(&isotype, "isotype", "", "force one isoacceptor type for all sequences")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = GOMAXPROCS)")

	return cmd
}

func runAnalyze(opts *RootOptions, cmd *cobra.Command, fastaPath, isotype string, workers int) error {
	formatter := newFormatter(opts, cmd)

	batch, err := analyzeFasta(opts, cmd, formatter, fastaPath, isotype, workers)
	if err != nil {
		return err
	}

	if opts.DBPath != "" {
		if err := saveRun(cmd, opts, fastaPath, batch); err != nil {
			return err
		}
	}

	f := report.Format(opts.Format)
	if err := report.WriteVerdicts(formatter.Writer, f, batch.Verdicts); err != nil {
		return WrapExitError(ExitCommandError, "writing report", err)
	}
	if f == report.FormatText {
		if err := report.WriteBatchSummary(formatter.Writer, batch); err != nil {
			return WrapExitError(ExitCommandError, "writing report", err)
		}
	}

	if batch.Odd > 0 || len(batch.Failures) > 0 {
		return &ExitError{Code: ExitFailure, Message: "odd or failed sequences found"}
	}
	return nil
}

// analyzeFasta runs the full pipeline for a FASTA file: read records,
// derive traces, and score the batch against the effective catalogue.
func analyzeFasta(opts *RootOptions, cmd *cobra.Command, formatter *OutputFormatter, fastaPath, isotype string, workers int) (*analysis.BatchResult, error) {
	db, err := loadEffectiveCatalogue(opts, formatter)
	if err != nil {
		return nil, err
	}

	records, err := fasta.ReadFile(fastaPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "reading sequences", err)
	}
	if len(records) == 0 {
		return nil, NewExitError(ExitCommandError, "no sequences in "+fastaPath)
	}

	seqs := make([]analysis.Sequence, 0, len(records))
	for _, rec := range records {
		hit := infernal.Hit{Sequence: string(rec.Seq)}
		events, err := hit.Trace()
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "deriving trace for "+rec.ID, err)
		}
		iso := isotype
		if iso == "" {
			iso = rec.Isotype()
		}
		seqs = append(seqs, analysis.Sequence{ID: rec.ID, Events: events, Isotype: iso})
	}

	batch, err := analysis.AnalyzeBatch(cmd.Context(), sprinzl.Standard(), db, seqs,
		analysis.Options{Threshold: opts.Threshold}, workers)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "analysis aborted", err)
	}

	for _, failure := range batch.Failures {
		formatter.VerboseLog("%s: %s", failure.SequenceID, failure.Message)
	}
	return batch, nil
}

// saveRun records the batch outcome and verdicts in the run database.
func saveRun(cmd *cobra.Command, opts *RootOptions, input string, batch *analysis.BatchResult) error {
	s, err := store.Open(opts.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening run database", err)
	}
	defer s.Close()

	run := store.NewRun(input, opts.Threshold)
	run.Total = batch.Total
	run.Odd = batch.Odd
	run.NotScorable = batch.NotScorable
	run.Failed = len(batch.Failures)

	verdicts := make([]analysis.Verdict, 0, len(batch.Verdicts))
	for _, v := range batch.Verdicts {
		verdicts = append(verdicts, *v)
	}
	if err := s.WriteRunResults(cmd.Context(), run, verdicts); err != nil {
		return WrapExitError(ExitCommandError, "recording run", err)
	}
	return nil
}
