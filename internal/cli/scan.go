package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trnamod/trnamod/internal/infernal"
	"github.com/trnamod/trnamod/internal/report"
)

// NewScanCommand creates the scan command.
func NewScanCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		cmPath string
		evalue float64
		cpu    int
		tblout string
	)

	cmd := &cobra.Command{
		Use:   "scan <fasta>",
		Short: "Find tRNA hits with a covariance model search",
		Long: `Run cmsearch over a FASTA file and list the resulting tRNA hits.

Requires Infernal's cmsearch on PATH and a covariance model (--cm or the
cm config key). With --tblout, parses an existing cmsearch table instead
of launching a search.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(rootOpts, cmd, args[0], cmPath, evalue, cpu, tblout)
		},
	}

	cmd.Flags().StringVar(&cmPath, "cm", "", "covariance model file")
	cmd.Flags().Float64VarP(&evalue, "evalue", "E", 1e-5, "E-value reporting threshold")
	cmd.Flags().IntVar(&cpu, "cpu", 0, "worker CPUs for cmsearch (0 = all)")
	cmd.Flags().StringVar(&tblout, "tblout", "", "parse an existing cmsearch --tblout file instead of searching")

	return cmd
}

func runScan(opts *RootOptions, cmd *cobra.Command, fastaPath, cmPath string, evalue float64, cpu int, tblout string) error {
	formatter := newFormatter(opts, cmd)

	hits, err := collectHits(opts, cmd, fastaPath, cmPath, evalue, cpu, tblout, formatter)
	if err != nil {
		return err
	}

	formatter.VerboseLog("%d hit(s)", len(hits))
	return writeHits(formatter, report.Format(opts.Format), hits)
}

// collectHits either parses a prior tblout file or launches cmsearch.
func collectHits(opts *RootOptions, cmd *cobra.Command, fastaPath, cmPath string, evalue float64, cpu int, tblout string, formatter *OutputFormatter) ([]infernal.Hit, error) {
	if tblout != "" {
		f, err := os.Open(tblout)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "opening tblout", err)
		}
		defer f.Close()

		hits, skipped, err := infernal.ParseTblout(f)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "parsing tblout", err)
		}
		if skipped > 0 {
			formatter.VerboseLog("skipped %d malformed tblout line(s)", skipped)
		}
		return hits, nil
	}

	if cmPath == "" {
		cmPath = opts.CMPath
	}
	if cmPath == "" {
		return nil, NewExitError(ExitCommandError, "no covariance model: pass --cm or set cm in "+ConfigFileName)
	}

	runner := infernal.NewRunner().WithCM(cmPath).WithEValue(evalue)
	if cpu > 0 {
		runner = runner.WithCPU(cpu)
	}
	hits, err := runner.Search(cmd.Context(), fastaPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "cmsearch", err)
	}
	return hits, nil
}

func writeHits(formatter *OutputFormatter, f report.Format, hits []infernal.Hit) error {
	switch f {
	case report.FormatJSON:
		return report.WriteJSON(formatter.Writer, hits)
	case report.FormatTSV:
		if _, err := fmt.Fprintln(formatter.Writer, "sequence_id\ttarget\tstart\tend\tstrand\tscore\tevalue"); err != nil {
			return err
		}
		for _, h := range hits {
			if _, err := fmt.Fprintf(formatter.Writer, "%s\t%s\t%d\t%d\t%s\t%.1f\t%.2g\n",
				h.SequenceID, h.TargetName, h.Start, h.End, h.Strand, h.Score, h.EValue); err != nil {
				return err
			}
		}
		return nil
	default:
		if len(hits) == 0 {
			_, err := fmt.Fprintln(formatter.Writer, "no hits")
			return err
		}
		for _, h := range hits {
			if _, err := fmt.Fprintf(formatter.Writer, "%s  strand %s  score %.1f  E-value %.2g\n",
				h.SequenceID, h.Strand, h.Score, h.EValue); err != nil {
				return err
			}
		}
		return nil
	}
}
