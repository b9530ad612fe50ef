package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/trnamod/trnamod/internal/analysis"
)

// WriteVerdicts renders per-sequence verdicts in the given format.
func WriteVerdicts(w io.Writer, f Format, verdicts []*analysis.Verdict) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, verdicts)
	case FormatTSV:
		return writeVerdictsTSV(w, verdicts)
	default:
		return writeVerdictsText(w, verdicts)
	}
}

func writeVerdictsText(w io.Writer, verdicts []*analysis.Verdict) error {
	for _, v := range verdicts {
		if !v.Scorable {
			if _, err := fmt.Fprintf(w, "%s: not scorable (no expected modifications covered)\n", v.SequenceID); err != nil {
				return err
			}
			continue
		}

		flag := "ok"
		if v.Odd {
			flag = "ODD"
		}
		if _, err := fmt.Fprintf(w, "%s: score %s (%d scored, %d incompatible) %s\n",
			v.SequenceID, formatScore(true, v.Score), v.ScoredPositions, v.IncompatiblePositions, flag); err != nil {
			return err
		}

		for _, inc := range v.Incompatibilities {
			if _, err := fmt.Fprintf(w, "  %s: expected %s (parent %s), observed %s\n",
				inc.Pos, inc.Modification, inc.Parent, inc.Observed); err != nil {
				return err
			}
		}
		if v.UnmappedInsertions > 0 {
			if _, err := fmt.Fprintf(w, "  %d unmapped insertion(s)\n", v.UnmappedInsertions); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeVerdictsTSV(w io.Writer, verdicts []*analysis.Verdict) error {
	if _, err := fmt.Fprintln(w, "sequence_id\tscorable\tscore\todd\tscored_positions\tincompatible_positions"); err != nil {
		return err
	}
	for _, v := range verdicts {
		if _, err := fmt.Fprintf(w, "%s\t%t\t%s\t%t\t%d\t%d\n",
			v.SequenceID, v.Scorable, formatScore(v.Scorable, v.Score), v.Odd,
			v.ScoredPositions, v.IncompatiblePositions); err != nil {
			return err
		}
	}
	return nil
}

// WriteBatchSummary renders the aggregate line for a batch run. Text
// only; json and tsv consumers aggregate from the verdict rows instead.
func WriteBatchSummary(w io.Writer, b *analysis.BatchResult) error {
	_, err := fmt.Fprintf(w, "%d sequences: %d odd, %d not scorable, %d failed, mean score %s\n",
		b.Total, b.Odd, b.NotScorable, len(b.Failures), formatScore(b.Total > len(b.Failures)+b.NotScorable, b.AverageScore))
	return err
}

// WriteJSON renders any payload as indented JSON with a trailing newline.
func WriteJSON(w io.Writer, data any) error {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}
