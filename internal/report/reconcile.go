package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/trnamod/trnamod/internal/modkit"
)

// WriteReconciliation renders per-sequence agreement reports.
func WriteReconciliation(w io.Writer, f Format, reports []*modkit.Report) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, reports)
	case FormatTSV:
		return writeReconciliationTSV(w, reports)
	default:
		return writeReconciliationText(w, reports)
	}
}

func writeReconciliationText(w io.Writer, reports []*modkit.Report) error {
	for _, r := range reports {
		if _, err := fmt.Fprintf(w, "%s: %d agree, %d expected-only, %d observed-only\n",
			r.SequenceID,
			r.Counts[modkit.ExpectedAndObserved.String()],
			r.Counts[modkit.ExpectedButAbsent.String()],
			r.Counts[modkit.ObservedButUnexpected.String()]); err != nil {
			return err
		}
		for _, pa := range r.Positions {
			if pa.Agreement == modkit.NeitherSideHasSignal {
				continue
			}
			line := fmt.Sprintf("  %s %s", pa.Pos, pa.Agreement)
			if len(pa.Expected) > 0 {
				line += " expected=" + strings.Join(pa.Expected, ",")
			}
			if pa.Call != nil {
				line += fmt.Sprintf(" call=%s p=%.2f", pa.Call.Code, pa.Call.Probability)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		for _, call := range r.Unmatched {
			if _, err := fmt.Fprintf(w, "  %s unmatched call=%s p=%.2f\n", call.Pos, call.Code, call.Probability); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeReconciliationTSV(w io.Writer, reports []*modkit.Report) error {
	if _, err := fmt.Fprintln(w, "sequence_id\tposition\tagreement\texpected\tcall_code\tcall_probability"); err != nil {
		return err
	}
	for _, r := range reports {
		for _, pa := range r.Positions {
			code, prob := "", ""
			if pa.Call != nil {
				code = pa.Call.Code
				prob = fmt.Sprintf("%.2f", pa.Call.Probability)
			}
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				r.SequenceID, pa.Pos, pa.Agreement,
				strings.Join(pa.Expected, ","), code, prob); err != nil {
				return err
			}
		}
	}
	return nil
}
