package report

import (
	"fmt"
	"io"
	"time"

	"github.com/trnamod/trnamod/internal/store"
)

// WriteRuns renders a run listing, newest first as the store returns it.
func WriteRuns(w io.Writer, f Format, runs []store.Run) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, runs)
	case FormatTSV:
		return writeRunsTSV(w, runs)
	default:
		return writeRunsText(w, runs)
	}
}

func writeRunsText(w io.Writer, runs []store.Run) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "no runs recorded")
		return err
	}
	for _, r := range runs {
		if _, err := fmt.Fprintf(w, "%s  %s  %s  %d sequences (%d odd, %d failed)\n",
			r.ID, r.CreatedAt.UTC().Format(time.RFC3339), r.Input,
			r.Total, r.Odd, r.Failed); err != nil {
			return err
		}
	}
	return nil
}

func writeRunsTSV(w io.Writer, runs []store.Run) error {
	if _, err := fmt.Fprintln(w, "id\tcreated_at\tinput\tthreshold\ttotal\todd\tnot_scorable\tfailed"); err != nil {
		return err
	}
	for _, r := range runs {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			r.ID, r.CreatedAt.UTC().Format(time.RFC3339), r.Input,
			formatScore(true, r.Threshold), r.Total, r.Odd, r.NotScorable, r.Failed); err != nil {
			return err
		}
	}
	return nil
}
