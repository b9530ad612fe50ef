package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/trnamod/trnamod/internal/mods"
	"github.com/trnamod/trnamod/internal/sprinzl"
)

// WriteCatalogue renders catalogue entries in the order given.
func WriteCatalogue(w io.Writer, f Format, entries []*mods.Modification) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, entries)
	case FormatTSV:
		return writeCatalogueTSV(w, entries)
	default:
		return writeCatalogueText(w, entries)
	}
}

func writeCatalogueText(w io.Writer, entries []*mods.Modification) error {
	for _, m := range entries {
		if _, err := fmt.Fprintf(w, "%s (%s)\n", m.ShortName, m.Name); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  parent %s, incompatible with %s\n", m.Parent, m.Incompatible); err != nil {
			return err
		}
		line := fmt.Sprintf("  positions %s, %s", joinPositions(m.Positions), m.Conservation)
		if len(m.Isotypes) > 0 {
			line += " (" + strings.Join(m.Isotypes, ", ") + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeCatalogueTSV(w io.Writer, entries []*mods.Modification) error {
	if _, err := fmt.Fprintln(w, "short_name\tname\tparent\tincompatible\tpositions\tconservation\tisotypes"); err != nil {
		return err
	}
	for _, m := range entries {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			m.ShortName, m.Name, m.Parent, m.Incompatible,
			joinPositions(m.Positions), m.Conservation, strings.Join(m.Isotypes, ",")); err != nil {
			return err
		}
	}
	return nil
}

func joinPositions(positions []sprinzl.Position) string {
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = p.String()
	}
	return strings.Join(parts, ",")
}
