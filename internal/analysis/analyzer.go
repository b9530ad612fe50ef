package analysis

import (
	"github.com/trnamod/trnamod/internal/mods"
	"github.com/trnamod/trnamod/internal/sprinzl"
)

// Analyze scores one mapped sequence against the catalogue.
//
// Per covered position with an observed base: expectations are looked up
// (filtered by isotype when set); positions with no expectation contribute
// nothing to the denominator. A position counts as a single incompatible
// position when at least one of its expected modifications is violated,
// so positions with several isotype-specific alternatives are never
// double-penalized. Score = 1 - incompatible/scored; with zero scored
// positions the verdict is explicitly not scorable.
//
// Bases the mapper carried but the RNA alphabet rejects (ambiguity codes)
// are skipped: such a position is neither scored nor penalized.
func Analyze(db *mods.Database, mapping *sprinzl.Mapping, sequenceID string, opts Options) *Verdict {
	v := &Verdict{SequenceID: sequenceID}

	for _, entry := range mapping.Entries {
		switch entry.Status {
		case sprinzl.StatusMissing:
			v.Missing = append(v.Missing, entry.Pos)
			continue
		case sprinzl.StatusUnmapped:
			v.UnmappedInsertions++
			continue
		case sprinzl.StatusNotCovered:
			continue
		}

		base, err := mods.ParseBase(entry.Base)
		if err != nil {
			continue
		}
		v.Covered = append(v.Covered, PositionBase{Pos: entry.Pos, Base: base})

		expected := expectationsAt(db, entry.Pos, opts.Isotype)
		if len(expected) == 0 {
			continue
		}

		check := Check{Pos: entry.Pos, Observed: base}
		violated := 0
		for _, m := range expected {
			check.Expected = append(check.Expected, m.ShortName)
			if m.CompatibleWith(base) {
				continue
			}
			violated++
			v.Incompatibilities = append(v.Incompatibilities, Incompatibility{
				Pos:          entry.Pos,
				Modification: m.ShortName,
				Observed:     base,
				Parent:       m.Parent,
				Incompatible: m.Incompatible,
				Conservation: m.Conservation,
			})
		}
		check.Consistent = violated == 0

		v.ScoredPositions++
		if violated > 0 {
			v.IncompatiblePositions++
		}
		v.Checks = append(v.Checks, check)
	}

	if v.ScoredPositions > 0 {
		v.Scorable = true
		v.Score = 1 - float64(v.IncompatiblePositions)/float64(v.ScoredPositions)
		v.Odd = v.Score < opts.Threshold
	}
	return v
}

// expectationsAt returns the catalogue entries expected at pos that apply
// to the isotype, preserving catalogue order.
func expectationsAt(db *mods.Database, pos sprinzl.Position, isotype string) []*mods.Modification {
	all := db.ByPosition(pos)
	if isotype == "" {
		return all
	}
	var out []*mods.Modification
	for _, m := range all {
		if m.AppliesTo(isotype) {
			out = append(out, m)
		}
	}
	return out
}
