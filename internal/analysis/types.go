package analysis

import (
	"github.com/trnamod/trnamod/internal/mods"
	"github.com/trnamod/trnamod/internal/sprinzl"
)

// Incompatibility records one violated modification expectation: the
// observed base at a position is in the expected modification's
// incompatible-base set.
//
// Conservation is carried through unchanged so presentation layers can
// re-weight by class without re-deriving compatibility; the score itself
// never weights by it.
type Incompatibility struct {
	Pos          sprinzl.Position  `json:"position"`
	Modification string            `json:"modification"`
	Observed     mods.Base         `json:"observed"`
	Parent       mods.Base         `json:"parent"`
	Incompatible mods.BaseSet      `json:"incompatible"`
	Conservation mods.Conservation `json:"conservation"`
}

// Check is the outcome for one covered position that has at least one
// expected modification.
type Check struct {
	Pos        sprinzl.Position `json:"position"`
	Observed   mods.Base        `json:"observed"`
	Expected   []string         `json:"expected"`
	Consistent bool             `json:"consistent"`
}

// PositionBase is an observed base at a mapped position.
type PositionBase struct {
	Pos  sprinzl.Position `json:"position"`
	Base mods.Base        `json:"base"`
}

// Verdict is the per-sequence compatibility result.
//
// Score is only meaningful when Scorable is true. A sequence where no
// covered position carries an expectation is explicitly not scorable,
// never coerced to 0 or 1.
type Verdict struct {
	SequenceID string `json:"sequence_id"`

	Scorable bool    `json:"scorable"`
	Score    float64 `json:"score"`
	Odd      bool    `json:"odd"`

	ScoredPositions       int `json:"scored_positions"`
	IncompatiblePositions int `json:"incompatible_positions"`

	Checks            []Check           `json:"checks,omitempty"`
	Incompatibilities []Incompatibility `json:"incompatibilities,omitempty"`

	// Covered lists every aligned position with its observed base,
	// including positions without expectations. The modkit reconciler
	// joins on this.
	Covered []PositionBase `json:"covered,omitempty"`

	// Missing lists deleted consensus positions; they contribute no base
	// and are excluded from the scoring denominator.
	Missing []sprinzl.Position `json:"missing,omitempty"`

	// UnmappedInsertions counts inserted bases with no registered
	// insertion point; surfaced so reporting never silently loses
	// sequence.
	UnmappedInsertions int `json:"unmapped_insertions,omitempty"`
}

// Options steers one analysis.
type Options struct {
	// Threshold is the odd cutoff: a scorable verdict with Score below it
	// is flagged odd. The analyzer never hardcodes a default; the CLI
	// layer owns that.
	Threshold float64

	// Isotype restricts isotype-specific expectations to the given
	// isoacceptor type. Empty means all expectations apply.
	Isotype string
}
