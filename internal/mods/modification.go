package mods

import (
	"github.com/trnamod/trnamod/internal/sprinzl"
)

// Conservation classifies how broadly a modification is expected at its
// positions.
type Conservation int

const (
	// Universal modifications appear in virtually all tRNAs at their
	// positions (e.g. Psi55, m5U54).
	Universal Conservation = iota
	// IsotypeSpecific modifications appear only in certain isoacceptor
	// types (e.g. inosine 34 in tRNA-Ala).
	IsotypeSpecific
	// Variable modifications appear in a subset of tRNAs with no strict
	// rule.
	Variable
)

func (c Conservation) String() string {
	switch c {
	case Universal:
		return "universal"
	case IsotypeSpecific:
		return "isotype-specific"
	case Variable:
		return "variable"
	default:
		return "unknown"
	}
}

// ParseConservation reads a conservation class from its catalogue spelling.
func ParseConservation(s string) (Conservation, bool) {
	switch s {
	case "universal":
		return Universal, true
	case "isotype-specific", "isotype":
		return IsotypeSpecific, true
	case "variable":
		return Variable, true
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler.
func (c Conservation) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Conservation) UnmarshalText(data []byte) error {
	parsed, ok := ParseConservation(string(data))
	if !ok {
		return &BuildError{Code: ErrCodeBadConservation, Message: "unknown conservation class " + string(data)}
	}
	*c = parsed
	return nil
}

// Modification is one known RNA modification and the constraints it imposes.
//
// Parent is the base the modification is chemically derived from; it is what
// sequencing of an unmodified or modified residue reads out. Incompatible is
// the set of bases that, if observed at an expected position, preclude the
// modification. The parent is never a member of its own incompatible set,
// and Incompatible is never empty (a modification no base can disqualify
// carries no signal).
type Modification struct {
	// ShortName is the catalogue key, e.g. "Psi" or "m1A".
	ShortName string `json:"short_name"`
	// Name is the full chemical name, e.g. "pseudouridine".
	Name string `json:"name"`
	// Parent is the base the modification derives from.
	Parent Base `json:"parent"`
	// Incompatible holds the disqualifying bases.
	Incompatible BaseSet `json:"incompatible"`
	// Positions lists the Sprinzl positions where this modification is
	// expected, in ascending order.
	Positions []sprinzl.Position `json:"positions"`
	// Conservation classifies how broadly the expectation holds.
	Conservation Conservation `json:"conservation"`
	// Isotypes restricts the expectation to the named isoacceptor types;
	// empty means all.
	Isotypes []string `json:"isotypes,omitempty"`
	// ChEBI is the ChEBI ontology id, 0 when unknown.
	ChEBI int `json:"chebi,omitempty"`
	// Code is the MODOMICS single-character code, empty when none.
	Code string `json:"code,omitempty"`
}

// CompatibleWith reports whether an observed base does not preclude the
// modification.
func (m *Modification) CompatibleWith(b Base) bool {
	return !m.Incompatible.Contains(b)
}

// AppliesTo reports whether the expectation covers the given isotype. An
// empty isotype or an unrestricted modification always applies.
func (m *Modification) AppliesTo(isotype string) bool {
	if isotype == "" || len(m.Isotypes) == 0 {
		return true
	}
	for _, iso := range m.Isotypes {
		if iso == isotype {
			return true
		}
	}
	return false
}

// ExpectedAt reports whether pos is one of the modification's expected
// positions.
func (m *Modification) ExpectedAt(pos sprinzl.Position) bool {
	for _, p := range m.Positions {
		if p == pos {
			return true
		}
	}
	return false
}
