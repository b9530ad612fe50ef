package infernal

import (
	"github.com/trnamod/trnamod/internal/sprinzl"
)

// Hit is one covariance-model search result with enough alignment detail to
// map it onto Sprinzl coordinates. SequenceID names the hit uniquely within
// a batch; TargetName is the source sequence it was found in.
type Hit struct {
	SequenceID string  `json:"sequence_id"`
	TargetName string  `json:"target_name"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Strand     string  `json:"strand"`
	Score      float64 `json:"score"`
	EValue     float64 `json:"e_value"`
	GC         float64 `json:"gc"`

	// Isotype and Anticodon are optional annotations carried through to
	// the analyzer when known.
	Isotype   string `json:"isotype,omitempty"`
	Anticodon string `json:"anticodon,omitempty"`

	// AlignedSeq is the hit's aligned target row and RF the matching
	// consensus annotation, both from the search alignment output. When
	// both are present the alignment trace is derived from them.
	AlignedSeq string `json:"aligned_seq,omitempty"`
	RF         string `json:"rf,omitempty"`

	// Sequence is the raw ungapped hit sequence, used as a fallback when
	// no alignment rows are available: it is assumed already laid out over
	// consensus columns in order.
	Sequence string `json:"sequence,omitempty"`
}

// Trace derives the alignment trace events for the hit.
//
// With aligned rows present, consensus columns come from the RF annotation:
// a gap in the target row at a consensus column is a deletion, a residue at
// a non-consensus column is an insertion after the current column. Without
// rows, the raw sequence is treated as consensus-aligned from column 1, one
// base per column.
func (h *Hit) Trace() ([]sprinzl.TraceEvent, error) {
	if h.AlignedSeq != "" && h.RF != "" {
		return TraceFromAlignment(h.AlignedSeq, h.RF)
	}
	var events []sprinzl.TraceEvent
	for i := 0; i < len(h.Sequence) && i < sprinzl.MaxNumber; i++ {
		events = append(events, sprinzl.TraceEvent{
			Kind:   sprinzl.EventMatch,
			Column: i + 1,
			Base:   upperBase(h.Sequence[i]),
		})
	}
	return events, nil
}

// TraceFromAlignment walks an aligned target row against its RF consensus
// annotation. RF marks consensus columns with residue characters and insert
// columns with '.'; the target row uses '-', '.' or '~' for gaps.
func TraceFromAlignment(alignedSeq, rf string) ([]sprinzl.TraceEvent, error) {
	if len(alignedSeq) != len(rf) {
		return nil, &AlignError{Message: "aligned row and RF annotation differ in length"}
	}

	var events []sprinzl.TraceEvent
	col := 0
	for i := 0; i < len(rf); i++ {
		consensus := !isGapChar(rf[i])
		residue := !isGapChar(alignedSeq[i])
		switch {
		case consensus && residue:
			col++
			events = append(events, sprinzl.TraceEvent{Kind: sprinzl.EventMatch, Column: col, Base: upperBase(alignedSeq[i])})
		case consensus:
			col++
			events = append(events, sprinzl.TraceEvent{Kind: sprinzl.EventDelete, Column: col})
		case residue:
			events = append(events, sprinzl.TraceEvent{Kind: sprinzl.EventInsert, Column: col, Base: upperBase(alignedSeq[i])})
		}
	}
	return events, nil
}

func isGapChar(c byte) bool {
	switch c {
	case '-', '.', '~', '_':
		return true
	}
	return false
}

func upperBase(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

// AlignError reports a malformed alignment row pair.
type AlignError struct {
	Message string
}

func (e *AlignError) Error() string {
	return "alignment: " + e.Message
}
