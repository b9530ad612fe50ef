package sprinzl

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxNumber is the highest canonical Sprinzl position (the 3' CCA end).
const MaxNumber = 76

// Position is a canonical Sprinzl coordinate: a position number 1-76 plus an
// optional insertion ordinal. Ordinal 0 means the unlettered canonical
// position; ordinal 1 is the first insertion after it ("17a"), ordinal 2 the
// second ("17b"), and so on. Ordinals are unbounded so pathological
// alignments cannot exhaust the scheme.
//
// The zero value is not a valid position; use New or NewInsertion.
type Position struct {
	Number  int
	Ordinal int
}

// New returns the canonical (unlettered) position for n.
func New(n int) (Position, error) {
	if n < 1 || n > MaxNumber {
		return Position{}, fmt.Errorf("sprinzl position %d out of range 1-%d", n, MaxNumber)
	}
	return Position{Number: n}, nil
}

// MustNew is New for static positions known to be in range. Panics on error.
func MustNew(n int) Position {
	p, err := New(n)
	if err != nil {
		panic(err)
	}
	return p
}

// NewInsertion returns the ord-th insertion position after canonical
// position n (ord 1 renders as "a").
func NewInsertion(n, ord int) (Position, error) {
	if n < 1 || n > MaxNumber {
		return Position{}, fmt.Errorf("sprinzl position %d out of range 1-%d", n, MaxNumber)
	}
	if ord < 1 {
		return Position{}, fmt.Errorf("insertion ordinal %d must be >= 1", ord)
	}
	return Position{Number: n, Ordinal: ord}, nil
}

// Parse reads a position from its string form: "17", "17a", or "17.27" for
// ordinals past 'z'.
func Parse(s string) (Position, error) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return Position{}, fmt.Errorf("invalid sprinzl position %q", s)
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return Position{}, fmt.Errorf("invalid sprinzl position %q", s)
	}
	rest := s[i:]
	switch {
	case rest == "":
		return New(n)
	case len(rest) == 1 && rest[0] >= 'a' && rest[0] <= 'z':
		return NewInsertion(n, int(rest[0]-'a')+1)
	case strings.HasPrefix(rest, "."):
		ord, err := strconv.Atoi(rest[1:])
		if err != nil {
			return Position{}, fmt.Errorf("invalid sprinzl position %q", s)
		}
		return NewInsertion(n, ord)
	default:
		return Position{}, fmt.Errorf("invalid sprinzl position %q", s)
	}
}

// MustParse is Parse for literals known to be valid. Panics on error.
func MustParse(s string) Position {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// IsInsertion reports whether p is a lettered insertion position.
func (p Position) IsInsertion() bool {
	return p.Ordinal > 0
}

// Valid reports whether p is a constructible position.
func (p Position) Valid() bool {
	return p.Number >= 1 && p.Number <= MaxNumber && p.Ordinal >= 0
}

// Compare orders positions numerically, with the unlettered position before
// all its insertions and insertions ordered by ordinal: 17 < 17a < 17b < 18.
func (p Position) Compare(q Position) int {
	if p.Number != q.Number {
		if p.Number < q.Number {
			return -1
		}
		return 1
	}
	if p.Ordinal != q.Ordinal {
		if p.Ordinal < q.Ordinal {
			return -1
		}
		return 1
	}
	return 0
}

// Less reports whether p orders before q.
func (p Position) Less(q Position) bool {
	return p.Compare(q) < 0
}

// String renders the position: ordinals 1-26 as letters ("17a".."17z"),
// larger ordinals in dotted form ("17.27").
func (p Position) String() string {
	if p.Ordinal == 0 {
		return strconv.Itoa(p.Number)
	}
	if p.Ordinal <= 26 {
		return strconv.Itoa(p.Number) + string(rune('a'+p.Ordinal-1))
	}
	return fmt.Sprintf("%d.%d", p.Number, p.Ordinal)
}

// MarshalText implements encoding.TextMarshaler so positions serialize as
// their Sprinzl string form in JSON objects and keys.
func (p Position) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Position) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
