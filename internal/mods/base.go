package mods

import "fmt"

// Base is one of the four RNA nucleotide bases. The set is closed: ambiguous
// bases (N, IUPAC codes) are rejected upstream and never reach this layer.
type Base byte

const (
	BaseA Base = 'A'
	BaseC Base = 'C'
	BaseG Base = 'G'
	BaseU Base = 'U'
)

// Bases lists the four bases in canonical order.
var Bases = [4]Base{BaseA, BaseC, BaseG, BaseU}

// ParseBase reads a base from a sequence character. DNA T maps to U; case is
// ignored. Anything else is an error.
func ParseBase(c byte) (Base, error) {
	switch c {
	case 'A', 'a':
		return BaseA, nil
	case 'C', 'c':
		return BaseC, nil
	case 'G', 'g':
		return BaseG, nil
	case 'U', 'u', 'T', 't':
		return BaseU, nil
	default:
		return 0, fmt.Errorf("not an RNA base: %q", c)
	}
}

// Valid reports whether b is one of the four bases.
func (b Base) Valid() bool {
	switch b {
	case BaseA, BaseC, BaseG, BaseU:
		return true
	}
	return false
}

// Complement returns the Watson-Crick complement.
func (b Base) Complement() Base {
	switch b {
	case BaseA:
		return BaseU
	case BaseC:
		return BaseG
	case BaseG:
		return BaseC
	default:
		return BaseA
	}
}

// DNA returns the DNA equivalent character (U renders as T).
func (b Base) DNA() byte {
	if b == BaseU {
		return 'T'
	}
	return byte(b)
}

func (b Base) String() string {
	return string(rune(b))
}

// MarshalText implements encoding.TextMarshaler.
func (b Base) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("invalid base %q", byte(b))
	}
	return []byte{byte(b)}, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Base) UnmarshalText(data []byte) error {
	if len(data) != 1 {
		return fmt.Errorf("invalid base %q", data)
	}
	parsed, err := ParseBase(data[0])
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// BaseSet is a set over the four bases.
type BaseSet uint8

func baseBit(b Base) BaseSet {
	switch b {
	case BaseA:
		return 1
	case BaseC:
		return 2
	case BaseG:
		return 4
	case BaseU:
		return 8
	}
	return 0
}

// NewBaseSet builds a set from the given bases.
func NewBaseSet(bases ...Base) BaseSet {
	var s BaseSet
	for _, b := range bases {
		s |= baseBit(b)
	}
	return s
}

// AllExcept returns the set of every base other than b.
func AllExcept(b Base) BaseSet {
	return NewBaseSet(BaseA, BaseC, BaseG, BaseU) &^ baseBit(b)
}

// Contains reports set membership.
func (s BaseSet) Contains(b Base) bool {
	return s&baseBit(b) != 0
}

// Empty reports whether the set has no members.
func (s BaseSet) Empty() bool {
	return s == 0
}

// Bases returns the members in canonical order.
func (s BaseSet) Bases() []Base {
	var out []Base
	for _, b := range Bases {
		if s.Contains(b) {
			out = append(out, b)
		}
	}
	return out
}

func (s BaseSet) String() string {
	buf := make([]byte, 0, 4)
	for _, b := range Bases {
		if s.Contains(b) {
			buf = append(buf, byte(b))
		}
	}
	return string(buf)
}

// MarshalText renders the set as its member characters ("ACG").
func (s BaseSet) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a string of base characters.
func (s *BaseSet) UnmarshalText(data []byte) error {
	var set BaseSet
	for _, c := range data {
		b, err := ParseBase(c)
		if err != nil {
			return err
		}
		set |= baseBit(b)
	}
	*s = set
	return nil
}
