package mods

import (
	"github.com/trnamod/trnamod/internal/sprinzl"
)

// Eukaryotic returns the builtin catalogue of twelve well-characterized
// eukaryotic tRNA modifications with their MODOMICS codes, ChEBI ids and
// position expectations.
//
// The catalogue is rebuilt on each call so callers can merge overrides into
// their own copy without sharing.
func Eukaryotic() *Database {
	db, err := NewDatabase(eukaryoticEntries())
	if err != nil {
		// The builtin catalogue is static and covered by tests; failing to
		// build it is a programming error.
		panic(err)
	}
	return db
}

func positions(specs ...string) []sprinzl.Position {
	out := make([]sprinzl.Position, len(specs))
	for i, s := range specs {
		out[i] = sprinzl.MustParse(s)
	}
	return out
}

func eukaryoticEntries() []Modification {
	return []Modification{
		{
			ShortName:    "Psi",
			Name:         "pseudouridine",
			Parent:       BaseU,
			Incompatible: AllExcept(BaseU),
			Positions:    positions("55"),
			Conservation: Universal,
			ChEBI:        17802,
			Code:         "Ψ",
		},
		{
			ShortName:    "D",
			Name:         "dihydrouridine",
			Parent:       BaseU,
			Incompatible: AllExcept(BaseU),
			Positions:    positions("16", "17", "20"),
			Conservation: Universal,
			ChEBI:        15802,
			Code:         "D",
		},
		{
			ShortName:    "m5U",
			Name:         "5-methyluridine",
			Parent:       BaseU,
			Incompatible: AllExcept(BaseU),
			Positions:    positions("54"),
			Conservation: Universal,
			ChEBI:        16695,
			Code:         "T",
		},
		{
			ShortName:    "m1A",
			Name:         "1-methyladenosine",
			Parent:       BaseA,
			Incompatible: AllExcept(BaseA),
			Positions:    positions("58"),
			Conservation: Universal,
			ChEBI:        21837,
			Code:         `"`,
		},
		{
			ShortName:    "m1G",
			Name:         "1-methylguanosine",
			Parent:       BaseG,
			Incompatible: AllExcept(BaseG),
			Positions:    positions("37"),
			Conservation: IsotypeSpecific,
			Isotypes:     []string{"Ala", "Arg", "Leu", "Pro"},
			ChEBI:        21836,
			Code:         "K",
		},
		{
			ShortName:    "t6A",
			Name:         "N6-threonylcarbamoyladenosine",
			Parent:       BaseA,
			Incompatible: AllExcept(BaseA),
			Positions:    positions("37"),
			Conservation: Variable,
			Isotypes:     []string{"Ile", "Lys", "Asn", "Ser", "Thr"},
			ChEBI:        20817,
			Code:         "6",
		},
		{
			ShortName:    "i6A",
			Name:         "N6-isopentenyladenosine",
			Parent:       BaseA,
			Incompatible: AllExcept(BaseA),
			Positions:    positions("37"),
			Conservation: IsotypeSpecific,
			Isotypes:     []string{"Cys", "Ser", "Trp"},
			ChEBI:        17588,
			Code:         "+",
		},
		{
			ShortName:    "I",
			Name:         "inosine",
			Parent:       BaseA,
			Incompatible: AllExcept(BaseA),
			Positions:    positions("34"),
			Conservation: IsotypeSpecific,
			Isotypes:     []string{"Ala", "Arg", "Ile", "Leu", "Pro", "Ser", "Thr", "Val"},
			ChEBI:        17596,
			Code:         "I",
		},
		{
			ShortName:    "Q",
			Name:         "queuosine",
			Parent:       BaseG,
			Incompatible: AllExcept(BaseG),
			Positions:    positions("34"),
			Conservation: IsotypeSpecific,
			Isotypes:     []string{"Asn", "Asp", "His", "Tyr"},
			ChEBI:        17399,
			Code:         "Q",
		},
		{
			ShortName:    "Cm",
			Name:         "2'-O-methylcytidine",
			Parent:       BaseC,
			Incompatible: AllExcept(BaseC),
			Positions:    positions("32"),
			Conservation: IsotypeSpecific,
			Isotypes:     []string{"Phe", "Trp"},
			ChEBI:        19228,
			Code:         "B",
		},
		{
			ShortName:    "m5C",
			Name:         "5-methylcytidine",
			Parent:       BaseC,
			Incompatible: AllExcept(BaseC),
			Positions:    positions("48"),
			Conservation: Variable,
			ChEBI:        27480,
			Code:         "?",
		},
		{
			ShortName:    "m7G",
			Name:         "7-methylguanosine",
			Parent:       BaseG,
			Incompatible: AllExcept(BaseG),
			Positions:    positions("46"),
			Conservation: Universal,
			ChEBI:        2274,
			Code:         "7",
		},
	}
}
