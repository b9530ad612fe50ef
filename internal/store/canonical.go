package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"

	"github.com/trnamod/trnamod/internal/analysis"
)

// MarshalCanonical produces RFC 8785 canonical JSON for hashing.
// CRITICAL: This is the ONLY serialization that should be used for
// content-addressed identity computation.
//
// Key differences from standard json.Marshal:
// 1. Object keys sorted by UTF-16 code units (not UTF-8 bytes)
// 2. No HTML escaping (< > & are NOT escaped)
// 3. Strings are NFC normalized
// 4. No floats (returns error)
// 5. No null (returns error)
//
// Values are limited to string, int, int64, bool, []any and
// map[string]any. Scores must be lowered to milli-units with ScoreMilli
// before entering the tree.
func MarshalCanonical(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null is forbidden in canonical JSON")
	case string:
		return marshalCanonicalString(val)
	case int:
		return []byte(fmt.Sprintf("%d", val)), nil
	case int64:
		return []byte(fmt.Sprintf("%d", val)), nil
	case bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case []any:
		return marshalCanonicalArray(val)
	case map[string]any:
		return marshalCanonicalObject(val)
	case float64, float32:
		return nil, fmt.Errorf("floats are forbidden in canonical JSON: %v", val)
	default:
		return nil, fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
}

// ScoreMilli lowers a score in [0, 1] to integer milli-units, rounding
// half away from zero. 0.9005 and 0.9004 stay distinguishable only to
// milli precision; that is the identity granularity on purpose.
func ScoreMilli(score float64) int64 {
	return int64(math.Round(score * 1000))
}

// canonicalVerdict lowers a verdict to the float-free canonical value
// tree used for content hashing. Field names mirror the verdict's JSON
// tags except score, which appears as score_milli.
func canonicalVerdict(v analysis.Verdict) map[string]any {
	checks := make([]any, 0, len(v.Checks))
	for _, c := range v.Checks {
		expected := make([]any, 0, len(c.Expected))
		for _, name := range c.Expected {
			expected = append(expected, name)
		}
		checks = append(checks, map[string]any{
			"position":   c.Pos.String(),
			"observed":   c.Observed.String(),
			"expected":   expected,
			"consistent": c.Consistent,
		})
	}

	incompatibilities := make([]any, 0, len(v.Incompatibilities))
	for _, inc := range v.Incompatibilities {
		incompatibilities = append(incompatibilities, map[string]any{
			"position":     inc.Pos.String(),
			"modification": inc.Modification,
			"observed":     inc.Observed.String(),
			"parent":       inc.Parent.String(),
			"incompatible": inc.Incompatible.String(),
			"conservation": inc.Conservation.String(),
		})
	}

	covered := make([]any, 0, len(v.Covered))
	for _, pb := range v.Covered {
		covered = append(covered, map[string]any{
			"position": pb.Pos.String(),
			"base":     pb.Base.String(),
		})
	}

	missing := make([]any, 0, len(v.Missing))
	for _, pos := range v.Missing {
		missing = append(missing, pos.String())
	}

	return map[string]any{
		"sequence_id":            v.SequenceID,
		"scorable":               v.Scorable,
		"score_milli":            ScoreMilli(v.Score),
		"odd":                    v.Odd,
		"scored_positions":       v.ScoredPositions,
		"incompatible_positions": v.IncompatiblePositions,
		"checks":                 checks,
		"incompatibilities":      incompatibilities,
		"covered":                covered,
		"missing":                missing,
		"unmapped_insertions":    v.UnmappedInsertions,
	}
}

// marshalCanonicalString produces a canonical JSON string with NFC
// normalization. RFC 8785 compliance:
// - No HTML escaping (<, >, & are NOT escaped)
// - U+2028 and U+2029 are NOT escaped
// - Only control characters (U+0000-U+001F), backslash, and quote are escaped
func marshalCanonicalString(s string) ([]byte, error) {
	// NFC normalize at serialization boundary
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}

	// json.Encoder adds trailing newline, remove it
	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}

	// Go's encoder escapes U+2028 and U+2029 for JavaScript compatibility;
	// RFC 8785 wants them literal. They only appear as \u202x escapes when
	// the preceding backslash run has even length (odd means the backslash
	// itself is escaped and "u2028" is literal text).
	return unescapeSeparators(result), nil
}

// unescapeSeparators converts   and   escape sequences back to
// their literal characters, leaving \\u2028 (escaped backslash followed
// by text) untouched.
func unescapeSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); {
		if i+6 <= len(data) && data[i] == '\\' && data[i+1] == 'u' &&
			data[i+2] == '2' && data[i+3] == '0' && data[i+4] == '2' &&
			(data[i+5] == '8' || data[i+5] == '9') {
			backslashes := 0
			for j := len(out) - 1; j >= 0 && out[j] == '\\'; j-- {
				backslashes++
			}
			if backslashes%2 == 0 {
				if data[i+5] == '8' {
					out = append(out, " "...)
				} else {
					out = append(out, " "...)
				}
				i += 6
				continue
			}
		}
		out = append(out, data[i])
		i++
	}
	return out
}

func marshalCanonicalArray(arr []any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')

	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		elemBytes, err := MarshalCanonical(elem)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		buf.Write(elemBytes)
	}

	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func marshalCanonicalObject(obj map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	keys := sortedKeysRFC8785(obj)
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		keyBytes, err := marshalCanonicalString(k)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valBytes, err := MarshalCanonical(obj[k])
		if err != nil {
			return nil, fmt.Errorf("value for key %q: %w", k, err)
		}
		buf.Write(valBytes)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// sortedKeysRFC8785 returns keys in RFC 8785 canonical order (UTF-16 code
// units). CRITICAL: Go's sort.Strings uses UTF-8 which produces DIFFERENT
// order for strings with supplementary-plane characters.
func sortedKeysRFC8785(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

// compareKeysRFC8785 compares strings by UTF-16 code units, using
// unicode/utf16.Encode for correct surrogate handling.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	minLen := min(len(a16), len(b16))
	for i := 0; i < minLen; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	default:
		return 0
	}
}
