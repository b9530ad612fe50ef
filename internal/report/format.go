package report

import (
	"fmt"
	"strconv"
)

// Format selects the output rendering.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatTSV  Format = "tsv"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []Format{FormatText, FormatJSON, FormatTSV}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range ValidFormats {
		if s == string(f) {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid format %q: must be one of %v", s, ValidFormats)
}

// formatScore renders a score to milli precision, or NA for verdicts
// that are not scorable.
func formatScore(scorable bool, score float64) string {
	if !scorable {
		return "NA"
	}
	return strconv.FormatFloat(score, 'f', 3, 64)
}
