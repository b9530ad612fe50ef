package modkit

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/trnamod/trnamod/internal/sprinzl"
)

// Call is one externally observed modification call in Sprinzl space.
// Probability is pass-through: this layer never reinterprets it.
type Call struct {
	SequenceID  string           `json:"sequence_id"`
	Pos         sprinzl.Position `json:"position"`
	Code        string           `json:"code"`
	Probability float64          `json:"probability"`
}

// Record is one raw line of modkit bedMethyl pileup output, before
// projection into Sprinzl space.
type Record struct {
	Chrom     string
	Start     int
	End       int
	Code      string
	Score     int
	Strand    byte
	Coverage  int
	Frequency float64
}

// ParseBedMethyl reads bedMethyl pileup lines: at least 11 tab-separated
// fields per record. Comment lines and blank lines are ignored; malformed
// lines are skipped and counted rather than failing the file.
func ParseBedMethyl(r io.Reader) ([]Record, int, error) {
	var records []Record
	skipped := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 11 {
			skipped++
			continue
		}
		start, err1 := strconv.Atoi(fields[1])
		end, err2 := strconv.Atoi(fields[2])
		score, err3 := strconv.Atoi(fields[4])
		coverage, err4 := strconv.Atoi(fields[9])
		freq, err5 := strconv.ParseFloat(fields[10], 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
			skipped++
			continue
		}
		strand := byte('+')
		if fields[5] != "" {
			strand = fields[5][0]
		}
		records = append(records, Record{
			Chrom:     fields[0],
			Start:     start,
			End:       end,
			Code:      fields[3],
			Score:     score,
			Strand:    strand,
			Coverage:  coverage,
			Frequency: freq,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("read bedmethyl: %w", err)
	}
	return records, skipped, nil
}

// CallsFromRecords projects raw records onto Sprinzl coordinates for reads
// piled up against mature tRNA references: the record's chrom is the
// sequence id and its 0-based start offset maps to canonical position
// offset+1. Records outside 1-76 are returned separately so reporting can
// surface them.
//
// The bedMethyl frequency column is a percentage; it is rescaled to [0,1]
// and carried as the pass-through probability.
func CallsFromRecords(records []Record) (calls []Call, outside []Record) {
	for _, rec := range records {
		n := rec.Start + 1
		pos, err := sprinzl.New(n)
		if err != nil {
			outside = append(outside, rec)
			continue
		}
		calls = append(calls, Call{
			SequenceID:  rec.Chrom,
			Pos:         pos,
			Code:        rec.Code,
			Probability: rec.Frequency / 100,
		})
	}
	return calls, outside
}
