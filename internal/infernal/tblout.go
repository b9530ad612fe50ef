package infernal

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseTblout reads cmsearch --tblout output. Column layout per the
// Infernal user guide: target name, accession, query name, accession, mdl,
// mdl from, mdl to, seq from, seq to, strand, trunc, pass, gc, bias, score,
// E-value, inc, description.
//
// Comment lines are ignored. Lines with too few or unparseable fields are
// skipped and counted, matching cmsearch's free-form description column.
func ParseTblout(r io.Reader) ([]Hit, int, error) {
	var hits []Hit
	skipped := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 17 {
			skipped++
			continue
		}
		start, err1 := strconv.Atoi(fields[7])
		end, err2 := strconv.Atoi(fields[8])
		gc, err3 := strconv.ParseFloat(fields[12], 64)
		score, err4 := strconv.ParseFloat(fields[14], 64)
		evalue, err5 := strconv.ParseFloat(fields[15], 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
			skipped++
			continue
		}
		hits = append(hits, Hit{
			SequenceID: fmt.Sprintf("%s/%d-%d", fields[0], start, end),
			TargetName: fields[0],
			Start:      start,
			End:        end,
			Strand:     fields[9],
			GC:         gc,
			Score:      score,
			EValue:     evalue,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, fmt.Errorf("read tblout: %w", err)
	}
	return hits, skipped, nil
}
