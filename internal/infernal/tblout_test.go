package infernal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTblout = `#target name         accession query name           accession mdl mdl from   mdl to seq from   seq to strand trunc pass   gc  bias  score   E-value inc description of target
#------------------- --------- -------------------- --------- --- -------- -------- -------- -------- ------ ----- ---- ---- ----- ------ --------- --- ---------------------
chr1                 -         tRNA                 RF00005    cm        1       71  1000100  1000175      +    no    1 0.52   0.0   65.3   1.2e-14 !   tRNA-Ala-AGC
chr1                 -         tRNA                 RF00005    cm        1       71  2000300  2000226      -    no    1 0.48   0.1   58.9   4.5e-12 !   tRNA-His-GTG
badline only-three fields
chr2                 -         tRNA                 RF00005    cm        1       71  notanint  3000075      +    no    1 0.50   0.0   44.0   8.8e-09 !   broken start
#
`

func TestParseTblout(t *testing.T) {
	hits, skipped, err := ParseTblout(strings.NewReader(sampleTblout))
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	require.Len(t, hits, 2)

	first := hits[0]
	assert.Equal(t, "chr1/1000100-1000175", first.SequenceID)
	assert.Equal(t, "chr1", first.TargetName)
	assert.Equal(t, 1000100, first.Start)
	assert.Equal(t, 1000175, first.End)
	assert.Equal(t, "+", first.Strand)
	assert.InDelta(t, 0.52, first.GC, 1e-9)
	assert.InDelta(t, 65.3, first.Score, 1e-9)
	assert.InDelta(t, 1.2e-14, first.EValue, 1e-20)

	second := hits[1]
	assert.Equal(t, "-", second.Strand)
	assert.Greater(t, second.Start, second.End)
}

func TestParseTbloutEmpty(t *testing.T) {
	hits, skipped, err := ParseTblout(strings.NewReader("# no hits\n"))
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Empty(t, hits)
}
