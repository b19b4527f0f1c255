package wrapalign

import (
	"github.com/vertgenlab/gonomics/dna"
)

const tableSize = 16

// ScoreTable gives the score of aligning any two symbols.
type ScoreTable struct {
	table [tableSize][tableSize]int
}

// NewScoreTable scores identical nucleotides with match and every other pair,
// including any pair with an N, with -mismatch.
func NewScoreTable(match, mismatch int) ScoreTable {
	var ans ScoreTable
	var i, j int
	for i = range ans.table {
		for j = range ans.table[i] {
			ans.table[i][j] = -mismatch
		}
	}
	for _, b := range []dna.Base{dna.A, dna.C, dna.G, dna.T} {
		ans.table[b][b] = match
	}
	return ans
}

// Score returns the score for aligning a with b.
func (s *ScoreTable) Score(a, b dna.Base) int {
	if int(a) >= tableSize || int(b) >= tableSize {
		return s.table[dna.N][dna.N]
	}
	return s.table[a][b]
}
