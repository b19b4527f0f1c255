package repeats

import (
	"github.com/vertgenlab/gonomics/dna"
)

// Mask replaces every position of seq inside a repeat with N.
func Mask(seq []dna.Base, recs []Record) {
	var i, start, end int
	for _, r := range recs {
		start, end = r.First-1, r.Last
		if start < 0 {
			start = 0
		}
		if end > len(seq) {
			end = len(seq)
		}
		for i = start; i < end; i++ {
			seq[i] = dna.N
		}
	}
}
