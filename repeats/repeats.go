package repeats

import (
	"fmt"
	"github.com/vertgenlab/gonomics/bed"
	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fasta"
)

// FindPerfectRepeat finds the longest uninterrupted run of the primitive unit of the
// consensus of r within the region of r in reference.
func FindPerfectRepeat(reference *fasta.Seeker, r *Record) (bed.Bed, int, []dna.Base) {
	refseq, err := fasta.SeekByName(reference, r.Chr, r.First-1, r.Last)
	exception.PanicOnErr(err)
	dna.AllToUpper(refseq)
	return PerfectRun(refseq, r)
}

// PerfectRun is FindPerfectRepeat for a region that has already been extracted. The region
// must start at r.First.
func PerfectRun(region []dna.Base, r *Record) (bed.Bed, int, []dna.Base) {
	_, unit := PrimitiveUnit(r.Seq)
	var ans bed.Bed
	ans.FieldsInitialized = 4
	ans.Chrom = r.Chr
	if len(unit) == 0 || len(region) == 0 {
		ans.ChromStart, ans.ChromEnd = r.First-1, r.First-1
		return ans, 0, unit
	}

	bestStart, bestEnd, numRepeats := bestMatch(region, unit)
	ans.ChromStart = r.First - 1 + bestStart
	ans.ChromEnd = r.First - 1 + bestEnd
	ans.Name = fmt.Sprintf("%dx%s", numRepeats, dna.BasesToString(unit))
	return ans, numRepeats, unit
}

func incrementPatternIdx(pattern []dna.Base, idx *int) {
	if *idx == len(pattern)-1 {
		*idx = 0
		return
	}
	*idx++
}

// bestMatch finds the longest stretch of seq matching consecutive copies of pattern, where
// the stretch must begin at the start of pattern.
func bestMatch(seq, pattern []dna.Base) (bestStart, bestEnd, numRepeats int) {
	var currMatchStart, bestMatchStart, bestMatchEnd, currMatchEnd, currPatternIdx, i int
	for i = 0; i < len(seq); i++ {
		if seq[i] == pattern[currPatternIdx] {
			incrementPatternIdx(pattern, &currPatternIdx)
			continue
		}
		currMatchEnd = i - currPatternIdx
		if bestMatchEnd-bestMatchStart < currMatchEnd-currMatchStart {
			bestMatchStart = currMatchStart
			bestMatchEnd = currMatchEnd
		}
		currPatternIdx = 0
		currMatchStart = i
		if seq[i] == pattern[currPatternIdx] {
			incrementPatternIdx(pattern, &currPatternIdx)
		} else {
			currMatchStart = i + 1
		}
	}

	currMatchEnd = i - currPatternIdx
	if bestMatchEnd-bestMatchStart < currMatchEnd-currMatchStart {
		bestMatchStart = currMatchStart
		bestMatchEnd = currMatchEnd
	}

	return bestMatchStart, bestMatchEnd, (bestMatchEnd - bestMatchStart) / len(pattern)
}
