package report

import (
	"fmt"
	"github.com/dasnellings/trfTools/repeats"
	"github.com/vertgenlab/gonomics/bed"
	"github.com/vertgenlab/gonomics/dna"
	"io"
)

// BedRecord converts r to a 0-based half open interval named by copy number and consensus,
// scored by alignment score.
func BedRecord(r repeats.Record) bed.Bed {
	return bed.Bed{
		Chrom:             r.Chr,
		ChromStart:        r.First - 1,
		ChromEnd:          r.Last,
		Name:              fmt.Sprintf("%.1fx%s", r.CopyNum, dna.BasesToString(r.Seq)),
		Score:             r.Score,
		FieldsInitialized: 5,
	}
}

// ToBed converts each repeat with BedRecord.
func ToBed(recs []repeats.Record) []bed.Bed {
	ans := make([]bed.Bed, len(recs))
	for i := range recs {
		ans[i] = BedRecord(recs[i])
	}
	return ans
}

// WriteBed writes repeats as BED intervals.
func WriteBed(out io.Writer, recs []repeats.Record) {
	for _, b := range ToBed(recs) {
		bed.WriteBed(out, b)
	}
}
