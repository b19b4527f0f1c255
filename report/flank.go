package report

import (
	"fmt"
	"github.com/dasnellings/trfTools/detect"
	"github.com/dasnellings/trfTools/repeats"
	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/exception"
	"io"
)

// WriteFlanks writes one tab separated line per repeat in res: the sequence name, first and
// last position, consensus, and up to n bases on the left and on the right of the repeat.
// A side with no sequence is written as a dot.
func WriteFlanks(out io.Writer, s detect.Sequence, res detect.Result, n int) {
	var err error
	for _, r := range res.Records {
		_, err = fmt.Fprintf(out, "%s\t%d\t%d\t%s\t%s\t%s\n", s.Name, r.First, r.Last, dna.BasesToString(r.Seq), leftFlank(s.Seq, r, n), rightFlank(s.Seq, r, n))
		exception.PanicOnErr(err)
	}
}

func leftFlank(seq []dna.Base, r repeats.Record, n int) string {
	end := r.First - 1
	start := end - n
	if start < 0 {
		start = 0
	}
	if end <= start {
		return "."
	}
	return dna.BasesToString(seq[start:end])
}

func rightFlank(seq []dna.Base, r repeats.Record, n int) string {
	start := r.Last
	end := start + n
	if end > len(seq) {
		end = len(seq)
	}
	if end <= start {
		return "."
	}
	return dna.BasesToString(seq[start:end])
}
