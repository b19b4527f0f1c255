// Package report writes the repeats found in a sequence as .dat, NGS, BED and masked
// FASTA output, and draws summary plots.
package report

import (
	"fmt"
	"github.com/dasnellings/trfTools/detect"
	"github.com/dasnellings/trfTools/params"
	"github.com/dasnellings/trfTools/repeats"
	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fasta"
	"io"
)

// FlankLength is the number of bases reported on either side of a repeat in NGS output.
const FlankLength int = 50

// WriteDat writes the header for s followed by one line per repeat in res.
func WriteDat(out io.Writer, s detect.Sequence, res detect.Result, p params.Params) {
	_, err := fmt.Fprintf(out, "Tandem Repeats Finder\n\nSequence: %s\n\n\n\n%s\n\n\n", s.Name, p)
	exception.PanicOnErr(err)
	for _, r := range res.Records {
		repeats.WriteDat(out, r, s.Seq)
	}
	_, err = fmt.Fprintln(out)
	exception.PanicOnErr(err)
}

// WriteNgs writes the repeats in res in the compact NGS format, each line followed by the
// flanking sequence on both sides. Nothing is written for a sequence without repeats.
func WriteNgs(out io.Writer, s detect.Sequence, res detect.Result) {
	if len(res.Records) == 0 {
		return
	}
	_, err := fmt.Fprintf(out, "@%s\n", s.Name)
	exception.PanicOnErr(err)
	for _, r := range res.Records {
		_, err = fmt.Fprintf(out, "%s %s %s\n", repeats.FormatDat(r, s.Seq), leftFlank(s.Seq, r, FlankLength), rightFlank(s.Seq, r, FlankLength))
		exception.PanicOnErr(err)
	}
}

// Masked returns a copy of s with every position inside a repeat in res replaced by N.
func Masked(s detect.Sequence, res detect.Result) fasta.Fasta {
	ans := fasta.Fasta{Name: s.Name, Seq: make([]dna.Base, len(s.Seq))}
	copy(ans.Seq, s.Seq)
	repeats.Mask(ans.Seq, res.Records)
	return ans
}
