package main

import (
	"flag"
	"fmt"
	"github.com/dasnellings/trfTools/fai"
	"github.com/dasnellings/trfTools/repeats"
	"github.com/vertgenlab/gonomics/bed"
	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fasta"
	"github.com/vertgenlab/gonomics/fileio"
	"log"
)

func perfectUsage(perfectFlags *flag.FlagSet) {
	fmt.Print(
		"perfect - find the longest uninterrupted run of the repeat unit within each repeat\n\n" +
			"Usage:\n" +
			"  trftools perfect [options] -i repeats.dat -r reference.fasta > output.bed\n\n" +
			"Options:\n")
	perfectFlags.PrintDefaults()
}

// perfectLimits bound the perfect repeats written to output.
type perfectLimits struct {
	minUnits    int
	minUnitLen  int
	maxUnitLen  int
	maxTotalLen int
	flank       int // -1 disables the unmasked flank check
}

func runPerfect(args []string) {
	var err error
	perfectFlags := flag.NewFlagSet("perfect", flag.ExitOnError)

	input := perfectFlags.String("i", "", "Input .dat file from 'trftools find'.")
	output := perfectFlags.String("o", "stdout", "Output bed file.")
	ref := perfectFlags.String("r", "", "Reference fasta file the repeats were found in. Must be indexed.")
	minUnits := perfectFlags.Int("minRepeatUnits", 10, "Minimum number of repeated units.")
	minUnitLen := perfectFlags.Int("minUnitLen", 1, "Minimum length of the repeat unit.")
	maxUnitLen := perfectFlags.Int("maxUnitLen", 10, "Maximum length of the repeat unit.")
	maxTotalLen := perfectFlags.Int("maxTotalLen", 75, "Maximum total length of the perfect repeat.")
	flank := perfectFlags.Int("maxDistToUnmasked", 20, "Require unmasked (uppercase) sequence within this distance of both ends of the perfect repeat. -1 to disable.")

	err = perfectFlags.Parse(args)
	exception.PanicOnErr(err)
	perfectFlags.Usage = func() { perfectUsage(perfectFlags) }

	if *input == "" || *ref == "" {
		perfectFlags.Usage()
		errExit("\nERROR: must specify .dat input (-i) and reference (-r)")
	}

	limits := perfectLimits{minUnits: *minUnits, minUnitLen: *minUnitLen, maxUnitLen: *maxUnitLen, maxTotalLen: *maxTotalLen, flank: *flank}
	findPerfect(*input, *output, *ref, limits)
}

func findPerfect(input, output, reference string, limits perfectLimits) {
	out := fileio.EasyCreate(output)
	defer cleanup(out)
	ref := fasta.NewSeeker(reference, "")
	defer cleanup(ref)
	idx := fai.ReadIndex(reference + ".fai")

	var curr bed.Bed
	var units, missing int
	var unit []dna.Base
	for r := range repeats.GoReadToChan(input) {
		if _, found := idx.Size(r.Chr); !found {
			missing++
			continue
		}
		curr, units, unit = repeats.FindPerfectRepeat(ref, &r)
		if !limits.pass(units, len(unit)) {
			continue
		}
		if limits.flank > -1 && !(unmaskedNear(ref, idx, r.Chr, curr.ChromStart-limits.flank, curr.ChromStart) && unmaskedNear(ref, idx, r.Chr, curr.ChromEnd, curr.ChromEnd+limits.flank)) {
			continue
		}
		bed.WriteBed(out, curr)
	}
	if missing > 0 {
		log.Printf("WARNING: skipped %d repeats on sequences not in %s", missing, reference)
	}
}

func (l perfectLimits) pass(units, unitLen int) bool {
	return units >= l.minUnits && unitLen >= l.minUnitLen && unitLen <= l.maxUnitLen && units*unitLen <= l.maxTotalLen
}

// unmaskedNear reports whether the reference holds an uppercase nucleotide in [start, end).
func unmaskedNear(ref *fasta.Seeker, idx fai.Index, chr string, start, end int) bool {
	start, end = idx.Clamp(chr, start, end)
	if end <= start {
		return false
	}
	seq, err := fasta.SeekByName(ref, chr, start, end)
	if err != nil {
		return false
	}
	for i := range seq {
		switch seq[i] {
		case dna.A, dna.C, dna.G, dna.T:
			return true
		}
	}
	return false
}
