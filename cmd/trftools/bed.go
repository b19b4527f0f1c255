package main

import (
	"flag"
	"fmt"
	"github.com/dasnellings/trfTools/repeats"
	"github.com/dasnellings/trfTools/report"
	"github.com/vertgenlab/gonomics/bed"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
)

func bedUsage(bedFlags *flag.FlagSet) {
	fmt.Print(
		"bed - convert repeats in a .dat file to bed intervals\n\n" +
			"Usage:\n" +
			"  trftools bed [options] -i repeats.dat > output.bed\n\n" +
			"Options:\n")
	bedFlags.PrintDefaults()
}

func runBed(args []string) {
	var err error
	bedFlags := flag.NewFlagSet("bed", flag.ExitOnError)

	input := bedFlags.String("i", "", "Input .dat file from 'trftools find'.")
	output := bedFlags.String("o", "stdout", "Output bed file.")
	minCopies := bedFlags.Float64("minCopies", 0, "Minimum copy number.")
	maxPeriod := bedFlags.Int("maxPeriod", 2000, "Maximum period.")

	err = bedFlags.Parse(args)
	exception.PanicOnErr(err)
	bedFlags.Usage = func() { bedUsage(bedFlags) }

	if *input == "" {
		bedFlags.Usage()
		errExit("\nERROR: must specify .dat input (-i)")
	}

	datToBed(*input, *output, *minCopies, *maxPeriod)
}

func datToBed(input, output string, minCopies float64, maxPeriod int) {
	out := fileio.EasyCreate(output)
	defer cleanup(out)
	for r := range repeats.GoReadToChan(input) {
		if r.CopyNum < minCopies || r.Period > maxPeriod {
			continue
		}
		bed.WriteBed(out, report.BedRecord(r))
	}
}
