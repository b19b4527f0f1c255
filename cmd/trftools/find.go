package main

import (
	"flag"
	"fmt"
	"github.com/dasnellings/trfTools/detect"
	"github.com/dasnellings/trfTools/params"
	"github.com/dasnellings/trfTools/repeats"
	"github.com/dasnellings/trfTools/report"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fasta"
	"github.com/vertgenlab/gonomics/fileio"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"
)

func findUsage(findFlags *flag.FlagSet) {
	fmt.Print(
		"find - find tandem repeats in fasta sequences\n\n" +
			"Usage:\n" +
			"  trftools find [options] -i input.fasta\n\n" +
			"Options:\n")
	findFlags.PrintDefaults()
}

// findOutputs holds the optional output files of the find subcommand.
type findOutputs struct {
	dat         string
	ngs         bool
	masked      string
	bed         string
	plot        string
	flanks      string
	flankLength int
}

func runFind(args []string) {
	var err error
	findFlags := flag.NewFlagSet("find", flag.ExitOnError)
	def := params.Default()

	cpuprofile := findFlags.String("cpuprofile", "", "write cpu profile")
	memprofile := findFlags.String("memprofile", "", "write memory profile")
	input := findFlags.String("i", "", "Input fasta file.")
	output := findFlags.String("o", "", "Output .dat file. Default is the input file name with the parameters and a .dat extension.")
	ngs := findFlags.Bool("ngs", false, "Write compact output with flanking sequence for each repeat and headers only for sequences with repeats.")
	masked := findFlags.String("m", "", "Output fasta file with every repeat masked to N.")
	bedFile := findFlags.String("bed", "", "Output bed file of repeats.")
	flank := findFlags.Int("f", 0, "Write this many bases of flanking sequence on each side of every repeat to a .flank.txt file named after the .dat output. 0 writes no flanks.")
	plotFile := findFlags.String("plot", "", "Output plot of repeat period against position. Format is determined by the extension (e.g. .pdf, .png, .svg).")
	match := findFlags.Int("match", def.Match, "Match weight.")
	mismatch := findFlags.Int("mismatch", def.Mismatch, "Mismatch penalty.")
	indel := findFlags.Int("indel", def.Indel, "Indel penalty.")
	pm := findFlags.Int("pm", def.PM, "Match probability (percent).")
	pi := findFlags.Int("pi", def.PI, "Indel probability (percent).")
	minScore := findFlags.Int("minscore", def.MinScore, "Minimum alignment score to report a repeat.")
	maxPeriod := findFlags.Int("maxperiod", def.MaxPeriod, "Maximum period size to report, up to 2000.")
	maxWrapLength := findFlags.Int("l", def.MaxWrapLength, "Maximum number of bases aligned in one repeat. Lower to reduce memory use on long sequences.")
	redundancyOff := findFlags.Bool("r", false, "Keep redundant repeats.")
	verbose := findFlags.Int("verbose", 0, "Level of verbosity in log.")

	err = findFlags.Parse(args)
	exception.PanicOnErr(err)
	findFlags.Usage = func() { findUsage(findFlags) }

	if *input == "" {
		findFlags.Usage()
		errExit("\nERROR: must specify fasta input (-i)")
	}

	p := params.Params{
		Match:         *match,
		Mismatch:      *mismatch,
		Indel:         *indel,
		PM:            *pm,
		PI:            *pi,
		MinScore:      *minScore,
		MaxPeriod:     *maxPeriod,
		MaxWrapLength: *maxWrapLength,
		RedundancyOff: *redundancyOff,
	}
	if err = p.Validate(); err != nil {
		findFlags.Usage()
		errExit("\nERROR: " + err.Error())
	}

	if *flank < 0 {
		findFlags.Usage()
		errExit("\nERROR: flank length (-f) must not be negative")
	}

	stopProfile := func() {}
	if *cpuprofile != "" {
		stopProfile = startCPUProfile(*cpuprofile)
	}

	out := findOutputs{dat: *output, ngs: *ngs, masked: *masked, bed: *bedFile, plot: *plotFile, flankLength: *flank}
	if out.dat == "" {
		out.dat = fmt.Sprintf("%s.%s.dat", filepath.Base(*input), p.Tag())
	}
	if out.flankLength > 0 {
		out.flanks = strings.TrimSuffix(out.dat, ".dat") + ".flank.txt"
	}
	findRepeats(*input, out, p, *verbose)
	stopProfile() // before any errExit below

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			errExit(err.Error())
		}
		defer f.Close()
		runtime.GC() // get up-to-date statistics
		if err := pprof.WriteHeapProfile(f); err != nil {
			errExit(err.Error())
		}
	}
}

// startCPUProfile starts writing a cpu profile to file and returns the function that stops
// the profile and closes the file.
func startCPUProfile(file string) func() {
	f, err := os.Create(file)
	if err != nil {
		errExit(err.Error())
	}
	if err = pprof.StartCPUProfile(f); err != nil {
		errExit(err.Error())
	}
	return func() {
		pprof.StopCPUProfile()
		cleanup(f)
	}
}

func findRepeats(input string, outputs findOutputs, p params.Params, verbose int) {
	ctx, err := detect.NewContext(p, verbose)
	if err != nil {
		log.Fatal(err)
	}
	records := fasta.Read(input)

	out := fileio.EasyCreate(outputs.dat)
	defer cleanup(out)
	var bedOut *fileio.EasyWriter
	if outputs.bed != "" {
		bedOut = fileio.EasyCreate(outputs.bed)
		defer cleanup(bedOut)
	}

	var flankOut *fileio.EasyWriter
	if outputs.flanks != "" {
		flankOut = fileio.EasyCreate(outputs.flanks)
		defer cleanup(flankOut)
	}

	var masked []fasta.Fasta
	var all []repeats.Record
	var seq detect.Sequence
	var res detect.Result
	for i := range records {
		seq, err = detect.NewSequence(records[i])
		if err != nil {
			log.Printf("WARNING: skipping %s: %s", records[i].Name, err)
			continue
		}
		res, err = ctx.Find(seq)
		if err != nil {
			log.Fatalf("ERROR: %s: %s", seq.Name, err)
		}

		if outputs.ngs {
			report.WriteNgs(out, seq, res)
		} else {
			report.WriteDat(out, seq, res, p)
		}
		if bedOut != nil {
			report.WriteBed(bedOut, res.Records)
		}
		if flankOut != nil {
			report.WriteFlanks(flankOut, seq, res, outputs.flankLength)
		}
		if outputs.masked != "" {
			masked = append(masked, report.Masked(seq, res))
		}
		all = append(all, res.Records...)
	}

	if outputs.masked != "" {
		fasta.Write(outputs.masked, masked)
	}

	if outputs.plot != "" {
		err = report.PlotRepeats(all, filepath.Base(input), outputs.plot)
		if err != nil {
			log.Println("WARNING: plot not written:", err)
		}
	}

	if verbose > 0 {
		log.Printf("found %d repeats in %d sequences", len(all), len(records))
		if len(all) > 0 {
			fmt.Fprintln(os.Stderr, report.PeriodHistogram(all))
		}
	}
}
