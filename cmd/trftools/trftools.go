package main

import (
	"flag"
	"fmt"
	"github.com/vertgenlab/gonomics/exception"
	"io"
	"os"
	"strings"
	"text/tabwriter"
)

const version string = "0.1.0"
const gonomicsVersion string = "1.0.1-0.20240426183757-e6c6ab634c20"

type subcommand struct {
	name     string
	function func(args []string)
	blurb    string
}

// SubCommands contains all valid subcommands.
var SubCommands = []*subcommand{
	{"find", runFind, "find tandem repeats in fasta sequences"},
	{"perfect", runPerfect, "find the longest perfect run of each repeat in a .dat file"},
	{"bed", runBed, "convert a .dat file to bed"},
}

func usage() {
	s := new(strings.Builder)
	s.WriteString(
		"Program: trftools (tandem repeat detection)\n" +
			"Version: " + version + " (gonomics " + gonomicsVersion + ")\n" +
			"\nUsage:\ttrftools <command> [options]\n\n" +
			"Commands:\n")

	w := tabwriter.NewWriter(s, 0, 8, 5, '\t', tabwriter.AlignRight)
	for i := range SubCommands {
		fmt.Fprintf(w, "\t%s\t%s\n", SubCommands[i].name, SubCommands[i].blurb)
	}
	w.Flush()
	fmt.Print(s.String())
}

// commandMap builds a map of possible subcommands keyed on the name of the subcommand
func commandMap() map[string]func(args []string) {
	m := make(map[string]func(args []string))
	for i := range SubCommands {
		m[SubCommands[i].name] = SubCommands[i].function
	}
	return m
}

func main() {
	flag.Usage = usage
	flag.Parse()

	command := commandMap()[flag.Arg(0)]
	if command == nil {
		flag.Usage()
		return
	}
	command(flag.Args()[1:])
}

func errExit(err string) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func cleanup(f io.Closer) {
	err := f.Close()
	exception.PanicOnErr(err)
}
