// Package fai reads the sequence names and lengths recorded in a fasta index.
package fai

import (
	"fmt"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"log"
	"strconv"
	"strings"
)

// Index holds the length of each sequence in an indexed fasta file, in file order.
type Index struct {
	names []string
	sizes map[string]int
}

// String writes the index as name and length columns.
func (idx Index) String() string {
	answer := new(strings.Builder)
	for _, name := range idx.names {
		fmt.Fprintf(answer, "%s\t%d\n", name, idx.sizes[name])
	}
	return answer.String()
}

// Names returns the sequence names in file order.
func (idx Index) Names() []string {
	return idx.names
}

// Size returns the length of chr and whether chr is in the index.
func (idx Index) Size(chr string) (int, bool) {
	size, found := idx.sizes[chr]
	return size, found
}

// Clamp limits the 0-based half open interval [start, end) to the bounds of chr.
func (idx Index) Clamp(chr string, start, end int) (int, int) {
	if start < 0 {
		start = 0
	}
	if size, found := idx.sizes[chr]; found && end > size {
		end = size
	}
	if end < start {
		end = start
	}
	return start, end
}

// ReadIndex reads a fai file. Only the name and length columns are kept.
func ReadIndex(filename string) Index {
	file := fileio.EasyOpen(filename)
	answer := Index{sizes: make(map[string]int)}
	var line string
	var col []string
	var done bool
	var err error
	var size int
	for line, done = fileio.EasyNextRealLine(file); !done; line, done = fileio.EasyNextRealLine(file) {
		col = strings.Split(line, "\t")
		if len(col) != 5 {
			log.Fatalf("ERROR: malformed index file: %s\nerror on line:\n%s\n", filename, line)
		}
		size, err = strconv.Atoi(col[1])
		exception.PanicOnErr(err)
		if _, found := answer.sizes[col[0]]; !found {
			answer.names = append(answer.names, col[0])
		}
		answer.sizes[col[0]] = size
	}

	err = file.Close()
	exception.PanicOnErr(err)
	return answer
}
