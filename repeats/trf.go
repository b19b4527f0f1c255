package repeats

import (
	"fmt"
	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"io"
	"strconv"
	"strings"
)

// Record is a tandem repeat found in a sequence. Positions are 1-based and inclusive.
type Record struct {
	Count         int // order of discovery within the sequence
	Label         string
	Chr           string
	First         int
	Last          int
	Period        int
	CopyNum       float64
	ConsensusSize int
	PerMatch      int
	PerIndel      int
	Score         int
	A             int // percent composition of the repeat region
	C             int
	G             int
	T             int
	Entropy       float64
	Seq           []dna.Base // consensus pattern
}

// SetCount assigns the discovery order and the label derived from it.
func (r *Record) SetCount(count int) {
	r.Count = count
	r.Label = fmt.Sprintf("%d--%d,%d,%.1f,%d", r.First, r.Last, r.Period, r.CopyNum, r.Count)
}

// Len is the number of positions spanned by the repeat.
func (r *Record) Len() int {
	return r.Last - r.First + 1
}

// FormatDat formats r as the fields of one .dat line. The repeat region is taken from seq,
// the full sequence the repeat was found in.
func FormatDat(r Record, seq []dna.Base) string {
	return fmt.Sprintf("%d %d %d %.1f %d %d %d %d %d %d %d %d %.2f %s %s",
		r.First, r.Last, r.Period, r.CopyNum, r.ConsensusSize, r.PerMatch, r.PerIndel, r.Score,
		r.A, r.C, r.G, r.T, r.Entropy, dna.BasesToString(r.Seq), dna.BasesToString(seq[r.First-1:r.Last]))
}

// WriteDat writes r as one line of a .dat file.
func WriteDat(out io.Writer, r Record, seq []dna.Base) {
	_, err := fmt.Fprintln(out, FormatDat(r, seq))
	exception.PanicOnErr(err)
}

// isRecordLine reports whether a .dat line holds a repeat rather than header text.
func isRecordLine(line string) bool {
	words := strings.Fields(line)
	if len(words) < 14 {
		return false
	}
	_, err := strconv.Atoi(words[0])
	return err == nil
}

func parseLine(line string) Record {
	words := strings.Fields(line)
	var err error
	var ans Record
	ans.First, err = strconv.Atoi(words[0])
	exception.PanicOnErr(err)
	ans.Last, err = strconv.Atoi(words[1])
	exception.PanicOnErr(err)
	ans.Period, err = strconv.Atoi(words[2])
	exception.PanicOnErr(err)
	ans.CopyNum, err = strconv.ParseFloat(words[3], 64)
	exception.PanicOnErr(err)
	ans.ConsensusSize, err = strconv.Atoi(words[4])
	exception.PanicOnErr(err)
	ans.PerMatch, err = strconv.Atoi(words[5])
	exception.PanicOnErr(err)
	ans.PerIndel, err = strconv.Atoi(words[6])
	exception.PanicOnErr(err)
	ans.Score, err = strconv.Atoi(words[7])
	exception.PanicOnErr(err)
	ans.A, err = strconv.Atoi(words[8])
	exception.PanicOnErr(err)
	ans.C, err = strconv.Atoi(words[9])
	exception.PanicOnErr(err)
	ans.G, err = strconv.Atoi(words[10])
	exception.PanicOnErr(err)
	ans.T, err = strconv.Atoi(words[11])
	exception.PanicOnErr(err)
	ans.Entropy, err = strconv.ParseFloat(words[12], 64)
	exception.PanicOnErr(err)
	ans.Seq = dna.StringToBases(words[13])
	return ans
}

// GoReadToChan reads the repeats in a .dat file. The Chr of each record is the name
// on the preceding "Sequence:" or "@" line.
func GoReadToChan(file string) <-chan Record {
	ans := make(chan Record, 1000)
	go readToChan(file, ans)
	return ans
}

func readToChan(file string, c chan<- Record) {
	input := fileio.EasyOpen(file)
	var line, chr string
	var done bool
	var count int
	var curr Record
	for line, done = fileio.EasyNextRealLine(input); !done; line, done = fileio.EasyNextRealLine(input) {
		switch {
		case strings.HasPrefix(line, "Sequence: "):
			chr = firstField(strings.TrimPrefix(line, "Sequence: "))
			count = 0
		case strings.HasPrefix(line, "@"):
			chr = firstField(strings.TrimPrefix(line, "@"))
			count = 0
		case isRecordLine(line):
			curr = parseLine(line)
			curr.Chr = chr
			count++
			curr.SetCount(count)
			c <- curr
		}
	}
	err := input.Close()
	exception.PanicOnErr(err)
	close(c)
}

func firstField(s string) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}
	return words[0]
}
