// Package consensus builds the repeat unit from a self-alignment by majority vote over
// every copy in the alignment.
package consensus

import (
	"errors"
	"github.com/dasnellings/trfTools/repeats"
	"github.com/dasnellings/trfTools/wrapalign"
	"github.com/vertgenlab/gonomics/dna"
	"gonum.org/v1/gonum/stat"
	"math"
)

// ErrNoConsensus is returned when an alignment holds no columns to vote on.
var ErrNoConsensus = errors.New("alignment does not define a consensus")

// slot is a position in the consensus. Main positions are numbered modulo the period,
// symbols inserted after main position pos are numbered from 1.
type slot struct {
	pos int
	ins int
}

type tally struct {
	bases [4]int // A, C, G, T
	other int
}

func (t *tally) letters() int {
	return t.bases[0] + t.bases[1] + t.bases[2] + t.bases[3] + t.other
}

func (t *tally) vote(b dna.Base) {
	switch b {
	case dna.A, dna.C, dna.G, dna.T:
		t.bases[b]++
	default:
		t.other++
	}
}

// majority returns the most common nucleotide, preferring A, C, G, T in that order on ties.
func (t *tally) majority() dna.Base {
	best := -1
	var ans dna.Base = dna.N
	for i, c := range t.bases {
		if c > 0 && c > best {
			best = c
			ans = dna.Base(i)
		}
	}
	return ans
}

// Build turns an alignment of seq against itself into a repeat record. Every position of
// the first copy votes for a main slot, and each later position votes for the slot of the
// position it is aligned to. A slot enters the consensus when more than half the copies
// vote for it. A consensus that is itself an exact tandem repeat is reduced to its unit.
// The discovery count is left for the caller to assign.
func Build(seq []dna.Base, r wrapalign.Result) (repeats.Record, error) {
	var ans repeats.Record
	if len(r.Pairs) == 0 || r.Period < 1 || r.First < 1 || r.Last > len(seq) {
		return ans, ErrNoConsensus
	}

	width := r.Period
	labels := make([]slot, r.Last-r.First+1)
	main := make([]tally, width)
	inserts := make(map[slot]*tally)
	get := func(s slot) *tally {
		if s.ins == 0 {
			return &main[s.pos]
		}
		t, found := inserts[s]
		if !found {
			t = new(tally)
			inserts[s] = t
		}
		return t
	}

	// positions never aligned as primary make up the first copy
	firstPrime := r.Last + 1
	for _, p := range r.Pairs {
		if p.X != 0 && p.X < firstPrime {
			firstPrime = p.X
		}
	}
	var i int
	for i = 0; i < firstPrime-r.First; i++ {
		labels[i] = slot{pos: i % width}
		main[i%width].vote(seq[r.First-1+i])
	}

	var prev, curr slot
	for _, p := range r.Pairs {
		switch {
		case p.X != 0 && p.Y != 0:
			curr = labels[p.Y-r.First]
		case p.X != 0:
			prev = labels[p.X-1-r.First]
			curr = slot{pos: prev.pos, ins: prev.ins + 1}
		default:
			continue
		}
		labels[p.X-r.First] = curr
		get(curr).vote(seq[p.X-1])
	}

	half := float64(r.Last-r.First+1) / float64(width) / 2
	var pattern []dna.Base
	var t *tally
	var found bool
	var ins int
	for i = 0; i < width; i++ {
		if float64(main[i].letters()) > half {
			pattern = append(pattern, main[i].majority())
		}
		for ins = 1; ; ins++ {
			if t, found = inserts[slot{pos: i, ins: ins}]; !found {
				break
			}
			if float64(t.letters()) > half {
				pattern = append(pattern, t.majority())
			}
		}
	}
	if len(pattern) == 0 {
		return ans, ErrNoConsensus
	}

	ans.Period = r.Period
	if n, unit := repeats.PrimitiveUnit(pattern); n > 1 {
		pattern = unit
		ans.Period = len(unit)
	}
	ans.First = r.First
	ans.Last = r.Last
	ans.Seq = pattern
	ans.ConsensusSize = len(pattern)
	ans.CopyNum = float64(r.Last-r.First+1) / float64(len(pattern))
	ans.Score = r.Score
	columns := float64(len(r.Pairs))
	ans.PerMatch = percent(float64(r.Matches) / columns)
	ans.PerIndel = percent(float64(r.Indels) / columns)
	ans.A, ans.C, ans.G, ans.T, ans.Entropy = composition(seq[r.First-1 : r.Last])
	return ans, nil
}

// composition returns the percent of each nucleotide in seq and the entropy in bits
// of their distribution.
func composition(seq []dna.Base) (a, c, g, t int, entropy float64) {
	var counts [4]float64
	for _, b := range seq {
		switch b {
		case dna.A, dna.C, dna.G, dna.T:
			counts[b]++
		}
	}
	total := counts[0] + counts[1] + counts[2] + counts[3]
	if total == 0 {
		return 0, 0, 0, 0, 0
	}
	freqs := make([]float64, 4)
	for i := range counts {
		freqs[i] = counts[i] / total
	}
	length := float64(len(seq))
	return percent(counts[0] / length), percent(counts[1] / length), percent(counts[2] / length), percent(counts[3] / length), stat.Entropy(freqs) / math.Ln2
}

func percent(frac float64) int {
	return int(100*frac + 0.5)
}
