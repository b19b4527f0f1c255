// Package wrapalign aligns a sequence against itself offset by a candidate period using
// banded affine gap dynamic programming, extending outward from an anchor position.
package wrapalign

import (
	"errors"
	"fmt"
	"github.com/dasnellings/trfTools/params"
	"github.com/dasnellings/trfTools/stats"
	"github.com/vertgenlab/gonomics/dna"
	"math"
)

const (
	MaxBandWidth  int = 150
	MinBandRadius int = 6
	xdropFactor   int = 4
	stride        int = MaxBandWidth + 1
	negInf        int = math.MinInt32 / 2
)

// direction matrix bits
const (
	srcStop byte = 0
	srcDiag byte = 1
	srcE    byte = 2 // primary symbol against a gap
	srcF    byte = 3 // historical symbol against a gap
	srcMask byte = 3
	extE    byte = 4
	extF    byte = 8
)

const (
	stateH = iota
	stateE
	stateF
)

// MaxMatrixCells limits the size of the direction matrix allocated for one sequence.
var MaxMatrixCells = 1 << 30

// ErrMatrixTooLarge is returned when the direction matrix for a sequence would exceed MaxMatrixCells.
var ErrMatrixTooLarge = errors.New("alignment matrix too large")

// Pair is one column of an alignment. X is the position in the primary copy and Y the
// position in the historical copy, both 1-based. A value of 0 is a gap.
type Pair struct {
	X int
	Y int
}

// Result is the alignment of a sequence region against itself offset by Period.
type Result struct {
	Period     int
	Score      int
	First      int // earliest position in the alignment
	Last       int // latest position in the alignment
	Matches    int
	Mismatches int
	Indels     int
	Pairs      []Pair
	Prime      []dna.Base
	Second     []dna.Base
}

// Length is the number of sequence positions spanned by the alignment.
func (r Result) Length() int {
	if len(r.Pairs) == 0 {
		return 0
	}
	return r.Last - r.First + 1
}

// Drift returns the diagonal X-Y holding the most aligned pairs and reports whether it
// holds more than twice the pairs on the diagonal at Period. Ties keep Period, then the
// smallest diagonal.
func (r Result) Drift() (offset int, drifted bool) {
	counts := make(map[int]int)
	for _, p := range r.Pairs {
		if p.X != 0 && p.Y != 0 {
			counts[p.X-p.Y]++
		}
	}
	offset = r.Period
	best := counts[r.Period]
	for o, n := range counts {
		if n > best || (n == best && offset != r.Period && o < offset) {
			offset, best = o, n
		}
	}
	return offset, best > 2*counts[r.Period]
}

// Aligner holds the direction matrix and row buffers for one sequence.
type Aligner struct {
	seq       []dna.Base
	scores    ScoreTable
	gapOpen   int
	gapExtend int
	xdrop     int
	pi        float64
	rows      int
	dir       []byte
	h, e, f   []int
	hp, ep    []int
}

// walk describes one extension direction from the anchor.
type walk struct {
	forward bool
	x0      int // position of step 0
	radius  int
	period  int
	eSrc    int // column offset of the source of a primary gap, in the previous row
	fSrc    int // column offset of the source of a historical gap, in the same row
}

func (w walk) x(s int) int {
	if w.forward {
		return w.x0 + s
	}
	return w.x0 - s
}

func (w walk) y(s, k int) int {
	return w.x(s) - w.period + k - w.radius
}

// NewAligner allocates a direction matrix for seq. The number of rows is the wrap length,
// the sequence length capped at MaxWrapLength.
func NewAligner(p params.Params, seq []dna.Base) (*Aligner, error) {
	rows := p.WrapLength(len(seq)) + 1
	if rows > MaxMatrixCells/stride {
		return nil, fmt.Errorf("%w: %d rows by %d columns exceeds %d cells, lower the maximum wrap length", ErrMatrixTooLarge, rows, stride, MaxMatrixCells)
	}
	penalty := p.Mismatch
	if p.Indel > penalty {
		penalty = p.Indel
	}
	extend := (p.Indel + 1) / 2
	if extend < 1 {
		extend = 1
	}
	return &Aligner{
		seq:       seq,
		scores:    NewScoreTable(p.Match, p.Mismatch),
		gapOpen:   p.Indel,
		gapExtend: extend,
		xdrop:     xdropFactor * penalty,
		pi:        float64(p.PI) / 100,
		rows:      rows,
		dir:       make([]byte, rows*stride),
		h:         make([]int, stride),
		e:         make([]int, stride),
		f:         make([]int, stride),
		hp:        make([]int, stride),
		ep:        make([]int, stride),
	}, nil
}

// Radius returns the number of diagonals searched on either side of period.
func (a *Aligner) Radius(period int) int {
	r := stats.BandRadius(period, a.pi)
	if r < MinBandRadius {
		r = MinBandRadius
	}
	if r > MaxBandWidth/2 {
		r = MaxBandWidth / 2
	}
	return r
}

// Align extends an alignment of the sequence against itself offset by period in both
// directions from the pairing of position loc with position loc-period.
func (a *Aligner) Align(period, loc int) Result {
	ans := Result{Period: period}
	if period < 1 || loc-period < 1 || loc > len(a.seq) {
		return ans
	}
	radius := a.Radius(period)

	back := walk{forward: false, x0: loc + 1, radius: radius, period: period, eSrc: -1, fSrc: 1}
	backScore, backStep, backCol := a.extend(back)
	pairs := a.traceback(back, backStep, backCol, nil)

	fwd := walk{forward: true, x0: loc, radius: radius, period: period, eSrc: 1, fSrc: -1}
	fwdScore, fwdStep, fwdCol := a.extend(fwd)
	start := len(pairs)
	pairs = a.traceback(fwd, fwdStep, fwdCol, pairs)
	for i, j := start, len(pairs)-1; i < j; i, j = i+1, j-1 {
		pairs[i], pairs[j] = pairs[j], pairs[i]
	}

	ans.Score = backScore + fwdScore
	ans.Pairs = pairs
	a.summarize(&ans)
	return ans
}

func (a *Aligner) valid(w walk, s, k int) bool {
	x, y := w.x(s), w.y(s, k)
	if y < 1 || y >= x {
		return false
	}
	return !w.forward || x <= len(a.seq)
}

// extend fills the direction matrix outward from the anchor until the X-drop condition,
// the sequence end, or the wrap length stops it. It returns the best score and its cell.
func (a *Aligner) extend(w walk) (best, bestStep, bestCol int) {
	cols := 2*w.radius + 1
	var k, s int
	for k = 0; k < cols; k++ {
		a.h[k], a.e[k], a.f[k] = negInf, negInf, negInf
	}

	// step 0 holds the anchor and gaps in the historical copy reached from it
	a.h[w.radius] = 0
	a.dir[w.radius] = srcStop
	for k = w.radius - w.fSrc; k >= 0 && k < cols; k -= w.fSrc {
		if !a.valid(w, 0, k) {
			break
		}
		a.f[k], a.dir[k] = a.gap(a.h[k+w.fSrc], a.f[k+w.fSrc], extF)
		a.h[k] = a.f[k]
		a.dir[k] |= srcF
	}
	best, bestStep, bestCol = 0, 0, w.radius

	var alive bool
	var row, diag, ev, fv, first, last int
	var d, fd, src byte
	for s = 1; s < a.rows; s++ {
		a.h, a.hp = a.hp, a.h
		a.e, a.ep = a.ep, a.e
		if w.forward && w.x(s) > len(a.seq) {
			break
		}
		if !w.forward && w.x(s) < 2 {
			break
		}
		row = (s % a.rows) * stride
		first, last = 0, cols-1
		if w.fSrc > 0 {
			first, last = cols-1, 0
		}
		alive = false
		for k = first; ; k -= w.fSrc {
			a.h[k], a.e[k], a.f[k] = negInf, negInf, negInf
			if a.valid(w, s, k) {
				diag = negInf
				if a.hp[k] > negInf {
					diag = a.hp[k] + a.scores.Score(a.seq[w.x(s)-1], a.seq[w.y(s, k)-1])
				}
				ev, d = negInf, 0
				if k+w.eSrc >= 0 && k+w.eSrc < cols {
					ev, d = a.gap(a.hp[k+w.eSrc], a.ep[k+w.eSrc], extE)
				}
				fv, fd = negInf, 0
				if k+w.fSrc >= 0 && k+w.fSrc < cols {
					fv, fd = a.gap(a.h[k+w.fSrc], a.f[k+w.fSrc], extF)
				}
				a.e[k], a.f[k] = ev, fv
				a.h[k], src = diag, srcDiag
				if ev > a.h[k] {
					a.h[k], src = ev, srcE
				}
				if fv > a.h[k] {
					a.h[k], src = fv, srcF
				}
				if a.h[k] <= negInf {
					src = srcStop
				}
				a.dir[row+k] = d | fd | src
				if a.h[k] > best {
					best, bestStep, bestCol = a.h[k], s, k
				}
			}
			if k == last {
				break
			}
		}

		for k = 0; k < cols; k++ {
			if a.h[k] < best-a.xdrop {
				a.h[k], a.e[k], a.f[k] = negInf, negInf, negInf
			} else {
				alive = true
			}
		}
		if !alive {
			break
		}
	}
	return best, bestStep, bestCol
}

// gap returns the best score for a gap column from an open or an extension, and the
// extension bit when the gap was extended.
func (a *Aligner) gap(h, g int, ext byte) (int, byte) {
	open, extend := negInf, negInf
	if h > negInf {
		open = h - a.gapOpen
	}
	if g > negInf {
		extend = g - a.gapExtend
	}
	if extend > open {
		return extend, ext
	}
	return open, 0
}

// traceback appends the alignment columns from the best cell back to the anchor. Backward
// walks come out in sequence order, forward walks in reverse.
func (a *Aligner) traceback(w walk, s, k int, pairs []Pair) []Pair {
	state := stateH
	var d byte
	for {
		d = a.dir[(s%a.rows)*stride+k]
		switch state {
		case stateH:
			switch d & srcMask {
			case srcStop:
				return pairs
			case srcDiag:
				pairs = append(pairs, Pair{X: w.x(s), Y: w.y(s, k)})
				s--
			case srcE:
				state = stateE
			case srcF:
				state = stateF
			}
		case stateE:
			pairs = append(pairs, Pair{X: w.x(s)})
			if d&extE == 0 {
				state = stateH
			}
			s--
			k += w.eSrc
		case stateF:
			pairs = append(pairs, Pair{Y: w.y(s, k)})
			if d&extF == 0 {
				state = stateH
			}
			k += w.fSrc
		}
	}
}

func (a *Aligner) summarize(r *Result) {
	r.Prime = make([]dna.Base, len(r.Pairs))
	r.Second = make([]dna.Base, len(r.Pairs))
	r.First, r.Last = 0, 0
	for i, p := range r.Pairs {
		r.Prime[i], r.Second[i] = dna.Gap, dna.Gap
		if p.X != 0 {
			r.Prime[i] = a.seq[p.X-1]
			if p.X > r.Last {
				r.Last = p.X
			}
		}
		if p.Y != 0 {
			r.Second[i] = a.seq[p.Y-1]
			if r.First == 0 || p.Y < r.First {
				r.First = p.Y
			}
		}
		switch {
		case p.X == 0 || p.Y == 0:
			r.Indels++
		case r.Prime[i] == r.Second[i] && a.scores.Score(r.Prime[i], r.Second[i]) > 0:
			r.Matches++
		default:
			r.Mismatches++
		}
	}
}
