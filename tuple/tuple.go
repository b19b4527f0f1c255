// Package tuple finds repeated short substrings (tuples) in a sequence and reports the
// distance between each occurrence and its earlier occurrences as candidate periods.
package tuple

import (
	"github.com/vertgenlab/gonomics/dna"
)

// Sizes are the tuple lengths indexed, smallest first.
var Sizes = []int{3, 4, 5, 7}

// fixed maximum distances for the small tuple sizes; larger sizes use the sequence maximum
var smallSizeMaxDistance = map[int]int{3: 29, 4: 159}

// SizeFor returns the smallest tuple size that reports distance d.
func SizeFor(d int) int {
	for _, k := range Sizes {
		if limit, found := smallSizeMaxDistance[k]; !found || d <= limit {
			return k
		}
	}
	return Sizes[len(Sizes)-1]
}

// Emit receives a candidate period dist supported by a tuple of length size
// ending at 1-based position loc.
type Emit func(loc, dist, size int)

type entry struct {
	abs  int // absolute insertion number, identifies recycled slots
	loc  int
	prev int // absolute insertion number of the previous entry with the same code, -1 if none
	code int
}

// history is a bounded FIFO table of tuple occurrences for one tuple size.
type history struct {
	size        int
	maxDistance int
	mask        int
	code        int
	run         int // number of consecutive nucleotides ending at the current position
	entries     []entry
	last        []int // most recent absolute insertion number for each code
	inserted    int
}

// Indexer holds the tuple histories for one sequence.
type Indexer struct {
	tables []history
}

// NewIndexer allocates histories for every tuple size. Sizes 3 and 4 report distances up
// to fixed limits, larger tuples report distances up to maxDistance.
func NewIndexer(maxDistance int) *Indexer {
	ans := &Indexer{tables: make([]history, len(Sizes))}
	var md int
	var found bool
	for i, k := range Sizes {
		if md, found = smallSizeMaxDistance[k]; !found || md > maxDistance {
			md = maxDistance
		}
		ans.tables[i] = history{
			size:        k,
			maxDistance: md,
			mask:        1<<(2*k) - 1,
			entries:     make([]entry, md+1),
			last:        make([]int, 1<<(2*k)),
		}
	}
	ans.Reset()
	return ans
}

// Reset clears all histories so the Indexer can be reused for a new sequence.
func (idx *Indexer) Reset() {
	var i, j int
	for i = range idx.tables {
		h := &idx.tables[i]
		h.code, h.run, h.inserted = 0, 0, 0
		for j = range h.last {
			h.last[j] = -1
		}
		for j = range h.entries {
			h.entries[j].abs = -1
		}
	}
}

// MaxDistance returns the largest distance reported for tuples of length size.
func (idx *Indexer) MaxDistance(size int) int {
	for i := range idx.tables {
		if idx.tables[i].size == size {
			return idx.tables[i].maxDistance
		}
	}
	return 0
}

// Index scans seq from start to end and calls emit for every distance between a tuple and
// an earlier occurrence of the same tuple. Positions are 1-based. Any symbol other than
// A, C, G, or T breaks all tuples that contain it.
func (idx *Indexer) Index(seq []dna.Base, emit Emit) {
	var i, t int
	for i = range seq {
		for t = range idx.tables {
			idx.tables[t].next(i+1, seq[i], emit)
		}
	}
}

func (h *history) next(loc int, b dna.Base, emit Emit) {
	switch b {
	case dna.A, dna.C, dna.G, dna.T:
		h.code = (h.code<<2 | int(b)) & h.mask
		h.run++
	default:
		h.code, h.run = 0, 0
		return
	}
	if h.run < h.size {
		return
	}

	capacity := len(h.entries)
	var e entry
	for a := h.last[h.code]; a >= 0; a = e.prev {
		e = h.entries[a%capacity]
		if e.abs != a || e.code != h.code || e.loc >= loc {
			break // slot was recycled
		}
		if loc-e.loc > h.maxDistance {
			break
		}
		emit(loc, loc-e.loc, h.size)
	}

	h.entries[h.inserted%capacity] = entry{abs: h.inserted, loc: loc, prev: h.last[h.code], code: h.code}
	h.last[h.code] = h.inserted
	h.inserted++
}
