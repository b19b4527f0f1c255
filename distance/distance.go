// Package distance tracks candidate periods reported by the tuple index and decides when
// the evidence for a period is strong enough to attempt an alignment.
package distance

import (
	"github.com/dasnellings/trfTools/params"
	"github.com/dasnellings/trfTools/stats"
	"github.com/dasnellings/trfTools/tuple"
)

const (
	SmallDistance     int = 20 // periods at or below use the full window rule only
	MinWindow         int = 20
	Multiples         int = 3 // evidence capacity as a multiple of the window
	tagSep            int = 50
	recenterCriterion int = 3
)

// Fire is called when a period has accumulated enough evidence at position loc.
type Fire func(period, loc int)

type entry struct {
	loc     int
	size    int
	floor   int // covered position before this entry was added
	start   int // first position covered by this entry, exclusive
	contrib int
}

// record is the evidence for a single period. Linked records form a list in ascending
// order of period, with records[0] as the sentinel.
type record struct {
	period    int
	lo, hi    int
	window    int
	runSum    int
	waiting   int // 0 when the waiting time criterion does not apply
	linked    bool
	prev      int
	next      int
	ring      []entry
	head      int
	count     int
	covered   int
	coveredTo int
}

// Tracker holds one record per possible period for a single sequence.
type Tracker struct {
	maxDistance int
	maxRadius   int
	records     []record
	tags        []int // smallest linked period in each bucket of tagSep periods, 0 if none
}

// NewTracker builds the records and their acceptance criteria for periods 1 to maxDistance.
func NewTracker(p params.Params, maxDistance int) *Tracker {
	pm := float64(p.PM) / 100
	pi := float64(p.PI) / 100
	t := &Tracker{
		maxDistance: maxDistance,
		maxRadius:   stats.BandRadius(maxDistance, pi),
		records:     make([]record, maxDistance+1),
		tags:        make([]int, maxDistance/tagSep+1),
	}

	waiting := make(map[int]int)
	var r *record
	var radius, g int
	var found bool
	for d := 1; d <= maxDistance; d++ {
		r = &t.records[d]
		r.period = d
		radius = stats.BandRadius(d, pi)
		r.lo, r.hi = d-radius, d+radius
		if r.lo < 1 {
			r.lo = 1
		}
		if r.hi > maxDistance {
			r.hi = maxDistance
		}
		r.window = d
		if r.window < MinWindow {
			r.window = MinWindow
		}
		g = tuple.SizeFor(d)
		r.runSum = stats.RunSumCriterion(r.window, g, pm)
		if d > SmallDistance {
			if r.waiting, found = waiting[g]; !found {
				r.waiting = stats.WaitingTimeCriterion(g, pm)
				waiting[g] = r.waiting
			}
		}
	}
	return t
}

// Reset unlinks every record so the Tracker can be reused for a new sequence.
func (t *Tracker) Reset() {
	for i := range t.records {
		t.records[i].linked = false
		t.records[i].prev, t.records[i].next = 0, 0
		t.records[i].clear()
	}
	for i := range t.tags {
		t.tags[i] = 0
	}
}

// Band returns the range of distances that count as evidence for period.
func (t *Tracker) Band(period int) (lo, hi int) {
	return t.records[period].lo, t.records[period].hi
}

// Criteria returns the run sum and waiting time thresholds for period.
func (t *Tracker) Criteria(period int) (runSum, waiting int) {
	return t.records[period].runSum, t.records[period].waiting
}

// Active returns the linked periods in ascending order.
func (t *Tracker) Active() []int {
	var ans []int
	for p := t.records[0].next; p != 0; p = t.records[p].next {
		ans = append(ans, p)
	}
	return ans
}

// Add records a tuple of the input size ending at loc that repeats dist positions earlier.
// The distance counts as evidence for every active period whose band contains it, and fire
// is called for each period whose criteria are met.
func (t *Tracker) Add(loc, dist, size int, fire Fire) {
	if dist < 1 || dist > t.maxDistance {
		return
	}
	if !t.records[dist].linked {
		t.link(dist)
	}

	q := dist - t.maxRadius
	if q < 1 {
		q = 1
	}
	var r *record
	var next int
	for p := t.lowestAtLeast(q); p != 0 && p <= dist+t.maxRadius; p = next {
		r = &t.records[p]
		next = r.next
		if dist < r.lo || dist > r.hi {
			if r.stale(loc) {
				t.unlink(p)
			}
			continue
		}
		r.add(loc, size)
		if r.ready(loc) {
			fire(p, loc)
			r.recenter(loc)
		}
	}
}

func (t *Tracker) lowestAtLeast(q int) int {
	var p int
	for b := q / tagSep; b < len(t.tags); b++ {
		if t.tags[b] == 0 {
			continue
		}
		for p = t.tags[b]; p != 0 && p < q; p = t.records[p].next {
		}
		return p
	}
	return 0
}

func (t *Tracker) link(p int) {
	succ := t.lowestAtLeast(p)
	pred := t.records[succ].prev
	r := &t.records[p]
	r.prev, r.next = pred, succ
	t.records[pred].next = p
	t.records[succ].prev = p
	r.linked = true
	r.clear()
	if r.ring == nil {
		r.ring = make([]entry, Multiples*r.window)
	}

	b := p / tagSep
	if t.tags[b] == 0 || p < t.tags[b] {
		t.tags[b] = p
	}
}

func (t *Tracker) unlink(p int) {
	r := &t.records[p]
	t.records[r.prev].next = r.next
	t.records[r.next].prev = r.prev
	b := p / tagSep
	if t.tags[b] == p {
		if r.next != 0 && r.next/tagSep == b {
			t.tags[b] = r.next
		} else {
			t.tags[b] = 0
		}
	}
	r.prev, r.next = 0, 0
	r.linked = false
	r.clear()
}

func (r *record) clear() {
	r.head, r.count, r.covered, r.coveredTo = 0, 0, 0, 0
}

func (r *record) at(i int) *entry {
	return &r.ring[(r.head+i)%len(r.ring)]
}

func (r *record) popOldest() {
	r.covered -= r.at(0).contrib
	r.head = (r.head + 1) % len(r.ring)
	r.count--
}

func (r *record) evict(loc int) {
	for r.count > 0 && r.at(0).loc <= loc-r.window {
		r.popOldest()
	}
}

func (r *record) add(loc, size int) {
	r.evict(loc)
	if r.count > 0 {
		last := r.at(r.count - 1)
		if last.loc == loc {
			start := maxInt(last.floor, loc-size)
			if start < last.start {
				r.covered += last.start - start
				last.contrib += last.start - start
				last.start = start
				last.size = size
			}
			return
		}
	}

	if r.count == len(r.ring) {
		r.popOldest()
	}
	start := maxInt(r.coveredTo, loc-size)
	r.ring[(r.head+r.count)%len(r.ring)] = entry{loc: loc, size: size, floor: r.coveredTo, start: start, contrib: loc - start}
	r.count++
	r.covered += loc - start
	r.coveredTo = loc
}

// ready checks the run sum criterion and, for periods above SmallDistance, that no gap
// between evidence in the window exceeds the waiting time criterion.
func (r *record) ready(loc int) bool {
	if r.covered < r.runSum {
		return false
	}
	if r.waiting == 0 {
		return true
	}
	prev := loc - r.window
	var e *entry
	for i := 0; i < r.count; i++ {
		e = r.at(i)
		if e.loc-prev > r.waiting {
			return false
		}
		prev = e.loc
	}
	return true
}

// recenter keeps only the evidence in the most recent third of the window so the same
// region does not immediately trigger again.
func (r *record) recenter(loc int) {
	cut := loc - r.window/recenterCriterion
	for r.count > 0 && r.at(0).loc <= cut {
		r.popOldest()
	}
	if r.count == 0 {
		return
	}
	if first := r.at(0); first.start < cut {
		r.covered -= cut - first.start
		first.contrib -= cut - first.start
		first.start = cut
	}
}

func (r *record) stale(loc int) bool {
	return r.count == 0 || r.at(r.count-1).loc <= loc-r.window
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
