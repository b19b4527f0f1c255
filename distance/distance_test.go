package distance

import (
	"github.com/dasnellings/trfTools/params"
	"github.com/dasnellings/trfTools/tuple"
	"github.com/vertgenlab/gonomics/dna"
	"strings"
	"testing"
)

func TestBands(t *testing.T) {
	tr := NewTracker(params.Default(), 200)
	tests := []struct {
		period, lo, hi int
	}{
		{1, 1, 2},
		{10, 7, 13},
		{200, 189, 200},
	}
	var lo, hi int
	for _, test := range tests {
		lo, hi = tr.Band(test.period)
		if lo != test.lo || hi != test.hi {
			t.Errorf("period %d: expected [%d,%d], found [%d,%d]", test.period, test.lo, test.hi, lo, hi)
		}
	}

	runSum, waiting := tr.Criteria(10)
	if runSum != 8 || waiting != 0 {
		t.Error("unexpected criteria for period 10:", runSum, waiting)
	}
	runSum, waiting = tr.Criteria(30)
	if runSum != 11 || waiting == 0 {
		t.Error("unexpected criteria for period 30:", runSum, waiting)
	}
}

func TestFireAndRecenter(t *testing.T) {
	tr := NewTracker(params.Default(), 200)
	var fired []int
	for loc := 13; loc <= 22; loc++ {
		tr.Add(loc, 10, 3, func(period, loc int) {
			if period != 10 {
				t.Error("unexpected period fired:", period)
			}
			fired = append(fired, loc)
		})
	}
	if len(fired) != 3 || fired[0] != 18 || fired[1] != 20 || fired[2] != 22 {
		t.Error("unexpected fire locations:", fired)
	}
}

func TestStaleRecordsUnlinked(t *testing.T) {
	tr := NewTracker(params.Default(), 200)
	noop := func(period, loc int) {}
	tr.Add(5, 10, 3, noop)
	tr.Add(5, 60, 4, noop)
	active := tr.Active()
	if len(active) != 2 || active[0] != 10 || active[1] != 60 {
		t.Error("unexpected active periods:", active)
	}

	// 15 is outside the band of 10, and 10 has no evidence within its window
	tr.Add(100, 15, 3, noop)
	active = tr.Active()
	if len(active) != 2 || active[0] != 15 || active[1] != 60 {
		t.Error("stale period not removed:", active)
	}

	tr.Reset()
	if len(tr.Active()) != 0 {
		t.Error("reset left active periods:", tr.Active())
	}
}

func TestActiveOrdering(t *testing.T) {
	tr := NewTracker(params.Default(), 500)
	noop := func(period, loc int) {}
	order := []int{300, 7, 151, 52, 499, 1, 100, 149, 50}
	for i, d := range order {
		tr.Add(1000+i, d, 5, noop)
	}
	active := tr.Active()
	if len(active) != len(order) {
		t.Error("unexpected active periods:", active)
	}
	for i := 1; i < len(active); i++ {
		if active[i] <= active[i-1] {
			t.Error("active periods out of order:", active)
		}
	}
	for b := range tr.tags {
		var expected int
		for _, p := range active {
			if p/tagSep == b {
				expected = p
				break
			}
		}
		if tr.tags[b] != expected {
			t.Errorf("bucket %d: expected tag %d, found %d", b, expected, tr.tags[b])
		}
	}
}

func TestPerfectRepeatFiresPeriod(t *testing.T) {
	seq := dna.StringToBases(strings.Repeat("ACGTTAGCCA", 30))
	idx := tuple.NewIndexer(200)
	tr := NewTracker(params.Default(), 200)
	first := make(map[int]int)
	idx.Index(seq, func(loc, dist, size int) {
		tr.Add(loc, dist, size, func(period, loc int) {
			if _, found := first[period]; !found {
				first[period] = loc
			}
		})
	})
	if first[10] != 18 {
		t.Error("expected period 10 to fire at 18, found", first[10])
	}
	for period := range first {
		if period%10 != 0 {
			t.Error("unexpected period fired:", period)
		}
	}
}
