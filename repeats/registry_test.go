package repeats

import (
	"math/rand"
	"testing"
)

func rec(count, first, last, period, score int) Record {
	r := Record{First: first, Last: last, Period: period, Score: score}
	r.SetCount(count)
	return r
}

func TestRedundantMultiple(t *testing.T) {
	a := rec(1, 1, 300, 10, 80)
	b := rec(2, 1, 300, 20, 82)
	if !IsRedundant(b, a) || IsRedundant(a, b) {
		t.Error("expected only the period 20 repeat to be redundant")
	}
	ans := RemoveRedundancy([]Record{a, b})
	if len(ans) != 1 || ans[0].Period != 10 {
		t.Error("unexpected survivors:", ans)
	}

	// order in the input does not matter
	ans = RemoveRedundancy([]Record{b, a})
	if len(ans) != 1 || ans[0].Period != 10 {
		t.Error("unexpected survivors:", ans)
	}
}

func TestIsRedundant(t *testing.T) {
	tests := []struct {
		i, j     Record
		expected bool
	}{
		{rec(1, 1, 10, 20, 88), rec(2, 1, 10, 10, 80), true},
		{rec(1, 1, 10, 20, 89), rec(2, 1, 10, 10, 80), false},
		{rec(1, 1, 10, 10, 80), rec(2, 1, 10, 10, 80), true},
		{rec(1, 1, 10, 10, 81), rec(2, 1, 10, 10, 80), false},
		{rec(1, 1, 10, 15, 10), rec(2, 1, 10, 10, 80), false},
		{rec(1, 1, 10, 5, 10), rec(2, 1, 10, 10, 80), false},
	}
	for k, test := range tests {
		if IsRedundant(test.i, test.j) != test.expected {
			t.Errorf("case %d: expected %v", k, test.expected)
		}
	}
}

func TestOverlap(t *testing.T) {
	tests := []struct {
		a, b     Record
		expected int
	}{
		{rec(1, 1, 10, 1, 1), rec(2, 5, 20, 1, 1), 6},
		{rec(1, 1, 10, 1, 1), rec(2, 10, 20, 1, 1), 1},
		{rec(1, 1, 10, 1, 1), rec(2, 11, 20, 1, 1), 0},
		{rec(1, 1, 100, 1, 1), rec(2, 20, 30, 1, 1), 11},
	}
	for _, test := range tests {
		if Overlap(test.a, test.b) != test.expected || Overlap(test.b, test.a) != test.expected {
			t.Errorf("expected overlap %d for %s and %s, found %d and %d", test.expected, test.a.Label, test.b.Label, Overlap(test.a, test.b), Overlap(test.b, test.a))
		}
	}
}

func TestLowOverlapKept(t *testing.T) {
	a := rec(1, 1, 100, 10, 100)
	b := rec(2, 50, 150, 10, 90)
	ans := RemoveRedundancy([]Record{a, b})
	if len(ans) != 2 {
		t.Error("repeats overlapping by half were merged:", ans)
	}
}

func randomRecords(rng *rand.Rand, n int) []Record {
	periods := []int{2, 3, 4, 6, 7, 8, 12, 16}
	ans := make([]Record, n)
	var first int
	for i := range ans {
		first = rng.Intn(500) + 1
		ans[i] = rec(i+1, first, first+rng.Intn(100), periods[rng.Intn(len(periods))], rng.Intn(200)+50)
	}
	return ans
}

func TestRemoveRedundancyIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var once, twice []Record
	for trial := 0; trial < 50; trial++ {
		recs := randomRecords(rng, 40)
		SortByIndex(recs)
		once = RemoveRedundancy(recs)
		twice = RemoveRedundancy(append([]Record(nil), once...))
		if len(once) != len(twice) {
			t.Fatalf("trial %d: %d records after one pass, %d after two", trial, len(once), len(twice))
		}
		for i := range once {
			if once[i].Count != twice[i].Count {
				t.Fatalf("trial %d: passes disagree at %d", trial, i)
			}
		}
		for i := range once {
			for j := range once {
				if i == j {
					continue
				}
				overlap := Overlap(once[i], once[j])
				if float64(overlap)/float64(once[i].Len()) >= minRedundantOverlap && IsRedundant(once[i], once[j]) {
					t.Fatalf("trial %d: %s is redundant with %s", trial, once[i].Label, once[j].Label)
				}
			}
		}
	}
}

func TestSortRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	recs := randomRecords(rng, 100)
	SortByIndex(recs)
	for i := 1; i < len(recs); i++ {
		if recs[i].First < recs[i-1].First {
			t.Fatal("not sorted by first position")
		}
		if recs[i].First == recs[i-1].First && recs[i].Count < recs[i-1].Count {
			t.Fatal("sort by first position is not stable")
		}
	}
	SortByCount(recs)
	for i := range recs {
		if recs[i].Count != i+1 {
			t.Fatal("discovery order not restored at", i)
		}
	}
}

func TestFinalize(t *testing.T) {
	var g Registry
	g.Add(Record{First: 1, Last: 300, Period: 10, Score: 580})
	g.Add(Record{First: 1, Last: 300, Period: 20, Score: 560})
	g.Add(Record{First: 400, Last: 2000, Period: 600, Score: 900})
	g.Add(Record{First: 350, Last: 390, Period: 4, Score: 60})
	g.Add(Record{First: 1, Last: 300, Period: 30, Score: 540})

	ans := g.Finalize(500, false)
	if len(ans) != 2 || ans[0].Count != 1 || ans[1].Count != 4 {
		t.Error("unexpected survivors:", ans)
	}

	g.Reset()
	g.Add(Record{First: 1, Last: 300, Period: 10, Score: 580})
	g.Add(Record{First: 1, Last: 300, Period: 20, Score: 560})
	ans = g.Finalize(500, true)
	if len(ans) != 2 || ans[0].Count != 1 {
		t.Error("redundancy removed when disabled:", ans)
	}
}
