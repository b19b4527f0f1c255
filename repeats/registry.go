package repeats

import (
	"golang.org/x/exp/slices"
	"sort"
)

const (
	minRedundantOverlap float64 = 0.9
	multipleScoreSlack  float64 = 1.1
)

// Registry collects the repeats found in one sequence and reduces them to the final
// non-redundant set.
type Registry struct {
	Records []Record
	next    int
}

// Add appends r with the next discovery count and returns the count assigned.
func (g *Registry) Add(r Record) int {
	g.next++
	r.SetCount(g.next)
	g.Records = append(g.Records, r)
	return g.next
}

// Reset clears the registry for a new sequence.
func (g *Registry) Reset() {
	g.Records = nil
	g.next = 0
}

// Finalize filters repeats with a period above maxPeriod, removes redundant repeats unless
// redundancyOff, and returns the survivors in order of discovery.
func (g *Registry) Finalize(maxPeriod int, redundancyOff bool) []Record {
	g.Records = RemoveBySize(g.Records, maxPeriod)
	SortByIndex(g.Records)
	if !redundancyOff {
		g.Records = RemoveRedundancy(g.Records)
	}
	SortByCount(g.Records)
	return g.Records
}

// RemoveBySize removes records with a period above maxPeriod.
func RemoveBySize(recs []Record, maxPeriod int) []Record {
	for i := 0; i < len(recs); {
		if recs[i].Period > maxPeriod {
			recs = slices.Delete(recs, i, i+1)
			continue
		}
		i++
	}
	return recs
}

// SortByIndex stably sorts records by first position.
func SortByIndex(recs []Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].First < recs[j].First
	})
}

// SortByCount stably sorts records by order of discovery.
func SortByCount(recs []Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Count < recs[j].Count
	})
}

// Overlap returns the number of positions shared by a and b.
func Overlap(a, b Record) int {
	start, end := a.First, a.Last
	if b.First > start {
		start = b.First
	}
	if b.Last < end {
		end = b.Last
	}
	if end < start {
		return 0
	}
	return end - start + 1
}

// IsRedundant reports whether i is explained by j: either the period of i is a proper
// multiple of the period of j and scores no more than 10% higher, or the periods are equal
// and i scores no higher.
func IsRedundant(i, j Record) bool {
	if i.Period > j.Period && i.Period%j.Period == 0 && float64(i.Score) <= multipleScoreSlack*float64(j.Score) {
		return true
	}
	return i.Period == j.Period && i.Score <= j.Score
}

// RemoveRedundancy removes records that are redundant with an overlapping record covering at
// least 90% of their extent. Input must be sorted by first position.
func RemoveRedundancy(recs []Record) []Record {
	var overlap, j int
	var removedI bool
	for i := 0; i < len(recs); {
		removedI = false
		for j = i + 1; j < len(recs); {
			overlap = Overlap(recs[i], recs[j])
			if overlap == 0 {
				break
			}
			if float64(overlap)/float64(recs[i].Len()) >= minRedundantOverlap && IsRedundant(recs[i], recs[j]) {
				recs = slices.Delete(recs, i, i+1)
				removedI = true
				break
			}
			if float64(overlap)/float64(recs[j].Len()) >= minRedundantOverlap && IsRedundant(recs[j], recs[i]) {
				recs = slices.Delete(recs, j, j+1)
				continue
			}
			j++
		}
		if !removedI {
			i++
		}
	}
	return recs
}
