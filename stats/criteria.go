// Package stats contains the probability model used to decide when a candidate period
// deserves an alignment and whether that alignment is a genuine tandem repeat.
package stats

import (
	"gonum.org/v1/gonum/stat/distuv"
	"math"
)

const (
	runSumQuantile      float64 = 0.05
	waitingTimeQuantile float64 = 0.95
	maxWaitingTime      int     = 10000
	bandRadiusScale     float64 = 2.3
)

// CoverageProb returns the probability that a position is covered by a run of at least
// g consecutive matches when each position matches independently with probability p.
func CoverageProb(p float64, g int) float64 {
	var short float64
	for s := 0; s <= g-2; s++ {
		short += float64(s+1) * math.Pow(p, float64(s)) * (1 - p) * (1 - p)
	}
	return p * (1 - short)
}

// RunSumCriterion is the minimum number of positions in a window of the input size that
// must be covered by matching tuples of size g before the window is considered repetitive.
func RunSumCriterion(window, g int, p float64) int {
	q := CoverageProb(p, g)
	mean := float64(window) * q
	sd := math.Sqrt(float64(window) * q * (1 - q) * float64(g))
	ans := int(math.Floor(mean + distuv.UnitNormal.Quantile(runSumQuantile)*sd))
	if ans < g {
		ans = g
	}
	return ans
}

// WaitingTimeCriterion returns the largest gap between tuple matches expected in a genuine
// repeat, the 95th percentile of the waiting time for a run of g matches.
func WaitingTimeCriterion(g int, p float64) int {
	run := make([]float64, g) // run[j] = P(current run of matches has length j)
	next := make([]float64, g)
	run[0] = 1
	var done float64
	var t, j int
	for t = 1; t < maxWaitingTime; t++ {
		next[0] = 0
		for j = 0; j < g; j++ {
			next[0] += run[j] * (1 - p)
		}
		for j = 1; j < g; j++ {
			next[j] = run[j-1] * p
		}
		done += run[g-1] * p
		run, next = next, run
		if done >= waitingTimeQuantile {
			return t
		}
	}
	return maxWaitingTime
}

// BandRadius is the number of diagonals on either side of period d that indels are
// expected to reach, given the indel probability pi.
func BandRadius(d int, pi float64) int {
	return int(math.Ceil(bandRadiusScale * math.Sqrt(pi*float64(d))))
}
