package stats

import (
	"github.com/dasnellings/trfTools/params"
	"math"
	"testing"
)

func TestCoverageProb(t *testing.T) {
	// a single match is always a run of at least 1
	if q := CoverageProb(0.8, 1); math.Abs(q-0.8) > 1e-9 {
		t.Error("expected 0.8, found", q)
	}
	if q := CoverageProb(0.8, 3); math.Abs(q-0.7168) > 1e-9 {
		t.Error("expected 0.7168, found", q)
	}
	if CoverageProb(0.8, 5) >= CoverageProb(0.8, 4) {
		t.Error("coverage should fall as the required run grows")
	}
}

func TestRunSumCriterion(t *testing.T) {
	if c := RunSumCriterion(20, 3, 0.8); c != 8 {
		t.Error("expected 8, found", c)
	}
	if c := RunSumCriterion(30, 4, 0.8); c != 11 {
		t.Error("expected 11, found", c)
	}
	if c := RunSumCriterion(1, 5, 0.8); c != 5 {
		t.Error("criterion must be at least the tuple size, found", c)
	}
}

func TestWaitingTimeCriterion(t *testing.T) {
	// a run of 1 is reached on the first step with probability p
	if w := WaitingTimeCriterion(1, 0.99); w != 1 {
		t.Error("expected 1, found", w)
	}
	w3 := WaitingTimeCriterion(3, 0.8)
	w5 := WaitingTimeCriterion(5, 0.8)
	if w3 < 3 || w5 <= w3 {
		t.Error("unexpected waiting times:", w3, w5)
	}
}

func TestBandRadius(t *testing.T) {
	tests := []struct {
		d, expected int
	}{
		{1, 1},
		{10, 3},
		{20, 4},
		{500, 17},
	}
	for _, test := range tests {
		if r := BandRadius(test.d, 0.1); r != test.expected {
			t.Errorf("period %d: expected %d, found %d", test.d, test.expected, r)
		}
	}
}

func TestEvaluate(t *testing.T) {
	e := NewEvaluator(params.Default())
	mean, variance := e.ColumnMoments()
	if math.Abs(mean-0.4) > 1e-9 || math.Abs(variance-6.84) > 1e-9 {
		t.Error("unexpected column moments:", mean, variance)
	}

	v := e.Evaluate(580, 290, 300)
	if !v.Accept {
		t.Error("perfect repeat rejected:", v)
	}
	if v.BestPossible != 600 {
		t.Error("expected best possible 600, found", v.BestPossible)
	}

	if e.Evaluate(40, 20, 21).Accept {
		t.Error("score below minimum accepted")
	}

	if !e.Evaluate(50, 30, 31).Accept {
		t.Error("short clean repeat rejected")
	}
	// a long alignment that barely reaches the minimum score is mostly noise
	if e.Evaluate(50, 600, 601).Accept {
		t.Error("long degenerate alignment accepted")
	}
}
