package wrapalign

import (
	"errors"
	"github.com/dasnellings/trfTools/params"
	"github.com/vertgenlab/gonomics/dna"
	"strings"
	"testing"
)

const unit string = "ACGTTAGCCA"

func TestScoreTable(t *testing.T) {
	s := NewScoreTable(2, 3)
	if s.Score(dna.A, dna.A) != 2 || s.Score(dna.A, dna.C) != -3 || s.Score(dna.N, dna.N) != -3 {
		t.Error("unexpected scores:", s.Score(dna.A, dna.A), s.Score(dna.A, dna.C), s.Score(dna.N, dna.N))
	}
}

func TestAlignPerfectRepeat(t *testing.T) {
	seq := dna.StringToBases(strings.Repeat(unit, 30))
	a, err := NewAligner(params.Default(), seq)
	if err != nil {
		t.Fatal(err)
	}
	r := a.Align(10, 18)
	if r.Score != 580 || r.First != 1 || r.Last != 300 {
		t.Errorf("expected score 580 over [1,300], found %d over [%d,%d]", r.Score, r.First, r.Last)
	}
	if r.Matches != 290 || r.Mismatches != 0 || r.Indels != 0 || len(r.Pairs) != 290 {
		t.Error("unexpected counts:", r.Matches, r.Mismatches, r.Indels, len(r.Pairs))
	}
	for i, p := range r.Pairs {
		if p.X-p.Y != 10 {
			t.Error("pair off diagonal:", p)
		}
		if i > 0 && p.X <= r.Pairs[i-1].X {
			t.Error("pairs out of order at", i)
		}
	}
	if r.Length() != 300 {
		t.Error("expected length 300, found", r.Length())
	}
}

func TestAlignInsertion(t *testing.T) {
	// one extra G after position 55
	s := strings.Repeat(unit, 5) + unit[:5] + "G" + unit[5:] + strings.Repeat(unit, 4)
	seq := dna.StringToBases(s)
	a, err := NewAligner(params.Default(), seq)
	if err != nil {
		t.Fatal(err)
	}
	r := a.Align(10, 30)
	if r.First != 1 || r.Last != 101 {
		t.Errorf("expected [1,101], found [%d,%d]", r.First, r.Last)
	}
	if r.Indels != 2 || r.Mismatches != 0 || r.Matches != 90 {
		t.Error("unexpected counts:", r.Matches, r.Mismatches, r.Indels)
	}
	if r.Score != 170 {
		t.Error("expected score 170, found", r.Score)
	}
	var gaps int
	for i := range r.Pairs {
		if r.Prime[i] == dna.Gap || r.Second[i] == dna.Gap {
			gaps++
		}
	}
	if gaps != 2 {
		t.Error("expected 2 gap columns, found", gaps)
	}
}

func TestAlignInvalidAnchor(t *testing.T) {
	seq := dna.StringToBases(strings.Repeat(unit, 3))
	a, err := NewAligner(params.Default(), seq)
	if err != nil {
		t.Fatal(err)
	}
	r := a.Align(10, 5)
	if r.Score != 0 || len(r.Pairs) != 0 || r.Length() != 0 {
		t.Error("expected empty alignment, found", r)
	}
}

func TestMatrixTooLarge(t *testing.T) {
	saved := MaxMatrixCells
	defer func() { MaxMatrixCells = saved }()
	MaxMatrixCells = 1000
	_, err := NewAligner(params.Default(), dna.StringToBases(strings.Repeat(unit, 100)))
	if !errors.Is(err, ErrMatrixTooLarge) {
		t.Error("expected ErrMatrixTooLarge, found", err)
	}
}

func TestRadius(t *testing.T) {
	a, err := NewAligner(params.Default(), dna.StringToBases(unit))
	if err != nil {
		t.Fatal(err)
	}
	if a.Radius(1) != MinBandRadius || a.Radius(500) != 17 || a.Radius(200000) != MaxBandWidth/2 {
		t.Error("unexpected radii:", a.Radius(1), a.Radius(500), a.Radius(200000))
	}
}

func TestDrift(t *testing.T) {
	r := Result{Period: 9}
	if o, d := r.Drift(); o != 9 || d {
		t.Error("expected 9 without drift for an empty alignment, found", o, d)
	}
	for x := 20; x < 25; x++ {
		r.Pairs = append(r.Pairs, Pair{X: x, Y: x - 10})
	}
	r.Pairs = append(r.Pairs, Pair{X: 25}, Pair{X: 26, Y: 17})
	if o, d := r.Drift(); o != 10 || !d {
		t.Error("expected drift to 10, found", o, d)
	}

	r = Result{Period: 40}
	for x := 100; x < 103; x++ {
		r.Pairs = append(r.Pairs, Pair{X: x, Y: x - 40})
	}
	for x := 103; x < 107; x++ {
		r.Pairs = append(r.Pairs, Pair{X: x, Y: x - 41})
	}
	if o, d := r.Drift(); o != 41 || d {
		t.Error("expected 41 without drift, found", o, d)
	}
}

func TestAlignLeavesNearbyPeriod(t *testing.T) {
	seq := dna.StringToBases(strings.Repeat(unit, 30))
	a, err := NewAligner(params.Default(), seq)
	if err != nil {
		t.Fatal(err)
	}
	if o, d := a.Align(9, 50).Drift(); o != 10 || !d {
		t.Error("expected alignment at 9 to drift to 10, found", o, d)
	}
}
