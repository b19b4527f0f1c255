package repeats

import (
	"github.com/vertgenlab/gonomics/dna"
	"testing"
)

func TestBuildKmpFailure(t *testing.T) {
	pattern := dna.StringToBases("ACAGAC")
	expected := []int{0, 0, 1, 0, 1, 2}
	failure := BuildKmpFailure(pattern)
	for i := range expected {
		if failure[i] != expected[i] {
			t.Error("expected", expected, "found", failure)
			break
		}
	}
}

func TestPrimitiveUnit(t *testing.T) {
	tests := []struct {
		seq        string
		numRepeats int
		unit       string
	}{
		{"ACACAC", 3, "AC"},
		{"AAAA", 4, "A"},
		{"ACGTA", 1, "ACGTA"},
		{"ACGACGAC", 1, "ACGACGAC"},
		{"ACGTTACGTT", 2, "ACGTT"},
	}
	var n int
	var unit []dna.Base
	for _, test := range tests {
		n, unit = PrimitiveUnit(dna.StringToBases(test.seq))
		if n != test.numRepeats || dna.BasesToString(unit) != test.unit {
			t.Errorf("%s: expected %d x %s, found %d x %s", test.seq, test.numRepeats, test.unit, n, dna.BasesToString(unit))
		}
	}
}
