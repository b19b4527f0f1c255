package detect

import (
	"errors"
	"fmt"
	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/fasta"
)

var (
	ErrEmptySequence     = errors.New("empty sequence")
	ErrMalformedSequence = errors.New("malformed sequence")
)

// Composition is the number of each symbol in a sequence.
type Composition struct {
	A int
	C int
	G int
	T int
	N int
}

// Sequence is an uppercase nucleotide sequence ready for repeat detection.
type Sequence struct {
	Name        string
	Seq         []dna.Base
	Composition Composition
}

// Len is the number of positions in the sequence.
func (s Sequence) Len() int {
	return len(s.Seq)
}

// NewSequence copies the record f into an uppercase Sequence. Sequences that are empty or
// hold symbols other than A, C, G, T and N are rejected.
func NewSequence(f fasta.Fasta) (Sequence, error) {
	ans := Sequence{Name: f.Name}
	if len(f.Seq) == 0 {
		return ans, fmt.Errorf("%w: %s", ErrEmptySequence, f.Name)
	}
	ans.Seq = make([]dna.Base, len(f.Seq))
	copy(ans.Seq, f.Seq)
	dna.AllToUpper(ans.Seq)
	for i, b := range ans.Seq {
		switch b {
		case dna.A:
			ans.Composition.A++
		case dna.C:
			ans.Composition.C++
		case dna.G:
			ans.Composition.G++
		case dna.T:
			ans.Composition.T++
		case dna.N:
			ans.Composition.N++
		default:
			return ans, fmt.Errorf("%w: %s has unexpected symbol at position %d", ErrMalformedSequence, f.Name, i+1)
		}
	}
	return ans, nil
}
