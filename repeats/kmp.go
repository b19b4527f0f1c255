package repeats

import (
	"github.com/vertgenlab/gonomics/dna"
)

// BuildKmpFailure calculates the Knuth-Morris-Pratt failure function for input pattern
// based on https://www.personal.kent.edu/~rmuhamma/Algorithms/MyAlgorithms/StringMatch/kuthMP.htm
func BuildKmpFailure(pattern []dna.Base) []int {
	// failure[i] = length of the longest proper prefix of pattern[0:i+1] that is also a suffix
	failure := make([]int, len(pattern))

	// Length of the previous longest prefix-suffix
	length := 0
	i := 1

	for i < len(pattern) {
		if pattern[i] == pattern[length] {
			failure[i] = length + 1
			length++
			i++
		} else {
			if length > 0 {
				// do not increment i, retry with the next shorter prefix-suffix
				length = failure[length-1]
			} else {
				failure[i] = 0
				i++
			}
		}
	}

	return failure
}

// PrimitiveUnit returns the shortest unit that seq is an exact tandem repeat of,
// and the number of times it repeats. A seq that is not periodic is its own unit.
func PrimitiveUnit(seq []dna.Base) (numRepeats int, repeatUnit []dna.Base) {
	if len(seq) == 0 {
		return 0, seq
	}
	failure := BuildKmpFailure(seq)
	length := len(seq) - failure[len(failure)-1]

	if length == len(seq) || len(seq)%length != 0 {
		return 1, seq
	}

	substring := seq[:length]
	for i := length; i < len(seq); i += length {
		if dna.CompareSeqsIgnoreCase(seq[i:i+length], substring) != 0 {
			return 1, seq
		}
	}

	return len(seq) / length, substring
}
