package stats

import (
	"github.com/dasnellings/trfTools/params"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"math"
)

const acceptQuantile float64 = 0.01

// Evaluator judges alignments against the score expected from a repeat with the
// configured match and indel probabilities.
type Evaluator struct {
	match    float64
	minScore int
	mean     float64 // expected score of one aligned column
	variance float64
	z        float64
}

// Verdict is the outcome of evaluating one alignment.
type Verdict struct {
	Accept       bool
	Expected     float64 // expected score over the aligned columns
	SD           float64
	BestPossible float64
}

// NewEvaluator derives the expected score per aligned column and its variance from the
// match and indel probabilities and scoring weights in p.
func NewEvaluator(p params.Params) Evaluator {
	pi := float64(p.PI) / 100
	pm := float64(p.PM) / 100
	scores := []float64{float64(p.Match), -float64(p.Mismatch), -float64(p.Indel)}
	weights := []float64{(1 - pi) * pm, (1 - pi) * (1 - pm), pi}
	mean, variance := stat.PopMeanVariance(scores, weights)
	return Evaluator{
		match:    float64(p.Match),
		minScore: p.MinScore,
		mean:     mean,
		variance: variance,
		z:        distuv.UnitNormal.Quantile(acceptQuantile),
	}
}

// ColumnMoments returns the expected score and variance of a single alignment column.
func (e Evaluator) ColumnMoments() (mean, variance float64) {
	return e.mean, e.variance
}

// Evaluate accepts an alignment with the input score over the input number of columns that
// spans length positions of the sequence. An alignment is accepted when its score reaches
// the minimum score and is not far below the score expected from a genuine repeat of the
// same extent.
func (e Evaluator) Evaluate(score, columns, length int) Verdict {
	var ans Verdict
	ans.Expected = float64(columns) * e.mean
	ans.SD = math.Sqrt(float64(columns) * e.variance)
	ans.BestPossible = float64(length) * e.match
	if columns == 0 || score < e.minScore {
		return ans
	}
	ans.Accept = float64(score) >= ans.Expected+e.z*ans.SD
	return ans
}
