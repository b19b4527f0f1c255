// Package params holds the numeric knobs that control tandem repeat detection.
package params

import (
	"errors"
	"fmt"
)

const (
	MaxPeriodLimit       int = 2000    // largest allowed value for MaxPeriod
	DefaultMaxWrapLength int = 2000000 // default cap on alignment matrix rows
	minInternalDistance  int = 200
	maxDistanceFloor     int = 500
)

var ErrInvalidParams = errors.New("invalid parameters")

// Params is the full configuration for a detection run. All fields are required.
type Params struct {
	Match         int // match weight
	Mismatch      int // mismatch penalty, positive
	Indel         int // indel (gap open) penalty, positive
	PM            int // match probability in percent
	PI            int // indel probability in percent
	MinScore      int // minimum alignment score to report
	MaxPeriod     int // largest period to report, 1-2000
	MaxWrapLength int // rows of the alignment matrix; longer sequences scan a capped region
	RedundancyOff bool
}

// Default returns the recommended parameter set.
func Default() Params {
	return Params{
		Match:         2,
		Mismatch:      3,
		Indel:         5,
		PM:            80,
		PI:            10,
		MinScore:      50,
		MaxPeriod:     500,
		MaxWrapLength: DefaultMaxWrapLength,
	}
}

// Validate checks that every knob is within range.
func (p Params) Validate() error {
	switch {
	case p.Match <= 0:
		return fmt.Errorf("%w: match weight must be > 0, found %d", ErrInvalidParams, p.Match)
	case p.Mismatch <= 0:
		return fmt.Errorf("%w: mismatch penalty must be > 0, found %d", ErrInvalidParams, p.Mismatch)
	case p.Indel <= 0:
		return fmt.Errorf("%w: indel penalty must be > 0, found %d", ErrInvalidParams, p.Indel)
	case p.PM <= 0 || p.PM >= 100:
		return fmt.Errorf("%w: match probability must be between 1 and 99, found %d", ErrInvalidParams, p.PM)
	case p.PI <= 0 || p.PI >= 100:
		return fmt.Errorf("%w: indel probability must be between 1 and 99, found %d", ErrInvalidParams, p.PI)
	case p.MinScore <= 0:
		return fmt.Errorf("%w: minimum score must be > 0, found %d", ErrInvalidParams, p.MinScore)
	case p.MaxPeriod < 1 || p.MaxPeriod > MaxPeriodLimit:
		return fmt.Errorf("%w: maximum period must be between 1 and %d, found %d", ErrInvalidParams, MaxPeriodLimit, p.MaxPeriod)
	case p.MaxWrapLength <= 0:
		return fmt.Errorf("%w: maximum wrap length must be > 0, found %d", ErrInvalidParams, p.MaxWrapLength)
	}
	return nil
}

// MaxDistance is the largest tuple distance tracked for a sequence of the input length.
// Periods between MaxPeriod and MaxDistance are still aligned so that long repeats
// can be recognized, but are removed before reporting.
func (p Params) MaxDistance(length int) int {
	ans := p.MaxPeriod
	if ans < maxDistanceFloor {
		ans = maxDistanceFloor
	}
	if limit := int(float64(length) * 0.6); ans > limit {
		ans = limit
	}
	if ans < minInternalDistance {
		ans = minInternalDistance
	}
	return ans
}

// WrapLength is the number of usable alignment rows for a sequence of the input length.
func (p Params) WrapLength(length int) int {
	if length < p.MaxWrapLength {
		return length
	}
	return p.MaxWrapLength
}

// String formats the parameters the way they appear in the header of a .dat file.
func (p Params) String() string {
	return fmt.Sprintf("Parameters: %d %d %d %d %d %d %d", p.Match, p.Mismatch, p.Indel, p.PM, p.PI, p.MinScore, p.MaxPeriod)
}

// Tag formats the parameters for use in output file names.
func (p Params) Tag() string {
	return fmt.Sprintf("%d.%d.%d.%d.%d.%d.%d", p.Match, p.Mismatch, p.Indel, p.PM, p.PI, p.MinScore, p.MaxPeriod)
}
