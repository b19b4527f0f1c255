// Package detect runs the full tandem repeat search on one sequence at a time.
package detect

import (
	"github.com/dasnellings/trfTools/consensus"
	"github.com/dasnellings/trfTools/distance"
	"github.com/dasnellings/trfTools/params"
	"github.com/dasnellings/trfTools/repeats"
	"github.com/dasnellings/trfTools/stats"
	"github.com/dasnellings/trfTools/tuple"
	"github.com/dasnellings/trfTools/wrapalign"
	"github.com/vertgenlab/gonomics/dna"
	"log"
)

// Result holds the repeats retained for one sequence, in order of discovery.
type Result struct {
	Name        string
	Length      int
	Composition Composition
	Records     []repeats.Record
}

// extent is the region already explained by an alignment at period.
type extent struct {
	period int
	first  int
	last   int
}

// Context holds the state for analyzing sequences. A Context is not safe for
// concurrent use; run one per goroutine.
type Context struct {
	params      params.Params
	verbose     int
	evaluator   stats.Evaluator
	maxDistance int
	indexer     *tuple.Indexer
	tracker     *distance.Tracker
	aligner     *wrapalign.Aligner
	registry    repeats.Registry
	tried       map[int]extent // last alignment attempted at each period
	accepted    []extent
	seq         Sequence
}

// NewContext validates p and returns a Context ready to analyze sequences.
func NewContext(p params.Params, verbose int) (*Context, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Context{
		params:    p,
		verbose:   verbose,
		evaluator: stats.NewEvaluator(p),
		tried:     make(map[int]extent),
	}, nil
}

// Params returns the parameters the Context was built with.
func (c *Context) Params() params.Params {
	return c.params
}

// Find searches s for tandem repeats. The only error returned is wrapalign.ErrMatrixTooLarge
// when the alignment matrix for s cannot be allocated.
func (c *Context) Find(s Sequence) (Result, error) {
	ans := Result{Name: s.Name, Length: s.Len(), Composition: s.Composition}
	if s.Len() == 0 {
		return ans, nil
	}
	if err := c.reset(s); err != nil {
		return ans, err
	}

	c.indexer.Index(s.Seq, func(loc, dist, size int) {
		c.tracker.Add(loc, dist, size, c.fire)
	})

	ans.Records = c.registry.Finalize(c.params.MaxPeriod, c.params.RedundancyOff)
	if c.verbose > 0 {
		log.Printf("%s: %d bases, %d repeats", s.Name, s.Len(), len(ans.Records))
	}
	return ans, nil
}

// reset sizes the buffers for s, reusing the tuple index and tracker when the maximum
// distance has not changed.
func (c *Context) reset(s Sequence) error {
	var err error
	c.seq = s
	c.registry.Reset()
	for k := range c.tried {
		delete(c.tried, k)
	}
	c.accepted = c.accepted[:0]
	c.aligner, err = wrapalign.NewAligner(c.params, s.Seq)
	if err != nil {
		return err
	}
	md := c.params.MaxDistance(s.Len())
	if md != c.maxDistance || c.indexer == nil {
		c.maxDistance = md
		c.indexer = tuple.NewIndexer(md)
		c.tracker = distance.NewTracker(c.params, md)
		return nil
	}
	c.indexer.Reset()
	c.tracker.Reset()
	return nil
}

// fire aligns the sequence at period around loc and registers the repeat when the
// alignment is significant. An alignment that mostly follows another diagonal is redone
// at that diagonal.
func (c *Context) fire(period, loc int) {
	if loc-period < 1 || c.explained(period, loc) {
		return
	}

	aln := c.aligner.Align(period, loc)
	if offset, drifted := aln.Drift(); drifted {
		c.tried[period] = extent{period: period, first: aln.First, last: aln.Last}
		if loc-offset < 1 || c.explained(offset, loc) {
			return
		}
		aln = c.aligner.Align(offset, loc)
	}
	if len(aln.Pairs) == 0 {
		return
	}
	c.tried[aln.Period] = extent{period: aln.Period, first: aln.First, last: aln.Last}

	verdict := c.evaluator.Evaluate(aln.Score, len(aln.Pairs), aln.Length())
	if !verdict.Accept {
		if c.verbose > 1 {
			log.Printf("%s: period %d at %d rejected, score %d over [%d,%d], expected %.1f", c.seq.Name, aln.Period, loc, aln.Score, aln.First, aln.Last, verdict.Expected)
		}
		return
	}

	rec, err := consensus.Build(c.seq.Seq, aln)
	if err != nil {
		return
	}
	c.accepted = append(c.accepted, extent{period: rec.Period, first: rec.First, last: rec.Last})
	rec.Chr = c.seq.Name
	count := c.registry.Add(rec)
	if c.verbose > 1 {
		log.Printf("%s: period %d at %d accepted as repeat %d, %s x%.1f over [%d,%d] score %d", c.seq.Name, period, loc, count, dna.BasesToString(rec.Seq), rec.CopyNum, rec.First, rec.Last, rec.Score)
	}
}

// explained reports whether an alignment at period from loc would only find a repeat
// already in hand: loc was covered by the last attempt at period, or lies within a window
// past an accepted repeat of the same period. Unless redundant repeats are kept, an
// accepted repeat also explains every period whose band holds one of its multiples.
func (c *Context) explained(period, loc int) bool {
	if prev, found := c.tried[period]; found && loc <= prev.last {
		return true
	}
	window := period
	if window < distance.MinWindow {
		window = distance.MinWindow
	}
	radius := c.aligner.Radius(period)

	var keep int
	var ans bool
	for _, e := range c.accepted {
		if e.last+c.maxDistance+wrapalign.MaxBandWidth < loc {
			continue // beyond the window of any period still to fire
		}
		c.accepted[keep] = e
		keep++
		if ans || loc < e.first || loc > e.last+window {
			continue
		}
		if e.period == period || (!c.params.RedundancyOff && nearMultiple(period, radius, e.period)) {
			ans = true
		}
	}
	c.accepted = c.accepted[:keep]
	return ans
}

// nearMultiple reports whether some multiple of d lies within radius of period.
func nearMultiple(period, radius, d int) bool {
	m := (period + radius) / d * d
	return m >= d && m >= period-radius
}
