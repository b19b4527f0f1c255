package report

import (
	"errors"
	"github.com/dasnellings/trfTools/repeats"
	"github.com/guptarohit/asciigraph"
	"golang.org/x/exp/slices"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"image/color"
)

var ErrNoRepeats = errors.New("no repeats to plot")

// PlotRepeats saves a scatter plot of repeat period against position to file. The image
// format is chosen from the file extension.
func PlotRepeats(recs []repeats.Record, title, file string) error {
	if len(recs) == 0 {
		return ErrNoRepeats
	}
	pts := make(plotter.XYs, len(recs))
	for i, r := range recs {
		pts[i].X = float64(r.First)
		pts[i].Y = float64(r.Period)
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	sc.GlyphStyle.Color = color.RGBA{R: 196, G: 40, B: 40, A: 255}
	sc.GlyphStyle.Radius = vg.Points(2)

	pl := plot.New()
	pl.Add(sc)
	pl.Title.Text = title
	pl.X.Label.Text = "Position"
	pl.Y.Label.Text = "Period"
	return pl.Save(24*vg.Centimeter, 12*vg.Centimeter, file)
}

// PeriodHistogram draws the number of repeats at each period from 1 to the largest period
// observed. It returns an empty string when there are no repeats.
func PeriodHistogram(recs []repeats.Record) string {
	if len(recs) == 0 {
		return ""
	}
	periods := make([]int, len(recs))
	for i := range recs {
		periods[i] = recs[i].Period
	}
	slices.Sort(periods)
	counts := make([]float64, periods[len(periods)-1])
	for _, p := range periods {
		counts[p-1]++
	}
	return asciigraph.Plot(counts, asciigraph.Height(10), asciigraph.Precision(0), asciigraph.Caption("repeats by period"))
}
