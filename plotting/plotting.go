// SPDX-License-Identifier: MIT

package plotting

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/spf13/afero"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Canvas size of every chart.
const (
	Width  = 10 * vg.Inch
	Height = 4 * vg.Inch
)

const format = "png"

var (
	// ErrNoData is returned when there is nothing to draw.
	ErrNoData = errors.New("plotting: no data")
	// ErrBadIndex is returned when a highlighted component does not exist.
	ErrBadIndex = errors.New("plotting: component index out of range")
)

var (
	barColor      = color.RGBA{R: 0x9e, G: 0x9e, B: 0x9e, A: 0xff}
	selectedColor = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
)

// Line is one named series of an overlay. Samples are plotted at x = 0..len−1.
type Line struct {
	Name string
	Y    []float64
}

// Overlay draws lines on shared axes and writes a PNG to path on fs.
// Empty lines are skipped; ErrNoData when none is left.
func Overlay(fs afero.Fs, path, title string, lines ...Line) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "t"
	p.Y.Label.Text = "value"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	drawn := 0
	for i, ln := range lines {
		if len(ln.Y) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(ln.Y))
		for t, v := range ln.Y {
			pts[t].X = float64(t)
			pts[t].Y = v
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("plotting: line %q: %w", ln.Name, err)
		}
		l.LineStyle.Color = plotutil.Color(i)
		l.LineStyle.Width = vg.Points(1)
		p.Add(l)
		p.Legend.Add(ln.Name, l)
		drawn++
	}
	if drawn == 0 {
		return ErrNoData
	}

	return save(fs, path, p)
}

// Spectrum draws the contribution of every component as a bar, with the
// selected components drawn in a second color.
func Spectrum(fs afero.Fs, path string, contributions []float64, selected []int) error {
	if len(contributions) == 0 {
		return ErrNoData
	}
	picked := make(plotter.Values, len(contributions))
	for _, i := range selected {
		if i < 0 || i >= len(contributions) {
			return fmt.Errorf("%w: %d", ErrBadIndex, i)
		}
		picked[i] = contributions[i]
	}

	p := plot.New()
	p.Title.Text = "Component contributions"
	p.X.Label.Text = "component"
	p.Y.Label.Text = "share of energy"

	width := vg.Points(6)
	all, err := plotter.NewBarChart(plotter.Values(contributions), width)
	if err != nil {
		return fmt.Errorf("plotting: bars: %w", err)
	}
	all.Color = barColor
	all.LineStyle.Width = 0

	sel, err := plotter.NewBarChart(picked, width)
	if err != nil {
		return fmt.Errorf("plotting: bars: %w", err)
	}
	sel.Color = selectedColor
	sel.LineStyle.Width = 0

	p.Add(all, sel)
	p.Legend.Add("all", all)
	p.Legend.Add("selected", sel)
	p.Legend.Top = true

	return save(fs, path, p)
}

// save renders p as PNG into path on fs.
func save(fs afero.Fs, path string, p *plot.Plot) error {
	wt, err := p.WriterTo(Width, Height, format)
	if err != nil {
		return fmt.Errorf("plotting: render: %w", err)
	}
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("plotting: create %s: %w", path, err)
	}
	if _, err = wt.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("plotting: write %s: %w", path, err)
	}

	return f.Close()
}
