// Package render draws the two-panel binding free-energy figure: a bar chart
// with per-replicate points on the left and a summary statistics table with
// the ANOVA p-value on the right, composited into a single raster image.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/lrmacha/Dynamics/src/analysis"
	"github.com/lrmacha/Dynamics/src/labels"
	"github.com/lrmacha/Dynamics/src/measure"
)

// Options controls figure geometry and destination. OutPath is required; the
// encoder is chosen by its extension (.png default, .jpg/.jpeg for JPEG).
type Options struct {
	OutPath string
	Width   int     // total composite width in pixels
	Height  int     // total composite height in pixels
	DPI     float64 // raster DPI; fonts scale with it
	Caption string  // optional footer note stamped bottom-left
}

// DefaultOptions returns the standard 300 DPI figure geometry.
func DefaultOptions(outPath string) Options {
	return Options{OutPath: outPath, Width: 3000, Height: 1500, DPI: 300}
}

const (
	barWidthPx   = 150
	barSpacingPx = 50
	jitterSeed   = 42
)

var (
	mutantFill = drawing.Color{R: 76, G: 114, B: 176, A: 255}  // muted blue
	wildFill   = drawing.Color{R: 140, G: 140, B: 140, A: 255} // gray, sets WT apart
	pointColor = drawing.Color{R: 25, G: 25, B: 25, A: 220}
	whiskerCol = drawing.ColorBlack
	refLineCol = drawing.Color{R: 90, G: 90, B: 90, A: 255}
)

// Render draws the figure for the given dataset and computed statistics and
// writes it to opts.OutPath. Groups and summaries must be in display order
// (wild type first) and aligned index-for-index.
func Render(groups []measure.Group, sums []analysis.Summary, anova analysis.AnovaResult, opts Options) error {
	defer measure.TimeTrack(time.Now(), "render figure")
	if opts.OutPath == "" {
		return fmt.Errorf("render: output path is required")
	}
	if len(groups) == 0 || len(groups) != len(sums) {
		return fmt.Errorf("render: got %d groups and %d summaries", len(groups), len(sums))
	}
	for i := range groups {
		if groups[i].Label != sums[i].Label {
			return fmt.Errorf("render: group %q and summary %q out of order", groups[i].Label, sums[i].Label)
		}
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		def := DefaultOptions(opts.OutPath)
		opts.Width, opts.Height = def.Width, def.Height
	}
	if opts.DPI <= 0 {
		opts.DPI = 300
	}

	disp := make([]string, len(sums))
	for i, s := range sums {
		d, err := labels.Format(s.Label)
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		disp[i] = d
	}

	leftW := opts.Width * 3 / 5
	left, err := renderBarPanel(groups, sums, disp, leftW, opts.Height, opts.DPI)
	if err != nil {
		return fmt.Errorf("render bar panel: %w", err)
	}
	right, err := renderTablePanel(sums, disp, anova, opts.Width-leftW, opts.Height, opts.DPI)
	if err != nil {
		return fmt.Errorf("render table panel: %w", err)
	}

	out := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(out, left.Bounds(), left, image.Point{}, draw.Over)
	draw.Draw(out, right.Bounds().Add(image.Pt(leftW, 0)), right, image.Point{}, draw.Over)
	var final image.Image = out
	if opts.Caption != "" {
		final = drawCaption(out, opts.Caption)
	}
	return writeImage(opts.OutPath, final)
}

// renderBarPanel draws the categorical bar chart: one bar per variant (mean
// height, anchored at zero), whiskers at mean +/- SD, jittered replicate
// points, and a horizontal reference line at the wild-type mean.
func renderBarPanel(groups []measure.Group, sums []analysis.Summary, disp []string, w, h int, dpi float64) (image.Image, error) {
	bars := make([]chart.Value, len(sums))
	dataMin := math.MaxFloat64
	for i, s := range sums {
		fill := mutantFill
		if s.Label == measure.WildType {
			fill = wildFill
		}
		bars[i] = chart.Value{
			Value: s.Mean,
			Label: disp[i],
			Style: chart.Style{FillColor: fill, StrokeColor: fill, StrokeWidth: 0},
		}
		if s.Mean-s.StdDev < dataMin {
			dataMin = s.Mean - s.StdDev
		}
		for _, v := range groups[i].Values {
			if v < dataMin {
				dataMin = v
			}
		}
	}
	nMin, _ := niceAxisBounds(dataMin, 0)
	ticks := niceTicks(nMin, 0, 6)
	if len(ticks) > 0 {
		nMin = ticks[0].Value
	}
	kept := ticks[:0]
	for _, t := range ticks {
		if t.Value >= nMin && t.Value <= 0 {
			kept = append(kept, t)
		}
	}
	ticks = kept
	// Descending range: zero baseline at the panel bottom, more negative
	// (stronger binding) upward. go-chart renders bar boxes upside down for
	// negative values on an ascending range.
	yRange := &chart.ContinuousRange{Min: nMin, Max: 0, Descending: true}

	wtMean := math.NaN()
	for _, s := range sums {
		if s.Label == measure.WildType {
			wtMean = s.Mean
		}
	}

	bc := chart.BarChart{
		Width:      w,
		Height:     h,
		DPI:        dpi,
		BarWidth:   barWidthPx,
		BarSpacing: barSpacingPx,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 30, Right: 20, Bottom: 60}},
		XAxis:      chart.Style{FontSize: 8},
		YAxis: chart.YAxis{
			Name:  "ΔG (kcal/mol)",
			Style: chart.Style{FontSize: 8},
			Range: yRange,
			Ticks: ticks,
		},
		UseBaseValue: true,
		BaseValue:    0,
		Bars:         bars,
		Elements: []chart.Renderable{
			overlayElement(groups, sums, wtMean, yRange),
		},
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// overlayElement returns a Renderable drawn after the bars and axes. It
// replicates the bar layout of chart.BarChart (bars laid out from the left
// of the adjusted canvas box, spacing split around each bar) to place
// whiskers and points at the bar centers.
func overlayElement(groups []measure.Group, sums []analysis.Summary, wtMean float64, yRange *chart.ContinuousRange) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		translate := func(v float64) int {
			ratio := (v - yRange.Min) / (yRange.Max - yRange.Min)
			ratio = 1.0 - ratio
			return canvasBox.Bottom - int(math.Ceil(ratio*float64(canvasBox.Height())))
		}
		n := len(sums)
		width, spacing := barLayout(canvasBox.Width(), n, barWidthPx, barSpacingPx)

		// reference line at the wild-type mean across the whole panel
		if !math.IsNaN(wtMean) {
			y := translate(wtMean)
			r.SetStrokeColor(refLineCol)
			r.SetStrokeWidth(2)
			r.SetStrokeDashArray([]float64{10, 8})
			r.MoveTo(canvasBox.Left, y)
			r.LineTo(canvasBox.Right, y)
			r.Stroke()
			r.SetStrokeDashArray(nil)
		}

		rng := rand.New(rand.NewSource(jitterSeed))
		xoffset := canvasBox.Left
		for i := 0; i < n; i++ {
			cx := xoffset + spacing/2 + width/2

			// whisker: mean +/- SD with end caps
			lo := translate(sums[i].Mean - sums[i].StdDev)
			hi := translate(sums[i].Mean + sums[i].StdDev)
			capW := width / 5
			r.SetStrokeColor(whiskerCol)
			r.SetStrokeWidth(3)
			r.MoveTo(cx, lo)
			r.LineTo(cx, hi)
			r.Stroke()
			for _, y := range []int{lo, hi} {
				r.MoveTo(cx-capW, y)
				r.LineTo(cx+capW, y)
				r.Stroke()
			}

			// jittered replicate points
			r.SetFillColor(pointColor)
			for _, v := range groups[i].Values {
				jit := int((rng.Float64()*2 - 1) * float64(width) / 4)
				r.Circle(6, cx+jit, translate(v))
				r.Fill()
			}

			xoffset += width + spacing
		}
	}
}

// barLayout mirrors chart.BarChart's effective bar width and spacing
// calculation so overlays line up with the rendered bars.
func barLayout(canvasWidth, n, barWidth, barSpacing int) (int, int) {
	spacing := barSpacing
	if n*(barWidth+barSpacing) > canvasWidth {
		less := canvasWidth - n*barWidth
		if less > 0 {
			spacing = int(math.Ceil(float64(less) / float64(n)))
		} else {
			spacing = 0
		}
	}
	width := barWidth
	if n*(barWidth+spacing) > canvasWidth {
		less := canvasWidth - n*spacing
		if less > 0 {
			width = int(math.Ceil(float64(less) / float64(n)))
		} else {
			width = 0
		}
	}
	return width, spacing
}

// renderTablePanel draws the borderless summary table (variant, mean, SD to
// two decimals) and the ANOVA p-value annotation beneath it.
func renderTablePanel(sums []analysis.Summary, disp []string, anova analysis.AnovaResult, w, h int, dpi float64) (image.Image, error) {
	r, err := chart.PNG(w, h)
	if err != nil {
		return nil, err
	}
	f, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}
	r.SetDPI(dpi)
	r.SetFont(f)

	// opaque background so the composite has no transparent band
	r.SetFillColor(drawing.ColorWhite)
	r.MoveTo(0, 0)
	r.LineTo(w, 0)
	r.LineTo(w, h)
	r.LineTo(0, h)
	r.Close()
	r.Fill()

	px := func(pt float64) int { return int(pt * dpi / 72.0) }
	rowH := px(18)
	top := px(30)
	colVariant := px(16)
	colMeanRight := w * 58 / 100
	colSDRight := w * 86 / 100

	r.SetFontColor(drawing.Color{R: 60, G: 60, B: 60, A: 255})
	r.SetFontSize(9)
	y := top
	r.Text("Variant", colVariant, y)
	rightText(r, "ΔG mean", colMeanRight, y)
	rightText(r, "SD", colSDRight, y)
	y += rowH * 4 / 3

	r.SetFontColor(drawing.ColorBlack)
	for i, s := range sums {
		r.Text(disp[i], colVariant, y)
		rightText(r, fmt.Sprintf("%.2f", s.Mean), colMeanRight, y)
		rightText(r, fmt.Sprintf("%.2f", s.StdDev), colSDRight, y)
		y += rowH
	}

	y += rowH
	r.SetFontColor(drawing.Color{R: 60, G: 60, B: 60, A: 255})
	r.Text(fmt.Sprintf("One-way ANOVA: p = %.4f", anova.P), colVariant, y)

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

func rightText(r chart.Renderer, s string, right, y int) {
	tb := r.MeasureText(s)
	r.Text(s, right-tb.Width(), y)
}

// writeImage encodes img to path, choosing the encoder from the extension:
// .jpg/.jpeg get JPEG, anything else PNG.
func writeImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create figure %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("encode figure %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write figure %s: %w", path, err)
	}
	return nil
}
