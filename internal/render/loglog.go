package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// Series is one curve or marker set in linear units; zero or negative
// values are skipped when mapped to log space.
type Series struct {
	Label string
	X     []float64
	Y     []float64
}

// LogLogPlot renders curves and point markers on a braille canvas over
// fixed log10 axis ranges.
type LogLogPlot struct {
	Title          string
	XLabel, YLabel string
	XMin, XMax     float64 // log10 bounds
	YMin, YMax     float64 // log10 bounds
	Curves         []Series
	Markers        []Series
}

// Render draws the plot into a width x height character frame.
func (p *LogLogPlot) Render(width, height int) string {
	canvas := NewCanvas(width, height)
	subW := width*2 - 1
	subH := height*4 - 1

	toPix := func(x, y float64) (int, int, bool) {
		if x <= 0 || y <= 0 {
			return 0, 0, false
		}
		lx, ly := math.Log10(x), math.Log10(y)
		if lx < p.XMin || lx > p.XMax || ly < p.YMin || ly > p.YMax {
			return 0, 0, false
		}
		px := int(float64(subW) * (lx - p.XMin) / (p.XMax - p.XMin))
		py := subH - int(float64(subH)*(ly-p.YMin)/(p.YMax-p.YMin))
		return px, py, true
	}

	for _, s := range p.Curves {
		prevValid := false
		var prevX, prevY int
		for i := range s.X {
			px, py, ok := toPix(s.X[i], s.Y[i])
			if !ok {
				prevValid = false
				continue
			}
			if prevValid {
				canvas.Line(prevX, prevY, px, py)
			} else {
				canvas.Set(px, py)
			}
			prevX, prevY, prevValid = px, py, true
		}
	}

	for _, s := range p.Markers {
		for i := range s.X {
			px, py, ok := toPix(s.X[i], s.Y[i])
			if !ok {
				continue
			}
			// Small cross.
			canvas.Set(px, py)
			canvas.Set(px-1, py-1)
			canvas.Set(px+1, py-1)
			canvas.Set(px-1, py+1)
			canvas.Set(px+1, py+1)
		}
	}

	var sb strings.Builder
	if p.Title != "" {
		sb.WriteString(p.Title)
		sb.WriteByte('\n')
	}
	sb.WriteString(canvas.String())
	sb.WriteString(fmt.Sprintf("%s: 1e%.0f .. 1e%.0f   %s: 1e%.0f .. 1e%.0f\n",
		p.XLabel, p.XMin, p.XMax, p.YLabel, p.YMin, p.YMax))
	return sb.String()
}

// AsciiPanel plots the log10 of one table row with asciigraph,
// clipping zeros a fixed number of decades below the row maximum.
func AsciiPanel(values []float64, caption string, width, height int) string {
	maxVal := 0.0
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		return caption + ": all zero\n"
	}
	floor := math.Log10(maxVal) - 20
	data := make([]float64, len(values))
	for i, v := range values {
		if v <= 0 {
			data[i] = floor
			continue
		}
		data[i] = math.Max(math.Log10(v), floor)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
