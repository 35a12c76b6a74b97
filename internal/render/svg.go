package render

import (
	"fmt"
	"math"
	"strings"
)

// palette cycles across the per-time-step curves.
var palette = []string{
	"#00ff00", "#00c8ff", "#ff9f1c", "#ff4d6d",
	"#c77dff", "#ffe66d", "#4ecdc4", "#f4f1de",
}

const (
	svgMarginLeft   = 60.0
	svgMarginBottom = 40.0
	svgMarginTop    = 30.0
	svgMarginRight  = 15.0
)

// Box is an axis-aligned shaded region in linear units, used for the
// Chandra X-ray band.
type Box struct {
	X0, X1 float64
	Y0, Y1 float64
	Color  string
}

// SVGPanel is one log-log chart in the exported figure.
type SVGPanel struct {
	Plot  *LogLogPlot
	Boxes []Box
}

// SVG renders the panels stacked vertically into a standalone SVG
// document of the given per-panel pixel size.
func SVG(panels []SVGPanel, width, height int) string {
	totalH := len(panels) * height

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, totalH, width, totalH))

	for i, panel := range panels {
		sb.WriteString(fmt.Sprintf(`<g transform="translate(0,%d)">`+"\n", i*height))
		panelSVG(&sb, panel, float64(width), float64(height))
		sb.WriteString("</g>\n")
	}
	sb.WriteString("</svg>\n")
	return sb.String()
}

func panelSVG(sb *strings.Builder, panel SVGPanel, width, height float64) {
	p := panel.Plot
	plotW := width - svgMarginLeft - svgMarginRight
	plotH := height - svgMarginTop - svgMarginBottom

	toXY := func(lx, ly float64) (float64, float64) {
		x := svgMarginLeft + plotW*(lx-p.XMin)/(p.XMax-p.XMin)
		y := svgMarginTop + plotH*(1-(ly-p.YMin)/(p.YMax-p.YMin))
		return x, y
	}

	// Frame and decade gridlines.
	sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#555" stroke-width="1"/>`+"\n",
		svgMarginLeft, svgMarginTop, plotW, plotH))
	writeDecades(sb, p, plotW, plotH)

	for _, b := range panel.Boxes {
		if b.X0 <= 0 || b.Y0 <= 0 {
			continue
		}
		x0, y1 := toXY(math.Log10(b.X0), math.Log10(b.Y0))
		x1, y0 := toXY(math.Log10(b.X1), math.Log10(b.Y1))
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="0.5" stroke="%s"/>`+"\n",
			x0, y0, x1-x0, y1-y0, b.Color, b.Color))
	}

	for ci, s := range p.Curves {
		color := palette[ci%len(palette)]
		var path strings.Builder
		pen := false
		for i := range s.X {
			if s.X[i] <= 0 || s.Y[i] <= 0 {
				pen = false
				continue
			}
			lx, ly := math.Log10(s.X[i]), math.Log10(s.Y[i])
			if ly < p.YMin {
				pen = false
				continue
			}
			x, y := toXY(clamp(lx, p.XMin, p.XMax), clamp(ly, p.YMin, p.YMax))
			if pen {
				path.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			} else {
				path.WriteString(fmt.Sprintf(" M%.1f,%.1f", x, y))
				pen = true
			}
		}
		if path.Len() > 0 {
			sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="%s"/>`+"\n",
				color, strings.TrimSpace(path.String())))
		}
	}

	for mi, s := range p.Markers {
		color := palette[(len(p.Curves)+mi)%len(palette)]
		for i := range s.X {
			if s.X[i] <= 0 || s.Y[i] <= 0 {
				continue
			}
			lx, ly := math.Log10(s.X[i]), math.Log10(s.Y[i])
			if lx < p.XMin || lx > p.XMax || ly < p.YMin || ly > p.YMax {
				continue
			}
			x, y := toXY(lx, ly)
			sb.WriteString(fmt.Sprintf(`<path stroke="%s" stroke-width="1.5" d="M%.1f,%.1f L%.1f,%.1f M%.1f,%.1f L%.1f,%.1f"/>`+"\n",
				color, x-4, y-4, x+4, y+4, x-4, y+4, x+4, y-4))
		}
	}

	// Axis labels.
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="#ccc" font-size="12" text-anchor="middle">%s</text>`+"\n",
		svgMarginLeft+plotW/2, height-8, p.XLabel))
	sb.WriteString(fmt.Sprintf(`<text x="14" y="%.1f" fill="#ccc" font-size="12" text-anchor="middle" transform="rotate(-90 14 %.1f)">%s</text>`+"\n",
		svgMarginTop+plotH/2, svgMarginTop+plotH/2, p.YLabel))
	if p.Title != "" {
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="18" fill="#eee" font-size="13" text-anchor="middle">%s</text>`+"\n",
			svgMarginLeft+plotW/2, p.Title))
	}
}

func writeDecades(sb *strings.Builder, p *LogLogPlot, plotW, plotH float64) {
	xStep := decadeStep(p.XMax - p.XMin)
	for lx := math.Ceil(p.XMin); lx <= p.XMax; lx += xStep {
		x := svgMarginLeft + plotW*(lx-p.XMin)/(p.XMax-p.XMin)
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#2a2a2a"/>`+"\n",
			x, svgMarginTop, x, svgMarginTop+plotH))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="#888" font-size="10" text-anchor="middle">1e%.0f</text>`+"\n",
			x, svgMarginTop+plotH+14, lx))
	}
	yStep := decadeStep(p.YMax - p.YMin)
	for ly := math.Ceil(p.YMin); ly <= p.YMax; ly += yStep {
		y := svgMarginTop + plotH*(1-(ly-p.YMin)/(p.YMax-p.YMin))
		sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#2a2a2a"/>`+"\n",
			svgMarginLeft, y, svgMarginLeft+plotW, y))
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="#888" font-size="10" text-anchor="end">1e%.0f</text>`+"\n",
			svgMarginLeft-4, y+3, ly))
	}
}

// decadeStep spaces gridlines so that at most ~12 decades are labeled.
func decadeStep(span float64) float64 {
	step := 1.0
	for span/step > 12 {
		step += 1
	}
	return step
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
