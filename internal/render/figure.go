package render

import (
	"fmt"
	"math"

	"github.com/astrosim/pulsarsed/internal/obsdata"
	"github.com/astrosim/pulsarsed/internal/pipeline"
)

// distYDecades is how many decades below the table maximum the
// distribution panel keeps visible.
const distYDecades = 14

// DistributionPlot builds the N(gamma, t) panel, one curve per time
// step.
func DistributionPlot(res *pipeline.Result) *LogLogPlot {
	maxN := 0.0
	for i := range res.Dist.N {
		for _, v := range res.Dist.N[i] {
			if v > maxN {
				maxN = v
			}
		}
	}
	yMax := 40.0
	if maxN > 0 {
		yMax = math.Ceil(math.Log10(maxN)) + 1
	}

	p := &LogLogPlot{
		Title:  "particle distribution",
		XLabel: "gamma",
		YLabel: "N(gamma,t)",
		XMin:   0,
		XMax:   10,
		YMin:   yMax - distYDecades,
		YMax:   yMax,
	}
	for i := range res.Dist.Times {
		p.Curves = append(p.Curves, Series{
			Label: timeLabel(res.Dist.Times[i], res.Derived.PericenterTime),
			X:     res.Dist.Gamma,
			Y:     res.Dist.N[i],
		})
	}
	return p
}

// SpectrumPlot builds the nu*L_nu panel with the configured
// observational overlay.
func SpectrumPlot(res *pipeline.Result) (*LogLogPlot, []Box, error) {
	p := &LogLogPlot{
		Title:  "synchrotron spectrum",
		XLabel: "frequency (Hz)",
		YLabel: "nu L_nu (erg/s)",
		XMin:   7,
		XMax:   26,
		YMin:   26,
		YMax:   37,
	}
	for i := range res.Power.Times {
		p.Curves = append(p.Curves, Series{
			Label: timeLabel(res.Power.Times[i], res.Derived.PericenterTime),
			X:     res.Power.Freqs,
			Y:     res.Power.Power[i],
		})
	}

	var boxes []Box
	if res.Config.Overlay == pipeline.OverlaySgrA {
		radio, err := obsdata.Radio()
		if err != nil {
			return nil, nil, err
		}
		ir, err := obsdata.IR()
		if err != nil {
			return nil, nil, err
		}
		xray, err := obsdata.XRayBox()
		if err != nil {
			return nil, nil, err
		}
		p.Markers = append(p.Markers, toSeries("radio", radio), toSeries("ir", ir))
		boxes = append(boxes, Box{
			X0:    math.Pow(10, xray.Log10Freq[0]),
			X1:    math.Pow(10, xray.Log10Freq[1]),
			Y0:    math.Pow(10, xray.Log10Lum[0]),
			Y1:    math.Pow(10, xray.Log10Lum[1]),
			Color: "#ff00ff",
		})
	}
	return p, boxes, nil
}

// Figure assembles the standard two-panel figure for a run.
func Figure(res *pipeline.Result) ([]SVGPanel, error) {
	spec, boxes, err := SpectrumPlot(res)
	if err != nil {
		return nil, err
	}
	return []SVGPanel{
		{Plot: DistributionPlot(res)},
		{Plot: spec, Boxes: boxes},
	}, nil
}

func toSeries(label string, ds obsdata.Dataset) Series {
	s := Series{Label: label}
	for i := range ds.Log10Freq {
		s.X = append(s.X, math.Pow(10, ds.Log10Freq[i]))
		s.Y = append(s.Y, math.Pow(10, ds.Log10Lum[i]))
	}
	return s
}

func timeLabel(t, pericenter float64) string {
	return fmt.Sprintf("t=%.2g t_p", t/pericenter)
}
