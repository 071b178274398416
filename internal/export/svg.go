package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/vibsim/internal/physics"
	"github.com/san-kum/vibsim/internal/sim"
)

const (
	panelWidth  = 800
	panelHeight = 180
	panelGap    = 20
	margin      = 40
)

// PanelsSVG renders the four time-series panels of a run as a single
// stacked SVG: positions of both masses with their equilibrium level
// drawn as a dashed reference line, then both velocities.
func PanelsSVG(traj *sim.Trajectory, eq physics.EquilibriumPoint) string {
	panels := []struct {
		idx       int
		label     string
		stroke    string
		reference float64
		hasRef    bool
	}{
		{physics.IdxX1, "x1 (m)", "#00c0ff", eq.X1, true},
		{physics.IdxV1, "v1 (m/s)", "#00ff88", 0, false},
		{physics.IdxX2, "x2 (m)", "#ff8800", eq.X2, true},
		{physics.IdxV2, "v2 (m/s)", "#ff44aa", 0, false},
	}

	totalWidth := panelWidth + 2*margin
	totalHeight := len(panels)*(panelHeight+panelGap) + 2*margin - panelGap

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, totalWidth, totalHeight, totalWidth, totalHeight))

	for i, p := range panels {
		top := margin + i*(panelHeight+panelGap)
		writePanel(&sb, traj.Times, traj.Column(p.idx), top, p.label, p.stroke, p.reference, p.hasRef)
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// SavePanels writes the panel SVG of a run to path.
func SavePanels(path string, traj *sim.Trajectory, eq physics.EquilibriumPoint) error {
	if traj.Len() < 2 {
		return fmt.Errorf("export: trajectory too short to plot (%d samples)", traj.Len())
	}
	return os.WriteFile(path, []byte(PanelsSVG(traj, eq)), 0644)
}

func writePanel(sb *strings.Builder, times, values []float64, top int, label, stroke string, reference float64, hasRef bool) {
	if len(times) < 2 || len(values) != len(times) {
		return
	}

	minT, maxT := times[0], times[len(times)-1]
	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	if hasRef {
		if reference < minV {
			minV = reference
		}
		if reference > maxV {
			maxV = reference
		}
	}

	rangeT := maxT - minT
	rangeV := maxV - minV
	if rangeT == 0 {
		rangeT = 1
	}
	if rangeV == 0 {
		rangeV = 1
	}
	minV -= rangeV * 0.1
	maxV += rangeV * 0.1
	rangeV = maxV - minV

	toX := func(t float64) float64 {
		return float64(margin) + (t-minT)/rangeT*float64(panelWidth)
	}
	toY := func(v float64) float64 {
		return float64(top) + float64(panelHeight) - (v-minV)/rangeV*float64(panelHeight)
	}

	sb.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="none" stroke="#333333"/>
`, margin, top, panelWidth, panelHeight))

	if hasRef {
		y := toY(reference)
		sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%.1f" x2="%d" y2="%.1f" stroke="#666666" stroke-dasharray="6,4"/>
`, margin, y, margin+panelWidth, y))
	}

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke))
	for i := range times {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", toX(times[i]), toY(values[i])))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", toX(times[i]), toY(values[i])))
		}
	}
	sb.WriteString("\"/>\n")

	sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" fill="#aaaaaa" font-family="monospace" font-size="12">%s</text>
`, margin+6, top+16, label))
}
