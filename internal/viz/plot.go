package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/vibsim/internal/physics"
	"github.com/san-kum/vibsim/internal/sim"
)

const (
	defaultPlotWidth  = 80
	defaultPlotHeight = 10
)

// RenderPanels draws the four time-series panels of a run: positions of
// both masses (with their equilibrium level in the caption) and both
// velocities.
func RenderPanels(traj *sim.Trajectory, eq physics.EquilibriumPoint) string {
	panels := []struct {
		idx     int
		caption string
	}{
		{physics.IdxX1, fmt.Sprintf("mass 1 position (m), equilibrium %.4f", eq.X1)},
		{physics.IdxV1, "mass 1 velocity (m/s)"},
		{physics.IdxX2, fmt.Sprintf("mass 2 position (m), equilibrium %.4f", eq.X2)},
		{physics.IdxV2, "mass 2 velocity (m/s)"},
	}

	var sb strings.Builder
	for _, p := range panels {
		graph := asciigraph.Plot(traj.Column(p.idx),
			asciigraph.Height(defaultPlotHeight),
			asciigraph.Width(defaultPlotWidth),
			asciigraph.Caption(p.caption),
		)
		sb.WriteString(graphStyle.Render(graph))
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderSpectrum draws a power spectrum with the modal frequencies
// called out in the caption.
func RenderSpectrum(spectrum []float64, omega1, omega2 float64) string {
	graph := asciigraph.Plot(spectrum,
		asciigraph.Height(15),
		asciigraph.Width(defaultPlotWidth),
		asciigraph.Caption(fmt.Sprintf("power spectrum (modal: %.3f, %.3f rad/s)", omega1, omega2)),
	)
	return graphStyle.Render(graph)
}
