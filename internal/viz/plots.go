package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/predprey/internal/analysis"
	"github.com/san-kum/predprey/internal/sim"
)

const (
	TimeSeriesCaption = "predator-prey dynamics"
	PhaseCaption      = "phase diagram"

	phasePad        = 0.05
	phaseLabelWidth = 9
)

// TimeSeriesPlot draws prey and predator populations against time. width
// and height are the size of the plotting area, excluding axis labels,
// legend and caption. Non-finite samples are left as gaps.
func TimeSeriesPlot(tr *sim.Trajectory, width, height int, th Theme) string {
	if tr == nil || tr.Len() == 0 {
		return placeholder("no data", width, height, th)
	}

	prey, pred := gaps(tr.Column(0)), gaps(tr.Column(1))
	if !anyFinite(prey) && !anyFinite(pred) {
		return placeholder("no finite data to plot", width, height, th)
	}

	return asciigraph.PlotMany([][]float64{prey, pred},
		asciigraph.Width(max(width, 2)),
		asciigraph.Height(max(height, 2)),
		asciigraph.Precision(1),
		asciigraph.SeriesColors(th.PreyANSI, th.PredANSI),
		asciigraph.SeriesLegends("prey", "predators"),
		asciigraph.Caption(fmt.Sprintf("%s (t = %.4g .. %.4g)", TimeSeriesCaption, tr.Times[0], tr.Times[len(tr.Times)-1])),
	)
}

// PhasePlot draws predators against prey on a Braille canvas of width x
// height cells, autoscaled to the trajectory with a small margin.
func PhasePlot(tr *sim.Trajectory, width, height int, th Theme) string {
	portrait := analysis.FromTrajectory(tr, 0, 1)
	if portrait == nil || len(portrait.Points) == 0 {
		return placeholder("no finite data to plot", width+phaseLabelWidth+2, height, th)
	}

	minX, maxX, minY, maxY := portrait.Bounds(phasePad)
	vp := Viewport{MinX: minX, MaxX: maxX, MinY: minY, MaxY: maxY}
	if !finiteViewport(vp) {
		return placeholder("phase range overflow", width+phaseLabelWidth+2, height, th)
	}

	canvas := NewCanvas(width, height)
	canvas.Polyline(portrait.Points, vp)

	curve := lipgloss.NewStyle().Foreground(th.Phase)
	label := th.label()

	var b strings.Builder
	for i, row := range strings.Split(canvas.String(), "\n") {
		var tick string
		switch i {
		case 0:
			tick = formatTick(maxY)
		case canvas.Height / 2:
			tick = "predators"
		case canvas.Height - 1:
			tick = formatTick(minY)
		}
		b.WriteString(label.Render(fmt.Sprintf("%*s ┤", phaseLabelWidth, tick)))
		b.WriteString(curve.Render(row))
		b.WriteByte('\n')
	}

	indent := strings.Repeat(" ", phaseLabelWidth+1)
	b.WriteString(label.Render(indent + "└" + strings.Repeat("─", canvas.Width)))
	b.WriteByte('\n')
	b.WriteString(label.Render(indent + " " + spread(formatTick(minX), "prey", formatTick(maxX), canvas.Width)))
	b.WriteByte('\n')
	b.WriteString(th.caption().Render(indent + " " + center(PhaseCaption, canvas.Width)))

	return b.String()
}

// gaps replaces infinities with NaN so asciigraph skips them.
func gaps(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		if math.IsInf(x, 0) {
			x = math.NaN()
		}
		out[i] = x
	}
	return out
}

func anyFinite(v []float64) bool {
	for _, x := range v {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			return true
		}
	}
	return false
}

func finiteViewport(vp Viewport) bool {
	for _, f := range []float64{vp.MinX, vp.MaxX, vp.MinY, vp.MaxY, vp.MaxX - vp.MinX, vp.MaxY - vp.MinY} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

func formatTick(v float64) string {
	return fmt.Sprintf("%.4g", v)
}

// spread lays out left, mid and right across width columns.
func spread(left, mid, right string, width int) string {
	gap := width - len(left) - len(mid) - len(right)
	if gap < 2 {
		return left + " " + mid + " " + right
	}
	l := gap / 2
	return left + strings.Repeat(" ", l) + mid + strings.Repeat(" ", gap-l) + right
}

func center(s string, width int) string {
	pad := (width - len(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

func placeholder(msg string, width, height int, th Theme) string {
	return lipgloss.Place(max(width, len(msg)), max(height, 1), lipgloss.Center, lipgloss.Center, th.label().Render(msg))
}
