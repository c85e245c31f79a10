package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/predprey/internal/sim"
)

type Point struct{ X, Y float64 }

// PhasePortrait2D holds data for a 2D phase space plot
type PhasePortrait2D struct {
	XIndex, YIndex int
	Points         []Point
}

// FromTrajectory collects (x[xIdx], x[yIdx]) for every finite sample.
func FromTrajectory(tr *sim.Trajectory, xIdx, yIdx int) *PhasePortrait2D {
	if tr == nil {
		return nil
	}

	portrait := &PhasePortrait2D{
		XIndex: xIdx,
		YIndex: yIdx,
		Points: make([]Point, 0, tr.Len()),
	}

	for _, s := range tr.States {
		if xIdx >= len(s) || yIdx >= len(s) {
			return nil
		}
		x, y := s[xIdx], s[yIdx]
		if !finite(x) || !finite(y) {
			continue
		}
		portrait.Points = append(portrait.Points, Point{X: x, Y: y})
	}

	return portrait
}

// Bounds returns the bounding box of the portrait padded by pad (a fraction
// of each range). Degenerate ranges are widened to 1.
func (p *PhasePortrait2D) Bounds(pad float64) (minX, maxX, minY, maxY float64) {
	if p == nil || len(p.Points) == 0 {
		return 0, 1, 0, 1
	}

	minX, maxX = p.Points[0].X, p.Points[0].X
	minY, maxY = p.Points[0].Y, p.Points[0].Y
	for _, pt := range p.Points {
		minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
		minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
	}

	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
		minX, maxX = minX-0.5, maxX+0.5
	}
	if rangeY == 0 {
		rangeY = 1
		minY, maxY = minY-0.5, maxY+0.5
	}

	return minX - rangeX*pad, maxX + rangeX*pad, minY - rangeY*pad, maxY + rangeY*pad
}

// PhasePortraitToASCII converts phase portrait to ASCII art
func PhasePortraitToASCII(portrait *PhasePortrait2D, width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX, minY, maxY := portrait.Bounds(0.1)
	rangeX := maxX - minX
	rangeY := maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	// Draw axes if they cross the visible area
	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
