package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/predprey/internal/dynamo"
)

const (
	DefaultStart  = 0.0
	DefaultEnd    = 50.0
	DefaultPoints = 1000
)

// Grid is an increasing sequence of output times.
type Grid []float64

// Linspace returns n evenly spaced points from start to end inclusive.
func Linspace(start, end float64, n int) Grid {
	if n <= 0 {
		return Grid{}
	}
	if n == 1 {
		return Grid{start}
	}
	g := make(Grid, n)
	step := (end - start) / float64(n-1)
	for i := range g {
		g[i] = start + float64(i)*step
	}
	g[n-1] = end
	return g
}

// DefaultGrid is 1000 points over [0, 50].
func DefaultGrid() Grid {
	return Linspace(DefaultStart, DefaultEnd, DefaultPoints)
}

func (g Grid) Validate() error {
	if len(g) == 0 {
		return fmt.Errorf("%w: empty", dynamo.ErrInvalidGrid)
	}
	for i := 1; i < len(g); i++ {
		if !(g[i] > g[i-1]) {
			return fmt.Errorf("%w: not increasing at index %d", dynamo.ErrInvalidGrid, i)
		}
	}
	return nil
}

// Metric observes every output sample of a run.
type Metric interface {
	Name() string
	Observe(x dynamo.State, t float64)
	Value() float64
	Reset()
}

// Trajectory holds one state per grid point.
type Trajectory struct {
	Times      []float64
	States     []dynamo.State
	Metrics    map[string]float64
	StepsTaken int
	Rejected   int
}

func (tr *Trajectory) Len() int { return len(tr.States) }

// Column extracts one state component across the whole trajectory.
func (tr *Trajectory) Column(i int) []float64 {
	col := make([]float64, len(tr.States))
	for k, s := range tr.States {
		if i < len(s) {
			col[k] = s[i]
		} else {
			col[k] = math.NaN()
		}
	}
	return col
}

// Diverged reports whether any sample is NaN or infinite.
func (tr *Trajectory) Diverged() bool {
	for _, s := range tr.States {
		if !s.IsValid() {
			return true
		}
	}
	return false
}

// Equal reports whether two trajectories hold identical samples.
func (tr *Trajectory) Equal(other *Trajectory) bool {
	if other == nil || len(tr.States) != len(other.States) || len(tr.Times) != len(other.Times) {
		return false
	}
	for i := range tr.Times {
		if tr.Times[i] != other.Times[i] {
			return false
		}
	}
	for i := range tr.States {
		a, b := tr.States[i], other.States[i]
		if len(a) != len(b) {
			return false
		}
		for j := range a {
			if a[j] != b[j] && !(math.IsNaN(a[j]) && math.IsNaN(b[j])) {
				return false
			}
		}
	}
	return true
}
