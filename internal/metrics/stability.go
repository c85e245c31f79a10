package metrics

import (
	"github.com/san-kum/predprey/internal/dynamo"
	"github.com/san-kum/predprey/internal/sim"
)

// Stability is the fraction of samples whose populations are finite and
// non-negative. The model itself does not enforce either.
type Stability struct {
	name       string
	violations int
	samples    int
}

func NewStability() *Stability {
	return &Stability{name: "stability"}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(x dynamo.State, t float64) {
	s.samples++
	if !x.IsValid() {
		s.violations++
		return
	}
	for _, val := range x {
		if val < 0 {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// Default returns the metrics recorded for every predator-prey run.
func Default(dyn dynamo.System) []sim.Metric {
	return []sim.Metric{
		NewEnergyDrift(dyn),
		NewStability(),
		NewPeak("peak_prey", 0),
		NewPeak("peak_predators", 1),
	}
}
