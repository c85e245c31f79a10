package metrics

import (
	"math"

	"github.com/san-kum/predprey/internal/dynamo"
)

// EnergyDrift tracks the largest relative deviation of a system's conserved
// quantity from its value at the first observed sample.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
	dyn           dynamo.System
}

func NewEnergyDrift(dyn dynamo.System) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		dyn:  dyn,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State, t float64) {
	ec, ok := e.dyn.(dynamo.Hamiltonian)
	if !ok {
		return
	}

	energy := ec.Energy(x)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if math.IsNaN(energy) || math.IsNaN(e.initialEnergy) {
		e.maxDrift = math.NaN()
		return
	}
	if e.initialEnergy != 0 && !math.IsNaN(e.maxDrift) {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

// Value is NaN once any sample leaves the region where the quantity is
// defined.
func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}

// Peak records the largest value of one state component.
type Peak struct {
	name  string
	index int
	max   float64
	seen  bool
}

func NewPeak(name string, index int) *Peak {
	return &Peak{name: name, index: index}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(x dynamo.State, t float64) {
	if p.index >= len(x) || math.IsNaN(x[p.index]) {
		return
	}
	if !p.seen || x[p.index] > p.max {
		p.max = x[p.index]
		p.seen = true
	}
}

func (p *Peak) Value() float64 {
	if !p.seen {
		return math.NaN()
	}
	return p.max
}

func (p *Peak) Reset() {
	p.max = 0
	p.seen = false
}
