package physics

import (
	"fmt"
	"math"

	"github.com/san-kum/predprey/internal/dynamo"
)

// Parameter names exposed through GetParams/SetParam.
const (
	ParamAlpha = "alpha"
	ParamBeta  = "beta"
	ParamDelta = "delta"
	ParamGamma = "gamma"
)

// ParamNames lists the parameters in slider order.
var ParamNames = []string{ParamAlpha, ParamBeta, ParamDelta, ParamGamma}

// LotkaVolterra is the classic predator-prey system.
//
//	dx/dt = Alpha*x - Beta*x*y
//	dy/dt = Delta*x*y - Gamma*y
//
// x is the prey population and y the predator population.
type LotkaVolterra struct {
	Alpha float64 // prey growth rate
	Beta  float64 // predation rate
	Delta float64 // predator growth per prey eaten
	Gamma float64 // predator death rate
}

func NewLotkaVolterra() *LotkaVolterra {
	return &LotkaVolterra{Alpha: 1.0, Beta: 0.1, Delta: 0.1, Gamma: 1.5}
}

func (lv *LotkaVolterra) StateDim() int   { return 2 }
func (lv *LotkaVolterra) ControlDim() int { return 0 }

// Derive returns the population growth rates. Time and control are ignored.
func (lv *LotkaVolterra) Derive(s dynamo.State, _ dynamo.Control, _ float64) dynamo.State {
	x, y := s[0], s[1]
	return dynamo.State{
		lv.Alpha*x - lv.Beta*x*y,
		lv.Delta*x*y - lv.Gamma*y,
	}
}

func (lv *LotkaVolterra) DefaultState() dynamo.State { return dynamo.State{10, 5} }

// Energy returns V = δx − γ ln x + βy − α ln y, which is constant along
// exact trajectories. It is NaN outside the positive quadrant.
func (lv *LotkaVolterra) Energy(s dynamo.State) float64 {
	x, y := s[0], s[1]
	if x <= 0 || y <= 0 {
		return math.NaN()
	}
	return lv.Delta*x - lv.Gamma*math.Log(x) + lv.Beta*y - lv.Alpha*math.Log(y)
}

// Equilibrium returns the coexistence fixed point (γ/δ, α/β).
// ok is false when the populations are decoupled and no such point exists.
func (lv *LotkaVolterra) Equilibrium() (eq dynamo.State, ok bool) {
	if lv.Beta == 0 || lv.Delta == 0 {
		return nil, false
	}
	return dynamo.State{lv.Gamma / lv.Delta, lv.Alpha / lv.Beta}, true
}

// LinearPeriod is the small-amplitude oscillation period 2π/√(αγ) around
// the equilibrium.
func (lv *LotkaVolterra) LinearPeriod() float64 {
	if lv.Alpha <= 0 || lv.Gamma <= 0 {
		return math.Inf(1)
	}
	return 2 * math.Pi / math.Sqrt(lv.Alpha*lv.Gamma)
}

func (lv *LotkaVolterra) GetParams() map[string]float64 {
	return map[string]float64{
		ParamAlpha: lv.Alpha,
		ParamBeta:  lv.Beta,
		ParamDelta: lv.Delta,
		ParamGamma: lv.Gamma,
	}
}

func (lv *LotkaVolterra) SetParam(name string, v float64) error {
	switch name {
	case ParamAlpha:
		lv.Alpha = v
	case ParamBeta:
		lv.Beta = v
	case ParamDelta:
		lv.Delta = v
	case ParamGamma:
		lv.Gamma = v
	default:
		return fmt.Errorf("%w: %q", dynamo.ErrUnknownParam, name)
	}
	return nil
}
