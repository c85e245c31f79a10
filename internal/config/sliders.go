package config

import (
	"math"

	"github.com/san-kum/predprey/internal/physics"
)

// SliderSpec is the fixed range of one parameter slider.
type SliderSpec struct {
	Name  string
	Label string
	Min   float64
	Max   float64
}

var SliderSpecs = []SliderSpec{
	{Name: physics.ParamAlpha, Label: "prey growth", Min: 0.1, Max: 3.0},
	{Name: physics.ParamBeta, Label: "predation", Min: 0.01, Max: 1.0},
	{Name: physics.ParamDelta, Label: "conversion", Min: 0.01, Max: 1.0},
	{Name: physics.ParamGamma, Label: "predator death", Min: 0.1, Max: 3.0},
}

func (s SliderSpec) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return s.Min
	}
	return math.Max(s.Min, math.Min(s.Max, v))
}

// SliderInitial returns the configured value of the slider's parameter,
// clamped into the slider range.
func (c *Config) SliderInitial(s SliderSpec) float64 {
	v, ok := c.Param(s.Name)
	if !ok {
		return s.Min
	}
	return s.Clamp(v)
}
