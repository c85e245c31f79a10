package config

import (
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"
)

type Preset struct {
	Description string
	Apply       func(*Config)
}

var Presets = map[string]Preset{
	"classic": {
		Description: "textbook cycles around (15, 10)",
		Apply:       func(*Config) {},
	},
	"decoupled": {
		Description: "no interaction: prey grows, predators die out",
		Apply: func(c *Config) {
			c.Params.Beta, c.Params.Delta = 0, 0
		},
	},
	"fast-cycle": {
		Description: "high growth and death rates, short period",
		Apply: func(c *Config) {
			c.Params.Alpha, c.Params.Gamma = 2.5, 2.5
		},
	},
	"near-equilibrium": {
		Description: "start close to the fixed point, small ellipses",
		Apply: func(c *Config) {
			c.InitState.Prey, c.InitState.Predators = 14, 9.5
		},
	},
	"collapse": {
		Description: "heavy predation, deep troughs in both populations",
		Apply: func(c *Config) {
			c.Params.Beta, c.Params.Delta = 0.8, 0.02
			c.InitState.Prey, c.InitState.Predators = 40, 2
		},
	},
}

// GetPreset returns the default config with the named preset applied.
// Unknown names produce an error suggesting the closest preset.
func GetPreset(name string) (*Config, error) {
	p, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset: %s (did you mean %q? available: %v)", name, closestPreset(name), ListPresets())
	}
	cfg := DefaultConfig()
	p.Apply(cfg)
	return cfg, nil
}

// ApplyPreset applies the named preset on top of an existing config.
func ApplyPreset(cfg *Config, name string) error {
	p, ok := Presets[name]
	if !ok {
		return fmt.Errorf("unknown preset: %s (did you mean %q? available: %v)", name, closestPreset(name), ListPresets())
	}
	p.Apply(cfg)
	return nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func closestPreset(name string) string {
	best, bestDist := "", -1
	for _, candidate := range ListPresets() {
		d := levenshtein.ComputeDistance(name, candidate)
		if bestDist < 0 || d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
