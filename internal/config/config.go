package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/predprey/internal/dynamo"
	"github.com/san-kum/predprey/internal/integrators"
	"github.com/san-kum/predprey/internal/physics"
	"github.com/san-kum/predprey/internal/sim"
)

const (
	DefaultAlpha     = 1.0
	DefaultBeta      = 0.1
	DefaultDelta     = 0.1
	DefaultGamma     = 1.5
	DefaultPrey      = 10.0
	DefaultPredators = 5.0

	EnvPrefix = "PREDPREY"
)

type Config struct {
	Params    ParamsConfig    `yaml:"params" mapstructure:"params"`
	InitState InitStateConfig `yaml:"init_state" mapstructure:"init_state"`
	Grid      GridConfig      `yaml:"grid" mapstructure:"grid"`
	Solver    SolverConfig    `yaml:"solver" mapstructure:"solver"`
	UI        UIConfig        `yaml:"ui" mapstructure:"ui"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

type ParamsConfig struct {
	Alpha float64 `yaml:"alpha" mapstructure:"alpha"`
	Beta  float64 `yaml:"beta" mapstructure:"beta"`
	Delta float64 `yaml:"delta" mapstructure:"delta"`
	Gamma float64 `yaml:"gamma" mapstructure:"gamma"`
}

type InitStateConfig struct {
	Prey      float64 `yaml:"prey" mapstructure:"prey"`
	Predators float64 `yaml:"predators" mapstructure:"predators"`
}

type GridConfig struct {
	Start  float64 `yaml:"start" mapstructure:"start"`
	End    float64 `yaml:"end" mapstructure:"end"`
	Points int     `yaml:"points" mapstructure:"points"`
}

type SolverConfig struct {
	Integrator string  `yaml:"integrator" mapstructure:"integrator"`
	Tolerance  float64 `yaml:"tolerance" mapstructure:"tolerance"`
	MinDt      float64 `yaml:"min_dt" mapstructure:"min_dt"`
	MaxSteps   int     `yaml:"max_steps" mapstructure:"max_steps"`
	Substeps   int     `yaml:"substeps" mapstructure:"substeps"`
}

type UIConfig struct {
	Theme string `yaml:"theme" mapstructure:"theme"`
}

type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	File  string `yaml:"file" mapstructure:"file"`
}

func DefaultConfig() *Config {
	solver := dynamo.DefaultConfig()
	return &Config{
		Params: ParamsConfig{
			Alpha: DefaultAlpha,
			Beta:  DefaultBeta,
			Delta: DefaultDelta,
			Gamma: DefaultGamma,
		},
		InitState: InitStateConfig{
			Prey:      DefaultPrey,
			Predators: DefaultPredators,
		},
		Grid: GridConfig{
			Start:  sim.DefaultStart,
			End:    sim.DefaultEnd,
			Points: sim.DefaultPoints,
		},
		Solver: SolverConfig{
			Integrator: integrators.DefaultName,
			Tolerance:  solver.Tolerance,
			MinDt:      solver.MinDt,
			MaxSteps:   solver.MaxSteps,
			Substeps:   solver.Substeps,
		},
		UI:  UIConfig{Theme: "classic"},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads configuration from defaults, an optional YAML file and the
// environment. Env var overrides use prefix PREDPREY_, for example
// PREDPREY_PARAMS_ALPHA=0.8. An empty path skips the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("params.alpha", d.Params.Alpha)
	v.SetDefault("params.beta", d.Params.Beta)
	v.SetDefault("params.delta", d.Params.Delta)
	v.SetDefault("params.gamma", d.Params.Gamma)
	v.SetDefault("init_state.prey", d.InitState.Prey)
	v.SetDefault("init_state.predators", d.InitState.Predators)
	v.SetDefault("grid.start", d.Grid.Start)
	v.SetDefault("grid.end", d.Grid.End)
	v.SetDefault("grid.points", d.Grid.Points)
	v.SetDefault("solver.integrator", d.Solver.Integrator)
	v.SetDefault("solver.tolerance", d.Solver.Tolerance)
	v.SetDefault("solver.min_dt", d.Solver.MinDt)
	v.SetDefault("solver.max_steps", d.Solver.MaxSteps)
	v.SetDefault("solver.substeps", d.Solver.Substeps)
	v.SetDefault("ui.theme", d.UI.Theme)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	for _, p := range []struct {
		name string
		v    float64
	}{
		{"params.alpha", c.Params.Alpha},
		{"params.beta", c.Params.Beta},
		{"params.delta", c.Params.Delta},
		{"params.gamma", c.Params.Gamma},
		{"init_state.prey", c.InitState.Prey},
		{"init_state.predators", c.InitState.Predators},
	} {
		if p.v < 0 || math.IsNaN(p.v) || math.IsInf(p.v, 0) {
			errs = append(errs, fmt.Errorf("%s must be a non-negative number, got %g", p.name, p.v))
		}
	}
	if c.Grid.Points < 2 {
		errs = append(errs, fmt.Errorf("grid.points must be at least 2, got %d", c.Grid.Points))
	}
	if !(c.Grid.End > c.Grid.Start) {
		errs = append(errs, fmt.Errorf("grid.end (%g) must be greater than grid.start (%g)", c.Grid.End, c.Grid.Start))
	}
	if _, err := integrators.New(c.Solver.Integrator); err != nil {
		errs = append(errs, fmt.Errorf("solver.integrator: %w", err))
	}
	if c.Solver.Tolerance <= 0 {
		errs = append(errs, fmt.Errorf("solver.tolerance must be positive, got %g", c.Solver.Tolerance))
	}
	if c.Solver.MinDt <= 0 {
		errs = append(errs, fmt.Errorf("solver.min_dt must be positive, got %g", c.Solver.MinDt))
	}
	if c.Solver.MaxSteps <= 0 || c.Solver.Substeps <= 0 {
		errs = append(errs, fmt.Errorf("solver.max_steps and solver.substeps must be positive, got %d and %d", c.Solver.MaxSteps, c.Solver.Substeps))
	}
	return errors.Join(errs...)
}

func (c *Config) GetInitState() dynamo.State {
	return dynamo.State{c.InitState.Prey, c.InitState.Predators}
}

func (c *Config) GetGrid() sim.Grid {
	return sim.Linspace(c.Grid.Start, c.Grid.End, c.Grid.Points)
}

func (c *Config) GetSolver() dynamo.Config {
	return dynamo.Config{
		Tolerance: c.Solver.Tolerance,
		MinDt:     c.Solver.MinDt,
		MaxSteps:  c.Solver.MaxSteps,
		Substeps:  c.Solver.Substeps,
	}
}

// GetModel returns a fresh model with the configured parameters.
func (c *Config) GetModel() *physics.LotkaVolterra {
	return &physics.LotkaVolterra{
		Alpha: c.Params.Alpha,
		Beta:  c.Params.Beta,
		Delta: c.Params.Delta,
		Gamma: c.Params.Gamma,
	}
}

// Param returns a parameter by its model name.
func (c *Config) Param(name string) (float64, bool) {
	switch name {
	case physics.ParamAlpha:
		return c.Params.Alpha, true
	case physics.ParamBeta:
		return c.Params.Beta, true
	case physics.ParamDelta:
		return c.Params.Delta, true
	case physics.ParamGamma:
		return c.Params.Gamma, true
	}
	return 0, false
}
