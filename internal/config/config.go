package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/hjbgrid/internal/hjb"
	"github.com/san-kum/hjbgrid/internal/mesh"
	"github.com/san-kum/hjbgrid/internal/solver"
)

const (
	DefaultPoints    = 20
	DefaultMu        = -0.1
	DefaultSigma     = 0.1
	DefaultRho       = 0.05
	DefaultHorizon   = 1.0
	DefaultTolerance = 1e-8
	DefaultSamples   = 50
)

type Config struct {
	Grid   GridConfig   `yaml:"grid"`
	Model  ModelConfig  `yaml:"model"`
	Solver SolverConfig `yaml:"solver"`
	Report ReportConfig `yaml:"report"`
}

type GridConfig struct {
	Points int     `yaml:"points"`
	Lo     float64 `yaml:"lo"`
	Hi     float64 `yaml:"hi"`
}

type ModelConfig struct {
	Mu      float64 `yaml:"mu"`
	Sigma   float64 `yaml:"sigma"`
	Rho     float64 `yaml:"rho"`
	Horizon float64 `yaml:"horizon"`
	Payoff  string  `yaml:"payoff"`
}

type SolverConfig struct {
	Tolerance   float64 `yaml:"tolerance"`
	InitialStep float64 `yaml:"initial_step"`
	MinStep     float64 `yaml:"min_step"`
	MaxSteps    int     `yaml:"max_steps"`
}

type ReportConfig struct {
	Samples int    `yaml:"samples"`
	Height  int    `yaml:"height"`
	Output  string `yaml:"output"`
}

func DefaultConfig() *Config {
	return &Config{
		Grid: GridConfig{
			Points: DefaultPoints,
			Lo:     0,
			Hi:     1,
		},
		Model: ModelConfig{
			Mu:      DefaultMu,
			Sigma:   DefaultSigma,
			Rho:     DefaultRho,
			Horizon: DefaultHorizon,
			Payoff:  "decaying",
		},
		Solver: SolverConfig{
			Tolerance: DefaultTolerance,
		},
		Report: ReportConfig{
			Samples: DefaultSamples,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// payoffs maps config names to flow payoff functions r(x, t).
var payoffs = map[string]hjb.Payoff{
	"decaying": func(x, t float64) float64 { return x * math.Exp(-t) },
	"linear":   func(x, t float64) float64 { return x },
	"constant": func(x, t float64) float64 { return 1 },
	"zero":     func(x, t float64) float64 { return 0 },
}

// BuildPayoff resolves the named payoff.
func (c *Config) BuildPayoff() (hjb.Payoff, error) {
	r, ok := payoffs[c.Model.Payoff]
	if !ok {
		return nil, fmt.Errorf("config: unknown payoff %q", c.Model.Payoff)
	}
	return r, nil
}

// BuildGrid constructs the grid described by the config.
func (c *Config) BuildGrid() (mesh.Grid, error) {
	return mesh.NewUniform(c.Grid.Points, c.Grid.Lo, c.Grid.Hi)
}

// BuildModel assembles the value model: grid, reflecting barriers, payoff.
func (c *Config) BuildModel() (*hjb.Model, error) {
	g, err := c.BuildGrid()
	if err != nil {
		return nil, err
	}
	r, err := c.BuildPayoff()
	if err != nil {
		return nil, err
	}
	return hjb.NewModel(hjb.Params{
		Mu:     c.Model.Mu,
		Sigma:  c.Model.Sigma,
		Rho:    c.Model.Rho,
		Grid:   g,
		Bounds: mesh.ReflectingBarriers(),
	}, r)
}

// BuildSolverConfig converts the config into solver settings.
func (c *Config) BuildSolverConfig() solver.Config {
	return solver.Config{
		Horizon:     c.Model.Horizon,
		Tolerance:   c.Solver.Tolerance,
		InitialStep: c.Solver.InitialStep,
		MinStep:     c.Solver.MinStep,
		MaxSteps:    c.Solver.MaxSteps,
	}
}
