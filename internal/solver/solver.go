// Package solver runs the full backward value solve as one sequential
// pipeline: terminal linear solve at the horizon, then error-controlled
// integration down to t = 0.
package solver

import (
	"context"
	"fmt"

	"github.com/san-kum/hjbgrid/internal/hjb"
	"github.com/san-kum/hjbgrid/internal/integrators"
	"github.com/san-kum/hjbgrid/internal/ode"
)

type Config struct {
	// Horizon is the terminal time T; the solve runs over [0, T].
	Horizon float64
	// Tolerance bounds the local error of the adaptive integrator.
	Tolerance float64
	// InitialStep, MinStep and MaxSteps are passed through to the driver;
	// zero values select driver defaults.
	InitialStep float64
	MinStep     float64
	MaxSteps    int
}

func DefaultConfig() Config {
	return Config{
		Horizon:   1.0,
		Tolerance: 1e-8,
	}
}

// Observer receives every accepted integration step.
type Observer interface {
	OnStep(t float64, v ode.State)
}

type Result struct {
	// Terminal is v(T), the solution of the terminal linear system.
	Terminal ode.State
	// Solution is the dense backward solution over [0, T].
	Solution *ode.Solution
	Stats    ode.Stats
}

type Solver struct {
	model     *hjb.Model
	observers []Observer
}

func New(model *hjb.Model) *Solver {
	return &Solver{model: model}
}

func (s *Solver) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func validateConfig(cfg Config) error {
	if cfg.Horizon <= 0 {
		return fmt.Errorf("solver: horizon must be positive, got %g", cfg.Horizon)
	}
	if cfg.Tolerance < 0 {
		return fmt.Errorf("solver: tolerance must not be negative, got %g", cfg.Tolerance)
	}
	if cfg.MinStep < 0 {
		return fmt.Errorf("solver: min step must not be negative, got %g", cfg.MinStep)
	}
	return nil
}

// Run executes the pipeline once. Every failure aborts and propagates;
// nothing is retried.
func (s *Solver) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	vT, err := s.model.TerminalValue(cfg.Horizon)
	if err != nil {
		return nil, fmt.Errorf("solver: terminal solve: %w", err)
	}

	opts := integrators.Options{
		Tolerance:   cfg.Tolerance,
		InitialStep: cfg.InitialStep,
		MinStep:     cfg.MinStep,
		MaxSteps:    cfg.MaxSteps,
	}
	if len(s.observers) > 0 {
		opts.OnStep = func(t float64, v ode.State) {
			for _, o := range s.observers {
				o.OnStep(t, v)
			}
		}
	}

	sol, stats, err := integrators.Drive(ctx, s.model, vT, cfg.Horizon, 0, opts)
	if err != nil {
		return nil, fmt.Errorf("solver: backward integration: %w", err)
	}

	return &Result{Terminal: vT, Solution: sol, Stats: stats}, nil
}
