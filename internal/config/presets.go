package config

import "sort"

var Presets = map[string]*Config{
	"baseline": {
		Grid:   GridConfig{Points: 20, Lo: 0, Hi: 1},
		Model:  ModelConfig{Mu: -0.1, Sigma: 0.1, Rho: 0.05, Horizon: 1.0, Payoff: "decaying"},
		Solver: SolverConfig{Tolerance: 1e-8},
		Report: ReportConfig{Samples: 50},
	},
	"fine": {
		Grid:   GridConfig{Points: 200, Lo: 0, Hi: 1},
		Model:  ModelConfig{Mu: -0.1, Sigma: 0.1, Rho: 0.05, Horizon: 1.0, Payoff: "decaying"},
		Solver: SolverConfig{Tolerance: 1e-10},
		Report: ReportConfig{Samples: 100},
	},
	"driftless": {
		Grid:   GridConfig{Points: 20, Lo: 0, Hi: 1},
		Model:  ModelConfig{Mu: 0, Sigma: 0.1, Rho: 0.05, Horizon: 1.0, Payoff: "decaying"},
		Solver: SolverConfig{Tolerance: 1e-8},
		Report: ReportConfig{Samples: 50},
	},
	"volatile": {
		Grid:   GridConfig{Points: 50, Lo: 0, Hi: 1},
		Model:  ModelConfig{Mu: -0.1, Sigma: 0.5, Rho: 0.05, Horizon: 2.0, Payoff: "decaying"},
		Solver: SolverConfig{Tolerance: 1e-8},
		Report: ReportConfig{Samples: 80},
	},
	"degenerate": {
		Grid:   GridConfig{Points: 20, Lo: 0, Hi: 1},
		Model:  ModelConfig{Mu: 0, Sigma: 0, Rho: 0.5, Horizon: 1.0, Payoff: "constant"},
		Solver: SolverConfig{Tolerance: 1e-10},
		Report: ReportConfig{Samples: 50},
	},
}

// GetPreset returns the named preset, or nil if it does not exist.
func GetPreset(name string) *Config {
	return Presets[name]
}

// ListPresets returns preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
