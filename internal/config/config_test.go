package config

import (
	"math"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Grid.Points != 20 {
		t.Errorf("expected 20 grid points, got %d", cfg.Grid.Points)
	}
	if cfg.Model.Payoff != "decaying" {
		t.Errorf("expected payoff decaying, got %s", cfg.Model.Payoff)
	}
	if cfg.Model.Horizon <= 0 {
		t.Error("horizon should be positive")
	}
	if cfg.Solver.Tolerance <= 0 {
		t.Error("tolerance should be positive")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Model.Mu = -0.3
	cfg.Grid.Points = 41

	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Model.Mu != -0.3 {
		t.Errorf("expected mu -0.3, got %g", loaded.Model.Mu)
	}
	if loaded.Grid.Points != 41 {
		t.Errorf("expected 41 points, got %d", loaded.Grid.Points)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestBuildPayoff(t *testing.T) {
	cfg := DefaultConfig()

	r, err := cfg.BuildPayoff()
	if err != nil {
		t.Fatalf("BuildPayoff failed: %v", err)
	}
	if got, want := r(0.5, 1.0), 0.5*math.Exp(-1); math.Abs(got-want) > 1e-15 {
		t.Errorf("decaying payoff(0.5, 1) = %g, want %g", got, want)
	}

	cfg.Model.Payoff = "nonexistent"
	if _, err := cfg.BuildPayoff(); err == nil {
		t.Error("expected error for unknown payoff")
	}
}

func TestBuildModel(t *testing.T) {
	m, err := DefaultConfig().BuildModel()
	if err != nil {
		t.Fatalf("BuildModel failed: %v", err)
	}
	if m.Dim() != 20 {
		t.Errorf("expected dim 20, got %d", m.Dim())
	}
}

func TestBuildModel_BadGrid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Grid.Points = 1
	if _, err := cfg.BuildModel(); err == nil {
		t.Error("expected error for 1-point grid")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("baseline")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Model.Mu != -0.1 {
		t.Errorf("expected mu -0.1, got %g", cfg.Model.Mu)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
}
