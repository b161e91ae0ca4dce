package config

import (
	"errors"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/san-kum/solarsim/internal/physics"
	"github.com/san-kum/solarsim/internal/sim"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Integrator != "euler" {
		t.Errorf("expected integrator euler, got %s", cfg.Integrator)
	}
	if cfg.Timestep != sim.Day {
		t.Errorf("expected one-day timestep, got %v", cfg.Timestep)
	}
	if err := cfg.Validate(); !errors.Is(err, ErrNoBodies) {
		t.Errorf("expected ErrNoBodies for empty config, got %v", err)
	}
}

func TestPresetsBuild(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			cfg := GetPreset(name)
			if cfg == nil {
				t.Fatal("expected preset, got nil")
			}
			s, err := cfg.Build(nil)
			if err != nil {
				t.Fatalf("build failed: %v", err)
			}
			if len(s.Bodies()) != len(cfg.Bodies) {
				t.Errorf("expected %d bodies, got %d", len(cfg.Bodies), len(s.Bodies()))
			}
			if !s.Bodies()[0].IsStar() {
				t.Error("expected the first body to be the star")
			}
		})
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestGetPreset_Copy(t *testing.T) {
	cfg := GetPreset("inner")
	cfg.Bodies[0].Mass = 1
	cfg.Timestep = 1

	again := GetPreset("inner")
	if again.Bodies[0].Mass == 1 || again.Timestep == 1 {
		t.Error("modifying a preset copy changed the registry")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mercury.yaml")
	if err := Save(path, GetPreset("mercury")); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Name != "mercury" || len(cfg.Bodies) != 2 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Bodies[1].Position[0] != 5.79e10 || cfg.Bodies[1].Velocity[1] != 47400 {
		t.Errorf("body state not preserved: %+v", cfg.Bodies[1])
	}

	descs, err := cfg.Descriptors()
	if err != nil {
		t.Fatalf("descriptors: %v", err)
	}
	if descs[0].Kind != physics.Star || descs[1].Kind != physics.Planet {
		t.Errorf("kinds not preserved: %v %v", descs[0].Kind, descs[1].Kind)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero timestep", func(c *Config) { c.Timestep = 0 }},
		{"unknown integrator", func(c *Config) { c.Integrator = "rk4" }},
		{"zero mass", func(c *Config) { c.Bodies[1].Mass = 0 }},
		{"bad kind", func(c *Config) { c.Bodies[1].Kind = "comet" }},
		{"bad color", func(c *Config) { c.Bodies[1].Color = "red" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetPreset("mercury")
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestBuild_Coincident(t *testing.T) {
	cfg := GetPreset("mercury")
	cfg.Bodies[1].Position = [3]float64{}
	if _, err := cfg.Build(nil); !errors.Is(err, physics.ErrCoincident) {
		t.Errorf("expected ErrCoincident, got %v", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#fdf900", color.RGBA{253, 249, 0, 255}, true},
		{"#3c78ff80", color.RGBA{60, 120, 255, 128}, true},
		{"", color.RGBA{255, 255, 255, 255}, true},
		{"fdf900", color.RGBA{}, false},
		{"#zzzzzz", color.RGBA{}, false},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.ok && (err != nil || got != tt.want) {
			t.Errorf("ParseColor(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
		if !tt.ok && err == nil {
			t.Errorf("ParseColor(%q): expected error", tt.in)
		}
	}
}

func TestFitProjection(t *testing.T) {
	cfg := GetPreset("inner")
	cfg.FitProjection(160, 120)

	s, err := cfg.Build(nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	p := s.Projection()
	for _, b := range s.Bodies() {
		pos := p.Project(b.Pos, 160, 120)
		if pos.X < 0 || pos.X > 160 || pos.Y < 0 || pos.Y > 120 {
			t.Errorf("%s projected off surface at %v", b.Name(), pos)
		}
	}

	if cfg.Projection.RadiusScale >= GetPreset("inner").Projection.RadiusScale {
		t.Errorf("shrinking the surface should shrink radii, got scale %v", cfg.Projection.RadiusScale)
	}
}
