package config

import (
	"sort"

	"github.com/san-kum/solarsim/internal/render"
	"github.com/san-kum/solarsim/internal/sim"
)

const (
	km  = 1000.0
	kms = 1000.0
)

// The sun's radius is a display radius; at any usable radius scale its
// physical radius would swallow the inner planets.
var (
	sunBody     = BodyConfig{Name: "Sun", Kind: "star", Mass: 1.9885e30, Radius: 10000, Color: "#fdf900"}
	mercuryBody = BodyConfig{Name: "Mercury", Kind: "planet", Mass: 0.330e24, Radius: 4879 / 2.0, Position: [3]float64{57.9e6 * km}, Velocity: [3]float64{0, -47.4 * kms}, Color: "#505050"}
	venusBody   = BodyConfig{Name: "Venus", Kind: "planet", Mass: 4.87e24, Radius: 12104 / 2.0, Position: [3]float64{108.2e6 * km}, Velocity: [3]float64{0, -35.02 * kms}, Color: "#ffffff"}
	earthBody   = BodyConfig{Name: "Earth", Kind: "planet", Mass: 5.97e24, Radius: 12756 / 2.0, Position: [3]float64{149.6e6 * km}, Velocity: [3]float64{0, -29.78 * kms}, Color: "#3c78ff"}
	marsBody    = BodyConfig{Name: "Mars", Kind: "planet", Mass: 0.642e24, Radius: 6792 / 2.0, Position: [3]float64{228.0e6 * km}, Velocity: [3]float64{0, -24.07 * kms}, Color: "#e6291c"}

	// counter-clockwise Mercury used as the reference scenario
	mercuryPrograde = BodyConfig{Name: "Mercury", Kind: "planet", Mass: 0.33e24, Radius: 4879 / 2.0, Position: [3]float64{5.79e10}, Velocity: [3]float64{0, 47400}, Color: "#505050"}
)

var Presets = map[string]*Config{
	"inner":        preset("inner", sim.Day, 365, 200, sunBody, mercuryBody, venusBody),
	"mercury":      preset("mercury", sim.Day, 120, 250, sunBody, mercuryPrograde),
	"solar":        preset("solar", sim.Day, 700, 150, sunBody, mercuryBody, venusBody, earthBody, marsBody),
	"earth-hourly": preset("earth-hourly", sim.Hour, 24*366, 200, sunBody, earthBody),
}

func preset(name string, dt float64, steps int, pxPerAU float64, bodies ...BodyConfig) *Config {
	return &Config{
		Name:       name,
		Integrator: DefaultIntegrator,
		Timestep:   dt,
		Steps:      steps,
		FPS:        DefaultFPS,
		Projection: ProjectionConfig{
			PixelsPerAU: pxPerAU,
			RadiusScale: render.DefaultRadiusScale,
			MinRadius:   render.DefaultMinRadius,
			TrailRadius: render.DefaultTrailRadius,
		},
		Bodies: append([]BodyConfig(nil), bodies...),
	}
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	cp.Bodies = append([]BodyConfig(nil), p.Bodies...)
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
