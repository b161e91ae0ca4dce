package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"

	"github.com/charmbracelet/log"
	"github.com/san-kum/solarsim/internal/physics"
	"github.com/san-kum/solarsim/internal/render"
	"github.com/san-kum/solarsim/internal/sim"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTimestep   = sim.Day
	DefaultIntegrator = "euler"
	DefaultSteps      = 365
	DefaultFPS        = 60
	DefaultPreset     = "inner"
)

var ErrNoBodies = errors.New("config: no bodies")

type Config struct {
	Name       string           `yaml:"name"`
	Integrator string           `yaml:"integrator"`
	Timestep   float64          `yaml:"timestep"`
	Steps      int              `yaml:"steps"`
	FPS        int              `yaml:"fps"`
	Projection ProjectionConfig `yaml:"projection"`
	Bodies     []BodyConfig     `yaml:"bodies"`
}

type ProjectionConfig struct {
	PixelsPerAU float64 `yaml:"pixels_per_au"`
	RadiusScale float64 `yaml:"radius_scale"`
	MinRadius   float64 `yaml:"min_radius"`
	TrailRadius float64 `yaml:"trail_radius"`
}

type BodyConfig struct {
	Name     string     `yaml:"name"`
	Kind     string     `yaml:"kind"`
	Mass     float64    `yaml:"mass"`
	Radius   float64    `yaml:"radius"`
	Position [3]float64 `yaml:"position,flow"`
	Velocity [3]float64 `yaml:"velocity,flow"`
	Color    string     `yaml:"color"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:       "custom",
		Integrator: DefaultIntegrator,
		Timestep:   DefaultTimestep,
		Steps:      DefaultSteps,
		FPS:        DefaultFPS,
		Projection: ProjectionConfig{
			PixelsPerAU: render.DefaultPixelsPerAU,
			RadiusScale: render.DefaultRadiusScale,
			MinRadius:   render.DefaultMinRadius,
			TrailRadius: render.DefaultTrailRadius,
		},
	}
}

// Load reads a YAML file on top of DefaultConfig.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

// Validate checks everything Build needs without building.
func (c *Config) Validate() error {
	if !(c.Timestep > 0) {
		return fmt.Errorf("%w, got %g", sim.ErrInvalidTimestep, c.Timestep)
	}
	if _, err := sim.NewIntegrator(c.Integrator); err != nil {
		return err
	}
	if len(c.Bodies) == 0 {
		return ErrNoBodies
	}
	_, err := c.Descriptors()
	return err
}

// Descriptors converts the body list into physics descriptors.
func (c *Config) Descriptors() ([]physics.Descriptor, error) {
	out := make([]physics.Descriptor, 0, len(c.Bodies))
	for i, b := range c.Bodies {
		kind, err := physics.ParseKind(b.Kind)
		if err != nil {
			return nil, fmt.Errorf("body %d (%s): %w", i, b.Name, err)
		}
		col, err := ParseColor(b.Color)
		if err != nil {
			return nil, fmt.Errorf("body %d (%s): %w", i, b.Name, err)
		}
		d := physics.Descriptor{
			Name:     b.Name,
			Kind:     kind,
			Mass:     b.Mass,
			Radius:   b.Radius,
			Position: r3.Vec{X: b.Position[0], Y: b.Position[1], Z: b.Position[2]},
			Velocity: r3.Vec{X: b.Velocity[0], Y: b.Velocity[1], Z: b.Velocity[2]},
			Color:    col,
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// FitProjection rescales the projection so the body farthest from the
// origin lands inside a width x height surface. Body radii shrink or grow by
// the same factor.
func (c *Config) FitProjection(width, height float64) {
	var farthest float64
	for _, b := range c.Bodies {
		farthest = math.Max(farthest, math.Hypot(b.Position[0], b.Position[1]))
	}
	if farthest == 0 || width <= 0 || height <= 0 {
		return
	}

	old := c.Projection.PixelsPerAU
	if old <= 0 {
		old = render.DefaultPixelsPerAU
	}
	px := 0.9 * math.Min(width, height) / 2 / (farthest / render.AU)
	c.Projection.PixelsPerAU = px

	rs := c.Projection.RadiusScale
	if rs <= 0 {
		rs = render.DefaultRadiusScale
	}
	c.Projection.RadiusScale = rs * px / old
}

func (c *Config) RenderProjection() render.Projection {
	p := render.DefaultProjection()
	if c.Projection.PixelsPerAU > 0 {
		p.Scale = render.PixelsPerAU(c.Projection.PixelsPerAU)
	}
	if c.Projection.RadiusScale > 0 {
		p.RadiusScale = c.Projection.RadiusScale
	}
	if c.Projection.MinRadius > 0 {
		p.MinRadius = c.Projection.MinRadius
	}
	if c.Projection.TrailRadius > 0 {
		p.TrailRadius = c.Projection.TrailRadius
	}
	return p
}

// Build creates a simulation populated with the configured bodies.
func (c *Config) Build(logger *log.Logger) (*sim.Simulation, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	integ, err := sim.NewIntegrator(c.Integrator)
	if err != nil {
		return nil, err
	}

	opts := []sim.Option{
		sim.WithIntegrator(integ),
		sim.WithProjection(c.RenderProjection()),
	}
	if logger != nil {
		opts = append(opts, sim.WithLogger(logger))
	}

	s, err := sim.New(c.Timestep, opts...)
	if err != nil {
		return nil, err
	}

	descs, err := c.Descriptors()
	if err != nil {
		return nil, err
	}
	for _, d := range descs {
		if _, err := s.AddBody(d); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ParseColor parses "#rrggbb" or "#rrggbbaa". An empty string is white.
func ParseColor(hex string) (color.RGBA, error) {
	if hex == "" {
		return color.RGBA{255, 255, 255, 255}, nil
	}
	var r, g, b, a uint8
	switch len(hex) {
	case 7:
		if n, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil || n != 3 {
			return color.RGBA{}, fmt.Errorf("invalid color %q", hex)
		}
		a = 255
	case 9:
		if n, err := fmt.Sscanf(hex, "#%02x%02x%02x%02x", &r, &g, &b, &a); err != nil || n != 4 {
			return color.RGBA{}, fmt.Errorf("invalid color %q", hex)
		}
	default:
		return color.RGBA{}, fmt.Errorf("invalid color %q", hex)
	}
	return color.RGBA{r, g, b, a}, nil
}
