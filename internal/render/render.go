// Package render maps physical coordinates onto a drawing surface.
package render

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// AU is one astronomical unit in metres.
const AU = 1.495978707e11

const (
	DefaultPixelsPerAU = 200.0
	DefaultRadiusScale = 1.0 / 1000.0
	DefaultMinRadius   = 1.0
	DefaultTrailRadius = 1.0
)

// Renderer is a surface that can draw filled circles. Coordinates are in the
// renderer's own pixel units with the origin at the top-left corner.
type Renderer interface {
	Size() (width, height float64)
	Circle(x, y, radius float64, c color.RGBA)
}

// Resetter is implemented by surfaces that keep what was drawn until told
// to start a new frame.
type Resetter interface {
	Reset()
}

// Projection converts metres to pixels.
type Projection struct {
	// Scale is pixels per metre.
	Scale float64
	// RadiusScale is pixels per kilometre of body radius.
	RadiusScale float64
	MinRadius   float64
	TrailRadius float64
}

func DefaultProjection() Projection {
	return Projection{
		Scale:       DefaultPixelsPerAU / AU,
		RadiusScale: DefaultRadiusScale,
		MinRadius:   DefaultMinRadius,
		TrailRadius: DefaultTrailRadius,
	}
}

// PixelsPerAU builds a Scale value from a pixels-per-AU figure.
func PixelsPerAU(px float64) float64 {
	return px / AU
}

// Project maps a physical position onto a surface of the given size, with
// the physical origin at the surface centre. z is ignored.
func (p Projection) Project(pos r3.Vec, width, height float64) r2.Vec {
	return r2.Vec{
		X: pos.X*p.Scale + width/2,
		Y: pos.Y*p.Scale + height/2,
	}
}

// Radius converts a body radius in km to pixels.
func (p Projection) Radius(km float64) float64 {
	r := km * p.RadiusScale
	if r < p.MinRadius {
		return p.MinRadius
	}
	return r
}

const (
	DefaultWidth  = 1920.0
	DefaultHeight = 1080.0
)

// Blank is a Renderer that draws nothing.
type Blank struct {
	Width, Height float64
}

func NewBlank() *Blank {
	return &Blank{Width: DefaultWidth, Height: DefaultHeight}
}

func (b *Blank) Size() (float64, float64) { return b.Width, b.Height }
func (b *Blank) Circle(x, y, r float64, c color.RGBA) {}
