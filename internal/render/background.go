package render

import (
	"image/color"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

var starColor = color.RGBA{255, 255, 255, 255}

// Starfield is a fixed scatter of background points, placed as fractions of
// the surface so it survives resizes.
type Starfield struct {
	points []r2.Vec
	Radius float64
}

func NewStarfield(n int, seed int64) *Starfield {
	rng := rand.New(rand.NewSource(seed))
	points := make([]r2.Vec, n)
	for i := range points {
		points[i] = r2.Vec{X: rng.Float64(), Y: rng.Float64()}
	}
	return &Starfield{points: points, Radius: 1}
}

func (s *Starfield) Len() int { return len(s.points) }

func (s *Starfield) Draw(r Renderer) {
	w, h := r.Size()
	for _, p := range s.points {
		r.Circle(p.X*w, p.Y*h, s.Radius, starColor)
	}
}
