package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// G is the Newtonian constant of gravitation in m³ kg⁻¹ s⁻².
const G = 6.67430e-11

// Attraction returns the force exerted by b on a, in newtons.
//
// The separation is measured in the x-y plane and the result has no z
// component. a and b must not share a planar position.
func Attraction(a, b *Body) r3.Vec {
	dx := b.Pos.X - a.Pos.X
	dy := b.Pos.Y - a.Pos.Y
	d2 := dx*dx + dy*dy

	f := G * a.mass * b.mass / d2
	theta := math.Atan2(dy, dx)
	return r3.Vec{X: f * math.Cos(theta), Y: f * math.Sin(theta)}
}

// NetForce sums the attraction of every body in bodies on target. The target
// itself is skipped by ID, so bodies may contain it.
func NetForce(target *Body, bodies []*Body) r3.Vec {
	var total r3.Vec
	for _, other := range bodies {
		if other.id == target.id {
			continue
		}
		total = r3.Add(total, Attraction(target, other))
	}
	return total
}
