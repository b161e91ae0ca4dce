package physics

import "math"

// KineticEnergy returns the summed ½mv² of the snapshots, in joules.
func KineticEnergy(bodies []Snapshot) float64 {
	e := 0.0
	for _, b := range bodies {
		v2 := b.Vel.X*b.Vel.X + b.Vel.Y*b.Vel.Y + b.Vel.Z*b.Vel.Z
		e += 0.5 * b.Mass * v2
	}
	return e
}

// PotentialEnergy returns the pairwise gravitational potential energy of the
// snapshots, measured in the x-y plane like [Attraction].
func PotentialEnergy(bodies []Snapshot) float64 {
	e := 0.0
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			d := math.Hypot(bodies[j].Pos.X-bodies[i].Pos.X, bodies[j].Pos.Y-bodies[i].Pos.Y)
			if d == 0 {
				continue
			}
			e -= G * bodies[i].Mass * bodies[j].Mass / d
		}
	}
	return e
}

// TotalEnergy is kinetic plus potential energy.
func TotalEnergy(bodies []Snapshot) float64 {
	return KineticEnergy(bodies) + PotentialEnergy(bodies)
}

// AngularMomentum returns the z component of total angular momentum about the
// origin, in kg m² s⁻¹.
func AngularMomentum(bodies []Snapshot) float64 {
	l := 0.0
	for _, b := range bodies {
		l += b.Mass * (b.Pos.X*b.Vel.Y - b.Pos.Y*b.Vel.X)
	}
	return l
}
