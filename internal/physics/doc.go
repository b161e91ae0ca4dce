// Package physics provides the bodies and force law of the solar system
// simulation.
//
// The package is the numerical core that the simulation loop drives:
//
//   - [Body]: a point mass with position, velocity and an owned [Trail]
//   - [Attraction]: Newtonian gravity between two bodies in the x-y plane
//   - [NetForce]: the summed attraction on one body, excluding itself by [ID]
//   - [Trail]: screen-space orbit samples that freeze after one revolution
//
// # Identity
//
// Bodies are compared by [ID] only. Mass and colour can repeat across bodies
// and are never used to decide whether two bodies are the same.
//
// # Planar Motion
//
// Positions and velocities carry a z component, but forces are computed in
// the x-y plane and always have a zero z component.
package physics
