// Package analysis derives orbital statistics from recorded trajectories.
//
//   - [Orbit]: radius band, eccentricity estimate and period of one body
//   - [Distances]: planar distance from the origin at every sample
//
// Angles are unwrapped between samples, so the period estimate only holds
// when a body moves less than half a turn per recorded step.
package analysis
