package analysis

import (
	"errors"
	"math"
)

var ErrTooFewSamples = errors.New("analysis: need at least two samples")

// OrbitStats summarises a body's motion around the origin.
type OrbitStats struct {
	MinRadius  float64
	MaxRadius  float64
	MeanRadius float64
	// Eccentricity is (max-min)/(max+min), exact for a Kepler ellipse
	// sampled at its apsides.
	Eccentricity float64
	// Period is the time of the first full turn, 0 if none was recorded.
	Period      float64
	Revolutions float64
	// Direction is +1 for counter-clockwise motion, -1 for clockwise.
	Direction int
}

// Orbit computes statistics for a track sampled at times.
func Orbit(times, xs, ys []float64) (OrbitStats, error) {
	n := len(times)
	if n < 2 || len(xs) != n || len(ys) != n {
		return OrbitStats{}, ErrTooFewSamples
	}

	var st OrbitStats
	st.MinRadius = math.Inf(1)

	sum := 0.0
	swept := 0.0
	prevAngle := math.Atan2(ys[0], xs[0])
	for i := 0; i < n; i++ {
		r := math.Hypot(xs[i], ys[i])
		st.MinRadius = math.Min(st.MinRadius, r)
		st.MaxRadius = math.Max(st.MaxRadius, r)
		sum += r

		if i == 0 {
			continue
		}
		angle := math.Atan2(ys[i], xs[i])
		delta := wrap(angle - prevAngle)
		prevAngle = angle

		before := swept
		swept += delta
		if st.Period == 0 && math.Abs(swept) >= 2*math.Pi {
			// interpolate inside the step that closed the turn
			frac := (2*math.Pi - math.Abs(before)) / math.Abs(delta)
			st.Period = times[i-1] + frac*(times[i]-times[i-1]) - times[0]
		}
	}

	st.MeanRadius = sum / float64(n)
	if st.MaxRadius+st.MinRadius > 0 {
		st.Eccentricity = (st.MaxRadius - st.MinRadius) / (st.MaxRadius + st.MinRadius)
	}
	st.Revolutions = math.Abs(swept) / (2 * math.Pi)
	st.Direction = 1
	if swept < 0 {
		st.Direction = -1
	}
	return st, nil
}

// Distances returns the planar distance from the origin of every sample.
func Distances(xs, ys []float64) []float64 {
	out := make([]float64, len(xs))
	for i := range xs {
		out[i] = math.Hypot(xs[i], ys[i])
	}
	return out
}

// wrap maps an angle difference into (-π, π].
func wrap(a float64) float64 {
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}
