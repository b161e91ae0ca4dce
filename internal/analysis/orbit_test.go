package analysis

import (
	"errors"
	"math"
	"testing"
)

func ellipse(n int, dt, a, e float64, turns float64, dir float64) (ts, xs, ys []float64) {
	for i := 0; i <= n; i++ {
		theta := dir * 2 * math.Pi * turns * float64(i) / float64(n)
		r := a * (1 - e*e) / (1 + e*math.Cos(theta))
		ts = append(ts, float64(i)*dt)
		xs = append(xs, r*math.Cos(theta))
		ys = append(ys, r*math.Sin(theta))
	}
	return
}

func TestOrbitCircle(t *testing.T) {
	ts, xs, ys := ellipse(200, 3600, 5.79e10, 0, 2, 1)

	st, err := Orbit(ts, xs, ys)
	if err != nil {
		t.Fatalf("Orbit: %v", err)
	}

	if math.Abs(st.MeanRadius-5.79e10)/5.79e10 > 1e-9 {
		t.Errorf("mean radius %g", st.MeanRadius)
	}
	if st.Eccentricity > 1e-9 {
		t.Errorf("eccentricity %g, want 0", st.Eccentricity)
	}
	if math.Abs(st.Period-100*3600) > 1 {
		t.Errorf("period %v, want %v", st.Period, 100*3600)
	}
	if math.Abs(st.Revolutions-2) > 1e-9 {
		t.Errorf("revolutions %v, want 2", st.Revolutions)
	}
	if st.Direction != 1 {
		t.Errorf("direction %d, want +1", st.Direction)
	}
}

func TestOrbitEllipseClockwise(t *testing.T) {
	ts, xs, ys := ellipse(600, 86400, 1e11, 0.2, 1.5, -1)

	st, err := Orbit(ts, xs, ys)
	if err != nil {
		t.Fatalf("Orbit: %v", err)
	}
	if math.Abs(st.Eccentricity-0.2) > 1e-9 {
		t.Errorf("eccentricity %v, want 0.2", st.Eccentricity)
	}
	if st.Direction != -1 {
		t.Errorf("direction %d, want -1", st.Direction)
	}
	if math.Abs(st.Period-400*86400) > 1 {
		t.Errorf("period %v, want %v", st.Period, 400*86400)
	}
}

func TestOrbitPartial(t *testing.T) {
	ts, xs, ys := ellipse(50, 1, 1, 0, 0.5, 1)
	st, err := Orbit(ts, xs, ys)
	if err != nil {
		t.Fatalf("Orbit: %v", err)
	}
	if st.Period != 0 {
		t.Errorf("half a turn must not yield a period, got %v", st.Period)
	}
}

func TestOrbitTooFew(t *testing.T) {
	if _, err := Orbit([]float64{0}, []float64{1}, []float64{0}); !errors.Is(err, ErrTooFewSamples) {
		t.Errorf("expected ErrTooFewSamples, got %v", err)
	}
}

func TestDistances(t *testing.T) {
	d := Distances([]float64{3, 0}, []float64{4, -2})
	if d[0] != 5 || d[1] != 2 {
		t.Errorf("Distances = %v", d)
	}
}
