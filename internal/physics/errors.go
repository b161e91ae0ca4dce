package physics

import (
	"errors"
	"fmt"
)

// Domain errors for body construction and stepping.
var (
	// ErrInvalidBody indicates a non-positive or non-finite mass or radius,
	// or a non-finite initial position or velocity.
	ErrInvalidBody = errors.New("physics: invalid body")

	// ErrCoincident indicates two bodies placed at the same planar position.
	ErrCoincident = errors.New("physics: coincident bodies")

	// ErrInvalidState indicates a position or velocity became NaN or Inf.
	ErrInvalidState = errors.New("physics: invalid state (NaN or Inf detected)")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	BodyID  ID
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.0fs) body %d: %v", e.Step, e.Time, e.BodyID, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
