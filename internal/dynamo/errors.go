package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrUnknownParam indicates a parameter name the system does not expose.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")

	// ErrContextCanceled indicates the integration was interrupted.
	ErrContextCanceled = errors.New("dynamo: simulation canceled by context")

	// ErrStepRejected indicates an adaptive step whose error estimate exceeded
	// the tolerance. The caller retries with the suggested step size.
	ErrStepRejected = errors.New("dynamo: step rejected by error control")

	// ErrStepTooSmall indicates adaptive timestep became too small.
	ErrStepTooSmall = errors.New("dynamo: adaptive timestep below minimum")

	// ErrTooManySteps indicates the solver exceeded its internal step budget
	// between two output points.
	ErrTooManySteps = errors.New("dynamo: too many internal steps between output points")

	// ErrInvalidGrid indicates an output time grid that is empty or not increasing.
	ErrInvalidGrid = errors.New("dynamo: invalid time grid")

	// ErrDimensionMismatch indicates mismatched state/system dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("%v (step %d, t=%.6g, state=%v)", e.Wrapped, e.Step, e.Time, []float64(e.State))
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
