package epi

import (
	"errors"
	"fmt"
)

// Domain errors for simulation runs.
var (
	// ErrNumericalInstability indicates the solver produced NaN/Inf or
	// broke the conservation invariant beyond tolerance.
	ErrNumericalInstability = errors.New("epi: numerical instability")

	// ErrStepTooSmall indicates the adaptive timestep collapsed below its
	// minimum without meeting tolerance.
	ErrStepTooSmall = errors.New("epi: adaptive timestep below minimum")

	// ErrUnknownModel indicates a model kind with no registered equations.
	ErrUnknownModel = errors.New("epi: unknown model")
)

// NumericalError tags a solver failure with the simulation time it
// occurred at. It unwraps to ErrNumericalInstability or ErrStepTooSmall.
type NumericalError struct {
	Time    float64
	Message string
	wrapped error
}

func NewNumericalError(t float64, msg string, wrapped error) *NumericalError {
	return &NumericalError{Time: t, Message: msg, wrapped: wrapped}
}

func (e *NumericalError) Error() string {
	return fmt.Sprintf("t=%.4f: %s", e.Time, e.Message)
}

func (e *NumericalError) Unwrap() error { return e.wrapped }
