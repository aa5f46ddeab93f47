package epi

import (
	"errors"
	"math"
	"testing"
)

func TestInitialState(t *testing.T) {
	p := Params{Population: 1000, InitialInfected: 5, InitialRemoved: 10}

	x := p.InitialState()

	if x[S] != 985 {
		t.Errorf("expected S0 = 985, got %f", x[S])
	}
	if x[I] != 5 || x[R] != 10 {
		t.Errorf("expected I0 = 5, R0 = 10, got %f, %f", x[I], x[R])
	}
	if len(x) != NumCompartments {
		t.Errorf("expected %d compartments, got %d", NumCompartments, len(x))
	}
}

func TestStateClone(t *testing.T) {
	x := State{1, 2, 3}
	c := x.Clone()
	c[0] = 99

	if x[0] != 1 {
		t.Error("clone should not alias the original")
	}
}

func TestStateIsValid(t *testing.T) {
	if !(State{1, 2, 3}).IsValid() {
		t.Error("finite state should be valid")
	}
	if (State{1, math.NaN(), 3}).IsValid() {
		t.Error("NaN state should be invalid")
	}
	if (State{1, math.Inf(1), 3}).IsValid() {
		t.Error("Inf state should be invalid")
	}
}

func TestStateSum(t *testing.T) {
	if sum := (State{985, 5, 10}).Sum(); sum != 1000 {
		t.Errorf("expected sum 1000, got %f", sum)
	}
}

func TestNumericalErrorUnwrap(t *testing.T) {
	err := NewNumericalError(12.5, "integration produced NaN/Inf", ErrNumericalInstability)

	if !errors.Is(err, ErrNumericalInstability) {
		t.Error("expected unwrap to ErrNumericalInstability")
	}
	if err.Error() != "t=12.5000: integration produced NaN/Inf" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestTrajectoryAt(t *testing.T) {
	tr := &Trajectory{
		Times:       []float64{0, 1},
		Susceptible: []float64{990, 980},
		Infected:    []float64{10, 15},
		Removed:     []float64{0, 5},
	}

	x := tr.At(1)
	if x[S] != 980 || x[I] != 15 || x[R] != 5 {
		t.Errorf("unexpected state at sample 1: %v", x)
	}
}
