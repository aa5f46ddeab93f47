package integrators

import (
	"math"
	"testing"

	"sirlab/internal/epi"
)

// decaySystem is dx/dt = -x, with exact solution x0*exp(-t).
type decaySystem struct{}

func (d *decaySystem) Kind() string { return "decay" }

func (d *decaySystem) Derive(x epi.State, t float64, p epi.Params) epi.State {
	return epi.State{-x[0]}
}

func TestEulerExponentialDecay(t *testing.T) {
	integ := NewEuler()
	sys := &decaySystem{}

	x := epi.State{1.0}
	dt := 0.0001
	for steps := 0; steps < 10000; steps++ {
		x = integ.Step(sys, x, 0, dt, epi.Params{})
	}

	exact := math.Exp(-1)
	if math.Abs(x[0]-exact) > 1e-3 {
		t.Errorf("expected %f, got %f", exact, x[0])
	}
}

func TestRK4ExponentialDecay(t *testing.T) {
	integ := NewRK4()
	sys := &decaySystem{}

	x := epi.State{1.0}
	dt := 0.001
	for steps := 0; steps < 1000; steps++ {
		x = integ.Step(sys, x, 0, dt, epi.Params{})
	}

	exact := math.Exp(-1)
	if math.Abs(x[0]-exact) > 1e-9 {
		t.Errorf("expected %f, got %f", exact, x[0])
	}
}

func TestRK45ExponentialDecay(t *testing.T) {
	integ := NewRK45()
	sys := &decaySystem{}

	x := epi.State{1.0}
	dt := 0.01
	for steps := 0; steps < 100; steps++ {
		x = integ.Step(sys, x, 0, dt, epi.Params{})
	}

	exact := math.Exp(-1)
	if math.Abs(x[0]-exact) > 1e-10 {
		t.Errorf("expected %f, got %f", exact, x[0])
	}
}

func TestRK45AcceptsSmallStep(t *testing.T) {
	integ := NewRK45()
	sys := &decaySystem{}

	_, errMax, _ := integ.StepAdaptive(sys, epi.State{1.0}, 0, 0.01, epi.Params{}, 1e-8, 1e-11)

	if errMax > 1 {
		t.Errorf("expected small step to meet tolerance, errMax = %f", errMax)
	}
}

func TestRK45RejectsLargeStep(t *testing.T) {
	integ := NewRK45()
	sys := &decaySystem{}

	dt := 10.0
	_, errMax, dtNext := integ.StepAdaptive(sys, epi.State{1.0}, 0, dt, epi.Params{}, 1e-8, 1e-11)

	if errMax <= 1 {
		t.Fatalf("expected a 10x-too-large step to fail tolerance, errMax = %f", errMax)
	}
	if dtNext >= dt {
		t.Errorf("expected a smaller suggested step, got %f", dtNext)
	}
}

func TestRK45StepSizeSuggestionBounded(t *testing.T) {
	integ := NewRK45()
	sys := &decaySystem{}

	dt := 0.001
	_, _, dtNext := integ.StepAdaptive(sys, epi.State{1.0}, 0, dt, epi.Params{}, 1e-8, 1e-11)

	if dtNext > dt*integ.maxScale {
		t.Errorf("expected growth capped at %fx, got %f", integ.maxScale, dtNext/dt)
	}
	if dtNext < dt*integ.minScale {
		t.Errorf("expected shrink floored at %fx, got %f", integ.minScale, dtNext/dt)
	}
}
