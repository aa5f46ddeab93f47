package solver

import (
	"context"
	"fmt"
	"math"

	"sirlab/internal/epi"
	"sirlab/internal/integrators"
)

const (
	// DefaultPoints is the sample count used when Params.Points is zero.
	DefaultPoints = 300

	// DefaultRTol / DefaultATol are tight enough that S+I+R stays within
	// 1e-6 relative error of N over any valid horizon.
	DefaultRTol = 1e-8
	DefaultATol = 1e-11

	// ConservationTol bounds |S+I+R-N| relative to N on the final output.
	ConservationTol = 1e-6

	minDt = 1e-10
)

// Solver wraps a numerical integrator into the engine's trajectory
// contract: fixed equally spaced sample grid, NaN/Inf detection,
// non-negativity clamping and conservation checking on the output.
type Solver struct {
	integ epi.Integrator
	rtol  float64
	atol  float64
}

func New(integ epi.Integrator, rtol, atol float64) *Solver {
	return &Solver{integ: integ, rtol: rtol, atol: atol}
}

// Default returns a solver backed by adaptive Dormand-Prince RK45.
func Default() *Solver {
	return New(integrators.NewRK45(), DefaultRTol, DefaultATol)
}

// Solve integrates sys over [0, Days] and samples the solution at Points
// equally spaced times. On any numerical failure the trajectory is
// discarded and a *epi.NumericalError is returned instead.
func (s *Solver) Solve(ctx context.Context, sys epi.System, p epi.Params) (*epi.Trajectory, error) {
	points := p.Points
	if points <= 0 {
		points = DefaultPoints
	}

	tr := &epi.Trajectory{
		Times:       make([]float64, points),
		Susceptible: make([]float64, points),
		Infected:    make([]float64, points),
		Removed:     make([]float64, points),
	}

	x := p.InitialState()
	t := 0.0
	record(tr, 0, t, x)

	dt := p.Days / float64(points-1)

	for i := 1; i < points; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Keep the grid exact: compute each target from the horizon
		// rather than accumulating increments.
		target := p.Days * float64(i) / float64(points-1)

		var err error
		x, t, dt, err = s.advance(sys, x, t, target, dt, p)
		if err != nil {
			return nil, err
		}

		if !x.IsValid() {
			return nil, epi.NewNumericalError(t, "integration produced NaN/Inf", epi.ErrNumericalInstability)
		}

		record(tr, i, target, x)
	}

	clampNonNegative(tr)

	if err := checkConservation(tr, p.Population); err != nil {
		return nil, err
	}

	return tr, nil
}

// advance integrates from t to target using adaptive substeps when the
// integrator supports them.
func (s *Solver) advance(sys epi.System, x epi.State, t, target, dt float64, p epi.Params) (epi.State, float64, float64, error) {
	adaptive, ok := s.integ.(epi.AdaptiveIntegrator)

	eps := 1e-12 * math.Max(1, target)
	for t < target-eps {
		h := math.Min(dt, target-t)

		if !ok {
			x = s.integ.Step(sys, x, t, h, p)
			t += h
			continue
		}

		next, errMax, dtNext := adaptive.StepAdaptive(sys, x, t, h, p, s.rtol, s.atol)
		if errMax > 1 {
			// Reject and retry with the shrunk step.
			if h <= minDt {
				return nil, t, dt, epi.NewNumericalError(t,
					fmt.Sprintf("step collapsed below %g without meeting tolerance", minDt),
					epi.ErrStepTooSmall)
			}
			dt = math.Max(dtNext, minDt)
			continue
		}

		x = next
		t += h
		dt = math.Max(dtNext, minDt)

		if !x.IsValid() {
			return nil, t, dt, epi.NewNumericalError(t, "integration produced NaN/Inf", epi.ErrNumericalInstability)
		}
	}

	return x, target, dt, nil
}

func record(tr *epi.Trajectory, i int, t float64, x epi.State) {
	tr.Times[i] = t
	tr.Susceptible[i] = x[epi.S]
	tr.Infected[i] = x[epi.I]
	tr.Removed[i] = x[epi.R]
}

// clampNonNegative floors negative numerical noise to zero.
func clampNonNegative(tr *epi.Trajectory) {
	for _, series := range [][]float64{tr.Susceptible, tr.Infected, tr.Removed} {
		for i, v := range series {
			if v < 0 {
				series[i] = 0
			}
		}
	}
}

func checkConservation(tr *epi.Trajectory, n float64) error {
	tol := ConservationTol * n
	for i := range tr.Times {
		total := tr.Susceptible[i] + tr.Infected[i] + tr.Removed[i]
		if math.Abs(total-n) > tol {
			return epi.NewNumericalError(tr.Times[i],
				fmt.Sprintf("conservation violated: S+I+R=%.6f, N=%.6f", total, n),
				epi.ErrNumericalInstability)
		}
	}
	return nil
}
