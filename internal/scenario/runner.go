package scenario

import (
	"context"

	"sirlab/internal/epi"
	"sirlab/internal/metrics"
	"sirlab/internal/solver"
	"sirlab/internal/validate"
)

// Scenario is one named (model, parameter set) pair, comparable against
// other scenarios.
type Scenario struct {
	Name   string     `yaml:"name" json:"name"`
	Model  string     `yaml:"model" json:"model"`
	Params epi.Params `yaml:"params" json:"params"`
}

// Outcome is the uniform per-scenario result: either a trajectory with its
// metrics record, or the error that stopped it. Failures never leak into
// other scenarios of the same batch.
type Outcome struct {
	Scenario   Scenario
	Trajectory *epi.Trajectory
	Metrics    *metrics.Record
	Err        error
}

// Runner orchestrates Validate -> Solve -> Compute for one or several
// parameter sets.
type Runner struct {
	registry *Registry
	solver   *solver.Solver
	calc     *metrics.Calculator
}

func NewRunner() *Runner {
	return NewRunnerWith(solver.Default())
}

// NewRunnerWith builds a runner around a specific solver, letting callers
// pick a non-default integrator. Fixed-step integrators keep scratch
// buffers, so such a runner must not be shared across goroutines; the
// default RK45 runner may be.
func NewRunnerWith(s *solver.Solver) *Runner {
	return &Runner{
		registry: NewRegistry(),
		solver:   s,
		calc:     metrics.NewCalculator(),
	}
}

func (r *Runner) Registry() *Registry { return r.registry }

// RunOne executes a single scenario end to end.
func (r *Runner) RunOne(ctx context.Context, sc Scenario) Outcome {
	out := Outcome{Scenario: sc}

	sys, err := r.registry.System(sc.Model)
	if err != nil {
		out.Err = err
		return out
	}

	params, err := validate.Validate(sc.Model, sc.Params)
	if err != nil {
		out.Err = err
		return out
	}

	tr, err := r.solver.Solve(ctx, sys, params)
	if err != nil {
		out.Err = err
		return out
	}

	out.Trajectory = tr
	out.Metrics = r.calc.Compute(sys, tr, params)
	return out
}

// Run executes a batch of scenarios, one after another, and reports each
// outcome independently: a failure in one never aborts the rest.
func (r *Runner) Run(ctx context.Context, scenarios []Scenario) []Outcome {
	outcomes := make([]Outcome, len(scenarios))
	for i, sc := range scenarios {
		outcomes[i] = r.RunOne(ctx, sc)
	}
	return outcomes
}
