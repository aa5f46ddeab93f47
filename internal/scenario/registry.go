package scenario

import (
	"fmt"
	"sort"

	"sirlab/internal/epi"
	"sirlab/internal/integrators"
	"sirlab/internal/models"
)

// Registry maps model kinds to their equation sets and integrator names to
// constructors. Systems are stateless, so a single instance per kind is
// shared across runs; integrators may carry scratch buffers, so each
// lookup builds a fresh one.
type Registry struct {
	systems     map[string]epi.System
	integrators map[string]func() epi.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		systems:     make(map[string]epi.System),
		integrators: make(map[string]func() epi.Integrator),
	}

	for _, sys := range []epi.System{
		models.NewClassicSIR(),
		models.NewMassActionSIR(),
		models.NewRumorSIR(),
		models.NewRationalRumorSIR(),
	} {
		r.systems[sys.Kind()] = sys
	}

	r.integrators["euler"] = func() epi.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() epi.Integrator { return integrators.NewRK4() }
	r.integrators["rk45"] = func() epi.Integrator { return integrators.NewRK45() }

	return r
}

func (r *Registry) System(kind string) (epi.System, error) {
	sys, ok := r.systems[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", epi.ErrUnknownModel, kind)
	}
	return sys, nil
}

func (r *Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.systems))
	for kind := range r.systems {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

func (r *Registry) Integrator(name string) (epi.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) Integrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
