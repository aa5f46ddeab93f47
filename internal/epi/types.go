package epi

import "math"

// Compartment indices into a State vector.
const (
	S = iota
	I
	R
	NumCompartments
)

// Model variant kinds.
const (
	KindSIR           = "sir"
	KindMassActionSIR = "sir_mass"
	KindRumor         = "rumor"
	KindRationalRumor = "rumor_rational"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Sum() float64 {
	total := 0.0
	for _, v := range s {
		total += v
	}
	return total
}

// Params is one complete parameter set for a simulation run. The engine
// never mutates it; callers own it and pass it by value.
type Params struct {
	Population      float64 `yaml:"population" json:"population"`
	Beta            float64 `yaml:"beta" json:"beta"`
	Gamma           float64 `yaml:"gamma" json:"gamma"`
	InitialInfected float64 `yaml:"initial_infected" json:"initial_infected"`
	InitialRemoved  float64 `yaml:"initial_removed" json:"initial_removed"`
	Days            float64 `yaml:"days" json:"days"`
	Points          int     `yaml:"points" json:"points"`
}

// InitialState derives (S0, I0, R0) with S0 = N - I0 - R0.
func (p Params) InitialState() State {
	s0 := p.Population - p.InitialInfected - p.InitialRemoved
	return State{s0, p.InitialInfected, p.InitialRemoved}
}

// System is one selectable set of model equations. Implementations are
// stateless: parameters arrive with every call, so a single System value
// is safe to share across concurrent runs.
type System interface {
	Kind() string
	Derive(x State, t float64, p Params) State
}

type Integrator interface {
	Step(sys System, x State, t, dt float64, p Params) State
}

// AdaptiveIntegrator additionally reports a normalized error estimate for
// the step (errMax <= 1 means the step met tolerance) and a suggested next
// step size.
type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(sys System, x State, t, dt float64, p Params, rtol, atol float64) (next State, errMax, dtNext float64)
}

// Trajectory is the sampled solution for one parameter set: equally spaced
// times with t[0]=0 and t[len-1]=Days. Immutable once returned.
type Trajectory struct {
	Times       []float64 `json:"times"`
	Susceptible []float64 `json:"susceptible"`
	Infected    []float64 `json:"infected"`
	Removed     []float64 `json:"removed"`
}

func (tr *Trajectory) Len() int { return len(tr.Times) }

func (tr *Trajectory) At(i int) State {
	return State{tr.Susceptible[i], tr.Infected[i], tr.Removed[i]}
}
