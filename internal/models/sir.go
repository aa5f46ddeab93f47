package models

import "sirlab/internal/epi"

// ClassicSIR is the frequency-dependent SIR model:
//
//	dS/dt = -βSI/N
//	dI/dt =  βSI/N - γI
//	dR/dt =  γI
//
// β is the transmission rate and γ the recovery rate. Used for disease
// spread and app-adoption style diffusion.
type ClassicSIR struct{}

func NewClassicSIR() *ClassicSIR { return &ClassicSIR{} }

func (m *ClassicSIR) Kind() string { return epi.KindSIR }

func (m *ClassicSIR) Derive(x epi.State, _ float64, p epi.Params) epi.State {
	n := p.Population
	// Intermediate states probed by the integrator may drift slightly out
	// of range; clamp S and I into [0, N] before evaluating the flows.
	s := clamp(x[epi.S], 0, n)
	i := clamp(x[epi.I], 0, n)

	infection := p.Beta * s * i / n
	recovery := p.Gamma * i

	return epi.State{-infection, infection - recovery, recovery}
}

func (m *ClassicSIR) ExtraMetrics(tr *epi.Trajectory, p epi.Params) map[string]float64 {
	extras := map[string]float64{
		"infectious_days": infectiousDays(p.Gamma),
	}
	if v, ok := valueAtDay(tr, 6); ok {
		extras["infected_day6"] = v
	}
	return extras
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func infectiousDays(gamma float64) float64 {
	if gamma == 0 {
		return 0
	}
	return 1 / gamma
}

// valueAtDay returns I at the sample closest to the given day, false when
// the horizon ends before it.
func valueAtDay(tr *epi.Trajectory, day float64) (float64, bool) {
	if tr.Len() == 0 || tr.Times[tr.Len()-1] < day {
		return 0, false
	}
	best := 0
	for i := 1; i < tr.Len(); i++ {
		if abs(tr.Times[i]-day) < abs(tr.Times[best]-day) {
			best = i
		}
	}
	return tr.Infected[best], true
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
