package models

import "sirlab/internal/epi"

// RumorSIR models rumor diffusion with a plain rationalization term: the
// compartments are ignorant (S), spreaders (I) and rational (R), and
// spreaders go rational at a constant rate γ:
//
//	dS/dt = -βSI/N
//	dI/dt =  βSI/N - γI
//	dR/dt =  γI
type RumorSIR struct{}

func NewRumorSIR() *RumorSIR { return &RumorSIR{} }

func (m *RumorSIR) Kind() string { return epi.KindRumor }

func (m *RumorSIR) Derive(x epi.State, _ float64, p epi.Params) epi.State {
	n := p.Population
	spread := p.Beta * x[epi.S] * x[epi.I] / n
	rationalize := p.Gamma * x[epi.I]

	return epi.State{-spread, spread - rationalize, rationalize}
}

func (m *RumorSIR) ExtraMetrics(tr *epi.Trajectory, _ epi.Params) map[string]float64 {
	return map[string]float64{"duration_days": rumorDuration(tr)}
}

// RationalRumorSIR is the rumor variant with rational dampening: spreaders
// only rationalize through contact with the rational fraction, so the
// removal term scales with R/N:
//
//	dS/dt = -βSI/N
//	dI/dt =  βSI/N - γ·I·R/N
//	dR/dt =  γ·I·R/N
//
// The two rumor forms are genuinely different dynamical systems and are
// exposed as distinct kinds.
type RationalRumorSIR struct{}

func NewRationalRumorSIR() *RationalRumorSIR { return &RationalRumorSIR{} }

func (m *RationalRumorSIR) Kind() string { return epi.KindRationalRumor }

func (m *RationalRumorSIR) Derive(x epi.State, _ float64, p epi.Params) epi.State {
	n := p.Population
	spread := p.Beta * x[epi.S] * x[epi.I] / n
	rationalize := p.Gamma * x[epi.I] * x[epi.R] / n

	return epi.State{-spread, spread - rationalize, rationalize}
}

func (m *RationalRumorSIR) ExtraMetrics(tr *epi.Trajectory, _ epi.Params) map[string]float64 {
	return map[string]float64{"duration_days": rumorDuration(tr)}
}

// rumorDuration is the area under the spreader curve divided by its peak;
// a rough horizon over which the rumor stays active.
func rumorDuration(tr *epi.Trajectory) float64 {
	peak := 0.0
	for _, v := range tr.Infected {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		return 0
	}
	area := 0.0
	for i := 1; i < tr.Len(); i++ {
		area += 0.5 * (tr.Infected[i] + tr.Infected[i-1]) * (tr.Times[i] - tr.Times[i-1])
	}
	return area / peak
}
