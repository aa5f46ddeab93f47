package models

import "sirlab/internal/epi"

// MassActionSIR is the SIR variant with an absolute (mass-action) contact
// term, suited to small mixed populations such as fashion or gadget
// adoption on a campus:
//
//	dS/dt = -βSI
//	dI/dt =  βSI - γI
//	dR/dt =  γI
//
// Note β here is a per-pair rate, orders of magnitude smaller than the
// frequency-dependent β of the classic model.
type MassActionSIR struct{}

func NewMassActionSIR() *MassActionSIR { return &MassActionSIR{} }

func (m *MassActionSIR) Kind() string { return epi.KindMassActionSIR }

func (m *MassActionSIR) Derive(x epi.State, _ float64, p epi.Params) epi.State {
	infection := p.Beta * x[epi.S] * x[epi.I]
	recovery := p.Gamma * x[epi.I]

	return epi.State{-infection, infection - recovery, recovery}
}

func (m *MassActionSIR) ExtraMetrics(_ *epi.Trajectory, p epi.Params) map[string]float64 {
	extras := map[string]float64{
		"infectious_days": infectiousDays(p.Gamma),
	}
	// The per-pair β makes β/γ meaningless on its own; scale by N for the
	// whole-population reproduction number.
	if p.Gamma > 0 {
		extras["scaled_reproduction"] = p.Beta * p.Population / p.Gamma
	}
	return extras
}
