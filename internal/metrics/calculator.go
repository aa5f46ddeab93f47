package metrics

import "sirlab/internal/epi"

// Record is the derived scalar summary of one solved trajectory.
// Immutable once computed.
type Record struct {
	PeakInfected      float64            `json:"peak_infected"`
	PeakDay           float64            `json:"peak_day"`
	AreaUnderCurve    float64            `json:"area_under_curve"`
	BasicReproduction float64            `json:"basic_reproduction"`
	AttackRate        float64            `json:"attack_rate"`
	Extras            map[string]float64 `json:"extras,omitempty"`
}

// ExtraMetrics is an optional capability of model variants: each variant
// may contribute extra named scalar fields to the record.
type ExtraMetrics interface {
	ExtraMetrics(tr *epi.Trajectory, p epi.Params) map[string]float64
}

// Calculator derives a Record from a Trajectory and its originating
// parameter set by replaying samples through streaming metrics. It holds
// no state of its own, so one Calculator is safe to share across
// concurrent runs.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Compute summarizes tr. The sys argument may be nil; when it implements
// ExtraMetrics its variant-specific fields are included.
func (c *Calculator) Compute(sys epi.System, tr *epi.Trajectory, p epi.Params) *Record {
	peak := NewPeak()
	auc := NewAreaUnderCurve()

	for i := 0; i < tr.Len(); i++ {
		x := tr.At(i)
		peak.Observe(tr.Times[i], x)
		auc.Observe(tr.Times[i], x)
	}

	rec := &Record{
		PeakInfected:      peak.Value(),
		PeakDay:           peak.Time(),
		AreaUnderCurve:    auc.Value(),
		BasicReproduction: BasicReproduction(p.Beta, p.Gamma),
		AttackRate:        attackRate(tr, p),
	}

	if em, ok := sys.(ExtraMetrics); ok {
		rec.Extras = em.ExtraMetrics(tr, p)
	}

	return rec
}

// BasicReproduction is β/γ. γ=0 yields the sentinel 0 rather than an
// error so degenerate display cases stay renderable.
func BasicReproduction(beta, gamma float64) float64 {
	if gamma <= 0 {
		return 0
	}
	return beta / gamma
}

// attackRate is the fraction of the population ever infected over the
// horizon: (I0 + R(t_max)) / N, clamped into [0, 1].
func attackRate(tr *epi.Trajectory, p epi.Params) float64 {
	if p.Population <= 0 || tr.Len() == 0 {
		return 0
	}
	rate := (p.InitialInfected + tr.Removed[tr.Len()-1]) / p.Population
	if rate < 0 {
		return 0
	}
	if rate > 1 {
		return 1
	}
	return rate
}
