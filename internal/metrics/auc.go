package metrics

import "sirlab/internal/epi"

// AreaUnderCurve accumulates the trapezoidal integral of I(t).
type AreaUnderCurve struct {
	name     string
	area     float64
	lastT    float64
	lastI    float64
	observed bool
}

func NewAreaUnderCurve() *AreaUnderCurve {
	return &AreaUnderCurve{name: "area_under_curve"}
}

func (a *AreaUnderCurve) Name() string { return a.name }

func (a *AreaUnderCurve) Observe(t float64, x epi.State) {
	if a.observed {
		a.area += 0.5 * (x[epi.I] + a.lastI) * (t - a.lastT)
	}
	a.lastT = t
	a.lastI = x[epi.I]
	a.observed = true
}

func (a *AreaUnderCurve) Value() float64 { return a.area }

func (a *AreaUnderCurve) Reset() {
	a.area = 0
	a.lastT = 0
	a.lastI = 0
	a.observed = false
}
