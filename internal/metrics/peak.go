package metrics

import "sirlab/internal/epi"

// Metric observes trajectory samples one at a time and reduces them to a
// single value.
type Metric interface {
	Name() string
	Observe(t float64, x epi.State)
	Value() float64
	Reset()
}

// Peak tracks the maximum of the infected series. Ties keep the first
// occurrence (argmax semantics).
type Peak struct {
	name    string
	value   float64
	time    float64
	samples int
}

func NewPeak() *Peak {
	return &Peak{name: "peak"}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(t float64, x epi.State) {
	if p.samples == 0 || x[epi.I] > p.value {
		p.value = x[epi.I]
		p.time = t
	}
	p.samples++
}

func (p *Peak) Value() float64 { return p.value }

// Time reports when the peak occurred.
func (p *Peak) Time() float64 { return p.time }

func (p *Peak) Reset() {
	p.value = 0
	p.time = 0
	p.samples = 0
}
