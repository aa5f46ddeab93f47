package metrics

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"sirlab/internal/epi"
)

func TestPeakFirstOccurrence(t *testing.T) {
	p := NewPeak()

	// Two equal maxima: the first one wins.
	p.Observe(0, epi.State{90, 10, 0})
	p.Observe(1, epi.State{50, 50, 0})
	p.Observe(2, epi.State{30, 50, 20})
	p.Observe(3, epi.State{20, 40, 40})

	if p.Value() != 50 {
		t.Errorf("expected peak 50, got %f", p.Value())
	}
	if p.Time() != 1 {
		t.Errorf("expected peak at t=1, got %f", p.Time())
	}
}

func TestPeakMonotoneDecline(t *testing.T) {
	p := NewPeak()

	p.Observe(0, epi.State{0, 100, 0})
	p.Observe(1, epi.State{0, 60, 40})
	p.Observe(2, epi.State{0, 30, 70})

	if p.Value() != 100 || p.Time() != 0 {
		t.Errorf("expected peak 100 at t=0, got %f at %f", p.Value(), p.Time())
	}
}

func TestPeakReset(t *testing.T) {
	p := NewPeak()
	p.Observe(3, epi.State{0, 80, 0})
	p.Reset()
	p.Observe(0, epi.State{0, 5, 0})

	if p.Value() != 5 || p.Time() != 0 {
		t.Errorf("expected fresh peak after reset, got %f at %f", p.Value(), p.Time())
	}
}

func TestAreaUnderCurveTriangle(t *testing.T) {
	a := NewAreaUnderCurve()

	// Triangle 0 -> 100 -> 0 over 10 days: area 500.
	a.Observe(0, epi.State{0, 0, 0})
	a.Observe(5, epi.State{0, 100, 0})
	a.Observe(10, epi.State{0, 0, 0})

	if math.Abs(a.Value()-500) > 1e-10 {
		t.Errorf("expected area 500, got %f", a.Value())
	}
}

func TestAreaUnderCurveUnevenSpacing(t *testing.T) {
	a := NewAreaUnderCurve()

	a.Observe(0, epi.State{0, 10, 0})
	a.Observe(1, epi.State{0, 20, 0})
	a.Observe(4, epi.State{0, 0, 0})

	// 0.5*(10+20)*1 + 0.5*(20+0)*3 = 45
	if math.Abs(a.Value()-45) > 1e-10 {
		t.Errorf("expected area 45, got %f", a.Value())
	}
}

func TestBasicReproduction(t *testing.T) {
	if r := BasicReproduction(1.0, 0.25); math.Abs(r-4) > 1e-10 {
		t.Errorf("expected R0 = 4, got %f", r)
	}
	if r := BasicReproduction(0.5, 0); r != 0 {
		t.Errorf("expected sentinel 0 at gamma 0, got %f", r)
	}
}

func TestComputeRecord(t *testing.T) {
	tr := &epi.Trajectory{
		Times:       []float64{0, 5, 10},
		Susceptible: []float64{990, 850, 800},
		Infected:    []float64{10, 100, 20},
		Removed:     []float64{0, 50, 180},
	}
	p := epi.Params{Population: 1000, Beta: 1.0, Gamma: 0.25, InitialInfected: 10}

	rec := NewCalculator().Compute(nil, tr, p)

	if rec.PeakInfected != 100 {
		t.Errorf("expected peak 100, got %f", rec.PeakInfected)
	}
	if rec.PeakDay != 5 {
		t.Errorf("expected peak day 5, got %f", rec.PeakDay)
	}
	if math.Abs(rec.BasicReproduction-4) > 1e-10 {
		t.Errorf("expected R0 = 4, got %f", rec.BasicReproduction)
	}
	// (I0 + R(end)) / N = (10+180)/1000
	if math.Abs(rec.AttackRate-0.19) > 1e-10 {
		t.Errorf("expected attack rate 0.19, got %f", rec.AttackRate)
	}
	if rec.Extras != nil {
		t.Error("expected no extras without a model")
	}
}

type extrasSystem struct{}

func (e *extrasSystem) Kind() string { return "extras" }

func (e *extrasSystem) Derive(x epi.State, t float64, p epi.Params) epi.State {
	return epi.State{0, 0, 0}
}

func (e *extrasSystem) ExtraMetrics(tr *epi.Trajectory, p epi.Params) map[string]float64 {
	return map[string]float64{"custom": 42}
}

func TestComputeIncludesExtras(t *testing.T) {
	tr := &epi.Trajectory{
		Times:       []float64{0, 1},
		Susceptible: []float64{99, 98},
		Infected:    []float64{1, 2},
		Removed:     []float64{0, 0},
	}
	p := epi.Params{Population: 100, Beta: 0.5, Gamma: 0.1, InitialInfected: 1}

	rec := NewCalculator().Compute(&extrasSystem{}, tr, p)

	if rec.Extras["custom"] != 42 {
		t.Errorf("expected custom extra 42, got %f", rec.Extras["custom"])
	}
}

func TestComputeConcurrent(t *testing.T) {
	tr := &epi.Trajectory{
		Times:       []float64{0, 5, 10},
		Susceptible: []float64{990, 850, 800},
		Infected:    []float64{10, 100, 20},
		Removed:     []float64{0, 50, 180},
	}
	p := epi.Params{Population: 1000, Beta: 1.0, Gamma: 0.25, InitialInfected: 10}

	calc := NewCalculator()
	want := calc.Compute(nil, tr, p)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				rec := calc.Compute(nil, tr, p)
				if rec.PeakInfected != want.PeakInfected || rec.PeakDay != want.PeakDay ||
					rec.AreaUnderCurve != want.AreaUnderCurve || rec.AttackRate != want.AttackRate {
					errs <- fmt.Errorf("record diverged under concurrency: %+v vs %+v", rec, want)
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	if err := <-errs; err != nil {
		t.Fatal(err)
	}
}

func TestAttackRateClamped(t *testing.T) {
	tr := &epi.Trajectory{
		Times:       []float64{0, 1},
		Susceptible: []float64{0, 0},
		Infected:    []float64{50, 0},
		Removed:     []float64{60, 110},
	}
	p := epi.Params{Population: 100, Beta: 0.5, Gamma: 0.1, InitialInfected: 50}

	rec := NewCalculator().Compute(nil, tr, p)

	if rec.AttackRate != 1 {
		t.Errorf("expected attack rate clamped to 1, got %f", rec.AttackRate)
	}
}
