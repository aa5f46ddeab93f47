package integrators

import (
	"testing"

	"sirlab/internal/epi"
)

type benchSystem struct{}

func (b *benchSystem) Kind() string { return "bench" }

func (b *benchSystem) Derive(x epi.State, t float64, p epi.Params) epi.State {
	n := p.Population
	infection := p.Beta * x[epi.S] * x[epi.I] / n
	recovery := p.Gamma * x[epi.I]
	return epi.State{-infection, infection - recovery, recovery}
}

var benchParams = epi.Params{Population: 10000, Beta: 1.0, Gamma: 0.25}

func BenchmarkEuler(b *testing.B) {
	integ := NewEuler()
	sys := &benchSystem{}
	x := epi.State{9990, 10, 0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integ.Step(sys, x, 0, 0.01, benchParams)
	}
}

func BenchmarkRK4(b *testing.B) {
	integ := NewRK4()
	sys := &benchSystem{}
	x := epi.State{9990, 10, 0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integ.Step(sys, x, 0, 0.01, benchParams)
	}
}

func BenchmarkRK45(b *testing.B) {
	integ := NewRK45()
	sys := &benchSystem{}
	x := epi.State{9990, 10, 0}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x = integ.Step(sys, x, 0, 0.01, benchParams)
	}
}
