package scenario_test

import (
	"context"
	"errors"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"sirlab/internal/epi"
	"sirlab/internal/scenario"
	"sirlab/internal/solver"
	"sirlab/internal/validate"
)

var _ = Describe("Registry", func() {
	var registry *scenario.Registry

	BeforeEach(func() {
		registry = scenario.NewRegistry()
	})

	It("exposes the four model kinds in order", func() {
		Expect(registry.Kinds()).To(Equal([]string{
			epi.KindRumor,
			epi.KindRationalRumor,
			epi.KindSIR,
			epi.KindMassActionSIR,
		}))
	})

	It("resolves each kind to its own system", func() {
		for _, kind := range registry.Kinds() {
			sys, err := registry.System(kind)
			Expect(err).NotTo(HaveOccurred())
			Expect(sys.Kind()).To(Equal(kind))
		}
	})

	It("rejects unknown kinds", func() {
		_, err := registry.System("seir")
		Expect(errors.Is(err, epi.ErrUnknownModel)).To(BeTrue())
	})

	It("exposes the three integrators in order", func() {
		Expect(registry.Integrators()).To(Equal([]string{"euler", "rk4", "rk45"}))
	})

	It("builds a fresh integrator per lookup", func() {
		a, err := registry.Integrator("rk4")
		Expect(err).NotTo(HaveOccurred())
		b, err := registry.Integrator("rk4")
		Expect(err).NotTo(HaveOccurred())
		Expect(a).NotTo(BeIdenticalTo(b))
	})

	It("rejects unknown integrators", func() {
		_, err := registry.Integrator("verlet")
		Expect(err).To(MatchError(ContainSubstring("unknown integrator")))
	})
})

var _ = Describe("Runner", func() {
	var runner *scenario.Runner

	good := scenario.Scenario{
		Name:  "influenza",
		Model: epi.KindSIR,
		Params: epi.Params{
			Population:      10000,
			Beta:            1.4,
			Gamma:           0.4,
			InitialInfected: 1,
			Days:            40,
		},
	}

	bad := scenario.Scenario{
		Name:  "overfull",
		Model: epi.KindSIR,
		Params: epi.Params{
			Population:      10000,
			Beta:            1.4,
			Gamma:           0.4,
			InitialInfected: 20000,
			Days:            40,
		},
	}

	BeforeEach(func() {
		runner = scenario.NewRunner()
	})

	Describe("RunOne", func() {
		It("produces a trajectory and metrics for valid parameters", func() {
			out := runner.RunOne(context.Background(), good)

			Expect(out.Err).NotTo(HaveOccurred())
			Expect(out.Trajectory.Len()).To(Equal(validate.DefaultPoints))
			Expect(out.Metrics.PeakInfected).To(BeNumerically(">", good.Params.InitialInfected))
			Expect(out.Metrics.BasicReproduction).To(BeNumerically("~", 3.5, 1e-9))
		})

		It("captures validation failures in the outcome", func() {
			out := runner.RunOne(context.Background(), bad)

			var verr *validate.ValidationError
			Expect(errors.As(out.Err, &verr)).To(BeTrue())
			Expect(out.Trajectory).To(BeNil())
			Expect(out.Metrics).To(BeNil())
		})

		It("captures unknown models in the outcome", func() {
			sc := good
			sc.Model = "seir"
			out := runner.RunOne(context.Background(), sc)

			Expect(errors.Is(out.Err, epi.ErrUnknownModel)).To(BeTrue())
		})

		It("is safe to share across goroutines", func() {
			// The HTTP server hands one Runner to every request goroutine.
			ref := runner.RunOne(context.Background(), good)
			Expect(ref.Err).NotTo(HaveOccurred())

			var wg sync.WaitGroup
			outcomes := make([]scenario.Outcome, 8*20)
			for g := 0; g < 8; g++ {
				wg.Add(1)
				go func(g int) {
					defer wg.Done()
					for i := 0; i < 20; i++ {
						outcomes[g*20+i] = runner.RunOne(context.Background(), good)
					}
				}(g)
			}
			wg.Wait()

			for _, out := range outcomes {
				Expect(out.Err).NotTo(HaveOccurred())
				Expect(out.Metrics.PeakInfected).To(Equal(ref.Metrics.PeakInfected))
				Expect(out.Metrics.PeakDay).To(Equal(ref.Metrics.PeakDay))
				Expect(out.Metrics.AreaUnderCurve).To(Equal(ref.Metrics.AreaUnderCurve))
				Expect(out.Metrics.AttackRate).To(Equal(ref.Metrics.AttackRate))
			}
		})
	})

	Describe("NewRunnerWith", func() {
		It("runs scenarios through a fixed-step integrator", func() {
			reg := scenario.NewRegistry()
			integ, err := reg.Integrator("rk4")
			Expect(err).NotTo(HaveOccurred())

			rk4Runner := scenario.NewRunnerWith(solver.New(integ, solver.DefaultRTol, solver.DefaultATol))
			out := rk4Runner.RunOne(context.Background(), good)

			Expect(out.Err).NotTo(HaveOccurred())
			ref := runner.RunOne(context.Background(), good)
			Expect(out.Metrics.PeakInfected).To(BeNumerically("~", ref.Metrics.PeakInfected, 1e-2*good.Params.Population))
		})
	})

	Describe("Run", func() {
		It("keeps scenario outcomes independent", func() {
			outcomes := runner.Run(context.Background(), []scenario.Scenario{bad, good})

			Expect(outcomes).To(HaveLen(2))
			Expect(outcomes[0].Err).To(HaveOccurred())
			Expect(outcomes[1].Err).NotTo(HaveOccurred())
			Expect(outcomes[1].Trajectory).NotTo(BeNil())
		})

		It("preserves input order", func() {
			outcomes := runner.Run(context.Background(), []scenario.Scenario{good, bad})

			Expect(outcomes[0].Scenario.Name).To(Equal("influenza"))
			Expect(outcomes[1].Scenario.Name).To(Equal("overfull"))
		})
	})
})
