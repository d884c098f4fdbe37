package solver_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/hjbgrid/internal/hjb"
	"github.com/san-kum/hjbgrid/internal/mesh"
	"github.com/san-kum/hjbgrid/internal/ode"
	"github.com/san-kum/hjbgrid/internal/solver"
)

type countingObserver struct {
	steps int
}

func (c *countingObserver) OnStep(t float64, v ode.State) { c.steps++ }

var _ = Describe("backward value solve", func() {
	var (
		model *hjb.Model
		s     *solver.Solver
		cfg   solver.Config
	)

	BeforeEach(func() {
		g, err := mesh.Unit(20)
		Expect(err).NotTo(HaveOccurred())

		model, err = hjb.NewModel(hjb.Params{
			Mu:     -0.1,
			Sigma:  0.1,
			Rho:    0.05,
			Grid:   g,
			Bounds: mesh.ReflectingBarriers(),
		}, func(x, t float64) float64 { return x * math.Exp(-t) })
		Expect(err).NotTo(HaveOccurred())

		s = solver.New(model)
		cfg = solver.DefaultConfig()
	})

	It("produces a solution spanning [0, horizon]", func() {
		res, err := s.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())

		lo, hi := res.Solution.Span()
		Expect(lo).To(Equal(0.0))
		Expect(hi).To(Equal(1.0))
	})

	It("matches the terminal value at the horizon", func() {
		res, err := s.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())

		vT, err := res.Solution.At(1.0)
		Expect(err).NotTo(HaveOccurred())
		Expect(vT).To(HaveLen(20))
		for i := range vT {
			Expect(vT[i]).To(BeNumerically("~", res.Terminal[i], 1e-12))
		}
	})

	It("keeps every sampled state at grid dimension", func() {
		res, err := s.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())

		for _, t := range []float64{0, 0.1, 0.37, 0.5, 0.99, 1} {
			v, err := res.Solution.At(t)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(HaveLen(20))
			Expect(v.IsValid()).To(BeTrue())
		}
	})

	It("yields values monotone in x at t=0 for a payoff increasing in x", func() {
		res, err := s.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())

		v0, err := res.Solution.At(0)
		Expect(err).NotTo(HaveOccurred())
		for i := 1; i < len(v0); i++ {
			Expect(v0[i]).To(BeNumerically(">=", v0[i-1]-1e-9), "component %d", i)
		}
	})

	It("reports integration statistics", func() {
		res, err := s.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Stats.Accepted).To(BeNumerically(">", 0))
		Expect(res.Stats.Evaluations).To(BeNumerically(">", 0))
		Expect(res.Stats.LastStep).To(BeNumerically("<", 0))
	})

	It("notifies observers on every accepted step", func() {
		obs := &countingObserver{}
		s.AddObserver(obs)

		res, err := s.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(obs.steps).To(Equal(res.Stats.Accepted + 1))
	})

	It("propagates cancellation", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := s.Run(ctx, cfg)
		Expect(err).To(MatchError(context.Canceled))
	})

	Describe("configuration validation", func() {
		It("rejects a non-positive horizon", func() {
			cfg.Horizon = 0
			_, err := s.Run(context.Background(), cfg)
			Expect(err).To(HaveOccurred())
		})

		It("rejects a negative tolerance", func() {
			cfg.Tolerance = -1e-8
			_, err := s.Run(context.Background(), cfg)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("singular terminal systems", func() {
		It("surfaces the failure instead of returning garbage", func() {
			g, err := mesh.Unit(10)
			Expect(err).NotTo(HaveOccurred())

			degenerate, err := hjb.NewModel(hjb.Params{
				Rho:    0, // zero discounting with zero drift/diffusion
				Grid:   g,
				Bounds: mesh.ReflectingBarriers(),
			}, func(x, t float64) float64 { return 1 })
			Expect(err).NotTo(HaveOccurred())

			_, err = solver.New(degenerate).Run(context.Background(), solver.DefaultConfig())
			Expect(err).To(MatchError(hjb.ErrSingular))
		})
	})
})
