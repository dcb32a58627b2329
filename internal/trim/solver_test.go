package trim

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type iterationRecorder struct {
	its []Iteration
}

func (r *iterationRecorder) OnIteration(it Iteration) { r.its = append(r.its, it) }

type countMetric struct{ n int }

func (c *countMetric) Name() string        { return "count" }
func (c *countMetric) Observe(_ Iteration) { c.n++ }
func (c *countMetric) Value() float64      { return float64(c.n) }
func (c *countMetric) Reset()              { c.n = 0 }

type notReady struct{}

func (notReady) Moment(_, _ float64) float64 { return 0 }
func (notReady) Ready() error {
	return &PreconditionError{Field: "table", Reason: "is not loaded"}
}

var _ = Describe("Solver", func() {
	var solver *Solver

	BeforeEach(func() {
		solver = New(1e-6, 100)
	})

	Context("on a smooth decreasing moment curve", func() {
		model := MomentFunc(func(alpha, incidence float64) float64 {
			x := alpha + incidence - 3
			return -0.02*x - 0.001*x*x*x
		})

		It("converges within the iteration budget", func() {
			res, err := solver.Solve(model, -2.0, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Converged).To(BeTrue())
			Expect(res.Iterations).To(BeNumerically("<", 100))
			Expect(math.Abs(res.ResidualMoment)).To(BeNumerically("<", 1e-6))
			Expect(res.TailAngleDeg).To(BeNumerically("~", 3.0, 1e-3))
		})

		It("shifts the root with incidence", func() {
			res, err := solver.Solve(model, 0, 1.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Converged).To(BeTrue())
			Expect(res.TailAngleDeg).To(BeNumerically("~", 2.0, 1e-3))
		})

		It("stops immediately when the guess is already trimmed", func() {
			res, err := solver.Solve(model, 3.0, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Converged).To(BeTrue())
			Expect(res.Iterations).To(Equal(0))
			Expect(res.TailAngleDeg).To(Equal(3.0))
		})
	})

	Context("on a moment curve that never crosses zero", func() {
		model := MomentFunc(func(alpha, _ float64) float64 {
			return 1 + alpha*alpha
		})

		It("reports non-convergence after exactly MaxIterations", func() {
			res, err := solver.Solve(model, 0.5, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Converged).To(BeFalse())
			Expect(res.Iterations).To(Equal(100))
			Expect(res.ResidualMoment).To(BeNumerically(">=", 1.0))
		})

		It("nudges across a perfectly flat curve", func() {
			flat := MomentFunc(func(_, _ float64) float64 { return 0.5 })
			solver.MaxIterations = 10
			res, err := solver.Solve(flat, 0, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Converged).To(BeFalse())
			Expect(res.Iterations).To(Equal(10))
			Expect(res.TailAngleDeg).To(BeNumerically("~", 1.0, 1e-9))
			Expect(res.ResidualMoment).To(Equal(0.5))
		})
	})

	Context("with a flat region before the root", func() {
		model := MomentFunc(func(alpha, _ float64) float64 {
			if alpha < 0 {
				return 1
			}
			return 1 - alpha
		})

		It("escapes by nudging then takes Newton steps", func() {
			rec := &iterationRecorder{}
			solver.AddObserver(rec)

			res, err := solver.Solve(model, -0.35, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Converged).To(BeTrue())
			Expect(res.TailAngleDeg).To(BeNumerically("~", 1.0, 1e-6))

			nudged := 0
			for _, it := range rec.its {
				if it.Nudged {
					nudged++
				}
			}
			Expect(nudged).To(Equal(4))
			Expect(rec.its).To(HaveLen(res.Iterations + 1))
		})
	})

	Context("hooks", func() {
		It("observes every iteration and publishes metric values", func() {
			m := &countMetric{}
			rec := &iterationRecorder{}
			solver.AddMetric(m)
			solver.AddObserver(rec)

			model := MomentFunc(func(alpha, _ float64) float64 { return 0.01 * (alpha - 1) })
			res, err := solver.Solve(model, 5, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Converged).To(BeTrue())
			Expect(res.Metrics).To(HaveKeyWithValue("count", float64(res.Iterations+1)))
			Expect(rec.its[0].Alpha).To(Equal(5.0))
			Expect(rec.its[0].Slope).To(BeNumerically("~", 0.01, 1e-9))
		})

		It("resets metrics between solves", func() {
			m := &countMetric{}
			solver.AddMetric(m)
			model := MomentFunc(func(alpha, _ float64) float64 { return 1 + alpha*alpha })
			solver.MaxIterations = 7

			_, _ = solver.Solve(model, 0, 0)
			res, err := solver.Solve(model, 0, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Metrics["count"]).To(Equal(7.0))
		})

		It("drops hooks in a bare copy", func() {
			solver.AddMetric(&countMetric{})
			bare := solver.Bare()
			Expect(bare.Tolerance).To(Equal(solver.Tolerance))
			res, err := bare.Solve(MomentFunc(func(a, _ float64) float64 { return a }), 1, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Metrics).To(BeEmpty())
		})
	})

	Context("preconditions", func() {
		linear := MomentFunc(func(alpha, _ float64) float64 { return alpha })

		DescribeTable("rejects bad inputs before iterating",
			func(mutate func(s *Solver), model Model, guess, incidence float64) {
				mutate(solver)
				res, err := solver.Solve(model, guess, incidence)
				Expect(res).To(BeNil())
				Expect(errors.Is(err, ErrPrecondition)).To(BeTrue())
				var pe *PreconditionError
				Expect(errors.As(err, &pe)).To(BeTrue())
			},
			Entry("nil model", func(*Solver) {}, nil, 0.0, 0.0),
			Entry("unloaded model", func(*Solver) {}, notReady{}, 0.0, 0.0),
			Entry("NaN guess", func(*Solver) {}, linear, math.NaN(), 0.0),
			Entry("infinite guess", func(*Solver) {}, linear, math.Inf(-1), 0.0),
			Entry("NaN incidence", func(*Solver) {}, linear, 0.0, math.NaN()),
			Entry("zero tolerance", func(s *Solver) { s.Tolerance = 0 }, linear, 1.0, 0.0),
			Entry("zero iterations", func(s *Solver) { s.MaxIterations = 0 }, linear, 1.0, 0.0),
			Entry("zero step", func(s *Solver) { s.Step = 0 }, linear, 1.0, 0.0),
		)
	})
})
