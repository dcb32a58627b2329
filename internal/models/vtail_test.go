package models

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/vtrim/internal/aero"
	"github.com/san-kum/vtrim/internal/config"
	"github.com/san-kum/vtrim/internal/trim"
)

func mustTable(rows ...aero.Sample) *aero.Table {
	t, err := aero.NewTable(rows)
	Expect(err).NotTo(HaveOccurred())
	return t
}

// tail AC moment falling gently with angle, spanning the solver's range
func xbLikeTable() *aero.Table {
	rows := make([]aero.Sample, 0, 41)
	for a := -20.0; a <= 20.0; a++ {
		rows = append(rows, aero.Sample{Angle: a, Coefficient: -0.01 - 0.001*a})
	}
	return mustTable(rows...)
}

var _ = Describe("VTail", func() {
	Context("term composition", func() {
		It("matches the closed-form equation term by term", func() {
			ac := config.DefaultAircraft()
			table := xbLikeTable()
			v := NewVTail(ac, table)

			alpha, inc := 2.0, 1.0
			deg := alpha + inc
			rad := deg * math.Pi / 180
			cmAC := -0.01 - 0.001*deg
			lift := 0.0781 * deg
			drag := 0.0046 + 0.1050*lift*lift
			termAC := cmAC * 0.352
			termLong := (lift*math.Cos(rad)*0.93606 + drag*math.Sin(rad)) * 0.355
			termVert := (lift*math.Sin(rad)*0.93606 - drag*math.Cos(rad)) * 0.0266
			want := -0.17413 + (termAC - termLong + termVert) + -0.0012

			b := v.Terms(alpha, inc)
			Expect(b.TotalAngleDeg).To(Equal(3.0))
			Expect(b.CmACTail).To(BeNumerically("~", cmAC, 1e-15))
			Expect(b.LiftProxy).To(BeNumerically("~", lift, 1e-15))
			Expect(b.DragPolar).To(BeNumerically("~", drag, 1e-15))
			Expect(b.Longitudinal).To(BeNumerically("~", termLong, 1e-15))
			Expect(b.Vertical).To(BeNumerically("~", termVert, 1e-15))
			Expect(b.Total).To(BeNumerically("~", want, 1e-14))
			Expect(v.Moment(alpha, inc)).To(Equal(b.Total))
		})

		It("depends only on the sum of tail angle and incidence", func() {
			v := NewVTail(config.DefaultAircraft(), xbLikeTable())
			Expect(v.Moment(3, 1)).To(BeNumerically("~", v.Moment(1, 3), 1e-15))
			Expect(v.Moment(-4, 0)).To(BeNumerically("~", v.Moment(0, -4), 1e-15))
		})

		It("adds wing and propulsion as constant offsets", func() {
			table := xbLikeTable()
			base := config.DefaultAircraft()
			shifted := base
			shifted.CmWing += 0.05
			shifted.CmProp -= 0.01

			a, b := NewVTail(base, table), NewVTail(shifted, table)
			for _, alpha := range []float64{-8, -1, 0, 2.5, 7} {
				Expect(b.Moment(alpha, 0) - a.Moment(alpha, 0)).To(BeNumerically("~", 0.04, 1e-12))
			}
		})

		It("reduces to the drag term alone at zero angle", func() {
			v := NewVTail(config.DefaultAircraft(), mustTable(aero.Sample{Angle: 0, Coefficient: 0}))
			b := v.Terms(0, 0)
			Expect(b.LiftProxy).To(Equal(0.0))
			Expect(b.Longitudinal).To(Equal(0.0))
			Expect(b.Vertical).To(BeNumerically("~", -0.0046*0.0266, 1e-15))
		})
	})

	Context("readiness", func() {
		It("fails fast without a table", func() {
			err := NewVTail(config.DefaultAircraft(), nil).Ready()
			Expect(errors.Is(err, trim.ErrPrecondition)).To(BeTrue())
		})

		It("rejects a nil model passed through the interface", func() {
			var v *VTail
			var m trim.Model = v
			Expect(func() {
				_, err := trim.New(1e-6, 100).Solve(m, 0, 0)
				Expect(errors.Is(err, trim.ErrPrecondition)).To(BeTrue())
			}).NotTo(Panic())
		})

		It("stops the solver before the loop", func() {
			_, err := trim.New(1e-6, 100).Solve(NewVTail(config.DefaultAircraft(), &aero.Table{}), -2, 0)
			Expect(errors.Is(err, trim.ErrPrecondition)).To(BeTrue())
		})
	})

	Context("end to end", func() {
		It("trims a degenerate configuration at zero", func() {
			table := mustTable(
				aero.Sample{Angle: -10, Coefficient: -0.05},
				aero.Sample{Angle: 0, Coefficient: 0.0},
				aero.Sample{Angle: 10, Coefficient: 0.05},
			)
			// everything but the tail AC term switched off: f(alpha) = alpha/200
			ac := config.AircraftConfig{SinDihedral: 1}
			v := NewVTail(ac, table)
			Expect(v.Moment(5, 0)).To(BeNumerically("~", 0.025, 1e-15))

			res, err := trim.New(1e-6, 100).Solve(v, 5.0, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Converged).To(BeTrue())
			Expect(res.Iterations).To(BeNumerically("<=", 5))
			Expect(res.TailAngleDeg).To(BeNumerically("~", 0.0, 1e-4))
			Expect(math.Abs(res.ResidualMoment)).To(BeNumerically("<", 1e-6))

			stab, err := trim.EvaluateStability(v, res, 0, 1.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(stab.DerivativePerDeg).To(BeNumerically("~", 0.005, 1e-9))
			Expect(stab.Stable).To(BeFalse())
		})

		It("trims the XB configuration and finds it stable", func() {
			cfg := config.DefaultConfig()
			v := NewVTail(cfg.Aircraft, xbLikeTable())

			solver := trim.New(cfg.Solver.Tolerance, cfg.Solver.MaxIterations)
			res, err := solver.Solve(v, cfg.Solver.InitialGuess, cfg.Solver.Incidence)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Converged).To(BeTrue())
			Expect(math.Abs(res.ResidualMoment)).To(BeNumerically("<", 1e-6))
			Expect(res.TailAngleDeg).To(BeNumerically("<", -4))
			Expect(res.TailAngleDeg).To(BeNumerically(">", -12))

			stab, err := trim.EvaluateStability(v, res, cfg.Solver.Incidence, cfg.Solver.Perturbation)
			Expect(err).NotTo(HaveOccurred())
			Expect(stab.Stable).To(BeTrue())
			Expect(stab.DerivativePerDeg).To(BeNumerically("<", -0.01))
		})

		It("is safe to evaluate concurrently", func() {
			v := NewVTail(config.DefaultAircraft(), xbLikeTable())
			want := v.Moment(1.5, 0.5)

			done := make(chan float64, 8)
			for i := 0; i < 8; i++ {
				go func() {
					defer GinkgoRecover()
					done <- v.Moment(1.5, 0.5)
				}()
			}
			for i := 0; i < 8; i++ {
				Expect(<-done).To(Equal(want))
			}
		})
	})
})
