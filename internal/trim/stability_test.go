package trim

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func linearModel(k float64) Model {
	return MomentFunc(func(alpha, incidence float64) float64 {
		return -k * (alpha + incidence)
	})
}

var _ = Describe("EvaluateStability", func() {
	DescribeTable("recovers the slope of a linear model",
		func(k float64, stable bool) {
			model := linearModel(k)
			res, err := New(1e-9, 100).Solve(model, 2.0, 0.5)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Converged).To(BeTrue())

			stab, err := EvaluateStability(model, res, 0.5, 1.0)
			Expect(err).NotTo(HaveOccurred())
			Expect(stab.DerivativePerDeg).To(BeNumerically("~", -k, 1e-9))
			Expect(stab.Stable).To(Equal(stable))
		},
		Entry("restoring moment", 0.02, true),
		Entry("steep restoring moment", 1.5, true),
		Entry("divergent moment", -0.02, false),
	)

	It("uses the trim residual as the baseline", func() {
		model := MomentFunc(func(alpha, incidence float64) float64 { return incidence })
		res := &Result{TailAngleDeg: 0, ResidualMoment: 0.25}
		stab, err := EvaluateStability(model, res, 0, 0.5)
		Expect(err).NotTo(HaveOccurred())
		Expect(stab.DerivativePerDeg).To(BeNumerically("~", (0.5-0.25)/0.5, 1e-12))
		Expect(stab.Stable).To(BeFalse())
	})

	It("classifies a neutral derivative as unstable", func() {
		model := MomentFunc(func(_, _ float64) float64 { return 0 })
		stab, err := EvaluateStability(model, &Result{}, 0, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(stab.DerivativePerDeg).To(Equal(0.0))
		Expect(stab.Stable).To(BeFalse())
	})

	DescribeTable("rejects bad inputs",
		func(model Model, res *Result, perturbation float64) {
			_, err := EvaluateStability(model, res, 0, perturbation)
			Expect(errors.Is(err, ErrPrecondition)).To(BeTrue())
		},
		Entry("nil model", nil, &Result{}, 1.0),
		Entry("nil result", linearModel(1), nil, 1.0),
		Entry("zero perturbation", linearModel(1), &Result{}, 0.0),
		Entry("NaN perturbation", linearModel(1), &Result{}, math.NaN()),
	)
})
