package aero

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Table", func() {
	var table *Table

	BeforeEach(func() {
		var err error
		table, err = NewTable([]Sample{
			{Angle: -10, Coefficient: -0.05},
			{Angle: 0, Coefficient: 0.0},
			{Angle: 4, Coefficient: 0.03},
			{Angle: 10, Coefficient: 0.05},
		})
		Expect(err).NotTo(HaveOccurred())
	})

	Context("loading", func() {
		It("rejects an empty row set", func() {
			t := &Table{}
			Expect(t.Load(nil)).To(MatchError(ErrEmptyData))
			Expect(t.Len()).To(Equal(0))
		})

		It("stores rows verbatim without reordering", func() {
			rows := []Sample{{Angle: 5, Coefficient: 1}, {Angle: -5, Coefficient: 2}}
			t, err := NewTable(rows)
			Expect(err).NotTo(HaveOccurred())
			Expect(t.Samples()).To(Equal(rows))
		})

		It("copies the input slice", func() {
			rows := []Sample{{Angle: 0, Coefficient: 1}}
			t, err := NewTable(rows)
			Expect(err).NotTo(HaveOccurred())
			rows[0].Coefficient = 99
			Expect(t.Evaluate(0)).To(Equal(1.0))
		})

		It("reports bounds", func() {
			lo, hi := table.Bounds()
			Expect(lo).To(Equal(-10.0))
			Expect(hi).To(Equal(10.0))
		})
	})

	Context("clamping", func() {
		DescribeTable("below the first sample",
			func(x float64) {
				Expect(table.Evaluate(x)).To(Equal(-0.05))
			},
			Entry("at the boundary", -10.0),
			Entry("just below", -10.0001),
			Entry("far below", -1e6),
		)

		DescribeTable("above the last sample",
			func(x float64) {
				Expect(table.Evaluate(x)).To(Equal(0.05))
			},
			Entry("at the boundary", 10.0),
			Entry("just above", 10.0001),
			Entry("far above", 1e6),
		)
	})

	Context("interpolation", func() {
		It("is exact at every knot", func() {
			for _, s := range table.Samples() {
				Expect(table.Evaluate(s.Angle)).To(Equal(s.Coefficient))
			}
		})

		It("lies on the chord between neighbouring knots", func() {
			s := table.Samples()
			for i := 0; i < len(s)-1; i++ {
				mid := (s[i].Angle + s[i+1].Angle) / 2
				want := (s[i].Coefficient + s[i+1].Coefficient) / 2
				Expect(table.Evaluate(mid)).To(BeNumerically("~", want, 1e-12))
			}
		})

		It("interpolates an arbitrary interior point", func() {
			// between (0, 0) and (4, 0.03)
			Expect(table.Evaluate(1)).To(BeNumerically("~", 0.0075, 1e-12))
		})
	})

	Context("ordering", func() {
		It("accepts ascending and repeated angles", func() {
			t, _ := NewTable([]Sample{{0, 0}, {1, 1}, {1, 2}, {3, 3}})
			Expect(t.CheckOrder()).To(Succeed())
		})

		It("names the first descending pair", func() {
			t, _ := NewTable([]Sample{{0, 0}, {5, 1}, {2, 2}, {1, 3}})
			err := t.CheckOrder()
			var oe *OrderError
			Expect(errors.As(err, &oe)).To(BeTrue())
			Expect(oe.Index).To(Equal(2))
			Expect(oe.Prev).To(Equal(5.0))
			Expect(oe.Next).To(Equal(2.0))
			Expect(err).To(MatchError(ErrUnsorted))
		})

		It("reports a NaN angle even though comparisons with it are false", func() {
			t, _ := NewTable([]Sample{{-10, -0.05}, {math.NaN(), 0}, {10, 0.05}})
			err := t.CheckOrder()
			var oe *OrderError
			Expect(errors.As(err, &oe)).To(BeTrue())
			Expect(oe.Index).To(Equal(1))
			Expect(oe.Prev).To(Equal(-10.0))
			Expect(err).To(MatchError(ErrUnsorted))
			Expect(err.Error()).To(ContainSubstring("non-finite"))
		})

		It("reports an infinite first angle", func() {
			t, _ := NewTable([]Sample{{math.Inf(-1), 0}, {0, 0}})
			var oe *OrderError
			Expect(errors.As(t.CheckOrder(), &oe)).To(BeTrue())
			Expect(oe.Index).To(Equal(0))
		})

		It("falls back to the last coefficient when no bracket exists", func() {
			t, _ := NewTable([]Sample{{0, 0.1}, {10, 0.2}, {5, 0.3}})
			// 7 lies inside [first, last] but no consecutive pair brackets it
			Expect(t.Evaluate(7)).To(Equal(0.3))
		})
	})
})
