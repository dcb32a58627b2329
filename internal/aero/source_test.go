package aero

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ReadRows", func() {
	It("reads one pair per line", func() {
		rows, err := ReadRows(strings.NewReader("-2 -0.01\n0 0\n2 0.01\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(Equal([]Sample{{-2, -0.01}, {0, 0}, {2, 0.01}}))
	})

	It("accepts a free whitespace token stream", func() {
		rows, err := ReadRows(strings.NewReader("  -2\t-0.01 0\n\n0   2 0.01"))
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(3))
		Expect(rows[2]).To(Equal(Sample{Angle: 2, Coefficient: 0.01}))
	})

	It("stops at the first non-numeric token", func() {
		rows, err := ReadRows(strings.NewReader("1 0.1\n2 0.2\nalpha cm\n3 0.3\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(2))
	})

	DescribeTable("stops at non-finite and hex values",
		func(input string, want int) {
			rows, err := ReadRows(strings.NewReader(input))
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(want))
			for _, r := range rows {
				Expect(math.IsNaN(r.Angle) || math.IsInf(r.Angle, 0)).To(BeFalse())
			}
		},
		Entry("nan angle", "-10 -0.05\nnan 0\n10 0.05\n", 1),
		Entry("NaN coefficient", "-10 -0.05\n0 NaN\n10 0.05\n", 1),
		Entry("inf", "-10 -0.05\n0 0\ninf 0.05\n", 2),
		Entry("-Infinity", "-Infinity 0\n0 0\n", 0),
		Entry("overflow", "-10 -0.05\n1e999 0\n", 1),
		Entry("hex float", "-10 -0.05\n0x1p-2 0\n", 1),
	)

	It("interpolates correctly on the rows read before a nan", func() {
		rows, err := ReadRows(strings.NewReader("-10 -0.05\n10 0.05\nnan 0\n"))
		Expect(err).NotTo(HaveOccurred())
		t, err := NewTable(rows)
		Expect(err).NotTo(HaveOccurred())
		Expect(t.CheckOrder()).To(Succeed())
		Expect(t.Evaluate(5)).To(BeNumerically("~", 0.025, 1e-12))
	})

	It("drops a dangling value", func() {
		rows, err := ReadRows(strings.NewReader("1 0.1 2"))
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(Equal([]Sample{{1, 0.1}}))
	})

	It("returns no rows for an empty stream", func() {
		rows, err := ReadRows(strings.NewReader(""))
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(BeEmpty())
	})
})

var _ = Describe("LoadFile", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("loads a table from disk", func() {
		path := filepath.Join(dir, "datat.txt")
		Expect(os.WriteFile(path, []byte("-10 -0.05\n0 0\n10 0.05\n"), 0644)).To(Succeed())

		t, err := LoadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(t.Len()).To(Equal(3))
		Expect(t.Evaluate(5)).To(BeNumerically("~", 0.025, 1e-12))
	})

	It("reports a missing file as unavailable data", func() {
		path := filepath.Join(dir, "missing.txt")
		_, err := LoadFile(path)
		Expect(errors.Is(err, ErrDataUnavailable)).To(BeTrue())
		Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("missing.txt"))
	})

	It("reports an empty file as empty data", func() {
		path := filepath.Join(dir, "empty.txt")
		Expect(os.WriteFile(path, nil, 0644)).To(Succeed())
		_, err := LoadFile(path)
		Expect(err).To(MatchError(ErrEmptyData))
	})
})
