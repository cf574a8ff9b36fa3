package harness_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/markbench/harness"
)

var _ = Describe("Calibrator", func() {
	It("should grow by tens until a pass reaches the target", func() {
		var passes []uint32
		c := &harness.Calibrator{
			Measure: func(n uint32) time.Duration {
				passes = append(passes, n)
				secs := 0.3 * math.Log10(float64(n))
				return time.Duration(secs * float64(time.Second))
			},
		}

		Expect(c.Calibrate()).To(Equal(uint32(110000)))
		Expect(passes).To(Equal([]uint32{10, 100, 1000, 10000}))
	})

	It("should divide by the whole seconds of the last pass", func() {
		c := &harness.Calibrator{
			Measure: func(n uint32) time.Duration {
				return time.Duration(n) * 50 * time.Millisecond
			},
		}

		// 100 iterations take 5s: 100 * (1 + 10/5).
		Expect(c.Calibrate()).To(Equal(uint32(300)))
	})

	It("should honor a custom target", func() {
		c := &harness.Calibrator{
			Target: 10 * time.Millisecond,
			Measure: func(n uint32) time.Duration {
				return time.Duration(n) * 100 * time.Microsecond
			},
		}

		Expect(c.Calibrate()).To(Equal(uint32(1100)))
	})

	It("should stop at the iteration limit", func() {
		c := &harness.Calibrator{
			Measure: func(uint32) time.Duration { return 0 },
		}

		Expect(c.Calibrate()).To(Equal(uint32(1_000_000_000)))
	})

	DescribeTable("Scale",
		func(iterations uint32, seconds float64, want uint32) {
			Expect(harness.Scale(iterations, seconds)).To(Equal(want))
		},
		Entry("under one second counts as one", uint32(1000), 0.4, uint32(11000)),
		Entry("one second", uint32(1000), 1.9, uint32(11000)),
		Entry("two seconds", uint32(1000), 2.5, uint32(6000)),
		Entry("three seconds", uint32(1000), 3.0, uint32(4000)),
		Entry("eleven seconds", uint32(1000), 11.0, uint32(1000)),
	)
})
