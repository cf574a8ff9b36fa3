package workload_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/markbench/crc"
	"github.com/sarchlab/markbench/workload"
)

// iterate drives an instance the way an execution context does.
func iterate(w *workload.Instance, iterations int) workload.Checksums {
	var sums workload.Checksums
	for i := 0; i < iterations; i++ {
		sums.CRC = crc.U16(w.ListPass(1, &sums), sums.CRC)
		sums.CRC = crc.U16(w.ListPass(-1, &sums), sums.CRC)
		if i == 0 {
			sums.List = sums.CRC
		}
	}
	return sums
}

func newInstance(s1, s2, s3 int16, size uint32, execs workload.Mask) *workload.Instance {
	p := workload.Params{
		Seeds: workload.Seeds{Seed1: s1, Seed2: s2, Seed3: s3},
		Execs: execs,
		Size:  size,
	}
	p.Regions[workload.State] = make([]byte, size)
	return workload.New(p)
}

var _ = Describe("Mask", func() {
	It("should count only known kernels", func() {
		Expect(workload.AllAlgorithms.Count()).To(Equal(3))
		Expect(workload.Mask(0x5).Count()).To(Equal(2))
		Expect(workload.Mask(0x8).Count()).To(Equal(0))
	})

	It("should list enabled kernels in layout order", func() {
		Expect(workload.Mask(0x6).Algorithms()).To(Equal(
			[]workload.Algorithm{workload.Matrix, workload.State}))
	})

	It("should name kernels", func() {
		Expect(workload.List.String()).To(Equal("list"))
		Expect(workload.Matrix.String()).To(Equal("matrix"))
		Expect(workload.State.String()).To(Equal("state"))
		Expect(workload.Algorithm(7).String()).To(Equal("unknown"))
	})
})

var _ = Describe("Instance", func() {
	DescribeTable("reference checksums",
		func(s1, s2, s3 int16, size uint32, list, mat, state, final uint16) {
			w := newInstance(s1, s2, s3, size, workload.AllAlgorithms)
			sums := iterate(w, 2)

			Expect(sums.List).To(Equal(list))
			Expect(sums.Matrix).To(Equal(mat))
			Expect(sums.State).To(Equal(state))
			Expect(sums.CRC).To(Equal(final))
		},
		Entry("0/0/0x66 @ 2000", int16(0), int16(0), int16(0x66), uint32(2000),
			uint16(0xd4b0), uint16(0xbe52), uint16(0x5e47), uint16(0xc49b)),
		Entry("0x3415/0x3415/0x66 @ 2000", int16(0x3415), int16(0x3415), int16(0x66), uint32(2000),
			uint16(0x3340), uint16(0x1199), uint16(0x39bf), uint16(0xdf3f)),
		Entry("8/8/8 @ 400", int16(8), int16(8), int16(8), uint32(400),
			uint16(0x6a79), uint16(0x5608), uint16(0xe5a4), uint16(0x8420)),
		Entry("0x3415/0x3415/0x66 @ 666", int16(0x3415), int16(0x3415), int16(0x66), uint32(666),
			uint16(0xe3c1), uint16(0x0747), uint16(0x8d84), uint16(0xfe8c)),
		Entry("0/0/0x66 @ 666", int16(0), int16(0), int16(0x66), uint32(666),
			uint16(0xe714), uint16(0x1fd7), uint16(0x8e3a), uint16(0x72be)),
	)

	It("should not depend on the iteration count for the first-pass checksums", func() {
		one := iterate(newInstance(0, 0, 0x66, 2000, workload.AllAlgorithms), 1)
		five := iterate(newInstance(0, 0, 0x66, 2000, workload.AllAlgorithms), 5)

		Expect(five.List).To(Equal(one.List))
		Expect(five.Matrix).To(Equal(one.Matrix))
		Expect(five.State).To(Equal(one.State))
		Expect(one.CRC).To(Equal(one.List))
	})

	It("should restore the list between passes", func() {
		w := newInstance(0x3415, 0x3415, 0x66, 2000, workload.AllAlgorithms)
		var a, b workload.Checksums
		first := w.ListPass(-1, &a)
		second := w.ListPass(-1, &b)
		Expect(second).To(Equal(first))
	})

	It("should run the state kernel in its region", func() {
		p := workload.Params{
			Seeds: workload.Seeds{Seed3: 0x66},
			Execs: workload.AllAlgorithms,
			Size:  64,
		}
		region := make([]byte, 64)
		p.Regions[workload.State] = region
		workload.New(p)

		Expect(string(region[:5])).To(Equal("5012,"))
		Expect(region[63]).To(Equal(byte(0)))
	})

	It("should do nothing without the list kernel", func() {
		w := newInstance(0, 0, 0x66, 2000, workload.Matrix.Bit()|workload.State.Bit())
		sums := iterate(w, 2)
		Expect(sums).To(Equal(workload.Checksums{}))
	})

	It("should leave disabled kernels untouched", func() {
		w := newInstance(0, 0, 0x66, 2000, workload.List.Bit())
		sums := iterate(w, 1)
		Expect(sums.Matrix).To(BeZero())
		Expect(sums.State).To(BeZero())
		Expect(sums.List).NotTo(BeZero())
	})
})
