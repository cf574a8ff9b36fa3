package memory_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/markbench/memory"
)

var _ = Describe("Allocator", func() {
	DescribeTable("creates the requested strategy",
		func(m memory.Method, location string) {
			a, err := memory.NewAllocator(m, 64)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.Method()).To(Equal(m))
			Expect(m.Valid()).To(BeTrue())
			Expect(m.Location()).To(Equal(location))
		},
		Entry("static", memory.MethodStatic, "Static"),
		Entry("heap", memory.MethodHeap, "Heap"),
		Entry("stack", memory.MethodStack, "Stack"),
	)

	It("should reject unknown strategies", func() {
		_, err := memory.NewAllocator("pool", 0)
		Expect(err).To(MatchError(ContainSubstring("unknown memory method")))
		Expect(memory.Method("pool").Valid()).To(BeFalse())
	})

	It("should serve a single context from the static arena", func() {
		a := memory.NewStaticAllocator(100)

		blocks, err := a.Acquire(1, 80)
		Expect(err).NotTo(HaveOccurred())
		Expect(blocks).To(HaveLen(1))
		Expect(blocks[0]).To(HaveLen(80))

		blocks[0][0] = 0xff
		blocks, err = a.Acquire(1, 80)
		Expect(err).NotTo(HaveOccurred())
		Expect(blocks[0][0]).To(BeZero())

		_, err = a.Acquire(2, 10)
		Expect(err).To(HaveOccurred())
		_, err = a.Acquire(1, 101)
		Expect(err).To(HaveOccurred())
	})

	It("should give every heap context its own block", func() {
		a := &memory.HeapAllocator{}
		blocks, err := a.Acquire(3, 16)
		Expect(err).NotTo(HaveOccurred())
		Expect(blocks).To(HaveLen(3))

		blocks[0][15] = 1
		Expect(blocks[1][15]).To(BeZero())
		a.Release()
	})

	It("should carve stack blocks back to back without overlap", func() {
		a := &memory.StackAllocator{}
		blocks, err := a.Acquire(4, 8)
		Expect(err).NotTo(HaveOccurred())
		Expect(blocks).To(HaveLen(4))

		for i, b := range blocks {
			Expect(b).To(HaveLen(8))
			Expect(cap(b)).To(Equal(8))
			b[7] = byte(i + 1)
		}
		for i, b := range blocks {
			Expect(b[7]).To(Equal(byte(i + 1)))
			Expect(b[0]).To(BeZero())
		}
	})

	It("should refuse zero contexts", func() {
		_, err := (&memory.HeapAllocator{}).Acquire(0, 8)
		Expect(err).To(HaveOccurred())
		_, err = (&memory.StackAllocator{}).Acquire(0, 8)
		Expect(err).To(HaveOccurred())
	})
})
