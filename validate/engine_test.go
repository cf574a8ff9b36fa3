package validate_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/markbench/core"
	"github.com/sarchlab/markbench/validate"
	"github.com/sarchlab/markbench/workload"
)

func result(seeds workload.Seeds, size uint32, execs workload.Mask, list, mat, state uint16) *core.Result {
	return &core.Result{
		Params: workload.Params{
			Seeds: seeds,
			Execs: execs,
			Size:  size,
		},
		CRCList:   list,
		CRCMatrix: mat,
		CRCState:  state,
	}
}

var _ = Describe("Engine", func() {
	var (
		engine *validate.Engine
		seeds  workload.Seeds
	)

	BeforeEach(func() {
		engine = validate.NewEngine(validate.DefaultProfiles())
		seeds = workload.Seeds{Seed1: 0x3415, Seed2: 0x3415, Seed3: 0x66}
	})

	It("should pass matching contexts", func() {
		results := []*core.Result{
			result(seeds, 666, workload.AllAlgorithms, 0xe3c1, 0x0747, 0x8d84),
			result(seeds, 666, workload.AllAlgorithms, 0xe3c1, 0x0747, 0x8d84),
		}

		r := engine.Validate(results)

		Expect(r.Indeterminate()).To(BeFalse())
		Expect(r.KnownID()).To(Equal(4))
		Expect(r.TotalErrors).To(BeZero())
		Expect(r.Mismatches).To(BeEmpty())
	})

	It("should count every mismatch on its context", func() {
		results := []*core.Result{
			result(seeds, 666, workload.AllAlgorithms, 0xe3c1, 0x0747, 0x8d84),
			result(seeds, 666, workload.AllAlgorithms, 0x0000, 0x0747, 0x1111),
		}

		r := engine.Validate(results)

		Expect(r.TotalErrors).To(Equal(2))
		Expect(results[0].Errors).To(BeZero())
		Expect(results[1].Errors).To(Equal(2))
		Expect(r.Mismatches).To(ConsistOf(
			validate.Mismatch{Context: 1, Algorithm: workload.List, Kernel: "list",
				Actual: 0x0000, Expected: 0xe3c1},
			validate.Mismatch{Context: 1, Algorithm: workload.State, Kernel: "state",
				Actual: 0x1111, Expected: 0x8d84},
		))
		Expect(r.Mismatches[0].String()).To(Equal("[1]ERROR! list crc 0x0000 - should be 0xe3c1"))
	})

	It("should only compare enabled kernels", func() {
		results := []*core.Result{
			result(seeds, 666, workload.Matrix.Bit(), 0, 0x0747, 0),
		}

		r := engine.Validate(results)

		Expect(r.TotalErrors).To(BeZero())
	})

	It("should report unknown combinations as indeterminate", func() {
		results := []*core.Result{
			result(workload.Seeds{Seed1: 1, Seed2: 2, Seed3: 3}, 666, workload.AllAlgorithms, 1, 2, 3),
		}

		r := engine.Validate(results)

		Expect(r.Indeterminate()).To(BeTrue())
		Expect(r.KnownID()).To(Equal(-1))
		Expect(r.TotalErrors).To(Equal(validate.Indeterminate))
		Expect(r.Mismatches).To(BeEmpty())
		Expect(results[0].Errors).To(BeZero())
	})

	It("should treat an empty run as indeterminate", func() {
		Expect(engine.Validate(nil).TotalErrors).To(Equal(-1))
	})
})

var _ = Describe("CheckDataTypes", func() {
	It("should find no failures on supported platforms", func() {
		n, msgs := validate.CheckDataTypes()
		Expect(n).To(BeZero())
		Expect(msgs).To(BeEmpty())
	})
})
