package config_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/markbench/config"
	"github.com/sarchlab/markbench/workload"
)

var _ = Describe("Seed resolution", func() {
	DescribeTable("ResolveSeeds",
		func(in, want workload.Seeds, profile config.SeedProfile) {
			got, p := config.ResolveSeeds(in)
			Expect(got).To(Equal(want))
			Expect(p).To(Equal(profile))
		},
		Entry("validation alias",
			workload.Seeds{},
			workload.Seeds{Seed1: 0, Seed2: 0, Seed3: 0x66},
			config.ProfileValidation),
		Entry("performance alias",
			workload.Seeds{Seed1: 1},
			workload.Seeds{Seed1: 0x3415, Seed2: 0x3415, Seed3: 0x66},
			config.ProfilePerformance),
		Entry("profile generation seeds",
			workload.Seeds{Seed1: 8, Seed2: 8, Seed3: 8},
			workload.Seeds{Seed1: 8, Seed2: 8, Seed3: 8},
			config.ProfileCustom),
		Entry("almost an alias",
			workload.Seeds{Seed1: 1, Seed3: 1},
			workload.Seeds{Seed1: 1, Seed3: 1},
			config.ProfileCustom),
	)

	DescribeTable("ResolveExecs",
		func(in, want workload.Mask) {
			Expect(config.ResolveExecs(in)).To(Equal(want))
		},
		Entry("empty selects all", workload.Mask(0), workload.AllAlgorithms),
		Entry("list only", workload.Mask(1), workload.Mask(1)),
		Entry("high bits ignored", workload.Mask(0x0b), workload.Mask(0x3)),
		Entry("only unknown bits", workload.Mask(0x10), workload.AllAlgorithms),
	)

	It("should resolve a copy and leave the input alone", func() {
		c := config.DefaultRunConfig()
		c.Seed1 = 1
		c.Execs = 0

		r, p := c.Resolve()

		Expect(p).To(Equal(config.ProfilePerformance))
		Expect(r.Seeds()).To(Equal(config.PerformanceSeeds))
		Expect(r.Execs).To(Equal(workload.AllAlgorithms))
		Expect(c.Seed1).To(Equal(int16(1)))
		Expect(c.Execs).To(BeZero())
	})

	It("should name the profiles", func() {
		Expect(config.ProfileValidation.String()).To(Equal("validation"))
		Expect(config.ProfilePerformance.String()).To(Equal("performance"))
		Expect(config.ProfileCustom.String()).To(Equal("custom"))
	})
})
