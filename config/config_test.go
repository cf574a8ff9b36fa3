package config_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/markbench/config"
	"github.com/sarchlab/markbench/core"
	"github.com/sarchlab/markbench/counters"
	"github.com/sarchlab/markbench/memory"
	"github.com/sarchlab/markbench/workload"
)

var _ = Describe("RunConfig", func() {
	var c *config.RunConfig

	BeforeEach(func() {
		c = config.DefaultRunConfig()
	})

	Describe("DefaultRunConfig", func() {
		It("should use the standard budget and sources", func() {
			Expect(c.TotalSize).To(Equal(uint32(2000)))
			Expect(c.Execs).To(Equal(workload.AllAlgorithms))
			Expect(c.Memory).To(Equal(memory.MethodHeap))
			Expect(c.Counters).To(Equal(counters.KindClock))
			Expect(c.MinDuration).To(Equal(10 * time.Second))
			Expect(c.Iterations).To(BeZero())
			Expect(c.Validate()).To(Succeed())
		})
	})

	Describe("Validate", func() {
		It("should reject too many contexts", func() {
			c.Contexts = core.MaxContexts + 1
			Expect(c.Validate()).To(MatchError(ContainSubstring("contexts")))
		})

		It("should reject negative contexts", func() {
			c.Contexts = -1
			Expect(c.Validate()).To(HaveOccurred())
		})

		It("should reject a budget smaller than the kernel count", func() {
			c.TotalSize = 2
			Expect(c.Validate()).To(MatchError(ContainSubstring("size must be >= 3")))

			c.Execs = workload.Matrix.Bit() | workload.State.Bit()
			Expect(c.Validate()).To(Succeed())
		})

		It("should reject unknown sources", func() {
			c.Memory = "pool"
			Expect(c.Validate()).To(MatchError(ContainSubstring("memory method")))

			c.Memory = memory.MethodStack
			c.Counters = "pmu"
			Expect(c.Validate()).To(MatchError(ContainSubstring("counter source")))
		})

		It("should reject static memory with several contexts", func() {
			c.Memory = memory.MethodStatic
			c.Contexts = 2
			Expect(c.Validate()).To(HaveOccurred())

			c.Contexts = 1
			Expect(c.Validate()).To(Succeed())
		})
	})

	Describe("Clone", func() {
		It("should return an independent copy", func() {
			c.Iterations = 5
			clone := c.Clone()
			clone.Iterations = 7

			Expect(c.Iterations).To(Equal(uint32(5)))
			Expect(clone.TotalSize).To(Equal(c.TotalSize))
		})
	})

	Describe("files", func() {
		var dir string

		BeforeEach(func() {
			dir = GinkgoT().TempDir()
		})

		It("should round trip through Save and Load", func() {
			c.Seed1, c.Seed2, c.Seed3 = 8, 8, 8
			c.Iterations = 42
			c.Execs = 0x5
			c.TotalSize = 1200
			c.Contexts = 4
			c.Memory = memory.MethodStack
			c.Counters = counters.KindNone
			c.FrequencyMHz = 3200
			c.MinDuration = 1500 * time.Millisecond
			c.Simulation = true

			path := filepath.Join(dir, "run.yaml")
			Expect(c.Save(path)).To(Succeed())

			loaded, err := config.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(Equal(c))
		})

		It("should fill missing keys with defaults", func() {
			path := filepath.Join(dir, "run.yaml")
			Expect(os.WriteFile(path, []byte("iterations: 10\nseed1: 1\n"), 0644)).To(Succeed())

			loaded, err := config.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Iterations).To(Equal(uint32(10)))
			Expect(loaded.Seed1).To(Equal(int16(1)))
			Expect(loaded.TotalSize).To(Equal(uint32(2000)))
			Expect(loaded.MinDuration).To(Equal(10 * time.Second))
		})

		It("should read JSON files", func() {
			path := filepath.Join(dir, "run.json")
			Expect(os.WriteFile(path, []byte(`{"size": 6000, "contexts": 2}`), 0644)).To(Succeed())

			loaded, err := config.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.TotalSize).To(Equal(uint32(6000)))
			Expect(loaded.Contexts).To(Equal(2))
		})

		It("should let the environment override the file", func() {
			path := filepath.Join(dir, "run.yaml")
			Expect(os.WriteFile(path, []byte("iterations: 10\n"), 0644)).To(Succeed())

			Expect(os.Setenv("MARKBENCH_ITERATIONS", "99")).To(Succeed())
			DeferCleanup(os.Unsetenv, "MARKBENCH_ITERATIONS")

			loaded, err := config.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Iterations).To(Equal(uint32(99)))
		})

		It("should wrap read failures", func() {
			_, err := config.Load(filepath.Join(dir, "missing.yaml"))
			Expect(err).To(MatchError(ContainSubstring("failed to read run config file")))
		})
	})
})
