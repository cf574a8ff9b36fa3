package metrics_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/sarchlab/markbench/counters"
	"github.com/sarchlab/markbench/metrics"
)

var _ = Describe("Compute", func() {
	It("should derive every figure from valid counters", func() {
		s := metrics.Compute(counters.Snapshot{Cycles: 4_000_000, Instructions: 2_000_000}, 400, 2)

		Expect(s.CountersValid()).To(BeTrue())
		Expect(s.CPI).To(Equal(metrics.Value{Value: 2, OK: true}))
		Expect(s.IPC).To(Equal(metrics.Value{Value: 0.5, OK: true}))
		Expect(s.FrequencyMHz.Value).To(BeNumerically("~", 2, 1e-9))
		Expect(s.MIPS.Value).To(BeNumerically("~", 1, 1e-9))
		Expect(s.CoreMarkPerMHz.Value).To(BeNumerically("~", 100, 1e-9))
		Expect(s.CyclesPerIteration.Value).To(Equal(10000.0))
		Expect(s.InstructionsPerIteration.Value).To(Equal(5000.0))
		Expect(s.IterationsPerSecond.Value).To(Equal(200.0))
	})

	It("should make CPI and IPC reciprocal", func() {
		s := metrics.Compute(counters.Snapshot{Cycles: 12345, Instructions: 6789}, 1, 1)
		Expect(s.CPI.Value * s.IPC.Value).To(BeNumerically("~", 1, 1e-12))
	})

	It("should leave ratios out when a counter is zero", func() {
		s := metrics.Compute(counters.Snapshot{Cycles: 1000}, 10, 1)

		Expect(s.CountersValid()).To(BeFalse())
		Expect(s.CPI.OK).To(BeFalse())
		Expect(s.IPC.OK).To(BeFalse())
		Expect(s.FrequencyMHz.OK).To(BeTrue())
		Expect(s.CoreMarkPerMHz.OK).To(BeTrue())
	})

	It("should not divide by zero cycles", func() {
		s := metrics.Compute(counters.Snapshot{Instructions: 1000}, 10, 1)

		Expect(s.CPI.OK).To(BeFalse())
		Expect(s.CoreMarkPerMHz.OK).To(BeFalse())
		Expect(s.MIPS.OK).To(BeTrue())
	})

	It("should not divide by zero time or iterations", func() {
		s := metrics.Compute(counters.Snapshot{Cycles: 10, Instructions: 10}, 0, 0)

		Expect(s.FrequencyMHz.OK).To(BeFalse())
		Expect(s.MIPS.OK).To(BeFalse())
		Expect(s.IterationsPerSecond.OK).To(BeFalse())
		Expect(s.CyclesPerIteration.OK).To(BeFalse())
		Expect(s.InstructionsPerIteration.OK).To(BeFalse())
		Expect(s.IPC.OK).To(BeTrue())
	})
})

var _ = Describe("Analysis", func() {
	grade := func(inst uint64) metrics.Snapshot {
		return metrics.Compute(counters.Snapshot{Cycles: 100, Instructions: inst}, 1, 1)
	}

	DescribeTable("IPC grades",
		func(inst uint64, want metrics.IPCStatus, hints int) {
			s := grade(inst)
			Expect(s.Grade()).To(Equal(want))
			Expect(s.Suggestions()).To(HaveLen(hints))
		},
		Entry("excellent", uint64(90), metrics.IPCExcellent, 0),
		Entry("boundary 0.8 is good", uint64(80), metrics.IPCGood, 0),
		Entry("good", uint64(60), metrics.IPCGood, 0),
		Entry("fair", uint64(40), metrics.IPCFair, 3),
		Entry("boundary 0.3 needs work", uint64(30), metrics.IPCNeedsOptimization, 3),
		Entry("poor", uint64(10), metrics.IPCNeedsOptimization, 5),
	)

	It("should not grade invalid counters", func() {
		s := metrics.Compute(counters.Snapshot{}, 1, 1)
		Expect(s.Grade()).To(Equal(metrics.IPCUnknown))
		Expect(s.Suggestions()).To(BeEmpty())
	})
})

var _ = Describe("Export", func() {
	info := metrics.RunInfo{RunID: "run-1", Profile: "validation", TotalErrors: 0}

	It("should register only computable figures", func() {
		full := metrics.NewRegistry(info, metrics.Compute(
			counters.Snapshot{Cycles: 100, Instructions: 50}, 10, 1))
		partial := metrics.NewRegistry(info, metrics.Compute(
			counters.Snapshot{Cycles: 100}, 10, 1))

		Expect(testutil.CollectAndCount(full)).To(Equal(13))
		Expect(testutil.CollectAndCount(partial)).To(Equal(11))
	})

	It("should write a textfile", func() {
		path := filepath.Join(GinkgoT().TempDir(), "markbench.prom")
		s := metrics.Compute(counters.Snapshot{Cycles: 100, Instructions: 50}, 10, 1)

		Expect(metrics.WriteTextfile(path, info, s)).To(Succeed())

		data, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(ContainSubstring(`markbench_ipc{profile="validation",run_id="run-1"} 0.5`))
		Expect(string(data)).To(ContainSubstring("# TYPE markbench_cycles gauge"))
	})

	It("should wrap write failures", func() {
		err := metrics.WriteTextfile(filepath.Join(GinkgoT().TempDir(), "missing", "x.prom"), info, metrics.Snapshot{})
		Expect(err).To(MatchError(ContainSubstring("failed to write metrics textfile")))
	})
})
