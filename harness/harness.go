// Package harness runs a benchmark end to end: it lays out memory, builds
// the execution contexts, calibrates, measures, validates and reports.
package harness

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/aclements/go-moremath/stats"
	"github.com/google/uuid"
	"github.com/klauspost/cpuid/v2"
	"github.com/sarchlab/akita/v4/sim"
	"go.uber.org/zap"

	"github.com/sarchlab/markbench/config"
	"github.com/sarchlab/markbench/core"
	"github.com/sarchlab/markbench/counters"
	"github.com/sarchlab/markbench/memory"
	"github.com/sarchlab/markbench/metrics"
	"github.com/sarchlab/markbench/validate"
	"github.com/sarchlab/markbench/workload"
)

// Config holds the harness configuration.
type Config struct {
	// Run is the run configuration. It is resolved, not modified.
	Run *config.RunConfig

	// Profiles is the reference table. Default: validate.DefaultProfiles().
	Profiles *validate.Profiles

	// Counters overrides the counter source named by Run.Counters. The
	// harness does not close an injected source.
	Counters counters.Source

	// CalibrationTarget ends the calibration search. Default: 1s.
	CalibrationTarget time.Duration

	// Flags describes how the binary was built, for the report.
	Flags string

	// Output receives the reports.
	Output io.Writer

	Logger *zap.Logger
}

// DefaultConfig returns a harness configuration for the default run.
func DefaultConfig() Config {
	return Config{
		Run:               config.DefaultRunConfig(),
		Profiles:          validate.DefaultProfiles(),
		CalibrationTarget: DefaultCalibrationTarget,
		Output:            os.Stdout,
		Logger:            zap.NewNop(),
	}
}

// Harness runs benchmarks.
type Harness struct {
	config Config
	log    *zap.Logger
}

// NewHarness creates a new benchmark harness.
func NewHarness(config Config) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	if config.Profiles == nil {
		config.Profiles = validate.DefaultProfiles()
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return &Harness{
		config: config,
		log:    config.Logger,
	}
}

// Run executes one benchmark run. Configuration, allocation and counter
// failures are returned before the measured phase; everything detected
// afterwards is reported in the result.
func (h *Harness) Run() (*Result, error) {
	if h.config.Run == nil {
		return nil, fmt.Errorf("run config is required")
	}

	run, profile := h.config.Run.Resolve()
	if err := run.Validate(); err != nil {
		return nil, fmt.Errorf("invalid run config: %w", err)
	}

	run.Contexts = contextCount(run)
	if run.Simulation {
		run.Iterations = config.SimulationIterations
	}

	layout := memory.Partition(run.TotalSize, run.Execs)

	alloc, err := memory.NewAllocator(run.Memory, run.TotalSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create allocator: %w", err)
	}
	blocks, err := alloc.Acquire(run.Contexts, run.TotalSize)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire memory: %w", err)
	}
	defer alloc.Release()

	src, closeSrc, err := h.counterSource(run)
	if err != nil {
		return nil, err
	}
	defer closeSrc()

	contexts := make([]*core.Context, run.Contexts)
	for i, block := range blocks {
		params := workload.Params{
			Seeds:   run.Seeds(),
			Execs:   run.Execs,
			Size:    layout.PerAlgorithm,
			Regions: layout.Carve(block),
		}
		contexts[i] = core.NewContext(i, workload.New(params), params, run.Iterations)
	}

	h.log.Info("run configured",
		zap.Stringer("profile", profile),
		zap.Uint32("size", layout.PerAlgorithm),
		zap.Int("contexts", run.Contexts),
		zap.String("memory", string(run.Memory)),
		zap.Uint32("iterations", run.Iterations))

	calibrated := run.Iterations == 0
	if calibrated {
		run.Iterations = h.calibrate(contexts[0])
		for _, c := range contexts {
			c.SetIterations(run.Iterations)
		}
	}

	h.log.Info("dispatching", zap.Int("contexts", len(contexts)))

	before := counters.Read(src)
	start := time.Now()
	if err := core.Dispatch(contexts); err != nil {
		return nil, fmt.Errorf("failed to dispatch contexts: %w", err)
	}
	elapsed := time.Since(start)
	after := counters.Read(src)

	h.log.Info("joined", zap.Duration("elapsed", elapsed))

	return h.evaluate(run, profile, layout, contexts, calibrated, elapsed, after.Since(before)), nil
}

func (h *Harness) evaluate(
	run *config.RunConfig,
	profile config.SeedProfile,
	layout memory.Layout,
	contexts []*core.Context,
	calibrated bool,
	elapsed time.Duration,
	delta counters.Snapshot,
) *Result {
	results := make([]*core.Result, len(contexts))
	for i, c := range contexts {
		results[i] = &c.Result
	}

	report := validate.NewEngine(h.config.Profiles).Validate(results)
	_, typeMsgs := validate.CheckDataTypes()
	violation := !run.Simulation && elapsed < run.MinDuration

	r := &Result{
		Metadata:          h.metadata(),
		Config:            run,
		Profile:           profile,
		Size:              layout.PerAlgorithm,
		Contexts:          len(contexts),
		Calibrated:        calibrated,
		TotalIterations:   uint64(len(contexts)) * uint64(run.Iterations),
		TotalTicks:        uint64(elapsed.Milliseconds()),
		Elapsed:           elapsed,
		SeedCRC:           report.Fingerprint,
		Validation:        report,
		Mismatches:        report.Mismatches,
		KnownID:           report.KnownID(),
		PerContext:        contextResults(contexts),
		ContextSpread:     spread(contexts),
		DataTypeErrors:    typeMsgs,
		DurationViolation: violation,
		TotalErrors:       totalErrors(report, len(typeMsgs), violation),
		Counters:          delta,
	}
	if report.Profile != nil {
		r.ProfileName = report.Profile.Name
	}
	r.Metrics = metrics.Compute(delta, r.TotalIterations, elapsed.Seconds())

	h.log.Info("validated",
		zap.String("seedcrc", fmt.Sprintf("0x%04x", r.SeedCRC)),
		zap.Int("known_id", r.KnownID),
		zap.Int("total_errors", r.TotalErrors))

	return r
}

func (h *Harness) calibrate(c *core.Context) uint32 {
	cal := &Calibrator{
		Measure: func(iterations uint32) time.Duration {
			c.SetIterations(iterations)
			c.Run()
			return c.Result.Elapsed
		},
		Target: h.config.CalibrationTarget,
		Logger: h.log,
	}
	return cal.Calibrate()
}

func (h *Harness) counterSource(run *config.RunConfig) (counters.Reader, func(), error) {
	if h.config.Counters != nil {
		return h.config.Counters, func() {}, nil
	}

	freq := counters.DefaultFrequency
	if run.FrequencyMHz > 0 {
		freq = sim.Freq(run.FrequencyMHz) * sim.MHz
	}

	src, err := counters.Open(run.Counters, freq)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open counters: %w", err)
	}

	return src, func() {
		if err := src.Close(); err != nil {
			h.log.Warn("failed to close counters", zap.Error(err))
		}
	}, nil
}

func (h *Harness) metadata() Metadata {
	return Metadata{
		RunID:     uuid.NewString(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		GoVersion: runtime.Version(),
		Flags:     h.config.Flags,
		CPU:       cpuid.CPU.BrandName,
	}
}

// contextCount returns the configured context count, or the number of
// logical cores when it is 0. Static memory always runs one context.
func contextCount(run *config.RunConfig) int {
	if run.Contexts > 0 {
		return run.Contexts
	}
	if run.Memory == memory.MethodStatic {
		return 1
	}
	return DefaultContexts()
}

// DefaultContexts returns the number of logical cores, capped at
// core.MaxContexts.
func DefaultContexts() int {
	n := cpuid.CPU.LogicalCores
	if n <= 0 {
		n = runtime.NumCPU()
	}
	return max(1, min(n, core.MaxContexts))
}

func spread(contexts []*core.Context) Spread {
	xs := make([]float64, len(contexts))
	for i, c := range contexts {
		xs[i] = c.Result.Elapsed.Seconds()
	}

	sample := stats.Sample{Xs: xs}
	lo, hi := sample.Bounds()
	s := Spread{Mean: sample.Mean(), Min: lo, Max: hi}
	if len(xs) > 1 {
		s.StdDev = sample.StdDev()
	}
	return s
}
