package harness

import (
	"time"

	"github.com/sarchlab/markbench/config"
	"github.com/sarchlab/markbench/core"
	"github.com/sarchlab/markbench/counters"
	"github.com/sarchlab/markbench/metrics"
	"github.com/sarchlab/markbench/validate"
	"github.com/sarchlab/markbench/workload"
)

// TicksPerSecond is the resolution of the reported tick count.
const TicksPerSecond = 1000

// ContextResult is the reported outcome of one execution context.
type ContextResult struct {
	ID        int           `json:"id" yaml:"id"`
	CRCList   uint16        `json:"crclist" yaml:"crclist"`
	CRCMatrix uint16        `json:"crcmatrix" yaml:"crcmatrix"`
	CRCState  uint16        `json:"crcstate" yaml:"crcstate"`
	CRCFinal  uint16        `json:"crcfinal" yaml:"crcfinal"`
	Errors    int           `json:"errors" yaml:"errors"`
	Elapsed   time.Duration `json:"elapsed_ns" yaml:"elapsed"`
}

// Spread summarizes the elapsed times of the contexts in seconds.
type Spread struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"stddev" yaml:"stddev"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
}

// Metadata describes the environment of a run.
type Metadata struct {
	RunID     string `json:"run_id" yaml:"run_id"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Flags     string `json:"flags" yaml:"flags"`
	CPU       string `json:"cpu" yaml:"cpu"`
}

// Result is the outcome of one benchmark run.
type Result struct {
	Metadata Metadata `json:"metadata" yaml:"metadata"`

	// Config is the resolved configuration the run executed.
	Config  *config.RunConfig  `json:"config" yaml:"config"`
	Profile config.SeedProfile `json:"-" yaml:"-"`

	// Size is the per-kernel memory size.
	Size     uint32 `json:"size" yaml:"size"`
	Contexts int    `json:"contexts" yaml:"contexts"`

	// Calibrated is set when the iteration count was found by calibration.
	Calibrated bool `json:"calibrated" yaml:"calibrated"`

	TotalIterations uint64        `json:"total_iterations" yaml:"total_iterations"`
	TotalTicks      uint64        `json:"total_ticks" yaml:"total_ticks"`
	Elapsed         time.Duration `json:"elapsed_ns" yaml:"elapsed"`

	SeedCRC       uint16              `json:"seedcrc" yaml:"seedcrc"`
	Validation    validate.Report     `json:"-" yaml:"-"`
	Mismatches    []validate.Mismatch `json:"mismatches,omitempty" yaml:"mismatches,omitempty"`
	KnownID       int                 `json:"known_id" yaml:"known_id"`
	ProfileName   string              `json:"profile_name,omitempty" yaml:"profile_name,omitempty"`
	PerContext    []ContextResult     `json:"per_context" yaml:"per_context"`
	ContextSpread Spread              `json:"context_spread" yaml:"context_spread"`

	// DataTypeErrors lists the failed integer width checks.
	DataTypeErrors []string `json:"data_type_errors,omitempty" yaml:"data_type_errors,omitempty"`

	// DurationViolation is set when a non-simulation run was shorter than
	// the minimum duration.
	DurationViolation bool `json:"duration_violation" yaml:"duration_violation"`

	// TotalErrors is the number of defects found, or -1 when the seeds
	// cannot be validated and no other defect was found.
	TotalErrors int `json:"total_errors" yaml:"total_errors"`

	Counters counters.Snapshot `json:"counters" yaml:"counters"`
	Metrics  metrics.Snapshot  `json:"metrics" yaml:"metrics"`
}

// Seconds returns the measured time in seconds.
func (r *Result) Seconds() float64 {
	return r.Elapsed.Seconds()
}

// Valid reports whether the run passed validation.
func (r *Result) Valid() bool {
	return r.TotalErrors == 0
}

// Indeterminate reports whether the seeds matched no reference profile.
func (r *Result) Indeterminate() bool {
	return r.TotalErrors < 0
}

// Execs returns the kernels the run enabled.
func (r *Result) Execs() workload.Mask {
	return r.Config.Execs
}

// Score returns the iterations per second, or 0 for a zero-length run.
func (r *Result) Score() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.TotalIterations) / r.Seconds()
}

// ScoreLine reports whether the run produces the CoreMark score line.
func (r *Result) ScoreLine() bool {
	return r.Valid() && r.KnownID == validate.PerformanceRunID
}

func contextResults(contexts []*core.Context) []ContextResult {
	out := make([]ContextResult, len(contexts))
	for i, c := range contexts {
		r := &c.Result
		out[i] = ContextResult{
			ID:        c.ID,
			CRCList:   r.CRCList,
			CRCMatrix: r.CRCMatrix,
			CRCState:  r.CRCState,
			CRCFinal:  r.CRC,
			Errors:    r.Errors,
			Elapsed:   r.Elapsed,
		}
	}
	return out
}

// totalErrors combines the validation outcome with the defects found
// outside checksum matching.
func totalErrors(v validate.Report, dataTypeErrors int, durationViolation bool) int {
	defects := dataTypeErrors
	if durationViolation {
		defects++
	}

	if v.Indeterminate() {
		if defects == 0 {
			return validate.Indeterminate
		}
		return defects
	}

	return v.TotalErrors + defects
}
