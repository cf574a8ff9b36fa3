package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "markbench"

// RunInfo labels the exported series of one run.
type RunInfo struct {
	RunID   string
	Profile string

	// TotalErrors is the validation error total of the run.
	TotalErrors int
}

// NewRegistry returns a registry holding the figures of s as gauges.
// Figures that are not computable are left out.
func NewRegistry(info RunInfo, s Snapshot) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	labels := prometheus.Labels{"run_id": info.RunID, "profile": info.Profile}

	gauge := func(name, help string, v float64) {
		g := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
		g.Set(v)
		reg.MustRegister(g)
	}

	optional := func(name, help string, v Value) {
		if v.OK {
			gauge(name, help, v.Value)
		}
	}

	gauge("cycles", "Cycles elapsed in the measured phase.", float64(s.Cycles))
	gauge("instructions", "Instructions retired in the measured phase.", float64(s.Instructions))
	gauge("iterations", "Workload iterations over all contexts.", float64(s.Iterations))
	gauge("elapsed_seconds", "Duration of the measured phase.", s.ElapsedSeconds)
	gauge("errors", "Validation errors, -1 when the seeds cannot be validated.", float64(info.TotalErrors))

	optional("cpi", "Cycles per instruction.", s.CPI)
	optional("ipc", "Instructions per cycle.", s.IPC)
	optional("frequency_mhz", "Measured core frequency.", s.FrequencyMHz)
	optional("mips", "Million instructions per second.", s.MIPS)
	optional("coremark_per_mhz", "Iterations per million cycles.", s.CoreMarkPerMHz)
	optional("cycles_per_iteration", "Cycles per workload iteration.", s.CyclesPerIteration)
	optional("instructions_per_iteration", "Instructions per workload iteration.", s.InstructionsPerIteration)
	optional("iterations_per_second", "Workload iterations per second.", s.IterationsPerSecond)

	return reg
}

// WriteTextfile writes the figures of s in the text exposition format for
// the node exporter textfile collector.
func WriteTextfile(path string, info RunInfo, s Snapshot) error {
	if err := prometheus.WriteToTextfile(path, NewRegistry(info, s)); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
