// Package metrics derives the normalized performance figures of a run from
// its counter deltas.
package metrics

import "github.com/sarchlab/markbench/counters"

// Value is a derived figure that may not be computable from the inputs.
type Value struct {
	Value float64 `json:"value" yaml:"value"`
	OK    bool    `json:"ok" yaml:"ok"`
}

func computed(v float64) Value {
	return Value{Value: v, OK: true}
}

// Snapshot holds the figures derived from one run.
type Snapshot struct {
	// Raw inputs.
	Cycles         uint64  `json:"cycles" yaml:"cycles"`
	Instructions   uint64  `json:"instructions" yaml:"instructions"`
	Iterations     uint64  `json:"iterations" yaml:"iterations"`
	ElapsedSeconds float64 `json:"elapsed_seconds" yaml:"elapsed_seconds"`

	CPI                      Value `json:"cpi" yaml:"cpi"`
	IPC                      Value `json:"ipc" yaml:"ipc"`
	FrequencyMHz             Value `json:"frequency_mhz" yaml:"frequency_mhz"`
	MIPS                     Value `json:"mips" yaml:"mips"`
	CoreMarkPerMHz           Value `json:"coremark_per_mhz" yaml:"coremark_per_mhz"`
	CyclesPerIteration       Value `json:"cycles_per_iteration" yaml:"cycles_per_iteration"`
	InstructionsPerIteration Value `json:"instructions_per_iteration" yaml:"instructions_per_iteration"`
	IterationsPerSecond      Value `json:"iterations_per_second" yaml:"iterations_per_second"`
}

// CountersValid reports whether both counters advanced during the run.
func (s Snapshot) CountersValid() bool {
	return s.Cycles > 0 && s.Instructions > 0
}

// Compute derives the figures from the counter deltas of the measured
// phase, the total iterations over all contexts and the elapsed time.
// A figure whose divisor is zero is left not computable.
func Compute(delta counters.Snapshot, iterations uint64, elapsedSeconds float64) Snapshot {
	s := Snapshot{
		Cycles:         delta.Cycles,
		Instructions:   delta.Instructions,
		Iterations:     iterations,
		ElapsedSeconds: elapsedSeconds,
	}

	cyc := float64(delta.Cycles)
	inst := float64(delta.Instructions)
	iter := float64(iterations)

	if delta.Cycles > 0 && delta.Instructions > 0 {
		s.CPI = computed(cyc / inst)
		s.IPC = computed(inst / cyc)
	}

	if elapsedSeconds > 0 {
		s.FrequencyMHz = computed(cyc / elapsedSeconds / 1e6)
		s.MIPS = computed(inst / elapsedSeconds / 1e6)
		s.IterationsPerSecond = computed(iter / elapsedSeconds)
	}

	if delta.Cycles > 0 {
		s.CoreMarkPerMHz = computed(iter * 1e6 / cyc)
	}

	if iterations > 0 {
		s.CyclesPerIteration = computed(cyc / iter)
		s.InstructionsPerIteration = computed(inst / iter)
	}

	return s
}
