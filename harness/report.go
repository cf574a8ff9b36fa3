package harness

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/markbench/validate"
	"github.com/sarchlab/markbench/workload"
)

// PrintResults writes the human-readable report of r.
func (h *Harness) PrintResults(r *Result) {
	w := h.config.Output

	if r.ProfileName != "" {
		_, _ = fmt.Fprintf(w, "%s.\n", r.ProfileName)
	}
	for _, m := range r.Mismatches {
		_, _ = fmt.Fprintln(w, m.String())
	}
	for _, msg := range r.DataTypeErrors {
		_, _ = fmt.Fprintln(w, msg)
	}

	_, _ = fmt.Fprintf(w, "CoreMark Size    : %d\n", r.Size)
	_, _ = fmt.Fprintf(w, "Total ticks      : %d\n", r.TotalTicks)
	_, _ = fmt.Fprintf(w, "Total time (secs): %f\n", r.Seconds())
	if r.Elapsed > 0 {
		_, _ = fmt.Fprintf(w, "Iterations/Sec   : %f\n", r.Score())
	}
	if r.DurationViolation {
		_, _ = fmt.Fprintf(w, "ERROR! Must execute for at least %d secs for a valid result!\n",
			int(r.Config.MinDuration.Seconds()))
	}
	_, _ = fmt.Fprintf(w, "Iterations       : %d\n", r.TotalIterations)
	_, _ = fmt.Fprintf(w, "Compiler version : %s\n", r.Metadata.GoVersion)
	_, _ = fmt.Fprintf(w, "Compiler flags   : %s\n", r.Metadata.Flags)
	_, _ = fmt.Fprintf(w, "Parallel goroutines : %d\n", r.Contexts)
	_, _ = fmt.Fprintf(w, "Memory location  : %s\n", r.Config.Memory.Location())
	_, _ = fmt.Fprintf(w, "seedcrc          : 0x%04x\n", r.SeedCRC)

	execs := r.Execs()
	if execs.Has(workload.List) {
		for _, c := range r.PerContext {
			_, _ = fmt.Fprintf(w, "[%d]crclist        : 0x%04x\n", c.ID, c.CRCList)
		}
	}
	if execs.Has(workload.Matrix) {
		for _, c := range r.PerContext {
			_, _ = fmt.Fprintf(w, "[%d]crcmatrix      : 0x%04x\n", c.ID, c.CRCMatrix)
		}
	}
	if execs.Has(workload.State) {
		for _, c := range r.PerContext {
			_, _ = fmt.Fprintf(w, "[%d]crcstate       : 0x%04x\n", c.ID, c.CRCState)
		}
	}
	for _, c := range r.PerContext {
		_, _ = fmt.Fprintf(w, "[%d]crcfinal       : 0x%04x\n", c.ID, c.CRCFinal)
	}

	switch {
	case r.Valid():
		_, _ = fmt.Fprintln(w, "Correct operation validated. See readme.txt for run and reporting rules.")
		if r.ScoreLine() {
			_, _ = fmt.Fprintf(w, "CoreMark 1.0 : %f / %s %s / %s / %d:goroutines\n",
				r.Score(), r.Metadata.GoVersion, r.Metadata.Flags,
				r.Config.Memory.Location(), r.Contexts)
		}
	case r.Indeterminate():
		_, _ = fmt.Fprintln(w, "Cannot validate operation for these seed values.")
	default:
		_, _ = fmt.Fprintln(w, "Errors detected")
	}

	h.printAnalysis(r)
}

func (h *Harness) printAnalysis(r *Result) {
	w := h.config.Output
	m := r.Metrics

	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "=== Performance Analysis ===")
	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "--- Raw Hardware Counters ---")
	printUint64(w, "Total Cycles                ", m.Cycles)
	printUint64(w, "Total Instructions          ", m.Instructions)
	_, _ = fmt.Fprintf(w, "Total Iterations            : %d\n", m.Iterations)
	_, _ = fmt.Fprintf(w, "Total Time (seconds)        : %f\n", m.ElapsedSeconds)

	if !m.CountersValid() {
		_, _ = fmt.Fprintln(w, "")
		_, _ = fmt.Fprintln(w, "Counters invalid (0), metrics not computable. Check counter support.")
		return
	}

	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "--- Core Performance Metrics ---")
	_, _ = fmt.Fprintf(w, "CPI (Cycles Per Instruction): %f\n", m.CPI.Value)
	_, _ = fmt.Fprintf(w, "IPC (Instructions Per Cycle): %f\n", m.IPC.Value)
	_, _ = fmt.Fprintf(w, "Actual CPU Frequency        : %.2f MHz\n", m.FrequencyMHz.Value)
	_, _ = fmt.Fprintf(w, "MIPS (Million Inst/Sec)     : %.2f\n", m.MIPS.Value)

	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "--- Benchmark Efficiency Metrics ---")
	_, _ = fmt.Fprintf(w, "Iterations/Second           : %.2f\n", m.IterationsPerSecond.Value)
	_, _ = fmt.Fprintf(w, "CoreMark/MHz (Normalized)   : %.4f\n", m.CoreMarkPerMHz.Value)
	_, _ = fmt.Fprintf(w, "Cycles per Iteration        : %.0f\n", m.CyclesPerIteration.Value)
	_, _ = fmt.Fprintf(w, "Instructions per Iteration  : %.0f\n", m.InstructionsPerIteration.Value)

	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "--- Pipeline Optimization Indicators ---")
	_, _ = fmt.Fprintf(w, "IPC Status                  : %s\n", m.Grade())

	h.printModules(r)

	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "--- Validation Result ---")
	_, _ = fmt.Fprintf(w, "CRC Validation              : %s\n", passFail(r.Valid()))
	if r.TotalErrors > 0 {
		_, _ = fmt.Fprintf(w, "Total Errors                : %d\n", r.TotalErrors)
	}

	if hints := m.Suggestions(); len(hints) > 0 {
		_, _ = fmt.Fprintln(w, "")
		_, _ = fmt.Fprintln(w, "--- Suggestions for Pipeline Optimization ---")
		for _, s := range hints {
			_, _ = fmt.Fprintf(w, "- %s\n", s)
		}
	}
}

// printModules writes the execution status of every kernel in context 0.
func (h *Harness) printModules(r *Result) {
	w := h.config.Output

	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "--- Module Execution Status ---")

	if len(r.PerContext) == 0 {
		return
	}
	c := r.PerContext[0]
	actual := [workload.NumAlgorithms]uint16{c.CRCList, c.CRCMatrix, c.CRCState}
	labels := [workload.NumAlgorithms]string{"List Benchmark", "Matrix Benchmark", "State Machine Benchmark"}

	for a := workload.List; a < workload.NumAlgorithms; a++ {
		if !r.Execs().Has(a) {
			_, _ = fmt.Fprintf(w, "%-28s: SKIPPED\n", labels[a])
			continue
		}

		_, _ = fmt.Fprintf(w, "%-28s: EXECUTED\n", labels[a])
		_, _ = fmt.Fprintf(w, "  CRC Value                 : 0x%04x\n", actual[a])

		p := r.Validation.Profile
		if p == nil {
			continue
		}
		expected := p.Expected(a)
		_, _ = fmt.Fprintf(w, "  Expected CRC              : 0x%04x\n", expected)
		_, _ = fmt.Fprintf(w, "  Status                    : %s\n", passFail(actual[a] == expected))
	}
}

func passFail(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}

// printUint64 prints v in decimal when it fits 32 bits and in hex
// otherwise.
func printUint64(w io.Writer, label string, v uint64) {
	if v <= 0xFFFFFFFF {
		_, _ = fmt.Fprintf(w, "%s: %d\n", label, v)
		return
	}
	_, _ = fmt.Fprintf(w, "%s: 0x%08x%08x (hex)\n", label, uint32(v>>32), uint32(v))
}

// PrintCSV writes r as a CSV header and one row per context.
func (h *Harness) PrintCSV(r *Result) {
	_, _ = fmt.Fprintln(h.config.Output,
		"run_id,context,seedcrc,size,iterations,crclist,crcmatrix,crcstate,crcfinal,errors,elapsed_seconds,total_errors")

	for _, c := range r.PerContext {
		_, _ = fmt.Fprintf(h.config.Output, "%s,%d,0x%04x,%d,%d,0x%04x,0x%04x,0x%04x,0x%04x,%d,%.6f,%d\n",
			r.Metadata.RunID,
			c.ID,
			r.SeedCRC,
			r.Size,
			r.Config.Iterations,
			c.CRCList,
			c.CRCMatrix,
			c.CRCState,
			c.CRCFinal,
			c.Errors,
			c.Elapsed.Seconds(),
			r.TotalErrors,
		)
	}
}

// PrintJSON writes r as indented JSON.
func (h *Harness) PrintJSON(r *Result) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	_, err = fmt.Fprintln(h.config.Output, string(data))
	return err
}

// PrintYAML writes r as YAML.
func (h *Harness) PrintYAML(r *Result) error {
	enc := yaml.NewEncoder(h.config.Output)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return enc.Close()
}

// Print writes r in the given format: text, csv, json or yaml.
func (h *Harness) Print(r *Result, format string) error {
	switch format {
	case "", "text":
		h.PrintResults(r)
		return nil
	case "csv":
		h.PrintCSV(r)
		return nil
	case "json":
		return h.PrintJSON(r)
	case "yaml":
		return h.PrintYAML(r)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// PrintProfiles writes the reference profile table.
func PrintProfiles(w io.Writer, profiles *validate.Profiles) {
	_, _ = fmt.Fprintln(w, "id,seedcrc,crclist,crcmatrix,crcstate,name")
	for _, p := range profiles.All() {
		_, _ = fmt.Fprintf(w, "%d,0x%04x,0x%04x,0x%04x,0x%04x,%s\n",
			p.ID, p.Fingerprint, p.List, p.Matrix, p.State, p.Name)
	}
}
