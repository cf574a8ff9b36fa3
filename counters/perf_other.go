//go:build !linux

package counters

import "errors"

// PerfReader is unavailable outside Linux.
type PerfReader struct{}

// OpenPerf always fails outside Linux.
func OpenPerf() (*PerfReader, error) {
	return nil, errors.New("perf counters are only supported on linux")
}

// ReadCycles returns 0.
func (p *PerfReader) ReadCycles() uint64 { return 0 }

// ReadInstructionsRetired returns 0.
func (p *PerfReader) ReadInstructionsRetired() uint64 { return 0 }

// Close does nothing.
func (p *PerfReader) Close() error { return nil }
