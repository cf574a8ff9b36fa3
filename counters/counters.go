// Package counters provides the two monotonic hardware counters the
// benchmark brackets its measured phase with: elapsed cycles and
// instructions retired.
package counters

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
)

// Reader reads the cycle and instructions-retired counters. Both values must
// be monotonic for the lifetime of one run.
type Reader interface {
	ReadCycles() uint64
	ReadInstructionsRetired() uint64
}

// Source is a Reader holding resources that must be released.
type Source interface {
	Reader
	Close() error
}

// Kind names a counter source.
type Kind string

// Counter sources.
const (
	// KindClock derives cycles from the monotonic clock and a nominal
	// frequency. It has no instruction counter.
	KindClock Kind = "clock"

	// KindPerf uses the Linux perf_event cycle and instruction counters.
	KindPerf Kind = "perf"

	// KindNone reads zero from both counters.
	KindNone Kind = "none"
)

// Valid reports whether k names a known source.
func (k Kind) Valid() bool {
	switch k {
	case KindClock, KindPerf, KindNone:
		return true
	}
	return false
}

// DefaultFrequency is the nominal frequency of the clock source.
const DefaultFrequency = 1 * sim.GHz

// Open creates the counter source of the given kind. freq is used only by
// the clock source.
func Open(kind Kind, freq sim.Freq) (Source, error) {
	switch kind {
	case KindClock, "":
		return NewClockReader(freq), nil
	case KindPerf:
		p, err := OpenPerf()
		if err != nil {
			return nil, err
		}
		return p, nil
	case KindNone:
		return None{}, nil
	default:
		return nil, fmt.Errorf("unknown counter source %q", kind)
	}
}

// Snapshot is one reading of both counters.
type Snapshot struct {
	Cycles       uint64 `json:"cycles" yaml:"cycles"`
	Instructions uint64 `json:"instructions" yaml:"instructions"`
}

// Read takes a snapshot of r, cycles first.
func Read(r Reader) Snapshot {
	return Snapshot{
		Cycles:       r.ReadCycles(),
		Instructions: r.ReadInstructionsRetired(),
	}
}

// Since returns the counter deltas from start to s.
func (s Snapshot) Since(start Snapshot) Snapshot {
	return Snapshot{
		Cycles:       s.Cycles - start.Cycles,
		Instructions: s.Instructions - start.Instructions,
	}
}

// Valid reports whether both counters advanced.
func (s Snapshot) Valid() bool {
	return s.Cycles > 0 && s.Instructions > 0
}

// None is a source without counters.
type None struct{}

// ReadCycles always returns 0.
func (None) ReadCycles() uint64 { return 0 }

// ReadInstructionsRetired always returns 0.
func (None) ReadInstructionsRetired() uint64 { return 0 }

// Close does nothing.
func (None) Close() error { return nil }
