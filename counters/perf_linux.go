//go:build linux

package counters

import (
	"encoding/binary"
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
)

// PerfReader sums the user-space cycle and instruction counters of every
// CPU. Counting system wide covers every thread the Go scheduler may run the
// workload on; it needs perf_event_paranoid <= 0 or CAP_PERFMON.
type PerfReader struct {
	cycles       []int
	instructions []int
}

// OpenPerf opens one cycle and one instruction counter per CPU.
func OpenPerf() (*PerfReader, error) {
	p := &PerfReader{}

	for cpu := 0; cpu < runtime.NumCPU(); cpu++ {
		fd, err := openPerfEvent(unix.PERF_COUNT_HW_CPU_CYCLES, cpu)
		if err != nil {
			_ = p.Close()
			return nil, err
		}
		p.cycles = append(p.cycles, fd)

		fd, err = openPerfEvent(unix.PERF_COUNT_HW_INSTRUCTIONS, cpu)
		if err != nil {
			_ = p.Close()
			return nil, err
		}
		p.instructions = append(p.instructions, fd)
	}

	return p, nil
}

func openPerfEvent(config uint64, cpu int) (int, error) {
	attr := unix.PerfEventAttr{
		Type:   unix.PERF_TYPE_HARDWARE,
		Config: config,
		Bits:   unix.PerfBitExcludeKernel | unix.PerfBitExcludeHv,
	}
	attr.Size = uint32(unsafe.Sizeof(attr))

	fd, err := unix.PerfEventOpen(&attr, -1, cpu, -1, unix.PERF_FLAG_FD_CLOEXEC)
	if err != nil {
		return -1, fmt.Errorf("failed to open perf event %d on cpu %d: %w", config, cpu, err)
	}

	return fd, nil
}

func sumCounters(fds []int) uint64 {
	var total uint64
	var buf [8]byte

	for _, fd := range fds {
		n, err := unix.Read(fd, buf[:])
		if err != nil || n != len(buf) {
			continue
		}
		total += binary.NativeEndian.Uint64(buf[:])
	}

	return total
}

// ReadCycles returns the summed cycle counters.
func (p *PerfReader) ReadCycles() uint64 {
	return sumCounters(p.cycles)
}

// ReadInstructionsRetired returns the summed instruction counters.
func (p *PerfReader) ReadInstructionsRetired() uint64 {
	return sumCounters(p.instructions)
}

// Close releases all counters.
func (p *PerfReader) Close() error {
	var errs []error
	for _, fd := range append(p.cycles, p.instructions...) {
		if err := unix.Close(fd); err != nil {
			errs = append(errs, err)
		}
	}
	p.cycles, p.instructions = nil, nil

	return errors.Join(errs...)
}
