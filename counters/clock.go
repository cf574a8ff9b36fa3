package counters

import (
	"time"

	"github.com/sarchlab/akita/v4/sim"
)

// ClockReader converts elapsed monotonic time into cycles of a nominal
// frequency. It is the portable fallback when no hardware counters are
// reachable, so it reports no retired instructions.
type ClockReader struct {
	freq  sim.Freq
	now   func() time.Time
	start time.Time
}

// ClockOption configures a ClockReader.
type ClockOption func(*ClockReader)

// WithTimeSource replaces time.Now.
func WithTimeSource(now func() time.Time) ClockOption {
	return func(c *ClockReader) {
		c.now = now
	}
}

// NewClockReader creates a ClockReader counting from now. A non-positive
// frequency selects DefaultFrequency.
func NewClockReader(freq sim.Freq, opts ...ClockOption) *ClockReader {
	if freq <= 0 {
		freq = DefaultFrequency
	}

	c := &ClockReader{
		freq: freq,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.start = c.now()

	return c
}

// Frequency returns the nominal frequency.
func (c *ClockReader) Frequency() sim.Freq {
	return c.freq
}

// ReadCycles returns the nominal cycles elapsed since creation.
func (c *ClockReader) ReadCycles() uint64 {
	elapsed := c.now().Sub(c.start)
	if elapsed <= 0 {
		return 0
	}
	return uint64(elapsed.Seconds() * float64(c.freq))
}

// ReadInstructionsRetired returns 0.
func (c *ClockReader) ReadInstructionsRetired() uint64 {
	return 0
}

// Close does nothing.
func (c *ClockReader) Close() error {
	return nil
}
