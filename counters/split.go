package counters

// RegisterPair exposes a 64-bit counter as two 32-bit registers, as found on
// 32-bit cores.
type RegisterPair interface {
	ReadHigh() uint32
	ReadLow() uint32
}

// ReadSplit returns a consistent 64-bit value from a register pair that may
// keep counting between the two halves. The high half is read before and
// after the low half, and the read is retried until both agree, so a carry
// out of the low half can never be combined with a stale high half.
func ReadSplit(r RegisterPair) uint64 {
	for {
		hi := r.ReadHigh()
		lo := r.ReadLow()
		hi2 := r.ReadHigh()

		if hi == hi2 {
			return uint64(hi)<<32 | uint64(lo)
		}
	}
}

// SplitReader is a Reader over two 32-bit register pairs.
type SplitReader struct {
	Cycles       RegisterPair
	Instructions RegisterPair
}

// ReadCycles reads the cycle register pair.
func (s SplitReader) ReadCycles() uint64 {
	return ReadSplit(s.Cycles)
}

// ReadInstructionsRetired reads the instructions-retired register pair.
func (s SplitReader) ReadInstructionsRetired() uint64 {
	return ReadSplit(s.Instructions)
}

// Close does nothing.
func (s SplitReader) Close() error {
	return nil
}
