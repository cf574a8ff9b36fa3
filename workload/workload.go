// Package workload provides the three CoreMark kernels driven by the
// benchmark: linked-list processing, matrix arithmetic and a string-scanning
// state machine.
//
// The list kernel is the driver. Its sort step classifies every list item
// and, depending on the item's encoded operation, runs the matrix or the
// state kernel and caches the result in the item. The matrix and state
// checksums therefore only exist as a side effect of list passes.
package workload

import (
	"math/bits"

	"github.com/sarchlab/markbench/crc"
)

// Algorithm identifies one of the kernels.
type Algorithm int

// The kernels, in memory-layout order.
const (
	List Algorithm = iota
	Matrix
	State
	NumAlgorithms
)

var algorithmNames = [NumAlgorithms]string{"list", "matrix", "state"}

// String returns the lower-case kernel name.
func (a Algorithm) String() string {
	if a < 0 || a >= NumAlgorithms {
		return "unknown"
	}
	return algorithmNames[a]
}

// Bit returns the selection bit of the kernel.
func (a Algorithm) Bit() Mask {
	return 1 << uint(a)
}

// Mask selects kernels: bit 0 list, bit 1 matrix, bit 2 state.
type Mask uint32

// AllAlgorithms enables every kernel.
const AllAlgorithms Mask = 1<<NumAlgorithms - 1

// Has reports whether a is enabled.
func (m Mask) Has(a Algorithm) bool {
	return m&a.Bit() != 0
}

// Count returns the number of enabled kernels. Unknown bits are ignored.
func (m Mask) Count() int {
	return bits.OnesCount32(uint32(m & AllAlgorithms))
}

// Algorithms lists the enabled kernels in layout order.
func (m Mask) Algorithms() []Algorithm {
	algs := make([]Algorithm, 0, NumAlgorithms)
	for a := List; a < NumAlgorithms; a++ {
		if m.Has(a) {
			algs = append(algs, a)
		}
	}
	return algs
}

// Seeds are the three workload seeds.
type Seeds struct {
	Seed1 int16
	Seed2 int16
	Seed3 int16
}

// Checksums is the running checksum state of one execution context. The
// list kernel folds every computed kernel result into CRC and records the
// first non-zero matrix and state results.
type Checksums struct {
	CRC    uint16
	List   uint16
	Matrix uint16
	State  uint16
}

// Params describes one workload instance.
type Params struct {
	Seeds Seeds
	Execs Mask

	// Size is the per-kernel memory budget in bytes.
	Size uint32

	// Regions holds the memory region of each enabled kernel. The state
	// kernel works in place in its region when the region covers Size bytes.
	Regions [NumAlgorithms][]byte
}

// Instance is the kernel set of one execution context.
type Instance struct {
	seeds Seeds
	execs Mask

	list *linkedList
	head int32

	mat   *matrix
	state []byte
}

// New initializes the enabled kernels.
func New(p Params) *Instance {
	w := &Instance{
		seeds: p.Seeds,
		execs: p.Execs,
		head:  nilNode,
	}

	if p.Execs.Has(List) {
		w.list, w.head = newList(p.Size, p.Seeds.Seed1)
	}

	if p.Execs.Has(Matrix) {
		w.mat = newMatrix(p.Size, int32(p.Seeds.Seed1)|int32(p.Seeds.Seed2)<<16)
	}

	if p.Execs.Has(State) {
		region := p.Regions[State]
		if uint32(len(region)) < p.Size {
			region = make([]byte, p.Size)
		}
		w.state = region[:p.Size]
		initState(w.state, p.Seeds.Seed1)
	}

	return w
}

// Execs returns the enabled kernels.
func (w *Instance) Execs() Mask {
	return w.execs
}

// ListPass runs one list pass. A positive direction searches by index and
// sorts by content before checksumming; a negative one searches by content.
// It returns the pass checksum. Without the list kernel it does nothing and
// returns 0.
func (w *Instance) ListPass(direction int16, sums *Checksums) uint16 {
	if w.list == nil {
		return 0
	}
	return w.benchList(direction, sums)
}

// calc evaluates the operation encoded in a list item, running the matrix
// or state kernel when the result is not cached yet.
//
// Bit 7 marks a cached result in bits 0-6. Otherwise bits 0-2 select the
// operation and bits 3-6 its parameter.
func (w *Instance) calc(p *int16, sums *Checksums) int16 {
	data := *p
	if (data>>7)&1 != 0 {
		return data & 0x007f
	}

	flag := data & 0x7
	dtype := (data >> 3) & 0xf
	dtype |= dtype << 4

	var retval int16
	switch {
	case flag == 0 && w.state != nil:
		if dtype < 0x22 {
			dtype = 0x22
		}
		retval = int16(benchState(w.state, w.seeds.Seed1, w.seeds.Seed2, dtype, sums.CRC))
		if sums.State == 0 {
			sums.State = uint16(retval)
		}
	case flag == 1 && w.mat != nil:
		retval = int16(w.mat.bench(dtype, sums.CRC))
		if sums.Matrix == 0 {
			sums.Matrix = uint16(retval)
		}
	default:
		retval = data
	}

	sums.CRC = crc.U16(uint16(retval), sums.CRC)
	retval &= 0x007f
	*p = int16(uint16(data)&0xff00 | 0x0080 | uint16(retval))

	return retval
}
