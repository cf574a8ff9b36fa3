// Package memory divides the benchmark memory budget between kernels and
// execution contexts.
package memory

import "github.com/sarchlab/markbench/workload"

// Region is one kernel's share of a context block.
type Region struct {
	Algorithm workload.Algorithm
	Offset    uint32
	Size      uint32
}

// End returns the offset just past the region.
func (r Region) End() uint32 {
	return r.Offset + r.Size
}

// Layout places the enabled kernels inside one context block. Every
// context uses the same layout over its own block.
type Layout struct {
	// TotalSize is the budget of one context block.
	TotalSize uint32

	// PerAlgorithm is the size of every region.
	PerAlgorithm uint32

	// Regions holds the enabled kernels in layout order.
	Regions []Region
}

// Partition splits total evenly between the kernels enabled in execs and
// lays their regions out back to back, skipping disabled kernels. Any
// remainder of the division stays unused at the end of the block.
//
// The caller must ensure total is at least the number of enabled kernels.
func Partition(total uint32, execs workload.Mask) Layout {
	l := Layout{TotalSize: total}

	n := execs.Count()
	if n == 0 {
		return l
	}

	l.PerAlgorithm = total / uint32(n)

	var offset uint32
	for _, a := range execs.Algorithms() {
		l.Regions = append(l.Regions, Region{
			Algorithm: a,
			Offset:    offset,
			Size:      l.PerAlgorithm,
		})
		offset += l.PerAlgorithm
	}

	return l
}

// Used returns the number of bytes covered by regions.
func (l Layout) Used() uint32 {
	return l.PerAlgorithm * uint32(len(l.Regions))
}

// Carve returns the region slices of block, indexed by kernel. Disabled
// kernels get nil. Each slice is capped at its region end, so appending to
// one can never write into a neighbour.
func (l Layout) Carve(block []byte) [workload.NumAlgorithms][]byte {
	var out [workload.NumAlgorithms][]byte
	for _, r := range l.Regions {
		out[r.Algorithm] = block[r.Offset:r.End():r.End()]
	}
	return out
}
