package memory

import "fmt"

// Method names a block allocation strategy.
type Method string

// Allocation strategies.
const (
	MethodStatic Method = "static"
	MethodHeap   Method = "heap"
	MethodStack  Method = "stack"
)

// Valid reports whether m names a known strategy.
func (m Method) Valid() bool {
	switch m {
	case MethodStatic, MethodHeap, MethodStack:
		return true
	}
	return false
}

// Location returns the report label of the strategy.
func (m Method) Location() string {
	switch m {
	case MethodStatic:
		return "Static"
	case MethodHeap:
		return "Heap"
	case MethodStack:
		return "Stack"
	default:
		return "Unknown"
	}
}

// Allocator acquires one zeroed block per execution context.
type Allocator interface {
	// Acquire returns contexts blocks of size bytes each. Blocks never
	// overlap.
	Acquire(contexts int, size uint32) ([][]byte, error)

	// Release gives the blocks back. Blocks must not be used afterwards.
	Release()

	// Method returns the strategy name.
	Method() Method
}

// NewAllocator creates the allocator for m. The static strategy reserves
// capacity bytes up front.
func NewAllocator(m Method, capacity uint32) (Allocator, error) {
	switch m {
	case MethodStatic:
		return NewStaticAllocator(capacity), nil
	case MethodHeap, "":
		return &HeapAllocator{}, nil
	case MethodStack:
		return &StackAllocator{}, nil
	default:
		return nil, fmt.Errorf("unknown memory method %q", m)
	}
}

// StaticAllocator hands out a single arena reserved once for the lifetime
// of the allocator. It serves exactly one context.
type StaticAllocator struct {
	arena []byte
}

// NewStaticAllocator reserves an arena of capacity bytes.
func NewStaticAllocator(capacity uint32) *StaticAllocator {
	return &StaticAllocator{arena: make([]byte, capacity)}
}

// Acquire returns the arena prefix of size bytes.
func (a *StaticAllocator) Acquire(contexts int, size uint32) ([][]byte, error) {
	if contexts != 1 {
		return nil, fmt.Errorf("static memory supports a single context, got %d", contexts)
	}
	if size > uint32(len(a.arena)) {
		return nil, fmt.Errorf("static arena holds %d bytes, requested %d", len(a.arena), size)
	}

	block := a.arena[:size:size]
	clear(block)

	return [][]byte{block}, nil
}

// Release does nothing; the arena is kept for reuse.
func (a *StaticAllocator) Release() {}

// Method returns MethodStatic.
func (a *StaticAllocator) Method() Method { return MethodStatic }

// HeapAllocator makes one allocation per context.
type HeapAllocator struct {
	blocks [][]byte
}

// Acquire allocates the blocks.
func (a *HeapAllocator) Acquire(contexts int, size uint32) ([][]byte, error) {
	if contexts < 1 {
		return nil, fmt.Errorf("contexts must be > 0, got %d", contexts)
	}

	a.blocks = make([][]byte, contexts)
	for i := range a.blocks {
		a.blocks[i] = make([]byte, size)
	}

	return a.blocks, nil
}

// Release drops the blocks.
func (a *HeapAllocator) Release() {
	a.blocks = nil
}

// Method returns MethodHeap.
func (a *HeapAllocator) Method() Method { return MethodHeap }

// StackAllocator makes one contiguous allocation and carves it into
// consecutive context blocks.
type StackAllocator struct {
	memblock []byte
}

// Acquire allocates contexts*size bytes and splits them.
func (a *StackAllocator) Acquire(contexts int, size uint32) ([][]byte, error) {
	if contexts < 1 {
		return nil, fmt.Errorf("contexts must be > 0, got %d", contexts)
	}

	a.memblock = make([]byte, uint64(contexts)*uint64(size))

	blocks := make([][]byte, contexts)
	for i := range blocks {
		start := uint64(i) * uint64(size)
		end := start + uint64(size)
		blocks[i] = a.memblock[start:end:end]
	}

	return blocks, nil
}

// Release drops the allocation.
func (a *StackAllocator) Release() {
	a.memblock = nil
}

// Method returns MethodStack.
func (a *StackAllocator) Method() Method { return MethodStack }
