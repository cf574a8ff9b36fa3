// Package core provides the execution contexts that run the workload and
// the parallel dispatch that drives them.
package core

import (
	"time"

	"github.com/sarchlab/markbench/crc"
	"github.com/sarchlab/markbench/workload"
)

// MaxContexts is the largest number of parallel execution contexts.
const MaxContexts = 64

// Workload is the kernel set driven by one execution context.
type Workload interface {
	// ListPass runs one list pass in the given direction (1 or -1). The
	// matrix and state checksums are folded into sums as a side effect.
	// It returns the pass checksum.
	ListPass(direction int16, sums *workload.Checksums) uint16
}

// Result holds the outcome of one execution context.
type Result struct {
	// Params is a copy of the workload parameters of the context.
	Params workload.Params

	// Iterations is the number of iterations run.
	Iterations uint32

	// CRC is the running checksum over all passes.
	CRC uint16
	// CRCList is the running checksum after the first iteration.
	CRCList uint16
	// CRCMatrix is the first non-zero matrix result.
	CRCMatrix uint16
	// CRCState is the first non-zero state result.
	CRCState uint16

	// Errors counts validation failures of this context.
	Errors int

	// Done is set once the context has finished.
	Done bool

	// Elapsed is the wall time of the context's run.
	Elapsed time.Duration
}

// Checksum returns the recorded checksum of the given kernel.
func (r *Result) Checksum(a workload.Algorithm) uint16 {
	switch a {
	case workload.List:
		return r.CRCList
	case workload.Matrix:
		return r.CRCMatrix
	case workload.State:
		return r.CRCState
	default:
		return 0
	}
}

// Context is one execution context: a workload instance with its own
// memory and result. A context is used by a single goroutine.
type Context struct {
	ID       int
	Workload Workload
	Result   Result
}

// NewContext creates a context running w with the given parameters.
func NewContext(id int, w Workload, params workload.Params, iterations uint32) *Context {
	return &Context{
		ID:       id,
		Workload: w,
		Result: Result{
			Params:     params,
			Iterations: iterations,
		},
	}
}

// SetIterations changes the iteration count of the next run.
func (c *Context) SetIterations(n uint32) {
	c.Result.Iterations = n
}

// Run executes the configured number of iterations. Every iteration runs
// a forward and a backward list pass and folds both pass checksums into
// CRC.
func (c *Context) Run() {
	r := &c.Result
	r.Done = false

	var sums workload.Checksums

	start := time.Now()
	for i := uint32(0); i < r.Iterations; i++ {
		sums.CRC = crc.U16(c.Workload.ListPass(1, &sums), sums.CRC)
		sums.CRC = crc.U16(c.Workload.ListPass(-1, &sums), sums.CRC)
		if i == 0 {
			sums.List = sums.CRC
		}
	}
	r.Elapsed = time.Since(start)

	r.CRC = sums.CRC
	r.CRCList = sums.List
	r.CRCMatrix = sums.Matrix
	r.CRCState = sums.State
	r.Done = true
}
