package validate

import (
	"fmt"

	"github.com/sarchlab/markbench/core"
	"github.com/sarchlab/markbench/workload"
)

// Indeterminate is the error total of a run that matched no profile.
const Indeterminate = -1

// Mismatch records one kernel checksum that differs from its profile.
type Mismatch struct {
	Context   int                `json:"context" yaml:"context"`
	Algorithm workload.Algorithm `json:"-" yaml:"-"`
	Kernel    string             `json:"kernel" yaml:"kernel"`
	Actual    uint16             `json:"actual" yaml:"actual"`
	Expected  uint16             `json:"expected" yaml:"expected"`
}

func (m Mismatch) String() string {
	return fmt.Sprintf("[%d]ERROR! %s crc 0x%04x - should be 0x%04x",
		m.Context, m.Algorithm, m.Actual, m.Expected)
}

// Report is the outcome of validating one run.
type Report struct {
	Fingerprint uint16

	// Profile is the matched reference profile, nil when indeterminate.
	Profile *Profile

	Mismatches []Mismatch

	// TotalErrors is the number of mismatches, or Indeterminate.
	TotalErrors int
}

// Indeterminate reports whether the run matched no profile.
func (r *Report) Indeterminate() bool {
	return r.Profile == nil
}

// KnownID returns the matched profile id, or -1.
func (r *Report) KnownID() int {
	if r.Profile == nil {
		return -1
	}
	return r.Profile.ID
}

// Engine validates run results against a profile table.
type Engine struct {
	profiles *Profiles
}

// NewEngine creates an engine over the given table.
func NewEngine(profiles *Profiles) *Engine {
	return &Engine{profiles: profiles}
}

// Validate looks up the run's fingerprint and compares every enabled
// kernel checksum of every context. Each mismatch is counted on its
// context. The seeds, size and kernel selection are taken from the first
// result; all contexts of a run share them.
func (e *Engine) Validate(results []*core.Result) Report {
	if len(results) == 0 {
		return Report{TotalErrors: Indeterminate}
	}

	params := results[0].Params
	r := Report{Fingerprint: Fingerprint(params.Seeds, params.Size)}

	profile, ok := e.profiles.Lookup(r.Fingerprint)
	if !ok {
		r.TotalErrors = Indeterminate
		return r
	}
	r.Profile = profile

	for i, res := range results {
		res.Errors = 0
		for _, a := range res.Params.Execs.Algorithms() {
			actual := res.Checksum(a)
			expected := profile.Expected(a)
			if actual == expected {
				continue
			}

			res.Errors++
			r.Mismatches = append(r.Mismatches, Mismatch{
				Context:   i,
				Algorithm: a,
				Kernel:    a.String(),
				Actual:    actual,
				Expected:  expected,
			})
		}
		r.TotalErrors += res.Errors
	}

	return r
}
