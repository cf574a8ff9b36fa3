package metrics

// IPCStatus grades the instructions-per-cycle figure.
type IPCStatus int

// IPC grades, worst first.
const (
	IPCUnknown IPCStatus = iota
	IPCNeedsOptimization
	IPCFair
	IPCGood
	IPCExcellent
)

func (s IPCStatus) String() string {
	switch s {
	case IPCExcellent:
		return "EXCELLENT (>0.8, approaching ideal)"
	case IPCGood:
		return "GOOD (0.5-0.8, moderate pipeline efficiency)"
	case IPCFair:
		return "FAIR (0.3-0.5, room for improvement)"
	case IPCNeedsOptimization:
		return "NEEDS OPTIMIZATION (<0.3, significant stalls)"
	default:
		return "UNKNOWN (counters invalid)"
	}
}

// Grade returns the IPC grade of s.
func (s Snapshot) Grade() IPCStatus {
	if !s.IPC.OK {
		return IPCUnknown
	}

	switch ipc := s.IPC.Value; {
	case ipc > 0.8:
		return IPCExcellent
	case ipc > 0.5:
		return IPCGood
	case ipc > 0.3:
		return IPCFair
	default:
		return IPCNeedsOptimization
	}
}

// Suggestions returns tuning hints for a low IPC.
func (s Snapshot) Suggestions() []string {
	if !s.IPC.OK {
		return nil
	}

	var out []string
	if s.IPC.Value < 0.5 {
		out = append(out,
			"Consider optimizing data hazards and control hazards",
			"Check for load-use delays and branch prediction misses",
			"Implement forwarding paths if not present",
		)
	}
	if s.IPC.Value < 0.3 {
		out = append(out,
			"Pipeline may have significant structural hazards",
			"Consider adding more pipeline stages or improving hazard handling",
		)
	}
	return out
}
