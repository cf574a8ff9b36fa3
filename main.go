// Package main provides the entry point for markbench.
// markbench runs the CoreMark workload in parallel execution contexts and
// validates its checksums.
//
// For the full CLI, use: go run ./cmd/markbench
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("markbench - CoreMark orchestration and validation")
	fmt.Println("")
	fmt.Println("Usage: markbench [flags] [seed1 seed2 seed3 iterations execs size]")
	fmt.Println("")
	fmt.Println("Flags:")
	fmt.Println("  --size         Memory budget per context in bytes")
	fmt.Println("  --contexts     Parallel execution contexts (0 = logical cores)")
	fmt.Println("  --memory       Memory method: static, heap or stack")
	fmt.Println("  --counters     Counter source: clock, perf or none")
	fmt.Println("  --format       Report format: text, csv, json or yaml")
	fmt.Println("  --simulation   Run 2 iterations without the minimum duration rule")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/markbench --help' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/markbench' instead.")
	}
}
