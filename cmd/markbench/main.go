// Package main provides the markbench command line.
//
// Usage:
//
//	markbench [flags] [seed1 seed2 seed3 iterations execs size]
//
// Seeds (0, 0, 0) select the validation run and (1, 0, 0) the performance
// run. An iteration count of 0 calibrates the run length; an execs mask of
// 0 enables all kernels.
package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/sarchlab/markbench/config"
	"github.com/sarchlab/markbench/harness"
	"github.com/sarchlab/markbench/metrics"
	"github.com/sarchlab/markbench/validate"
)

type options struct {
	configPath   string
	format       string
	logLevel     string
	promTextfile string
	cpuProfile   string
	memProfile   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	v := config.NewViper()

	cmd := &cobra.Command{
		Use:   "markbench [seed1 seed2 seed3 iterations execs size]",
		Short: "Run the CoreMark workload and validate its checksums",
		Long: `markbench runs the list, matrix and state kernels in parallel
execution contexts, validates the checksums against the reference profiles
and reports throughput and counter-derived metrics.

Positional values accept decimal, 0x hexadecimal and K/M suffixes.`,
		Args:          cobra.MaximumNArgs(6),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBenchmark(cmd, v, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "run configuration file (yaml, json or toml)")
	f.StringVar(&opts.format, "format", "text", "report format: text, csv, json or yaml")
	f.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	f.StringVar(&opts.promTextfile, "prom-textfile", "", "write metrics to a node exporter textfile")
	f.StringVar(&opts.cpuProfile, "cpuprofile", "", "write cpu profile to file")
	f.StringVar(&opts.memProfile, "memprofile", "", "write memory profile to file")

	f.Uint32("size", config.DefaultTotalSize, "memory budget per context in bytes")
	f.Int("contexts", 0, "parallel execution contexts (0 = logical cores)")
	f.String("memory", "heap", "memory method: static, heap or stack")
	f.String("counters", "clock", "counter source: clock, perf or none")
	f.Float64("frequency-mhz", 0, "nominal frequency of the clock counter source")
	f.Duration("min-duration", config.DefaultMinDuration, "shortest valid measured run")
	f.Bool("simulation", false, "run 2 iterations without the minimum duration rule")

	for key, flag := range map[string]string{
		"size":          "size",
		"contexts":      "contexts",
		"memory":        "memory",
		"counters":      "counters",
		"frequency_mhz": "frequency-mhz",
		"min_duration":  "min-duration",
		"simulation":    "simulation",
	} {
		_ = v.BindPFlag(key, f.Lookup(flag))
	}

	cmd.AddCommand(newProfilesCmd(), newFingerprintCmd())

	return cmd
}

func runBenchmark(cmd *cobra.Command, v *viper.Viper, opts *options, args []string) error {
	logger, err := newLogger(opts.logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if opts.configPath != "" {
		v.SetConfigFile(opts.configPath)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read run config file: %w", err)
		}
		logger.Info("loaded config", zap.String("path", v.ConfigFileUsed()))
	}
	applyArgs(v, args)

	run, err := config.FromViper(v)
	if err != nil {
		return err
	}

	stopCPU, err := startCPUProfile(opts.cpuProfile)
	if err != nil {
		return err
	}
	defer stopCPU()

	h := harness.NewHarness(harness.Config{
		Run:      run,
		Profiles: validate.DefaultProfiles(),
		Flags:    buildFlags(),
		Output:   cmd.OutOrStdout(),
		Logger:   logger,
	})

	result, err := h.Run()
	if err != nil {
		return err
	}

	if err := h.Print(result, opts.format); err != nil {
		return err
	}

	if opts.promTextfile != "" {
		info := metrics.RunInfo{
			RunID:       result.Metadata.RunID,
			Profile:     result.Profile.String(),
			TotalErrors: result.TotalErrors,
		}
		if err := metrics.WriteTextfile(opts.promTextfile, info, result.Metrics); err != nil {
			return err
		}
	}

	return writeMemProfile(opts.memProfile)
}

// applyArgs sets the positional run values in CoreMark order.
func applyArgs(v *viper.Viper, args []string) {
	keys := []string{"seed1", "seed2", "seed3", "iterations", "execs", "size"}
	for i, arg := range args {
		n := config.ParseValue(arg)
		switch keys[i] {
		case "seed1", "seed2", "seed3":
			v.Set(keys[i], int16(n))
		case "size":
			if n != 0 {
				v.Set(keys[i], uint32(n))
			}
		default:
			v.Set(keys[i], uint32(n))
		}
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	cfg.Encoding = "console"

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// buildFlags describes the build settings recorded in the binary.
func buildFlags() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}

	var parts []string
	for _, s := range info.Settings {
		switch s.Key {
		case "-gcflags", "-ldflags", "-tags", "GOARCH", "GOAMD64", "GOARM64", "CGO_ENABLED":
			parts = append(parts, s.Key+"="+s.Value)
		}
	}
	return strings.Join(parts, " ")
}
