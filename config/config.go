// Package config resolves the run configuration of a benchmark run: the
// seed aliases, the kernel selection and the file and environment layer.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/markbench/core"
	"github.com/sarchlab/markbench/counters"
	"github.com/sarchlab/markbench/memory"
	"github.com/sarchlab/markbench/workload"
)

// EnvPrefix prefixes the environment variables that override config keys,
// e.g. MARKBENCH_ITERATIONS.
const EnvPrefix = "MARKBENCH"

// Default values.
const (
	DefaultTotalSize   = 2000
	DefaultMinDuration = 10 * time.Second

	// SimulationIterations is the fixed iteration count of simulation runs.
	SimulationIterations = 2
)

// RunConfig holds the parameters of one benchmark run.
type RunConfig struct {
	// Seed1, Seed2 and Seed3 are the workload seeds. The (0, 0, 0) and
	// (1, 0, 0) triples are aliases resolved by Resolve.
	Seed1 int16 `mapstructure:"seed1" yaml:"seed1" json:"seed1"`
	Seed2 int16 `mapstructure:"seed2" yaml:"seed2" json:"seed2"`
	Seed3 int16 `mapstructure:"seed3" yaml:"seed3" json:"seed3"`

	// Iterations is the number of workload iterations per context.
	// 0 requests calibration.
	Iterations uint32 `mapstructure:"iterations" yaml:"iterations" json:"iterations"`

	// Execs selects the kernels. 0 selects all of them.
	Execs workload.Mask `mapstructure:"execs" yaml:"execs" json:"execs"`

	// TotalSize is the memory budget of one context in bytes.
	// Default: 2000.
	TotalSize uint32 `mapstructure:"size" yaml:"size" json:"size"`

	// Contexts is the number of parallel execution contexts. 0 uses the
	// number of logical cores.
	Contexts int `mapstructure:"contexts" yaml:"contexts" json:"contexts"`

	// Memory is the block allocation strategy. Default: heap.
	Memory memory.Method `mapstructure:"memory" yaml:"memory" json:"memory"`

	// Counters is the counter source. Default: clock.
	Counters counters.Kind `mapstructure:"counters" yaml:"counters" json:"counters"`

	// FrequencyMHz is the nominal frequency of the clock counter source.
	// 0 uses the default.
	FrequencyMHz float64 `mapstructure:"frequency_mhz" yaml:"frequency_mhz" json:"frequency_mhz"`

	// MinDuration is the shortest measured phase that produces a valid
	// result. Default: 10s.
	MinDuration time.Duration `mapstructure:"min_duration" yaml:"min_duration" json:"min_duration"`

	// Simulation runs a fixed number of iterations and waives the minimum
	// duration rule.
	Simulation bool `mapstructure:"simulation" yaml:"simulation" json:"simulation"`
}

// DefaultRunConfig returns a RunConfig that runs the validation seeds with
// calibrated iterations.
func DefaultRunConfig() *RunConfig {
	return &RunConfig{
		Execs:       workload.AllAlgorithms,
		TotalSize:   DefaultTotalSize,
		Memory:      memory.MethodHeap,
		Counters:    counters.KindClock,
		MinDuration: DefaultMinDuration,
	}
}

// Seeds returns the seed triple.
func (c *RunConfig) Seeds() workload.Seeds {
	return workload.Seeds{Seed1: c.Seed1, Seed2: c.Seed2, Seed3: c.Seed3}
}

// Validate checks the fields that cannot be resolved to a default.
func (c *RunConfig) Validate() error {
	if c.Contexts < 0 || c.Contexts > core.MaxContexts {
		return fmt.Errorf("contexts must be in [0, %d], got %d",
			core.MaxContexts, c.Contexts)
	}

	n := ResolveExecs(c.Execs).Count()
	if c.TotalSize < uint32(n) {
		return fmt.Errorf("size must be >= %d for the selected kernels, got %d",
			n, c.TotalSize)
	}

	if !c.Memory.Valid() {
		return fmt.Errorf("unknown memory method %q", c.Memory)
	}
	if c.Memory == memory.MethodStatic && c.Contexts > 1 {
		return fmt.Errorf("static memory supports a single context, got %d", c.Contexts)
	}

	if !c.Counters.Valid() {
		return fmt.Errorf("unknown counter source %q", c.Counters)
	}
	if c.FrequencyMHz < 0 {
		return fmt.Errorf("frequency_mhz must be >= 0")
	}
	if c.MinDuration < 0 {
		return fmt.Errorf("min_duration must be >= 0")
	}

	return nil
}

// Clone returns a copy of the RunConfig.
func (c *RunConfig) Clone() *RunConfig {
	clone := *c
	return &clone
}

// SetDefaults registers the RunConfig defaults on v.
func SetDefaults(v *viper.Viper) {
	d := DefaultRunConfig()

	v.SetDefault("seed1", d.Seed1)
	v.SetDefault("seed2", d.Seed2)
	v.SetDefault("seed3", d.Seed3)
	v.SetDefault("iterations", d.Iterations)
	v.SetDefault("execs", uint32(d.Execs))
	v.SetDefault("size", d.TotalSize)
	v.SetDefault("contexts", d.Contexts)
	v.SetDefault("memory", string(d.Memory))
	v.SetDefault("counters", string(d.Counters))
	v.SetDefault("frequency_mhz", d.FrequencyMHz)
	v.SetDefault("min_duration", d.MinDuration.String())
	v.SetDefault("simulation", d.Simulation)
}

// NewViper returns a viper instance with the RunConfig defaults and the
// MARKBENCH_ environment overrides registered.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return v
}

// FromViper decodes a RunConfig from v.
func FromViper(v *viper.Viper) (*RunConfig, error) {
	c := DefaultRunConfig()
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("failed to decode run config: %w", err)
	}

	return c, nil
}

// Load reads a RunConfig from a YAML, JSON or TOML file. Environment
// variables override file values and file values override defaults.
func Load(path string) (*RunConfig, error) {
	v := NewViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read run config file: %w", err)
	}

	return FromViper(v)
}

// Save writes the RunConfig to a YAML file.
func (c *RunConfig) Save(path string) error {
	data, err := yaml.Marshal(c.document())
	if err != nil {
		return fmt.Errorf("failed to serialize run config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run config file: %w", err)
	}

	return nil
}

// document is the file form of a RunConfig. Durations are written as
// strings so that Load can read them back.
type document struct {
	Seed1        int16   `yaml:"seed1"`
	Seed2        int16   `yaml:"seed2"`
	Seed3        int16   `yaml:"seed3"`
	Iterations   uint32  `yaml:"iterations"`
	Execs        uint32  `yaml:"execs"`
	Size         uint32  `yaml:"size"`
	Contexts     int     `yaml:"contexts"`
	Memory       string  `yaml:"memory"`
	Counters     string  `yaml:"counters"`
	FrequencyMHz float64 `yaml:"frequency_mhz"`
	MinDuration  string  `yaml:"min_duration"`
	Simulation   bool    `yaml:"simulation"`
}

func (c *RunConfig) document() document {
	return document{
		Seed1:        c.Seed1,
		Seed2:        c.Seed2,
		Seed3:        c.Seed3,
		Iterations:   c.Iterations,
		Execs:        uint32(c.Execs),
		Size:         c.TotalSize,
		Contexts:     c.Contexts,
		Memory:       string(c.Memory),
		Counters:     string(c.Counters),
		FrequencyMHz: c.FrequencyMHz,
		MinDuration:  c.MinDuration.String(),
		Simulation:   c.Simulation,
	}
}
