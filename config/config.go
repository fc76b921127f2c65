// Package config holds the run configuration of the redistrict CLI.
//
// A Config is read from YAML with Load, then overridden from the process
// environment (optionally seeded from .env files) with ApplyEnv.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/redistrict/gridgraph"
	"github.com/katalvlaran/redistrict/internal/logging"
	"github.com/katalvlaran/redistrict/partition"
	"github.com/katalvlaran/redistrict/source"
)

// Environment variables read by ApplyEnv.
const (
	EnvDistricts   = "REDISTRICT_DISTRICTS"
	EnvCompactness = "REDISTRICT_COMPACTNESS"
	EnvLocality    = "REDISTRICT_LOCALITY"
	EnvLogLevel    = "REDISTRICT_LOG_LEVEL"
	EnvOutput      = "REDISTRICT_OUTPUT"
)

// DefaultDistricts is the district count used when none is configured.
const DefaultDistricts = 7

var (
	// ErrInvalidConfig indicates a configuration that fails Validate.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrNoData indicates a configuration naming neither CSV files nor a grid.
	ErrNoData = errors.New("config: no input data configured")
)

// Config is one CLI run.
type Config struct {
	// Districts is the number of districts to build.
	Districts int `yaml:"districts"`

	// Policy weighs candidates for a single run.
	Policy partition.ScoringPolicy `yaml:"policy"`

	// Sweep lists policies to try side by side. When set, Policy is ignored
	// and the best-balanced plan is reported.
	Sweep []partition.ScoringPolicy `yaml:"sweep,omitempty"`

	// Parallelism caps concurrent sweep runs; 0 means unlimited.
	Parallelism int `yaml:"parallelism"`

	Data    DataConfig    `yaml:"data"`
	Metrics MetricsConfig `yaml:"metrics"`

	// Output is the plan file path; empty writes to stdout.
	Output string `yaml:"output"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel"`
}

// DataConfig names where tracts come from: a CSV file pair or an inline
// population grid.
type DataConfig struct {
	Tracts string `yaml:"tracts"`
	Edges  string `yaml:"edges"`

	// Grid is a population grid; 0 cells are water.
	Grid [][]int `yaml:"grid,omitempty"`

	// Conn8 selects diagonal adjacency for Grid.
	Conn8 bool `yaml:"conn8"`

	// Bridge joins grid islands with cells of this population; 0 disables it.
	Bridge int `yaml:"bridge"`
}

// MetricsConfig toggles the Prometheus collector.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`

	// Textfile receives the collected metrics in the node-exporter textfile
	// format after the run; empty skips the dump.
	Textfile string `yaml:"textfile"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Districts: DefaultDistricts,
		Policy:    partition.DefaultPolicy(),
		LogLevel:  "info",
		Metrics:   MetricsConfig{Namespace: "redistrict"},
	}
}

// Load reads a YAML file on top of Default and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyEnv loads the given .env files (".env" when none are named, ignoring
// its absence) and overrides fields from the REDISTRICT_* variables.
// Variables already present in the environment win over .env entries.
func (c *Config) ApplyEnv(files ...string) error {
	if len(files) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("config: load env: %w", err)
	}

	if v, ok := lookup(EnvDistricts); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvDistricts, err)
		}
		c.Districts = n
	}
	if v, ok := lookup(EnvCompactness); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvCompactness, err)
		}
		c.Policy.Compactness = f
	}
	if v, ok := lookup(EnvLocality); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvLocality, err)
		}
		c.Policy.Locality = f
	}
	if v, ok := lookup(EnvLogLevel); ok {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvOutput); ok {
		c.Output = v
	}

	return c.Validate()
}

func lookup(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))

	return v, v != ""
}

// Validate reports ErrInvalidConfig for unusable settings.
func (c *Config) Validate() error {
	if c.Districts < 1 {
		return fmt.Errorf("%w: districts must be >= 1, got %d", ErrInvalidConfig, c.Districts)
	}
	if err := c.Policy.Validate(); err != nil {
		return fmt.Errorf("%w: policy: %v", ErrInvalidConfig, err)
	}
	for i, sp := range c.Sweep {
		if err := sp.Validate(); err != nil {
			return fmt.Errorf("%w: sweep[%d]: %v", ErrInvalidConfig, i, err)
		}
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("%w: parallelism must be >= 0", ErrInvalidConfig)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if (c.Data.Tracts == "") != (c.Data.Edges == "") {
		return fmt.Errorf("%w: data.tracts and data.edges go together", ErrInvalidConfig)
	}
	if c.Data.Bridge < 0 {
		return fmt.Errorf("%w: data.bridge must be >= 0", ErrInvalidConfig)
	}

	return nil
}

var (
	datasetsOnce sync.Once
	datasets     *source.Cache
)

// csvDatasets is the process-wide cache of parsed CSV inputs.
func csvDatasets() *source.Cache {
	datasetsOnce.Do(func() {
		// NewCache only fails for a non-positive size.
		datasets, _ = source.NewCache(source.DefaultCacheSize)
	})

	return datasets
}

// Source builds the configured data source. CSV files take precedence
// over an inline grid; a CSV pair is parsed once per process and served
// from a cache keyed by both paths afterwards.
func (d DataConfig) Source() (source.Source, error) {
	if d.Tracts != "" {
		return csvDatasets().Wrap(d.Tracts+"|"+d.Edges, source.NewCSV(d.Tracts, d.Edges)), nil
	}
	if len(d.Grid) == 0 {
		return nil, ErrNoData
	}

	conn := gridgraph.Conn4
	if d.Conn8 {
		conn = gridgraph.Conn8
	}
	gg, err := gridgraph.From2D(d.Grid, conn)
	if err != nil {
		return nil, fmt.Errorf("config: grid: %w", err)
	}
	if d.Bridge > 0 {
		if gg, _, err = gg.Bridge(d.Bridge); err != nil {
			return nil, fmt.Errorf("config: bridge: %w", err)
		}
	}

	return source.NewGrid(gg), nil
}
