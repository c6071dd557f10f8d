// Package bench is the workload-generation and measurement core. It drives
// mixed read/write traffic against a primitive backend with a fixed number
// of concurrent workers and reports throughput and mean latency per sample
// window.
package bench

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the benchmark parameters. It is built once at startup and
// never mutated afterward.
type Config struct {
	// Concurrency is the number of worker goroutines issuing operations.
	Concurrency int
	// WriteRatio is the target fraction of write-class operations, in [0,1].
	WriteRatio float64
	// SampleInterval is the length of one reporting window.
	SampleInterval time.Duration
	// NumKeys is the size of the seeded key/element universe.
	NumKeys int
	// SeedConcurrency bounds the parallelism of the seeding pass,
	// independent of Concurrency.
	SeedConcurrency int
}

// DefaultConfig returns the default benchmark parameters.
func DefaultConfig() Config {
	return Config{
		Concurrency:     100,
		WriteRatio:      0.5,
		SampleInterval:  10 * time.Second,
		NumKeys:         1000,
		SeedConcurrency: 32,
	}
}

// Validate checks the configuration ranges. A failed validation is fatal at
// startup, before any seeding write is issued.
func (c Config) Validate() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be >= 1, got %d", c.Concurrency)
	}
	if c.WriteRatio < 0 || c.WriteRatio > 1 {
		return fmt.Errorf("write ratio must be between 0 and 1, got %g", c.WriteRatio)
	}
	if c.SampleInterval <= 0 {
		return fmt.Errorf("sample interval must be positive, got %s", c.SampleInterval)
	}
	if c.NumKeys < 1 {
		return fmt.Errorf("key space size must be >= 1, got %d", c.NumKeys)
	}
	if c.SeedConcurrency < 1 {
		return fmt.Errorf("seed concurrency must be >= 1, got %d", c.SeedConcurrency)
	}
	return nil
}

// fileConfig is the YAML form of a benchmark profile. Durations are strings
// ("10s", "500ms"); absent fields keep their current values.
type fileConfig struct {
	Concurrency     *int     `yaml:"concurrency"`
	WritePercentage *float64 `yaml:"write_percentage"`
	SampleInterval  *string  `yaml:"sample_interval"`
	NumKeys         *int     `yaml:"num_keys"`
	SeedConcurrency *int     `yaml:"seed_concurrency"`
}

// LoadFile overlays a YAML profile file onto c and returns the result.
func (c Config) LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read profile: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return c, fmt.Errorf("parse profile: %w", err)
	}

	if fc.Concurrency != nil {
		c.Concurrency = *fc.Concurrency
	}
	if fc.WritePercentage != nil {
		c.WriteRatio = *fc.WritePercentage
	}
	if fc.SampleInterval != nil {
		d, err := time.ParseDuration(*fc.SampleInterval)
		if err != nil {
			return c, fmt.Errorf("parse sample_interval: %w", err)
		}
		c.SampleInterval = d
	}
	if fc.NumKeys != nil {
		c.NumKeys = *fc.NumKeys
	}
	if fc.SeedConcurrency != nil {
		c.SeedConcurrency = *fc.SeedConcurrency
	}
	return c, nil
}
