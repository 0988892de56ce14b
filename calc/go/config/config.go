// Package config holds the configuration of a calc batch run.
package config

import (
	"runtime"

	"github.com/aoc2020/calc/calc/go/batch"
	"github.com/aoc2020/calc/calc/go/interpreter"
	"github.com/aoc2020/calc/go/config"
	"github.com/aoc2020/calc/go/skerr"
)

// BatchConfig is the JSON5 description of how a file of expressions gets
// summed.
type BatchConfig struct {
	// Policy is one of "left_to_right", "conventional" or "addition_first".
	Policy string `json:"policy"`

	// Workers is the number of lines evaluated concurrently. Zero means
	// runtime.GOMAXPROCS(0).
	Workers int `json:"workers" optional:"true"`

	// ContinueOnError skips lines that fail to evaluate instead of aborting
	// the run.
	ContinueOnError bool `json:"continue_on_error"`

	// Timeout bounds the whole run. Zero means no limit.
	Timeout config.Duration `json:"timeout" optional:"true"`
}

// Load reads the config at each path, later files overriding earlier ones,
// and validates the result.
func Load(paths ...string) (*BatchConfig, error) {
	var cfg BatchConfig
	if err := config.LoadFromJSON5(&cfg, paths...); err != nil {
		return nil, skerr.Wrap(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, skerr.Wrap(err)
	}
	return &cfg, nil
}

// Validate returns an error if the config can not be used for a run.
func (c *BatchConfig) Validate() error {
	if _, err := interpreter.ParsePolicy(c.Policy); err != nil {
		return skerr.Wrap(err)
	}
	if c.Workers < 0 {
		return skerr.Fmt("workers must be >= 0, got %d", c.Workers)
	}
	if c.Timeout.Duration < 0 {
		return skerr.Fmt("timeout must be >= 0, got %s", c.Timeout.Duration)
	}
	return nil
}

// Batch converts the config into the options batch.New takes.
func (c *BatchConfig) Batch() (batch.Config, error) {
	if err := c.Validate(); err != nil {
		return batch.Config{}, err
	}
	policy, _ := interpreter.ParsePolicy(c.Policy)
	workers := c.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return batch.Config{
		Policy:          policy,
		Workers:         workers,
		ContinueOnError: c.ContinueOnError,
	}, nil
}
