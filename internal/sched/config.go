package sched

import (
	"errors"
	"fmt"
	"os"

	yaml "github.com/goccy/go-yaml"
)

// TaskConfig describes one task seeded into the run-queue at startup.
type TaskConfig struct {
	ID         TaskID `yaml:"id"`
	Nice       int    `yaml:"nice"`        // -20..19, mapped onto a static priority
	BurstTicks int64  `yaml:"burst_ticks"` // 0 = never finishes
}

// Config mirrors config.yml
type Config struct {
	TickMS     int          `yaml:"tick_ms"`     // 5 (by default)
	SliceTicks int          `yaml:"slice_ticks"` // 5 (by default)
	MaxTicks   int64        `yaml:"max_ticks"`   // 0 = run until cancelled or idle
	Policy     Policy       `yaml:"policy"`      // rr | priority | cfs, required
	CSV        string       `yaml:"csv"`         // optional event log path
	Tasks      []TaskConfig `yaml:"tasks"`
}

// If the config file is not given, we use default values
func defaultConfig() Config {
	return Config{
		TickMS:     5,
		SliceTicks: 5,
	}
}

// Load reads YAML and overrides defaults; empty path = defaults only.
// The result is not validated; call Validate before building a Scheduler.
func Load(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	// sanity clamps
	if cfg.SliceTicks <= 0 {
		cfg.SliceTicks = 5
	}
	if cfg.TickMS <= 0 {
		cfg.TickMS = 5
	}
	if cfg.MaxTicks < 0 {
		cfg.MaxTicks = 0
	}

	return cfg, nil
}

// Validate rejects configurations that must never reach a selection call.
func (c Config) Validate() error {
	var errs []error
	if _, err := NewSelector(c.Policy); err != nil {
		errs = append(errs, err)
	}
	seen := make(map[TaskID]struct{}, len(c.Tasks))
	for _, tc := range c.Tasks {
		if _, dup := seen[tc.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate task id %d", tc.ID))
		}
		seen[tc.ID] = struct{}{}
		if tc.BurstTicks < 0 {
			errs = append(errs, fmt.Errorf("task %d: negative burst_ticks", tc.ID))
		}
	}
	return errors.Join(errs...)
}
