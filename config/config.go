// Package config holds the toolchain configuration, loaded from an
// optional TOML file. Command-line flags override file values.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the full configuration for both binaries.
type Config struct {
	Execution struct {
		// MaxMicroSteps aborts a run that never reaches HALT.
		MaxMicroSteps uint64 `toml:"max_micro_steps"`
	} `toml:"execution"`

	Trace struct {
		OutputFile string `toml:"output_file"`
		Enabled    bool   `toml:"enabled"`
		MaxEntries int    `toml:"max_entries"`
	} `toml:"trace"`

	Assembler struct {
		// OutputExtension replaces the source extension when no output
		// path is given.
		OutputExtension string `toml:"output_extension"`
	} `toml:"assembler"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Execution.MaxMicroSteps = 1_000_000
	cfg.Trace.OutputFile = "cpu.log"
	cfg.Trace.Enabled = true
	cfg.Trace.MaxEntries = 100_000
	cfg.Assembler.OutputExtension = ".json"
	return cfg
}

// LoadFrom loads configuration from the given file. A missing file yields
// the defaults; an empty path skips loading entirely.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}
