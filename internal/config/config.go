// Package config holds the digitpool CLI configuration, backed by viper.
package config

import (
	"runtime"

	"github.com/spf13/viper"
)

// Config represents the complete digitpool configuration
type Config struct {
	Compute ComputeConfig `mapstructure:"compute"`
	Output  OutputConfig  `mapstructure:"output"`
}

// ComputeConfig controls the computation run
type ComputeConfig struct {
	// Digits is the number of digit positions to compute
	Digits int `mapstructure:"digits"`
	// Workers is the number of concurrent workers (default: number of CPUs)
	Workers int `mapstructure:"workers"`
	// Hex selects the hexadecimal extraction method instead of decimal
	Hex bool `mapstructure:"hex"`
}

// OutputConfig controls console output
type OutputConfig struct {
	// Progress prints one dot per task started (auto-disabled off-TTY)
	Progress bool `mapstructure:"progress"`
	// Timing prints the elapsed wall time after the digits
	Timing bool `mapstructure:"timing"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Compute: ComputeConfig{
			Digits:  1000,
			Workers: runtime.NumCPU(),
			Hex:     false,
		},
		Output: OutputConfig{
			Progress: true,
			Timing:   false,
		},
	}
}

// SetDefaults registers the built-in defaults with viper
func SetDefaults() {
	defaults := Default()

	// Compute defaults
	viper.SetDefault("compute.digits", defaults.Compute.Digits)
	viper.SetDefault("compute.workers", defaults.Compute.Workers)
	viper.SetDefault("compute.hex", defaults.Compute.Hex)

	// Output defaults
	viper.SetDefault("output.progress", defaults.Output.Progress)
	viper.SetDefault("output.timing", defaults.Output.Timing)
}

// Load unmarshals and validates the effective configuration
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}
