// Package config loads sysldpc settings from defaults, an optional YAML file,
// SYSLDPC_ environment variables and explicitly set flags, in that order.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/nathanhack/sysldpc/bipartite"
	"github.com/nathanhack/sysldpc/linearblock"
	"github.com/nathanhack/sysldpc/persistence"
	"github.com/spf13/pflag"
)

const EnvPrefix = "SYSLDPC_"

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Ratio    string   `koanf:"ratio"`
	Codeword int      `koanf:"codeword"`
	Weight   int      `koanf:"weight"`
	Check    bool     `koanf:"check"`
	Seed     int64    `koanf:"seed"`
	Output   string   `koanf:"output"`
	Format   string   `koanf:"format"`
	Threads  int      `koanf:"threads"`
	Parallel int      `koanf:"parallel"`
	Inputs   []string `koanf:"inputs"`
	Verbose  bool     `koanf:"verbose"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"ratio":    bipartite.DefaultRatio.String(),
		"codeword": 0,
		"weight":   linearblock.DefaultRepairWeight,
		"check":    true,
		"seed":     0,
		"output":   ".",
		"format":   string(persistence.JSON),
		"threads":  0,
		"parallel": 1,
		"inputs":   []string{},
		"verbose":  false,
	}
}

// Load builds the configuration. cfgFile may be empty and flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", cfgFile, err)
		}
	}

	// SYSLDPC_WEIGHT -> weight
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that can be checked without reading any input.
func (c *Config) Validate() error {
	if _, err := bipartite.ParseRatio(c.Ratio); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := persistence.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch {
	case c.Codeword < 0:
		return fmt.Errorf("%w: codeword must be >=0 but found %v", ErrInvalidConfig, c.Codeword)
	case c.Weight < 1:
		return fmt.Errorf("%w: weight must be >=1 but found %v", ErrInvalidConfig, c.Weight)
	case c.Parallel < 1:
		return fmt.Errorf("%w: parallel must be >=1 but found %v", ErrInvalidConfig, c.Parallel)
	case c.Output == "":
		return fmt.Errorf("%w: output directory must be set", ErrInvalidConfig)
	}
	return nil
}
