package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/warptools/buildorder/pkg/buildorderapi"
)

// Config is the contents of a buildorder TOML config file.
//
//	[log]
//	level = "debug"
//	format = "json"
//
//	[resolve]
//	max_depth = 5000
type Config struct {
	Log     LogConfig     `toml:"log"`
	Resolve ResolveConfig `toml:"resolve"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type ResolveConfig struct {
	MaxDepth int `toml:"max_depth"` // 0 means unbounded.
}

var (
	validLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validFormats = map[string]bool{"text": true, "json": true}
)

// Default is what's in effect with no config file.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads and validates a config file.  Keys the file sets that Config doesn't know are rejected.
//
// Errors:
//
//   - buildorder-error-config-invalid -- if the file can't be read, doesn't decode, or holds bad values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, buildorderapi.ErrorConfigInvalid(err, path, "failed to read config file")
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, buildorderapi.ErrorConfigInvalid(err, path, "failed to parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, buildorderapi.ErrorConfigInvalid(nil, path, fmt.Sprintf("unknown key %q", undecoded[0].String()))
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, buildorderapi.ErrorConfigInvalid(nil, path, err.Error())
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

// Validate checks values that decoded fine but make no sense.
func (cfg *Config) Validate() error {
	if !validLevels[cfg.Log.Level] {
		return fmt.Errorf("invalid log level %q", cfg.Log.Level)
	}
	if !validFormats[cfg.Log.Format] {
		return fmt.Errorf("invalid log format %q", cfg.Log.Format)
	}
	if cfg.Resolve.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", cfg.Resolve.MaxDepth)
	}
	return nil
}
