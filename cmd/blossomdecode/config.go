package main

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// config holds settings that can be overridden by a --config TOML file.
// Flags passed on the command line always take precedence over the file.
type config struct {
	// Resolution is the discretization level count dem.Builder.Discretize
	// quantizes weights into, when --resolution is not given explicitly.
	Resolution int `toml:"resolution"`

	// LogLevel is the default logrus level name, when --verbose is not
	// given explicitly.
	LogLevel string `toml:"log_level"`
}

func defaultConfig() config {
	return config{
		Resolution: 1000,
		LogLevel:   "info",
	}
}

// loadConfig reads a TOML file into the default config, leaving fields
// the file omits at their defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return config{}, errors.Wrapf(err, "blossomdecode: reading config %q", path)
	}
	return cfg, nil
}
