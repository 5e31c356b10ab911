package main

import (
	"os"

	"github.com/mitchellh/mapstructure"
	gotoml "github.com/pelletier/go-toml"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/tide/errors"
	"github.com/wippyai/tide/internal/formats"
)

// Config is read from the TOML file named by --config.
type Config struct {
	LogLevel        string `mapstructure:"log_level"`
	MaxStringLength int    `mapstructure:"max_string_length"`
	DefaultFormat   string `mapstructure:"default_format"`
}

func DefaultConfig() Config {
	return Config{
		LogLevel:        "warn",
		MaxStringLength: formats.DefaultOptions().MaxStringLength,
		DefaultFormat:   formats.JSON,
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	tree, err := gotoml.LoadFile(path)
	if err != nil {
		return cfg, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "read "+path)
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return cfg, err
	}
	if err := dec.Decode(tree.ToMap()); err != nil {
		return cfg, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "decode "+path)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if !formats.Known(c.DefaultFormat) {
		return errors.InvalidInput(errors.PhaseConfig, "default_format: unknown format "+c.DefaultFormat)
	}
	if c.MaxStringLength <= 0 {
		return errors.InvalidInput(errors.PhaseConfig, "max_string_length must be positive")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "log_level")
	}
	return nil
}

// newLogger builds a console logger on stderr at the configured level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	return cfg.Build()
}
