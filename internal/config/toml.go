// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Pointer fields are nil
// when the key is absent so callers can tell "unset" from a zero value.
type FileConfig struct {
	Analysis    AnalysisConfig    `toml:"analysis"`
	Kinetics    KineticsConfig    `toml:"kinetics"`
	Spectrum    SpectrumConfig    `toml:"spectrum"`
	Mastercurve MastercurveConfig `toml:"mastercurve"`
	Store       StoreConfig       `toml:"store"`
	Log         LogConfig         `toml:"log"`
}

// AnalysisConfig maps per-temperature analysis settings.
type AnalysisConfig struct {
	MinPoints *int     `toml:"min-points"`
	Tg        *float64 `toml:"tg"`
	Workers   *int     `toml:"workers"`
}

// KineticsConfig maps kinetics settings. Plateau is the rubbery modulus G'
// in MPa used to locate Tv.
type KineticsConfig struct {
	Plateau *float64 `toml:"plateau"`
}

// SpectrumConfig maps spectrum inversion settings.
type SpectrumConfig struct {
	Modes *int     `toml:"modes"`
	Alpha *float64 `toml:"alpha"`
}

// MastercurveConfig maps mastercurve settings.
type MastercurveConfig struct {
	Reference *float64 `toml:"reference"`
}

// StoreConfig maps the lab notebook database settings.
type StoreConfig struct {
	Path *string `toml:"path"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level  *string `toml:"level"`
	Format *string `toml:"format"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
