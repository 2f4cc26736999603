/*
 * config.go, part of goRED.
 *
 * Copyright 2026 The goRED authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package config loads the goRED settings from a YAML file and GORED_*
// environment variables, with viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rmera/gored"
	"github.com/rmera/gored/internal/logging"
	"github.com/spf13/viper"
)

// envPrefix is the prefix of the environment variables, GORED_MODE,
// GORED_RESP_COMMAND, GORED_LOG_LEVEL...
const envPrefix = "GORED"

const (
	DefaultMode       = "RESP-A1"
	DefaultWorkdir    = "."
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "console"
	DefaultPlotWidth  = 16.0 //cm
	DefaultPlotHeight = 10.0
)

// RespConfig is the configuration of the resp runs.
type RespConfig struct {
	//Path to the resp executable. Empty means $AMBERHOME/bin/resp, or resp.
	Command string `mapstructure:"command"`
	//Keep the scratch files (qwts, esout) resp writes.
	KeepFiles bool `mapstructure:"keep_files"`
}

// PlotConfig is the configuration of the charge plots.
type PlotConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Width   float64 `mapstructure:"width"` //cm
	Height  float64 `mapstructure:"height"`
}

// Config holds all the goRED settings.
type Config struct {
	Mode    string            `mapstructure:"mode"`
	Workdir string            `mapstructure:"workdir"`
	Resp    RespConfig        `mapstructure:"resp"`
	Log     logging.LogConfig `mapstructure:"log"`
	Plot    PlotConfig        `mapstructure:"plot"`
}

// FitMode returns the charge model in the configuration.
func (C *Config) FitMode() (red.FitMode, error) {
	return red.ParseFitMode(C.Mode)
}

// ApplyDefaults fills the empty fields of cfg.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.Mode == "" {
		cfg.Mode = DefaultMode
	}
	if cfg.Workdir == "" {
		cfg.Workdir = DefaultWorkdir
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Plot.Width == 0 {
		cfg.Plot.Width = DefaultPlotWidth
	}
	if cfg.Plot.Height == 0 {
		cfg.Plot.Height = DefaultPlotHeight
	}
}

// Validate checks every setting, and returns all the problems found.
func (C *Config) Validate() error {
	var errs []error
	if _, err := C.FitMode(); err != nil {
		errs = append(errs, err)
	}
	if _, err := logging.ParseLevel(C.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if C.Log.Format != "console" && C.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format must be console or json, not %q", C.Log.Format))
	}
	if C.Plot.Width <= 0 || C.Plot.Height <= 0 {
		errs = append(errs, fmt.Errorf("plot size must be positive, got %gx%g cm", C.Plot.Width, C.Plot.Height))
	}
	return errors.Join(errs...)
}

// newViper returns a viper with the env prefix and the defaults set. The
// defaults make viper aware of every key, so environment variables are
// used even when the key is not in the file.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault("mode", DefaultMode)
	v.SetDefault("workdir", DefaultWorkdir)
	v.SetDefault("resp.command", "")
	v.SetDefault("resp.keep_files", false)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
	v.SetDefault("log.output_paths", []string{})
	v.SetDefault("plot.enabled", false)
	v.SetDefault("plot.width", DefaultPlotWidth)
	v.SetDefault("plot.height", DefaultPlotHeight)
	return v
}

// Load reads the YAML file path, if not empty, applies the GORED_*
// environment variables and the defaults, and validates the result.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read config file %q: %w", path, err)
		}
	}
	return unmarshalAndFinalize(v)
}

func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}
	ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}
