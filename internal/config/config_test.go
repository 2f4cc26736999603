/*
 * config_test.go, part of goRED.
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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rmera/gored"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const configYAML = `
mode: esp-c2
workdir: /tmp/fit
resp:
  command: /opt/amber/bin/resp
  keep_files: true
log:
  level: debug
  format: json
plot:
  enabled: true
  width: 20
`

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gored.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, configYAML))
	require.NoError(t, err)
	m, err := cfg.FitMode()
	require.NoError(t, err)
	assert.Equal(t, red.EspC2, m)
	assert.Equal(t, "/tmp/fit", cfg.Workdir)
	assert.Equal(t, "/opt/amber/bin/resp", cfg.Resp.Command)
	assert.True(t, cfg.Resp.KeepFiles)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Plot.Enabled)
	assert.Equal(t, 20.0, cfg.Plot.Width)
	assert.Equal(t, DefaultPlotHeight, cfg.Plot.Height)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultMode, cfg.Mode)
	assert.Equal(t, DefaultWorkdir, cfg.Workdir)
	assert.Equal(t, DefaultLogFormat, cfg.Log.Format)
	assert.False(t, cfg.Plot.Enabled)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("GORED_MODE", "RESP-C2")
	t.Setenv("GORED_RESP_COMMAND", "/usr/local/bin/resp")
	cfg, err := Load(writeConfig(t, "log:\n  level: warn\n"))
	require.NoError(t, err)
	assert.Equal(t, "RESP-C2", cfg.Mode)
	assert.Equal(t, "/usr/local/bin/resp", cfg.Resp.Command)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	_, err = Load(writeConfig(t, "mode: AM1-BCC\nlog:\n  format: xml\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, red.ErrUnknownFitMode)
	assert.Contains(t, err.Error(), "log.format")
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	assert.NoError(t, cfg.Validate())
	cfg.Plot.Width = -1
	assert.Error(t, cfg.Validate())
	ApplyDefaults(nil)
}
