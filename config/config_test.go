package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/little-cube/common"
	"github.com/Carmen-Shannon/little-cube/engine/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 480, cfg.Window.Height)
	assert.Equal(t, 4, cfg.Window.Samples)
	assert.Equal(t, float32(90), cfg.Camera.Fov)
	assert.Equal(t, [4]float64{0.3, 0.3, 0.3, 1}, cfg.Render.ClearColor)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestParseTOML(t *testing.T) {
	data := []byte(`
profile = true
log_level = "debug"

[window]
title = "Cube"
width = 1024
samples = 1

[camera]
position = [1.0, 2.0, 3.0]
fov = 75.0
layout = "zqsd"

[render]
clear_color = [0.0, 0.0, 0.0, 1.0]
software = true
`)
	cfg, err := Parse(data, ".toml")
	require.NoError(t, err)

	assert.True(t, cfg.Profile)
	assert.Equal(t, "Cube", cfg.Window.Title)
	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 480, cfg.Window.Height, "unset keys keep their defaults")
	assert.Equal(t, 1, cfg.Window.Samples)
	assert.Equal(t, [3]float32{1, 2, 3}, cfg.Camera.Position)
	assert.Equal(t, float32(75), cfg.Camera.Fov)
	assert.Equal(t, LayoutZQSD, cfg.Camera.Layout)
	assert.Equal(t, [4]float64{0, 0, 0, 1}, cfg.Render.ClearColor)
	assert.True(t, cfg.Render.Software)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
window:
  height: 720
  vsync: false
  max_fps: 0
camera:
  far: 500
  speed_horizontal: 4
`)
	for _, ext := range []string{"yaml", ".yml", ".YAML"} {
		cfg, err := Parse(data, ext)
		require.NoError(t, err, ext)
		assert.Equal(t, 720, cfg.Window.Height)
		assert.Equal(t, 640, cfg.Window.Width)
		assert.False(t, cfg.Window.VSync)
		assert.Zero(t, cfg.Window.MaxFPS)
		assert.Equal(t, float32(500), cfg.Camera.Far)
		assert.Equal(t, float32(4), cfg.Camera.SpeedHorizontal)
	}
}

func TestParseEmptyYAMLKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("\n"), ".yaml")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("[window]\nfullscreen = true\n"), ".toml")
	assert.Error(t, err)

	_, err = Parse([]byte("window:\n  fullscreen: true\n"), ".yaml")
	assert.Error(t, err)
}

func TestParseUnsupportedFormat(t *testing.T) {
	_, err := Parse([]byte("{}"), ".json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero height", func(c *Config) { c.Window.Height = 0 }, "window size"},
		{"samples", func(c *Config) { c.Window.Samples = 8 }, "window.samples"},
		{"updates", func(c *Config) { c.Window.UpdatesPerSecond = 0 }, "updates_per_second"},
		{"fps", func(c *Config) { c.Window.MaxFPS = -1 }, "max_fps"},
		{"fov", func(c *Config) { c.Camera.Fov = 180 }, "camera.fov"},
		{"near", func(c *Config) { c.Camera.Near = 0 }, "camera.near"},
		{"far", func(c *Config) { c.Camera.Far = 0.05 }, "camera.far"},
		{"layout", func(c *Config) { c.Camera.Layout = "dvorak" }, "camera.layout"},
		{"speed", func(c *Config) { c.Camera.SpeedVertical = -1 }, "speeds"},
		{"clear", func(c *Config) { c.Render.ClearColor[2] = 1.5 }, "clear_color[2]"},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalid)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := Default()
	cfg.Window.Width = -1
	cfg.Camera.Layout = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "window size")
	assert.ErrorContains(t, err, "camera.layout")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cube.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window]\ntitle = \"From File\"\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "From File", cfg.Window.Title)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("camera:\n  near: -1\n"), 0o600))
	_, err = Load(bad)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.ErrorContains(t, err, "bad.yml")
}

func TestCameraSettings(t *testing.T) {
	c := Default().Camera
	c.Layout = LayoutZQSD
	c.SpeedHorizontal = 3
	c.MouseSensitivityVertical = 0.5

	s := c.Settings()
	assert.Equal(t, input.Key(common.KeyZ), s.MoveForwardKey)
	assert.Equal(t, input.Key(common.KeyQ), s.StrafeLeftKey)
	assert.Equal(t, float32(3), s.SpeedHorizontal)
	assert.Equal(t, float32(1), s.SpeedVertical)
	assert.Equal(t, float32(0.5), s.MouseSensitivityVertical)
}
