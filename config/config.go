// Package config holds the demo's settings: defaults, an optional TOML or YAML file and validation.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/little-cube/engine/camera"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnsupportedFormat is returned by Load for a file extension other than .toml, .yaml or .yml.
	ErrUnsupportedFormat = errors.New("unsupported config format")
	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("invalid config")
)

// Keyboard layouts accepted by CameraConfig.Layout.
const (
	LayoutWASD = "wasd"
	LayoutZQSD = "zqsd"
)

// Config is the complete demo configuration.
type Config struct {
	Window   WindowConfig `toml:"window" yaml:"window"`
	Camera   CameraConfig `toml:"camera" yaml:"camera"`
	Render   RenderConfig `toml:"render" yaml:"render"`
	Profile  bool         `toml:"profile" yaml:"profile"`
	LogLevel string       `toml:"log_level" yaml:"log_level"`
}

// WindowConfig configures the window and its event scheduling.
type WindowConfig struct {
	Title            string `toml:"title" yaml:"title"`
	Width            int    `toml:"width" yaml:"width"`
	Height           int    `toml:"height" yaml:"height"`
	ExitOnEsc        bool   `toml:"exit_on_esc" yaml:"exit_on_esc"`
	Samples          int    `toml:"samples" yaml:"samples"`
	VSync            bool   `toml:"vsync" yaml:"vsync"`
	CaptureCursor    bool   `toml:"capture_cursor" yaml:"capture_cursor"`
	UpdatesPerSecond int    `toml:"updates_per_second" yaml:"updates_per_second"`
	MaxFPS           int    `toml:"max_fps" yaml:"max_fps"`
}

// CameraConfig configures the first-person camera and the projection.
type CameraConfig struct {
	Position                   [3]float32 `toml:"position" yaml:"position"`
	Fov                        float32    `toml:"fov" yaml:"fov"`
	Near                       float32    `toml:"near" yaml:"near"`
	Far                        float32    `toml:"far" yaml:"far"`
	Layout                     string     `toml:"layout" yaml:"layout"`
	SpeedHorizontal            float32    `toml:"speed_horizontal" yaml:"speed_horizontal"`
	SpeedVertical              float32    `toml:"speed_vertical" yaml:"speed_vertical"`
	MouseSensitivityHorizontal float32    `toml:"mouse_sensitivity_horizontal" yaml:"mouse_sensitivity_horizontal"`
	MouseSensitivityVertical   float32    `toml:"mouse_sensitivity_vertical" yaml:"mouse_sensitivity_vertical"`
}

// RenderConfig configures the GPU side.
type RenderConfig struct {
	ClearColor [4]float64 `toml:"clear_color" yaml:"clear_color"`
	Software   bool       `toml:"software" yaml:"software"`
}

// Default returns the configuration the demo runs with when no file or flag overrides it.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:            "Little Cube",
			Width:            640,
			Height:           480,
			ExitOnEsc:        true,
			Samples:          4,
			VSync:            true,
			CaptureCursor:    true,
			UpdatesPerSecond: 120,
			MaxFPS:           60,
		},
		Camera: CameraConfig{
			Position:                   [3]float32{0.5, 0.5, 4},
			Fov:                        camera.DefaultFov,
			Near:                       camera.DefaultNear,
			Far:                        camera.DefaultFar,
			Layout:                     LayoutWASD,
			SpeedHorizontal:            1,
			SpeedVertical:              1,
			MouseSensitivityHorizontal: 1,
			MouseSensitivityVertical:   1,
		},
		Render: RenderConfig{
			ClearColor: [4]float64{0.3, 0.3, 0.3, 1},
		},
		LogLevel: "info",
	}
}

// Load reads the file at path over Default and validates the result.
// The format is chosen by extension: .toml, .yaml or .yml. Unknown keys are rejected.
//
// Parameters:
//   - path: the config file
//
// Returns:
//   - Config: the loaded configuration
//   - error: a read, parse or validation error
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data in the format named by ext over Default and validates the result.
//
// Parameters:
//   - data: the encoded config
//   - ext: the file extension naming the format, with or without the leading dot
//
// Returns:
//   - Config: the decoded configuration
//   - error: ErrUnsupportedFormat, a decode error or a validation error
func Parse(data []byte, ext string) (Config, error) {
	cfg := Default()
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("decode toml: %w", err)
		}
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document decodes to io.EOF and leaves the defaults untouched.
		if err := dec.Decode(&cfg); err != nil && len(bytes.TrimSpace(data)) > 0 {
			return Config{}, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("%w %q", ErrUnsupportedFormat, ext)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every out-of-range setting, joined, each wrapping ErrInvalid.
func (c Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...)))
	}

	w := c.Window
	if w.Width <= 0 || w.Height <= 0 {
		invalid("window size %dx%d must be positive", w.Width, w.Height)
	}
	if w.Samples != 1 && w.Samples != 4 {
		invalid("window.samples %d must be 1 or 4", w.Samples)
	}
	if w.UpdatesPerSecond <= 0 {
		invalid("window.updates_per_second %d must be positive", w.UpdatesPerSecond)
	}
	if w.MaxFPS < 0 {
		invalid("window.max_fps %d must not be negative", w.MaxFPS)
	}

	cam := c.Camera
	if cam.Fov <= 0 || cam.Fov >= 180 {
		invalid("camera.fov %g must be between 0 and 180 degrees", cam.Fov)
	}
	if cam.Near <= 0 {
		invalid("camera.near %g must be positive", cam.Near)
	}
	if cam.Far <= cam.Near {
		invalid("camera.far %g must be greater than camera.near %g", cam.Far, cam.Near)
	}
	if cam.Layout != LayoutWASD && cam.Layout != LayoutZQSD {
		invalid("camera.layout %q must be %q or %q", cam.Layout, LayoutWASD, LayoutZQSD)
	}
	if cam.SpeedHorizontal < 0 || cam.SpeedVertical < 0 {
		invalid("camera speeds must not be negative")
	}

	for i, v := range c.Render.ClearColor {
		if v < 0 || v > 1 {
			invalid("render.clear_color[%d] %g must be within [0, 1]", i, v)
		}
	}

	if _, err := c.Level(); err != nil {
		invalid("log_level %q: %v", c.LogLevel, err)
	}

	return errors.Join(errs...)
}

// Level parses LogLevel ("debug", "info", "warn", "error").
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(c.LogLevel))
	return level, err
}

// Settings builds the camera controller settings for the configured layout, speeds and sensitivity.
func (c CameraConfig) Settings() camera.FirstPersonSettings {
	s := camera.KeyboardWASD()
	if c.Layout == LayoutZQSD {
		s = camera.KeyboardZQSD()
	}
	s.SpeedHorizontal = c.SpeedHorizontal
	s.SpeedVertical = c.SpeedVertical
	s.MouseSensitivityHorizontal = c.MouseSensitivityHorizontal
	s.MouseSensitivityVertical = c.MouseSensitivityVertical
	return s
}
