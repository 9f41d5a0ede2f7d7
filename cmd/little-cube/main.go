// Command little-cube opens a window showing a textured cube on a floor and lets you fly around it.
//
// Controls: W/A/S/D (or Z/Q/S/D) to move, Space and Left Shift to fly up and down, Left Control to go faster,
// the mouse to look around, C to toggle cursor capture and Escape to quit.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/Carmen-Shannon/little-cube/config"
	"github.com/Carmen-Shannon/little-cube/engine"
	"github.com/Carmen-Shannon/little-cube/engine/camera"
	"github.com/Carmen-Shannon/little-cube/engine/renderer"
	"github.com/Carmen-Shannon/little-cube/engine/window"
	"github.com/spf13/cobra"
)

func init() {
	// GLFW and the WebGPU surface must be driven from the main thread.
	runtime.LockOSThread()
}

func main() {
	cmd, _ := newRootCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type flags struct {
	configPath string
	title      string
	width      int
	height     int
	samples    int
	vsync      bool
	profile    bool
	software   bool
	logLevel   string
}

// newRootCommand builds the command and returns the flag values it parses into.
func newRootCommand() (*cobra.Command, *flags) {
	f := &flags{}
	cmd := &cobra.Command{
		Use:           "little-cube",
		Short:         "Fly around a textured cube with a first-person camera",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, *f)
			if err != nil {
				slog.Error("invalid configuration", "error", err)
				return err
			}
			logger := newLogger(cfg)
			slog.SetDefault(logger)

			if err := run(cfg, logger); err != nil {
				logger.Error("little-cube failed", "error", err)
				return err
			}
			return nil
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "path to a .toml, .yaml or .yml config file")
	fl.StringVar(&f.title, "title", "", "window title")
	fl.IntVar(&f.width, "width", 0, "initial window width in pixels")
	fl.IntVar(&f.height, "height", 0, "initial window height in pixels")
	fl.IntVar(&f.samples, "samples", 0, "MSAA samples per pixel (1 or 4)")
	fl.BoolVar(&f.vsync, "vsync", true, "wait for vertical blank before presenting")
	fl.BoolVar(&f.profile, "profile", false, "log FPS and memory statistics once per second")
	fl.BoolVar(&f.software, "software", false, "use the software fallback adapter")
	fl.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error")
	return cmd, f
}

// loadConfig layers the config file (if any) over the defaults, then the flags the user set.
func loadConfig(cmd *cobra.Command, f flags) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return config.Config{}, err
		}
	}

	fl := cmd.Flags()
	if fl.Changed("title") {
		cfg.Window.Title = f.title
	}
	if fl.Changed("width") {
		cfg.Window.Width = f.width
	}
	if fl.Changed("height") {
		cfg.Window.Height = f.height
	}
	if fl.Changed("samples") {
		cfg.Window.Samples = f.samples
	}
	if fl.Changed("vsync") {
		cfg.Window.VSync = f.vsync
	}
	if fl.Changed("profile") {
		cfg.Profile = f.profile
	}
	if fl.Changed("software") {
		cfg.Render.Software = f.software
	}
	if fl.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *slog.Logger {
	level, _ := cfg.Level()
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func run(cfg config.Config, logger *slog.Logger) error {
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithExitOnEsc(cfg.Window.ExitOnEsc),
		window.WithCaptureCursor(cfg.Window.CaptureCursor),
		window.WithUpdatesPerSecond(cfg.Window.UpdatesPerSecond),
		window.WithMaxFPS(cfg.Window.MaxFPS),
	)
	if err != nil {
		return err
	}
	defer win.Close()

	samples, err := renderer.SampleCount(cfg.Window.Samples)
	if err != nil {
		return err
	}
	presentMode := renderer.PresentModeUncapped
	if cfg.Window.VSync {
		presentMode = renderer.PresentModeVSync
	}

	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithMSAA(samples),
		renderer.WithPresentMode(presentMode),
		renderer.WithClearColor(cfg.Render.ClearColor),
		renderer.WithForceSoftwareRenderer(cfg.Render.Software),
	)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer r.Release()

	eng, err := engine.NewEngine(win, r,
		engine.WithLogger(logger),
		engine.WithProfiling(cfg.Profile),
		engine.WithClearColor(cfg.Render.ClearColor),
		engine.WithCamera(cfg.Camera.Position, cfg.Camera.Settings()),
		engine.WithPerspective(
			camera.WithFov(cfg.Camera.Fov),
			camera.WithNear(cfg.Camera.Near),
			camera.WithFar(cfg.Camera.Far),
		),
	)
	if err != nil {
		return err
	}
	defer eng.Release()

	return eng.Run()
}
