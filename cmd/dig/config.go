package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/Carmen-Shannon/dig/engine"
	"github.com/Carmen-Shannon/dig/engine/renderer"
	"github.com/Carmen-Shannon/dig/engine/window"
)

// config is everything the command line controls.
type config struct {
	width         int
	height        int
	title         string
	mode          engine.LoopMode
	fpsInterval   int64
	frameInterval time.Duration
	vsync         bool
	msaa          renderer.MSAASampleCount
	spinVelocity  float64
	validate      bool
	softwareGPU   bool
	logLevel      slog.Level
	logFormat     string
	memStats      bool
	titleFPS      bool
}

// parseConfig parses the command line. A zero fps interval keeps the loop mode's default.
func parseConfig(name string, args []string, output io.Writer) (config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	var (
		cfg       config
		mode      string
		msaa      int
		logLevel  string
		logFormat string
	)
	fs.IntVar(&cfg.width, "width", window.DefaultWidth, "initial window width")
	fs.IntVar(&cfg.height, "height", window.DefaultHeight, "initial window height")
	fs.StringVar(&cfg.title, "title", window.DefaultTitle, "window title")
	fs.StringVar(&mode, "mode", engine.LoopModePolling.String(), "loop mode: polling or event")
	fs.Int64Var(&cfg.fpsInterval, "fps-interval", 0, "frame rate report interval in ms (0 = mode default)")
	fs.DurationVar(&cfg.frameInterval, "frame-interval", engine.DefaultFrameInterval, "longest event wait in event mode")
	fs.BoolVar(&cfg.vsync, "vsync", true, "wait for vertical blank when presenting")
	fs.IntVar(&msaa, "msaa", 1, "multisample count: 1 or 4")
	fs.Float64Var(&cfg.spinVelocity, "spin-velocity", 180, "cube spin speed in degrees per second")
	fs.BoolVar(&cfg.validate, "validate-shaders", true, "compile shaders with naga before creating pipelines")
	fs.BoolVar(&cfg.softwareGPU, "software", false, "force the fallback (software) adapter")
	fs.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")
	fs.StringVar(&logFormat, "log-format", "text", "log format: text or json")
	fs.BoolVar(&cfg.memStats, "memstats", false, "add memory statistics to frame rate reports")
	fs.BoolVar(&cfg.titleFPS, "title-fps", false, "show the last frame rate in the window title")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	if fs.NArg() > 0 {
		return config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	var err error
	if cfg.mode, err = engine.ParseLoopMode(mode); err != nil {
		return config{}, err
	}
	if cfg.msaa, err = renderer.ParseMSAA(msaa); err != nil {
		return config{}, err
	}
	if err = cfg.logLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return config{}, fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	switch cfg.logFormat = strings.ToLower(logFormat); cfg.logFormat {
	case "text", "json":
	default:
		return config{}, fmt.Errorf("invalid log format %q (want text or json)", logFormat)
	}
	if cfg.width <= 0 || cfg.height <= 0 {
		return config{}, fmt.Errorf("invalid window size %dx%d", cfg.width, cfg.height)
	}
	if cfg.fpsInterval < 0 {
		return config{}, fmt.Errorf("invalid fps interval %d", cfg.fpsInterval)
	}
	if cfg.frameInterval <= 0 {
		return config{}, fmt.Errorf("invalid frame interval %s", cfg.frameInterval)
	}
	return cfg, nil
}

// spinRadians converts the configured spin speed to radians per second.
func (c config) spinRadians() float32 {
	return float32(c.spinVelocity * math.Pi / 180)
}

// presentMode maps the vsync flag onto the renderer's present mode.
func (c config) presentMode() renderer.PresentMode {
	if c.vsync {
		return renderer.PresentModeVSync
	}
	return renderer.PresentModeUncapped
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
