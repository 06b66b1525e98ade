// Command dig opens a window and draws a colour cube that the arrow keys spin.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/Carmen-Shannon/dig/engine"
	"github.com/Carmen-Shannon/dig/engine/camera"
	"github.com/Carmen-Shannon/dig/engine/model"
	"github.com/Carmen-Shannon/dig/engine/renderer"
	"github.com/Carmen-Shannon/dig/engine/scene"
	"github.com/Carmen-Shannon/dig/engine/window"
)

func init() {
	// GLFW and the WebGPU surface must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	cfg, err := parseConfig(os.Args[0], os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := newLogger(os.Stderr, cfg.logFormat, cfg.logLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("dig stopped", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, logger *slog.Logger) error {
	// ── Window ──────────────────────────────────────────────────────
	win, err := window.NewWindow(
		window.WithTitle(cfg.title),
		window.WithWidth(cfg.width),
		window.WithHeight(cfg.height),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := win.Close(); err != nil {
			logger.Warn("close window", "error", err)
		}
	}()

	// ── Renderer ────────────────────────────────────────────────────
	r, err := renderer.NewRenderer(win,
		renderer.WithPresentMode(cfg.presentMode()),
		renderer.WithMSAA(cfg.msaa),
		renderer.WithForceSoftwareRenderer(cfg.softwareGPU),
		renderer.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer r.Release()

	pass, err := renderer.NewCubePass(r, model.NewCubeModel(),
		renderer.WithShaderValidation(cfg.validate),
		renderer.WithCubeLogger(logger),
	)
	if err != nil {
		return err
	}
	defer pass.Release()

	// ── Scene ───────────────────────────────────────────────────────
	s := scene.NewScene("cube",
		scene.WithSpinVelocity(cfg.spinRadians()),
		scene.WithCamera(camera.NewCamera(camera.WithSize(win.Width(), win.Height()))),
	)

	// ── Frame loop ──────────────────────────────────────────────────
	options := []engine.EngineBuilderOption{
		engine.WithEventSource(win),
		engine.WithFrameRenderer(pass),
		engine.WithScene(s),
		engine.WithLogger(logger),
		engine.WithLoopMode(cfg.mode),
		engine.WithFrameInterval(cfg.frameInterval),
		engine.WithFPSInterval(cfg.fpsInterval),
		engine.WithMemStats(cfg.memStats),
	}
	if cfg.titleFPS {
		options = append(options, engine.WithTitleFPS(win, cfg.title))
	}

	logger.Info("starting", "mode", cfg.mode.String(), "size", fmt.Sprintf("%dx%d", win.Width(), win.Height()))
	return engine.NewEngine(options...).Run(ctx)
}
