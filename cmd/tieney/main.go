package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/plus3/tieney/config"
	"github.com/plus3/tieney/ecs"
	"github.com/plus3/tieney/game"
	"github.com/plus3/tieney/render"
	"github.com/plus3/tieney/telemetry"
	"github.com/plus3/tieney/window"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	debug := flag.Bool("debug", false, "Show the ImGui entity inspector")
	telemetryDir := flag.String("telemetry-dir", "", "Directory for frame CSV logs and config snapshot")
	assetsDir := flag.String("assets", "assets", "Directory holding the img/ textures")
	logFormat := flag.String("log-format", "text", "Log format: text or json")
	flag.Parse()

	logger, err := newLogger(*logFormat, *debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	slog.SetDefault(logger)

	if err := run(*configPath, *seed, *debug, *telemetryDir, *assetsDir); err != nil {
		slog.Error("tieney failed", "error", err)
		os.Exit(1)
	}
}

func newLogger(format string, debug bool) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
	}
	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	}
	return nil, fmt.Errorf("unknown log format %q", format)
}

func run(configPath string, seed int64, debug bool, telemetryDir, assetsDir string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	slog.Info("starting", "seed", seed, "config", configPath, "debug", debug)

	out, err := telemetry.NewWriter(telemetryDir)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		return err
	}

	recorder := telemetry.NewRecorder(out, cfg.Telemetry.FlushEvery, slog.Default())
	extra := []ecs.System{}
	if out != nil {
		extra = append(extra, recorder)
	}

	keys := game.NewKeys()
	world := game.NewWorld(cfg.Rules(), keys,
		game.WithLogger(slog.Default()),
		game.WithRand(game.NewRand(seed)),
		game.WithSystems(extra...))

	textures := render.NewTextureManager(assetsDir, slog.Default())
	if err := textures.Preload(game.Textures()); err != nil {
		return err
	}

	opts := []window.Option{window.WithLogger(slog.Default())}
	if debug {
		opts = append(opts, window.WithDebugOverlay())
	}
	g := window.New(world, keys, render.NewRenderer(textures), cfg.Screen, opts...)
	if err := g.Run(); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := recorder.Flush(); err != nil {
		return err
	}
	summary := recorder.Summary()
	slog.Info("telemetry written", "dir", out.Dir(), "frames", summary.Frames, "resets", summary.Resets)
	return out.WriteSummary(summary)
}
