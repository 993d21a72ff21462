package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/tieney/config"
	"github.com/plus3/tieney/game"
	"github.com/plus3/tieney/terminal"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	sound := flag.Bool("sound", false, "Play fire and thrust sounds")
	logFile := flag.String("log-file", filepath.Join(os.TempDir(), "tieney-tui.log"), "Log destination; the terminal is owned by the game")
	flag.Parse()

	f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening log file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()
	slog.SetDefault(slog.New(slog.NewJSONHandler(f, nil)))

	if err := run(*configPath, *seed, *sound); err != nil {
		slog.Error("tieney-tui failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, seed int64, sound bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialising screen: %w", err)
	}
	defer screen.Fini()

	keys := game.NewKeys()
	world := game.NewWorld(cfg.Rules(), keys,
		game.WithLogger(slog.Default()),
		game.WithRand(game.NewRand(seed)))

	opts := []terminal.Option{terminal.WithLogger(slog.Default())}
	if sound {
		s, err := terminal.NewSound()
		if err != nil {
			// The game runs without sound.
			slog.Warn("audio unavailable", "error", err)
		} else {
			defer s.Close()
			opts = append(opts, terminal.WithSound(s))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	slog.Info("starting", "seed", seed, "sound", sound)
	terminal.New(screen, world, keys, opts...).Run(ctx)
	return nil
}
