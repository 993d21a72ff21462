package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/plus3/tieney/config"
	"github.com/plus3/tieney/game"
	"github.com/plus3/tieney/telemetry"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the soak should run for.")
	seed := flag.Int64("seed", 1, "RNG seed for the world and the scripted pilot.")
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	telemetryDir := flag.String("telemetry-dir", "", "Directory for frame CSV logs, summary and config snapshot")
	paced := flag.Bool("paced", false, "Tick at 60 Hz instead of as fast as possible")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	report, err := soak(*configPath, *seed, *duration, *paced, *telemetryDir)
	if err != nil {
		slog.Error("soak failed", "error", err)
		os.Exit(1)
	}

	fmt.Println("\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		slog.Error("failed to generate report", "error", err)
		os.Exit(1)
	}
	fmt.Println("--- End of Report ---")
}

func soak(configPath string, seed int64, duration time.Duration, paced bool, telemetryDir string) (*Report, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	out, err := telemetry.NewWriter(telemetryDir)
	if err != nil {
		return nil, err
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		return nil, err
	}

	keys := game.NewKeys()
	recorder := telemetry.NewRecorder(out, cfg.Telemetry.FlushEvery, slog.Default())
	world := game.NewWorld(cfg.Rules(), keys,
		game.WithLogger(slog.Default()),
		game.WithRand(game.NewRand(seed)),
		game.WithSystems(newScriptedPilot(keys, game.NewRand(seed+1)), recorder))

	report := &Report{
		Duration: duration,
		Seed:     seed,
		Paced:    paced,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	slog.Info("running soak", "duration", duration, "seed", seed, "paced", paced)
	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	var pace <-chan time.Time
	if paced {
		ticker := time.NewTicker(time.Second / game.TickRate)
		defer ticker.Stop()
		pace = ticker.C
	}

	start := time.Now()
Loop:
	for {
		if pace != nil {
			select {
			case <-ctx.Done():
				break Loop
			case <-pace:
			}
		} else if ctx.Err() != nil {
			break Loop
		}
		tickStart := time.Now()
		world.Tick()
		report.TickTime.Samples = append(report.TickTime.Samples, time.Since(tickStart))
	}
	report.TotalTime = time.Since(start)
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.TickTime.Finalize()
	report.Summary = recorder.Summary()
	report.Systems = world.Scheduler().GetStats().Systems
	report.Storage = world.Storage().CollectStats()

	if err := recorder.Flush(); err != nil {
		return nil, err
	}
	if err := out.WriteSummary(report.Summary); err != nil {
		return nil, err
	}
	slog.Info("soak finished", "frames", world.Frames(), "resets", report.Summary.Resets)
	return report, nil
}
