package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/migration/config"
	"github.com/pthm-cable/migration/game"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	maxFlips := flag.Int("max-flips", 0, "Stop after N direction flips (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")

	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	statsWindowSec := cfg.Telemetry.StatsWindow
	if *statsWindow > 0 {
		statsWindowSec = *statsWindow
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: statsWindowSec,
		OutputDir:      *outputDir,
		Headless:       *headless,
		StepsPerUpdate: *stepsPerUpdate,
	}

	done := func(g *game.Game) bool {
		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return true
		}
		if *maxFlips > 0 && int(g.Clock().FlipCount) >= *maxFlips {
			slog.Info("max flips reached", "flips", g.Clock().FlipCount)
			return true
		}
		return false
	}

	if *headless {
		// Headless mode - pure CPU simulation, no raylib needed
		g := game.NewGameWithOptions(opts)
		defer g.Unload()

		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"stats_window", statsWindowSec,
			"max_ticks", *maxTicks,
			"max_flips", *maxFlips,
			"steps_per_update", *stepsPerUpdate,
		)

		for !done(g) {
			g.UpdateHeadless()
		}
		g.LogWorldState()
		return
	}

	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Migration")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if done(g) {
			break
		}
	}
	g.LogWorldState()
}
