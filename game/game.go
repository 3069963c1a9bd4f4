// Package game wires the simulation systems into an ordered per-tick update
// and exposes the headless and graphical run loops.
package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/migration/components"
	"github.com/pthm-cable/migration/config"
	"github.com/pthm-cable/migration/renderer"
	"github.com/pthm-cable/migration/systems"
	"github.com/pthm-cable/migration/telemetry"
	"github.com/pthm-cable/migration/ui"
)

// Options configures game initialization.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string // Directory for CSV output (empty = disabled)
	Headless       bool
	StepsPerUpdate int // Simulation ticks per Update call (default 1)

	// Config overrides the global config when non-nil.
	Config *config.Config

	// Random overrides the seeded source when non-nil.
	Random systems.Random

	// StatsCallback is called with every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete simulation state.
type Game struct {
	world *ecs.World
	cfg   *config.Config
	rng   systems.Random
	seed  int64

	// State owners
	clock     *systems.TravelClock
	scheduler *systems.EncounterScheduler
	dayNight  *systems.DayNight
	rain      *systems.Raininess

	// Systems
	players  *systems.PlayerSystem
	birds    *systems.BirdSystem
	whales   *systems.WhaleSystem
	flocking *systems.FlockingSystem
	movement *systems.MovementSystem
	waves    *systems.WaveSystem
	grid     *systems.SpatialGrid
	registry *systems.SystemRegistry

	// Entity mappers per species
	playerMapper *ecs.Map6[components.Position, components.Velocity, components.Rotation, components.Creature, components.Player, components.Repulsor]
	birdMapper   *ecs.Map7[components.Position, components.Velocity, components.Rotation, components.Creature, components.Target, components.Path, components.BirdBehavior]
	fishMapper   *ecs.Map5[components.Position, components.Velocity, components.Rotation, components.Creature, components.Boid]
	hazardMapper *ecs.Map5[components.Position, components.Velocity, components.Rotation, components.Creature, components.Repulsor]
	adultMapper  *ecs.Map6[components.Position, components.Velocity, components.Rotation, components.Creature, components.Repulsor, components.WhaleBehavior]
	babyMapper   *ecs.Map5[components.Position, components.Velocity, components.Rotation, components.Creature, components.BabyWhale]

	// Read-only views for snapshots and drawing
	creatureFilter *ecs.Filter2[components.Position, components.Creature]
	waveFilter     *ecs.Filter2[components.Position, components.Wave]
	rotMap         *ecs.Map[components.Rotation]
	birdMap        *ecs.Map[components.BirdBehavior]

	// Per-tick queues
	events    systems.Events
	despawn   systems.DespawnQueue
	published []systems.Event

	// Input
	intent    r2.Vec
	window    systems.Window
	forceFlip bool

	// Telemetry
	collector     *telemetry.Collector
	legs          *telemetry.LegTracker
	perf          *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	// Rendering (nil when headless)
	scene     *renderer.Scene
	hud       *ui.HUD
	panel     *ui.ControlsPanel
	perfPanel *ui.PerfPanel
	showPerf  bool

	banner      string // Flip message on screen
	bannerUntil float64

	// State
	tick           int32
	simTime        float64
	paused         bool
	headless       bool
	stepsPerUpdate int
}

// NewGameWithOptions creates a new game instance.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	rng := opts.Random
	if rng == nil {
		rng = systems.NewRandom(opts.Seed)
	}

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	world := ecs.NewWorld()
	win := systems.Window{W: float64(cfg.Screen.Width), H: float64(cfg.Screen.Height)}
	grid := systems.NewSpatialGrid(win.W, win.H, cfg.Physics.GridCellSize)
	travelSpeed := cfg.Travel.Speed

	g := &Game{
		world: world,
		cfg:   cfg,
		rng:   rng,
		seed:  opts.Seed,

		clock:     systems.NewTravelClock(cfg.Travel.FlipDistance),
		scheduler: systems.NewEncounterScheduler(cfg.Encounters, rng),
		dayNight:  systems.NewDayNight(cfg.Weather),
		rain:      systems.NewRaininess(cfg.Weather),

		players:  systems.NewPlayerSystem(world, cfg.Player),
		birds:    systems.NewBirdSystem(world, cfg.Bird),
		whales:   systems.NewWhaleSystem(world, cfg.Whale, travelSpeed, cfg.Movement.SpriteMargin),
		flocking: systems.NewFlockingSystem(world, grid),
		movement: systems.NewMovementSystem(world, cfg.Movement.DespawnBuffer, cfg.Movement.TurnLerp),
		waves:    systems.NewWaveSystem(world, cfg.Waves, travelSpeed, cfg.Movement.DespawnBuffer),
		grid:     grid,
		registry: systems.NewSystemRegistry(),

		playerMapper: ecs.NewMap6[components.Position, components.Velocity, components.Rotation, components.Creature, components.Player, components.Repulsor](world),
		birdMapper:   ecs.NewMap7[components.Position, components.Velocity, components.Rotation, components.Creature, components.Target, components.Path, components.BirdBehavior](world),
		fishMapper:   ecs.NewMap5[components.Position, components.Velocity, components.Rotation, components.Creature, components.Boid](world),
		hazardMapper: ecs.NewMap5[components.Position, components.Velocity, components.Rotation, components.Creature, components.Repulsor](world),
		adultMapper:  ecs.NewMap6[components.Position, components.Velocity, components.Rotation, components.Creature, components.Repulsor, components.WhaleBehavior](world),
		babyMapper:   ecs.NewMap5[components.Position, components.Velocity, components.Rotation, components.Creature, components.BabyWhale](world),

		creatureFilter: ecs.NewFilter2[components.Position, components.Creature](world),
		waveFilter:     ecs.NewFilter2[components.Position, components.Wave](world),
		rotMap:         ecs.NewMap[components.Rotation](world),
		birdMap:        ecs.NewMap[components.BirdBehavior](world),

		window: win,

		collector:     telemetry.NewCollector(statsWindow, cfg.Derived.DT32),
		legs:          telemetry.NewLegTracker(systems.South.String()),
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,

		headless:       opts.Headless,
		stepsPerUpdate: stepsPerUpdate,
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config", "error", err)
			}
		}
	}

	if !opts.Headless {
		g.scene = renderer.NewScene()
		g.hud = ui.NewHUD()
		g.panel = ui.NewControlsPanel(10, 110, 220)
		g.perfPanel = ui.NewPerfPanel(16, 250)
	}

	g.spawnPlayer()
	g.waves.SpawnInitial(g.simTime, g.window, g.rng)

	slog.Info("game_created",
		"seed", opts.Seed,
		"flip_distance", g.clock.FlipDistance(),
		"window_w", win.W,
		"window_h", win.H,
		"headless", opts.Headless,
	)

	return g
}

// SetIntent sets the player's movement intent for the following ticks.
// +X is right and +Y is towards the top of the screen.
func (g *Game) SetIntent(intent r2.Vec) {
	g.intent = intent
}

// SetWindow updates the visible window size.
func (g *Game) SetWindow(w, h float64) {
	g.window = systems.Window{W: w, H: h}
	if g.window.Valid() {
		g.grid = systems.NewSpatialGrid(w, h, g.cfg.Physics.GridCellSize)
		g.flocking = systems.NewFlockingSystem(g.world, g.grid)
	}
}

// Window returns the visible window size.
func (g *Game) Window() systems.Window {
	return g.window
}

// Events returns the events emitted during the most recent Update call.
func (g *Game) Events() []systems.Event {
	return g.published
}

// ForceFlip requests a direction flip on the next tick. A request made while
// one is pending is ignored. Returns whether the request was accepted.
func (g *Game) ForceFlip() bool {
	if g.forceFlip {
		slog.Warn("flip_ignored", "reason", "flip already pending", "tick", g.tick)
		return false
	}
	g.forceFlip = true
	return true
}

// SetPaused pauses or resumes the simulation.
func (g *Game) SetPaused(paused bool) {
	g.paused = paused
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// SetStepsPerUpdate sets how many ticks each Update call runs.
func (g *Game) SetStepsPerUpdate(n int) {
	g.stepsPerUpdate = max(1, n)
}

// StepsPerUpdate returns how many ticks each Update call runs.
func (g *Game) StepsPerUpdate() int {
	return g.stepsPerUpdate
}

// UpdateHeadless runs simulation steps without input or rendering.
func (g *Game) UpdateHeadless() {
	g.published = g.published[:0]
	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// Update handles input and runs simulation steps.
func (g *Game) Update() {
	g.published = g.published[:0]
	g.handleInput()
	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
	g.perf.RecordFrame()
}

// Clock returns the travel clock.
func (g *Game) Clock() *systems.TravelClock {
	return g.clock
}

// Scheduler returns the encounter scheduler.
func (g *Game) Scheduler() *systems.EncounterScheduler {
	return g.scheduler
}

// DayNight returns the day/night cycle.
func (g *Game) DayNight() *systems.DayNight {
	return g.dayNight
}

// Rain returns the precipitation state.
func (g *Game) Rain() *systems.Raininess {
	return g.rain
}

// Player returns the player whale transform.
func (g *Game) Player() systems.PlayerView {
	return g.players.View()
}

// BabyStatus returns the shared baby whale status.
func (g *Game) BabyStatus() systems.BabyWhaleStatus {
	return g.whales.Status
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// SimTime returns elapsed simulation seconds.
func (g *Game) SimTime() float64 {
	return g.simTime
}

// Legs returns the completed leg summaries.
func (g *Game) Legs() []telemetry.LegStats {
	return g.legs.Completed()
}

// Unload releases resources and closes output files.
func (g *Game) Unload() {
	if g.scene != nil {
		g.scene.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
