// Package telemetry collects windowed simulation statistics, per-leg summaries
// and performance timings, and writes them as CSV.
package telemetry

import "github.com/pthm-cable/migration/components"

// Snapshot is the simulation state sampled when a window is flushed.
type Snapshot struct {
	Distance      float64
	TotalDistance float64
	FlipCount     uint32
	Direction     string

	// Live creatures indexed by components.Species
	Live  [components.NumSpecies]int
	Waves int

	Raining   bool
	Raininess float64
	TimeOfDay float64
	Sunny     bool
}

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	spawns          [components.NumSpecies]int
	spawnsSkipped   int
	flips           int
	rainStarts      int
	snowStarts      int
	rainStops       int
	curiosityGained int
	curiosityLost   int
	arrivals        int
	despawns        int
	babyDepartures  int
	steps           []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordSpawn records a creature spawn.
func (c *Collector) RecordSpawn(sp components.Species) {
	if int(sp) < len(c.spawns) {
		c.spawns[sp]++
	}
}

// RecordSpawnSkipped records a spawn dropped because the window was unusable.
func (c *Collector) RecordSpawnSkipped() {
	c.spawnsSkipped++
}

// RecordFlip records a direction flip.
func (c *Collector) RecordFlip() {
	c.flips++
}

// RecordRainChange records precipitation starting or stopping.
func (c *Collector) RecordRainChange(raining, snow bool) {
	switch {
	case raining && snow:
		c.snowStarts++
	case raining:
		c.rainStarts++
	default:
		c.rainStops++
	}
}

// RecordCuriosity records a creature gaining or losing curiosity.
func (c *Collector) RecordCuriosity(curious bool) {
	if curious {
		c.curiosityGained++
	} else {
		c.curiosityLost++
	}
}

// RecordArrival records a completed target-seeking movement.
func (c *Collector) RecordArrival() {
	c.arrivals++
}

// RecordDespawns records removed creatures.
func (c *Collector) RecordDespawns(n int) {
	c.despawns += n
}

// RecordBabyDeparture records a baby whale leaving the player.
func (c *Collector) RecordBabyDeparture() {
	c.babyDepartures++
}

// RecordStep records a recomputed spawn step.
func (c *Collector) RecordStep(step float64) {
	c.steps = append(c.steps, step)
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, snap Snapshot) WindowStats {
	stepMean, stepStd, p10, p50, p90 := ComputeStepStats(c.steps)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Distance:      snap.Distance,
		TotalDistance: snap.TotalDistance,
		FlipCount:     snap.FlipCount,
		Direction:     snap.Direction,

		Birds:       snap.Live[components.SpeciesBird],
		Fish:        snap.Live[components.SpeciesFish],
		Ships:       snap.Live[components.SpeciesShip],
		Icebergs:    snap.Live[components.SpeciesIceberg],
		AdultWhales: snap.Live[components.SpeciesAdultWhale],
		BabyWhales:  snap.Live[components.SpeciesBabyWhale],
		Waves:       snap.Waves,

		BirdSpawns:       c.spawns[components.SpeciesBird],
		FishSpawns:       c.spawns[components.SpeciesFish],
		ShipSpawns:       c.spawns[components.SpeciesShip],
		IcebergSpawns:    c.spawns[components.SpeciesIceberg],
		AdultWhaleSpawns: c.spawns[components.SpeciesAdultWhale],
		BabyWhaleSpawns:  c.spawns[components.SpeciesBabyWhale],
		SpawnsSkipped:    c.spawnsSkipped,

		Flips:           c.flips,
		RainStarts:      c.rainStarts,
		SnowStarts:      c.snowStarts,
		RainStops:       c.rainStops,
		CuriosityGained: c.curiosityGained,
		CuriosityLost:   c.curiosityLost,
		Arrivals:        c.arrivals,
		Despawns:        c.despawns,
		BabyDepartures:  c.babyDepartures,

		Raining:   snap.Raining,
		Raininess: snap.Raininess,
		TimeOfDay: snap.TimeOfDay,
		Sunny:     snap.Sunny,

		StepCount: len(c.steps),
		StepMean:  stepMean,
		StepStd:   stepStd,
		StepP10:   p10,
		StepP50:   p50,
		StepP90:   p90,
	}

	c.reset(currentTick)
	return stats
}

// reset clears counters and starts a new window.
func (c *Collector) reset(startTick int32) {
	c.windowStartTick = startTick
	c.spawns = [components.NumSpecies]int{}
	c.spawnsSkipped = 0
	c.flips = 0
	c.rainStarts = 0
	c.snowStarts = 0
	c.rainStops = 0
	c.curiosityGained = 0
	c.curiosityLost = 0
	c.arrivals = 0
	c.despawns = 0
	c.babyDepartures = 0
	c.steps = c.steps[:0]
}

// WindowDurationSec returns the window duration in seconds.
func (c *Collector) WindowDurationSec() float64 {
	return c.windowDurationSec
}
