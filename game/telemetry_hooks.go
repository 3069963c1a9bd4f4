package game

import (
	"log/slog"

	"github.com/pthm-cable/migration/components"
	"github.com/pthm-cable/migration/systems"
	"github.com/pthm-cable/migration/telemetry"
)

// processEvents drains the tick's events into telemetry and publishes them
// for Events.
func (g *Game) processEvents() {
	for _, ev := range g.events.Drain() {
		switch e := ev.(type) {
		case systems.SpawnRequest:
			g.collector.RecordSpawn(e.Species)
			g.legs.RecordSpawn(e.Species)
		case systems.FlipOccurred:
			g.collector.RecordFlip()
		case systems.RainStateChanged:
			g.collector.RecordRainChange(e.IsRaining, e.Snow)
			if e.IsRaining {
				g.legs.RecordRainStart(e.Snow)
			}
		case systems.CuriosityChanged:
			g.collector.RecordCuriosity(e.Curious)
			if e.Curious && e.Species == components.SpeciesAdultWhale {
				g.legs.RecordMetWhale()
			}
		case systems.CreatureArrivedAtTarget:
			g.collector.RecordArrival()
		case systems.BabyWhaleDeparted:
			g.collector.RecordBabyDeparture()
		}
		logEvent(ev)
		g.published = append(g.published, ev)
	}
}

// flushTelemetry checks if the stats window should be flushed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.snapshot())
	perfStats := g.perf.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// snapshot samples the state recorded with each stats window.
func (g *Game) snapshot() telemetry.Snapshot {
	snap := telemetry.Snapshot{
		Distance:      g.clock.Distance,
		TotalDistance: g.clock.TotalDistance,
		FlipCount:     g.clock.FlipCount,
		Direction:     g.clock.Direction().String(),
		Live:          g.liveCounts(),
		Raining:       g.rain.Raining,
		Raininess:     g.rain.Factor,
		TimeOfDay:     g.dayNight.TimeOfDay,
		Sunny:         g.dayNight.IsSunny,
	}
	query := g.waveFilter.Query()
	for query.Next() {
		snap.Waves++
	}
	return snap
}

// liveCounts returns the number of live creatures per species.
func (g *Game) liveCounts() [components.NumSpecies]int {
	var counts [components.NumSpecies]int
	query := g.creatureFilter.Query()
	for query.Next() {
		_, c := query.Get()
		if int(c.Species) < len(counts) {
			counts[c.Species]++
		}
	}
	return counts
}
