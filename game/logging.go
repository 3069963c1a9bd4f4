package game

import (
	"log/slog"

	"github.com/pthm-cable/migration/components"
	"github.com/pthm-cable/migration/systems"
)

// logEvent writes a structured log line for a simulation event. Frequent
// events log at debug level.
func logEvent(ev systems.Event) {
	switch e := ev.(type) {
	case systems.RainStateChanged:
		slog.Info(e.Kind(), "raining", e.IsRaining, "snow", e.Snow)
	case systems.CuriosityChanged:
		slog.Debug(e.Kind(), "entity", e.Entity.ID(), "species", e.Species.String(), "curious", e.Curious)
	case systems.BabyWhaleDeparted:
		slog.Info(e.Kind(), "entity", e.Entity.ID())
	case systems.SpawnRequest:
		slog.Debug(e.Kind(), "species", e.Species.String())
	case systems.CreatureArrivedAtTarget:
		slog.Debug(e.Kind(), "entity", e.Entity.ID(), "species", e.Species.String())
	}
}

// logDayRollover reports the start of a new day.
func logDayRollover(d *systems.DayNight) {
	slog.Info("new_day", "sunny", d.IsSunny)
}

// LogWorldState logs a one-line summary of the simulation.
func (g *Game) LogWorldState() {
	counts := g.liveCounts()
	attrs := []any{
		"tick", g.tick,
		"distance", g.clock.Distance,
		"flip_count", g.clock.FlipCount,
		"direction", g.clock.Direction().String(),
	}
	for sp, n := range counts {
		if n > 0 {
			attrs = append(attrs, components.Species(sp).String(), n)
		}
	}
	slog.Info("world_state", attrs...)
}
