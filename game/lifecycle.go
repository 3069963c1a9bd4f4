package game

import (
	"log/slog"

	"github.com/pthm-cable/migration/components"
	"github.com/pthm-cable/migration/systems"
)

// applyFlip starts a new leg. Every reset tied to the direction change is
// applied here, before the same tick schedules encounters.
func (g *Game) applyFlip() {
	g.clock.ResetLeg()
	dir := g.clock.Direction()
	leg := g.legs.EndLeg(g.clock.TotalDistance, dir.String())

	g.scheduler.ResetForLeg(dir, g.clock.FlipCount)

	wasRaining := g.rain.Raining
	g.rain.Reset()
	if wasRaining {
		g.events.Emit(systems.RainStateChanged{IsRaining: false})
	}

	g.players.ResetForFlip(g.window)
	player := g.players.View()

	g.whales.DepartAll(g.window, g.rng, &g.events)
	if g.whales.ConsumeForFlip(g.clock.Distance, g.rng) {
		g.spawn(components.SpeciesBabyWhale, player)
	}

	g.events.Emit(systems.FlipOccurred{
		Message:   g.clock.FlipMessage(),
		FlipCount: g.clock.FlipCount,
		Direction: dir,
	})

	slog.Info("flip",
		"flip_count", g.clock.FlipCount,
		"direction", dir.String(),
		"total_distance", g.clock.TotalDistance,
		"carry", g.clock.Distance,
		"baby_departure", g.whales.Status.DepartureTime,
	)

	if err := g.outputManager.WriteLeg(leg); err != nil {
		slog.Error("failed to write leg", "error", err)
	}
}

// cleanup queues creatures outside the window and expired waves, then
// removes everything queued this tick.
func (g *Game) cleanup() {
	g.movement.DespawnOutOfWindow(g.window, &g.despawn)
	g.movement.ExpireWaves(g.simTime, &g.despawn)
	if g.despawn.Len() == 0 {
		return
	}
	removed := g.despawn.Apply(g.world, nil)
	g.collector.RecordDespawns(removed)
}
