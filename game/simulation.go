package game

import (
	"github.com/pthm-cable/migration/systems"
	"github.com/pthm-cable/migration/telemetry"
)

// simulationStep runs one fixed tick. Phases run in order and each state
// owner is only mutated inside its own phase.
func (g *Game) simulationStep() {
	dt := g.cfg.Physics.DT
	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhasePlayer)
	g.players.Update(dt, g.intent, g.window)
	player := g.players.View()

	g.perf.StartPhase(telemetry.PhaseTravel)
	g.clock.Advance(dt)

	g.perf.StartPhase(telemetry.PhaseFlip)
	if g.forceFlip && !g.clock.IsFlipping {
		g.clock.SkipToFlip()
	}
	g.forceFlip = false
	if g.clock.IsFlipping {
		g.applyFlip()
		player = g.players.View()
	}

	g.perf.StartPhase(telemetry.PhaseEncounters)
	g.updateEncounters(player)

	g.perf.StartPhase(telemetry.PhaseWeather)
	g.updateWeather(dt)

	g.perf.StartPhase(telemetry.PhaseBehavior)
	g.birds.Update(g.simTime, dt, player, g.rng, &g.events)
	g.whales.UpdateAdults(g.simTime, player, g.rng, &g.events)
	g.whales.UpdateBabies(g.clock.Distance, player, g.window, g.rng, &g.events)

	g.perf.StartPhase(telemetry.PhaseFlocking)
	g.flocking.Update(dt, g.rng)

	g.perf.StartPhase(telemetry.PhaseMovement)
	g.movement.MoveTowards(dt, &g.events, &g.despawn)
	g.movement.MoveWithVelocity(dt)

	g.perf.StartPhase(telemetry.PhaseCleanup)
	g.cleanup()

	g.simTime += dt
	g.tick++

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.processEvents()
	g.flushTelemetry()

	g.perf.EndTick()
}

// updateEncounters spawns every species due at the current leg distance.
func (g *Game) updateEncounters(player systems.PlayerView) {
	for _, sp := range g.scheduler.Tick(g.clock.Distance) {
		g.spawn(sp, player)
	}
	for _, s := range g.scheduler.DrainSteps() {
		g.collector.RecordStep(s.Step)
	}
}

// updateWeather advances the day/night cycle, precipitation and waves.
func (g *Game) updateWeather(dt float64) {
	if g.dayNight.Update(dt, g.rng) {
		logDayRollover(g.dayNight)
	}
	if g.rain.Update(g.clock.Distance, dt, g.clock.Direction(), g.rng) {
		g.events.Emit(systems.RainStateChanged{IsRaining: g.rain.Raining, Snow: g.rain.Snow})
	}
	g.waves.Update(g.simTime, g.window, g.rng)
}
