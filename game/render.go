package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/migration/components"
	"github.com/pthm-cable/migration/renderer"
	"github.com/pthm-cable/migration/systems"
	"github.com/pthm-cable/migration/ui"
)

// flipBannerSeconds is how long the flip message stays on screen.
const flipBannerSeconds = 4.0

const controlsLegend = "[Space] Pause  [</>] Speed  [F] Flip  [A/D] Steer  [Tab] Controls  [P] Perf"

// Draw renders the game.
func (g *Game) Draw() {
	g.updateBanner()

	sw := int32(rl.GetScreenWidth())
	sh := int32(rl.GetScreenHeight())

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	sky := g.dayNight.Color()
	g.scene.DrawBackground(sky, sw, sh)

	g.drawWaves()
	g.drawCreatures()

	g.scene.DrawPrecipitation(rl.GetFrameTime(), float32(g.rain.Factor), g.rain.Snow, sw, sh)

	g.hud.Draw(g.hudData(renderer.ToColor(sky, 255)), sw, sh)
	g.hud.DrawControls(sh, controlsLegend)
	g.applyControls(g.panel.Draw(ui.ControlsState{Paused: g.paused, Speed: g.stepsPerUpdate}))
	if g.showPerf {
		g.drawPerf()
	}

	rl.EndDrawing()
}

// updateBanner picks up flip messages published by the last Update.
func (g *Game) updateBanner() {
	for _, ev := range g.published {
		if flip, ok := ev.(systems.FlipOccurred); ok {
			g.banner = flip.Message
			g.bannerUntil = g.simTime + flipBannerSeconds
		}
	}
	if g.banner != "" && g.simTime >= g.bannerUntil {
		g.banner = ""
	}
}

// drawWaves renders wave crests fading out over their lifetime.
func (g *Game) drawWaves() {
	lifetime := g.cfg.Waves.Lifetime
	query := g.waveFilter.Query()
	for query.Next() {
		pos, wave := query.Get()
		life := 1.0
		if lifetime > 0 {
			life = (wave.ExpiresAt - g.simTime) / lifetime
		}
		renderer.DrawWave(float32(pos.X), float32(pos.Y), float32(life))
	}
}

// drawCreatures renders every creature by species. Birds use their
// curiosity scale.
func (g *Game) drawCreatures() {
	query := g.creatureFilter.Query()
	for query.Next() {
		pos, c := query.Get()
		e := query.Entity()

		heading := systems.TravelHeading
		if g.rotMap.Has(e) {
			heading = g.rotMap.Get(e).Heading
		}
		scale := 1.0
		if c.Species == components.SpeciesBird && g.birdMap.Has(e) {
			scale = g.birdMap.Get(e).Scale
		}
		renderer.DrawCreature(c.Species, float32(pos.X), float32(pos.Y), float32(heading), float32(scale))
	}
}

// hudData collects the HUD values for this frame.
func (g *Game) hudData(sky rl.Color) ui.HUDData {
	counts := g.liveCounts()
	return ui.HUDData{
		Distance:     g.clock.Distance,
		FlipDistance: g.clock.FlipDistance(),
		FlipCount:    g.clock.FlipCount,
		Direction:    g.clock.Direction().String(),
		FlipMessage:  g.banner,

		TimeOfDay: g.dayNight.TimeOfDay,
		Sunny:     g.dayNight.IsSunny,
		Sky:       sky,
		Raininess: g.rain.Factor,
		Raining:   g.rain.Raining,
		Snow:      g.rain.Snow,

		Counts:    counts,
		MetWhale:  g.whales.Status.HasWhale,
		HasBaby:   counts[components.SpeciesBabyWhale] > 0,
		Departure: g.whales.Status.DepartureTime,
		IntentX:   g.intent.X,

		Tick:   g.tick,
		Speed:  g.stepsPerUpdate,
		FPS:    rl.GetFPS(),
		Paused: g.paused,
	}
}

// drawPerf shows the average time spent in each tick phase.
func (g *Game) drawPerf() {
	stats := g.perf.Stats()
	g.perfPanel.Draw(ui.PerfPanelData{
		PhaseAvg: stats.PhaseAvg,
		Total:    stats.AvgTickDuration,
		TPS:      stats.TicksPerSecond,
		Phases:   g.registry.IDs(),
		Name:     g.registry.GetName,
	})
}
