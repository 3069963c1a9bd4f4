package game

import (
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/migration/components"
	"github.com/pthm-cable/migration/systems"
)

// icebergRise is how far below the window icebergs appear.
const icebergRise = 48.0

// spawnPlayer creates the player whale above the window. It swims in to its
// resting row before responding to intent.
func (g *Game) spawnPlayer() ecs.Entity {
	rep := g.cfg.Repulsors.Player
	return g.playerMapper.NewEntity(
		&components.Position{X: g.window.W / 2, Y: -g.cfg.Movement.SpriteMargin},
		&components.Velocity{},
		&components.Rotation{Heading: systems.TravelHeading},
		&components.Creature{Species: components.SpeciesPlayer},
		&components.Player{},
		&components.Repulsor{Strength: rep.Strength, Range: rep.Range},
	)
}

// spawn creates one creature of the given species. Returns false when the
// spawn was skipped because the window is unusable.
func (g *Game) spawn(sp components.Species, player systems.PlayerView) bool {
	var ok bool
	switch sp {
	case components.SpeciesBird:
		ok = g.spawnBird()
	case components.SpeciesFish:
		ok = g.spawnFishSchool()
	case components.SpeciesShip:
		ok = g.spawnShip()
	case components.SpeciesIceberg:
		ok = g.spawnIceberg()
	case components.SpeciesAdultWhale:
		ok = g.spawnAdultWhale()
	case components.SpeciesBabyWhale:
		ok = g.spawnBabyWhale(player)
	default:
		slog.Warn("unknown species", "species", sp)
		return false
	}

	if !ok {
		g.collector.RecordSpawnSkipped()
		slog.Debug("spawn_skipped", "species", sp.String(), "window_w", g.window.W, "window_h", g.window.H)
		return false
	}
	g.events.Emit(systems.SpawnRequest{Species: sp})
	return true
}

// path returns a fresh off-screen creature path.
func (g *Game) path() (start, end r2.Vec, ok bool) {
	return systems.CreaturePath(g.window, g.cfg.Movement.SpriteMargin, g.rng)
}

func (g *Game) spawnBird() bool {
	start, end, ok := g.path()
	if !ok {
		return false
	}
	speed := g.cfg.Bird.SpeedFactor * g.cfg.Travel.Speed
	behavior := g.birds.NewBehavior(g.rng)
	g.birdMapper.NewEntity(
		&components.Position{X: start.X, Y: start.Y},
		&components.Velocity{},
		&components.Rotation{Heading: headingTowards(start, end)},
		&components.Creature{Species: components.SpeciesBird},
		&components.Target{Point: end, Speed: speed, RemoveOnArrival: true},
		&components.Path{Start: start, End: end},
		&behavior,
	)
	return true
}

// spawnFishSchool creates a school of boids around the path start, all
// heading for a goal past the despawn line beyond the path end.
func (g *Game) spawnFishSchool() bool {
	start, end, ok := g.path()
	if !ok {
		return false
	}
	goal := systems.ExtendPath(start, end, g.cfg.Movement.DespawnBuffer)
	bc := g.cfg.Boids
	heading := headingTowards(start, end)
	dir := r2.Vec{X: math.Cos(heading), Y: math.Sin(heading)}
	vel := r2.Scale(bc.MaxSpeed, dir)
	spread := bc.SchoolSpread

	for i := 0; i < bc.SchoolSize; i++ {
		boid := components.Boid{
			MinSpeed:       bc.MinSpeed,
			MaxSpeed:       bc.MaxSpeed,
			Cohesion:       bc.Cohesion,
			Separation:     bc.Separation,
			Alignment:      bc.Alignment,
			FOV:            g.cfg.Derived.FOVRad,
			ProtectedRange: bc.ProtectedRange,
			ViewRange:      bc.ViewRange,
			MaxTurnRate:    bc.MaxTurnRate,
			Jitter:         bc.Jitter,
			GoalWeight:     bc.GoalWeight,
			Goal:           goal,
			HasGoal:        true,
		}
		g.fishMapper.NewEntity(
			&components.Position{X: start.X + g.rng.Range(-spread, spread), Y: start.Y + g.rng.Range(-spread, spread)},
			&components.Velocity{X: vel.X, Y: vel.Y},
			&components.Rotation{Heading: heading},
			&components.Creature{Species: components.SpeciesFish},
			&boid,
		)
	}
	return true
}

func (g *Game) spawnShip() bool {
	start, end, ok := g.path()
	if !ok {
		return false
	}
	speed := g.cfg.Movement.ShipSpeed * g.cfg.Travel.Speed
	rep := g.cfg.Repulsors.Ship
	g.spawnHazard(components.SpeciesShip, start, r2.Scale(speed, unit(r2.Sub(end, start))), rep.Strength, rep.Range)
	return true
}

// spawnIceberg places an iceberg just below the window drifting up past the
// player.
func (g *Game) spawnIceberg() bool {
	if !g.window.Valid() {
		return false
	}
	m := g.cfg.Movement.SpriteMargin / 2
	x := g.window.W / 2
	if g.window.W > 2*m {
		x = g.rng.Range(m, g.window.W-m)
	}
	speed := g.cfg.Movement.IcebergSpeed * g.cfg.Movement.ShipSpeed * g.cfg.Travel.Speed
	rep := g.cfg.Repulsors.Iceberg
	g.spawnHazard(components.SpeciesIceberg, r2.Vec{X: x, Y: g.window.H + icebergRise}, r2.Vec{Y: -speed}, rep.Strength, rep.Range)
	return true
}

// spawnHazard creates a constant-velocity repulsor.
func (g *Game) spawnHazard(sp components.Species, at, vel r2.Vec, strength, rng float64) {
	g.hazardMapper.NewEntity(
		&components.Position{X: at.X, Y: at.Y},
		&components.Velocity{X: vel.X, Y: vel.Y},
		&components.Rotation{Heading: math.Atan2(vel.Y, vel.X)},
		&components.Creature{Species: sp},
		&components.Repulsor{Strength: strength, Range: rng},
	)
}

func (g *Game) spawnAdultWhale() bool {
	start, end, ok := g.path()
	if !ok {
		return false
	}
	vel := r2.Scale(g.whales.CrossingSpeed(), unit(r2.Sub(end, start)))
	rep := g.cfg.Repulsors.AdultWhale
	g.adultMapper.NewEntity(
		&components.Position{X: start.X, Y: start.Y},
		&components.Velocity{X: vel.X, Y: vel.Y},
		&components.Rotation{Heading: headingTowards(start, end)},
		&components.Creature{Species: components.SpeciesAdultWhale},
		&components.Repulsor{Strength: rep.Strength, Range: rep.Range},
		&components.WhaleBehavior{Mode: components.WhaleTravelling},
	)
	return true
}

// spawnBabyWhale creates a baby at its trailing point behind the player.
func (g *Game) spawnBabyWhale(player systems.PlayerView) bool {
	if !player.Present || !g.window.Valid() {
		return false
	}
	at := g.whales.BabyPoint(player)
	g.babyMapper.NewEntity(
		&components.Position{X: at.X, Y: at.Y},
		&components.Velocity{X: player.Vel.X, Y: player.Vel.Y},
		&components.Rotation{Heading: player.Heading},
		&components.Creature{Species: components.SpeciesBabyWhale},
		&components.BabyWhale{},
	)
	return true
}

func unit(v r2.Vec) r2.Vec {
	n := r2.Norm(v)
	if n == 0 {
		return r2.Vec{}
	}
	return r2.Scale(1/n, v)
}

func headingTowards(from, to r2.Vec) float64 {
	d := r2.Sub(to, from)
	return math.Atan2(d.Y, d.X)
}
