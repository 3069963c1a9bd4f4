package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/migration/components"
)

type movementFixture struct {
	world    *ecs.World
	sys      *MovementSystem
	seekers  *ecs.Map5[components.Position, components.Velocity, components.Rotation, components.Creature, components.Target]
	drifters *ecs.Map4[components.Position, components.Velocity, components.Rotation, components.Creature]
	waves    *ecs.Map1[components.Wave]
}

func newMovementFixture(t *testing.T) *movementFixture {
	t.Helper()
	cfg := testConfig(t)
	w := ecs.NewWorld()
	return &movementFixture{
		world:    w,
		sys:      NewMovementSystem(w, cfg.Movement.DespawnBuffer, cfg.Movement.TurnLerp),
		seekers:  ecs.NewMap5[components.Position, components.Velocity, components.Rotation, components.Creature, components.Target](w),
		drifters: ecs.NewMap4[components.Position, components.Velocity, components.Rotation, components.Creature](w),
		waves:    ecs.NewMap1[components.Wave](w),
	}
}

func (f *movementFixture) drifter(sp components.Species, x, y, vx, vy float64) ecs.Entity {
	return f.drifters.NewEntity(
		&components.Position{X: x, Y: y},
		&components.Velocity{X: vx, Y: vy},
		&components.Rotation{},
		&components.Creature{Species: sp},
	)
}

func TestMoveTowardsArrival(t *testing.T) {
	f := newMovementFixture(t)
	e := f.seekers.NewEntity(
		&components.Position{},
		&components.Velocity{},
		&components.Rotation{Heading: 2},
		&components.Creature{Species: components.SpeciesBird},
		&components.Target{Point: r2.Vec{X: 10}, Speed: 5},
	)

	var events Events
	var despawn DespawnQueue

	f.sys.MoveTowards(1, &events, &despawn)
	pos, vel, rot, _, _ := f.seekers.Get(e)
	assert.Equal(t, r2.Vec{X: 5}, pos.Vec())
	assert.Equal(t, r2.Vec{X: 5}, vel.Vec())
	assert.InDelta(t, 0, rot.Heading, 1e-9)
	assert.Zero(t, events.Len())

	// Reaching the point never overshoots and reports arrival once
	f.sys.MoveTowards(3, &events, &despawn)
	f.sys.MoveTowards(1, &events, &despawn)
	pos, _, _, _, target := f.seekers.Get(e)
	assert.Equal(t, r2.Vec{X: 10}, pos.Vec())
	assert.True(t, target.Arrived)

	evs := events.Drain()
	require.Len(t, evs, 1)
	assert.Equal(t, CreatureArrivedAtTarget{Entity: e, Species: components.SpeciesBird}, evs[0])
	assert.Zero(t, despawn.Len())
}

func TestMoveTowardsRemoveOnArrival(t *testing.T) {
	f := newMovementFixture(t)
	e := f.seekers.NewEntity(
		&components.Position{X: 9.5},
		&components.Velocity{},
		&components.Rotation{},
		&components.Creature{Species: components.SpeciesBabyWhale},
		&components.Target{Point: r2.Vec{X: 10}, Speed: 5, RemoveOnArrival: true},
	)

	var events Events
	var despawn DespawnQueue
	f.sys.MoveTowards(0.5, &events, &despawn)

	require.Equal(t, 1, events.Len())
	require.Equal(t, 1, despawn.Len())
	assert.Equal(t, 1, despawn.Apply(f.world, nil))
	assert.False(t, f.world.Alive(e))
}

func TestMoveWithVelocity(t *testing.T) {
	f := newMovementFixture(t)
	ship := f.drifter(components.SpeciesShip, 100, 100, 0, -20)

	boids := ecs.NewMap3[components.Position, components.Velocity, components.Boid](f.world)
	fish := boids.NewEntity(&components.Position{X: 50, Y: 50}, &components.Velocity{X: 25}, &components.Boid{})

	f.sys.MoveWithVelocity(0.5)

	pos, _, rot, _ := f.drifters.Get(ship)
	assert.Equal(t, r2.Vec{X: 100, Y: 90}, pos.Vec())
	assert.InDelta(t, -TravelHeading, rot.Heading, 1e-9)

	fishPos, _, _ := boids.Get(fish)
	assert.Equal(t, r2.Vec{X: 50, Y: 50}, fishPos.Vec(), "boids move in the flocking system")
}

func TestDespawnOutOfWindow(t *testing.T) {
	f := newMovementFixture(t)
	gone := f.drifter(components.SpeciesShip, -200, 100, 0, 0)
	f.drifter(components.SpeciesShip, -100, 100, 0, 0)
	f.drifter(components.SpeciesPlayer, -500, 0, 0, 0)

	var despawn DespawnQueue
	assert.Zero(t, f.sys.DespawnOutOfWindow(Window{}, &despawn), "minimised window removes nothing")

	require.Equal(t, 1, f.sys.DespawnOutOfWindow(testWindow, &despawn))
	var removed []ecs.Entity
	despawn.Apply(f.world, func(e ecs.Entity) { removed = append(removed, e) })
	assert.Equal(t, []ecs.Entity{gone}, removed)
}

func TestExpireWaves(t *testing.T) {
	f := newMovementFixture(t)
	e := f.waves.NewEntity(&components.Wave{ExpiresAt: 10})

	var despawn DespawnQueue
	f.sys.ExpireWaves(9, &despawn)
	assert.Zero(t, despawn.Len())

	f.sys.ExpireWaves(10, &despawn)
	require.Equal(t, 1, despawn.Len())
	despawn.Apply(f.world, nil)
	assert.False(t, f.world.Alive(e))
}

func TestDespawnQueue(t *testing.T) {
	f := newMovementFixture(t)
	a := f.drifter(components.SpeciesFish, 0, 0, 0, 0)
	b := f.drifter(components.SpeciesFish, 0, 0, 0, 0)

	var q DespawnQueue
	q.Add(a)
	q.Add(a)
	q.Add(b)
	assert.Equal(t, 2, q.Len())

	f.world.RemoveEntity(b)
	assert.Equal(t, 1, q.Apply(f.world, nil), "dead entities are skipped")
	assert.Zero(t, q.Len())

	// The queue is reusable after Apply
	c := f.drifter(components.SpeciesFish, 0, 0, 0, 0)
	q.Add(c)
	assert.Equal(t, 1, q.Apply(f.world, nil))
}
