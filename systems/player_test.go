package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/migration/components"
)

func newPlayerFixture(t *testing.T) (*PlayerSystem, *ecs.Map4[components.Position, components.Velocity, components.Rotation, components.Player]) {
	t.Helper()
	cfg := testConfig(t)
	w := ecs.NewWorld()
	return NewPlayerSystem(w, cfg.Player), ecs.NewMap4[components.Position, components.Velocity, components.Rotation, components.Player](w)
}

func TestPlayerArrival(t *testing.T) {
	sys, players := newPlayerFixture(t)
	e := players.NewEntity(&components.Position{X: 400, Y: -50}, &components.Velocity{}, &components.Rotation{}, &components.Player{})
	rest := sys.RestPoint(testWindow)
	require.Equal(t, r2.Vec{X: 400, Y: 150}, rest)

	// Arrival ignores intent and swims straight down
	for i := 0; i < 3; i++ {
		sys.Update(1, r2.Vec{X: 1}, testWindow)
	}
	pos, vel, rot, player := players.Get(e)
	assert.Equal(t, r2.Vec{X: 400, Y: 130}, pos.Vec())
	assert.Equal(t, r2.Vec{X: 0, Y: 60}, vel.Vec())
	assert.Equal(t, TravelHeading, rot.Heading)
	assert.False(t, player.Arrived)

	sys.Update(1, r2.Vec{}, testWindow)
	pos, _, _, player = players.Get(e)
	assert.Equal(t, rest, pos.Vec())
	assert.True(t, player.Arrived)
}

func TestPlayerIntent(t *testing.T) {
	sys, players := newPlayerFixture(t)
	e := players.NewEntity(&components.Position{X: 400, Y: 150}, &components.Velocity{}, &components.Rotation{}, &components.Player{Arrived: true})

	sys.Update(0.5, r2.Vec{X: 1}, testWindow)
	pos, vel, rot, player := players.Get(e)
	assert.InDelta(t, 460, pos.X, 1e-9)
	assert.InDelta(t, 120, vel.X, 1e-9)
	assert.InDelta(t, 0.008, player.Turn, 1e-9)
	assert.InDelta(t, TravelHeading-0.008*1.3, rot.Heading, 1e-9)

	// +Y intent moves up the screen
	sys.Update(0.1, r2.Vec{Y: 1}, testWindow)
	pos, _, _, _ = players.Get(e)
	assert.InDelta(t, 138, pos.Y, 1e-9)

	// The player stays inside the clamp buffer
	sys.Update(10, r2.Vec{X: -1, Y: 1}, testWindow)
	pos, _, _, _ = players.Get(e)
	assert.Equal(t, r2.Vec{X: 160, Y: 120}, pos.Vec())
}

func TestPlayerSkipsInvalidWindow(t *testing.T) {
	sys, players := newPlayerFixture(t)
	e := players.NewEntity(&components.Position{X: 400, Y: 150}, &components.Velocity{}, &components.Rotation{}, &components.Player{Arrived: true})

	sys.Update(1, r2.Vec{X: 1}, Window{})
	sys.Update(0, r2.Vec{X: 1}, testWindow)
	pos, _, _, _ := players.Get(e)
	assert.Equal(t, r2.Vec{X: 400, Y: 150}, pos.Vec())
}

func TestPlayerResetForFlip(t *testing.T) {
	sys, players := newPlayerFixture(t)
	e := players.NewEntity(
		&components.Position{X: 200, Y: 170},
		&components.Velocity{X: 50},
		&components.Rotation{Heading: 1},
		&components.Player{Arrived: true, Turn: 0.3},
	)

	sys.ResetForFlip(testWindow)
	pos, vel, rot, player := players.Get(e)
	assert.Equal(t, r2.Vec{X: 400, Y: 170}, pos.Vec())
	assert.Equal(t, r2.Vec{}, vel.Vec())
	assert.Equal(t, TravelHeading, rot.Heading)
	assert.Zero(t, player.Turn)
	assert.True(t, player.Arrived)
}

func TestPlayerView(t *testing.T) {
	sys, players := newPlayerFixture(t)
	assert.False(t, sys.View().Present)

	e := players.NewEntity(&components.Position{X: 1, Y: 2}, &components.Velocity{X: 3}, &components.Rotation{Heading: TravelHeading}, &components.Player{})
	view := sys.View()
	require.True(t, view.Present)
	assert.Equal(t, e, view.Entity)
	assert.Equal(t, r2.Vec{X: 1, Y: 2}, view.Pos)
	assert.Equal(t, r2.Vec{X: 3}, view.Vel)
	assert.InDelta(t, 1, view.Forward().Y, 1e-9)
}
