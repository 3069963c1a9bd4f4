package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/migration/components"
)

const birdDT = 1.0 / 64

func newBirdFixture(t *testing.T) (*BirdSystem, *components.Target, *components.Path) {
	t.Helper()
	cfg := testConfig(t)
	s := NewBirdSystem(ecs.NewWorld(), cfg.Bird)
	path := &components.Path{Start: r2.Vec{X: -64, Y: 100}, End: r2.Vec{X: 864, Y: 200}}
	target := &components.Target{Point: path.End, Speed: 25, RemoveOnArrival: true}
	return s, target, path
}

func TestBirdNewBehavior(t *testing.T) {
	s, _, _ := newBirdFixture(t)
	assert.Equal(t, components.BirdIncurious, s.NewBehavior(FixedRandom{Hit: true}).Mode)

	b := s.NewBehavior(FixedRandom{Hit: false})
	assert.Equal(t, components.BirdNeutral, b.Mode)
	assert.InDelta(t, 1, b.Scale, 1e-9)
}

func TestBirdIncuriousNeverCurious(t *testing.T) {
	s, target, path := newBirdFixture(t)
	rng := NewRandom(1)
	b := components.BirdBehavior{Mode: components.BirdIncurious, Scale: 1}
	pos := r2.Vec{X: 400, Y: 150}
	player := PlayerView{Pos: pos, Present: true}

	for i := 0; i < 64*60; i++ {
		done := s.Step(&b, target, path, pos, float64(i)*birdDT, birdDT, player, rng)
		require.False(t, done)
		require.Equal(t, components.BirdIncurious, b.Mode)
	}
	assert.Equal(t, path.End, target.Point)
}

// TestBirdCuriosityTimeline follows a bird that notices the player at t=5
// and must be losing interest by t=31.
func TestBirdCuriosityTimeline(t *testing.T) {
	s, target, path := newBirdFixture(t)
	rng := NewRandom(11)
	b := s.NewBehavior(FixedRandom{Hit: false})
	pos := r2.Vec{X: 400, Y: 150}
	player := PlayerView{Pos: pos, Present: true}

	s.Step(&b, target, path, pos, 5, birdDT, player, rng)
	require.Equal(t, components.BirdCurious, b.Mode)
	assert.GreaterOrEqual(t, b.Until, 15.0)
	assert.LessOrEqual(t, b.Until, 30.0)
	assert.False(t, target.RemoveOnArrival)

	now := 5.0
	for now < 31 {
		now += birdDT
		s.Step(&b, target, path, pos, now, birdDT, player, rng)
	}
	assert.Equal(t, components.BirdLosingCuriosity, b.Mode)
	assert.Equal(t, path.End, target.Point)
	assert.True(t, target.RemoveOnArrival)
}

func TestBirdCuriousOnlyOnce(t *testing.T) {
	s, target, path := newBirdFixture(t)
	rng := NewRandom(5)
	b := s.NewBehavior(FixedRandom{Hit: false})
	pos := r2.Vec{X: 400, Y: 150}
	player := PlayerView{Pos: pos, Present: true}

	s.Step(&b, target, path, pos, 0, birdDT, player, rng)
	require.Equal(t, components.BirdCurious, b.Mode)
	until := b.Until

	// Staying close to the player does not re-roll the deadline
	for i := 1; i < 64; i++ {
		s.Step(&b, target, path, pos, float64(i)*birdDT, birdDT, player, rng)
	}
	assert.Equal(t, components.BirdCurious, b.Mode)
	assert.Equal(t, until, b.Until)
}

func TestBirdIgnoresDistantPlayer(t *testing.T) {
	s, target, path := newBirdFixture(t)
	b := s.NewBehavior(FixedRandom{Hit: false})
	pos := r2.Vec{X: 0, Y: 0}

	tests := []struct {
		name   string
		player PlayerView
	}{
		{"far away", PlayerView{Pos: r2.Vec{X: 500, Y: 500}, Present: true}},
		{"missing", PlayerView{Pos: pos}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.Step(&b, target, path, pos, 0, birdDT, tt.player, FixedRandom{Fraction: 0.5})
			assert.Equal(t, components.BirdNeutral, b.Mode)
		})
	}
}

func TestBirdShrinksAndRegrows(t *testing.T) {
	s, target, path := newBirdFixture(t)
	cfg := testConfig(t).Bird
	b := components.BirdBehavior{Mode: components.BirdCurious, Until: 100, Scale: 1}
	pos := r2.Vec{X: 400, Y: 150}
	player := PlayerView{Pos: pos, Present: true}
	rng := FixedRandom{Fraction: 0.5}

	for i := 0; i < 64*30; i++ {
		s.Step(&b, target, path, pos, float64(i)*birdDT, birdDT, player, rng)
	}
	assert.InDelta(t, cfg.MinScale, b.Scale, 1e-9)

	b.Mode = components.BirdLosingCuriosity
	steps := 0
	for !s.Step(&b, target, path, pos, 0, birdDT, player, rng) {
		steps++
		require.Less(t, steps, 64*60)
	}
	assert.InDelta(t, 1, b.Scale, 1e-9)
	assert.InDelta(t, s.LosingCuriosityDuration(), float64(steps+1)*birdDT, 2*birdDT)
}

func TestBirdSystemUpdate(t *testing.T) {
	cfg := testConfig(t)
	w := ecs.NewWorld()
	s := NewBirdSystem(w, cfg.Bird)
	mapper := ecs.NewMap4[components.Position, components.Target, components.Path, components.BirdBehavior](w)
	behaviors := ecs.NewMap[components.BirdBehavior](w)

	e := mapper.NewEntity(
		&components.Position{X: 400, Y: 150},
		&components.Target{Point: r2.Vec{X: 864, Y: 150}, Speed: 25, RemoveOnArrival: true},
		&components.Path{Start: r2.Vec{X: -64, Y: 150}, End: r2.Vec{X: 864, Y: 150}},
		&components.BirdBehavior{Mode: components.BirdNeutral, Scale: 1},
	)
	player := PlayerView{Pos: r2.Vec{X: 400, Y: 150}, Present: true}

	var events Events
	s.Update(0, birdDT, player, FixedRandom{Fraction: 0.5}, &events)
	require.Len(t, events.Pending(), 1)
	ev, ok := events.Drain()[0].(CuriosityChanged)
	require.True(t, ok)
	assert.True(t, ev.Curious)
	assert.Equal(t, e, ev.Entity)

	// Past the deadline the bird loses interest and eventually drops its behaviour
	now := behaviors.Get(e).Until
	s.Update(now, birdDT, player, FixedRandom{Fraction: 0.5}, &events)
	require.Len(t, events.Pending(), 1)
	assert.False(t, events.Drain()[0].(CuriosityChanged).Curious)

	for i := 0; i < 64*60 && behaviors.Has(e); i++ {
		s.Update(now, birdDT, player, FixedRandom{Fraction: 0.5}, &events)
	}
	assert.False(t, behaviors.Has(e))
	assert.True(t, w.Alive(e))
}
