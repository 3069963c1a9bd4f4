package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/migration/components"
)

func countWaves(w *ecs.World) int {
	n := 0
	query := ecs.NewFilter1[components.Wave](w).Query()
	for query.Next() {
		n++
	}
	return n
}

func TestWavesSpawnInitial(t *testing.T) {
	cfg := testConfig(t)

	w := ecs.NewWorld()
	sys := NewWaveSystem(w, cfg.Waves, cfg.Travel.Speed, cfg.Movement.DespawnBuffer)
	sys.SpawnInitial(0, testWindow, NewRandom(1))
	assert.Equal(t, cfg.Waves.Initial, sys.Spawned())
	assert.Equal(t, cfg.Waves.Initial, countWaves(w))

	w = ecs.NewWorld()
	sys = NewWaveSystem(w, cfg.Waves, cfg.Travel.Speed, cfg.Movement.DespawnBuffer)
	sys.SpawnInitial(0, Window{}, NewRandom(1))
	assert.Zero(t, countWaves(w))
}

func TestWavesScheduledByTime(t *testing.T) {
	cfg := testConfig(t)
	w := ecs.NewWorld()
	sys := NewWaveSystem(w, cfg.Waves, cfg.Travel.Speed, cfg.Movement.DespawnBuffer)
	waves := ecs.NewMap3[components.Position, components.Velocity, components.Wave](w)
	rng := FixedRandom{Fraction: 0}

	sys.Update(0, testWindow, rng)
	require.Equal(t, 1, sys.Spawned())

	sys.Update(cfg.Waves.Interval[0]/2, testWindow, rng)
	assert.Equal(t, 1, sys.Spawned())

	// Skipped while minimised but still rescheduled
	sys.Update(cfg.Waves.Interval[0], Window{}, rng)
	assert.Equal(t, 1, sys.Spawned())

	sys.Update(2*cfg.Waves.Interval[0], testWindow, rng)
	assert.Equal(t, 2, sys.Spawned())

	query := ecs.NewFilter1[components.Wave](w).Query()
	for query.Next() {
		pos, vel, wave := waves.Get(query.Entity())
		assert.Equal(t, testWindow.H+64, pos.Y)
		assert.Equal(t, -cfg.Travel.Speed, vel.Y)
		assert.LessOrEqual(t, wave.ExpiresAt, 2*cfg.Waves.Interval[0]+cfg.Waves.Lifetime)
	}
}
