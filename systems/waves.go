package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/migration/components"
	"github.com/pthm-cable/migration/config"
)

// WaveSystem scatters ambient waves that drift up the screen past the player.
type WaveSystem struct {
	mapper      *ecs.Map3[components.Position, components.Velocity, components.Wave]
	cfg         config.WavesConfig
	travelSpeed float64
	buffer      float64
	next        float64
	spawned     int
}

// NewWaveSystem creates a wave system. buffer is the despawn buffer the
// initial scatter extends into.
func NewWaveSystem(w *ecs.World, cfg config.WavesConfig, travelSpeed, buffer float64) *WaveSystem {
	return &WaveSystem{
		mapper:      ecs.NewMap3[components.Position, components.Velocity, components.Wave](w),
		cfg:         cfg,
		travelSpeed: travelSpeed,
		buffer:      buffer,
	}
}

// SpawnInitial scatters the initial waves across the window.
func (s *WaveSystem) SpawnInitial(now float64, win Window, rng Random) {
	if !win.Valid() {
		return
	}
	for i := 0; i < s.cfg.Initial; i++ {
		x := rng.Range(-0.9*s.buffer, win.W+0.9*s.buffer)
		y := rng.Range(32, win.H-32)
		s.spawn(x, y, now)
	}
}

// Update spawns a wave below the window whenever the interval has elapsed.
// Waves are skipped while the window is minimised.
func (s *WaveSystem) Update(now float64, win Window, rng Random) {
	if now < s.next {
		return
	}
	s.next = now + rng.Range(s.cfg.Interval[0], s.cfg.Interval[1])
	if !win.Valid() {
		return
	}
	x := rng.Range(-0.5*s.buffer, win.W+0.5*s.buffer)
	s.spawn(x, win.H+64, now)
}

// Spawned returns the number of waves spawned so far.
func (s *WaveSystem) Spawned() int {
	return s.spawned
}

func (s *WaveSystem) spawn(x, y, now float64) {
	s.mapper.NewEntity(
		&components.Position{X: x, Y: y},
		&components.Velocity{X: 0, Y: -s.travelSpeed},
		&components.Wave{ExpiresAt: now + s.cfg.Lifetime},
	)
	s.spawned++
}
