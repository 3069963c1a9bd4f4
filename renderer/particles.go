package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/migration/systems"
)

// precipitationSeed keeps the overlay independent of the simulation's
// random stream.
const precipitationSeed = 0x5eaf0a1

type drop struct {
	x, y  float32
	speed float32
	size  float32
}

// ParticleRenderer draws rain or snow. The number of live particles follows
// the precipitation intensity.
type ParticleRenderer struct {
	drops    []drop
	maxDrops int
	rng      systems.Random
}

// NewParticleRenderer creates a renderer holding at most maxDrops particles.
func NewParticleRenderer(maxDrops int) *ParticleRenderer {
	return &ParticleRenderer{
		maxDrops: maxDrops,
		rng:      systems.NewRandom(precipitationSeed),
	}
}

// Len returns the number of live particles.
func (r *ParticleRenderer) Len() int {
	return len(r.drops)
}

// Update moves particles and grows or shrinks the set towards
// intensity*maxDrops. intensity is in [0, 1].
func (r *ParticleRenderer) Update(dt, intensity float32, snow bool, screenW, screenH float32) {
	want := int(intensity * float32(r.maxDrops))
	for len(r.drops) < want {
		r.drops = append(r.drops, r.newDrop(snow, screenW, r.rng.Range(0, float64(screenH))))
	}
	if len(r.drops) > want {
		r.drops = r.drops[:want]
	}

	for i := range r.drops {
		d := &r.drops[i]
		d.y += d.speed * dt
		if snow {
			d.x += float32(r.rng.Range(-20, 20)) * dt
		}
		if d.y > screenH {
			*d = r.newDrop(snow, screenW, 0)
		}
	}
}

func (r *ParticleRenderer) newDrop(snow bool, screenW float32, y float64) drop {
	d := drop{
		x: float32(r.rng.Range(0, float64(screenW))),
		y: float32(y),
	}
	if snow {
		d.speed = float32(r.rng.Range(30, 60))
		d.size = float32(r.rng.Range(1, 2.5))
	} else {
		d.speed = float32(r.rng.Range(300, 450))
		d.size = float32(r.rng.Range(6, 12))
	}
	return d
}

// Draw renders all particles. Snow is drawn as flakes, rain as streaks.
func (r *ParticleRenderer) Draw(snow bool, alpha float32) {
	a := uint8(alpha * 200)
	for i := range r.drops {
		d := &r.drops[i]
		if snow {
			rl.DrawCircle(int32(d.x), int32(d.y), d.size, rl.Color{R: 240, G: 245, B: 255, A: a})
			continue
		}
		rl.DrawLine(int32(d.x), int32(d.y), int32(d.x-1), int32(d.y+d.size), rl.Color{R: 170, G: 190, B: 220, A: a})
	}
}
