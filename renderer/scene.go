// Package renderer draws the simulation with raylib primitives.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"
)

// maxPrecipitation is the particle count at full intensity.
const maxPrecipitation = 600

// Scene owns the per-frame renderers.
type Scene struct {
	background *BackgroundRenderer
	particles  *ParticleRenderer
}

// NewScene creates a scene. Must be called after the raylib window exists.
func NewScene() *Scene {
	return &Scene{
		background: NewBackgroundRenderer(),
		particles:  NewParticleRenderer(maxPrecipitation),
	}
}

// DrawBackground fills the screen with the sky tint.
func (s *Scene) DrawBackground(tint r3.Vec, screenW, screenH int32) {
	s.background.Draw(tint, screenW, screenH)
}

// DrawPrecipitation advances and draws rain or snow. intensity is the
// precipitation factor in [0, 1].
func (s *Scene) DrawPrecipitation(dt, intensity float32, snow bool, screenW, screenH int32) {
	s.particles.Update(dt, intensity, snow, float32(screenW), float32(screenH))
	s.particles.Draw(snow, 0.4+0.6*intensity)
	if intensity > 0 {
		// Overcast dimming
		rl.DrawRectangle(0, 0, screenW, screenH, rl.Color{R: 40, G: 45, B: 55, A: uint8(intensity * 70)})
	}
}

// Unload frees resources.
func (s *Scene) Unload() {
	s.particles.drops = nil
}
