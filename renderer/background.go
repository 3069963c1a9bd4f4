package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"
)

// BackgroundRenderer fills the screen with the sky-tinted sea colour.
type BackgroundRenderer struct {
	shade float32 // Darkening applied to the bottom edge
}

// NewBackgroundRenderer creates a new background renderer.
func NewBackgroundRenderer() *BackgroundRenderer {
	return &BackgroundRenderer{shade: 0.7}
}

// Draw renders a vertical gradient from tint at the top to a darker tint at
// the bottom. tint components are in [0, 255].
func (b *BackgroundRenderer) Draw(tint r3.Vec, screenW, screenH int32) {
	top := ToColor(tint, 255)
	bottom := ToColor(r3.Scale(float64(b.shade), tint), 255)
	rl.DrawRectangleGradientV(0, 0, screenW, screenH, top, bottom)
}

// ToColor converts an RGB vector with 0-255 components to a raylib colour.
func ToColor(v r3.Vec, alpha uint8) rl.Color {
	return rl.Color{R: channel(v.X), G: channel(v.Y), B: channel(v.Z), A: alpha}
}

func channel(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}
