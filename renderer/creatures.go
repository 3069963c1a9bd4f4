package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/migration/components"
)

// creatureStyle is the base size and colour of a species.
type creatureStyle struct {
	radius float32
	color  rl.Color
}

var creatureStyles = [components.NumSpecies]creatureStyle{
	components.SpeciesBird:       {radius: 5, color: rl.Color{R: 235, G: 235, B: 240, A: 255}},
	components.SpeciesFish:       {radius: 3, color: rl.Color{R: 200, G: 210, B: 120, A: 230}},
	components.SpeciesShip:       {radius: 14, color: rl.Color{R: 120, G: 60, B: 40, A: 255}},
	components.SpeciesIceberg:    {radius: 18, color: rl.Color{R: 225, G: 240, B: 250, A: 255}},
	components.SpeciesAdultWhale: {radius: 16, color: rl.Color{R: 60, G: 70, B: 90, A: 255}},
	components.SpeciesBabyWhale:  {radius: 8, color: rl.Color{R: 90, G: 100, B: 120, A: 255}},
	components.SpeciesPlayer:     {radius: 14, color: rl.Color{R: 40, G: 50, B: 75, A: 255}},
}

// DrawCreature draws a creature facing heading. scale multiplies the base
// size; birds use it to grow while circling the player.
func DrawCreature(sp components.Species, x, y, heading, scale float32) {
	if int(sp) >= len(creatureStyles) || scale <= 0 {
		return
	}
	style := creatureStyles[sp]
	radius := style.radius * scale

	switch sp {
	case components.SpeciesShip:
		drawHull(x, y, heading, radius, style.color)
	case components.SpeciesIceberg:
		rl.DrawPoly(rl.Vector2{X: x, Y: y}, 6, radius, heading*rl.Rad2deg, style.color)
	case components.SpeciesAdultWhale, components.SpeciesBabyWhale, components.SpeciesPlayer:
		drawWhale(x, y, heading, radius, style.color)
	default:
		drawOrientedTriangle(x, y, heading, radius, style.color, false)
	}
}

// DrawWave draws a fading wave crest. life is the remaining fraction of
// its lifetime in [0, 1].
func DrawWave(x, y, life float32) {
	if life <= 0 {
		return
	}
	a := uint8(math.Min(1, float64(life)) * 120)
	rl.DrawLineEx(rl.Vector2{X: x - 10, Y: y}, rl.Vector2{X: x + 10, Y: y}, 2, rl.Color{R: 255, G: 255, B: 255, A: a})
}

// drawWhale draws a body ellipse with a tail fluke behind it.
func drawWhale(x, y, heading, radius float32, color rl.Color) {
	cos := float32(math.Cos(float64(heading)))
	sin := float32(math.Sin(float64(heading)))

	// Body segments along the heading
	for i, f := range []float32{0.6, 0, -0.6} {
		r := radius * (0.7 - 0.15*float32(i))
		rl.DrawCircleV(rl.Vector2{X: x + cos*radius*f, Y: y + sin*radius*f}, r, color)
	}
	drawOrientedTriangle(x-cos*radius*1.4, y-sin*radius*1.4, heading+math.Pi, radius*0.5, color, false)
}

// drawHull draws a ship as a rotated rectangle.
func drawHull(x, y, heading, radius float32, color rl.Color) {
	rect := rl.Rectangle{X: x, Y: y, Width: radius * 2, Height: radius * 0.7}
	origin := rl.Vector2{X: radius, Y: radius * 0.35}
	rl.DrawRectanglePro(rect, origin, heading*rl.Rad2deg, color)
}

// drawOrientedTriangle draws a triangle pointing in the heading direction.
func drawOrientedTriangle(x, y, heading, radius float32, color rl.Color, outline bool) {
	cos := float32(math.Cos(float64(heading)))
	sin := float32(math.Sin(float64(heading)))

	front := rl.Vector2{X: x + cos*radius*1.5, Y: y + sin*radius*1.5}

	backAngle := float64(heading) + math.Pi*0.8
	backLeft := rl.Vector2{X: x + float32(math.Cos(backAngle))*radius, Y: y + float32(math.Sin(backAngle))*radius}

	backAngle = float64(heading) - math.Pi*0.8
	backRight := rl.Vector2{X: x + float32(math.Cos(backAngle))*radius, Y: y + float32(math.Sin(backAngle))*radius}

	// Counter-clockwise winding
	rl.DrawTriangle(front, backRight, backLeft, color)
	if outline {
		rl.DrawTriangleLines(front, backLeft, backRight, rl.White)
	}
}
