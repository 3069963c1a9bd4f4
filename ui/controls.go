package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// MaxSpeed is the highest steps-per-update the speed slider offers.
const MaxSpeed = 10

// ControlsState is the panel's view of the simulation controls.
type ControlsState struct {
	Paused bool
	Speed  int
}

// ControlsAction reports what the user changed this frame.
type ControlsAction struct {
	TogglePause bool
	Speed       int // New steps-per-update, or 0 when unchanged
	ForceFlip   bool
}

// ControlsPanel renders the simulation control buttons.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Draw renders the panel and returns the user's changes.
func (c *ControlsPanel) Draw(state ControlsState) ControlsAction {
	var action ControlsAction
	if !c.visible {
		return action
	}

	r := c.renderer
	pad := float32(r.Theme.Padding)
	x := float32(c.x) + pad
	w := float32(c.width) - pad*2

	r.DrawPanel(c.x, c.y, c.width, 118)
	y := float32(c.y) + pad
	rl.DrawText("Controls", int32(x), int32(y), 16, rl.White)
	y += 22

	pauseText := "Pause"
	if state.Paused {
		pauseText = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w/2 - 4, Height: 24}, pauseText) {
		action.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + w/2 + 4, Y: y, Width: w/2 - 4, Height: 24}, "Flip") {
		action.ForceFlip = true
	}
	y += 34

	r.DrawLabelValue(int32(x), int32(y), "Speed", fmt.Sprintf("%dx", state.Speed))
	y += 16
	speed := gui.SliderBar(
		rl.Rectangle{X: x + 12, Y: y, Width: w - 24, Height: 16},
		"1", fmt.Sprint(MaxSpeed),
		float32(state.Speed), 1, MaxSpeed,
	)
	if n := int(speed + 0.5); n != state.Speed {
		action.Speed = n
	}

	return action
}
