package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/migration/ui"
)

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < ui.MaxSpeed {
		g.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyF) {
		g.ForceFlip()
	}
	if rl.IsKeyPressed(rl.KeyTab) && g.panel != nil {
		g.panel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.showPerf = !g.showPerf
	}

	g.SetIntent(keyboardIntent())
}

// keyboardIntent maps held keys to a movement intent. +Y is up the screen.
func keyboardIntent() r2.Vec {
	var intent r2.Vec
	if rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA) {
		intent.X--
	}
	if rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD) {
		intent.X++
	}
	if rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW) {
		intent.Y++
	}
	if rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS) {
		intent.Y--
	}
	return intent
}

// handleResize checks for window resize and propagates new dimensions.
// A minimised window reports a zero size, which the systems treat as
// invalid and skip.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() && !rl.IsWindowMinimized() {
		return
	}
	w := float64(rl.GetScreenWidth())
	h := float64(rl.GetScreenHeight())
	if rl.IsWindowMinimized() {
		w, h = 0, 0
	}
	if w == g.window.W && h == g.window.H {
		return
	}
	g.SetWindow(w, h)
}

// applyControls applies the controls panel's changes.
func (g *Game) applyControls(action ui.ControlsAction) {
	if action.TogglePause {
		g.paused = !g.paused
	}
	if action.Speed > 0 {
		g.SetStepsPerUpdate(min(action.Speed, ui.MaxSpeed))
	}
	if action.ForceFlip {
		g.ForceFlip()
	}
}
