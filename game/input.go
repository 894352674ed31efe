package game

import rl "github.com/gen2brain/raylib-go/raylib"

// keyZoomFactor is the zoom multiplier per +/- key press.
const keyZoomFactor = 1.1

// handleInput processes keyboard and pointer input.
func (g *Game) handleInput() {
	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
		g.resize(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	} else if rl.IsWindowResized() {
		g.resize(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.sim.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.sim.Reset()
	}

	// Panel toggles
	if key := rl.GetKeyPressed(); key != 0 {
		g.overlays.HandleKeyPress(key)
	}

	g.handleCameraInput()
}

// handleCameraInput maps drag to rotation and the wheel to zoom.
func (g *Game) handleCameraInput() {
	cam := g.sim.Camera()
	mouse := rl.GetMousePosition()

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !g.controls.Contains(mouse.X, mouse.Y) {
		g.dragging = true
		cam.BeginDrag(float64(mouse.X), float64(mouse.Y))
	}
	if g.dragging {
		if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
			cam.DragTo(float64(mouse.X), float64(mouse.Y))
		} else {
			g.dragging = false
			cam.EndDrag()
		}
	}

	// Positive wheel is scroll up, which zooms in
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		cam.Wheel(float64(wheel))
	}

	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		cam.ZoomBy(keyZoomFactor)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		cam.ZoomBy(1 / keyZoomFactor)
	}

	// Home key to reset camera
	if rl.IsKeyPressed(rl.KeyHome) {
		cam.Reset()
	}
}
