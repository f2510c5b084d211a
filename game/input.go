package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput gathers keyboard and pointer state and forwards it to the
// flight model.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	if rl.IsKeyPressed(rl.KeyC) {
		g.rig.CycleMode()
		g.model.SetPointerScale(g.rig.SensitivityScale())
	}

	if rl.IsKeyPressed(rl.KeyI) {
		g.invertY = !g.invertY
	}

	if rl.IsKeyPressed(rl.KeyF5) {
		g.saveSnapshot()
	}

	var throttleDir float64
	if rl.IsKeyDown(rl.KeyW) {
		throttleDir = 1
	} else if rl.IsKeyDown(rl.KeyS) {
		throttleDir = -1
	}

	// A yaws the nose left, D right.
	var yaw float64
	if rl.IsKeyDown(rl.KeyA) {
		yaw = 1
	} else if rl.IsKeyDown(rl.KeyD) {
		yaw = -1
	}

	boost := rl.IsKeyDown(rl.KeyLeftShift)
	g.model.SetControlInputs(throttleDir, yaw, boost, g.invertY)

	delta := rl.GetMouseDelta()
	g.model.ApplyPointerDelta(float64(delta.X), float64(delta.Y))
}
