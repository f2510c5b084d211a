package game

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/halcyon-labs/aloft/vmath"
)

func rlVec(v vmath.Vec3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

// Draw renders one frame: terrain wireframe, vehicle marker and HUD.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(110, 160, 220, 255))

	cam := rl.Camera3D{
		Position:   rlVec(g.camPose.Position),
		Target:     rlVec(g.camPose.Target),
		Up:         rl.Vector3{Y: 1},
		Fovy:       float32(g.camPose.FOV),
		Projection: rl.CameraPerspective,
	}

	rl.BeginMode3D(cam)
	g.drawTerrain()
	g.drawVehicle()
	rl.EndMode3D()

	g.drawHUD()
	rl.EndDrawing()
}

// drawTerrain draws an elevation wireframe recentered on the vehicle so the
// visible window follows the flight path.
func (g *Game) drawTerrain() {
	step := g.cfg.Terrain.GridStep
	radius := g.cfg.Terrain.GridRadius
	pos, _ := g.model.VehiclePose()

	cx := math.Round(pos.X/step) * step
	cz := math.Round(pos.Z/step) * step

	n := 2*radius + 1
	heights := make([][]float64, n)
	for i := 0; i < n; i++ {
		heights[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			x := cx + float64(i-radius)*step
			z := cz + float64(j-radius)*step
			heights[i][j] = g.elev.Height(x, z)
		}
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x := cx + float64(i-radius)*step
			z := cz + float64(j-radius)*step
			a := rl.Vector3{X: float32(x), Y: float32(heights[i][j]), Z: float32(z)}
			col := terrainColor(heights[i][j])

			if i+1 < n {
				b := rl.Vector3{X: float32(x + step), Y: float32(heights[i+1][j]), Z: float32(z)}
				rl.DrawLine3D(a, b, col)
			}
			if j+1 < n {
				b := rl.Vector3{X: float32(x), Y: float32(heights[i][j+1]), Z: float32(z + step)}
				rl.DrawLine3D(a, b, col)
			}
		}
	}
}

// terrainColor shades the wireframe from valley green to ridge white.
func terrainColor(h float64) rl.Color {
	t := clampf(h/140, 0, 1)
	r := uint8(60 + t*180)
	gc := uint8(120 + t*120)
	b := uint8(60 + t*180)
	return rl.NewColor(r, gc, b, 255)
}

// drawVehicle draws the vehicle as a body sphere with nose, wing and fin
// lines so attitude reads at a glance.
func (g *Game) drawVehicle() {
	pos, orient := g.model.VehiclePose()
	forward := orient.Rotate(vmath.Vec3{Z: -1})
	right := orient.Rotate(vmath.Vec3{X: 1})
	up := orient.Rotate(vmath.Vec3{Y: 1})

	body := rl.Orange
	if g.model.AfterburnerActive() {
		body = rl.Red
	}

	rl.DrawSphere(rlVec(pos), 1.2, body)
	rl.DrawLine3D(rlVec(pos), rlVec(pos.Add(forward.Scale(6))), rl.Yellow)
	rl.DrawLine3D(rlVec(pos.Sub(right.Scale(4))), rlVec(pos.Add(right.Scale(4))), body)
	rl.DrawLine3D(rlVec(pos), rlVec(pos.Add(up.Scale(2.5))), body)
}

// drawHUD overlays the flight readouts.
func (g *Game) drawHUD() {
	snap := g.model.LastSnapshot()

	rl.DrawText(fmt.Sprintf("SPD %5.0f", snap.Speed), 20, 20, 20, rl.RayWhite)
	rl.DrawText(fmt.Sprintf("ALT %5.0f", snap.Altitude), 20, 45, 20, rl.RayWhite)
	rl.DrawText(fmt.Sprintf("THR %4.0f%%", snap.Throttle*100), 20, 70, 20, rl.RayWhite)
	rl.DrawText(fmt.Sprintf("G   %5.1f", snap.GForce), 20, 95, 20, rl.RayWhite)
	rl.DrawText(fmt.Sprintf("AOA %5.1f", snap.Alpha*180/math.Pi), 20, 120, 20, rl.RayWhite)

	fuelCol := rl.SkyBlue
	if snap.AfterburnerActive {
		fuelCol = rl.Red
	}
	rl.DrawText(fmt.Sprintf("AB  %4.0f%%", snap.AfterburnerFuel*100), 20, 145, 20, fuelCol)

	if snap.StallFraction > 0 {
		rl.DrawText("STALL", 20, 175, 26, rl.Red)
	}
	if g.paused {
		rl.DrawText("PAUSED", int32(g.cfg.Screen.Width/2-50), 20, 26, rl.Yellow)
	}

	rl.DrawText(g.rig.Mode().String(), int32(g.cfg.Screen.Width-140), 20, 20, rl.LightGray)
	rl.DrawFPS(int32(g.cfg.Screen.Width-100), 45)
}

func clampf(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
