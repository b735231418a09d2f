package systems

import (
	"math"

	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/sim"
	"github.com/yohamta/donburi/ecs"
	dmath "github.com/yohamta/donburi/features/math"
)

const followSmoothing = 0.15

// NewCameraSystem keeps the camera on the player, inside the level.
func NewCameraSystem(w *sim.World) ecs.System {
	return func(e *ecs.ECS) {
		camera := getOrCreateCamera(e)

		player, ok := w.Player()
		if !ok {
			return // no player (could be dead), skip camera update
		}
		target := player.Position()
		target = clampToLevel(target, float64(w.Level.Width), float64(w.Level.Height))

		camera.Position.X += (target.X - camera.Position.X) * followSmoothing
		camera.Position.Y += (target.Y - camera.Position.Y) * followSmoothing
	}
}

// clampToLevel keeps the view inside the level. A level smaller than the
// screen is centered instead.
func clampToLevel(target dmath.Vec2, levelWidth, levelHeight float64) dmath.Vec2 {
	screenWidth := float64(config.C.Width)
	screenHeight := float64(config.C.Height)

	target.X = clampAxis(target.X, screenWidth/2, levelWidth-screenWidth/2, levelWidth/2)
	target.Y = clampAxis(target.Y, screenHeight/2, levelHeight-screenHeight/2, levelHeight/2)
	return target
}

func clampAxis(v, lo, hi, center float64) float64 {
	if lo > hi {
		return center
	}
	return math.Max(lo, math.Min(hi, v))
}

// CenterCamera snaps the camera onto p.
func CenterCamera(e *ecs.ECS, p dmath.Vec2) {
	getOrCreateCamera(e).Position = p
}

func getOrCreateCamera(e *ecs.ECS) *components.CameraData {
	entry, ok := components.Camera.First(e.World)
	if !ok {
		entry = e.World.Entry(e.World.Create(components.Camera))
	}
	return components.Camera.Get(entry)
}

// cameraOffset is what gets added to a world position to place it on screen.
func cameraOffset(e *ecs.ECS) (float64, float64) {
	camera := getOrCreateCamera(e)
	return float64(config.C.Width)/2 - camera.Position.X, float64(config.C.Height)/2 - camera.Position.Y
}

// ScreenToWorld converts a screen position into level coordinates.
func ScreenToWorld(e *ecs.ECS, x, y float64) (float64, float64) {
	dx, dy := cameraOffset(e)
	return x - dx, y - dy
}
