package systems

import (
	"fmt"
	"image/color"

	"github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/fonts"
	"github.com/automoto/skirmish/sim"
	"github.com/automoto/skirmish/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // text/v2 needs a different face type
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi/ecs"
)

// NewDebugRenderer outlines every collision object on screen and prints the
// frame rates. It shares the F3 toggle with the perception rays.
func NewDebugRenderer(w *sim.World) ecs.RendererWithArg[ebiten.Image] {
	return func(e *ecs.ECS, screen *ebiten.Image) {
		if !config.Debug.DrawRays {
			return
		}

		camX, camY := cameraOffset(e)
		width, height := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())

		// Viewport in world coordinates
		viewX, viewY := -camX, -camY

		for _, obj := range w.Space.Objects() {
			if obj.X+obj.W < viewX || obj.X > viewX+width || obj.Y+obj.H < viewY || obj.Y > viewY+height {
				continue
			}
			strokeRect(screen, obj.X+camX, obj.Y+camY, obj.W, obj.H, debugColor(obj))
		}

		info := fmt.Sprintf("TPS %.0f  FPS %.0f  objects %d", ebiten.ActualTPS(), ebiten.ActualFPS(), len(w.Space.Objects()))
		text.Draw(screen, info, fonts.Small.Get(), hudMargin, int(height)-hudMargin, config.Yellow)
	}
}

func debugColor(obj *resolv.Object) color.RGBA {
	switch {
	case obj.HasTags(tags.ResolvSolid):
		return color.RGBA{100, 100, 100, 255} // Grey
	case obj.HasTags(tags.ResolvPlayer):
		return color.RGBA{0, 0, 255, 255} // Blue
	case obj.HasTags(tags.ResolvActor):
		return color.RGBA{255, 0, 0, 255} // Red
	case obj.HasTags(tags.ResolvPlug), obj.HasTags(tags.ResolvChest):
		return color.RGBA{0, 255, 0, 255} // Green
	}
	return color.RGBA{0, 255, 255, 255} // Cyan default
}
