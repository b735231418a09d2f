package systems

import (
	"fmt"
	"image/color"

	"github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/fonts"
	"github.com/automoto/skirmish/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // text/v2 needs a different face type
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

const hudMargin = 8

var overlayColor = color.NRGBA{0, 0, 0, 150}

// NewHUDRenderer draws the level name, run time, the player's state and
// the pause and end-of-level banners.
func NewHUDRenderer(w *sim.World, tickRate int) ecs.RendererWithArg[ebiten.Image] {
	return func(_ *ecs.ECS, screen *ebiten.Image) {
		if !config.Debug.DrawHUD {
			return
		}
		state := w.LevelState()
		face := fonts.Regular.Get()

		seconds := float64(state.Frame) / float64(tickRate)
		text.Draw(screen, fmt.Sprintf("%s  %.1fs", w.Level.Name, seconds), face, hudMargin, hudMargin+10, config.White)

		status := "player: gone"
		if player, ok := w.Player(); ok {
			status = "player: " + player.State().String()
			if player.Locked() {
				status += " (locked)"
			}
		}
		text.Draw(screen, status, fonts.Small.Get(), hudMargin, hudMargin+24, config.White)

		switch {
		case state.Finished && state.Succeeded:
			drawBanner(screen, "LEVEL CLEAR", "R to play again", config.Green)
		case state.Finished:
			drawBanner(screen, "GAME OVER", "R to restart", config.LightRed)
		case w.Paused():
			drawBanner(screen, "PAUSED", "Esc to resume", config.White)
		}
	}
}

func drawBanner(screen *ebiten.Image, title, hint string, c color.Color) {
	width := float32(screen.Bounds().Dx())
	height := float32(screen.Bounds().Dy())
	vector.FillRect(screen, 0, height/2-32, width, 56, overlayColor, false)

	titleFace := fonts.Title.Get()
	titleWidth := text.BoundString(titleFace, title).Dx()
	text.Draw(screen, title, titleFace, int(width)/2-titleWidth/2, int(height)/2, c)

	hintFace := fonts.Small.Get()
	hintWidth := text.BoundString(hintFace, hint).Dx()
	text.Draw(screen, hint, hintFace, int(width)/2-hintWidth/2, int(height)/2+16, config.White)
}
