package systems

import (
	"image/color"
	"math"

	"github.com/automoto/skirmish/combat"
	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/effects"
	"github.com/automoto/skirmish/sim"
	"github.com/automoto/skirmish/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	solidColor    = color.RGBA{70, 70, 80, 255}
	chestColor    = color.RGBA{200, 160, 40, 255}
	rockColor     = color.RGBA{140, 120, 100, 255}
	arrowColor    = color.RGBA{220, 220, 220, 255}
	ballistaColor = color.RGBA{150, 90, 40, 255}
	rayColor      = color.NRGBA{255, 255, 255, 90}
	rayHitColor   = color.NRGBA{255, 60, 60, 200}
)

// plugColors shades a plug by break phase.
var plugColors = []color.RGBA{
	{120, 80, 60, 255},
	{150, 100, 70, 255},
	{180, 120, 80, 255},
	{210, 150, 100, 255},
}

// stateColors outline actors by their combat state.
var stateColors = map[config.CharacterState]color.RGBA{
	config.Chase:       config.Orange,
	config.Attack:      config.Red,
	config.UnderAttack: config.Yellow,
	config.Dead:        config.Gray,
}

// NewWorldRenderer draws the level as flat shapes: solids and obstacles,
// hazards, actors colored by kind and outlined by state, perception rays
// and hit cues.
func NewWorldRenderer(w *sim.World) ecs.RendererWithArg[ebiten.Image] {
	return func(e *ecs.ECS, screen *ebiten.Image) {
		ox, oy := cameraOffset(e)

		for _, obj := range w.Space.Objects() {
			switch {
			case obj.HasTags(tags.ResolvSolid):
				fillRect(screen, obj.X+ox, obj.Y+oy, obj.W, obj.H, solidColor)
			case obj.HasTags(tags.ResolvHazard):
				fillRect(screen, obj.X+ox, obj.Y+oy, obj.W, obj.H, rockColor)
			case obj.HasTags(tags.ResolvArrow):
				fillRect(screen, obj.X+ox, obj.Y+oy, obj.W, obj.H, arrowColor)
			case obj.HasTags(tags.ResolvBallista):
				fillRect(screen, obj.X+ox, obj.Y+oy, obj.W, obj.H, ballistaColor)
			}
		}

		components.Plug.Each(w.ECS, func(entry *donburi.Entry) {
			obj := components.Object.Get(entry)
			phase := components.Plug.Get(entry).Phase
			if phase >= len(plugColors) {
				phase = len(plugColors) - 1
			}
			fillRect(screen, obj.X+ox, obj.Y+oy, obj.W, obj.H, plugColors[phase])
		})

		components.Chest.Each(w.ECS, func(entry *donburi.Entry) {
			obj := components.Object.Get(entry)
			c := chestColor
			if components.Chest.Get(entry).Opened {
				c = config.Gray
			}
			fillRect(screen, obj.X+ox, obj.Y+oy, obj.W, obj.H, c)
		})

		for _, a := range w.Registry.Actors() {
			drawActor(screen, a, ox, oy)
		}

		if config.Debug.DrawRays {
			components.Perception.Each(w.ECS, func(entry *donburi.Entry) {
				p := components.Perception.Get(entry)
				if !p.LastCast {
					return
				}
				c := rayColor
				if p.Acquired {
					c = rayHitColor
				}
				vector.StrokeLine(screen,
					float32(p.LastOrigin.X+ox), float32(p.LastOrigin.Y+oy),
					float32(p.LastEnd.X+ox), float32(p.LastEnd.Y+oy),
					1, c, false)
			})
		}

		for _, cue := range w.Cues.Active() {
			drawCue(screen, cue, ox, oy)
		}
	}
}

func drawActor(screen *ebiten.Image, a *combat.Actor, ox, oy float64) {
	entry, ok := a.Entry()
	if !ok {
		return
	}
	obj := components.Object.Get(entry)
	x, y := obj.X+ox, obj.Y+oy

	body := config.White
	if k, ok := config.Actors.Kind(a.Kind()); ok {
		body = k.Color
	}
	if !a.IsAlive() {
		body = config.Gray
	}
	fillRect(screen, x, y, obj.W, obj.H, body)

	if outline, ok := stateColors[a.State()]; ok {
		strokeRect(screen, x, y, obj.W, obj.H, outline)
	}

	// Facing marker
	cx := x + obj.W/2 + a.Facing()*obj.W/4
	fillRect(screen, cx-1.5, y+obj.H/3, 3, 3, config.White)

	if a.Locked() {
		fillRect(screen, x, y-3, obj.W, 1, config.LightRed)
	}
}

// drawCue draws the hit scratch as three parallel strokes.
func drawCue(screen *ebiten.Image, cue effects.Cue, ox, oy float64) {
	c := color.NRGBA{R: 255, G: 255, B: 255}
	c.A = uint8(math.Max(0, math.Min(1, float64(cue.Alpha))) * 255)
	if c.A == 0 {
		return
	}

	center := cue.Descriptor.Position
	cx := center.X + cue.OffsetX + ox
	cy := center.Y + cue.OffsetY + oy
	length := 14 * float64(cue.Scale)
	rot := cue.Rotation
	if cue.FlipX {
		rot = math.Pi - rot
	}
	dx, dy := math.Cos(rot)*length/2, math.Sin(rot)*length/2
	nx, ny := -dy/length*8, dx/length*8

	for i := -1.0; i <= 1; i++ {
		sx, sy := cx+nx*i, cy+ny*i
		vector.StrokeLine(screen,
			float32(sx-dx), float32(sy-dy), float32(sx+dx), float32(sy+dy),
			2, c, true)
	}
}

func fillRect(screen *ebiten.Image, x, y, w, h float64, c color.Color) {
	vector.FillRect(screen, float32(x), float32(y), float32(w), float32(h), c, false)
}

// strokeRect draws a one pixel outline: top, bottom, left, right.
func strokeRect(screen *ebiten.Image, x, y, w, h float64, c color.Color) {
	vector.FillRect(screen, float32(x), float32(y), float32(w), 1, c, false)
	vector.FillRect(screen, float32(x), float32(y+h-1), float32(w), 1, c, false)
	vector.FillRect(screen, float32(x), float32(y), 1, float32(h), c, false)
	vector.FillRect(screen, float32(x+w-1), float32(y), 1, float32(h), c, false)
}
