package systems

import (
	"fmt"
	"image/color"

	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/fonts"
	"github.com/automoto/skirmish/shared/leveldata"
	"github.com/automoto/skirmish/shared/netcomponents"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // text/v2 needs a different face type
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	dmath "github.com/yohamta/donburi/features/math"
)

// NewNetInterpSystem blends replicated positions between snapshots. A leg
// lasts one server tick, measured in client updates.
func NewNetInterpSystem(serverTickRate func() int) ecs.System {
	return func(e *ecs.ECS) {
		rate := serverTickRate()
		if rate <= 0 {
			return
		}
		step := float64(rate) / float64(ebiten.TPS())

		components.NetInterp.Each(e.World, func(entry *donburi.Entry) {
			x, y := components.NetInterp.Get(entry).Advance(step)
			switch {
			case entry.HasComponent(netcomponents.NetActor):
				a := netcomponents.NetActor.Get(entry)
				a.X, a.Y = x, y
			case entry.HasComponent(netcomponents.NetHazard):
				h := netcomponents.NetHazard.Get(entry)
				h.X, h.Y = x, y
			}
		})
	}
}

// NewNetCameraSystem follows the replicated player inside level.
func NewNetCameraSystem(level *leveldata.Level) ecs.System {
	return func(e *ecs.ECS) {
		camera := getOrCreateCamera(e)
		player, ok := findNetPlayer(e.World)
		if !ok {
			return
		}
		kind, _ := config.Actors.Kind(config.KindPlayer)
		target := dmath.Vec2{
			X: player.X + float64(kind.CollisionWidth)/2,
			Y: player.Y + float64(kind.CollisionHeight)/2,
		}
		target = clampToLevel(target, float64(level.Width), float64(level.Height))
		camera.Position.X += (target.X - camera.Position.X) * followSmoothing
		camera.Position.Y += (target.Y - camera.Position.Y) * followSmoothing
	}
}

func findNetPlayer(world donburi.World) (netcomponents.NetActorData, bool) {
	var (
		found netcomponents.NetActorData
		ok    bool
	)
	netcomponents.NetActor.Each(world, func(entry *donburi.Entry) {
		a := netcomponents.NetActor.Get(entry)
		if !ok && a.Kind == config.KindPlayer {
			found, ok = *a, true
		}
	})
	return found, ok
}

// NewNetWorldRenderer draws the level geometry from the local copy of level
// and everything else from replicated state.
func NewNetWorldRenderer(level *leveldata.Level) ecs.RendererWithArg[ebiten.Image] {
	return func(e *ecs.ECS, screen *ebiten.Image) {
		ox, oy := cameraOffset(e)

		for _, s := range level.Solids {
			fillRect(screen, s.X+ox, s.Y+oy, s.W, s.H, solidColor)
		}

		netcomponents.NetHazard.Each(e.World, func(entry *donburi.Entry) {
			h := netcomponents.NetHazard.Get(entry)
			fillRect(screen, h.X+ox, h.Y+oy, h.W, h.H, netHazardColor(h))
		})

		netcomponents.NetActor.Each(e.World, func(entry *donburi.Entry) {
			drawNetActor(screen, netcomponents.NetActor.Get(entry), ox, oy)
		})
	}
}

func netHazardColor(h *netcomponents.NetHazardData) color.RGBA {
	switch h.Kind {
	case "Rock":
		return rockColor
	case "Arrow":
		return arrowColor
	case "Ballista":
		return ballistaColor
	case "Chest":
		if h.Phase > 0 {
			return config.Gray
		}
		return chestColor
	case "Plug":
		phase := h.Phase
		if phase >= len(plugColors) {
			phase = len(plugColors) - 1
		}
		return plugColors[phase]
	}
	return config.Purple
}

func drawNetActor(screen *ebiten.Image, a *netcomponents.NetActorData, ox, oy float64) {
	kind, ok := config.Actors.Kind(a.Kind)
	if !ok {
		return
	}
	w, h := float64(kind.CollisionWidth), float64(kind.CollisionHeight)
	x, y := a.X+ox, a.Y+oy

	state, _ := config.CharacterStateFromValue(a.State)
	body := kind.Color
	if state == config.Dead {
		body = config.Gray
	}
	fillRect(screen, x, y, w, h, body)
	if outline, ok := stateColors[state]; ok {
		strokeRect(screen, x, y, w, h, outline)
	}

	cx := x + w/2 + float64(a.Facing)*w/4
	fillRect(screen, cx-1.5, y+h/3, 3, 3, config.White)

	if a.Locked {
		fillRect(screen, x, y-3, w, 1, config.LightRed)
	}
}

// DrawNetworkHUD shows the replicated level state and entity count.
func DrawNetworkHUD(e *ecs.ECS, screen *ebiten.Image) {
	entityCount := 0
	esync.NetworkEntityQuery.Each(e.World, func(_ *donburi.Entry) {
		entityCount++
	})

	info := fmt.Sprintf("Watching - Entities: %d", entityCount)
	text.Draw(screen, info, fonts.Small.Get(), hudMargin, hudMargin+10, config.Green)

	entry, ok := netcomponents.NetLevelState.First(e.World)
	if !ok {
		return
	}
	state := netcomponents.NetLevelState.Get(entry)
	seconds := float64(state.Frame) / float64(config.Server.TickRate)
	text.Draw(screen, fmt.Sprintf("%s  %.1fs", state.Name, seconds), fonts.Regular.Get(), hudMargin, hudMargin+26, config.White)

	switch state.Outcome {
	case netcomponents.LevelOutcomeSuccess:
		drawBanner(screen, "LEVEL CLEAR", "waiting for the controller", config.Green)
	case netcomponents.LevelOutcomeOver:
		drawBanner(screen, "GAME OVER", "waiting for the controller", config.LightRed)
	}
}
