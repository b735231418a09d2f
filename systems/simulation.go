package systems

import (
	"log"

	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/controls"
	"github.com/automoto/skirmish/events"
	"github.com/automoto/skirmish/sim"
	"github.com/yohamta/donburi/ecs"
)

// StrikeReach is how far in front of the player a keyboard strike lands.
const StrikeReach = 6.0

// NewSimulationSystem feeds the player's controls into w and steps it once
// per update.
func NewSimulationSystem(w *sim.World) ecs.System {
	return func(e *ecs.ECS) {
		input := GetInputData(e)

		if GetAction(input, controls.ActionPause).JustPressed {
			kind := events.GamePaused
			if w.Paused() {
				kind = events.GameResumed
			}
			w.Bus.Raise(events.Signal{Kind: kind})
		}
		if GetAction(input, controls.ActionRestart).JustPressed {
			w.Restart()
		}

		if !w.Paused() {
			w.SetPlayerIntent(MoveAxis(input))
			if GetAction(input, controls.ActionStrike).JustPressed {
				strikeAhead(w)
			}
			if input.RightClicked {
				x, y := ScreenToWorld(e, float64(input.CursorX), float64(input.CursorY))
				w.HitPlugAt(x, y)
			}
		}

		w.Step()
	}
}

// strikeAhead hits whatever plug stands just in front of the player.
func strikeAhead(w *sim.World) {
	player, ok := w.Player()
	if !ok || !player.IsAlive() {
		return
	}
	entry, ok := player.Entry()
	if !ok {
		return
	}
	obj := components.Object.Get(entry)
	center := obj.Center()
	x := center.X + player.Facing()*(obj.W/2+StrikeReach)
	w.HitPlugAt(x, center.Y)
}

// NewTuningSystem reloads configuration overrides when the watched file
// changes. Reloads happen between steps, never during one.
func NewTuningSystem(watcher *config.Watcher, path string) ecs.System {
	return func(_ *ecs.ECS) {
		if !watcher.Poll() {
			return
		}
		if err := config.LoadOverrides(path); err != nil {
			log.Printf("Warning: Keeping previous tuning: %v", err)
			return
		}
		log.Printf("Reloaded tuning from %s", path)
	}
}

// UpdateDebugToggle flips the debug overlays.
func UpdateDebugToggle(e *ecs.ECS) {
	if GetAction(GetInputData(e), controls.ActionToggleDebug).JustPressed {
		config.Debug.DrawRays = !config.Debug.DrawRays
	}
}
