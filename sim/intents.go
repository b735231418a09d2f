package sim

import (
	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/config"
	"github.com/yohamta/donburi"
)

// SetIntent records what the controlled actor wants to do on the next step.
// moveX is clamped to -1, 0 or 1.
func (w *World) SetIntent(e donburi.Entity, moveX float64) {
	if !w.ECS.Valid(e) {
		return
	}
	entry := w.ECS.Entry(e)
	if !entry.HasComponent(components.Intent) {
		return
	}
	switch {
	case moveX > 0:
		moveX = 1
	case moveX < 0:
		moveX = -1
	}
	components.Intent.Get(entry).MoveX = moveX
}

// SetPlayerIntent is SetIntent for the level's player.
func (w *World) SetPlayerIntent(moveX float64) {
	if p, ok := w.Player(); ok {
		w.SetIntent(p.Entity(), moveX)
	}
}

// applyIntents turns intents into Walk or Idle through the unconditioned
// setter, so a locked or protected actor ignores its controls.
func (w *World) applyIntents() {
	finished := w.LevelState().Finished
	for _, a := range w.Registry.Actors() {
		entry, ok := a.Entry()
		if !ok || !entry.HasComponent(components.Intent) {
			continue
		}
		kind, ok := config.Actors.Kind(a.Kind())
		if !ok {
			continue
		}
		intent := components.Intent.Get(entry)
		moveX := intent.MoveX
		if finished {
			moveX = 0
		}

		if moveX != 0 {
			if a.State() != config.Walk && !a.SetState(config.Walk) {
				continue
			}
			a.Face(moveX)
			w.Actuator.SetPlanarVelocity(a.Entity(), moveX*kind.WalkSpeed)
			continue
		}
		if a.State() == config.Walk && a.SetState(config.Idle) {
			w.Actuator.SetPlanarVelocity(a.Entity(), 0)
		}
	}
}
