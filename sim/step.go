package sim

import (
	"github.com/automoto/skirmish/components"
)

// Step advances the level by one tick. The order is fixed: controls,
// decisions, movement, physics, the animation timeline, cues, hazards
// and pickups, removals, and finally the network mirror.
func (w *World) Step() {
	if w.restart {
		w.restart = false
		w.build()
	}
	if w.paused {
		if w.mirror {
			w.updateMirror()
		}
		return
	}

	w.applyIntents()
	w.Brain.ThinkAll()
	w.Brain.MoveAll()
	w.updatePhysics()
	w.updateCollisions()
	w.Timeline.Step()
	w.Cues.Update()
	w.updateRocks()
	w.updateBallistas()
	w.updateArrows()
	w.updateChests()
	w.updateDeaths()

	if w.levelEntry.Valid() {
		components.Level.Get(w.levelEntry).Frame++
	}
	if w.mirror {
		w.updateMirror()
	}
}
