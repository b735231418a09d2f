package sim

import (
	"log"

	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/events"
	"github.com/yohamta/donburi"
)

// updateChests opens a chest the first time a live player touches it.
func (w *World) updateChests() {
	var opened []donburi.Entity
	components.Chest.Each(w.ECS, func(e *donburi.Entry) {
		chest := components.Chest.Get(e)
		if chest.Opened {
			return
		}
		obj := components.Object.Get(e)
		for _, a := range w.overlappingActors(obj.Object) {
			if a.Kind() != config.KindPlayer || !a.IsAlive() {
				continue
			}
			chest.Opened = true
			opened = append(opened, e.Entity())
			return
		}
	})
	for _, e := range opened {
		w.Bus.Raise(events.Signal{Kind: events.GameSuccess, Entity: e})
	}
}

// finish closes the level once. A success is recorded in the save.
func (w *World) finish(success bool) {
	if w.levelEntry == nil || !w.levelEntry.Valid() {
		return
	}
	level := components.Level.Get(w.levelEntry)
	if level.Finished {
		return
	}
	level.Finished = true
	level.Succeeded = success
	if !success || w.save == nil {
		return
	}

	timeMs := int64(level.Frame) * 1000 / int64(w.tickRate)
	if err := w.save.RecordResult(w.Level.Name, Stars(timeMs), timeMs, w.kills*100); err != nil {
		log.Printf("Warning: Could not record level result: %v", err)
	}
}

// Stars grades a finished run by its time.
func Stars(timeMs int64) int {
	switch {
	case timeMs < 30_000:
		return 3
	case timeMs < 60_000:
		return 2
	default:
		return 1
	}
}
