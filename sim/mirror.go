package sim

import (
	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/shared/netcomponents"
	"github.com/automoto/skirmish/tags"
	"github.com/yohamta/donburi"
)

// updateMirror copies simulation state into the network components.
func (w *World) updateMirror() {
	netcomponents.NetActor.Each(w.ECS, func(e *donburi.Entry) {
		actor := components.Actor.Get(e)
		obj := components.Object.Get(e)
		*netcomponents.NetActor.Get(e) = netcomponents.NetActorData{
			X:      obj.X,
			Y:      obj.Y,
			Kind:   actor.Kind,
			State:  int(actor.Status.State),
			Locked: actor.Status.Locked,
			Facing: int(actor.Facing),
		}
	})

	netcomponents.NetHazard.Each(w.ECS, func(e *donburi.Entry) {
		obj := components.Object.Get(e)
		data := netcomponents.NetHazardData{X: obj.X, Y: obj.Y, W: obj.W, H: obj.H}
		switch {
		case e.HasComponent(tags.Rock):
			data.Kind = "Rock"
		case e.HasComponent(tags.Arrow):
			data.Kind = "Arrow"
		case e.HasComponent(tags.Ballista):
			data.Kind = "Ballista"
		case e.HasComponent(tags.Chest):
			data.Kind = "Chest"
			if components.Chest.Get(e).Opened {
				data.Phase = 1
			}
		case e.HasComponent(tags.Plug):
			data.Kind = "Plug"
			data.Phase = components.Plug.Get(e).Phase
		}
		*netcomponents.NetHazard.Get(e) = data
	})

	if w.levelEntry.Valid() && w.levelEntry.HasComponent(netcomponents.NetLevelState) {
		level := components.Level.Get(w.levelEntry)
		outcome := netcomponents.LevelOutcomePlaying
		if level.Finished {
			outcome = netcomponents.LevelOutcomeOver
			if level.Succeeded {
				outcome = netcomponents.LevelOutcomeSuccess
			}
		}
		*netcomponents.NetLevelState.Get(w.levelEntry) = netcomponents.NetLevelStateData{
			Name:    w.Level.Name,
			Frame:   level.Frame,
			Outcome: outcome,
			Paused:  w.paused,
		}
	}
}
