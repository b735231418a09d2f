package sim

import (
	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/config"
	"github.com/yohamta/donburi"
)

// updateDeaths starts a removal countdown for every newly dead actor and
// removes entities whose countdown ran out. The end of the dead clip
// usually cuts the countdown short. Victims whose attacker died or was
// removed mid-swing are released first.
func (w *World) updateDeaths() {
	w.Registry.ReleaseOrphans()

	for _, a := range w.Registry.Actors() {
		if a.IsAlive() {
			continue
		}
		entry, ok := a.Entry()
		if !ok || entry.HasComponent(components.Death) {
			continue
		}
		frames := 0
		if k, ok := config.Actors.Kind(a.Kind()); ok {
			frames = k.DeathFrames
		}
		entry.AddComponent(components.Death)
		components.Death.SetValue(entry, components.DeathData{Timer: frames})
	}

	var expired []*donburi.Entry
	components.Death.Each(w.ECS, func(e *donburi.Entry) {
		death := components.Death.Get(e)
		death.Timer--
		if death.Timer <= 0 {
			expired = append(expired, e)
		}
	})
	for _, e := range expired {
		w.destroy(e)
	}
}
