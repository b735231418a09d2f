package sim

import (
	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/config"
	"github.com/yohamta/donburi"
)

// HitPlug strikes a plug once. The plug moves through the configured break
// phases and is destroyed by the hit after the last phase. It reports
// whether the plug is gone.
func (w *World) HitPlug(e donburi.Entity) bool {
	if !w.ECS.Valid(e) {
		return false
	}
	entry := w.ECS.Entry(e)
	if !entry.HasComponent(components.Plug) {
		return false
	}
	plug := components.Plug.Get(entry)
	plug.Hits++

	phases := config.Plug.PhaseHits
	if len(phases) > 0 && plug.Hits > phases[len(phases)-1] {
		w.destroy(entry)
		return true
	}
	for i, hits := range phases {
		if plug.Hits == hits {
			plug.Phase = i + 1
		}
	}
	return false
}

// HitPlugAt strikes the plug under the point (x, y), if any.
func (w *World) HitPlugAt(x, y float64) (hit donburi.Entity, ok bool) {
	var target *donburi.Entry
	components.Plug.Each(w.ECS, func(e *donburi.Entry) {
		obj := components.Object.Get(e)
		if target == nil && x >= obj.X && x < obj.X+obj.W && y >= obj.Y && y < obj.Y+obj.H {
			target = e
		}
	})
	if target == nil {
		return hit, false
	}
	hit = target.Entity()
	w.HitPlug(hit)
	return hit, true
}
