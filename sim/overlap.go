package sim

import (
	"github.com/automoto/skirmish/combat"
	"github.com/automoto/skirmish/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// overlapping lists the objects with one of resolvTags whose boxes
// intersect obj. The space check only narrows the search down to cells.
func overlapping(obj *resolv.Object, resolvTags ...string) []*resolv.Object {
	check := obj.Check(0, 0, resolvTags...)
	if check == nil {
		return nil
	}
	var out []*resolv.Object
	for _, o := range check.Objects {
		if o == obj {
			continue
		}
		if obj.X < o.X+o.W && o.X < obj.X+obj.W && obj.Y < o.Y+o.H && o.Y < obj.Y+obj.H {
			out = append(out, o)
		}
	}
	return out
}

func (w *World) touches(obj *resolv.Object, resolvTags ...string) bool {
	return len(overlapping(obj, resolvTags...)) > 0
}

// overlappingActors resolves every actor body intersecting obj.
func (w *World) overlappingActors(obj *resolv.Object) []*combat.Actor {
	var out []*combat.Actor
	for _, o := range overlapping(obj, tags.ResolvActor) {
		e, ok := o.Data.(donburi.Entity)
		if !ok {
			continue
		}
		if a, ok := w.Registry.Resolve(e); ok {
			out = append(out, a)
		}
	}
	return out
}
