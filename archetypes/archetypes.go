package archetypes

import (
	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/tags"
	"github.com/yohamta/donburi"
)

var (
	Player = newArchetype(
		tags.Actor,
		tags.Player,
		components.Actor,
		components.Chase,
		components.Intent,
		components.Object,
		components.Physics,
		components.Animation,
	)
	Monster = newArchetype(
		tags.Actor,
		components.Actor,
		components.Chase,
		components.Brain,
		components.Perception,
		components.Object,
		components.Physics,
		components.Animation,
	)
	Space = newArchetype(
		components.Space,
	)
	Level = newArchetype(
		components.Level,
	)
	Wall = newArchetype(
		tags.Wall,
		components.Object,
	)
	Rock = newArchetype(
		tags.Rock,
		components.Rock,
		components.Object,
		components.Physics,
	)
	Arrow = newArchetype(
		tags.Arrow,
		components.Arrow,
		components.Object,
	)
	Ballista = newArchetype(
		tags.Ballista,
		components.Ballista,
		components.Object,
		components.Physics,
	)
	Chest = newArchetype(
		tags.Chest,
		components.Chest,
		components.Object,
	)
	Plug = newArchetype(
		tags.Plug,
		components.Plug,
		components.Object,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

// Spawn creates an entity with the archetype's components plus cs.
func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	all := make([]donburi.IComponentType, 0, len(a.components)+len(cs))
	all = append(all, a.components...)
	all = append(all, cs...)
	return w.Entry(w.Create(all...))
}
