package scenes

import (
	"log"

	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
)

// applySnapshot brings world in line with a server snapshot: new entities
// are created, known ones updated and missing ones removed. present is
// scratch space reused between calls.
func applySnapshot(world donburi.World, snapshot esync.WorldSnapshot, present map[esync.NetworkId]bool) {
	clear(present)

	for _, ent := range snapshot {
		present[ent.Id] = true

		var compData []any
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				log.Printf("Warning: Dropping component of entity %d: %v", ent.Id, err)
				continue
			}
			compData = append(compData, instance)
		}
		applyEntity(world, ent.Id, compData)
	}

	removeMissing(world, present)
}

// applyEntity creates or updates the entity with network ID id.
func applyEntity(world donburi.World, id esync.NetworkId, compData []any) *donburi.Entry {
	entity := esync.FindByNetworkId(world, id)
	if !world.Valid(entity) {
		entity = world.Create(componentTypesFromInstances(compData)...)
		entry := world.Entry(entity)
		entry.AddComponent(esync.NetworkIdComponent)
		esync.NetworkIdComponent.SetValue(entry, id)
		entry.AddComponent(components.NetInterp)
	}

	entry := world.Entry(entity)
	for _, data := range compData {
		applyComponentToEntry(entry, data)
	}
	return entry
}

func removeMissing(world donburi.World, present map[esync.NetworkId]bool) {
	var gone []*donburi.Entry
	esync.NetworkEntityQuery.Each(world, func(entry *donburi.Entry) {
		id := esync.GetNetworkId(entry)
		if id != nil && !present[*id] {
			gone = append(gone, entry)
		}
	})
	for _, entry := range gone {
		entry.Remove()
	}
}

func componentTypesFromInstances(compData []any) []donburi.IComponentType {
	var ctypes []donburi.IComponentType
	for _, data := range compData {
		switch data.(type) {
		case netcomponents.NetActorData:
			ctypes = append(ctypes, netcomponents.NetActor)
		case netcomponents.NetHazardData:
			ctypes = append(ctypes, netcomponents.NetHazard)
		case netcomponents.NetLevelStateData:
			ctypes = append(ctypes, netcomponents.NetLevelState)
		}
	}
	return ctypes
}

// applyComponentToEntry stores data on entry. Positions are handed to the
// interpolator, which keeps drawing from where the entity currently is.
func applyComponentToEntry(entry *donburi.Entry, data any) {
	switch v := data.(type) {
	case netcomponents.NetActorData:
		if !entry.HasComponent(netcomponents.NetActor) {
			entry.AddComponent(netcomponents.NetActor)
		}
		cur := netcomponents.NetActor.Get(entry)
		retarget(entry, cur.X, cur.Y, &v.X, &v.Y)
		netcomponents.NetActor.SetValue(entry, v)
	case netcomponents.NetHazardData:
		if !entry.HasComponent(netcomponents.NetHazard) {
			entry.AddComponent(netcomponents.NetHazard)
		}
		cur := netcomponents.NetHazard.Get(entry)
		retarget(entry, cur.X, cur.Y, &v.X, &v.Y)
		netcomponents.NetHazard.SetValue(entry, v)
	case netcomponents.NetLevelStateData:
		if !entry.HasComponent(netcomponents.NetLevelState) {
			entry.AddComponent(netcomponents.NetLevelState)
		}
		netcomponents.NetLevelState.SetValue(entry, v)
	}
}

// retarget points the interpolator at (*x, *y) and rewrites them to the
// position to draw this frame.
func retarget(entry *donburi.Entry, curX, curY float64, x, y *float64) {
	if !entry.HasComponent(components.NetInterp) {
		return
	}
	interp := components.NetInterp.Get(entry)
	interp.Retarget(curX, curY, *x, *y)
	*x, *y = interp.Advance(0)
}
