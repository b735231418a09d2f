package sim

import (
	"log"

	"github.com/automoto/skirmish/archetypes"
	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/shared/leveldata"
	"github.com/automoto/skirmish/shared/netcomponents"
	"github.com/automoto/skirmish/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

func (w *World) populate() {
	spaceEntry := archetypes.Space.Spawn(w.ECS)
	components.Space.Set(spaceEntry, w.Space)
	w.spawned(spaceEntry)

	w.levelEntry = archetypes.Level.Spawn(w.ECS, w.mirrorComponents(netcomponents.NetLevelState)...)
	components.Level.SetValue(w.levelEntry, components.LevelData{
		CurrentLevel: w.Level,
		Path:         w.Level.Name,
	})
	w.spawned(w.levelEntry)

	for _, s := range w.Level.Solids {
		w.CreateWall(s.X, s.Y, s.W, s.H)
	}
	for _, p := range w.Level.Plugs {
		w.CreatePlug(p.X, p.Y, p.W, p.H)
	}
	for _, a := range w.Level.Actors {
		if _, err := w.CreateActor(a); err != nil {
			log.Printf("Warning: Skipping actor spawn: %v", err)
		}
	}
	for _, r := range w.Level.Rocks {
		w.CreateRock(r.X, r.Y)
	}
	for _, b := range w.Level.Ballistas {
		w.CreateBallista(b.X, b.Y, b.Facing)
	}
	for _, c := range w.Level.Chests {
		w.CreateChest(c.X, c.Y, c.W, c.H)
	}
}

func (w *World) mirrorComponents(cs ...donburi.IComponentType) []donburi.IComponentType {
	if !w.mirror {
		return nil
	}
	return cs
}

// attach links obj and entry both ways and adds obj to the space.
func (w *World) attach(entry *donburi.Entry, obj *resolv.Object) {
	obj.Data = entry.Entity()
	components.Object.SetValue(entry, components.ObjectData{Object: obj})
	w.Space.Add(obj)
}

func (w *World) CreateWall(x, y, width, height float64) *donburi.Entry {
	wall := archetypes.Wall.Spawn(w.ECS)
	w.attach(wall, resolv.NewObject(x, y, width, height, tags.ResolvSolid))
	w.spawned(wall)
	return wall
}

// CreateActor spawns an actor of spawn.Kind. The spawn point is the top
// left corner of its body.
func (w *World) CreateActor(spawn leveldata.ActorSpawn) (*donburi.Entry, error) {
	kind, ok := config.Actors.Kind(spawn.Kind)
	if !ok {
		return nil, unknownKindError(spawn.Kind)
	}

	resolvTags := []string{tags.ResolvActor}
	var entry *donburi.Entry
	if kind.Controlled {
		resolvTags = append(resolvTags, tags.ResolvPlayer)
		entry = archetypes.Player.Spawn(w.ECS, w.mirrorComponents(netcomponents.NetActor)...)
	} else {
		entry = archetypes.Monster.Spawn(w.ECS, w.mirrorComponents(netcomponents.NetActor)...)
		components.Perception.SetValue(entry, components.PerceptionData{PerceptionConfig: kind.Perception})
	}

	facing := spawn.Facing
	if facing == 0 {
		facing = config.DirectionRight
	}
	components.Actor.SetValue(entry, components.ActorData{
		Kind:   kind.Kind,
		Rank:   config.RankOf(kind.Kind),
		Status: components.Status{State: config.Idle},
		Facing: facing,
	})
	components.Physics.SetValue(entry, components.PhysicsData{
		Gravity:  kind.Gravity,
		Friction: kind.Friction,
		MaxSpeed: kind.MaxSpeed,
	})

	if spawn.Path != "" {
		if points, ok := w.Level.PatrolPaths[spawn.Path]; ok {
			path := make([]math.Vec2, 0, len(points))
			for _, p := range points {
				path = append(path, math.Vec2{X: p.X, Y: p.Y})
			}
			entry.AddComponent(components.Patrol)
			components.Patrol.SetValue(entry, components.PatrolData{
				Name:          spawn.Path,
				Points:        path,
				ReachDistance: kind.WaypointReachDistance,
			})
		}
	}

	w.attach(entry, resolv.NewObject(spawn.X, spawn.Y, float64(kind.CollisionWidth), float64(kind.CollisionHeight), resolvTags...))
	w.Timeline.Attach(entry)
	w.spawned(entry)
	return entry, nil
}

func (w *World) CreateRock(x, y float64) *donburi.Entry {
	rock := archetypes.Rock.Spawn(w.ECS, w.mirrorComponents(netcomponents.NetHazard)...)
	components.Physics.SetValue(rock, components.PhysicsData{
		Gravity:  config.Hazard.RockGravity,
		MaxSpeed: config.Physics.VerticalSpeedClamp,
	})
	w.attach(rock, resolv.NewObject(x, y, config.Hazard.RockWidth, config.Hazard.RockHeight, tags.ResolvHazard))
	w.spawned(rock)
	return rock
}

func (w *World) CreateBallista(x, y, facing float64) *donburi.Entry {
	if facing == 0 {
		facing = config.DirectionRight
	}
	ballista := archetypes.Ballista.Spawn(w.ECS, w.mirrorComponents(netcomponents.NetHazard)...)
	components.Ballista.SetValue(ballista, components.BallistaData{
		Facing:   facing,
		Cooldown: config.Hazard.BallistaShootDelay,
	})
	components.Physics.SetValue(ballista, components.PhysicsData{
		Gravity:  config.Physics.Gravity,
		MaxSpeed: config.Physics.VerticalSpeedClamp,
	})
	w.attach(ballista, resolv.NewObject(x, y, config.Hazard.BallistaWidth, config.Hazard.BallistaHeight, tags.ResolvBallista))
	w.spawned(ballista)
	return ballista
}

// CreateArrow spawns an arrow whose tail sits at (x, y), flying along facing.
func (w *World) CreateArrow(x, y, facing float64) *donburi.Entry {
	arrow := archetypes.Arrow.Spawn(w.ECS, w.mirrorComponents(netcomponents.NetHazard)...)
	components.Arrow.SetValue(arrow, components.ArrowData{
		Direction: facing,
		Speed:     config.Hazard.ArrowSpeed,
	})
	if facing < 0 {
		x -= config.Hazard.ArrowWidth
	}
	w.attach(arrow, resolv.NewObject(x, y, config.Hazard.ArrowWidth, config.Hazard.ArrowHeight, tags.ResolvArrow))
	w.spawned(arrow)
	return arrow
}

func (w *World) CreateChest(x, y, width, height float64) *donburi.Entry {
	chest := archetypes.Chest.Spawn(w.ECS, w.mirrorComponents(netcomponents.NetHazard)...)
	w.attach(chest, resolv.NewObject(x, y, width, height, tags.ResolvChest))
	w.spawned(chest)
	return chest
}

func (w *World) CreatePlug(x, y, width, height float64) *donburi.Entry {
	plug := archetypes.Plug.Spawn(w.ECS, w.mirrorComponents(netcomponents.NetHazard)...)
	w.attach(plug, resolv.NewObject(x, y, width, height, tags.ResolvPlug))
	w.spawned(plug)
	return plug
}

// destroy removes entry and its body. Stale entries are ignored.
func (w *World) destroy(entry *donburi.Entry) {
	if !entry.Valid() {
		return
	}
	if entry.HasComponent(components.Object) {
		if obj := components.Object.Get(entry); obj.Object != nil {
			w.Space.Remove(obj.Object)
		}
	}
	e := entry.Entity()
	w.ECS.Remove(e)
	for i, owned := range w.owned {
		if owned == e {
			w.owned = append(w.owned[:i], w.owned[i+1:]...)
			break
		}
	}
}
