// Package sim is the headless simulation: one level, its actors and
// hazards, stepped at a fixed rate. Both the ebiten client and the
// dedicated server drive a World.
package sim

import (
	"github.com/automoto/skirmish/ai"
	"github.com/automoto/skirmish/combat"
	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/effects"
	"github.com/automoto/skirmish/events"
	"github.com/automoto/skirmish/locomotion"
	"github.com/automoto/skirmish/perception"
	"github.com/automoto/skirmish/persistence"
	"github.com/automoto/skirmish/shared/leveldata"
	"github.com/automoto/skirmish/tags"
	"github.com/automoto/skirmish/timeline"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// World owns everything one running level needs. It is not safe for
// concurrent use; callers step it from a single goroutine.
type World struct {
	ECS   donburi.World
	Space *resolv.Space
	Level *leveldata.Level
	Bus   *events.Bus

	Registry *combat.Registry
	Actuator *locomotion.PhysicsActuator
	Detector *perception.Detector
	Brain    *ai.Brain
	Resolver *combat.Resolver
	Cues     *effects.Service
	Timeline *timeline.Driver

	levelEntry *donburi.Entry
	save       *persistence.Accessor
	mirror     bool
	onSpawn    []func(*donburi.Entry)
	owned      []donburi.Entity
	tickRate   int

	paused  bool
	restart bool
	kills   int
}

type Option func(*World)

// WithSave records finished levels in acc.
func WithSave(acc *persistence.Accessor) Option {
	return func(w *World) { w.save = acc }
}

// WithNetMirror gives actors and hazards network components that are
// refreshed at the end of every step.
func WithNetMirror() Option {
	return func(w *World) { w.mirror = true }
}

// WithSpawnHook runs fn for every entity the world creates, including
// those created on a restart.
func WithSpawnHook(fn func(*donburi.Entry)) Option {
	return func(w *World) { w.onSpawn = append(w.onSpawn, fn) }
}

// WithECS builds the level into an existing donburi world.
func WithECS(ecs donburi.World) Option {
	return func(w *World) { w.ECS = ecs }
}

func WithTickRate(tps int) Option {
	return func(w *World) {
		if tps > 0 {
			w.tickRate = tps
		}
	}
}

// New builds a world for level. The bus survives restarts, so listeners
// subscribe once.
func New(level *leveldata.Level, opts ...Option) *World {
	w := &World{
		Level:    level,
		Bus:      events.NewBus(),
		tickRate: 60,
	}
	for _, opt := range opts {
		opt(w)
	}

	w.Bus.Subscribe(events.GamePaused, func(events.Signal) { w.paused = true })
	w.Bus.Subscribe(events.GameResumed, func(events.Signal) { w.paused = false })
	w.Bus.Subscribe(events.GameRestart, func(events.Signal) { w.restart = true })
	w.Bus.Subscribe(events.GameOver, func(events.Signal) { w.finish(false) })
	w.Bus.Subscribe(events.GameSuccess, func(events.Signal) { w.finish(true) })
	w.Bus.Subscribe(events.ActorDied, func(s events.Signal) {
		if s.ActorKind != config.KindPlayer {
			w.kills++
		}
	})

	w.build()
	return w
}

// build fills the ECS world with a fresh copy of the level and wires the
// combat collaborators around it. The donburi world itself is kept across
// restarts since the network layer holds on to it.
func (w *World) build() {
	if w.ECS == nil {
		w.ECS = donburi.NewWorld()
	}
	for _, e := range w.owned {
		if w.ECS.Valid(e) {
			w.ECS.Remove(e)
		}
	}
	w.owned = w.owned[:0]
	w.Space = resolv.NewSpace(w.Level.Width, w.Level.Height, 16, 16)
	w.paused, w.kills = false, 0

	w.Timeline = timeline.NewDriver(w.ECS)
	w.Actuator = locomotion.NewPhysicsActuator(w.ECS)
	w.Registry = combat.NewRegistry(w.ECS,
		combat.WithImpulse(w.Actuator),
		combat.WithSignals(w.Bus),
		combat.WithObserver(w.Timeline),
	)
	w.Cues = effects.NewService(effects.WithTickRate(w.tickRate))
	w.Resolver = combat.NewResolver(w.Registry, w.Cues)
	w.Timeline.SetListener(w.Resolver)
	w.Detector = perception.NewDetector(w.Registry,
		perception.NewSpaceCaster(w.Space, tags.ResolvSolid, tags.ResolvActor, tags.ResolvPlug))
	w.Brain = ai.NewBrain(w.Registry, w.Detector, w.Actuator, w.Resolver)

	w.populate()
}

// Restart asks for the level to be rebuilt at the start of the next step.
func (w *World) Restart() {
	w.Bus.Raise(events.Signal{Kind: events.GameRestart})
}

func (w *World) Paused() bool {
	return w.paused
}

// LevelState returns the level bookkeeping of the current run.
func (w *World) LevelState() components.LevelData {
	if w.levelEntry == nil || !w.levelEntry.Valid() {
		return components.LevelData{}
	}
	return *components.Level.Get(w.levelEntry)
}

// Player returns the first controlled actor. A dead player is still
// returned until its entity is removed, so callers that act for the player
// check IsAlive.
func (w *World) Player() (*combat.Actor, bool) {
	for _, a := range w.Registry.Actors() {
		if k, ok := config.Actors.Kind(a.Kind()); ok && k.Controlled {
			return a, true
		}
	}
	return nil, false
}

func (w *World) spawned(entry *donburi.Entry) {
	w.owned = append(w.owned, entry.Entity())
	for _, fn := range w.onSpawn {
		fn(entry)
	}
}
