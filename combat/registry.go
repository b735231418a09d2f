package combat

import (
	gomath "math"

	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// Registry resolves entity handles to actors. Handles carry the donburi
// generation, so a handle to a removed actor never resolves to whatever
// reuses its slot.
type Registry struct {
	world    donburi.World
	impulse  ImpulseApplier
	signals  SignalBus
	observer StateObserver
}

type Option func(*Registry)

func WithImpulse(i ImpulseApplier) Option {
	return func(r *Registry) { r.impulse = i }
}

func WithSignals(s SignalBus) Option {
	return func(r *Registry) { r.signals = s }
}

func WithObserver(o StateObserver) Option {
	return func(r *Registry) { r.observer = o }
}

func NewRegistry(w donburi.World, opts ...Option) *Registry {
	r := &Registry{
		world:    w,
		impulse:  nopImpulse{},
		signals:  nopSignals{},
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) World() donburi.World {
	return r.world
}

// Resolve returns the actor behind e, or false when e was removed or is
// not an actor.
func (r *Registry) Resolve(e donburi.Entity) (*Actor, bool) {
	if !r.world.Valid(e) {
		return nil, false
	}
	if !r.world.Entry(e).HasComponent(components.Actor) {
		return nil, false
	}
	return &Actor{reg: r, entity: e}, true
}

// Actors lists every actor in the world. The list is a snapshot, so callers
// may add or remove components while walking it.
func (r *Registry) Actors() []*Actor {
	var out []*Actor
	components.Actor.Each(r.world, func(entry *donburi.Entry) {
		out = append(out, &Actor{reg: r, entity: entry.Entity()})
	})
	return out
}

// NearestAlive returns the closest live actor of kind to from.
func (r *Registry) NearestAlive(kind string, from math.Vec2) (*Actor, bool) {
	var best *Actor
	bestDist := gomath.Inf(1)
	for _, a := range r.Actors() {
		if a.Kind() != kind || !a.IsAlive() {
			continue
		}
		p := a.Position()
		if d := gomath.Hypot(p.X-from.X, p.Y-from.Y); d < bestDist {
			best, bestDist = a, d
		}
	}
	return best, best != nil
}

// ScheduleRemoval makes the death sequence of e end on the next death pass.
func (r *Registry) ScheduleRemoval(e donburi.Entity) {
	if !r.world.Valid(e) {
		return
	}
	entry := r.world.Entry(e)
	if entry.HasComponent(components.Death) {
		components.Death.Get(entry).Timer = 0
		return
	}
	entry.AddComponent(components.Death)
	components.Death.SetValue(entry, components.DeathData{Timer: 0})
}

// ReleaseHeldBy frees every victim that attacker e still holds in
// UnderAttack. A victim a second attacker has since grabbed is left alone.
func (r *Registry) ReleaseHeldBy(e donburi.Entity) {
	for _, a := range r.Actors() {
		if holder, ok := a.heldBy(); ok && holder == e {
			a.SetStateWithLock(config.Idle, false, nil)
		}
	}
}

// ReleaseOrphans frees held victims whose attacker is dead or gone.
func (r *Registry) ReleaseOrphans() {
	for _, a := range r.Actors() {
		holder, ok := a.heldBy()
		if !ok {
			continue
		}
		if h, ok := r.Resolve(holder); ok && h.IsAlive() {
			continue
		}
		a.SetStateWithLock(config.Idle, false, nil)
	}
}
