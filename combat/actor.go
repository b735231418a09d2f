package combat

import (
	gomath "math"

	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/events"
	"github.com/automoto/skirmish/metrics"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// Actor is the Capability of an entity carrying components.Actor. It holds
// only the handle; every call re-checks that the entity still exists.
type Actor struct {
	reg    *Registry
	entity donburi.Entity
}

var _ Capability = (*Actor)(nil)

func (a *Actor) entry() (*donburi.Entry, bool) {
	if !a.reg.world.Valid(a.entity) {
		return nil, false
	}
	entry := a.reg.world.Entry(a.entity)
	if !entry.HasComponent(components.Actor) {
		return nil, false
	}
	return entry, true
}

func (a *Actor) data() (*components.ActorData, bool) {
	entry, ok := a.entry()
	if !ok {
		return nil, false
	}
	return components.Actor.Get(entry), true
}

func (a *Actor) Entity() donburi.Entity {
	return a.entity
}

func (a *Actor) Kind() string {
	if d, ok := a.data(); ok {
		return d.Kind
	}
	return ""
}

func (a *Actor) Rank() int {
	if d, ok := a.data(); ok {
		return d.Rank
	}
	return config.RankUnknown
}

func (a *Actor) Position() math.Vec2 {
	entry, ok := a.entry()
	if !ok || !entry.HasComponent(components.Object) {
		return math.Vec2{}
	}
	obj := components.Object.Get(entry)
	if obj.Object == nil {
		return math.Vec2{}
	}
	return obj.Center()
}

func (a *Actor) Facing() float64 {
	if d, ok := a.data(); ok && d.Facing != 0 {
		return d.Facing
	}
	return config.DirectionRight
}

// Face turns the actor left or right. Zero keeps the current facing.
func (a *Actor) Face(dir float64) {
	d, ok := a.data()
	if !ok || dir == 0 {
		return
	}
	if dir < 0 {
		d.Facing = config.DirectionLeft
	} else {
		d.Facing = config.DirectionRight
	}
}

func (a *Actor) IsAlive() bool {
	d, ok := a.data()
	return ok && d.Status.State != config.Dead
}

func (a *Actor) State() config.CharacterState {
	if d, ok := a.data(); ok {
		return d.Status.State
	}
	return config.Dead
}

func (a *Actor) Locked() bool {
	if d, ok := a.data(); ok {
		return d.Status.Locked
	}
	return true
}

func (a *Actor) SetState(s config.CharacterState) bool {
	d, ok := a.data()
	if !ok {
		return false
	}
	if d.Status.Locked {
		metrics.RecordRejectedWrite(metrics.ReasonLocked)
		return false
	}
	if s.Protected() {
		metrics.RecordRejectedWrite(metrics.ReasonProtected)
		return false
	}
	d.Status = components.Status{State: s}
	d.Held = false
	a.reg.observer.RequestState(a.entity, s)
	return true
}

func (a *Actor) SetStateWithLock(s config.CharacterState, lock bool, caller Capability) {
	d, ok := a.data()
	if !ok {
		return
	}
	wasAlive := d.Status.State != config.Dead
	d.Status = components.Status{State: s, Locked: lock}
	if s != config.UnderAttack {
		d.Held = false
	}
	kind, facing := d.Kind, d.Facing

	a.reg.observer.RequestState(a.entity, s)
	if s == config.Dead && wasAlive {
		a.die(kind, facing, caller)
	}
}

// die runs the once-per-actor side effects of entering Dead.
func (a *Actor) die(kind string, facing float64, caller Capability) {
	h := facing
	if h == 0 {
		h = config.DirectionRight
	}
	if caller != nil {
		if caller.Position().X < a.Position().X {
			h = config.DirectionRight
		} else {
			h = config.DirectionLeft
		}
	}
	a.reg.impulse.ApplyImpulse(a.entity, knockbackDirection(h), config.Combat.KnockbackForce)

	metrics.RecordKill(kind)

	signal := events.Signal{Kind: events.ActorDied, Entity: a.entity, ActorKind: kind}
	if caller != nil {
		signal.Source = caller.Entity()
		signal.HasSource = true
	}
	a.reg.signals.Raise(signal)

	if k, ok := config.Actors.Kind(kind); ok && k.EndsGameOnDeath {
		signal.Kind = events.GameOver
		a.reg.signals.Raise(signal)
	}

	a.reg.ReleaseHeldBy(a.entity)
}

// holdBy records attacker as the actor whose swing keeps a locked in
// UnderAttack.
func (a *Actor) holdBy(attacker donburi.Entity) {
	if d, ok := a.data(); ok && d.Status.State == config.UnderAttack {
		d.HeldBy, d.Held = attacker, true
	}
}

// heldBy returns the attacker holding a, if any.
func (a *Actor) heldBy() (donburi.Entity, bool) {
	d, ok := a.data()
	if !ok || !d.Held || d.Status.State != config.UnderAttack {
		return donburi.Null, false
	}
	return d.HeldBy, true
}

// knockbackDirection points up and away along h, normalized.
func knockbackDirection(h float64) math.Vec2 {
	n := gomath.Sqrt(h*h + 1)
	return math.Vec2{X: h / n, Y: -1 / n}
}

func (a *Actor) ChaseTarget() (Capability, bool) {
	entry, ok := a.entry()
	if !ok || !entry.HasComponent(components.Chase) {
		return nil, false
	}
	chase := components.Chase.Get(entry)
	if !chase.HasTarget {
		return nil, false
	}
	target, ok := a.reg.Resolve(chase.Target)
	if !ok {
		return nil, false
	}
	return target, true
}

// SetChaseTarget remembers target by handle.
func (a *Actor) SetChaseTarget(target Capability) {
	entry, ok := a.entry()
	if !ok || !entry.HasComponent(components.Chase) {
		return
	}
	components.Chase.Get(entry).Set(target.Entity())
}

func (a *Actor) ClearChaseTarget() {
	entry, ok := a.entry()
	if !ok || !entry.HasComponent(components.Chase) {
		return
	}
	components.Chase.Get(entry).Clear()
}

// Entry exposes the underlying entry for systems that need other components.
func (a *Actor) Entry() (*donburi.Entry, bool) {
	return a.entry()
}
