// Package ai runs the combat state machine of autonomous actors.
package ai

import (
	"github.com/automoto/skirmish/combat"
	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/locomotion"
	"github.com/automoto/skirmish/perception"
	"github.com/yohamta/donburi"
)

// Brain decides state transitions in the tick phase and turns the current
// state into velocity in the movement phase. Actors configured as
// controlled are left to their intents.
type Brain struct {
	reg      *combat.Registry
	detector *perception.Detector
	actuator locomotion.Actuator
	resolver *combat.Resolver
}

func NewBrain(reg *combat.Registry, detector *perception.Detector, actuator locomotion.Actuator, resolver *combat.Resolver) *Brain {
	return &Brain{
		reg:      reg,
		detector: detector,
		actuator: actuator,
		resolver: resolver,
	}
}

// ThinkAll runs Think for every actor.
func (b *Brain) ThinkAll() {
	for _, a := range b.reg.Actors() {
		b.Think(a)
	}
}

// MoveAll runs Move for every actor.
func (b *Brain) MoveAll() {
	for _, a := range b.reg.Actors() {
		b.Move(a)
	}
}

// Think advances a's state machine by one tick. Locked actors are skipped
// entirely; whoever holds the lock decides what happens next.
func (b *Brain) Think(a *combat.Actor) {
	if !a.IsAlive() || a.Locked() {
		return
	}
	kind, ok := config.Actors.Kind(a.Kind())
	if !ok || kind.Controlled {
		return
	}
	entry, ok := a.Entry()
	if !ok {
		return
	}

	switch a.State() {
	case config.Idle:
		if b.acquire(a) {
			return
		}
		if hasPatrol(entry) {
			a.SetState(config.Patrol)
		}

	case config.Patrol:
		b.acquire(a)

	case config.Chase:
		b.thinkChase(a, entry, kind)

	case config.Attack:
		b.waitForWindow(a, entry)
	}
}

func (b *Brain) acquire(a *combat.Actor) bool {
	if b.detector == nil {
		return false
	}
	if _, ok := b.detector.Detect(a); !ok {
		return false
	}
	return a.SetState(config.Chase)
}

func (b *Brain) thinkChase(a *combat.Actor, entry *donburi.Entry, kind config.ActorKindConfig) {
	var seen bool
	if b.detector != nil {
		_, seen = b.detector.Detect(a)
	}
	target, ok := a.ChaseTarget()
	if !seen || !ok || !target.IsAlive() {
		b.loseTarget(a, entry)
		return
	}

	_, inRange := locomotion.Chase(a.Position(), target.Position(), kind.AttackableRadius)
	if !inRange || !b.actuator.HasFooting(a.Entity()) {
		return
	}
	if b.resolver != nil && b.resolver.RequestAttack(a) && entry.HasComponent(components.Brain) {
		components.Brain.Get(entry).AttackWait = 0
	}
}

func (b *Brain) loseTarget(a *combat.Actor, entry *donburi.Entry) {
	a.ClearChaseTarget()
	if hasPatrol(entry) {
		a.SetState(config.Patrol)
	} else {
		a.SetState(config.Idle)
	}
}

// waitForWindow gives up on an attack whose window never opened.
func (b *Brain) waitForWindow(a *combat.Actor, entry *donburi.Entry) {
	timeout := config.Combat.AttackRequestTimeout
	if timeout <= 0 || !entry.HasComponent(components.Brain) {
		return
	}
	brain := components.Brain.Get(entry)
	brain.AttackWait++
	if brain.AttackWait < timeout {
		return
	}
	brain.AttackWait = 0
	a.SetState(config.Idle)
}

// Move turns a's state into horizontal velocity. Patrol and Chase only
// steer while the actor stands on something; in the air velocity is left
// alone. Dead and UnderAttack are never touched so knockback plays out.
func (b *Brain) Move(a *combat.Actor) {
	kind, ok := config.Actors.Kind(a.Kind())
	if !ok || kind.Controlled {
		return
	}
	entry, ok := a.Entry()
	if !ok {
		return
	}
	e := a.Entity()

	switch a.State() {
	case config.Idle, config.Static, config.Attack:
		b.actuator.SetPlanarVelocity(e, 0)

	case config.Patrol:
		if !b.actuator.HasFooting(e) {
			return
		}
		if !hasPatrol(entry) {
			b.actuator.SetPlanarVelocity(e, 0)
			return
		}
		dir, _ := locomotion.Patrol(a.Position(), components.Patrol.Get(entry))
		a.Face(dir)
		b.actuator.SetPlanarVelocity(e, dir*kind.PatrolSpeed)

	case config.Chase:
		if !b.actuator.HasFooting(e) {
			return
		}
		target, ok := a.ChaseTarget()
		if !ok {
			return
		}
		dir, inRange := locomotion.Chase(a.Position(), target.Position(), kind.AttackableRadius)
		a.Face(dir)
		if inRange {
			b.actuator.SetPlanarVelocity(e, 0)
			return
		}
		b.actuator.SetPlanarVelocity(e, dir*kind.ChaseSpeed)
	}
}

func hasPatrol(entry *donburi.Entry) bool {
	return entry.HasComponent(components.Patrol) && len(components.Patrol.Get(entry).Points) > 0
}
