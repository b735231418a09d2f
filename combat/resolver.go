package combat

import (
	"github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/metrics"
	"github.com/yohamta/donburi"
)

// HitCue is the cue played when an attack window closes.
const HitCue = "hit_scratch"

// Resolver turns attack window callbacks into state writes on both the
// attacker and its victim. It is the animation timeline's listener.
type Resolver struct {
	reg  *Registry
	cues CueService
}

var _ TimelineListener = (*Resolver)(nil)

// NewResolver builds a resolver. cues may be nil, in which case every cue
// completes immediately.
func NewResolver(reg *Registry, cues CueService) *Resolver {
	return &Resolver{reg: reg, cues: cues}
}

// RequestAttack moves a live, unlocked attacker into Attack without locking
// it. The timeline observes the write and opens the attack window.
func (r *Resolver) RequestAttack(attacker Capability) bool {
	if !attacker.IsAlive() || attacker.Locked() {
		return false
	}
	attacker.SetStateWithLock(config.Attack, false, nil)
	return true
}

func (r *Resolver) OnEnterAttackWindow(e donburi.Entity) {
	if attacker, ok := r.reg.Resolve(e); ok {
		r.EnterAttackWindow(attacker)
	}
}

func (r *Resolver) OnExitAttackWindow(e donburi.Entity) {
	if attacker, ok := r.reg.Resolve(e); ok {
		r.ExitAttackWindow(attacker)
	}
}

func (r *Resolver) OnPostDead(e donburi.Entity) {
	r.reg.ScheduleRemoval(e)
}

// EnterAttackWindow locks the victim under attack and the attacker mid-swing.
// A missing or already dead victim makes it a no-op.
func (r *Resolver) EnterAttackWindow(attacker Capability) {
	if !attacker.IsAlive() {
		return
	}
	metrics.RecordAttackWindow(metrics.PhaseEnter)

	victim, ok := attacker.ChaseTarget()
	if !ok || !victim.IsAlive() {
		metrics.RecordAttackWindow(metrics.PhaseNoTarget)
		return
	}
	victim.SetStateWithLock(config.UnderAttack, true, attacker)
	if held, ok := r.reg.Resolve(victim.Entity()); ok {
		held.holdBy(attacker.Entity())
	}
	attacker.SetStateWithLock(config.Attack, true, nil)
}

// ExitAttackWindow plays the hit cue and, once it completes, unlocks the
// attacker and kills the victim.
func (r *Resolver) ExitAttackWindow(attacker Capability) {
	metrics.RecordAttackWindow(metrics.PhaseExit)

	handle := attacker.Entity()
	complete := func() { r.completeAttack(handle) }

	if r.cues == nil {
		complete()
		return
	}
	r.cues.Play(CueDescriptor{
		Name:     HitCue,
		Position: attacker.Position(),
		Facing:   attacker.Facing(),
		Source:   handle,
	}, complete)
}

// completeAttack re-resolves both parties, since either may have been
// removed while the cue was playing.
func (r *Resolver) completeAttack(handle donburi.Entity) {
	attacker, ok := r.reg.Resolve(handle)
	if !ok {
		return
	}
	// An attacker that died mid-swing lets go of whatever it still holds.
	if !attacker.IsAlive() {
		r.reg.ReleaseHeldBy(handle)
		return
	}
	victim, hasVictim := attacker.ChaseTarget()
	metrics.RecordAttackWindow(metrics.PhaseResolved)

	attacker.SetStateWithLock(config.Idle, false, nil)
	if hasVictim {
		victim.SetStateWithLock(config.Dead, true, attacker)
	}
}
