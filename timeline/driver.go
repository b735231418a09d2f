// Package timeline plays one clip per logical state for every actor and
// reports the frames the combat code cares about: the attack window and
// the end of the death clip.
package timeline

import (
	"github.com/automoto/skirmish/assets/animations"
	"github.com/automoto/skirmish/combat"
	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/config"
	"github.com/yohamta/donburi"
)

type callbackKind int

const (
	enterWindow callbackKind = iota
	exitWindow
	postDead
)

type callback struct {
	kind   callbackKind
	entity donburi.Entity
}

// Driver advances clips and dispatches timeline callbacks to a listener.
// It also observes state writes so a clip switch happens on the same tick
// as the write that caused it.
type Driver struct {
	world    donburi.World
	listener combat.TimelineListener
}

var _ combat.StateObserver = (*Driver)(nil)

func NewDriver(w donburi.World) *Driver {
	return &Driver{world: w}
}

// SetListener sets who receives callbacks. The resolver needs a registry
// that already observes this driver, so the listener arrives late.
func (d *Driver) SetListener(l combat.TimelineListener) {
	d.listener = l
}

// Attach gives entry a fresh clip set and starts the clip for its state.
func (d *Driver) Attach(entry *donburi.Entry) {
	if !entry.HasComponent(components.Animation) {
		entry.AddComponent(components.Animation)
	}
	anim := components.Animation.Get(entry)
	anim.Animations = animations.NewClipSet(config.Animation.Clips)
	anim.CurrentAnimation = nil
	anim.PostDead = false

	state := config.Idle
	if entry.HasComponent(components.Actor) {
		state = components.Actor.Get(entry).Status.State
	}
	anim.SetAnimation(state)
}

func (d *Driver) RequestState(e donburi.Entity, s config.CharacterState) {
	if !d.world.Valid(e) {
		return
	}
	entry := d.world.Entry(e)
	if !entry.HasComponent(components.Animation) {
		return
	}
	switchClip(components.Animation.Get(entry), s)
}

// Step advances every clip by one tick, then dispatches the callbacks it
// collected. Listeners are free to write states and remove entities.
func (d *Driver) Step() {
	var pending []callback

	components.Animation.Each(d.world, func(entry *donburi.Entry) {
		anim := components.Animation.Get(entry)
		if entry.HasComponent(components.Actor) {
			switchClip(anim, components.Actor.Get(entry).Status.State)
		}
		if anim.CurrentAnimation == nil {
			return
		}
		anim.CurrentAnimation.Update()

		e := entry.Entity()
		switch anim.CurrentState {
		case config.Attack:
			frame := anim.CurrentAnimation.Frame()
			if !anim.WindowOpened && frame >= config.Animation.AttackWindowStart {
				anim.WindowOpened = true
				pending = append(pending, callback{enterWindow, e})
			}
			if anim.WindowOpened && !anim.WindowClosed && frame >= config.Animation.AttackWindowEnd {
				anim.WindowClosed = true
				pending = append(pending, callback{exitWindow, e})
			}
		case config.Dead:
			if !anim.PostDead && anim.CurrentAnimation.Finished() {
				anim.PostDead = true
				pending = append(pending, callback{postDead, e})
			}
		}
	})

	if d.listener == nil {
		return
	}
	for _, cb := range pending {
		switch cb.kind {
		case enterWindow:
			d.listener.OnEnterAttackWindow(cb.entity)
		case exitWindow:
			d.listener.OnExitAttackWindow(cb.entity)
		case postDead:
			d.listener.OnPostDead(cb.entity)
		}
	}
}

func switchClip(anim *components.AnimationData, s config.CharacterState) {
	if anim.CurrentState == s && anim.CurrentAnimation != nil {
		return
	}
	if s == config.Dead {
		anim.PostDead = false
	}
	anim.SetAnimation(s)
}
