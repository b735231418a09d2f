package components

import (
	"github.com/automoto/skirmish/assets/animations"
	"github.com/automoto/skirmish/config"
	"github.com/yohamta/donburi"
)

// AnimationData is the timeline of one actor: a clip per logical state and
// the attack window bookkeeping for the clip currently playing.
type AnimationData struct {
	CurrentAnimation *animations.Animation
	CurrentState     config.CharacterState
	Animations       map[config.CharacterState]*animations.Animation

	WindowOpened bool // enter fired for the current clip
	WindowClosed bool // exit fired for the current clip
	PostDead     bool // post-dead fired
}

// SetAnimation switches to the clip for state and resets the window marks.
// Requesting the state already playing keeps the clip running.
func (a *AnimationData) SetAnimation(state config.CharacterState) {
	if a.CurrentState == state && a.CurrentAnimation != nil {
		return
	}

	a.CurrentState = state
	a.WindowOpened = false
	a.WindowClosed = false

	anim, ok := a.Animations[state]
	if !ok {
		a.CurrentAnimation = nil
		return
	}
	a.CurrentAnimation = anim
	a.CurrentAnimation.Restart()
}

var Animation = donburi.NewComponentType[AnimationData]()
