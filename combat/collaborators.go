package combat

import (
	"github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/events"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// ImpulseApplier pushes an entity. Direction is a unit vector in screen
// space (y grows downwards).
type ImpulseApplier interface {
	ApplyImpulse(e donburi.Entity, dir math.Vec2, magnitude float64)
}

// SignalBus receives level-wide signals.
type SignalBus interface {
	Raise(s events.Signal)
}

// StateObserver is told about every logical state write, so the animation
// timeline can pick the clip to play.
type StateObserver interface {
	RequestState(e donburi.Entity, s config.CharacterState)
}

// CueToken identifies a playing cue.
type CueToken string

// CueDescriptor describes a visual feedback cue to play.
type CueDescriptor struct {
	Name     string
	Position math.Vec2
	Facing   float64
	Source   donburi.Entity
}

// CueService plays fire-and-forget visual cues. onComplete runs exactly
// once, either when the cue finishes or when it is cancelled.
type CueService interface {
	Play(d CueDescriptor, onComplete func()) CueToken
	Cancel(t CueToken)
}

// TimelineListener receives the animation timeline callbacks.
type TimelineListener interface {
	OnEnterAttackWindow(e donburi.Entity)
	OnExitAttackWindow(e donburi.Entity)
	OnPostDead(e donburi.Entity)
}

type nopImpulse struct{}

func (nopImpulse) ApplyImpulse(donburi.Entity, math.Vec2, float64) {}

type nopSignals struct{}

func (nopSignals) Raise(events.Signal) {}

type nopObserver struct{}

func (nopObserver) RequestState(donburi.Entity, config.CharacterState) {}
