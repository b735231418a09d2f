package combat

import (
	"github.com/automoto/skirmish/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// Capability is everything other actors and subsystems may do to an actor.
// State is only ever changed through SetState or SetStateWithLock.
type Capability interface {
	Entity() donburi.Entity
	Kind() string
	Rank() int
	Position() math.Vec2
	Facing() float64
	IsAlive() bool
	State() config.CharacterState
	Locked() bool

	// SetState is the ordinary setter. It refuses protected states and
	// refuses anything while the actor is locked, without mutating.
	SetState(s config.CharacterState) bool

	// SetStateWithLock always succeeds. Entering Dead from a live state
	// applies knockback away from caller and raises the death signals.
	SetStateWithLock(s config.CharacterState, lock bool, caller Capability)

	// ChaseTarget resolves the remembered target; a removed target is absent.
	ChaseTarget() (Capability, bool)
}
