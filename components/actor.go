package components

import (
	"github.com/automoto/skirmish/config"
	"github.com/yohamta/donburi"
)

// Status is the state/lock pair of an actor. It is always written as one
// value so no reader can observe a state without its matching lock.
type Status struct {
	State  config.CharacterState
	Locked bool
}

type ActorData struct {
	Kind   string // "Player", "Monster", "SeniorMonster", "Boss"
	Rank   int
	Status Status
	Facing float64 // config.DirectionLeft or config.DirectionRight

	// HeldBy is the attacker whose swing locked this actor in UnderAttack.
	// Held is false once the actor leaves UnderAttack.
	HeldBy donburi.Entity
	Held   bool
}

var Actor = donburi.NewComponentType[ActorData]()
