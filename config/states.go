package config

import "fmt"

// CharacterState is the logical state of an actor. The integer values are
// what the animation timeline observes, so they must stay stable.
type CharacterState int

const (
	Dead CharacterState = iota
	Idle
	Walk
	Patrol
	Chase
	Attack
	Static
	UnderAttack
)

var stateNames = map[CharacterState]string{
	Dead:        "Dead",
	Idle:        "Idle",
	Walk:        "Walk",
	Patrol:      "Patrol",
	Chase:       "Chase",
	Attack:      "Attack",
	Static:      "Static",
	UnderAttack: "UnderAttack",
}

func (s CharacterState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("CharacterState(%d)", int(s))
}

// Protected states can only be entered through the locked setter.
func (s CharacterState) Protected() bool {
	return s == Dead || s == UnderAttack || s == Attack
}

// CharacterStateFromValue maps a timeline integer back to a state.
func CharacterStateFromValue(v int) (CharacterState, bool) {
	s := CharacterState(v)
	_, ok := stateNames[s]
	return s, ok
}

// AllStates lists every state in timeline order.
func AllStates() []CharacterState {
	return []CharacterState{Dead, Idle, Walk, Patrol, Chase, Attack, Static, UnderAttack}
}
