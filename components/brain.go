package components

import "github.com/yohamta/donburi"

// BrainData is the bookkeeping of an autonomous actor.
type BrainData struct {
	// Frames spent in an unlocked Attack waiting for the attack window
	AttackWait int
}

var Brain = donburi.NewComponentType[BrainData]()
