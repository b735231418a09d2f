package components

import "github.com/yohamta/donburi"

// ChaseData holds the current chase target as a generation-checked handle.
// Resolve it through the world before use; a removed target resolves to nothing.
type ChaseData struct {
	Target    donburi.Entity
	HasTarget bool
}

func (c *ChaseData) Set(e donburi.Entity) {
	c.Target = e
	c.HasTarget = true
}

func (c *ChaseData) Clear() {
	*c = ChaseData{}
}

var Chase = donburi.NewComponentType[ChaseData]()
