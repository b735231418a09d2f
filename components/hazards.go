package components

import "github.com/yohamta/donburi"

// RockData is a falling rock. It kills whatever live actor it lands on.
type RockData struct{}

// ArrowData is a projectile fired by a ballista.
type ArrowData struct {
	Direction float64
	Speed     float64
}

type BallistaData struct {
	Facing   float64
	Cooldown int // frames until the next shot
	Armed    bool
}

type ChestData struct {
	Opened bool
}

// PlugData is a breakable obstacle; Phase follows the hit count.
type PlugData struct {
	Hits  int
	Phase int
}

var Rock = donburi.NewComponentType[RockData]()
var Arrow = donburi.NewComponentType[ArrowData]()
var Ballista = donburi.NewComponentType[BallistaData]()
var Chest = donburi.NewComponentType[ChestData]()
var Plug = donburi.NewComponentType[PlugData]()
