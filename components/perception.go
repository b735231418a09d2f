package components

import (
	"github.com/automoto/skirmish/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

type PerceptionData struct {
	config.PerceptionConfig

	// Last cast, kept for debug rendering
	LastOrigin math.Vec2
	LastEnd    math.Vec2
	LastCast   bool
	Acquired   bool
}

var Perception = donburi.NewComponentType[PerceptionData]()
