package components

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

type ObjectData struct {
	*resolv.Object
}

// Center returns the middle of the object's bounding box.
func (o *ObjectData) Center() math.Vec2 {
	return math.Vec2{X: o.X + o.W/2, Y: o.Y + o.H/2}
}

var Object = donburi.NewComponentType[ObjectData]()
