package components

import "github.com/yohamta/donburi"

// IntentData is what a controlled actor wants to do this frame.
type IntentData struct {
	MoveX float64 // -1, 0 or 1
}

var Intent = donburi.NewComponentType[IntentData]()
