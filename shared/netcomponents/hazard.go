package netcomponents

import "github.com/yohamta/donburi"

type NetHazardData struct {
	X, Y, W, H float64
	Kind       string // "Rock", "Arrow", "Ballista", "Chest", "Plug"
	Phase      int    // plug break phase, chest opened flag
}

var NetHazard = donburi.NewComponentType[NetHazardData]()

// LerpNetHazard interpolates between two hazard states
func LerpNetHazard(from, to NetHazardData, t float64) *NetHazardData {
	return &NetHazardData{
		X:     from.X + (to.X-from.X)*t,
		Y:     from.Y + (to.Y-from.Y)*t,
		W:     to.W,
		H:     to.H,
		Kind:  to.Kind,
		Phase: to.Phase,
	}
}
