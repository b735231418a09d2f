package components

import "github.com/yohamta/donburi"

// NetInterpData smooths a replicated entity between two server snapshots.
type NetInterpData struct {
	PrevX, PrevY     float64
	TargetX, TargetY float64
	T                float64
	Initialized      bool
}

var NetInterp = donburi.NewComponentType[NetInterpData]()

// Retarget starts a new interpolation leg from the currently drawn position.
// The first snapshot snaps straight to the target.
func (d *NetInterpData) Retarget(curX, curY, x, y float64) {
	if !d.Initialized {
		d.PrevX, d.PrevY = x, y
		d.TargetX, d.TargetY = x, y
		d.T = 1
		d.Initialized = true
		return
	}
	d.PrevX, d.PrevY = curX, curY
	d.TargetX, d.TargetY = x, y
	d.T = 0
}

// Advance moves T towards 1 by step and returns the interpolated position.
func (d *NetInterpData) Advance(step float64) (float64, float64) {
	d.T += step
	if d.T > 1 {
		d.T = 1
	}
	return d.PrevX + (d.TargetX-d.PrevX)*d.T, d.PrevY + (d.TargetY-d.PrevY)*d.T
}
