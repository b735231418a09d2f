package components

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// PatrolData is a closed loop of waypoints. Index is the waypoint the actor
// is heading for and wraps back to zero after the last one.
type PatrolData struct {
	Name          string
	Points        []math.Vec2
	Index         int
	ReachDistance float64
}

// Current returns the waypoint being approached.
func (p *PatrolData) Current() (math.Vec2, bool) {
	if len(p.Points) == 0 {
		return math.Vec2{}, false
	}
	return p.Points[p.Index%len(p.Points)], true
}

// Advance moves on to the next waypoint.
func (p *PatrolData) Advance() {
	if len(p.Points) == 0 {
		return
	}
	p.Index = (p.Index + 1) % len(p.Points)
}

var Patrol = donburi.NewComponentType[PatrolData]()
