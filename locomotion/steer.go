// Package locomotion steers actors along patrol loops and toward chase
// targets.
package locomotion

import (
	"math"

	"github.com/automoto/skirmish/components"
	dmath "github.com/yohamta/donburi/features/math"
)

// Patrol advances the path when pos has reached the current waypoint and
// returns the horizontal direction (-1, 0, 1) toward the waypoint to head for.
func Patrol(pos dmath.Vec2, path *components.PatrolData) (float64, bool) {
	wp, ok := path.Current()
	if !ok {
		return 0, false
	}
	if Reached(pos, wp, path.ReachDistance) {
		path.Advance()
		wp, _ = path.Current()
	}
	return direction(pos.X, wp.X, path.ReachDistance), true
}

// Reached compares horizontal distance only. Waypoints are drawn on the
// floor while actor centers float above it.
func Reached(pos, wp dmath.Vec2, reach float64) bool {
	return math.Abs(wp.X-pos.X) <= reach
}

// Chase returns the horizontal direction toward target and whether target
// is within radius.
func Chase(pos, target dmath.Vec2, radius float64) (float64, bool) {
	dist := math.Hypot(target.X-pos.X, target.Y-pos.Y)
	return direction(pos.X, target.X, 0), dist <= radius
}

func direction(from, to, deadZone float64) float64 {
	dx := to - from
	switch {
	case dx > deadZone:
		return 1
	case dx < -deadZone:
		return -1
	default:
		return 0
	}
}
