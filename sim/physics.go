package sim

import (
	"math"

	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// updatePhysics applies friction and gravity to every actor. Steered
// states already carry the exact velocity the brain or the player asked
// for, so friction only bleeds off knockback and leftover speed.
func (w *World) updatePhysics() {
	components.Physics.Each(w.ECS, func(e *donburi.Entry) {
		if !e.HasComponent(components.Actor) {
			return
		}
		physics := components.Physics.Get(e)

		if !steered(components.Actor.Get(e).Status.State) {
			friction := physics.Friction
			if physics.OnGround == nil {
				friction = config.Physics.AirFriction
			}
			if physics.SpeedX > friction {
				physics.SpeedX -= friction
			} else if physics.SpeedX < -friction {
				physics.SpeedX += friction
			} else {
				physics.SpeedX = 0
			}
		}

		if physics.SpeedX > physics.MaxSpeed {
			physics.SpeedX = physics.MaxSpeed
		} else if physics.SpeedX < -physics.MaxSpeed {
			physics.SpeedX = -physics.MaxSpeed
		}

		physics.SpeedY += physics.Gravity
	})
}

func steered(s config.CharacterState) bool {
	switch s {
	case config.Walk, config.Patrol, config.Chase:
		return true
	}
	return false
}

// updateCollisions moves every actor by its velocity, stopping at solids.
func (w *World) updateCollisions() {
	components.Physics.Each(w.ECS, func(e *donburi.Entry) {
		if !e.HasComponent(components.Actor) {
			return
		}
		physics := components.Physics.Get(e)
		obj := components.Object.Get(e)

		resolveHorizontal(physics, obj.Object)
		resolveVertical(physics, obj.Object)
		obj.Update()
	})
}

func resolveHorizontal(physics *components.PhysicsData, object *resolv.Object) {
	dx := physics.SpeedX
	if dx == 0 {
		return
	}

	check := object.Check(dx, 0, tags.ResolvSolid, tags.ResolvPlug)
	if check == nil {
		object.X += dx
		return
	}

	if _, gap, ok := sweepX(object, check.Objects, dx); ok {
		physics.SpeedX = 0
		dx = math.Copysign(gap, dx)
	}
	object.X += dx
}

func resolveVertical(physics *components.PhysicsData, object *resolv.Object) {
	physics.OnGround = nil
	dy := clampVerticalSpeed(physics.SpeedY)

	checkDistance := dy
	if dy >= 0 {
		checkDistance++
	}

	check := object.Check(0, checkDistance, tags.ResolvSolid, tags.ResolvPlug)
	if check == nil {
		object.Y += dy
		return
	}

	solid, gap, ok := sweepY(object, check.Objects, checkDistance)
	if !ok {
		object.Y += dy
		return
	}
	physics.SpeedY = 0
	if dy < 0 {
		object.Y -= gap
		return
	}
	// Only land when falling or standing
	physics.OnGround = solid
	object.Y += gap
}

// contactSlop absorbs float error when bodies rest exactly against each other.
const contactSlop = 0.01

// sweepX returns the nearest object standing in the way of a horizontal
// move by dx and the free distance up to it. Objects already overlapping
// the mover are ignored so nothing gets stuck inside a wall.
func sweepX(object *resolv.Object, candidates []*resolv.Object, dx float64) (*resolv.Object, float64, bool) {
	var (
		best    *resolv.Object
		bestGap = math.Abs(dx)
	)
	for _, o := range candidates {
		if object.Y+object.H <= o.Y || object.Y >= o.Y+o.H {
			continue
		}
		var gap float64
		if dx > 0 {
			gap = o.X - (object.X + object.W)
		} else {
			gap = object.X - (o.X + o.W)
		}
		if gap < -contactSlop || gap >= bestGap {
			continue
		}
		best, bestGap = o, math.Max(gap, 0)
	}
	return best, bestGap, best != nil
}

// sweepY is sweepX for vertical moves.
func sweepY(object *resolv.Object, candidates []*resolv.Object, dy float64) (*resolv.Object, float64, bool) {
	var (
		best    *resolv.Object
		bestGap = math.Abs(dy)
	)
	for _, o := range candidates {
		if object.X+object.W <= o.X || object.X >= o.X+o.W {
			continue
		}
		var gap float64
		if dy > 0 {
			gap = o.Y - (object.Y + object.H)
		} else {
			gap = object.Y - (o.Y + o.H)
		}
		if gap < -contactSlop || gap > bestGap {
			continue
		}
		best, bestGap = o, math.Max(gap, 0)
	}
	return best, bestGap, best != nil
}

func clampVerticalSpeed(speedY float64) float64 {
	limit := config.Physics.VerticalSpeedClamp
	if limit <= 0 {
		return speedY
	}
	return math.Max(math.Min(speedY, limit), -limit)
}
