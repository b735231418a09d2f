package sim

import (
	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// updateRocks drops rocks. A rock kills every live actor it touches on
// its way down and shatters on the ground.
func (w *World) updateRocks() {
	var shattered []*donburi.Entry
	components.Rock.Each(w.ECS, func(e *donburi.Entry) {
		physics := components.Physics.Get(e)
		obj := components.Object.Get(e)

		physics.SpeedY = clampVerticalSpeed(physics.SpeedY + physics.Gravity)
		obj.Y += physics.SpeedY
		obj.Update()

		for _, victim := range w.overlappingActors(obj.Object) {
			if victim.IsAlive() {
				victim.SetStateWithLock(config.Dead, true, nil)
			}
		}
		if w.touches(obj.Object, tags.ResolvSolid, tags.ResolvPlug) {
			shattered = append(shattered, e)
		}
	})
	for _, e := range shattered {
		w.destroy(e)
	}
}

// updateBallistas settles ballistas onto the ground, then fires an arrow
// every shoot delay.
func (w *World) updateBallistas() {
	type shot struct{ x, y, facing float64 }
	var shots []shot

	components.Ballista.Each(w.ECS, func(e *donburi.Entry) {
		ballista := components.Ballista.Get(e)
		physics := components.Physics.Get(e)
		obj := components.Object.Get(e)

		if !ballista.Armed {
			physics.SpeedY += physics.Gravity
			resolveVertical(physics, obj.Object)
			obj.Update()
			if physics.OnGround == nil {
				return
			}
			ballista.Armed = true
			ballista.Cooldown = config.Hazard.BallistaShootDelay
		}

		ballista.Cooldown--
		if ballista.Cooldown > 0 {
			return
		}
		ballista.Cooldown = config.Hazard.BallistaShootDelay

		x := obj.X + obj.W
		if ballista.Facing < 0 {
			x = obj.X
		}
		shots = append(shots, shot{x, obj.Y + obj.H/2 - config.Hazard.ArrowHeight/2, ballista.Facing})
	})

	for _, s := range shots {
		w.CreateArrow(s.x, s.y, s.facing)
	}
}

// updateArrows flies arrows. An arrow kills the first live actor it hits
// and breaks on solids and at the level edge.
func (w *World) updateArrows() {
	var spent []*donburi.Entry
	components.Arrow.Each(w.ECS, func(e *donburi.Entry) {
		arrow := components.Arrow.Get(e)
		obj := components.Object.Get(e)

		obj.X += arrow.Direction * arrow.Speed
		obj.Update()

		for _, victim := range w.overlappingActors(obj.Object) {
			if !victim.IsAlive() {
				continue
			}
			victim.SetStateWithLock(config.Dead, true, nil)
			spent = append(spent, e)
			return
		}
		if w.touches(obj.Object, tags.ResolvSolid, tags.ResolvPlug) || w.outOfBounds(obj.Object) {
			spent = append(spent, e)
		}
	})
	for _, e := range spent {
		w.destroy(e)
	}
}

func (w *World) outOfBounds(obj *resolv.Object) bool {
	return obj.X+obj.W < 0 || obj.Y+obj.H < 0 ||
		obj.X > float64(w.Level.Width) || obj.Y > float64(w.Level.Height)
}
