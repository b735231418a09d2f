package locomotion

import (
	"github.com/automoto/skirmish/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

// Actuator moves actors. The brain only ever sets horizontal velocity;
// gravity and collisions belong to the physics step.
type Actuator interface {
	SetPlanarVelocity(e donburi.Entity, vx float64)
	HasFooting(e donburi.Entity) bool
}

// PhysicsActuator drives components.Physics directly.
type PhysicsActuator struct {
	world donburi.World
}

func NewPhysicsActuator(w donburi.World) *PhysicsActuator {
	return &PhysicsActuator{world: w}
}

func (p *PhysicsActuator) physics(e donburi.Entity) (*components.PhysicsData, bool) {
	if !p.world.Valid(e) {
		return nil, false
	}
	entry := p.world.Entry(e)
	if !entry.HasComponent(components.Physics) {
		return nil, false
	}
	return components.Physics.Get(entry), true
}

func (p *PhysicsActuator) SetPlanarVelocity(e donburi.Entity, vx float64) {
	if physics, ok := p.physics(e); ok {
		physics.SpeedX = vx
	}
}

// HasFooting reports whether the last collision pass found ground below.
func (p *PhysicsActuator) HasFooting(e donburi.Entity) bool {
	physics, ok := p.physics(e)
	return ok && physics.OnGround != nil
}

// ApplyImpulse adds a velocity kick. It also releases the actor from the
// ground so the upward part is not eaten by the next landing check.
func (p *PhysicsActuator) ApplyImpulse(e donburi.Entity, dir math.Vec2, magnitude float64) {
	physics, ok := p.physics(e)
	if !ok {
		return
	}
	physics.SpeedX += dir.X * magnitude
	physics.SpeedY += dir.Y * magnitude
	if dir.Y < 0 {
		physics.OnGround = nil
	}
}
