// Package perception decides what an actor can see. Two shapes are
// supported: a short forward ray with rank rules, and a ray aimed at a
// designated target kind.
package perception

import (
	"math"

	"github.com/automoto/skirmish/combat"
	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/metrics"
	dmath "github.com/yohamta/donburi/features/math"
)

type Detector struct {
	reg    *combat.Registry
	caster RayCaster
}

// NewDetector builds a detector. A nil caster never acquires anything.
func NewDetector(reg *combat.Registry, caster RayCaster) *Detector {
	return &Detector{reg: reg, caster: caster}
}

// Detect runs self's perception once. An acquired target is also stored
// as self's chase target.
func (d *Detector) Detect(self *combat.Actor) (combat.Capability, bool) {
	entry, ok := self.Entry()
	if !ok || d.caster == nil || !entry.HasComponent(components.Perception) {
		return nil, false
	}
	p := components.Perception.Get(entry)

	var (
		target *combat.Actor
		result string
	)
	switch p.Mode {
	case config.PerceptionTargeted:
		target, result = d.targeted(self, p)
	default:
		target, result = d.directional(self, p)
	}
	metrics.RecordDetection(result)

	p.Acquired = target != nil
	if target == nil {
		return nil, false
	}
	self.SetChaseTarget(target)
	return target, true
}

func (d *Detector) directional(self *combat.Actor, p *components.PerceptionData) (*combat.Actor, string) {
	facing := self.Facing()
	pos := self.Position()
	origin := dmath.Vec2{X: pos.X + p.OffsetX*facing, Y: pos.Y + p.OffsetY}
	dir := dmath.Vec2{X: facing}
	p.LastOrigin, p.LastEnd, p.LastCast = origin, dmath.Vec2{X: origin.X + facing*p.Radius, Y: origin.Y}, true

	maxHits := p.MaxHits
	if maxHits <= 0 {
		maxHits = 1
	}

	hits := d.caster.Cast(origin, dir, p.Radius, self.Entity())
	for i, h := range hits {
		if i >= maxHits {
			break
		}
		if h.HasEntity && !d.reg.World().Valid(h.Entity) {
			continue
		}
		other, isActor := d.resolve(h)
		if !isActor {
			p.LastEnd = h.Point
			return nil, metrics.DetectBlocked
		}
		if !other.IsAlive() {
			continue
		}
		p.LastEnd = h.Point
		if !config.IsCombatant(other.Kind()) || !config.Outranks(self.Rank(), other.Rank()) {
			return nil, metrics.DetectBlocked
		}
		return other, metrics.DetectAcquired
	}
	return nil, metrics.DetectMissed
}

func (d *Detector) targeted(self *combat.Actor, p *components.PerceptionData) (*combat.Actor, string) {
	pos := self.Position()
	origin := dmath.Vec2{X: pos.X + p.OffsetX*self.Facing(), Y: pos.Y + p.OffsetY}

	target, ok := d.reg.NearestAlive(p.TargetKind, origin)
	if !ok || !config.Outranks(self.Rank(), target.Rank()) {
		p.LastCast = false
		return nil, metrics.DetectMissed
	}

	tp := target.Position()
	delta := dmath.Vec2{X: tp.X - origin.X, Y: tp.Y - origin.Y}
	dist := math.Hypot(delta.X, delta.Y)
	p.LastOrigin, p.LastEnd, p.LastCast = origin, tp, true
	if p.Radius > 0 && dist > p.Radius {
		return nil, metrics.DetectMissed
	}
	if dist == 0 {
		return target, metrics.DetectAcquired
	}

	for _, h := range d.caster.Cast(origin, delta, dist, self.Entity()) {
		if h.HasEntity && h.Entity == target.Entity() {
			break
		}
		if h.HasTag(p.Blockers...) {
			p.LastEnd = h.Point
			return nil, metrics.DetectBlocked
		}
	}
	return target, metrics.DetectAcquired
}

func (d *Detector) resolve(h Hit) (*combat.Actor, bool) {
	if !h.HasEntity {
		return nil, false
	}
	return d.reg.Resolve(h.Entity)
}
