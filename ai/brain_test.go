package ai

import (
	"testing"

	"github.com/automoto/skirmish/combat"
	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/events"
	"github.com/automoto/skirmish/perception"
	"github.com/automoto/skirmish/tags"
	"github.com/solarlune/resolv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	dmath "github.com/yohamta/donburi/features/math"
)

type fakeActuator struct {
	footing bool
	vx      map[donburi.Entity]float64
}

func (f *fakeActuator) SetPlanarVelocity(e donburi.Entity, vx float64) { f.vx[e] = vx }
func (f *fakeActuator) HasFooting(donburi.Entity) bool                 { return f.footing }

type countingImpulse struct {
	dirs []dmath.Vec2
}

func (c *countingImpulse) ApplyImpulse(_ donburi.Entity, dir dmath.Vec2, _ float64) {
	c.dirs = append(c.dirs, dir)
}

type arena struct {
	reg      *combat.Registry
	space    *resolv.Space
	bus      *events.Bus
	impulse  *countingImpulse
	actuator *fakeActuator
	resolver *combat.Resolver
	brain    *Brain
}

func newArena(t *testing.T) *arena {
	t.Helper()
	a := &arena{
		space:    resolv.NewSpace(640, 320, 16, 16),
		bus:      events.NewBus(),
		impulse:  &countingImpulse{},
		actuator: &fakeActuator{footing: true, vx: map[donburi.Entity]float64{}},
	}
	a.reg = combat.NewRegistry(donburi.NewWorld(), combat.WithSignals(a.bus), combat.WithImpulse(a.impulse))
	a.resolver = combat.NewResolver(a.reg, nil)
	det := perception.NewDetector(a.reg, perception.NewSpaceCaster(a.space, tags.ResolvSolid, tags.ResolvActor))
	a.brain = NewBrain(a.reg, det, a.actuator, a.resolver)
	return a
}

func (a *arena) spawn(t *testing.T, kind string, x float64) *combat.Actor {
	t.Helper()
	kc, ok := config.Actors.Kind(kind)
	require.True(t, ok)

	w := a.reg.World()
	e := w.Create(components.Actor, components.Chase, components.Brain, components.Perception, components.Object)
	entry := w.Entry(e)
	components.Actor.SetValue(entry, components.ActorData{
		Kind:   kind,
		Rank:   config.RankOf(kind),
		Status: components.Status{State: config.Idle},
		Facing: config.DirectionRight,
	})
	components.Perception.SetValue(entry, components.PerceptionData{PerceptionConfig: kc.Perception})

	obj := resolv.NewObject(x, 100, 16, 16, tags.ResolvActor)
	obj.Data = e
	a.space.Add(obj)
	components.Object.SetValue(entry, components.ObjectData{Object: obj})

	actor, ok := a.reg.Resolve(e)
	require.True(t, ok)
	return actor
}

func (a *arena) moveTo(t *testing.T, actor *combat.Actor, x float64) {
	t.Helper()
	entry, ok := actor.Entry()
	require.True(t, ok)
	obj := components.Object.Get(entry)
	obj.X = x
	obj.Update()
}

func givePatrol(t *testing.T, actor *combat.Actor, points ...dmath.Vec2) {
	t.Helper()
	entry, ok := actor.Entry()
	require.True(t, ok)
	entry.AddComponent(components.Patrol)
	components.Patrol.SetValue(entry, components.PatrolData{Points: points, ReachDistance: 2})
}

func TestScenario_ChaseAttackKill(t *testing.T) {
	a := newArena(t)
	attacker := a.spawn(t, config.KindMonster, 0)
	victim := a.spawn(t, config.KindPlayer, 60)

	// Out of attack range but in sight.
	a.brain.Think(attacker)
	require.Equal(t, config.Chase, attacker.State())
	target, ok := attacker.ChaseTarget()
	require.True(t, ok)
	assert.Equal(t, victim.Entity(), target.Entity())

	kc, _ := config.Actors.Kind(config.KindMonster)
	a.brain.Move(attacker)
	assert.Equal(t, kc.ChaseSpeed, a.actuator.vx[attacker.Entity()])

	// Close the gap.
	a.moveTo(t, victim, 16)
	a.brain.Think(attacker)
	require.Equal(t, config.Attack, attacker.State())
	assert.False(t, attacker.Locked())
	a.brain.Move(attacker)
	assert.Equal(t, 0.0, a.actuator.vx[attacker.Entity()])

	a.resolver.OnEnterAttackWindow(attacker.Entity())
	assert.Equal(t, config.UnderAttack, victim.State())
	assert.True(t, victim.Locked())
	assert.True(t, attacker.Locked())

	// Locked actors are left alone by the brain.
	a.brain.Think(attacker)
	assert.Equal(t, config.Attack, attacker.State())

	a.resolver.OnExitAttackWindow(attacker.Entity())
	assert.Equal(t, config.Idle, attacker.State())
	assert.False(t, attacker.Locked())
	assert.Equal(t, config.Dead, victim.State())
	assert.True(t, victim.Locked())

	require.Len(t, a.impulse.dirs, 1)
	assert.Greater(t, a.impulse.dirs[0].X, 0.0, "knockback points away from the attacker")
	assert.Less(t, a.impulse.dirs[0].Y, 0.0)
	assert.Equal(t, 1, a.bus.Count(events.ActorDied))
	assert.Equal(t, 1, a.bus.Count(events.GameOver))
}

func TestScenario_NoAttackWithoutFooting(t *testing.T) {
	a := newArena(t)
	attacker := a.spawn(t, config.KindMonster, 0)
	a.spawn(t, config.KindPlayer, 16)
	a.actuator.footing = false

	a.brain.Think(attacker)
	require.Equal(t, config.Chase, attacker.State())
	a.brain.Think(attacker)
	assert.Equal(t, config.Chase, attacker.State())

	a.actuator.footing = true
	a.brain.Think(attacker)
	assert.Equal(t, config.Attack, attacker.State())
}

func TestThink_IdleStartsPatrolling(t *testing.T) {
	a := newArena(t)
	walker := a.spawn(t, config.KindMonster, 0)
	idler := a.spawn(t, config.KindMonster, 300)
	givePatrol(t, walker, dmath.Vec2{X: 0}, dmath.Vec2{X: 100})

	a.brain.ThinkAll()

	assert.Equal(t, config.Patrol, walker.State())
	assert.Equal(t, config.Idle, idler.State())
}

func TestThink_LostTargetFallsBack(t *testing.T) {
	a := newArena(t)
	walker := a.spawn(t, config.KindMonster, 0)
	idler := a.spawn(t, config.KindMonster, 120)
	idler.Face(config.DirectionLeft)
	givePatrol(t, walker, dmath.Vec2{X: 0}, dmath.Vec2{X: 100})
	prey := a.spawn(t, config.KindPlayer, 60)

	a.brain.ThinkAll()
	require.Equal(t, config.Chase, walker.State())
	require.Equal(t, config.Chase, idler.State())

	a.reg.World().Remove(prey.Entity())
	a.brain.ThinkAll()

	assert.Equal(t, config.Patrol, walker.State())
	assert.Equal(t, config.Idle, idler.State())
	_, ok := walker.ChaseTarget()
	assert.False(t, ok)
}

func TestThink_AttackGivesUpWithoutWindow(t *testing.T) {
	a := newArena(t)
	attacker := a.spawn(t, config.KindMonster, 0)
	a.spawn(t, config.KindPlayer, 16)

	a.brain.Think(attacker)
	a.brain.Think(attacker)
	require.Equal(t, config.Attack, attacker.State())

	for i := 0; i < config.Combat.AttackRequestTimeout-1; i++ {
		a.brain.Think(attacker)
	}
	assert.Equal(t, config.Attack, attacker.State())
	a.brain.Think(attacker)
	assert.Equal(t, config.Idle, attacker.State())
}

func TestThink_IgnoresControlledActors(t *testing.T) {
	a := newArena(t)
	player := a.spawn(t, config.KindPlayer, 0)
	a.spawn(t, config.KindMonster, 40)

	a.brain.Think(player)
	a.brain.Move(player)

	assert.Equal(t, config.Idle, player.State())
	_, moved := a.actuator.vx[player.Entity()]
	assert.False(t, moved)
}

func TestMove_PatrolFollowsWaypoints(t *testing.T) {
	a := newArena(t)
	walker := a.spawn(t, config.KindMonster, 100)
	givePatrol(t, walker, dmath.Vec2{X: 20}, dmath.Vec2{X: 300})
	require.True(t, walker.SetState(config.Patrol))
	kc, _ := config.Actors.Kind(config.KindMonster)

	a.brain.Move(walker)
	assert.Equal(t, -kc.PatrolSpeed, a.actuator.vx[walker.Entity()])
	assert.Equal(t, config.DirectionLeft, walker.Facing())

	// Standing on the first waypoint turns it toward the second.
	a.moveTo(t, walker, 12)
	a.brain.Move(walker)
	assert.Equal(t, kc.PatrolSpeed, a.actuator.vx[walker.Entity()])
	assert.Equal(t, config.DirectionRight, walker.Facing())
}

func TestMove_AirborneLeavesVelocityAlone(t *testing.T) {
	a := newArena(t)
	walker := a.spawn(t, config.KindMonster, 100)
	givePatrol(t, walker, dmath.Vec2{X: 20}, dmath.Vec2{X: 300})
	require.True(t, walker.SetState(config.Patrol))
	a.actuator.footing = false

	a.brain.Move(walker)
	_, touched := a.actuator.vx[walker.Entity()]
	assert.False(t, touched)
}

func TestMove_LeavesKnockbackStatesAlone(t *testing.T) {
	a := newArena(t)
	for _, s := range []config.CharacterState{config.Dead, config.UnderAttack} {
		actor := a.spawn(t, config.KindMonster, 0)
		actor.SetStateWithLock(s, true, nil)
		a.brain.Move(actor)
		_, touched := a.actuator.vx[actor.Entity()]
		assert.False(t, touched, "%s should not be steered", s)
	}

	idle := a.spawn(t, config.KindMonster, 200)
	a.actuator.vx[idle.Entity()] = 5
	a.brain.Move(idle)
	assert.Equal(t, 0.0, a.actuator.vx[idle.Entity()])
}
