package combat

import (
	gomath "math"
	"testing"

	"github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetState_RejectsProtectedStates(t *testing.T) {
	f := newFixture(t)
	a := f.spawn(t, config.KindMonster, 0, 0)

	for _, s := range []config.CharacterState{config.Dead, config.UnderAttack, config.Attack} {
		assert.False(t, a.SetState(s), "SetState(%s) should fail", s)
		assert.Equal(t, config.Idle, a.State())
		assert.False(t, a.Locked())
	}
}

func TestSetState_RejectsEverythingWhileLocked(t *testing.T) {
	f := newFixture(t)
	a := f.spawn(t, config.KindMonster, 0, 0)
	a.SetStateWithLock(config.UnderAttack, true, nil)

	for _, s := range config.AllStates() {
		assert.False(t, a.SetState(s), "SetState(%s) should fail while locked", s)
		assert.Equal(t, config.UnderAttack, a.State())
		assert.True(t, a.Locked())
	}
}

func TestSetState_AcceptsOrdinaryStates(t *testing.T) {
	f := newFixture(t)
	a := f.spawn(t, config.KindMonster, 0, 0)

	require.True(t, a.SetState(config.Patrol))
	assert.Equal(t, config.Patrol, a.State())
	require.True(t, a.SetState(config.Static))
	assert.Equal(t, config.Static, a.State())
	assert.Equal(t, []config.CharacterState{config.Patrol, config.Static}, f.observer.requests)
}

func TestSetState_LeavesUnlockedProtectedState(t *testing.T) {
	f := newFixture(t)
	a := f.spawn(t, config.KindMonster, 0, 0)

	// The guard looks at the requested state, not the current one.
	a.SetStateWithLock(config.UnderAttack, false, nil)
	assert.True(t, a.SetState(config.Idle))
	assert.Equal(t, config.Idle, a.State())
}

func TestSetStateWithLock_AlwaysSucceeds(t *testing.T) {
	f := newFixture(t)
	a := f.spawn(t, config.KindMonster, 0, 0)

	for _, s := range []config.CharacterState{config.Attack, config.UnderAttack, config.Idle, config.Static} {
		for _, lock := range []bool{true, false} {
			a.SetStateWithLock(s, lock, nil)
			assert.Equal(t, s, a.State())
			assert.Equal(t, lock, a.Locked())
		}
	}
}

func TestKillPath_FiresOnce(t *testing.T) {
	f := newFixture(t)
	victim := f.spawn(t, config.KindMonster, 100, 0)
	killer := f.spawn(t, config.KindBoss, 50, 0)

	victim.SetStateWithLock(config.Dead, true, killer)
	victim.SetStateWithLock(config.Dead, true, killer)

	assert.Len(t, f.impulse.calls, 1)
	assert.Equal(t, 1, f.bus.Count(events.ActorDied))
	assert.Equal(t, 0, f.bus.Count(events.GameOver))
	assert.False(t, victim.IsAlive())
	assert.True(t, victim.Locked())
}

func TestKillPath_KnockbackAwayFromCaller(t *testing.T) {
	tests := []struct {
		name    string
		callerX float64
		wantX   float64
	}{
		{"caller on the left", 10, 1},
		{"caller on the right", 200, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			victim := f.spawn(t, config.KindPlayer, 100, 0)
			caller := f.spawn(t, config.KindMonster, tt.callerX, 0)

			victim.SetStateWithLock(config.Dead, true, caller)

			require.Len(t, f.impulse.calls, 1)
			call := f.impulse.calls[0]
			assert.Equal(t, victim.Entity(), call.entity)
			assert.Equal(t, config.Combat.KnockbackForce, call.magnitude)
			assert.InDelta(t, tt.wantX/gomath.Sqrt2, call.dir.X, 1e-9)
			assert.InDelta(t, -1/gomath.Sqrt2, call.dir.Y, 1e-9)
		})
	}
}

func TestKillPath_WithoutCallerUsesFacing(t *testing.T) {
	f := newFixture(t)
	a := f.spawn(t, config.KindMonster, 0, 0)
	a.Face(config.DirectionLeft)

	a.SetStateWithLock(config.Dead, true, nil)

	require.Len(t, f.impulse.calls, 1)
	assert.Less(t, f.impulse.calls[0].dir.X, 0.0)
	assert.Less(t, f.impulse.calls[0].dir.Y, 0.0)
}

func TestKillPath_PlayerDeathEndsGame(t *testing.T) {
	f := newFixture(t)
	var died []events.Signal
	f.bus.Subscribe(events.ActorDied, func(s events.Signal) { died = append(died, s) })

	player := f.spawn(t, config.KindPlayer, 0, 0)
	monster := f.spawn(t, config.KindMonster, 20, 0)
	player.SetStateWithLock(config.Dead, true, monster)

	assert.Equal(t, 1, f.bus.Count(events.GameOver))
	require.Len(t, died, 1)
	assert.Equal(t, player.Entity(), died[0].Entity)
	assert.Equal(t, monster.Entity(), died[0].Source)
	assert.Equal(t, config.KindPlayer, died[0].ActorKind)
}

func TestChaseTarget_StaleHandleIsAbsent(t *testing.T) {
	f := newFixture(t)
	hunter := f.spawn(t, config.KindMonster, 0, 0)
	prey := f.spawn(t, config.KindPlayer, 40, 0)

	hunter.SetChaseTarget(prey)
	target, ok := hunter.ChaseTarget()
	require.True(t, ok)
	assert.Equal(t, prey.Entity(), target.Entity())

	f.reg.World().Remove(prey.Entity())
	f.spawn(t, config.KindPlayer, 80, 0)

	_, ok = hunter.ChaseTarget()
	assert.False(t, ok)
	assert.False(t, prey.IsAlive())
	assert.False(t, prey.SetState(config.Idle))
	assert.NotPanics(t, func() { prey.SetStateWithLock(config.Dead, true, hunter) })
	assert.Empty(t, f.impulse.calls)
}

func TestRegistry_NearestAlive(t *testing.T) {
	f := newFixture(t)
	near := f.spawn(t, config.KindPlayer, 30, 0)
	f.spawn(t, config.KindPlayer, 90, 0)
	dead := f.spawn(t, config.KindPlayer, 5, 0)
	dead.SetStateWithLock(config.Dead, true, nil)
	f.spawn(t, config.KindMonster, 1, 0)

	got, ok := f.reg.NearestAlive(config.KindPlayer, near.Position())
	require.True(t, ok)
	assert.Equal(t, near.Entity(), got.Entity())

	_, ok = f.reg.NearestAlive(config.KindBoss, near.Position())
	assert.False(t, ok)
}
