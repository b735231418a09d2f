package combat

import (
	"testing"

	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestAttack(t *testing.T) {
	f := newFixture(t)
	r := NewResolver(f.reg, nil)
	a := f.spawn(t, config.KindMonster, 0, 0)

	require.True(t, r.RequestAttack(a))
	assert.Equal(t, config.Attack, a.State())
	assert.False(t, a.Locked())

	a.SetStateWithLock(config.UnderAttack, true, nil)
	assert.False(t, r.RequestAttack(a))
	assert.Equal(t, config.UnderAttack, a.State())
}

func TestEnterAttackWindow_WithoutTargetIsNoop(t *testing.T) {
	f := newFixture(t)
	r := NewResolver(f.reg, nil)
	attacker := f.spawn(t, config.KindMonster, 0, 0)
	r.RequestAttack(attacker)

	r.OnEnterAttackWindow(attacker.Entity())

	assert.Equal(t, config.Attack, attacker.State())
	assert.False(t, attacker.Locked())
}

func TestAttackWindow_FullResolution(t *testing.T) {
	f := newFixture(t)
	r := NewResolver(f.reg, nil)
	attacker := f.spawn(t, config.KindMonster, 0, 0)
	victim := f.spawn(t, config.KindPlayer, 20, 0)
	attacker.SetChaseTarget(victim)
	r.RequestAttack(attacker)

	r.OnEnterAttackWindow(attacker.Entity())
	assert.Equal(t, config.UnderAttack, victim.State())
	assert.True(t, victim.Locked())
	assert.Equal(t, config.Attack, attacker.State())
	assert.True(t, attacker.Locked())

	r.OnExitAttackWindow(attacker.Entity())
	assert.Equal(t, config.Idle, attacker.State())
	assert.False(t, attacker.Locked())
	assert.Equal(t, config.Dead, victim.State())
	assert.True(t, victim.Locked())
	assert.Equal(t, 1, f.bus.Count(events.ActorDied))
	require.Len(t, f.impulse.calls, 1)
	assert.Greater(t, f.impulse.calls[0].dir.X, 0.0)
}

func TestAttackWindow_WaitsForCueCompletion(t *testing.T) {
	f := newFixture(t)
	cues := &manualCues{}
	r := NewResolver(f.reg, cues)
	attacker := f.spawn(t, config.KindMonster, 0, 0)
	victim := f.spawn(t, config.KindPlayer, 20, 0)
	attacker.SetChaseTarget(victim)
	r.RequestAttack(attacker)

	r.OnEnterAttackWindow(attacker.Entity())
	r.OnExitAttackWindow(attacker.Entity())

	require.Len(t, cues.played, 1)
	assert.Equal(t, HitCue, cues.played[0].Name)
	assert.Equal(t, attacker.Entity(), cues.played[0].Source)
	assert.True(t, attacker.Locked())
	assert.Equal(t, config.UnderAttack, victim.State())

	cues.flush()
	assert.Equal(t, config.Idle, attacker.State())
	assert.Equal(t, config.Dead, victim.State())
	assert.Equal(t, 1, f.bus.Count(events.ActorDied))
}

func TestAttackWindow_VictimRemovedBeforeExit(t *testing.T) {
	f := newFixture(t)
	cues := &manualCues{}
	r := NewResolver(f.reg, cues)
	attacker := f.spawn(t, config.KindMonster, 0, 0)
	victim := f.spawn(t, config.KindPlayer, 20, 0)
	attacker.SetChaseTarget(victim)
	r.RequestAttack(attacker)
	r.OnEnterAttackWindow(attacker.Entity())

	r.OnExitAttackWindow(attacker.Entity())
	f.reg.World().Remove(victim.Entity())
	cues.flush()

	assert.Equal(t, config.Idle, attacker.State())
	assert.False(t, attacker.Locked())
	assert.Empty(t, f.impulse.calls)
	assert.Equal(t, 0, f.bus.Count(events.ActorDied))
}

func TestAttackWindow_VictimAlreadyDead(t *testing.T) {
	f := newFixture(t)
	r := NewResolver(f.reg, nil)
	attacker := f.spawn(t, config.KindMonster, 0, 0)
	victim := f.spawn(t, config.KindPlayer, 20, 0)
	attacker.SetChaseTarget(victim)
	r.RequestAttack(attacker)
	r.OnEnterAttackWindow(attacker.Entity())

	// Something else kills the victim mid-swing.
	victim.SetStateWithLock(config.Dead, true, nil)
	require.Len(t, f.impulse.calls, 1)
	require.Equal(t, 1, f.bus.Count(events.ActorDied))

	r.OnExitAttackWindow(attacker.Entity())

	assert.Len(t, f.impulse.calls, 1)
	assert.Equal(t, 1, f.bus.Count(events.ActorDied))
	assert.Equal(t, config.Idle, attacker.State())
	assert.False(t, attacker.Locked())
	assert.Equal(t, config.Dead, victim.State())
}

func TestAttackWindow_DeadAttackerStaysDead(t *testing.T) {
	f := newFixture(t)
	cues := &manualCues{}
	r := NewResolver(f.reg, cues)
	attacker := f.spawn(t, config.KindMonster, 0, 0)
	victim := f.spawn(t, config.KindPlayer, 20, 0)
	attacker.SetChaseTarget(victim)
	r.RequestAttack(attacker)
	r.OnEnterAttackWindow(attacker.Entity())
	r.OnExitAttackWindow(attacker.Entity())

	attacker.SetStateWithLock(config.Dead, true, nil)
	cues.flush()

	assert.Equal(t, config.Dead, attacker.State())
	assert.Equal(t, config.Idle, victim.State())
	assert.False(t, victim.Locked())
	assert.Equal(t, 1, f.bus.Count(events.ActorDied))
}

func TestAttackWindow_AttackerKilledBeforeExitReleasesVictim(t *testing.T) {
	f := newFixture(t)
	r := NewResolver(f.reg, &manualCues{})
	attacker := f.spawn(t, config.KindMonster, 0, 0)
	victim := f.spawn(t, config.KindPlayer, 20, 0)
	attacker.SetChaseTarget(victim)
	r.RequestAttack(attacker)
	r.OnEnterAttackWindow(attacker.Entity())
	require.Equal(t, config.UnderAttack, victim.State())
	require.True(t, victim.Locked())

	// No exit window follows.
	attacker.SetStateWithLock(config.Dead, true, nil)

	assert.Equal(t, config.Idle, victim.State())
	assert.False(t, victim.Locked())
	assert.True(t, victim.SetState(config.Walk))
}

func TestAttackWindow_SecondAttackerKeepsVictim(t *testing.T) {
	f := newFixture(t)
	cues := &manualCues{}
	r := NewResolver(f.reg, cues)
	first := f.spawn(t, config.KindMonster, 0, 0)
	second := f.spawn(t, config.KindMonster, 40, 0)
	victim := f.spawn(t, config.KindPlayer, 20, 0)
	first.SetChaseTarget(victim)
	second.SetChaseTarget(victim)

	var victimDeaths int
	f.bus.Subscribe(events.ActorDied, func(s events.Signal) {
		if s.Entity == victim.Entity() {
			victimDeaths++
		}
	})

	r.RequestAttack(first)
	r.OnEnterAttackWindow(first.Entity())
	r.OnExitAttackWindow(first.Entity())
	r.RequestAttack(second)
	r.OnEnterAttackWindow(second.Entity())

	first.SetStateWithLock(config.Dead, true, nil)
	cues.flush()

	assert.Equal(t, config.UnderAttack, victim.State())
	assert.True(t, victim.Locked())
	assert.False(t, victim.SetState(config.Walk))

	r.OnExitAttackWindow(second.Entity())
	cues.flush()

	assert.Equal(t, config.Dead, victim.State())
	assert.True(t, victim.Locked())
	assert.Equal(t, config.Idle, second.State())
	assert.Equal(t, 1, victimDeaths)
}

func TestReleaseOrphans_FreesVictimOfRemovedAttacker(t *testing.T) {
	f := newFixture(t)
	r := NewResolver(f.reg, nil)
	attacker := f.spawn(t, config.KindMonster, 0, 0)
	victim := f.spawn(t, config.KindPlayer, 20, 0)
	attacker.SetChaseTarget(victim)
	r.RequestAttack(attacker)
	r.OnEnterAttackWindow(attacker.Entity())

	f.reg.ReleaseOrphans()
	require.Equal(t, config.UnderAttack, victim.State())

	f.reg.World().Remove(attacker.Entity())
	f.reg.ReleaseOrphans()

	assert.Equal(t, config.Idle, victim.State())
	assert.False(t, victim.Locked())
}

func TestReleaseHeldBy_IgnoresUnheldActors(t *testing.T) {
	f := newFixture(t)
	attacker := f.spawn(t, config.KindMonster, 0, 0)
	bystander := f.spawn(t, config.KindPlayer, 20, 0)
	bystander.SetStateWithLock(config.UnderAttack, true, nil)

	f.reg.ReleaseHeldBy(attacker.Entity())
	f.reg.ReleaseOrphans()

	assert.Equal(t, config.UnderAttack, bystander.State())
	assert.True(t, bystander.Locked())
}

func TestOnPostDead_SchedulesRemoval(t *testing.T) {
	f := newFixture(t)
	r := NewResolver(f.reg, nil)
	a := f.spawn(t, config.KindMonster, 0, 0)
	a.SetStateWithLock(config.Dead, true, nil)

	r.OnPostDead(a.Entity())

	entry, ok := a.Entry()
	require.True(t, ok)
	require.True(t, entry.HasComponent(components.Death))
	assert.Equal(t, 0, components.Death.Get(entry).Timer)
}
