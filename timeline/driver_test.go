package timeline

import (
	"testing"

	"github.com/automoto/skirmish/combat"
	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

type recordingListener struct {
	enters, exits, posts []donburi.Entity
}

func (r *recordingListener) OnEnterAttackWindow(e donburi.Entity) { r.enters = append(r.enters, e) }
func (r *recordingListener) OnExitAttackWindow(e donburi.Entity)  { r.exits = append(r.exits, e) }
func (r *recordingListener) OnPostDead(e donburi.Entity)          { r.posts = append(r.posts, e) }

func spawnActor(t *testing.T, w donburi.World, d *Driver, kind string, state config.CharacterState) *donburi.Entry {
	t.Helper()
	entry := w.Entry(w.Create(components.Actor, components.Chase, components.Animation))
	components.Actor.SetValue(entry, components.ActorData{
		Kind:   kind,
		Rank:   config.RankOf(kind),
		Status: components.Status{State: state},
		Facing: config.DirectionRight,
	})
	d.Attach(entry)
	return entry
}

func setState(entry *donburi.Entry, s config.CharacterState) {
	components.Actor.Get(entry).Status.State = s
}

func stepN(d *Driver, n int) {
	for i := 0; i < n; i++ {
		d.Step()
	}
}

// ticksToFrame is how many steps a fresh clip needs to show frame.
func ticksToFrame(c config.ClipConfig, frame int) int {
	return frame * (int(c.SpeedInTps) + 1)
}

func TestDriver_AttackWindowFiresOncePerClip(t *testing.T) {
	w := donburi.NewWorld()
	d := NewDriver(w)
	l := &recordingListener{}
	d.SetListener(l)

	entry := spawnActor(t, w, d, config.KindMonster, config.Idle)
	setState(entry, config.Attack)

	clip := config.Animation.Clips[config.Attack]
	stepN(d, ticksToFrame(clip, config.Animation.AttackWindowStart)-1)
	assert.Empty(t, l.enters)
	d.Step()
	require.Len(t, l.enters, 1)
	assert.Equal(t, entry.Entity(), l.enters[0])
	assert.Empty(t, l.exits)

	stepN(d, ticksToFrame(clip, config.Animation.AttackWindowEnd)-ticksToFrame(clip, config.Animation.AttackWindowStart))
	require.Len(t, l.exits, 1)

	// The frozen clip never reopens the window.
	stepN(d, 60)
	assert.Len(t, l.enters, 1)
	assert.Len(t, l.exits, 1)

	// A new attack starts a new clip.
	setState(entry, config.Idle)
	d.Step()
	setState(entry, config.Attack)
	stepN(d, ticksToFrame(clip, config.Animation.AttackWindowEnd))
	assert.Len(t, l.enters, 2)
	assert.Len(t, l.exits, 2)
}

func TestDriver_LeavingAttackEarlySkipsExit(t *testing.T) {
	w := donburi.NewWorld()
	d := NewDriver(w)
	l := &recordingListener{}
	d.SetListener(l)

	entry := spawnActor(t, w, d, config.KindMonster, config.Attack)
	clip := config.Animation.Clips[config.Attack]
	stepN(d, ticksToFrame(clip, config.Animation.AttackWindowStart))
	require.Len(t, l.enters, 1)

	setState(entry, config.Idle)
	stepN(d, 60)
	assert.Empty(t, l.exits)
}

func TestDriver_PostDeadOnce(t *testing.T) {
	w := donburi.NewWorld()
	d := NewDriver(w)
	l := &recordingListener{}
	d.SetListener(l)

	entry := spawnActor(t, w, d, config.KindMonster, config.Idle)
	d.RequestState(entry.Entity(), config.Dead)
	setState(entry, config.Dead)

	clip := config.Animation.Clips[config.Dead]
	stepN(d, ticksToFrame(clip, clip.Frames)+2)
	require.Len(t, l.posts, 1)
	assert.Equal(t, entry.Entity(), l.posts[0])

	stepN(d, 30)
	assert.Len(t, l.posts, 1)
}

func TestDriver_RequestStateSwitchesClip(t *testing.T) {
	w := donburi.NewWorld()
	d := NewDriver(w)
	entry := spawnActor(t, w, d, config.KindMonster, config.Idle)

	d.RequestState(entry.Entity(), config.Chase)
	anim := components.Animation.Get(entry)
	assert.Equal(t, config.Chase, anim.CurrentState)
	assert.Same(t, anim.Animations[config.Chase], anim.CurrentAnimation)

	// Stale handles are ignored.
	w.Remove(entry.Entity())
	assert.NotPanics(t, func() { d.RequestState(entry.Entity(), config.Idle) })
}

func TestDriver_NoListener(t *testing.T) {
	w := donburi.NewWorld()
	d := NewDriver(w)
	spawnActor(t, w, d, config.KindMonster, config.Attack)
	assert.NotPanics(t, func() { stepN(d, 100) })
}

// The timeline drives a full attack through the real resolver.
func TestDriver_AttackerKilledMidSwingReleasesVictim(t *testing.T) {
	w := donburi.NewWorld()
	d := NewDriver(w)
	bus := events.NewBus()
	reg := combat.NewRegistry(w, combat.WithObserver(d), combat.WithSignals(bus))
	res := combat.NewResolver(reg, nil)
	d.SetListener(res)

	attackerEntry := spawnActor(t, w, d, config.KindMonster, config.Idle)
	victimEntry := spawnActor(t, w, d, config.KindPlayer, config.Idle)
	attacker, _ := reg.Resolve(attackerEntry.Entity())
	victim, _ := reg.Resolve(victimEntry.Entity())
	attacker.SetChaseTarget(victim)

	require.True(t, res.RequestAttack(attacker))
	clip := config.Animation.Clips[config.Attack]
	stepN(d, ticksToFrame(clip, config.Animation.AttackWindowStart))
	require.Equal(t, config.UnderAttack, victim.State())

	// The attacker leaves its Attack clip before the exit window.
	attacker.SetStateWithLock(config.Dead, true, nil)
	stepN(d, ticksToFrame(clip, clip.Frames)+10)

	assert.Equal(t, config.Idle, victim.State())
	assert.False(t, victim.Locked())
	assert.True(t, victim.IsAlive())
	assert.Equal(t, 1, bus.Count(events.ActorDied))
	assert.True(t, victim.SetState(config.Walk))
}

func TestDriver_ResolvesAttackThroughResolver(t *testing.T) {
	w := donburi.NewWorld()
	d := NewDriver(w)
	bus := events.NewBus()
	reg := combat.NewRegistry(w, combat.WithObserver(d), combat.WithSignals(bus))
	res := combat.NewResolver(reg, nil)
	d.SetListener(res)

	attackerEntry := spawnActor(t, w, d, config.KindMonster, config.Idle)
	victimEntry := spawnActor(t, w, d, config.KindPlayer, config.Idle)
	attacker, _ := reg.Resolve(attackerEntry.Entity())
	victim, _ := reg.Resolve(victimEntry.Entity())
	attacker.SetChaseTarget(victim)

	require.True(t, res.RequestAttack(attacker))
	assert.Equal(t, config.Attack, components.Animation.Get(attackerEntry).CurrentState)

	clip := config.Animation.Clips[config.Attack]
	stepN(d, ticksToFrame(clip, config.Animation.AttackWindowStart))
	assert.Equal(t, config.UnderAttack, victim.State())
	assert.True(t, victim.Locked())
	assert.True(t, attacker.Locked())

	stepN(d, ticksToFrame(clip, config.Animation.AttackWindowEnd)-ticksToFrame(clip, config.Animation.AttackWindowStart))
	assert.Equal(t, config.Idle, attacker.State())
	assert.False(t, attacker.Locked())
	assert.Equal(t, config.Dead, victim.State())
	assert.Equal(t, 1, bus.Count(events.ActorDied))

	dead := config.Animation.Clips[config.Dead]
	stepN(d, ticksToFrame(dead, dead.Frames)+2)
	require.True(t, victimEntry.HasComponent(components.Death))
	assert.Equal(t, 0, components.Death.Get(victimEntry).Timer)
}
