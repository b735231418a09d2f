package combat

import (
	"testing"

	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/events"
	"github.com/solarlune/resolv"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/math"
)

type impulseCall struct {
	entity    donburi.Entity
	dir       math.Vec2
	magnitude float64
}

type recordingImpulse struct {
	calls []impulseCall
}

func (r *recordingImpulse) ApplyImpulse(e donburi.Entity, dir math.Vec2, magnitude float64) {
	r.calls = append(r.calls, impulseCall{e, dir, magnitude})
}

type recordingObserver struct {
	requests []config.CharacterState
}

func (r *recordingObserver) RequestState(_ donburi.Entity, s config.CharacterState) {
	r.requests = append(r.requests, s)
}

// manualCues holds completions until the test flushes them.
type manualCues struct {
	played  []CueDescriptor
	pending []func()
}

func (m *manualCues) Play(d CueDescriptor, onComplete func()) CueToken {
	m.played = append(m.played, d)
	m.pending = append(m.pending, onComplete)
	return CueToken(d.Name)
}

func (m *manualCues) Cancel(CueToken) {}

func (m *manualCues) flush() {
	pending := m.pending
	m.pending = nil
	for _, fn := range pending {
		fn()
	}
}

type fixture struct {
	reg      *Registry
	impulse  *recordingImpulse
	bus      *events.Bus
	observer *recordingObserver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		impulse:  &recordingImpulse{},
		bus:      events.NewBus(),
		observer: &recordingObserver{},
	}
	f.reg = NewRegistry(donburi.NewWorld(),
		WithImpulse(f.impulse),
		WithSignals(f.bus),
		WithObserver(f.observer),
	)
	return f
}

func (f *fixture) spawn(t *testing.T, kind string, x, y float64) *Actor {
	t.Helper()
	w := f.reg.World()
	e := w.Create(components.Actor, components.Chase, components.Object)
	entry := w.Entry(e)
	components.Actor.SetValue(entry, components.ActorData{
		Kind:   kind,
		Rank:   config.RankOf(kind),
		Status: components.Status{State: config.Idle},
		Facing: config.DirectionRight,
	})
	components.Object.SetValue(entry, components.ObjectData{Object: resolv.NewObject(x, y, 16, 16)})

	a, ok := f.reg.Resolve(e)
	require.True(t, ok)
	return a
}
