package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yohamta/donburi"
)

func TestBus_DeliversInSubscriptionOrder(t *testing.T) {
	bus := NewBus()
	var order []string
	bus.Subscribe(GameOver, func(Signal) { order = append(order, "first") })
	bus.Subscribe(GameOver, func(Signal) { order = append(order, "second") })
	bus.Subscribe(GameSuccess, func(Signal) { order = append(order, "other") })

	bus.Raise(Signal{Kind: GameOver})

	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, 1, bus.Count(GameOver))
	assert.Equal(t, 0, bus.Count(GameSuccess))
}

func TestBus_CarriesPayload(t *testing.T) {
	w := donburi.NewWorld()
	marker := donburi.NewTag()
	victim := w.Create(marker)
	killer := w.Create(marker)

	bus := NewBus()
	var got Signal
	bus.Subscribe(ActorDied, func(s Signal) { got = s })
	bus.Raise(Signal{Kind: ActorDied, Entity: victim, Source: killer, HasSource: true, ActorKind: "Player"})

	assert.Equal(t, victim, got.Entity)
	assert.Equal(t, killer, got.Source)
	assert.True(t, got.HasSource)
	assert.Equal(t, "Player", got.ActorKind)
}

func TestBus_RaiseWithoutListeners(t *testing.T) {
	bus := NewBus()
	assert.NotPanics(t, func() { bus.Raise(Signal{Kind: GamePaused}) })
	assert.Equal(t, 1, bus.Count(GamePaused))
	assert.Equal(t, "GamePaused", GamePaused.String())
}
