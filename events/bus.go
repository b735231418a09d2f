// Package events carries level-wide signals such as deaths and game over
// from the combat core to whoever listens: the scene, persistence, the HUD.
package events

import (
	"log"

	"github.com/yohamta/donburi"
)

type Kind int

const (
	GamePaused Kind = iota
	GameResumed
	GameOver
	GameSuccess
	GameRestart
	ActorDied
)

var kindNames = map[Kind]string{
	GamePaused:  "GamePaused",
	GameResumed: "GameResumed",
	GameOver:    "GameOver",
	GameSuccess: "GameSuccess",
	GameRestart: "GameRestart",
	ActorDied:   "ActorDied",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Signal is one raised event. Entity is the subject (the actor that died);
// Source is the killer when there was one.
type Signal struct {
	Kind      Kind
	Entity    donburi.Entity
	Source    donburi.Entity
	HasSource bool
	ActorKind string
}

type Handler func(Signal)

// Bus is a synchronous fan-out of signals. Handlers run on the goroutine
// that raises the signal, in subscription order.
type Bus struct {
	handlers map[Kind][]Handler
	raised   map[Kind]int
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[Kind][]Handler),
		raised:   make(map[Kind]int),
	}
}

func (b *Bus) Subscribe(kind Kind, h Handler) {
	b.handlers[kind] = append(b.handlers[kind], h)
}

func (b *Bus) Raise(s Signal) {
	b.raised[s.Kind]++
	handlers := b.handlers[s.Kind]
	if len(handlers) == 0 && s.Kind != ActorDied {
		log.Printf("[events] %s raised with no listeners", s.Kind)
	}
	for _, h := range handlers {
		h(s)
	}
}

// Count returns how many times kind was raised.
func (b *Bus) Count(kind Kind) int {
	return b.raised[kind]
}
