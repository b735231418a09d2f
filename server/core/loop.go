package core

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/automoto/skirmish/metrics"
)

type GameLoop struct {
	server   *Server
	tickRate int
	stopChan chan struct{}
	done     chan struct{}
	stopOnce sync.Once
	started  atomic.Bool
}

func NewGameLoop(server *Server, tickRate int) *GameLoop {
	return &GameLoop{
		server:   server,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run ticks until Stop is called.
func (g *GameLoop) Run() {
	g.started.Store(true)
	defer close(g.done)
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	log.Printf("Game loop started at %d ticks/second", g.tickRate)

	for {
		select {
		case <-g.stopChan:
			log.Println("Game loop stopped")
			return
		case <-ticker.C:
			start := time.Now()
			g.server.tick()
			metrics.ObserveTick(time.Since(start).Seconds())
		}
	}
}

// Stop ends Run and waits for the tick in progress to finish. Stopping a
// loop that never ran returns at once.
func (g *GameLoop) Stop() {
	g.stopOnce.Do(func() {
		close(g.stopChan)
	})
	if g.started.Load() {
		<-g.done
	}
}
