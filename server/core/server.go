// Package core runs one level headless and replicates it to websocket
// clients with necs.
package core

import (
	"log"
	"sync"

	"github.com/automoto/skirmish/metrics"
	"github.com/automoto/skirmish/shared/leveldata"
	"github.com/automoto/skirmish/shared/messages"
	"github.com/automoto/skirmish/shared/netcomponents"
	"github.com/automoto/skirmish/sim"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/samber/oops"
	"github.com/yohamta/donburi"
)

// Peer is the part of a network client the server talks to.
type Peer interface {
	Id() string
	SendMessage(msg any) error
}

type Options struct {
	Name     string
	Version  string // required client version, empty accepts any
	TickRate int
}

// Server owns the simulation and the set of connected clients. Router
// callbacks run on necs goroutines and only enqueue commands; the world is
// touched from the game loop alone.
type Server struct {
	world     donburi.World
	sim       *sim.World
	loop      *GameLoop
	transport *transports.WsServerTransport
	opts      Options
	commands  chan command
	syncFn    func() error

	// Guarded by mu; written by the loop, read by PlayerCount.
	mu         sync.RWMutex
	peers      map[string]Peer
	controller string
	lastInput  uint32
}

// NewServer builds level into a fresh synced world.
func NewServer(level *leveldata.Level, opts Options) *Server {
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	world := donburi.NewWorld()

	// Set up the world for esync before anything is spawned into it
	srvsync.UseEsync(world)

	s := &Server{
		world:    world,
		opts:     opts,
		commands: make(chan command, commandQueueSize),
		syncFn:   srvsync.DoSync,
		peers:    make(map[string]Peer),
	}
	s.sim = sim.New(level,
		sim.WithECS(world),
		sim.WithNetMirror(),
		sim.WithTickRate(opts.TickRate),
		sim.WithSpawnHook(s.networkSync),
	)
	s.loop = NewGameLoop(s, opts.TickRate)
	return s
}

// Start runs the game loop and blocks serving websocket clients on port.
func (s *Server) Start(port uint) error {
	s.setupRouterCallbacks()
	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(port, "", nil)
	if err := s.transport.Start(); err != nil {
		return oops.Code("TRANSPORT_FAILED").With("port", port).Wrap(err)
	}
	return nil
}

// Stop halts the game loop. It is safe to call more than once.
func (s *Server) Stop() {
	s.loop.Stop()
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		log.Printf("Client connected: %s", client.Id())
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		if err != nil {
			log.Printf("Client %s disconnected with error: %v", client.Id(), err)
		} else {
			log.Printf("Client %s disconnected", client.Id())
		}
		s.enqueue(leaveCommand(client.Id()))
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.enqueue(joinCommand(client, req))
	})

	router.On(func(client *router.NetworkClient, input messages.PlayerInput) {
		s.enqueue(inputCommand(client.Id(), input))
	})

	router.On(func(client *router.NetworkClient, hit messages.HitPlug) {
		s.enqueue(hitPlugCommand(client.Id(), hit))
	})

	router.On(func(client *router.NetworkClient, cmd messages.LevelCommand) {
		s.enqueue(levelCommand(client.Id(), cmd))
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		log.Printf("Client error: %v", err)
	})
}

// networkSync marks a freshly spawned entity for replication. Actors and
// hazards are interpolated on the client; the level state is not.
func (s *Server) networkSync(entry *donburi.Entry) {
	entity := entry.Entity()
	var err error
	switch {
	case entry.HasComponent(netcomponents.NetActor):
		err = srvsync.NetworkSync(s.world, &entity, srvsync.WithInterp(netcomponents.NetActor))
	case entry.HasComponent(netcomponents.NetHazard):
		err = srvsync.NetworkSync(s.world, &entity, srvsync.WithInterp(netcomponents.NetHazard))
	case entry.HasComponent(netcomponents.NetLevelState):
		err = srvsync.NetworkSync(s.world, &entity, netcomponents.NetLevelState)
	default:
		return
	}
	if err != nil {
		log.Printf("Failed to setup network sync for entity %v: %v", entity, err)
	}
}

// tick advances the level once and replicates it.
func (s *Server) tick() {
	s.ProcessCommands()
	s.sim.Step()
	if err := s.syncFn(); err != nil {
		log.Printf("Sync error: %v", err)
	}
}

// playerID returns the network ID of the level's player, or zero while
// there is none.
func (s *Server) playerID() (id esync.NetworkId) {
	player, ok := s.sim.Player()
	if !ok {
		return id
	}
	entry, ok := player.Entry()
	if !ok {
		return id
	}
	if nid := esync.GetNetworkId(entry); nid != nil {
		id = *nid
	}
	return id
}

// World returns the ECS world
func (s *Server) World() donburi.World {
	return s.world
}

// Sim returns the simulation. Only the game loop may step it.
func (s *Server) Sim() *sim.World {
	return s.sim
}

// PlayerCount returns the number of joined clients
func (s *Server) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.peers)
}

// Controller returns the ID of the client driving the player, if any.
func (s *Server) Controller() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.controller, s.controller != ""
}

func (s *Server) updateClientGauge() {
	metrics.SetConnectedClients(len(s.peers))
}
