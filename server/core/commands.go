package core

import (
	"log"

	"github.com/automoto/skirmish/events"
	"github.com/automoto/skirmish/metrics"
	"github.com/automoto/skirmish/shared/messages"
)

const commandQueueSize = 256

// command is work handed from a router goroutine to the game loop.
type command func(s *Server)

// enqueue never blocks a router goroutine; a full queue drops the command.
func (s *Server) enqueue(c command) {
	select {
	case s.commands <- c:
	default:
		metrics.RecordCommandDropped()
		log.Printf("Warning: Command queue full, dropping command")
	}
}

// ProcessCommands runs every queued command. It must be called from the
// game loop.
func (s *Server) ProcessCommands() {
	for {
		select {
		case c := <-s.commands:
			c(s)
		default:
			return
		}
	}
}

func joinCommand(peer Peer, req messages.JoinRequest) command {
	return func(s *Server) {
		if s.opts.Version != "" && req.Version != s.opts.Version {
			log.Printf("Rejecting %s: version %q, want %q", peer.Id(), req.Version, s.opts.Version)
			send(peer, messages.JoinRejected{Reason: "version mismatch, server runs " + s.opts.Version})
			return
		}

		s.mu.Lock()
		s.peers[peer.Id()] = peer
		controller := !req.Spectate && s.controller == ""
		if controller {
			s.controller = peer.Id()
			s.lastInput = 0
		}
		s.updateClientGauge()
		s.mu.Unlock()

		log.Printf("Player %q joined as %s (controller: %v)", req.PlayerName, peer.Id(), controller)
		send(peer, messages.JoinAccepted{
			PlayerID:   s.playerID(),
			Controller: controller,
			ServerName: s.opts.Name,
			TickRate:   s.opts.TickRate,
			Level:      s.sim.Level.Name,
		})
	}
}

// leaveCommand forgets a client. A leaving controller stops the player.
func leaveCommand(id string) command {
	return func(s *Server) {
		s.mu.Lock()
		delete(s.peers, id)
		wasController := s.controller == id
		if wasController {
			s.controller = ""
		}
		s.updateClientGauge()
		s.mu.Unlock()

		if wasController {
			s.sim.SetPlayerIntent(0)
		}
	}
}

func inputCommand(id string, input messages.PlayerInput) command {
	return func(s *Server) {
		if !s.isController(id) {
			return
		}
		s.mu.Lock()
		stale := input.Sequence != 0 && input.Sequence <= s.lastInput
		if !stale {
			s.lastInput = input.Sequence
		}
		s.mu.Unlock()
		if stale {
			return
		}
		s.sim.SetPlayerIntent(float64(input.MoveX))
	}
}

func hitPlugCommand(id string, hit messages.HitPlug) command {
	return func(s *Server) {
		if !s.isController(id) {
			return
		}
		s.sim.HitPlugAt(hit.X, hit.Y)
	}
}

func levelCommand(id string, cmd messages.LevelCommand) command {
	return func(s *Server) {
		if !s.isController(id) {
			return
		}
		switch cmd.Action {
		case messages.LevelPause:
			s.sim.Bus.Raise(events.Signal{Kind: events.GamePaused})
		case messages.LevelResume:
			s.sim.Bus.Raise(events.Signal{Kind: events.GameResumed})
		case messages.LevelRestart:
			s.sim.Restart()
		}
	}
}

func (s *Server) isController(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.controller != "" && s.controller == id
}

func send(peer Peer, msg any) {
	if err := peer.SendMessage(msg); err != nil {
		log.Printf("Warning: Could not send %T to %s: %v", msg, peer.Id(), err)
	}
}
