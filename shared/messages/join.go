package messages

import "github.com/leap-fish/necs/esync"

// JoinRequest is sent by a client after connecting to request joining the game.
// Spectate joins without taking control of the player.
type JoinRequest struct {
	Version    string
	PlayerName string
	Spectate   bool
}

// JoinAccepted is sent by the server when a client's join request is accepted.
// PlayerID is the network ID of the level's player entity. Controller is
// true for the one client whose inputs drive it.
type JoinAccepted struct {
	PlayerID   esync.NetworkId
	Controller bool
	ServerName string
	TickRate   int
	Level      string
}

// JoinRejected is sent by the server when a client's join request is rejected.
type JoinRejected struct {
	Reason string
}
