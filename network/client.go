package network

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/automoto/skirmish/shared/messages"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/samber/oops"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedGame
	StateError
)

// Session is what the server told us when it accepted the join.
type Session struct {
	PlayerID   esync.NetworkId
	Controller bool
	ServerName string
	TickRate   int
	Level      string
}

// Client manages a WebSocket connection to the game server.
// All shared fields are protected by mu (router callbacks run on necs goroutines).
type Client struct {
	mu sync.RWMutex

	state     ClientState
	lastError error
	session   Session
	conn      *websocket.Conn
	sequence  uint32

	snapshotCh chan esync.WorldSnapshot // size-1 buffered; latest wins
}

func NewClient() *Client {
	return &Client{
		state:      StateDisconnected,
		snapshotCh: make(chan esync.WorldSnapshot, 1),
	}
}

// Connect dials address (host:port) in a background goroutine and sends
// the join request once connected. A spectating client never drives the
// player.
func (c *Client) Connect(address, version, playerName string, spectate bool) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.session = Session{}
	c.mu.Unlock()

	join := messages.JoinRequest{Version: version, PlayerName: playerName, Spectate: spectate}
	router.OnConnect(func(_ *router.NetworkClient) { c.onConnect(join) })
	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) { c.onJoinAccepted(msg) })
	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		log.Printf("[client] join rejected: %s", msg.Reason)
		c.setError(oops.Code("JOIN_REJECTED").Errorf("join rejected: %s", msg.Reason))
	})
	router.On(func(_ *router.NetworkClient, snapshot esync.WorldSnapshot) { c.pushSnapshot(snapshot) })
	router.OnDisconnect(func(_ *router.NetworkClient, err error) { c.onDisconnect(err) })
	router.OnError(func(_ *router.NetworkClient, err error) {
		log.Printf("[client] error: %v", err)
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(oops.Code("TRANSPORT_FAILED").With("address", address).Wrapf(err, "connect"))
		}
	}()
}

func (c *Client) onConnect(join messages.JoinRequest) {
	log.Println("[client] connected to server")
	c.mu.Lock()
	c.state = StateConnected
	c.mu.Unlock()

	if err := c.SendMessage(join); err != nil {
		c.setError(oops.Code("JOIN_FAILED").Wrapf(err, "send join request"))
	}
}

func (c *Client) onJoinAccepted(msg messages.JoinAccepted) {
	log.Printf("[client] join accepted: player=%d controller=%v server=%s tickRate=%d level=%s",
		msg.PlayerID, msg.Controller, msg.ServerName, msg.TickRate, msg.Level)
	c.mu.Lock()
	c.session = Session{
		PlayerID:   msg.PlayerID,
		Controller: msg.Controller,
		ServerName: msg.ServerName,
		TickRate:   msg.TickRate,
		Level:      msg.Level,
	}
	c.state = StateJoinedGame
	c.mu.Unlock()
}

func (c *Client) onDisconnect(err error) {
	log.Printf("[client] disconnected: %v", err)
	c.mu.Lock()
	if c.state != StateError {
		c.state = StateDisconnected
	}
	c.conn = nil
	c.mu.Unlock()
}

// pushSnapshot keeps only the newest snapshot.
func (c *Client) pushSnapshot(snapshot esync.WorldSnapshot) {
	select {
	case <-c.snapshotCh:
	default:
	}
	select {
	case c.snapshotCh <- snapshot:
	default:
	}
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

// Session returns the join details; zero until the join is accepted.
func (c *Client) Session() Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// LatestSnapshot returns the most recent WorldSnapshot, or nil. Non-blocking.
func (c *Client) LatestSnapshot() *esync.WorldSnapshot {
	select {
	case snap := <-c.snapshotCh:
		return &snap
	default:
		return nil
	}
}

func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return oops.Code("NOT_CONNECTED").Errorf("not connected")
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return oops.Code("SEND_FAILED").Wrapf(err, "serialize %T", msg)
	}
	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

// SendInput sends a movement intent with the next sequence number.
func (c *Client) SendInput(moveX int) error {
	c.mu.Lock()
	c.sequence++
	seq := c.sequence
	c.mu.Unlock()

	return c.SendMessage(messages.PlayerInput{
		Sequence:  seq,
		MoveX:     moveX,
		Timestamp: time.Now().UnixMilli(),
	})
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}
