package messages

// PlayerInput is sent from client to server whenever the controlling client's
// movement intent changes. Older sequences are ignored by the server.
type PlayerInput struct {
	Sequence  uint32 // Incrementing ID, later inputs win
	MoveX     int    // -1 left, 0 none, 1 right
	Timestamp int64  // Client timestamp (Unix ms)
}

// HitPlug asks the server to strike the plug under a level position.
type HitPlug struct {
	X, Y float64
}

// LevelCommand pauses, resumes or restarts the running level.
type LevelCommand struct {
	Action LevelAction
}

type LevelAction int

const (
	LevelPause LevelAction = iota
	LevelResume
	LevelRestart
)
