// Package leveldata provides TMX level parsing shared between client and server.
// It has no dependencies on ebitengine, donburi, or resolv; pure data only.
package leveldata

// Level holds everything the simulation needs from a TMX level file.
type Level struct {
	Name   string
	Width  int // pixels
	Height int // pixels

	Solids      []Rect
	PatrolPaths map[string][]Point
	Actors      []ActorSpawn
	Rocks       []Rect
	Ballistas   []BallistaSpawn
	Chests      []Rect
	Plugs       []Rect
}

// Rect is an axis-aligned box in level pixels.
type Rect struct {
	X, Y, W, H float64
}

type Point struct {
	X, Y float64
}

// ActorSpawn places one actor. Path names an entry of Level.PatrolPaths and
// may be empty.
type ActorSpawn struct {
	Kind   string
	X, Y   float64
	Path   string
	Facing float64 // -1 left, 1 right
}

type BallistaSpawn struct {
	X, Y   float64
	Facing float64
}
