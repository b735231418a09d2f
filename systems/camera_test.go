package systems

import (
	"testing"

	"github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/controls"
	"github.com/stretchr/testify/assert"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	dmath "github.com/yohamta/donburi/features/math"
)

func TestClampToLevel(t *testing.T) {
	w, h := float64(config.C.Width), float64(config.C.Height)

	got := clampToLevel(dmath.Vec2{X: 0, Y: 0}, 2*w, 2*h)
	assert.Equal(t, dmath.Vec2{X: w / 2, Y: h / 2}, got)

	got = clampToLevel(dmath.Vec2{X: 5 * w, Y: 5 * h}, 2*w, 2*h)
	assert.Equal(t, dmath.Vec2{X: 1.5 * w, Y: 1.5 * h}, got)

	// Narrower than the screen: centered.
	got = clampToLevel(dmath.Vec2{X: 10, Y: h}, w/2, 2*h)
	assert.Equal(t, w/4, got.X)
}

func TestScreenToWorld_RoundTrip(t *testing.T) {
	e := ecs.NewECS(donburi.NewWorld())
	CenterCamera(e, dmath.Vec2{X: 500, Y: 300})

	x, y := ScreenToWorld(e, float64(config.C.Width)/2, float64(config.C.Height)/2)
	assert.Equal(t, 500.0, x)
	assert.Equal(t, 300.0, y)
}

func TestMoveAxis(t *testing.T) {
	in := &InputData{}
	assert.Equal(t, 0.0, MoveAxis(in))

	in.LeftHeld = true
	assert.Equal(t, 1.0, MoveAxis(in))

	in.Current[controls.ActionMoveLeft] = true // left and right cancel out
	assert.Equal(t, 0.0, MoveAxis(in))
}
