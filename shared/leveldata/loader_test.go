package leveldata

import (
	"os"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_SmallLevel(t *testing.T) {
	level, err := Load(os.DirFS("testdata"), "small.tmx")
	require.NoError(t, err)

	assert.Equal(t, "small", level.Name)
	assert.Equal(t, 320, level.Width)
	assert.Equal(t, 160, level.Height)
	assert.Equal(t, []Rect{{X: 0, Y: 144, W: 320, H: 16}}, level.Solids)

	require.Contains(t, level.PatrolPaths, "loop")
	assert.Equal(t, []Point{{100, 140}, {180, 140}, {140, 120}}, level.PatrolPaths["loop"])

	require.Len(t, level.Actors, 2)
	// Sorted left to right.
	assert.Equal(t, ActorSpawn{Kind: "Player", X: 20, Y: 120, Facing: 1}, level.Actors[0])
	assert.Equal(t, ActorSpawn{Kind: "Monster", X: 120, Y: 124, Path: "loop", Facing: -1}, level.Actors[1])

	assert.Equal(t, []Rect{{X: 60, Y: 0, W: 16, H: 16}}, level.Rocks)
	assert.Equal(t, []BallistaSpawn{{X: 280, Y: 128, Facing: 1}}, level.Ballistas)
	assert.Empty(t, level.Chests)
	assert.Empty(t, level.Plugs)
}

func TestLoad_UnknownPatrolPath(t *testing.T) {
	_, err := Load(os.DirFS("testdata"), "invalid/badpath.tmx")
	require.Error(t, err)

	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok)
	assert.Equal(t, "LEVEL_INVALID", oopsErr.Code())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(os.DirFS("testdata"), "nope.tmx")
	require.Error(t, err)

	oopsErr, ok := oops.AsOops(err)
	require.True(t, ok)
	assert.Equal(t, "LEVEL_LOAD_FAILED", oopsErr.Code())
}

func TestLoadAll(t *testing.T) {
	levels, names, err := LoadAll(os.DirFS("."), "testdata")
	require.NoError(t, err)
	assert.Equal(t, []string{"small"}, names)
	assert.Contains(t, levels, "small")

	_, _, err = LoadAll(os.DirFS("."), "nothing-here")
	require.Error(t, err)
}
