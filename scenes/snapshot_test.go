package scenes

import (
	"testing"

	"github.com/automoto/skirmish/components"
	"github.com/automoto/skirmish/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func TestApplyEntity_CreatesAndInterpolates(t *testing.T) {
	world := donburi.NewWorld()

	entry := applyEntity(world, 7, []any{netcomponents.NetActorData{X: 10, Y: 20, Kind: "Monster", State: 4}})
	require.True(t, entry.HasComponent(netcomponents.NetActor))
	require.True(t, entry.HasComponent(components.NetInterp))
	assert.Equal(t, esync.NetworkId(7), *esync.GetNetworkId(entry))

	// The first snapshot places the entity directly.
	actor := netcomponents.NetActor.Get(entry)
	assert.Equal(t, 10.0, actor.X)
	assert.Equal(t, 20.0, actor.Y)

	// Later snapshots start a blend from the drawn position.
	same := applyEntity(world, 7, []any{netcomponents.NetActorData{X: 30, Y: 20, Kind: "Monster", State: 5, Locked: true}})
	assert.Equal(t, entry.Entity(), same.Entity())
	actor = netcomponents.NetActor.Get(same)
	assert.Equal(t, 10.0, actor.X)
	assert.Equal(t, 5, actor.State)
	assert.True(t, actor.Locked)

	interp := components.NetInterp.Get(same)
	assert.Equal(t, 30.0, interp.TargetX)
	x, _ := interp.Advance(0.5)
	assert.Equal(t, 20.0, x)
}

func TestApplyEntity_LevelState(t *testing.T) {
	world := donburi.NewWorld()

	entry := applyEntity(world, 1, []any{netcomponents.NetLevelStateData{Name: "arena", Frame: 12, Paused: true}})
	state := netcomponents.NetLevelState.Get(entry)
	assert.Equal(t, "arena", state.Name)
	assert.True(t, state.Paused)
}

func TestRemoveMissing(t *testing.T) {
	world := donburi.NewWorld()
	applyEntity(world, 1, []any{netcomponents.NetHazardData{Kind: "Rock", W: 16, H: 16}})
	applyEntity(world, 2, []any{netcomponents.NetHazardData{Kind: "Arrow", W: 8, H: 2}})

	removeMissing(world, map[esync.NetworkId]bool{2: true})

	assert.False(t, world.Valid(esync.FindByNetworkId(world, 1)))
	assert.True(t, world.Valid(esync.FindByNetworkId(world, 2)))
}
