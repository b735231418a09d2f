package systems

import (
	"testing"

	"github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/controls"
	"github.com/automoto/skirmish/shared/netcomponents"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func TestFindNetPlayer(t *testing.T) {
	world := donburi.NewWorld()
	_, ok := findNetPlayer(world)
	assert.False(t, ok)

	monster := world.Entry(world.Create(netcomponents.NetActor))
	netcomponents.NetActor.SetValue(monster, netcomponents.NetActorData{X: 1, Kind: config.KindMonster})
	player := world.Entry(world.Create(netcomponents.NetActor))
	netcomponents.NetActor.SetValue(player, netcomponents.NetActorData{X: 42, Kind: config.KindPlayer})

	got, ok := findNetPlayer(world)
	require.True(t, ok)
	assert.Equal(t, 42.0, got.X)
}

func TestNetHazardColor(t *testing.T) {
	assert.Equal(t, chestColor, netHazardColor(&netcomponents.NetHazardData{Kind: "Chest"}))
	assert.Equal(t, config.Gray, netHazardColor(&netcomponents.NetHazardData{Kind: "Chest", Phase: 1}))
	assert.Equal(t, plugColors[len(plugColors)-1], netHazardColor(&netcomponents.NetHazardData{Kind: "Plug", Phase: 9}))
	assert.Equal(t, config.Purple, netHazardColor(&netcomponents.NetHazardData{Kind: "Crate"}))
}

func TestGetAction_Edges(t *testing.T) {
	in := &InputData{}
	in.Current[controls.ActionStrike] = true
	assert.True(t, GetAction(in, controls.ActionStrike).JustPressed)

	in.Previous = in.Current
	assert.False(t, GetAction(in, controls.ActionStrike).JustPressed)
	assert.True(t, GetAction(in, controls.ActionStrike).Pressed)

	in.Current[controls.ActionStrike] = false
	assert.True(t, GetAction(in, controls.ActionStrike).JustReleased)
}
