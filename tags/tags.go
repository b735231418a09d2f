package tags

import "github.com/yohamta/donburi"

var (
	Actor    = donburi.NewTag().SetName("Actor")
	Player   = donburi.NewTag().SetName("Player")
	Wall     = donburi.NewTag().SetName("Wall")
	Rock     = donburi.NewTag().SetName("Rock")
	Arrow    = donburi.NewTag().SetName("Arrow")
	Ballista = donburi.NewTag().SetName("Ballista")
	Chest    = donburi.NewTag().SetName("Chest")
	Plug     = donburi.NewTag().SetName("Plug")
)

// Resolv tags for physics collision and line of sight
const (
	ResolvSolid    = "solid"
	ResolvActor    = "actor"
	ResolvPlayer   = "Player"
	ResolvHazard   = "hazard"
	ResolvArrow    = "arrow"
	ResolvBallista = "ballista"
	ResolvChest    = "chest"
	ResolvPlug     = "plug"
	ResolvProbe    = "probe"
)
