package netcomponents

import "github.com/yohamta/donburi"

// NetActorData mirrors an actor's body and combat status for clients.
type NetActorData struct {
	X, Y   float64
	Kind   string // "Player", "Monster", "SeniorMonster", "Boss"
	State  int    // config.CharacterState value
	Locked bool
	Facing int // -1 left, 1 right
}

var NetActor = donburi.NewComponentType[NetActorData]()

// LerpNetActor interpolates position; status is taken from the newer snapshot.
func LerpNetActor(from, to NetActorData, t float64) *NetActorData {
	return &NetActorData{
		X:      from.X + (to.X-from.X)*t,
		Y:      from.Y + (to.Y-from.Y)*t,
		Kind:   to.Kind,
		State:  to.State,
		Locked: to.Locked,
		Facing: to.Facing,
	}
}
