package netcomponents

import "github.com/yohamta/donburi"

type LevelOutcome int

const (
	LevelOutcomePlaying LevelOutcome = iota
	LevelOutcomeOver
	LevelOutcomeSuccess
)

type NetLevelStateData struct {
	Name    string
	Frame   int
	Outcome LevelOutcome
	Paused  bool
}

var NetLevelState = donburi.NewComponentType[NetLevelStateData]()
