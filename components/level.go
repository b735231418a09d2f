package components

import (
	"github.com/automoto/skirmish/shared/leveldata"
	"github.com/yohamta/donburi"
)

type LevelData struct {
	CurrentLevel *leveldata.Level
	Path         string
	Frame        int  // frames since the level started
	Finished     bool // GameOver or GameSuccess was raised
	Succeeded    bool
}

var Level = donburi.NewComponentType[LevelData]()
