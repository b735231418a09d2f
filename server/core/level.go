package core

import (
	"io/fs"
	"log"
	"os"

	"github.com/automoto/skirmish/assets"
	"github.com/automoto/skirmish/shared/leveldata"
	"github.com/samber/oops"
)

// LoadLevel reads the level called name from fsys. name may be a stem
// ("arena") or a path inside fsys ("levels/arena.tmx").
func LoadLevel(fsys fs.FS, name string) (*leveldata.Level, error) {
	level, err := leveldata.Load(fsys, assets.LevelPath(name))
	if err != nil {
		return nil, oops.Code("LEVEL_UNAVAILABLE").With("level", name).Wrap(err)
	}

	log.Printf("Loaded level %q: %d solids, %d actors, %dx%d map",
		level.Name, len(level.Solids), len(level.Actors), level.Width, level.Height)
	return level, nil
}

// LevelFS returns the directory tree levels are read from. An empty dir
// selects the levels built into the binary.
func LevelFS(dir string, builtin fs.FS) fs.FS {
	if dir == "" {
		return builtin
	}
	return os.DirFS(dir)
}
