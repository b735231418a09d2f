// Package assets embeds the level files shipped with the game and the
// server.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/automoto/skirmish/shared/leveldata"
)

var (
	//go:embed all:levels
	assetFS embed.FS
)

// FS returns the embedded asset tree. Levels live under "levels/".
func FS() fs.FS {
	return assetFS
}

// ListLevelNames returns the stems of the embedded levels, sorted.
func ListLevelNames() []string {
	entries, err := assetFS.ReadDir("levels")
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".tmx" {
			names = append(names, strings.TrimSuffix(entry.Name(), ".tmx"))
		}
	}
	sort.Strings(names)
	return names
}

// MustLoadLevel loads an embedded level and panics if it is broken; the
// embedded levels are checked by the tests.
func MustLoadLevel(levelPath string) *leveldata.Level {
	level, err := leveldata.Load(assetFS, levelPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load level %s: %v", levelPath, err))
	}
	return level
}

// LevelPath maps a level stem ("arena") to its path inside FS. Paths are
// returned unchanged.
func LevelPath(name string) string {
	if strings.HasSuffix(name, ".tmx") {
		return name
	}
	return path.Join("levels", name+".tmx")
}
