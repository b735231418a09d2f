package leveldata

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
	"github.com/samber/oops"
)

// Object group names understood by the loader.
const (
	GroupSolids   = "Solids"
	GroupPaths    = "PatrolPaths"
	GroupActors   = "Actors"
	GroupHazards  = "Hazards"
	GroupChests   = "Chests"
	GroupPlugs    = "Plugs"
	LayerSolidMap = "wg-tiles"
)

// Load parses a TMX file. It takes an fs.FS so callers can pass embed.FS
// (client) or os.DirFS (server).
func Load(fsys fs.FS, tmxPath string) (*Level, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, oops.Code("LEVEL_LOAD_FAILED").With("path", tmxPath).Wrap(err)
	}

	level := &Level{
		Name:        strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
		Width:       levelMap.Width * levelMap.TileWidth,
		Height:      levelMap.Height * levelMap.TileHeight,
		PatrolPaths: make(map[string][]Point),
	}

	level.Solids = append(level.Solids, solidTiles(levelMap)...)

	for _, og := range levelMap.ObjectGroups {
		for _, o := range og.Objects {
			switch og.Name {
			case GroupSolids:
				level.Solids = append(level.Solids, rectOf(o))
			case GroupPaths:
				path := pathOf(o)
				if len(path) == 0 {
					continue
				}
				if o.Name == "" {
					return nil, oops.Code("LEVEL_INVALID").With("path", tmxPath).With("object", o.ID).Errorf("patrol path without a name")
				}
				level.PatrolPaths[o.Name] = path
			case GroupActors:
				kind := o.Properties.GetString("kind")
				if kind == "" {
					kind = o.Name
				}
				level.Actors = append(level.Actors, ActorSpawn{
					Kind:   kind,
					X:      o.X,
					Y:      o.Y,
					Path:   o.Properties.GetString("path"),
					Facing: facingOf(o),
				})
			case GroupHazards:
				switch o.Name {
				case "Rock":
					level.Rocks = append(level.Rocks, rectOf(o))
				case "Ballista":
					level.Ballistas = append(level.Ballistas, BallistaSpawn{X: o.X, Y: o.Y, Facing: facingOf(o)})
				}
			case GroupChests:
				level.Chests = append(level.Chests, rectOf(o))
			case GroupPlugs:
				level.Plugs = append(level.Plugs, rectOf(o))
			}
		}
	}

	for _, a := range level.Actors {
		if a.Path == "" {
			continue
		}
		if _, ok := level.PatrolPaths[a.Path]; !ok {
			return nil, oops.Code("LEVEL_INVALID").With("path", tmxPath).With("patrol", a.Path).Errorf("actor %s references an unknown patrol path", a.Kind)
		}
	}

	// Spawn left-to-right for consistent entity order
	sort.SliceStable(level.Actors, func(i, j int) bool {
		return level.Actors[i].X < level.Actors[j].X
	})

	return level, nil
}

// LoadAll discovers all .tmx files in levelsDir within fsys and returns
// them keyed by stem name plus a sorted list of names.
func LoadAll(fsys fs.FS, levelsDir string) (map[string]*Level, []string, error) {
	pattern := levelsDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, oops.Code("LEVEL_LOAD_FAILED").With("pattern", pattern).Wrap(err)
	}
	if len(matches) == 0 {
		return nil, nil, oops.Code("LEVEL_LOAD_FAILED").With("dir", levelsDir).Errorf("no .tmx files found")
	}

	levels := make(map[string]*Level, len(matches))
	names := make([]string, 0, len(matches))
	for _, path := range matches {
		level, err := Load(fsys, path)
		if err != nil {
			return nil, nil, err
		}
		levels[level.Name] = level
		names = append(names, level.Name)
	}

	sort.Strings(names)
	return levels, names, nil
}

func solidTiles(levelMap *tiled.Map) []Rect {
	var out []Rect
	tileW := float64(levelMap.TileWidth)
	tileH := float64(levelMap.TileHeight)
	for _, layer := range levelMap.Layers {
		if layer.Name != LayerSolidMap {
			continue
		}
		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				tile := layer.Tiles[y*levelMap.Width+x]
				if tile.IsNil() {
					continue
				}
				out = append(out, Rect{X: float64(x) * tileW, Y: float64(y) * tileH, W: tileW, H: tileH})
			}
		}
		break
	}
	return out
}

func rectOf(o *tiled.Object) Rect {
	return Rect{X: o.X, Y: o.Y, W: o.Width, H: o.Height}
}

// pathOf returns the absolute points of a polyline object.
func pathOf(o *tiled.Object) []Point {
	if len(o.PolyLines) == 0 || o.PolyLines[0].Points == nil {
		return nil
	}
	var out []Point
	for _, p := range *o.PolyLines[0].Points {
		out = append(out, Point{X: o.X + p.X, Y: o.Y + p.Y})
	}
	return out
}

func facingOf(o *tiled.Object) float64 {
	if strings.EqualFold(o.Properties.GetString("facing"), "left") {
		return -1
	}
	return 1
}
