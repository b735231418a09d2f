package scenes

import (
	"image/color"
	"sync"

	"github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/persistence"
	"github.com/automoto/skirmish/shared/leveldata"
	"github.com/automoto/skirmish/sim"
	"github.com/automoto/skirmish/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Scene is one screen of the game.
type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

// WorldOptions configure a local play session. All fields are optional.
type WorldOptions struct {
	Save       *persistence.Accessor
	Tuning     *config.Watcher
	TuningPath string
}

// WorldScene runs the simulation locally and lets the keyboard, mouse or
// gamepad drive the player.
type WorldScene struct {
	ecs   *ecs.ECS
	world *sim.World
	level *leveldata.Level
	opts  WorldOptions
	once  sync.Once
}

func NewWorldScene(level *leveldata.Level, opts WorldOptions) *WorldScene {
	return &WorldScene{level: level, opts: opts}
}

func (ws *WorldScene) Update() {
	ws.once.Do(ws.configure)
	ws.ecs.Update()
}

func (ws *WorldScene) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)

	if ws.ecs == nil {
		return
	}
	ws.ecs.Draw(screen)
}

// World exposes the running simulation; nil before the first update.
func (ws *WorldScene) World() *sim.World {
	return ws.world
}

func (ws *WorldScene) configure() {
	e := ecs.NewECS(donburi.NewWorld())

	opts := []sim.Option{sim.WithECS(e.World), sim.WithTickRate(ebiten.TPS())}
	if ws.opts.Save != nil {
		opts = append(opts, sim.WithSave(ws.opts.Save))
	}
	ws.world = sim.New(ws.level, opts...)

	// Systems that always run
	e.AddSystem(systems.UpdateInput)
	e.AddSystem(systems.UpdateDebugToggle)
	if ws.opts.Tuning != nil {
		e.AddSystem(systems.NewTuningSystem(ws.opts.Tuning, ws.opts.TuningPath))
	}

	e.AddSystem(systems.NewSimulationSystem(ws.world))
	e.AddSystem(systems.NewCameraSystem(ws.world))

	e.AddRenderer(systems.LayerWorld, systems.NewWorldRenderer(ws.world))
	e.AddRenderer(systems.LayerWorld, systems.NewDebugRenderer(ws.world))
	e.AddRenderer(systems.LayerHUD, systems.NewHUDRenderer(ws.world, ebiten.TPS()))

	if player, ok := ws.world.Player(); ok {
		systems.CenterCamera(e, player.Position())
	}
	ws.ecs = e
}
