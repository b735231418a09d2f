package main

import (
	"log"
	"os"

	"github.com/automoto/skirmish/assets"
	"github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/fonts"
	"github.com/automoto/skirmish/network"
	"github.com/automoto/skirmish/persistence"
	"github.com/automoto/skirmish/scenes"
	"github.com/automoto/skirmish/shared/leveldata"
	"github.com/automoto/skirmish/shared/protocol"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

// version is stamped into saves and sent when joining a server.
var version = "dev"

type Game struct {
	scene scenes.Scene
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	return config.C.Width, config.C.Height
}

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type playFlags struct {
	level  string
	tuning string
}

type watchFlags struct {
	addr     string
	name     string
	spectate bool
}

// NewRootCmd creates the game command. Without a subcommand it plays a
// level locally.
func NewRootCmd() *cobra.Command {
	pf := playFlags{}
	cmd := &cobra.Command{
		Use:   "skirmish",
		Short: "A small platformer where monsters hunt the player",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return play(pf)
		},
		SilenceUsage: true,
	}
	addPlayFlags(cmd, &pf)

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Play a level locally",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return play(pf)
		},
	}
	addPlayFlags(playCmd, &pf)

	wf := watchFlags{}
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Join a server; the first player to join controls the level",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return watch(wf)
		},
	}
	watchCmd.Flags().StringVar(&wf.addr, "addr", "localhost:7373", "server host:port")
	watchCmd.Flags().StringVar(&wf.name, "name", "player", "name shown to the server")
	watchCmd.Flags().BoolVar(&wf.spectate, "spectate", false, "never take control")

	cmd.AddCommand(playCmd, watchCmd)
	return cmd
}

func addPlayFlags(cmd *cobra.Command, f *playFlags) {
	cmd.Flags().StringVar(&f.level, "level", config.C.Level, "level stem or path inside the built-in level tree")
	cmd.Flags().StringVar(&f.tuning, "tuning", "", "YAML file with configuration overrides, reloaded on change")
}

func setup() error {
	if err := protocol.RegisterComponents(); err != nil {
		return err
	}
	if err := fonts.LoadDefaults(); err != nil {
		return err
	}
	ebiten.SetWindowSize(config.C.Width*2, config.C.Height*2)
	ebiten.SetWindowTitle(config.C.AppName)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return nil
}

func play(f playFlags) error {
	if err := setup(); err != nil {
		return err
	}

	level, err := leveldata.Load(assets.FS(), assets.LevelPath(f.level))
	if err != nil {
		return oops.Code("LEVEL_UNAVAILABLE").With("level", f.level).Wrap(err)
	}

	// A failed open still returns an in-memory accessor.
	save, err := persistence.Open(config.C.AppName, version, assets.ListLevelNames()...)
	if err != nil {
		log.Printf("Warning: Progress will not be saved: %v", err)
	}
	save.Load()

	opts := scenes.WorldOptions{Save: save}
	if f.tuning != "" {
		if err := config.LoadOverrides(f.tuning); err != nil {
			return err
		}
		watcher, err := config.NewWatcher(f.tuning)
		if err != nil {
			return err
		}
		defer func() { _ = watcher.Close() }()
		opts.Tuning = watcher
		opts.TuningPath = f.tuning
	}

	return runGame(scenes.NewWorldScene(level, opts))
}

func watch(f watchFlags) error {
	if err := setup(); err != nil {
		return err
	}

	client := network.NewClient()
	client.Connect(f.addr, version, f.name, f.spectate)
	defer client.Disconnect()

	return runGame(scenes.NewRemoteScene(client))
}

func runGame(scene scenes.Scene) error {
	if err := ebiten.RunGame(&Game{scene: scene}); err != nil {
		log.Printf("Game error: %v", err)
		return err
	}
	return nil
}
