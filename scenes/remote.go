package scenes

import (
	"image/color"
	"log"
	"sync"

	"github.com/automoto/skirmish/assets"
	"github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/controls"
	"github.com/automoto/skirmish/network"
	"github.com/automoto/skirmish/shared/leveldata"
	"github.com/automoto/skirmish/shared/messages"
	"github.com/automoto/skirmish/shared/netcomponents"
	"github.com/automoto/skirmish/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// RemoteScene mirrors a server's level. When the server made this client
// the controller its controls are forwarded as commands.
type RemoteScene struct {
	ecs        *ecs.ECS
	netClient  *network.Client
	level      *leveldata.Level
	once       sync.Once
	presentIDs map[esync.NetworkId]bool
	lastMoveX  int
	lostLogged bool
}

func NewRemoteScene(client *network.Client) *RemoteScene {
	return &RemoteScene{
		netClient:  client,
		presentIDs: make(map[esync.NetworkId]bool),
	}
}

func (rs *RemoteScene) Update() {
	if rs.netClient.State() != network.StateJoinedGame {
		rs.reportLost()
		return
	}
	rs.once.Do(rs.configure)

	if snap := rs.netClient.LatestSnapshot(); snap != nil {
		applySnapshot(rs.ecs.World, *snap, rs.presentIDs)
	}

	rs.ecs.Update()
	if rs.netClient.Session().Controller {
		rs.sendControls()
	}
}

func (rs *RemoteScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)

	if rs.ecs == nil {
		return
	}
	rs.ecs.Draw(screen)
}

func (rs *RemoteScene) reportLost() {
	state := rs.netClient.State()
	if state != network.StateDisconnected && state != network.StateError {
		return
	}
	if !rs.lostLogged {
		log.Printf("[remote] connection lost: %v", rs.netClient.LastError())
		rs.lostLogged = true
	}
}

func (rs *RemoteScene) configure() {
	name := rs.netClient.Session().Level
	level, err := leveldata.Load(assets.FS(), assets.LevelPath(name))
	if err != nil {
		// The server may run a level this build doesn't ship; draw without geometry.
		log.Printf("Warning: Level %q not available locally: %v", name, err)
		level = &leveldata.Level{Name: name, Width: config.C.Width, Height: config.C.Height}
	}
	rs.level = level

	rs.ecs = ecs.NewECS(donburi.NewWorld())
	rs.ecs.AddSystem(systems.UpdateInput)
	rs.ecs.AddSystem(systems.NewNetInterpSystem(func() int { return rs.netClient.Session().TickRate }))
	rs.ecs.AddSystem(systems.NewNetCameraSystem(level))
	rs.ecs.AddRenderer(systems.LayerWorld, systems.NewNetWorldRenderer(level))
	rs.ecs.AddRenderer(systems.LayerHUD, systems.DrawNetworkHUD)
}

// sendControls forwards the local controls as server commands. Movement is
// only sent when it changes.
func (rs *RemoteScene) sendControls() {
	input := systems.GetInputData(rs.ecs)

	moveX := int(systems.MoveAxis(input))
	if moveX != rs.lastMoveX {
		if err := rs.netClient.SendInput(moveX); err != nil {
			log.Printf("Warning: Failed to send input: %v", err)
			return
		}
		rs.lastMoveX = moveX
	}

	var msgs []any
	if systems.GetAction(input, controls.ActionPause).JustPressed {
		msgs = append(msgs, messages.LevelCommand{Action: rs.pauseAction()})
	}
	if systems.GetAction(input, controls.ActionRestart).JustPressed {
		msgs = append(msgs, messages.LevelCommand{Action: messages.LevelRestart})
	}
	if systems.GetAction(input, controls.ActionStrike).JustPressed {
		if x, y, ok := rs.strikePoint(); ok {
			msgs = append(msgs, messages.HitPlug{X: x, Y: y})
		}
	}
	if input.RightClicked {
		x, y := systems.ScreenToWorld(rs.ecs, float64(input.CursorX), float64(input.CursorY))
		msgs = append(msgs, messages.HitPlug{X: x, Y: y})
	}

	for _, msg := range msgs {
		if err := rs.netClient.SendMessage(msg); err != nil {
			log.Printf("Warning: Failed to send %T: %v", msg, err)
		}
	}
}

// pauseAction toggles based on the paused flag the server last replicated.
func (rs *RemoteScene) pauseAction() messages.LevelAction {
	entry, ok := netcomponents.NetLevelState.First(rs.ecs.World)
	if ok && netcomponents.NetLevelState.Get(entry).Paused {
		return messages.LevelResume
	}
	return messages.LevelPause
}

// strikePoint is just in front of the replicated player.
func (rs *RemoteScene) strikePoint() (float64, float64, bool) {
	var (
		x, y  float64
		found bool
	)
	netcomponents.NetActor.Each(rs.ecs.World, func(entry *donburi.Entry) {
		a := netcomponents.NetActor.Get(entry)
		if found || a.Kind != config.KindPlayer {
			return
		}
		kind, ok := config.Actors.Kind(a.Kind)
		if !ok {
			return
		}
		w, h := float64(kind.CollisionWidth), float64(kind.CollisionHeight)
		x = a.X + w/2 + float64(a.Facing)*(w/2+systems.StrikeReach)
		y = a.Y + h/2
		found = true
	})
	return x, y, found
}
