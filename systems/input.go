package systems

import (
	"strings"

	"github.com/automoto/skirmish/controls"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// InputMethod represents the type of input device being used
type InputMethod int

const (
	InputKeyboard InputMethod = iota
	InputXbox
	InputPlayStation
)

// ActionState represents the temporal state of an action
type ActionState struct {
	Pressed      bool // Currently held down
	JustPressed  bool // Pressed this frame
	JustReleased bool // Released this frame
}

// InputData stores the current and previous frame's pressed state for all actions.
// JustPressed/JustReleased are computed on-demand by comparing frames.
type InputData struct {
	Current         [controls.ActionCount]bool // Current frame's Pressed state
	Previous        [controls.ActionCount]bool // Previous frame's Pressed state
	LastInputMethod InputMethod                // Most recently used input method

	// Mouse, in screen pixels
	CursorX, CursorY int
	LeftHeld         bool // walks right while held
	RightClicked     bool // strikes the plug under the cursor
}

// Input is the client's singleton input component. It lives here rather
// than in components so the simulation never links ebiten.
var Input = donburi.NewComponentType[InputData]()

// Reusable slice for gamepad IDs to avoid allocations
var gamepadIDs []ebiten.GamepadID

// Cache controller types to avoid string allocation every frame
var controllerTypeCache = make(map[ebiten.GamepadID]InputMethod)

// UpdateInput polls raw input and updates the Input component.
// Must run before the simulation system.
func UpdateInput(ecs *ecs.ECS) {
	input := GetInputData(ecs)

	// Swap buffers: current becomes previous, then zero out current
	input.Previous = input.Current
	input.Current = [controls.ActionCount]bool{}

	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])
	analogLeft, analogRight, analogGpID := getAnalogStickState(gamepadIDs)

	var keyboardUsed, gamepadUsed bool
	var activeGamepadID ebiten.GamepadID

	for actionID, binding := range controls.Input.Bindings {
		for _, key := range binding.Keys {
			if ebiten.IsKeyPressed(key) {
				input.Current[actionID] = true
				keyboardUsed = true
			}
		}

		for _, gpID := range gamepadIDs {
			if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
				continue
			}
			for _, btn := range binding.StandardGamepadButtons {
				if ebiten.IsStandardGamepadButtonPressed(gpID, btn) {
					input.Current[actionID] = true
					gamepadUsed = true
					activeGamepadID = gpID
				}
			}
		}
	}

	// Merge analog stick into directional actions
	if analogLeft {
		input.Current[controls.ActionMoveLeft] = true
		gamepadUsed = true
		activeGamepadID = analogGpID
	}
	if analogRight {
		input.Current[controls.ActionMoveRight] = true
		gamepadUsed = true
		activeGamepadID = analogGpID
	}

	input.CursorX, input.CursorY = ebiten.CursorPosition()
	input.LeftHeld = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	input.RightClicked = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight)

	// Update last input method - gamepad takes priority if both used
	if gamepadUsed {
		input.LastInputMethod = getControllerType(activeGamepadID)
	} else if keyboardUsed {
		input.LastInputMethod = InputKeyboard
	}
}

// getControllerType returns cached controller type, detecting on first access
func getControllerType(gpID ebiten.GamepadID) InputMethod {
	if method, ok := controllerTypeCache[gpID]; ok {
		return method
	}

	name := strings.ToLower(ebiten.GamepadName(gpID))
	method := InputXbox
	if strings.Contains(name, "ps4") || strings.Contains(name, "ps5") ||
		strings.Contains(name, "playstation") || strings.Contains(name, "dualshock") ||
		strings.Contains(name, "dualsense") {
		method = InputPlayStation
	}

	controllerTypeCache[gpID] = method
	return method
}

// getAnalogStickState reads the left stick of every gamepad against the deadzone.
func getAnalogStickState(gamepads []ebiten.GamepadID) (left, right bool, activeGpID ebiten.GamepadID) {
	deadzone := controls.Input.AnalogDeadzone

	for _, gpID := range gamepads {
		if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
			continue
		}
		horizontal := ebiten.StandardGamepadAxisValue(gpID, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if horizontal < -deadzone {
			left = true
			activeGpID = gpID
		}
		if horizontal > deadzone {
			right = true
			activeGpID = gpID
		}
	}
	return
}

// GetInputData returns the singleton Input component, creating if needed.
func GetInputData(ecs *ecs.ECS) *InputData {
	entry, ok := Input.First(ecs.World)
	if !ok {
		entry = ecs.World.Entry(ecs.World.Create(Input))
	}
	return Input.Get(entry)
}

// GetAction returns the full ActionState for an action ID.
// JustPressed/JustReleased are derived from current vs previous frame.
func GetAction(input *InputData, id controls.ActionID) ActionState {
	curr := input.Current[id]
	prev := input.Previous[id]
	return ActionState{
		Pressed:      curr,
		JustPressed:  curr && !prev,
		JustReleased: !curr && prev,
	}
}

// MoveAxis folds the movement actions and the held mouse button into -1, 0 or 1.
func MoveAxis(input *InputData) float64 {
	left := input.Current[controls.ActionMoveLeft]
	right := input.Current[controls.ActionMoveRight] || input.LeftHeld
	switch {
	case left && !right:
		return -1
	case right && !left:
		return 1
	default:
		return 0
	}
}
