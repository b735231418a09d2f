package config

import "image/color"

// PerceptionMode selects how an actor looks for prey.
type PerceptionMode string

const (
	// PerceptionDirectional casts one ray forward along the actor's facing.
	PerceptionDirectional PerceptionMode = "directional"
	// PerceptionTargeted aims a ray at the nearest actor of a designated kind.
	PerceptionTargeted PerceptionMode = "targeted"
)

// PerceptionConfig contains the detection parameters of an actor kind
type PerceptionConfig struct {
	Mode    PerceptionMode `yaml:"mode"`
	Radius  float64        `yaml:"radius"`  // max ray length in pixels
	OffsetX float64        `yaml:"offsetX"` // mirrored by facing
	OffsetY float64        `yaml:"offsetY"`
	MaxHits int            `yaml:"maxHits"` // raw hits inspected, 1 = nearest only

	// Targeted mode only
	TargetKind string   `yaml:"targetKind"`
	Blockers   []string `yaml:"blockers"` // resolv tags that block line of sight
}

// ActorKindConfig contains configuration for one actor kind
type ActorKindConfig struct {
	Kind            string `yaml:"-"`
	Controlled      bool   `yaml:"controlled"`      // driven by intents instead of the brain
	EndsGameOnDeath bool   `yaml:"endsGameOnDeath"` // raises GameOver on death

	// Locomotion, pixels per frame
	WalkSpeed             float64 `yaml:"walkSpeed"`
	PatrolSpeed           float64 `yaml:"patrolSpeed"`
	ChaseSpeed            float64 `yaml:"chaseSpeed"`
	WaypointReachDistance float64 `yaml:"waypointReachDistance"`
	AttackableRadius      float64 `yaml:"attackableRadius"`

	Perception PerceptionConfig `yaml:"perception"`

	// Physics
	Gravity  float64 `yaml:"gravity"`
	Friction float64 `yaml:"friction"`
	MaxSpeed float64 `yaml:"maxSpeed"`

	// Dimensions
	CollisionWidth  int `yaml:"collisionWidth"`
	CollisionHeight int `yaml:"collisionHeight"`

	// Frames an actor stays in the world after dying
	DeathFrames int `yaml:"deathFrames"`

	// Debug render color
	Color color.RGBA `yaml:"-"`
}

// ActorsConfig holds the per-kind actor configuration
type ActorsConfig struct {
	Kinds map[string]ActorKindConfig
}

// Kind returns the configuration for kind. Unknown kinds report false.
func (a ActorsConfig) Kind(kind string) (ActorKindConfig, bool) {
	k, ok := a.Kinds[kind]
	return k, ok
}

// CombatConfig contains combat resolution configuration values
type CombatConfig struct {
	KnockbackForce float64 `yaml:"knockbackForce"` // impulse magnitude applied on death

	// Frames an unlocked Attack may wait for the attack window to open
	// before the brain gives up and returns to Idle. 0 waits forever.
	AttackRequestTimeout int `yaml:"attackRequestTimeout"`
}

// ClipConfig describes the frame-counted clip the timeline plays for one state
type ClipConfig struct {
	Frames     int     `yaml:"frames"`
	SpeedInTps float32 `yaml:"speedInTps"` // ticks per frame
	Loop       bool    `yaml:"loop"`
}

// AnimationConfig contains timeline configuration values
type AnimationConfig struct {
	Clips map[CharacterState]ClipConfig `yaml:"-"`

	// Attack clip frames on which the attack window opens and closes
	AttackWindowStart int `yaml:"attackWindowStart"`
	AttackWindowEnd   int `yaml:"attackWindowEnd"`
}

// CueConfig contains the hit-scratch cue timing, in seconds
type CueConfig struct {
	FadeIn     float32 `yaml:"fadeIn"`
	Hold       float32 `yaml:"hold"`
	FadeOut    float32 `yaml:"fadeOut"`
	ScaleDelay float32 `yaml:"scaleDelay"`
	ScaleUp    float32 `yaml:"scaleUp"`
	ScalePeak  float32 `yaml:"scalePeak"`

	MaxRotation float64 `yaml:"maxRotation"` // degrees, either way
	MaxOffset   float64 `yaml:"maxOffset"`   // pixels, either axis

	// A cue that has not completed after this many frames completes anyway
	FallbackFrames int `yaml:"fallbackFrames"`
}

// PhysicsConfig contains physics-related configuration values
type PhysicsConfig struct {
	Gravity            float64 `yaml:"gravity"`
	VerticalSpeedClamp float64 `yaml:"verticalSpeedClamp"`
	AirFriction        float64 `yaml:"airFriction"`
}

// HazardConfig contains rock, arrow and ballista configuration values
type HazardConfig struct {
	RockWidth   float64 `yaml:"rockWidth"`
	RockHeight  float64 `yaml:"rockHeight"`
	RockGravity float64 `yaml:"rockGravity"`

	ArrowWidth  float64 `yaml:"arrowWidth"`
	ArrowHeight float64 `yaml:"arrowHeight"`
	ArrowSpeed  float64 `yaml:"arrowSpeed"`

	BallistaWidth      float64 `yaml:"ballistaWidth"`
	BallistaHeight     float64 `yaml:"ballistaHeight"`
	BallistaShootDelay int     `yaml:"ballistaShootDelay"` // frames between shots
}

// PlugConfig contains breakable obstacle configuration values
type PlugConfig struct {
	// Hit counts at which the plug enters each visible break phase
	PhaseHits []int `yaml:"phaseHits"`
}

// ServerConfig contains headless server configuration values
type ServerConfig struct {
	Port        uint   `yaml:"port"`
	TickRate    int    `yaml:"tickRate"`
	MetricsAddr string `yaml:"metricsAddr"`
	Level       string `yaml:"level"`
}

// Config holds general game configuration
type Config struct {
	Width   int
	Height  int
	AppName string
	Level   string // default level path inside the embedded level FS
}

// DebugConfig contains debug rendering options
type DebugConfig struct {
	DrawRays bool
	DrawHUD  bool
}

// Global configuration instances
var C *Config
var Actors ActorsConfig
var Combat CombatConfig
var Animation AnimationConfig
var Cue CueConfig
var Physics PhysicsConfig
var Hazard HazardConfig
var Plug PlugConfig
var Server ServerConfig
var Debug DebugConfig

// Direction constants for actor facing
const (
	DirectionLeft  = -1.0
	DirectionRight = 1.0
)

// Shared RGBA color constants
var (
	White    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow   = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Orange   = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	Red      = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	Green    = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Blue     = color.RGBA{R: 0, G: 100, B: 255, A: 255}
	Purple   = color.RGBA{R: 128, G: 0, B: 255, A: 255}
	Gray     = color.RGBA{R: 110, G: 110, B: 120, A: 255}
	LightRed = color.RGBA{R: 255, G: 60, B: 60, A: 255}
)

func init() {
	C = &Config{
		Width:   640,
		Height:  360,
		AppName: "skirmish",
		Level:   "levels/arena.tmx",
	}

	Physics = PhysicsConfig{
		Gravity:            0.5,
		VerticalSpeedClamp: 10.0,
		AirFriction:        0.05,
	}

	Combat = CombatConfig{
		KnockbackForce:       10.0,
		AttackRequestTimeout: 45,
	}

	Animation = AnimationConfig{
		Clips: map[CharacterState]ClipConfig{
			Idle:        {Frames: 4, SpeedInTps: 8, Loop: true},
			Walk:        {Frames: 6, SpeedInTps: 5, Loop: true},
			Patrol:      {Frames: 6, SpeedInTps: 6, Loop: true},
			Chase:       {Frames: 6, SpeedInTps: 4, Loop: true},
			Attack:      {Frames: 8, SpeedInTps: 3, Loop: false},
			UnderAttack: {Frames: 2, SpeedInTps: 6, Loop: true},
			Static:      {Frames: 1, SpeedInTps: 10, Loop: true},
			Dead:        {Frames: 10, SpeedInTps: 6, Loop: false},
		},
		AttackWindowStart: 3,
		AttackWindowEnd:   5,
	}

	Cue = CueConfig{
		FadeIn:      0.03,
		Hold:        0.17,
		FadeOut:     0.30,
		ScaleDelay:  0.05,
		ScaleUp:     0.10,
		ScalePeak:   1.08,
		MaxRotation: 25,
		MaxOffset:   0.8,

		FallbackFrames: 90,
	}

	Actors = ActorsConfig{
		Kinds: map[string]ActorKindConfig{
			KindPlayer: {
				Kind:            KindPlayer,
				Controlled:      true,
				EndsGameOnDeath: true,
				WalkSpeed:       2.0,
				Gravity:         0.5,
				Friction:        0.2,
				MaxSpeed:        6.0,
				CollisionWidth:  14,
				CollisionHeight: 24,
				DeathFrames:     90,
				Color:           Blue,
			},
			KindMonster: {
				Kind:                  KindMonster,
				PatrolSpeed:           0.8,
				ChaseSpeed:            1.4,
				WaypointReachDistance: 4,
				AttackableRadius:      22,
				Perception: PerceptionConfig{
					Mode:    PerceptionDirectional,
					Radius:  96,
					OffsetX: 6,
					OffsetY: -4,
					MaxHits: 4,
				},
				Gravity:         0.5,
				Friction:        0.2,
				MaxSpeed:        6.0,
				CollisionWidth:  16,
				CollisionHeight: 20,
				DeathFrames:     120,
				Color:           Green,
			},
			KindSeniorMonster: {
				Kind:                  KindSeniorMonster,
				PatrolSpeed:           1.0,
				ChaseSpeed:            1.6,
				WaypointReachDistance: 4,
				AttackableRadius:      24,
				Perception: PerceptionConfig{
					Mode:    PerceptionDirectional,
					Radius:  128,
					OffsetX: 6,
					OffsetY: -6,
					MaxHits: 4,
				},
				Gravity:         0.5,
				Friction:        0.2,
				MaxSpeed:        6.0,
				CollisionWidth:  18,
				CollisionHeight: 24,
				DeathFrames:     120,
				Color:           Orange,
			},
			KindBoss: {
				Kind:                  KindBoss,
				PatrolSpeed:           0.6,
				ChaseSpeed:            1.2,
				WaypointReachDistance: 6,
				AttackableRadius:      30,
				Perception: PerceptionConfig{
					Mode:       PerceptionTargeted,
					Radius:     220,
					OffsetY:    -12,
					MaxHits:    1,
					TargetKind: KindPlayer,
					Blockers:   []string{"solid", "plug"},
				},
				Gravity:         0.5,
				Friction:        0.2,
				MaxSpeed:        6.0,
				CollisionWidth:  28,
				CollisionHeight: 36,
				DeathFrames:     180,
				Color:           Purple,
			},
		},
	}

	Hazard = HazardConfig{
		RockWidth:   12,
		RockHeight:  12,
		RockGravity: 0.4,

		ArrowWidth:  12,
		ArrowHeight: 3,
		ArrowSpeed:  4,

		BallistaWidth:      16,
		BallistaHeight:     12,
		BallistaShootDelay: 60,
	}

	Plug = PlugConfig{
		PhaseHits: []int{1, 3, 6},
	}

	Server = ServerConfig{
		Port:        7373,
		TickRate:    60,
		MetricsAddr: ":9373",
		Level:       "levels/arena.tmx",
	}

	Debug = DebugConfig{
		DrawRays: true,
		DrawHUD:  true,
	}
}
