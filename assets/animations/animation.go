package animations

import "github.com/automoto/skirmish/config"

// Animation is a frame-counted clip. It has no images; the timeline only
// needs to know which frame is showing and when a clip has run out.
type Animation struct {
	First            int
	Last             int
	Step             int     // how many indices do we move per frame
	SpeedInTps       float32 // how many ticks before next frame
	frameCounter     float32
	frame            int
	Looped           bool // wrapped or froze at least once since Restart
	FreezeOnComplete bool // If true, stay on last frame instead of looping
}

func (a *Animation) Update() {
	a.frameCounter -= 1.0
	if a.frameCounter >= 0.0 {
		return
	}
	a.frameCounter = a.SpeedInTps
	a.frame += a.Step
	if a.frame <= a.Last {
		return
	}
	a.Looped = true
	if a.FreezeOnComplete {
		a.frame = a.Last
	} else {
		a.frame = a.First
	}
}

func (a *Animation) Frame() int {
	return a.frame
}

// Finished reports whether a frozen clip has reached its last frame.
func (a *Animation) Finished() bool {
	return a.FreezeOnComplete && a.Looped
}

func (a *Animation) Restart() {
	a.frame = a.First
	a.frameCounter = a.SpeedInTps
	a.Looped = false
}

func NewAnimation(first, last, step int, speed float32) *Animation {
	return &Animation{
		First:        first,
		Last:         last,
		Step:         step,
		SpeedInTps:   speed,
		frameCounter: speed,
		frame:        first,
	}
}

// NewClip builds a clip from its configuration. Non-looping clips freeze
// on their last frame.
func NewClip(c config.ClipConfig) *Animation {
	frames := c.Frames
	if frames < 1 {
		frames = 1
	}
	a := NewAnimation(0, frames-1, 1, c.SpeedInTps)
	a.FreezeOnComplete = !c.Loop
	return a
}

// NewClipSet builds one clip per configured state.
func NewClipSet(clips map[config.CharacterState]config.ClipConfig) map[config.CharacterState]*Animation {
	set := make(map[config.CharacterState]*Animation, len(clips))
	for state, c := range clips {
		set[state] = NewClip(c)
	}
	return set
}
