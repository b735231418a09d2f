// Package effects plays short visual cues. A cue owns a completion
// callback; the combat resolver uses the hit cue to decide when an attack
// lands.
package effects

import (
	"math"
	"math/rand"

	"github.com/automoto/skirmish/combat"
	"github.com/automoto/skirmish/config"
	"github.com/automoto/skirmish/metrics"
	"github.com/oklog/ulid/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Cue is a snapshot of one playing cue, ready to draw.
type Cue struct {
	Token      combat.CueToken
	Descriptor combat.CueDescriptor

	Alpha    float32
	Scale    float32
	Rotation float64 // radians
	OffsetX  float64
	OffsetY  float64
	FlipX    bool
}

type playing struct {
	Cue
	alpha      *gween.Sequence
	scale      *gween.Sequence
	frames     int
	ended      bool
	scaled     bool
	onComplete func()
}

// Service runs cues at a fixed tick rate. It is not safe for concurrent
// use; it lives on the simulation goroutine like everything else.
type Service struct {
	cues []*playing
	rng  *rand.Rand
	dt   float32
}

var _ combat.CueService = (*Service)(nil)

type Option func(*Service)

// WithRand sets the source for cue jitter.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) { s.rng = rng }
}

// WithTickRate sets how many Update calls make a second.
func WithTickRate(tps int) Option {
	return func(s *Service) {
		if tps > 0 {
			s.dt = 1 / float32(tps)
		}
	}
}

func NewService(opts ...Option) *Service {
	s := &Service{
		rng: rand.New(rand.NewSource(7)),
		dt:  1.0 / 60,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Play starts a cue and returns its token. onComplete runs exactly once,
// from Update or Cancel.
func (s *Service) Play(desc combat.CueDescriptor, onComplete func()) combat.CueToken {
	c := config.Cue
	p := &playing{
		Cue: Cue{
			Token:      combat.CueToken(ulid.Make().String()),
			Descriptor: desc,
			Scale:      1,
			Rotation:   (s.rng.Float64()*2 - 1) * c.MaxRotation * math.Pi / 180,
			OffsetX:    (s.rng.Float64()*2 - 1) * c.MaxOffset,
			OffsetY:    (s.rng.Float64()*2 - 1) * c.MaxOffset,
			FlipX:      s.rng.Intn(2) == 1,
		},
		alpha:      sequence(step{0, 1, c.FadeIn, ease.OutQuad}, step{1, 1, c.Hold, ease.Linear}, step{1, 0, c.FadeOut, ease.InQuad}),
		scale:      sequence(step{1, 1, c.ScaleDelay, ease.Linear}, step{1, c.ScalePeak, c.ScaleUp, ease.OutQuad}),
		onComplete: onComplete,
	}
	s.cues = append(s.cues, p)
	return p.Token
}

// Cancel stops a cue and runs its completion immediately. Unknown tokens
// are ignored.
func (s *Service) Cancel(token combat.CueToken) {
	for i, p := range s.cues {
		if p.Token != token {
			continue
		}
		s.cues = append(s.cues[:i], s.cues[i+1:]...)
		finish(p)
		return
	}
}

// Update advances every cue by one tick. Completions run after the cue
// list is settled, so a completion may start new cues.
func (s *Service) Update() {
	var done []*playing
	kept := s.cues[:0]
	for _, p := range s.cues {
		p.frames++
		if p.alpha != nil {
			var end bool
			p.Alpha, _, end = p.alpha.Update(s.dt)
			p.ended = p.ended || end
		}
		if p.scale != nil && !p.scaled {
			p.Scale, _, p.scaled = p.scale.Update(s.dt)
		}

		switch {
		case p.alpha == nil || p.ended:
			done = append(done, p)
		case config.Cue.FallbackFrames > 0 && p.frames >= config.Cue.FallbackFrames:
			metrics.RecordCueFallback()
			done = append(done, p)
		default:
			kept = append(kept, p)
		}
	}
	for i := len(kept); i < len(s.cues); i++ {
		s.cues[i] = nil
	}
	s.cues = kept

	for _, p := range done {
		finish(p)
	}
}

// Active returns the cues currently playing.
func (s *Service) Active() []Cue {
	out := make([]Cue, 0, len(s.cues))
	for _, p := range s.cues {
		out = append(out, p.Cue)
	}
	return out
}

func (s *Service) Len() int {
	return len(s.cues)
}

func finish(p *playing) {
	if p.onComplete == nil {
		return
	}
	fn := p.onComplete
	p.onComplete = nil
	fn()
}

type step struct {
	from, to float32
	duration float32
	easing   ease.TweenFunc
}

// sequence chains the steps, dropping empty ones. It returns nil when
// nothing is left.
func sequence(steps ...step) *gween.Sequence {
	var tweens []*gween.Tween
	for _, st := range steps {
		if st.duration <= 0 {
			continue
		}
		tweens = append(tweens, gween.New(st.from, st.to, st.duration, st.easing))
	}
	if len(tweens) == 0 {
		return nil
	}
	return gween.NewSequence(tweens...)
}
