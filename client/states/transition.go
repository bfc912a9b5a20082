package states

import (
	"image/color"

	"github.com/cbodonnell/hexfantasy/client/draw"
	"github.com/cbodonnell/hexfantasy/client/platform"
	"github.com/cbodonnell/hexfantasy/pkg/log"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	// DefaultTransitionFrames is one second at 60 updates per second.
	DefaultTransitionFrames  = 60
	DefaultTransitionMessage = "Transitioning!"

	// minOpacity keeps the overlay visible on the frame it is swapped in.
	minOpacity = 0.25
)

type TransitionOptions struct {
	// Frames is the number of updates before the destination takes over.
	// Values below 1 use DefaultTransitionFrames.
	Frames int
	// Message is the overlay text.
	Message string
	// Ease shapes the fade-in of the overlay. Nil means ease.OutQuad.
	Ease ease.TweenFunc
}

func (o TransitionOptions) withDefaults() TransitionOptions {
	if o.Frames < 1 {
		o.Frames = DefaultTransitionFrames
	}
	if o.Message == "" {
		o.Message = DefaultTransitionMessage
	}
	if o.Ease == nil {
		o.Ease = ease.OutQuad
	}
	return o
}

// Transition owns two states and hands over to the second after a fixed
// number of frames. Neither state is updated or drawn while it runs. from may
// be nil; to must not be.
type Transition struct {
	from    State
	to      State
	opts    TransitionOptions
	timer   int
	fade    *gween.Tween
	opacity float32
}

var _ State = &Transition{}

func NewTransition(from, to State, opts TransitionOptions) *Transition {
	opts = opts.withDefaults()
	return &Transition{
		from:    from,
		to:      to,
		opts:    opts,
		timer:   opts.Frames,
		fade:    gween.New(minOpacity, 1, float32(opts.Frames), opts.Ease),
		opacity: minOpacity,
	}
}

func (t *Transition) sealed() {}

func (t *Transition) Name() string {
	return "transition"
}

func (t *Transition) From() State {
	return t.from
}

func (t *Transition) To() State {
	return t.to
}

// Remaining is the number of updates left before the destination is yielded.
func (t *Transition) Remaining() int {
	return t.timer
}

// Opacity is the current overlay opacity in [minOpacity, 1].
func (t *Transition) Opacity() float32 {
	return t.opacity
}

func (t *Transition) Update(p *platform.Platform) (State, error) {
	if t.timer > 0 {
		t.timer--
	}
	t.opacity, _ = t.fade.Update(1)
	log.Trace("Transition %s -> %s: %d frames left", nameOf(t.from), nameOf(t.to), t.timer)
	if t.timer == 0 {
		return t.to.Clone(), nil
	}
	return nil, nil
}

// overlayColors returns the dim layer and message colors for the current opacity.
func (t *Transition) overlayColors() (color.NRGBA, color.NRGBA) {
	dim := color.NRGBA{R: 8, G: 8, B: 16, A: uint8(t.opacity * 200)}
	msg := color.NRGBA{R: 255, G: 255, B: 255, A: uint8(t.opacity * 255)}
	return dim, msg
}

func (t *Transition) Draw(p *platform.Platform) error {
	dim, msg := t.overlayColors()
	if err := p.Fill(dim); err != nil {
		return err
	}
	return p.Text(msg, 10, 30, draw.AlignLeft, t.opts.Message)
}

func (t *Transition) Clone() State {
	c := *t
	if t.from != nil {
		c.from = t.from.Clone()
	}
	c.to = t.to.Clone()
	fade := *t.fade
	c.fade = &fade
	return &c
}

func nameOf(s State) string {
	if s == nil {
		return "none"
	}
	return s.Name()
}
