package states

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/cbodonnell/hexfantasy/client/atlas"
	"github.com/cbodonnell/hexfantasy/client/platform"
	"github.com/cbodonnell/hexfantasy/pkg/log"
)

type LoadingOptions struct {
	// Results delivers the background decode of the sprite sheet.
	Results <-chan atlas.LoadResult
	// Next is entered once the atlas is initialized.
	Next State
	// Transition configures the hand-over to Next.
	Transition TransitionOptions
	// ExitOnError makes a load failure end the game loop immediately instead
	// of showing an Error state first.
	ExitOnError bool
}

// Loading waits for the sprite sheet to finish decoding and then initializes
// the atlas. Polling never blocks the frame. Clones share the pending result,
// so only one of them will observe it.
type Loading struct {
	opts   LoadingOptions
	frames int
}

var _ State = &Loading{}

func NewLoading(opts LoadingOptions) *Loading {
	return &Loading{opts: opts}
}

func (l *Loading) sealed() {}

func (l *Loading) Name() string {
	return "loading"
}

func (l *Loading) Update(p *platform.Platform) (State, error) {
	select {
	case res, ok := <-l.opts.Results:
		if !ok {
			return l.fail(fmt.Errorf("atlas load result channel closed without a result"))
		}
		if res.Err != nil {
			return l.fail(res.Err)
		}
		a, err := p.Atlas.Initialize(res.Source)
		if err != nil {
			return l.fail(&atlas.LoadError{Source: sourceName(res.Source), Err: err})
		}
		log.Debug("Atlas ready after %d frames: %d tiles", l.frames, a.Len())
		return NewTransition(l.Clone(), l.opts.Next.Clone(), l.opts.Transition), nil
	default:
		l.frames++
		return nil, nil
	}
}

func (l *Loading) fail(err error) (State, error) {
	log.Error("Failed to load atlas: %v", err)
	if l.opts.ExitOnError {
		return nil, err
	}
	return NewError(err), nil
}

func (l *Loading) Draw(p *platform.Platform) error {
	dots := strings.Repeat(".", (l.frames/20)%4)
	return p.Overlay(color.White, "Loading"+dots)
}

func (l *Loading) Clone() State {
	c := *l
	if l.opts.Next != nil {
		c.opts.Next = l.opts.Next.Clone()
	}
	return &c
}

func sourceName(src *atlas.Source) string {
	if src == nil {
		return "unknown"
	}
	return src.Name()
}
