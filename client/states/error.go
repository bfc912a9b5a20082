package states

import (
	"image/color"

	"github.com/cbodonnell/hexfantasy/client/draw"
	"github.com/cbodonnell/hexfantasy/client/platform"
)

// Error shows a failure until the user acknowledges it, then ends the game
// loop with the underlying error.
type Error struct {
	err error
}

var _ State = &Error{}

func NewError(err error) *Error {
	return &Error{err: err}
}

func (e *Error) sealed() {}

func (e *Error) Name() string {
	return "error"
}

func (e *Error) Err() error {
	return e.err
}

func (e *Error) Update(p *platform.Platform) (State, error) {
	if p.Keys.IsPositiveJustPressed() {
		if e.err != nil {
			return nil, e.err
		}
		return nil, ErrQuit
	}
	return nil, nil
}

func (e *Error) Draw(p *platform.Platform) error {
	msg := "Unknown error"
	if e.err != nil {
		msg = e.err.Error()
	}
	if err := p.Overlay(color.NRGBA{R: 255, G: 80, B: 80, A: 255}, "Error"); err != nil {
		return err
	}
	return p.Label(color.White, 10, float64(p.Height)-20, draw.AlignLeft, msg)
}

func (e *Error) Clone() State {
	c := *e
	return &c
}
