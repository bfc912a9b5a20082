package states

import (
	"image/color"

	"github.com/cbodonnell/hexfantasy/client/draw"
	"github.com/cbodonnell/hexfantasy/client/platform"
)

const titleText = "Hex Fantasy"

// Title is the start screen. Confirming enters the Map, escape quits.
type Title struct {
	transition TransitionOptions
	frames     int
}

var _ State = &Title{}

func NewTitle(transition TransitionOptions) *Title {
	return &Title{transition: transition}
}

func (t *Title) sealed() {}

func (t *Title) Name() string {
	return "title"
}

func (t *Title) Update(p *platform.Platform) (State, error) {
	t.frames++
	if p.Keys.IsNegativeJustPressed() {
		return nil, ErrQuit
	}
	if p.Keys.IsPositiveJustPressed() {
		return NewTransition(t.Clone(), NewMap(MapOptions{Transition: t.transition}), t.transition), nil
	}
	return nil, nil
}

func (t *Title) Draw(p *platform.Platform) error {
	a, err := p.Atlas.Atlas()
	if err != nil {
		return err
	}

	// a strip of the first row of tiles along the top
	step := int(float64(a.TileWidth()) * p.Atlas.Scale())
	for col := 0; col < a.Grid().Columns; col++ {
		if err := p.DrawTile(col, 20+col*step, 20, 0); err != nil {
			return err
		}
	}

	if err := p.Heading(color.White, titleText); err != nil {
		return err
	}
	if (t.frames/30)%2 == 0 {
		return p.Text(color.White, float64(p.Width)/2, float64(p.Height)-60, draw.AlignCenter, "Press Enter")
	}
	return nil
}

func (t *Title) Clone() State {
	c := *t
	return &c
}
