package states

import (
	"fmt"
	"image/color"

	"github.com/cbodonnell/hexfantasy/client/atlas"
	"github.com/cbodonnell/hexfantasy/client/draw"
	"github.com/cbodonnell/hexfantasy/client/platform"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	mapMarginX = 20
	mapMarginY = 60
	mapGap     = 4
)

type MapOptions struct {
	// Transition configures the way back to the Title.
	Transition TransitionOptions
}

// Map lays out every tile of the atlas and lets the user move a cursor over
// them. F and V flip the tile under the cursor.
type Map struct {
	opts   MapOptions
	cursor int
	flags  atlas.DrawFlags
}

var _ State = &Map{}

func NewMap(opts MapOptions) *Map {
	return &Map{opts: opts}
}

func (m *Map) sealed() {}

func (m *Map) Name() string {
	return "map"
}

// Cursor is the id of the selected tile.
func (m *Map) Cursor() int {
	return m.cursor
}

func (m *Map) Flags() atlas.DrawFlags {
	return m.flags
}

func (m *Map) Update(p *platform.Platform) (State, error) {
	a, err := p.Atlas.Atlas()
	if err != nil {
		return nil, fmt.Errorf("failed to update map: %w", err)
	}

	keys := p.Keys
	if keys.IsNegativeJustPressed() {
		return NewTransition(m.Clone(), NewTitle(m.opts.Transition), m.opts.Transition), nil
	}

	g := a.Grid()
	col, row := m.cursor%g.Columns, m.cursor/g.Columns
	switch {
	case keys.IsRightJustPressed():
		col = (col + 1) % g.Columns
	case keys.IsLeftJustPressed():
		col = (col - 1 + g.Columns) % g.Columns
	case keys.IsDownJustPressed():
		row = (row + 1) % g.Rows
	case keys.IsUpJustPressed():
		row = (row - 1 + g.Rows) % g.Rows
	}
	m.cursor = col + row*g.Columns

	if keys.JustPressed(ebiten.KeyF) {
		m.flags ^= atlas.FlipHorizontal
	}
	if keys.JustPressed(ebiten.KeyV) {
		m.flags ^= atlas.FlipVertical
	}
	return nil, nil
}

// cellOrigin returns where the tile with the given id is drawn.
func cellOrigin(g atlas.Grid, id, cellW, cellH int) (int, int) {
	col, row := id%g.Columns, id/g.Columns
	return mapMarginX + col*(cellW+mapGap), mapMarginY + row*(cellH+mapGap)
}

func (m *Map) Draw(p *platform.Platform) error {
	a, err := p.Atlas.Atlas()
	if err != nil {
		return err
	}
	scale := p.Atlas.Scale()
	cellW, cellH := int(float64(a.TileWidth())*scale), int(float64(a.TileHeight())*scale)

	for id := 0; id < a.Len(); id++ {
		x, y := cellOrigin(a.Grid(), id, cellW, cellH)
		var flags atlas.DrawFlags
		if id == m.cursor {
			flags = m.flags
		}
		if err := p.DrawTile(id, x, y, flags); err != nil {
			return fmt.Errorf("failed to draw tile %d: %w", id, err)
		}
	}

	x, y := cellOrigin(a.Grid(), m.cursor, cellW, cellH)
	draw.Frame(p.Screen, float64(x-1), float64(y-1), float64(cellW+2), float64(cellH+2), 2, color.NRGBA{R: 255, G: 220, B: 0, A: 255})

	return p.Label(color.White, mapMarginX, 40, draw.AlignLeft, fmt.Sprintf("Tile %d", m.cursor))
}

func (m *Map) Clone() State {
	c := *m
	return &c
}
