package atlas

import (
	"encoding/json"
	"fmt"
	"image"
)

// Grid is the fixed column/row layout of a sprite sheet.
type Grid struct {
	Columns int `json:"columns"`
	Rows    int `json:"rows"`
}

func (g Grid) Validate() error {
	if g.Columns < 1 || g.Rows < 1 {
		return fmt.Errorf("invalid grid %dx%d: columns and rows must be positive", g.Columns, g.Rows)
	}
	return nil
}

// Len returns the number of tiles in the grid.
func (g Grid) Len() int {
	return g.Columns * g.Rows
}

// Contains reports whether id addresses a cell of the grid.
func (g Grid) Contains(id int) bool {
	return id >= 0 && id < g.Len()
}

// TileSize divides the source dimensions by the grid. Dimensions that are not
// an exact multiple of the grid are floored; the leftover pixels on the right
// and bottom edges of the sheet are never addressed by any tile.
func (g Grid) TileSize(width, height int) (int, int) {
	return width / g.Columns, height / g.Rows
}

// Rect returns the source rectangle of the tile with the given id.
// Ids are row-major: id = col + row*columns.
func (g Grid) Rect(id, tileWidth, tileHeight int) image.Rectangle {
	col, row := id%g.Columns, id/g.Columns
	x, y := col*tileWidth, row*tileHeight
	return image.Rect(x, y, x+tileWidth, y+tileHeight)
}

// Manifest describes a sprite sheet asset and the grid it is cut into.
type Manifest struct {
	Image   string `json:"image"`
	Columns int    `json:"columns"`
	Rows    int    `json:"rows"`
}

func ParseManifest(data []byte) (*Manifest, error) {
	m := &Manifest{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to parse atlas manifest: %w", err)
	}
	if err := m.Grid().Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate atlas manifest: %w", err)
	}
	return m, nil
}

func (m *Manifest) Grid() Grid {
	return Grid{Columns: m.Columns, Rows: m.Rows}
}
