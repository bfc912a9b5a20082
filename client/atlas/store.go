package atlas

import (
	"fmt"
	"image"

	"github.com/cbodonnell/hexfantasy/pkg/log"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
)

// DrawFlags control how a tile is blitted.
type DrawFlags uint8

const (
	FlipHorizontal DrawFlags = 1 << iota
	FlipVertical
)

func (f DrawFlags) Has(flag DrawFlags) bool {
	return f&flag != 0
}

// TileRef is a lightweight handle to one tile of an atlas. It holds no pixel
// data and must be resolved against the Store that issued it on every use.
type TileRef struct {
	owner      uuid.UUID
	generation uint64
	id         int
	bounds     image.Rectangle
}

func (r TileRef) ID() int {
	return r.id
}

func (r TileRef) Generation() uint64 {
	return r.generation
}

// Bounds returns the tile's rectangle within the sprite sheet.
func (r TileRef) Bounds() image.Rectangle {
	return r.bounds
}

// Atlas is an initialized tile atlas. It can only be obtained from
// Store.Initialize, so holding one proves initialization happened.
type Atlas struct {
	owner      uuid.UUID
	generation uint64
	grid       Grid
	tileWidth  int
	tileHeight int
	texture    *ebiten.Image
	// views holds one sub-image per tile id, sharing the texture's pixels.
	views []*ebiten.Image
}

func (a *Atlas) Grid() Grid {
	return a.grid
}

func (a *Atlas) Len() int {
	return len(a.views)
}

func (a *Atlas) TileWidth() int {
	return a.tileWidth
}

func (a *Atlas) TileHeight() int {
	return a.tileHeight
}

func (a *Atlas) Generation() uint64 {
	return a.generation
}

// Region returns the source rectangle of a tile.
func (a *Atlas) Region(id int) (image.Rectangle, error) {
	if !a.grid.Contains(id) {
		return image.Rectangle{}, &UnknownTileError{ID: id, Len: a.grid.Len()}
	}
	return a.grid.Rect(id, a.tileWidth, a.tileHeight), nil
}

// Tile issues a reference to the tile with the given id.
func (a *Atlas) Tile(id int) (TileRef, error) {
	r, err := a.Region(id)
	if err != nil {
		return TileRef{}, err
	}
	return TileRef{
		owner:      a.owner,
		generation: a.generation,
		id:         id,
		bounds:     r,
	}, nil
}

type StoreOptions struct {
	// Scale is the factor applied to every drawn tile. Zero means 1.
	Scale float64
}

// Store owns the atlas texture. Every tile reference is resolved through it,
// and replacing or tearing down the atlas invalidates all outstanding
// references. A Store must only be used from the goroutine running the game
// loop.
type Store struct {
	id         uuid.UUID
	scale      float64
	generation uint64
	atlas      *Atlas
}

func NewStore(opts StoreOptions) *Store {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	return &Store{
		id:    uuid.New(),
		scale: scale,
	}
}

func (s *Store) ID() uuid.UUID {
	return s.id
}

func (s *Store) Scale() float64 {
	return s.scale
}

// Generation is incremented by every Initialize and Teardown.
func (s *Store) Generation() uint64 {
	return s.generation
}

// Initialize uploads the decoded source to a texture and cuts it into tiles.
// It must run on the main goroutine. Calling it again replaces the atlas, and
// references issued by the previous one become stale.
func (s *Store) Initialize(src *Source) (*Atlas, error) {
	if src == nil || src.image == nil {
		return nil, fmt.Errorf("failed to initialize atlas: empty source")
	}
	grid := src.Grid()
	if err := grid.Validate(); err != nil {
		return nil, fmt.Errorf("failed to initialize atlas: %w", err)
	}
	width, height := src.Size()
	tileWidth, tileHeight := grid.TileSize(width, height)
	if tileWidth < 1 || tileHeight < 1 {
		return nil, fmt.Errorf("failed to initialize atlas: %dx%d source yields empty %dx%d tiles", width, height, tileWidth, tileHeight)
	}

	texture := ebiten.NewImageFromImage(src.Image())

	if s.atlas != nil {
		log.Debug("Replacing atlas generation %d", s.atlas.generation)
		s.release()
	}
	s.generation++

	a := &Atlas{
		owner:      s.id,
		generation: s.generation,
		grid:       grid,
		tileWidth:  tileWidth,
		tileHeight: tileHeight,
		texture:    texture,
		views:      make([]*ebiten.Image, grid.Len()),
	}
	for id := range a.views {
		a.views[id] = texture.SubImage(grid.Rect(id, tileWidth, tileHeight)).(*ebiten.Image)
	}
	s.atlas = a

	if width%grid.Columns != 0 || height%grid.Rows != 0 {
		log.Warn("Atlas %s is %dx%d, not a multiple of the %dx%d grid; edge pixels are ignored", src.Name(), width, height, grid.Columns, grid.Rows)
	}
	log.Info("Tile dimensions: %dx%d (%d tiles, generation %d)", tileWidth, tileHeight, a.Len(), a.generation)
	return a, nil
}

// Teardown releases the texture. Queries fail with ErrAtlasNotInitialized
// until the next Initialize.
func (s *Store) Teardown() {
	if s.atlas == nil {
		return
	}
	s.release()
	s.generation++
}

func (s *Store) release() {
	s.atlas.texture.Deallocate()
	s.atlas.views = nil
	s.atlas = nil
}

// Atlas returns the current atlas.
func (s *Store) Atlas() (*Atlas, error) {
	if s.atlas == nil {
		return nil, ErrAtlasNotInitialized
	}
	return s.atlas, nil
}

func (s *Store) TileWidth() (int, error) {
	a, err := s.Atlas()
	if err != nil {
		return 0, err
	}
	return a.TileWidth(), nil
}

func (s *Store) TileHeight() (int, error) {
	a, err := s.Atlas()
	if err != nil {
		return 0, err
	}
	return a.TileHeight(), nil
}

func (s *Store) Tile(id int) (TileRef, error) {
	a, err := s.Atlas()
	if err != nil {
		return TileRef{}, err
	}
	return a.Tile(id)
}

// Resolve turns a reference into a drawable view of the texture. The view is
// only valid until the atlas is replaced or torn down.
func (s *Store) Resolve(ref TileRef) (*ebiten.Image, error) {
	if ref.owner != s.id {
		return nil, &StaleTileError{ID: ref.id, Generation: ref.generation, Foreign: true}
	}
	if s.atlas == nil || ref.generation != s.atlas.generation {
		current := uint64(0)
		if s.atlas != nil {
			current = s.atlas.generation
		}
		return nil, &StaleTileError{ID: ref.id, Generation: ref.generation, Current: current}
	}
	return s.atlas.views[ref.id], nil
}

// DrawTile blits the full extent of a tile onto dst with its top-left corner at
// (x, y), scaled by the store's scale factor.
func (s *Store) DrawTile(dst *ebiten.Image, id, x, y int, flags DrawFlags) error {
	if dst == nil {
		return fmt.Errorf("failed to draw tile %d: nil destination", id)
	}
	ref, err := s.Tile(id)
	if err != nil {
		return err
	}
	view, err := s.Resolve(ref)
	if err != nil {
		return err
	}
	op := &ebiten.DrawImageOptions{
		GeoM:   tileGeoM(ref.bounds.Dx(), ref.bounds.Dy(), s.scale, flags, x, y),
		Filter: ebiten.FilterNearest,
	}
	dst.DrawImage(view, op)
	return nil
}

// tileGeoM maps a w by h tile onto the destination, mirroring it in place
// when flipped.
func tileGeoM(w, h int, scale float64, flags DrawFlags, x, y int) ebiten.GeoM {
	var g ebiten.GeoM
	if flags.Has(FlipHorizontal) {
		g.Scale(-1, 1)
		g.Translate(float64(w), 0)
	}
	if flags.Has(FlipVertical) {
		g.Scale(1, -1)
		g.Translate(0, float64(h))
	}
	g.Scale(scale, scale)
	g.Translate(float64(x), float64(y))
	return g
}
