package atlas

import (
	"image"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSource(t *testing.T, w, h int) *Source {
	t.Helper()
	src, err := NewSource("test", image.NewRGBA(image.Rect(0, 0, w, h)), testGrid)
	require.NoError(t, err)
	return src
}

func TestStore_NotInitialized(t *testing.T) {
	s := NewStore(StoreOptions{})

	_, err := s.Atlas()
	assert.ErrorIs(t, err, ErrAtlasNotInitialized)
	_, err = s.TileWidth()
	assert.ErrorIs(t, err, ErrAtlasNotInitialized)
	_, err = s.TileHeight()
	assert.ErrorIs(t, err, ErrAtlasNotInitialized)
	_, err = s.Tile(0)
	assert.ErrorIs(t, err, ErrAtlasNotInitialized)
	err = s.DrawTile(ebiten.NewImage(10, 10), 0, 0, 0, 0)
	assert.ErrorIs(t, err, ErrAtlasNotInitialized)
}

func TestStore_Initialize(t *testing.T) {
	s := NewStore(StoreOptions{})
	a, err := s.Initialize(newTestSource(t, 800, 150))
	require.NoError(t, err)

	assert.Equal(t, 40, a.Len())
	assert.Equal(t, uint64(1), s.Generation())

	for i := 0; i < 3; i++ {
		w, err := s.TileWidth()
		require.NoError(t, err)
		h, err := s.TileHeight()
		require.NoError(t, err)
		assert.Equal(t, 100, w)
		assert.Equal(t, 30, h)
	}

	ref, err := s.Tile(3)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(300, 0, 400, 30), ref.Bounds())

	ref, err = s.Tile(9)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(100, 30, 200, 60), ref.Bounds())
}

func TestStore_InitializeNil(t *testing.T) {
	s := NewStore(StoreOptions{})
	_, err := s.Initialize(nil)
	assert.Error(t, err)
	_, err = s.Atlas()
	assert.ErrorIs(t, err, ErrAtlasNotInitialized)
}

func TestStore_ResolveEveryTile(t *testing.T) {
	s := NewStore(StoreOptions{})
	a, err := s.Initialize(newTestSource(t, 800, 150))
	require.NoError(t, err)

	dst := ebiten.NewImage(200, 200)
	for id := 0; id < a.Len(); id++ {
		ref, err := s.Tile(id)
		require.NoError(t, err)

		first, err := s.Resolve(ref)
		require.NoError(t, err)
		second, err := s.Resolve(ref)
		require.NoError(t, err)
		assert.Equal(t, first.Bounds(), second.Bounds())
		assert.Equal(t, ref.Bounds(), first.Bounds())

		assert.NoError(t, s.DrawTile(dst, id, 10, 10, 0))
	}
}

func TestStore_UnknownTileID(t *testing.T) {
	s := NewStore(StoreOptions{})
	_, err := s.Initialize(newTestSource(t, 800, 150))
	require.NoError(t, err)

	dst := ebiten.NewImage(10, 10)
	for _, id := range []int{40, 41, -1, 1000} {
		err := s.DrawTile(dst, id, 0, 0, 0)
		require.ErrorIs(t, err, ErrUnknownTileID)
		var unknown *UnknownTileError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, id, unknown.ID)
		assert.Equal(t, 40, unknown.Len)

		_, err = s.Tile(id)
		assert.ErrorIs(t, err, ErrUnknownTileID)
	}
}

func TestStore_ReinitializeInvalidatesRefs(t *testing.T) {
	s := NewStore(StoreOptions{})
	_, err := s.Initialize(newTestSource(t, 800, 150))
	require.NoError(t, err)

	old, err := s.Tile(5)
	require.NoError(t, err)

	a, err := s.Initialize(newTestSource(t, 400, 100))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), a.Generation())
	assert.Equal(t, 50, a.TileWidth())
	assert.Equal(t, 20, a.TileHeight())

	_, err = s.Resolve(old)
	require.ErrorIs(t, err, ErrStaleTile)
	var stale *StaleTileError
	require.ErrorAs(t, err, &stale)
	assert.Equal(t, uint64(1), stale.Generation)
	assert.Equal(t, uint64(2), stale.Current)

	fresh, err := s.Tile(5)
	require.NoError(t, err)
	_, err = s.Resolve(fresh)
	assert.NoError(t, err)
}

func TestStore_Teardown(t *testing.T) {
	s := NewStore(StoreOptions{})
	_, err := s.Initialize(newTestSource(t, 800, 150))
	require.NoError(t, err)
	ref, err := s.Tile(0)
	require.NoError(t, err)

	s.Teardown()

	_, err = s.Resolve(ref)
	assert.ErrorIs(t, err, ErrStaleTile)
	_, err = s.TileWidth()
	assert.ErrorIs(t, err, ErrAtlasNotInitialized)

	// a second teardown is a no-op
	gen := s.Generation()
	s.Teardown()
	assert.Equal(t, gen, s.Generation())
}

func TestStore_ForeignRef(t *testing.T) {
	a := NewStore(StoreOptions{})
	b := NewStore(StoreOptions{})
	_, err := a.Initialize(newTestSource(t, 800, 150))
	require.NoError(t, err)
	_, err = b.Initialize(newTestSource(t, 800, 150))
	require.NoError(t, err)

	ref, err := a.Tile(1)
	require.NoError(t, err)

	_, err = b.Resolve(ref)
	require.ErrorIs(t, err, ErrStaleTile)
	var stale *StaleTileError
	require.ErrorAs(t, err, &stale)
	assert.True(t, stale.Foreign)
}

func TestTileGeoM(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		flags DrawFlags
		in    [2]float64
		want  [2]float64
	}{
		{name: "identity origin", scale: 1, in: [2]float64{0, 0}, want: [2]float64{10, 20}},
		{name: "identity corner", scale: 1, in: [2]float64{100, 30}, want: [2]float64{110, 50}},
		{name: "scaled", scale: 2, in: [2]float64{100, 30}, want: [2]float64{210, 80}},
		{name: "flip horizontal", scale: 1, flags: FlipHorizontal, in: [2]float64{0, 0}, want: [2]float64{110, 20}},
		{name: "flip vertical", scale: 1, flags: FlipVertical, in: [2]float64{0, 0}, want: [2]float64{10, 50}},
		{name: "flip both", scale: 1, flags: FlipHorizontal | FlipVertical, in: [2]float64{100, 30}, want: [2]float64{10, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tileGeoM(100, 30, tt.scale, tt.flags, 10, 20)
			x, y := g.Apply(tt.in[0], tt.in[1])
			assert.InDelta(t, tt.want[0], x, 1e-9)
			assert.InDelta(t, tt.want[1], y, 1e-9)
		})
	}
}

func TestNewStore_DefaultScale(t *testing.T) {
	assert.Equal(t, 1.0, NewStore(StoreOptions{}).Scale())
	assert.Equal(t, 2.0, NewStore(StoreOptions{Scale: 2}).Scale())
}

func TestStore_InitializeInvalidSource(t *testing.T) {
	tests := []struct {
		name string
		src  *Source
	}{
		{name: "zero source", src: &Source{}},
		{name: "zero grid", src: &Source{name: "grid", image: image.NewRGBA(image.Rect(0, 0, 80, 50))}},
		{name: "grid larger than image", src: &Source{name: "tiny", image: image.NewRGBA(image.Rect(0, 0, 4, 4)), grid: testGrid}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(StoreOptions{})
			a, err := s.Initialize(tt.src)
			assert.Nil(t, a)
			assert.Error(t, err)
			assert.Equal(t, uint64(0), s.Generation())
			_, err = s.Atlas()
			assert.ErrorIs(t, err, ErrAtlasNotInitialized)
		})
	}
}
