package states

import (
	"image"
	"testing"

	"github.com/cbodonnell/hexfantasy/client/atlas"
	"github.com/cbodonnell/hexfantasy/client/platform"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/require"
)

// recorder is a State that counts how often the host touched it.
type recorder struct {
	label   string
	updates int
	draws   int
	next    State
}

func (r *recorder) sealed() {}

func (r *recorder) Name() string {
	return r.label
}

func (r *recorder) Update(p *platform.Platform) (State, error) {
	r.updates++
	return r.next, nil
}

func (r *recorder) Draw(p *platform.Platform) error {
	r.draws++
	return nil
}

func (r *recorder) Clone() State {
	c := *r
	return &c
}

func newTestPlatform(t *testing.T) *platform.Platform {
	t.Helper()
	p := platform.New(platform.NewPlatformOptions{Width: 640, Height: 480})
	p.Screen = ebiten.NewImage(640, 480)
	return p
}

func newTestSource(t *testing.T) *atlas.Source {
	t.Helper()
	src, err := atlas.NewSource("test", image.NewRGBA(image.Rect(0, 0, 800, 150)), atlas.Grid{Columns: 8, Rows: 5})
	require.NoError(t, err)
	return src
}

func newInitializedPlatform(t *testing.T) *platform.Platform {
	t.Helper()
	p := newTestPlatform(t)
	_, err := p.Atlas.Initialize(newTestSource(t))
	require.NoError(t, err)
	return p
}
