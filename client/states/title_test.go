package states

import (
	"testing"

	"github.com/cbodonnell/hexfantasy/client/atlas"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitle_Update(t *testing.T) {
	p := newInitializedPlatform(t)
	title := NewTitle(TransitionOptions{Frames: 5})

	next, err := title.Update(p)
	require.NoError(t, err)
	assert.Nil(t, next)

	p.Keys.MarkDown(ebiten.KeyEnter)
	next, err = title.Update(p)
	require.NoError(t, err)
	tr, ok := next.(*Transition)
	require.True(t, ok)
	assert.Equal(t, "title", tr.From().Name())
	assert.Equal(t, "map", tr.To().Name())
	assert.Equal(t, 5, tr.Remaining())
}

func TestTitle_Quit(t *testing.T) {
	p := newInitializedPlatform(t)
	p.Keys.MarkDown(ebiten.KeyEscape)

	_, err := NewTitle(TransitionOptions{}).Update(p)
	assert.ErrorIs(t, err, ErrQuit)
}

func TestTitle_Draw(t *testing.T) {
	p := newTestPlatform(t)
	title := NewTitle(TransitionOptions{})
	assert.ErrorIs(t, title.Draw(p), atlas.ErrAtlasNotInitialized)

	_, err := p.Atlas.Initialize(newTestSource(t))
	require.NoError(t, err)
	assert.NoError(t, title.Draw(p))
}
