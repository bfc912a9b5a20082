package states

import (
	"errors"
	"testing"

	"github.com/cbodonnell/hexfantasy/client/atlas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoading_Update(t *testing.T) {
	loadErr := &atlas.LoadError{Source: "tiles.png", Err: errors.New("no such file")}

	tests := []struct {
		name        string
		result      *atlas.LoadResult
		closed      bool
		exitOnError bool
		wantState   string
		wantErr     error
	}{
		{name: "pending", wantState: ""},
		{name: "loaded", result: &atlas.LoadResult{}, wantState: "transition"},
		{name: "failed", result: &atlas.LoadResult{Err: loadErr}, wantState: "error"},
		{name: "failed exit", result: &atlas.LoadResult{Err: loadErr}, exitOnError: true, wantErr: atlas.ErrLoad},
		{name: "closed", closed: true, wantState: "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPlatform(t)
			ch := make(chan atlas.LoadResult, 1)
			if tt.result != nil {
				res := *tt.result
				if res.Err == nil {
					res.Source = newTestSource(t)
				}
				ch <- res
			}
			if tt.closed {
				close(ch)
			}

			l := NewLoading(LoadingOptions{
				Results:     ch,
				Next:        NewTitle(TransitionOptions{}),
				ExitOnError: tt.exitOnError,
			})
			next, err := l.Update(p)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, next)
				return
			}
			require.NoError(t, err)
			if tt.wantState == "" {
				assert.Nil(t, next)
				return
			}
			require.NotNil(t, next)
			assert.Equal(t, tt.wantState, next.Name())
		})
	}
}

func TestLoading_InitializesAtlas(t *testing.T) {
	p := newTestPlatform(t)
	ch := make(chan atlas.LoadResult, 1)
	l := NewLoading(LoadingOptions{
		Results:    ch,
		Next:       NewTitle(TransitionOptions{}),
		Transition: TransitionOptions{Frames: 2},
	})

	next, err := l.Update(p)
	require.NoError(t, err)
	require.Nil(t, next)
	_, err = p.Atlas.Atlas()
	assert.ErrorIs(t, err, atlas.ErrAtlasNotInitialized)

	ch <- atlas.LoadResult{Source: newTestSource(t)}
	next, err = l.Update(p)
	require.NoError(t, err)
	tr, ok := next.(*Transition)
	require.True(t, ok)
	assert.Equal(t, "loading", tr.From().Name())
	assert.Equal(t, "title", tr.To().Name())
	assert.Equal(t, 2, tr.Remaining())

	w, err := p.Atlas.TileWidth()
	require.NoError(t, err)
	assert.Equal(t, 100, w)

	require.NoError(t, l.Draw(p))
}

func TestLoading_InitializeFailureIsLoadError(t *testing.T) {
	for _, exitOnError := range []bool{false, true} {
		p := newTestPlatform(t)
		ch := make(chan atlas.LoadResult, 1)
		ch <- atlas.LoadResult{Source: &atlas.Source{}}

		l := NewLoading(LoadingOptions{Results: ch, Next: NewTitle(TransitionOptions{}), ExitOnError: exitOnError})
		next, err := l.Update(p)
		if exitOnError {
			assert.Nil(t, next)
			assert.ErrorIs(t, err, atlas.ErrLoad)
			continue
		}
		require.NoError(t, err)
		errState, ok := next.(*Error)
		require.True(t, ok)
		assert.ErrorIs(t, errState.Err(), atlas.ErrLoad)
	}
}
