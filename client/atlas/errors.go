package atlas

import (
	"errors"
	"fmt"
)

var (
	// ErrLoad is matched by every error produced while loading a sprite sheet.
	ErrLoad = errors.New("atlas load failed")
	// ErrAtlasNotInitialized is returned by any query made before Initialize
	// or after Teardown.
	ErrAtlasNotInitialized = errors.New("atlas not initialized")
	// ErrUnknownTileID is matched by lookups outside the grid.
	ErrUnknownTileID = errors.New("unknown tile id")
	// ErrStaleTile is matched when a tile reference outlived the atlas it was issued by.
	ErrStaleTile = errors.New("stale tile reference")
)

type LoadError struct {
	// Source names the loader that failed.
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load atlas source %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

type UnknownTileError struct {
	ID  int
	Len int
}

func (e *UnknownTileError) Error() string {
	return fmt.Sprintf("unknown tile id %d: valid range is [0, %d)", e.ID, e.Len)
}

func (e *UnknownTileError) Is(target error) bool {
	return target == ErrUnknownTileID
}

type StaleTileError struct {
	ID         int
	Generation uint64
	// Current is the store generation at the time of resolution, zero if torn down.
	Current uint64
	// Foreign is set when the reference was issued by another store.
	Foreign bool
}

func (e *StaleTileError) Error() string {
	if e.Foreign {
		return fmt.Sprintf("stale tile reference %d: issued by another atlas store", e.ID)
	}
	return fmt.Sprintf("stale tile reference %d: generation %d, current %d", e.ID, e.Generation, e.Current)
}

func (e *StaleTileError) Is(target error) bool {
	return target == ErrStaleTile
}
