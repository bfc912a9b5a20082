package states

import (
	"errors"

	"github.com/cbodonnell/hexfantasy/client/platform"
)

// ErrQuit is returned from Update when the user asked to leave the game.
var ErrQuit = errors.New("quit")

// State is one mode of the client. The host calls Update then Draw once per
// frame. A non-nil State returned from Update replaces the receiver, which is
// discarded.
//
// The set of states is closed: Loading, Title, Map, Error and Transition.
type State interface {
	// Name identifies the kind of state for logs and the debug overlay.
	Name() string
	Update(p *platform.Platform) (State, error)
	// Draw must not change the state.
	Draw(p *platform.Platform) error
	// Clone returns an independent copy with the same observable state.
	Clone() State

	sealed()
}
