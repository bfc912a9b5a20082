package game

import (
	"errors"
	"fmt"

	"github.com/cbodonnell/hexfantasy/client/atlas"
	"github.com/cbodonnell/hexfantasy/client/input"
	"github.com/cbodonnell/hexfantasy/client/platform"
	"github.com/cbodonnell/hexfantasy/client/states"
	"github.com/cbodonnell/hexfantasy/pkg/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	DefaultScreenWidth  = 640
	DefaultScreenHeight = 480
)

// Game implements ebiten.Game interface, which has Update, Draw and Layout methods.
type Game struct {
	// debug is a boolean value indicating whether debug mode is enabled.
	debug bool
	// platform is handed to the current state on every Update and Draw.
	platform *platform.Platform
	// state is the current state. It is owned exclusively by the game.
	state states.State
	// drawErr holds the first error raised while drawing, returned by the next Update.
	drawErr error
	// frames counts completed updates.
	frames uint64
}

var _ ebiten.Game = &Game{}

type NewGameOptions struct {
	Debug        bool
	Initial      states.State
	Keys         *input.KeySet
	Atlas        *atlas.Store
	ScreenWidth  int
	ScreenHeight int
}

func NewGame(opts NewGameOptions) (*Game, error) {
	if opts.Initial == nil {
		return nil, fmt.Errorf("failed to create game: no initial state")
	}
	width, height := opts.ScreenWidth, opts.ScreenHeight
	if width <= 0 || height <= 0 {
		width, height = DefaultScreenWidth, DefaultScreenHeight
	}

	g := &Game{
		debug: opts.Debug,
		platform: platform.New(platform.NewPlatformOptions{
			Keys:   opts.Keys,
			Atlas:  opts.Atlas,
			Width:  width,
			Height: height,
		}),
	}
	g.SetState(opts.Initial)
	return g, nil
}

// SetState discards the current state and makes s current.
func (g *Game) SetState(s states.State) {
	if g.state != nil {
		log.Debug("Switching state %s -> %s after %d frames", g.state.Name(), s.Name(), g.frames)
	}
	g.state = s
}

// Current returns the active state.
func (g *Game) Current() states.State {
	return g.state
}

func (g *Game) Platform() *platform.Platform {
	return g.platform
}

func (g *Game) Update() error {
	if g.drawErr != nil {
		err := g.drawErr
		g.drawErr = nil
		return fmt.Errorf("failed to draw state %s: %w", g.state.Name(), err)
	}

	g.platform.Keys.Poll()

	return g.step()
}

// step advances the current state by one frame and swaps in its replacement.
func (g *Game) step() error {
	next, err := g.state.Update(g.platform)
	if err != nil {
		if errors.Is(err, states.ErrQuit) {
			log.Info("Quit requested from state %s", g.state.Name())
			return ebiten.Termination
		}
		return fmt.Errorf("failed to update state %s: %w", g.state.Name(), err)
	}
	g.frames++
	if next != nil {
		g.SetState(next)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.platform.Screen = screen
	defer func() { g.platform.Screen = nil }()

	if err := g.state.Draw(g.platform); err != nil && g.drawErr == nil {
		log.Error("Failed to draw state %s: %v", g.state.Name(), err)
		g.drawErr = err
	}
	if g.debug {
		g.drawDebugOverlay(screen)
	}
}

func (g *Game) drawDebugOverlay(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n   FPS: %0.1f", ebiten.ActualFPS()))
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n   TPS: %0.1f", ebiten.ActualTPS()))
	ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n\n   State: %s", g.state.Name()))

	if w, err := g.platform.Atlas.TileWidth(); err == nil {
		h, _ := g.platform.Atlas.TileHeight()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("\n\n\n\n   Tiles: %dx%d (gen %d)", w, h, g.platform.Atlas.Generation()))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.platform.Width, g.platform.Height
}
