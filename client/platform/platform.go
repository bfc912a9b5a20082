package platform

import (
	"fmt"
	"image"
	"image/color"

	"github.com/cbodonnell/hexfantasy/client/atlas"
	"github.com/cbodonnell/hexfantasy/client/draw"
	"github.com/cbodonnell/hexfantasy/client/fonts"
	"github.com/cbodonnell/hexfantasy/client/input"
	"github.com/hajimehoshi/ebiten/v2"
)

// Platform bundles the capabilities every state reads from. The host owns it
// and hands the same value to each Update and Draw.
type Platform struct {
	// Screen is the render target. It is only set while a state is drawing.
	Screen *ebiten.Image
	Keys   *input.KeySet
	Atlas  *atlas.Store
	Width  int
	Height int
}

type NewPlatformOptions struct {
	Keys   *input.KeySet
	Atlas  *atlas.Store
	Width  int
	Height int
}

func New(opts NewPlatformOptions) *Platform {
	keys := opts.Keys
	if keys == nil {
		keys = input.NewKeySet()
	}
	store := opts.Atlas
	if store == nil {
		store = atlas.NewStore(atlas.StoreOptions{})
	}
	return &Platform{
		Keys:   keys,
		Atlas:  store,
		Width:  opts.Width,
		Height: opts.Height,
	}
}

func (p *Platform) screen() (*ebiten.Image, error) {
	if p.Screen == nil {
		return nil, fmt.Errorf("no screen: drawing is only allowed during Draw")
	}
	return p.Screen, nil
}

// Text draws s in the normal font.
func (p *Platform) Text(clr color.Color, x, y float64, align draw.Align, s string) error {
	screen, err := p.screen()
	if err != nil {
		return err
	}
	draw.Text(screen, fonts.TTFNormalFont, clr, x, y, align, s)
	return nil
}

// Label draws s in the small font.
func (p *Platform) Label(clr color.Color, x, y float64, align draw.Align, s string) error {
	screen, err := p.screen()
	if err != nil {
		return err
	}
	draw.Text(screen, fonts.TTFSmallFont, clr, x, y, align, s)
	return nil
}

// Heading draws centered text in the title font.
func (p *Platform) Heading(clr color.Color, s string) error {
	screen, err := p.screen()
	if err != nil {
		return err
	}
	draw.Overlay(screen, fonts.MPlusTitleFont, clr, s)
	return nil
}

// Fill covers the whole screen with clr.
func (p *Platform) Fill(clr color.Color) error {
	screen, err := p.screen()
	if err != nil {
		return err
	}
	draw.Fill(screen, clr)
	return nil
}

// Overlay draws large centered text.
func (p *Platform) Overlay(clr color.Color, s string) error {
	screen, err := p.screen()
	if err != nil {
		return err
	}
	draw.Overlay(screen, fonts.TTFLargeFont, clr, s)
	return nil
}

// DrawRegion draws part of img scaled into the destination rectangle.
func (p *Platform) DrawRegion(img *ebiten.Image, sr image.Rectangle, dx, dy, dw, dh float64, flags atlas.DrawFlags) error {
	screen, err := p.screen()
	if err != nil {
		return err
	}
	draw.Region(screen, img, sr, dx, dy, dw, dh, flags.Has(atlas.FlipHorizontal), flags.Has(atlas.FlipVertical))
	return nil
}

func (p *Platform) DrawTile(id, x, y int, flags atlas.DrawFlags) error {
	screen, err := p.screen()
	if err != nil {
		return err
	}
	return p.Atlas.DrawTile(screen, id, x, y, flags)
}
