package draw

import (
	"image"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "Left"
	case AlignCenter:
		return "Center"
	case AlignRight:
		return "Right"
	}
	return "Unknown"
}

// alignOffset returns how far left of x a string of the given width starts.
func alignOffset(align Align, width int) float64 {
	switch align {
	case AlignCenter:
		return float64(width) / 2
	case AlignRight:
		return float64(width)
	default:
		return 0
	}
}

// Text draws s with its baseline at y, aligned horizontally against x.
func Text(dst *ebiten.Image, face font.Face, clr color.Color, x, y float64, align Align, s string) {
	bounds, _ := font.BoundString(face, s)
	width := (bounds.Max.X - bounds.Min.X).Ceil()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x-alignOffset(align, width), y)
	op.ColorScale.ScaleWithColor(clr)
	text.DrawWithOptions(dst, s, face, op)
}

// Overlay draws upper-cased text centered on dst.
func Overlay(dst *ebiten.Image, face font.Face, clr color.Color, s string) {
	t := strings.ToUpper(s)
	bounds, _ := font.BoundString(face, t)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(dst.Bounds().Dx())/2-float64(bounds.Max.X>>6)/2, float64(dst.Bounds().Dy())/2-float64(bounds.Max.Y>>6)/2)
	op.ColorScale.ScaleWithColor(clr)
	text.DrawWithOptions(dst, t, face, op)
}

// RegionGeoM maps the source rectangle sr onto the destination rectangle at
// (dx, dy) with size dw by dh, mirroring in place when flipped.
func RegionGeoM(sr image.Rectangle, dx, dy, dw, dh float64, flipH, flipV bool) ebiten.GeoM {
	sw, sh := float64(sr.Dx()), float64(sr.Dy())
	var g ebiten.GeoM
	if flipH {
		g.Scale(-1, 1)
		g.Translate(sw, 0)
	}
	if flipV {
		g.Scale(1, -1)
		g.Translate(0, sh)
	}
	if sw > 0 && sh > 0 {
		g.Scale(dw/sw, dh/sh)
	}
	g.Translate(dx, dy)
	return g
}

// Region draws the sr part of src scaled into the destination rectangle.
func Region(dst, src *ebiten.Image, sr image.Rectangle, dx, dy, dw, dh float64, flipH, flipV bool) {
	sub := src.SubImage(sr).(*ebiten.Image)
	op := &ebiten.DrawImageOptions{
		GeoM:   RegionGeoM(sr, dx, dy, dw, dh, flipH, flipV),
		Filter: ebiten.FilterNearest,
	}
	dst.DrawImage(sub, op)
}

// Fill covers the whole of dst with clr.
func Fill(dst *ebiten.Image, clr color.Color) {
	b := dst.Bounds()
	vector.DrawFilledRect(dst, float32(b.Min.X), float32(b.Min.Y), float32(b.Dx()), float32(b.Dy()), clr, false)
}

// Frame outlines a rectangle.
func Frame(dst *ebiten.Image, x, y, w, h float64, width float32, clr color.Color) {
	vector.StrokeRect(dst, float32(x), float32(y), float32(w), float32(h), width, clr, false)
}
