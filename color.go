package stickercolors

import (
	"cmp"
	"fmt"
	"image/color"
)

// RGBA is an 8-bit colour with straight (non-premultiplied) alpha.
type RGBA struct {
	R, G, B, A uint8
}

// RGB is an RGBA with the alpha channel dropped.
type RGB struct {
	R, G, B uint8
}

func (c RGBA) RGB() RGB {
	return RGB{R: c.R, G: c.G, B: c.B}
}

func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Hex returns "#rrggbbaa".
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func (c RGBA) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %d)", c.R, c.G, c.B, c.A)
}

// Compare orders colours lexicographically by R, G, B, then A.
func (c RGBA) Compare(o RGBA) int {
	if d := cmp.Compare(c.R, o.R); d != 0 {
		return d
	}
	if d := cmp.Compare(c.G, o.G); d != 0 {
		return d
	}
	if d := cmp.Compare(c.B, o.B); d != 0 {
		return d
	}
	return cmp.Compare(c.A, o.A)
}

func fromNRGBA(c color.NRGBA) RGBA {
	return RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Opaque returns the colour as a fully opaque color.RGBA, for drawing.
func (c RGB) Opaque() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Hex returns "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}
