package stickercolors

import "github.com/lucasb-eyer/go-colorful"

// HSV holds hue in degrees [0, 360) and saturation and value as
// percentages [0, 100], the way image editors such as GIMP show them.
type HSV struct {
	H, S, V float64
}

// RGBToHSV converts c to HSV. Hue is 0 for greys, where it is undefined.
func RGBToHSV(c RGB) HSV {
	h, s, v := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hsv()
	return HSV{H: h, S: s * 100, V: v * 100}
}
