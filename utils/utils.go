package utils

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ReadImage opens and decodes the image at path. The file is closed before
// ReadImage returns.
func ReadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()
	return DecodeImage(file)
}

// DecodeImage decodes any registered format (PNG, JPEG, GIF, WebP, BMP, TIFF).
func DecodeImage(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// ToNRGBA converts img to 8-bit non-premultiplied RGBA anchored at the
// origin. Images without an alpha channel come out fully opaque.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

func SaveImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// RenderSwatches draws one vertical swatch per colour, left to right, on a
// white width×height canvas. Every swatch is width/len(palette) pixels wide;
// the remainder on the right stays white.
func RenderSwatches(palette []color.Color, width, height int) (*image.RGBA, error) {
	if len(palette) == 0 {
		return nil, fmt.Errorf("empty palette")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid swatch canvas %dx%d", width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	tile := width / len(palette)
	if tile == 0 {
		return img, nil
	}
	for i, c := range palette {
		r := image.Rect(i*tile, 0, (i+1)*tile, height)
		draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
	}
	return img, nil
}

// SavePalette writes the swatch rendering of palette to filename as PNG.
func SavePalette(palette []color.Color, width, height int, filename string) error {
	img, err := RenderSwatches(palette, width, height)
	if err != nil {
		return err
	}
	return SaveImage(img, filename)
}
