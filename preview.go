package stickercolors

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/pkg/browser"
	"github.com/setanarut/stickercolors/utils"
)

const (
	DefaultPreviewWidth  = 1024
	DefaultPreviewHeight = 128
)

// Render draws the pool as equal-width vertical swatches, most relevant on
// the left, on a white width×height canvas. Alpha is ignored.
func (p *ColorPool) Render(width, height int) (*image.RGBA, error) {
	if len(p.entries) == 0 {
		return nil, fmt.Errorf("render: %w", ErrEmptyPool)
	}
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: preview size must be positive, got %dx%d", ErrInvalidParameter, width, height)
	}
	palette := make([]color.Color, len(p.entries))
	for i, c := range p.RGB() {
		palette[i] = c.Opaque()
	}
	img, err := utils.RenderSwatches(palette, width, height)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return img, nil
}

// SavePreview writes the Render output to path as PNG.
func (p *ColorPool) SavePreview(path string, width, height int) error {
	img, err := p.Render(width, height)
	if err != nil {
		return err
	}
	if err := utils.SaveImage(img, path); err != nil {
		return fmt.Errorf("save preview: %w", err)
	}
	return nil
}

// Show renders the pool to a temporary PNG and opens it with the system
// image viewer. The file is left behind for the viewer to read.
func (p *ColorPool) Show(width, height int) error {
	img, err := p.Render(width, height)
	if err != nil {
		return err
	}
	f, err := os.CreateTemp("", "stickercolors-*.png")
	if err != nil {
		return fmt.Errorf("show: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("show: encode preview: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("show: %w", err)
	}
	p.log().Debug("opening preview", "path", f.Name())
	if err := browser.OpenFile(f.Name()); err != nil {
		return fmt.Errorf("show: open viewer: %w", err)
	}
	return nil
}
