package stickercolors

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/setanarut/stickercolors/utils"
)

func TestRender(t *testing.T) {
	p := FromEntries([]Entry{
		{Weight: 3, Color: RGBA{255, 0, 0, 255}},
		{Weight: 2, Color: RGBA{0, 255, 0, 0}},
		{Weight: 1, Color: RGBA{0, 0, 255, 128}},
	})
	img, err := p.Render(100, 10)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 10 {
		t.Fatalf("size %dx%d, want 100x10", b.Dx(), b.Dy())
	}

	tests := []struct {
		x    int
		want color.RGBA
	}{
		{0, color.RGBA{255, 0, 0, 255}},
		{32, color.RGBA{255, 0, 0, 255}},
		{33, color.RGBA{0, 255, 0, 255}},
		{66, color.RGBA{0, 0, 255, 255}},
		{98, color.RGBA{0, 0, 255, 255}},
		{99, color.RGBA{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, 5); got != tt.want {
			t.Errorf("pixel x=%d: got %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestRender_EmptyPool(t *testing.T) {
	_, err := Empty().Render(DefaultPreviewWidth, DefaultPreviewHeight)
	if !errors.Is(err, ErrEmptyPool) {
		t.Fatalf("expected ErrEmptyPool, got %v", err)
	}
	if err := Empty().Show(DefaultPreviewWidth, DefaultPreviewHeight); !errors.Is(err, ErrEmptyPool) {
		t.Fatalf("Show: expected ErrEmptyPool, got %v", err)
	}
}

func TestRender_InvalidSize(t *testing.T) {
	p := FromEntries([]Entry{{Weight: 1, Color: RGBA{1, 2, 3, 255}}})
	for _, size := range [][2]int{{0, 10}, {10, 0}, {-5, 5}} {
		if _, err := p.Render(size[0], size[1]); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("size %v: expected ErrInvalidParameter, got %v", size, err)
		}
	}
}

func TestSavePreview(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.png")
	p := FromEntries([]Entry{{Weight: 1, Color: RGBA{10, 20, 30, 255}}})
	if err := p.SavePreview(path, 64, 8); err != nil {
		t.Fatalf("SavePreview: %v", err)
	}
	img, err := utils.ReadImage(path)
	if err != nil {
		t.Fatalf("ReadImage: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 8 {
		t.Errorf("saved preview is %dx%d", b.Dx(), b.Dy())
	}
	r, g, b, _ := img.At(0, 0).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("pixel (0,0): got (%d,%d,%d), want (10,20,30)", r>>8, g>>8, b>>8)
	}
}

func TestSavePreview_BadPath(t *testing.T) {
	p := FromEntries([]Entry{{Weight: 1, Color: RGBA{10, 20, 30, 255}}})
	if err := p.SavePreview(filepath.Join(os.TempDir(), "missing-dir", "x", "p.png"), 8, 8); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
