package utils

import (
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadImage_PNGRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.png")
	src := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	src.SetNRGBA(1, 1, color.NRGBA{10, 20, 30, 40})
	if err := SaveImage(src, path); err != nil {
		t.Fatalf("SaveImage: %v", err)
	}

	img, err := ReadImage(path)
	if err != nil {
		t.Fatalf("ReadImage: %v", err)
	}
	got := ToNRGBA(img)
	if got.Bounds().Dx() != 4 || got.Bounds().Dy() != 3 {
		t.Fatalf("size %v", got.Bounds())
	}
	if c := got.NRGBAAt(1, 1); c != (color.NRGBA{10, 20, 30, 40}) {
		t.Errorf("pixel: got %v", c)
	}
}

func TestReadImage_JPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.jpg")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := jpeg.Encode(f, image.NewGray(image.Rect(0, 0, 8, 8)), nil); err != nil {
		f.Close()
		t.Fatal(err)
	}
	f.Close()

	img, err := ReadImage(path)
	if err != nil {
		t.Fatalf("ReadImage: %v", err)
	}
	if c := ToNRGBA(img).NRGBAAt(3, 3); c.A != 255 {
		t.Errorf("JPEG pixels must be opaque, got %v", c)
	}
}

func TestReadImage_Errors(t *testing.T) {
	if _, err := ReadImage("/nonexistent/path/image.png"); err == nil {
		t.Error("expected error for missing file")
	}
	path := filepath.Join(t.TempDir(), "corrupt.png")
	if err := os.WriteFile(path, []byte("not a real png"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadImage(path); err == nil {
		t.Error("expected error for corrupt file")
	}
	if _, err := DecodeImage(strings.NewReader("")); err == nil {
		t.Error("expected error for empty stream")
	}
}

func TestToNRGBA(t *testing.T) {
	t.Run("gray is opaque", func(t *testing.T) {
		g := image.NewGray(image.Rect(0, 0, 2, 2))
		g.SetGray(0, 0, color.Gray{Y: 77})
		n := ToNRGBA(g)
		if c := n.NRGBAAt(0, 0); c != (color.NRGBA{77, 77, 77, 255}) {
			t.Errorf("got %v", c)
		}
	})

	t.Run("offset bounds are moved to the origin", func(t *testing.T) {
		src := image.NewRGBA(image.Rect(5, 5, 7, 6))
		src.SetRGBA(6, 5, color.RGBA{1, 2, 3, 255})
		n := ToNRGBA(src)
		if n.Bounds() != image.Rect(0, 0, 2, 1) {
			t.Fatalf("bounds %v", n.Bounds())
		}
		if c := n.NRGBAAt(1, 0); c != (color.NRGBA{1, 2, 3, 255}) {
			t.Errorf("got %v", c)
		}
	})

	t.Run("transparent stays transparent", func(t *testing.T) {
		src := image.NewRGBA(image.Rect(0, 0, 1, 1))
		n := ToNRGBA(src)
		if c := n.NRGBAAt(0, 0); c.A != 0 {
			t.Errorf("got %v", c)
		}
	})
}

func TestRenderSwatches(t *testing.T) {
	palette := []color.Color{color.RGBA{255, 0, 0, 255}, color.RGBA{0, 0, 255, 255}}
	img, err := RenderSwatches(palette, 5, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []color.RGBA{
		{255, 0, 0, 255}, {255, 0, 0, 255},
		{0, 0, 255, 255}, {0, 0, 255, 255},
		{255, 255, 255, 255},
	}
	for x, w := range want {
		if got := img.RGBAAt(x, 1); got != w {
			t.Errorf("x=%d: got %v, want %v", x, got, w)
		}
	}
}

func TestRenderSwatches_NarrowCanvas(t *testing.T) {
	palette := []color.Color{color.Black, color.Black, color.Black}
	img, err := RenderSwatches(palette, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("zero-width swatches should leave the canvas white, got %v", got)
	}
}

func TestRenderSwatches_Errors(t *testing.T) {
	if _, err := RenderSwatches(nil, 10, 10); err == nil {
		t.Error("expected error for empty palette")
	}
	if _, err := RenderSwatches([]color.Color{color.Black}, 0, 10); err == nil {
		t.Error("expected error for zero width")
	}
}
