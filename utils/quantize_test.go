package utils

import (
	"image"
	"image/color"
	"testing"
)

func gradientImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 255 / w), uint8(y * 255 / h), uint8((x + y) * 4), uint8(255 - x)})
		}
	}
	return img
}

func sumCounts(m map[color.NRGBA]int) int {
	total := 0
	for _, n := range m {
		total += n
	}
	return total
}

func TestHistogram(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{1, 2, 3, 4})
	img.SetNRGBA(1, 0, color.NRGBA{1, 2, 3, 4})
	img.SetNRGBA(2, 0, color.NRGBA{9, 9, 9, 255})

	h := Histogram(img)
	if len(h) != 2 || h[color.NRGBA{1, 2, 3, 4}] != 2 || h[color.NRGBA{9, 9, 9, 255}] != 1 {
		t.Errorf("got %v", h)
	}
}

func TestHistogram_SubImage(t *testing.T) {
	img := gradientImage(8, 8)
	sub := img.SubImage(image.Rect(2, 2, 5, 4)).(*image.NRGBA)
	if got := sumCounts(Histogram(sub)); got != 6 {
		t.Errorf("counted %d pixels, want 6", got)
	}
}

func TestQuantizers(t *testing.T) {
	quantizers := []struct {
		name string
		q    Quantizer
	}{
		{"mediancut", MedianCutQuantizer{}},
		{"dominant", DominantQuantizer{}},
	}
	img := gradientImage(32, 16)

	for _, qt := range quantizers {
		t.Run(qt.name, func(t *testing.T) {
			for _, n := range []int{1, 4, 16} {
				got, err := qt.q.Quantize(img, n)
				if err != nil {
					t.Fatalf("max=%d: %v", n, err)
				}
				if len(got) == 0 || len(got) > n {
					t.Errorf("max=%d: got %d colors", n, len(got))
				}
				if total := sumCounts(got); total != 32*16 {
					t.Errorf("max=%d: counted %d pixels, want %d", n, total, 32*16)
				}
			}
		})
	}
}

func TestQuantizers_FewColorsAreExact(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	img.SetNRGBA(1, 0, color.NRGBA{0, 255, 0, 128})
	img.SetNRGBA(2, 0, color.NRGBA{0, 255, 0, 128})

	for _, q := range []Quantizer{MedianCutQuantizer{}, DominantQuantizer{}} {
		got, err := q.Quantize(img, 16)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 || got[color.NRGBA{255, 0, 0, 255}] != 1 || got[color.NRGBA{0, 255, 0, 128}] != 2 {
			t.Errorf("%T: got %v", q, got)
		}
	}
}

func TestMedianCut_SeparatesAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	img.SetNRGBA(0, 0, color.NRGBA{10, 10, 10, 0})
	img.SetNRGBA(1, 0, color.NRGBA{12, 10, 10, 0})
	img.SetNRGBA(2, 0, color.NRGBA{10, 10, 10, 255})
	img.SetNRGBA(3, 0, color.NRGBA{12, 10, 10, 255})

	got, err := MedianCutQuantizer{}.Quantize(img, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := map[color.NRGBA]int{
		{11, 10, 10, 0}:   2,
		{11, 10, 10, 255}: 2,
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for c, n := range want {
		if got[c] != n {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

func TestQuantize_InvalidMax(t *testing.T) {
	img := gradientImage(4, 4)
	for _, q := range []Quantizer{MedianCutQuantizer{}, DominantQuantizer{}} {
		if _, err := q.Quantize(img, 0); err == nil {
			t.Errorf("%T: expected error for max 0", q)
		}
	}
}

func TestParseQuantizeMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    QuantizeMethod
		wantErr bool
	}{
		{"", QuantizeMedianCut, false},
		{"mediancut", QuantizeMedianCut, false},
		{"Dominant", QuantizeDominantColor, false},
		{"octree", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseQuantizeMethod(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("%q: err = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("%q: got %v, want %v", tt.in, got, tt.want)
		}
		if !tt.wantErr && got.String() == "" {
			t.Errorf("%q: empty name", tt.in)
		}
	}
}
