package utils

import (
	"cmp"
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"
	"strings"

	"github.com/cenkalti/dominantcolor"
)

// Quantizer reduces an image to a small set of representative colours and
// reports how many pixels fall on each of them. The counts always add up to
// the number of pixels in the image.
type Quantizer interface {
	Quantize(img *image.NRGBA, maxColors int) (map[color.NRGBA]int, error)
}

type QuantizeMethod int

const (
	QuantizeMedianCut QuantizeMethod = iota
	QuantizeDominantColor
)

func (m QuantizeMethod) String() string {
	switch m {
	case QuantizeDominantColor:
		return "dominant"
	default:
		return "mediancut"
	}
}

// ParseQuantizeMethod accepts the names returned by QuantizeMethod.String.
func ParseQuantizeMethod(name string) (QuantizeMethod, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "mediancut":
		return QuantizeMedianCut, nil
	case "dominant", "dominantcolor":
		return QuantizeDominantColor, nil
	default:
		return 0, fmt.Errorf("unknown quantizer %q (valid: mediancut, dominant)", name)
	}
}

func NewQuantizer(m QuantizeMethod) Quantizer {
	switch m {
	case QuantizeDominantColor:
		return DominantQuantizer{}
	default:
		return MedianCutQuantizer{}
	}
}

// Histogram counts every exact colour of img.
func Histogram(img *image.NRGBA) map[color.NRGBA]int {
	hist := make(map[color.NRGBA]int)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		for x := 0; x < b.Dx(); x++ {
			p := img.Pix[off+x*4 : off+x*4+4 : off+x*4+4]
			hist[color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}]++
		}
	}
	return hist
}

// MedianCutQuantizer splits the RGBA colour space of an image into boxes at
// the pixel-weighted median of each box's longest channel. Alpha is treated
// as a fourth axis so translucent regions keep their own palette entries.
type MedianCutQuantizer struct{}

func (MedianCutQuantizer) Quantize(img *image.NRGBA, maxColors int) (map[color.NRGBA]int, error) {
	if maxColors < 1 {
		return nil, fmt.Errorf("max colors must be at least 1, got %d", maxColors)
	}
	hist := Histogram(img)
	if len(hist) <= maxColors {
		return hist, nil
	}

	bins := make([]colorBin, 0, len(hist))
	for c, n := range hist {
		bins = append(bins, colorBin{c: [4]uint8{c.R, c.G, c.B, c.A}, count: n})
	}
	slices.SortFunc(bins, compareBins)

	boxes := buildBoxes(bins, maxColors)
	out := make(map[color.NRGBA]int, len(boxes))
	for _, box := range boxes {
		out[box.mean()] += box.population
	}
	return out, nil
}

type colorBin struct {
	c     [4]uint8
	count int
}

func compareBins(a, b colorBin) int {
	for i := range a.c {
		if d := cmp.Compare(a.c[i], b.c[i]); d != 0 {
			return d
		}
	}
	return 0
}

type colorBox struct {
	bins       []colorBin
	population int
	lo, hi     [4]uint8
}

func newColorBox(bins []colorBin) colorBox {
	box := colorBox{bins: bins, lo: [4]uint8{255, 255, 255, 255}}
	for _, bin := range bins {
		box.population += bin.count
		for i, v := range bin.c {
			box.lo[i] = min(box.lo[i], v)
			box.hi[i] = max(box.hi[i], v)
		}
	}
	return box
}

func (b colorBox) canSplit() bool {
	return len(b.bins) > 1
}

func (b colorBox) longestAxis() (axis, span int) {
	for i := range b.lo {
		if s := int(b.hi[i]) - int(b.lo[i]); s > span {
			axis, span = i, s
		}
	}
	return axis, span
}

// mean is the population-weighted centre of the box, rounded half to even.
func (b colorBox) mean() color.NRGBA {
	var sum [4]float64
	for _, bin := range b.bins {
		for i, v := range bin.c {
			sum[i] += float64(v) * float64(bin.count)
		}
	}
	var out [4]uint8
	for i := range sum {
		out[i] = uint8(math.RoundToEven(sum[i] / float64(b.population)))
	}
	return color.NRGBA{R: out[0], G: out[1], B: out[2], A: out[3]}
}

// buildBoxes keeps splitting the most populated splittable box until there
// are target boxes or nothing left to split.
func buildBoxes(bins []colorBin, target int) []colorBox {
	boxes := []colorBox{newColorBox(bins)}
	for len(boxes) < target {
		best := -1
		for i, box := range boxes {
			if !box.canSplit() {
				continue
			}
			if best < 0 || box.population > boxes[best].population {
				best = i
				continue
			}
			if box.population == boxes[best].population {
				_, s := box.longestAxis()
				_, bs := boxes[best].longestAxis()
				if s > bs {
					best = i
				}
			}
		}
		if best < 0 {
			break
		}
		left, right := splitColorBox(boxes[best])
		boxes[best] = left
		boxes = append(boxes, right)
	}
	return boxes
}

func splitColorBox(box colorBox) (colorBox, colorBox) {
	axis, _ := box.longestAxis()
	slices.SortFunc(box.bins, func(a, b colorBin) int {
		if d := cmp.Compare(a.c[axis], b.c[axis]); d != 0 {
			return d
		}
		return compareBins(a, b)
	})

	half := box.population / 2
	cut, acc := 1, 0
	for i, bin := range box.bins {
		acc += bin.count
		if acc >= half {
			cut = i + 1
			break
		}
	}
	cut = max(1, min(cut, len(box.bins)-1))
	return newColorBox(box.bins[:cut]), newColorBox(box.bins[cut:])
}

// DominantQuantizer takes its palette from cenkalti/dominantcolor and counts
// each pixel against the nearest palette entry. dominantcolor only reports
// opaque colours, so a fully transparent entry is reserved whenever the image
// has transparent pixels.
type DominantQuantizer struct{}

func (DominantQuantizer) Quantize(img *image.NRGBA, maxColors int) (map[color.NRGBA]int, error) {
	if maxColors < 1 {
		return nil, fmt.Errorf("max colors must be at least 1, got %d", maxColors)
	}
	hist := Histogram(img)
	if len(hist) <= maxColors {
		return hist, nil
	}

	transparent := false
	for c := range hist {
		if c.A == 0 {
			transparent = true
			break
		}
	}

	want := maxColors
	if transparent {
		want--
	}
	palette := make([]color.NRGBA, 0, maxColors)
	if want > 0 {
		for _, c := range dominantcolor.FindWeight(img, want) {
			palette = append(palette, color.NRGBA{R: c.RGBA.R, G: c.RGBA.G, B: c.RGBA.B, A: 255})
		}
	}
	if transparent {
		palette = append(palette, color.NRGBA{})
	}
	if len(palette) == 0 {
		// Last resort: a single neutral entry still conserves pixel counts.
		palette = append(palette, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
	}

	out := make(map[color.NRGBA]int, len(palette))
	for c, n := range hist {
		out[palette[nearestNRGBA(palette, c)]] += n
	}
	return out, nil
}

func nearestNRGBA(palette []color.NRGBA, c color.NRGBA) int {
	best, bestD := 0, math.MaxInt
	for i, p := range palette {
		dr := int(p.R) - int(c.R)
		dg := int(p.G) - int(c.G)
		db := int(p.B) - int(c.B)
		da := int(p.A) - int(c.A)
		if d := dr*dr + dg*dg + db*db + da*da; d < bestD {
			best, bestD = i, d
		}
	}
	return best
}
