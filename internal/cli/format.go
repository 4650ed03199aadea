package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/setanarut/stickercolors"
)

// Output formats accepted by --format.
const (
	formatHex  = "hex"
	formatRGB  = "rgb"
	formatRGBA = "rgba"
	formatJSON = "json"
)

const (
	ansiReset    = "\033[0m"
	ansiBgPrefix = "\033[48;2;"
	ansiFgPrefix = "\033[38;2;"
	swatchWidth  = 8
)

func validFormat(name string) bool {
	switch name {
	case formatHex, formatRGB, formatRGBA, formatJSON:
		return true
	}
	return false
}

type jsonEntry struct {
	Weight int      `json:"weight"`
	Hex    string   `json:"hex"`
	RGBA   [4]uint8 `json:"rgba"`
	HSV    jsonHSV  `json:"hsv"`
}

type jsonHSV struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
}

type printOptions struct {
	format  string
	weights bool
	preview bool
}

func printPool(w io.Writer, pool *stickercolors.ColorPool, opt printOptions) error {
	if opt.format == formatJSON {
		return writeJSON(w, pool)
	}
	for _, e := range pool.Entries() {
		var b strings.Builder
		if opt.preview {
			b.WriteString(swatch(e.Color.RGB()))
			b.WriteByte(' ')
		}
		if opt.weights {
			fmt.Fprintf(&b, "%d\t", e.Weight)
		}
		b.WriteString(formatColor(e.Color, opt.format))
		if _, err := fmt.Fprintln(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func formatColor(c stickercolors.RGBA, format string) string {
	switch format {
	case formatRGB:
		return c.RGB().String()
	case formatRGBA:
		return c.String()
	default:
		return c.RGB().Hex()
	}
}

func writeJSON(w io.Writer, pool *stickercolors.ColorPool) error {
	out := make([]jsonEntry, 0, pool.Len())
	for _, e := range pool.Entries() {
		hsv := stickercolors.RGBToHSV(e.Color.RGB())
		out = append(out, jsonEntry{
			Weight: e.Weight,
			Hex:    e.Color.Hex(),
			RGBA:   [4]uint8{e.Color.R, e.Color.G, e.Color.B, e.Color.A},
			HSV:    jsonHSV{H: hsv.H, S: hsv.S, V: hsv.V},
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// swatch is a solid truecolour block labelled with the hex code in black or
// white, whichever reads better.
func swatch(c stickercolors.RGB) string {
	fg := "255;255;255"
	if hsv := stickercolors.RGBToHSV(c); hsv.V > 60 && hsv.S < 60 {
		fg = "0;0;0"
	}
	label := c.Hex()
	pad := max(0, swatchWidth+2-len(label))
	return fmt.Sprintf("%s%d;%d;%dm%s%sm%s%s%s",
		ansiBgPrefix, c.R, c.G, c.B,
		ansiFgPrefix, fg,
		strings.Repeat(" ", pad/2), label, strings.Repeat(" ", pad-pad/2)) + ansiReset
}
