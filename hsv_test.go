package stickercolors

import (
	"math"
	"testing"
)

func TestRGBToHSV(t *testing.T) {
	tests := []struct {
		name string
		in   RGB
		want HSV
	}{
		{"red", RGB{255, 0, 0}, HSV{0, 100, 100}},
		{"green", RGB{0, 255, 0}, HSV{120, 100, 100}},
		{"blue", RGB{0, 0, 255}, HSV{240, 100, 100}},
		{"black", RGB{0, 0, 0}, HSV{0, 0, 0}},
		{"white", RGB{255, 255, 255}, HSV{0, 0, 100}},
		{"mid gray", RGB{51, 51, 51}, HSV{0, 0, 20}},
		{"dark magenta", RGB{128, 0, 128}, HSV{300, 100, 50.196}},
		{"pale orange", RGB{255, 200, 150}, HSV{28.571, 41.176, 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RGBToHSV(tt.in)
			if math.Abs(got.H-tt.want.H) > 0.01 || math.Abs(got.S-tt.want.S) > 0.01 || math.Abs(got.V-tt.want.V) > 0.01 {
				t.Errorf("RGBToHSV(%v) = %+v, want ~%+v", tt.in, got, tt.want)
			}
		})
	}
}
