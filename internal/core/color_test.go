package core

import (
	"image/color"
	"testing"
)

func TestColorRGBA(t *testing.T) {
	tests := []struct {
		c    Color
		want color.RGBA
	}{
		{ColorBrightRed, color.RGBA{0xff, 0x00, 0x00, 0xff}},
		{ColorOrange, color.RGBA{0xff, 0x87, 0x00, 0xff}},
		{ColorGray, color.RGBA{0x8a, 0x8a, 0x8a, 0xff}},
		{Color(200), color.RGBA{0xe5, 0xe5, 0xe5, 0xff}},
	}
	for _, tt := range tests {
		if got := tt.c.RGBA(); got != tt.want {
			t.Errorf("Color(%d).RGBA() = %v, want %v", tt.c, got, tt.want)
		}
	}

	for c := ColorDefault; c <= ColorGray; c++ {
		if c.RGBA().A != 0xff {
			t.Errorf("Color(%d) is not opaque", c)
		}
	}
}
