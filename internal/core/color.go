package core

import "image/color"

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// palette holds the xterm RGB values of each color, for pixel front-ends.
var palette = [...]color.RGBA{
	ColorDefault:       {0xe5, 0xe5, 0xe5, 0xff},
	ColorRed:           {0xcd, 0x00, 0x00, 0xff},
	ColorGreen:         {0x00, 0xcd, 0x00, 0xff},
	ColorYellow:        {0xcd, 0xcd, 0x00, 0xff},
	ColorBlue:          {0x00, 0x00, 0xee, 0xff},
	ColorMagenta:       {0xcd, 0x00, 0xcd, 0xff},
	ColorCyan:          {0x00, 0xcd, 0xcd, 0xff},
	ColorWhite:         {0xe5, 0xe5, 0xe5, 0xff},
	ColorBrightRed:     {0xff, 0x00, 0x00, 0xff},
	ColorBrightGreen:   {0x00, 0xff, 0x00, 0xff},
	ColorBrightYellow:  {0xff, 0xff, 0x00, 0xff},
	ColorBrightBlue:    {0x5c, 0x5c, 0xff, 0xff},
	ColorBrightMagenta: {0xff, 0x00, 0xff, 0xff},
	ColorBrightCyan:    {0x00, 0xff, 0xff, 0xff},
	ColorBrightWhite:   {0xff, 0xff, 0xff, 0xff},
	ColorOrange:        {0xff, 0x87, 0x00, 0xff},
	ColorGray:          {0x8a, 0x8a, 0x8a, 0xff},
}

// RGBA returns the opaque RGB value of the color. Unknown colors map to the
// default foreground.
func (c Color) RGBA() color.RGBA {
	if int(c) >= len(palette) {
		return palette[ColorDefault]
	}
	return palette[c]
}
