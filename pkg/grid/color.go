package grid

import (
	"fmt"
	"image/color"
	"strings"
)

// RGB is an opaque 8-bit color. Alpha is a property of the canvas and the
// cell bitmaps, never of a configured color.
type RGB struct {
	R, G, B uint8
}

// NRGBA converts the color to an opaque color.NRGBA.
func (c RGB) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Hex returns the color as a "#rrggbb" string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Common colors used as defaults.
var (
	White = RGB{0xff, 0xff, 0xff}
	Black = RGB{0x00, 0x00, 0x00}
)

// ParseHex parses a "#rrggbb" or "rrggbb" color string.
// The short "#rgb" form is also accepted.
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 6:
		var c RGB
		if _, err := fmt.Sscanf(h, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
			return RGB{}, fmt.Errorf("invalid color %q", s)
		}
		return c, nil
	case 3:
		var r, g, b uint8
		if _, err := fmt.Sscanf(h, "%1x%1x%1x", &r, &g, &b); err != nil {
			return RGB{}, fmt.Errorf("invalid color %q", s)
		}
		return RGB{r * 0x11, g * 0x11, b * 0x11}, nil
	}
	return RGB{}, fmt.Errorf("invalid color %q", s)
}
