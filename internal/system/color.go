package system

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB returns the display color of body i: its configured hex color, or a hue spread around
// the wheel by index when unset or unparsable.
func (d *Definition) RGB(i int) (r, g, b uint8) {
	if i >= 0 && i < len(d.Bodies) && d.Bodies[i].Color != "" {
		if c, err := colorful.Hex(d.Bodies[i].Color); err == nil {
			return c.RGB255()
		}
	}
	return PaletteRGB(i)
}

// PaletteRGB picks a fallback color for the i-th body using golden-angle hue steps.
func PaletteRGB(i int) (r, g, b uint8) {
	hue := math.Mod(float64(i)*137.508, 360)
	return colorful.Hcl(hue, 0.6, 0.75).Clamped().RGB255()
}
