package colour

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// HSL holds hue in degrees [0, 360), saturation [0, 1] and lightness [0, 1].
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// String returns the colour in the format "hsl(h, s%, l%)".
func (h HSL) String() string {
	return fmt.Sprintf("hsl(%.0f, %.0f%%, %.0f%%)", h.H, h.S*100, h.L*100)
}

// ToHSL converts an RGB colour to HSL.
func ToHSL(c RGB) HSL {
	h, s, l := toColorful(c).Hsl()
	return HSL{H: h, S: s, L: l}
}

// FromHSL converts HSL to the nearest RGB colour.
func FromHSL(h HSL) RGB {
	r, g, b := colorful.Hsl(h.H, clamp01(h.S), clamp01(h.L)).Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
