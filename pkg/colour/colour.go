// Package colour provides the colour model shared by the palette engine:
// 8-bit RGB and RGBA values, packed integer forms, HSL conversion and the
// WCAG luminance and contrast maths used to derive readable text colours.
package colour

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// RGB represents an opaque colour with 8 bits per channel.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// RGBA represents a non-premultiplied colour with 8 bits per channel.
type RGBA struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Common colours.
var (
	White = RGB{R: 255, G: 255, B: 255}
	Black = RGB{R: 0, G: 0, B: 0}
)

// FromPacked unpacks a 0xRRGGBB integer. Bits above 24 are ignored.
func FromPacked(v uint32) RGB {
	return RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

// Packed returns the colour as a 0xRRGGBB integer.
func (c RGB) Packed() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// String returns the colour in the format "rgb(r, g, b)".
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Hex returns the colour as a hex string (e.g., "#1a2b3c").
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// WithAlpha returns the colour with the given alpha.
func (c RGB) WithAlpha(a uint8) RGBA {
	return RGBA{R: c.R, G: c.G, B: c.B, A: a}
}

// RGBA implements color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// RGB drops the alpha channel.
func (c RGBA) RGB() RGB {
	return RGB{R: c.R, G: c.G, B: c.B}
}

// ARGB returns the colour as a 0xAARRGGBB integer.
func (c RGBA) ARGB() uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Hex returns the colour as "#rrggbbaa".
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// String returns the colour in the format "rgba(r, g, b, a)" with a in [0,1].
func (c RGBA) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %.2f)", c.R, c.G, c.B, float64(c.A)/255)
}

// MarshalJSON encodes the colour with an additional hex field.
func (c RGBA) MarshalJSON() ([]byte, error) {
	type plain RGBA
	return json.Marshal(struct {
		plain
		Hex string `json:"hex"`
	}{plain: plain(c), Hex: c.Hex()})
}

// ToRGB converts a color.Color to RGB, discarding alpha.
// Translucent colours are un-premultiplied first.
func ToRGB(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// ToRGBA converts a color.Color to a non-premultiplied RGBA.
func ToRGBA(c color.Color) RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{R: n.R, G: n.G, B: n.B, A: n.A}
}

// ParseColour parses a hex colour ("#rrggbb", "#rgb", with or without the
// leading '#') or a CSS/SVG colour name such as "tomato".
func ParseColour(s string) (RGB, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return RGB{}, fmt.Errorf("colour cannot be empty")
	}

	if named, ok := colornames.Map[v]; ok {
		return RGB{R: named.R, G: named.G, B: named.B}, nil
	}

	if !strings.HasPrefix(v, "#") {
		v = "#" + v
	}
	if len(v) == 4 {
		v = string([]byte{'#', v[1], v[1], v[2], v[2], v[3], v[3]})
	}

	c, err := colorful.Hex(v)
	if err != nil {
		return RGB{}, fmt.Errorf("invalid colour %q: expected hex (#rrggbb) or a CSS colour name", s)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}
