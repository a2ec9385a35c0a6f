package palette

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jmylchreest/swatch/pkg/colour"
)

// Swatch is a representative colour of an image together with the number of
// samples it stands for. Swatches are immutable; text colours are computed on
// first use.
type Swatch struct {
	rgb        colour.RGB
	hsl        colour.HSL
	population int

	textOnce  sync.Once
	titleText colour.RGBA
	bodyText  colour.RGBA
}

// NewSwatch creates a swatch from an 8-bit colour.
func NewSwatch(rgb colour.RGB, population int) *Swatch {
	return &Swatch{
		rgb:        rgb,
		hsl:        colour.ToHSL(rgb),
		population: population,
	}
}

// NewSwatchFromHSL creates a swatch from an HSL colour.
func NewSwatchFromHSL(hsl colour.HSL, population int) *Swatch {
	return NewSwatch(colour.FromHSL(hsl), population)
}

// RGB returns the swatch colour.
func (s *Swatch) RGB() colour.RGB {
	return s.rgb
}

// Packed returns the swatch colour as 0xRRGGBB.
func (s *Swatch) Packed() uint32 {
	return s.rgb.Packed()
}

// HSL returns the swatch colour in HSL space.
func (s *Swatch) HSL() colour.HSL {
	return s.hsl
}

// Population returns the number of samples represented by the swatch.
func (s *Swatch) Population() int {
	return s.population
}

// Hex returns the swatch colour as #rrggbb.
func (s *Swatch) Hex() string {
	return s.rgb.Hex()
}

// TitleTextColour returns a white or black colour, with the lowest alpha that
// keeps large text legible on the swatch.
func (s *Swatch) TitleTextColour() colour.RGBA {
	s.ensureTextColours()
	return s.titleText
}

// BodyTextColour returns a white or black colour, with the lowest alpha that
// keeps body text legible on the swatch.
func (s *Swatch) BodyTextColour() colour.RGBA {
	s.ensureTextColours()
	return s.bodyText
}

func (s *Swatch) ensureTextColours() {
	s.textOnce.Do(func() {
		s.titleText, s.bodyText = textColours(s.rgb)
	})
}

// textColours prefers white for both roles, then black for both, and only
// mixes them when neither works for both.
func textColours(bg colour.RGB) (title, body colour.RGBA) {
	lightBody, lightBodyOK := colour.MinimumAlpha(colour.White, bg, colour.MinContrastBodyText)
	lightTitle, lightTitleOK := colour.MinimumAlpha(colour.White, bg, colour.MinContrastTitleText)
	if lightBodyOK && lightTitleOK {
		return colour.White.WithAlpha(lightTitle), colour.White.WithAlpha(lightBody)
	}

	darkBody, darkBodyOK := colour.MinimumAlpha(colour.Black, bg, colour.MinContrastBodyText)
	darkTitle, darkTitleOK := colour.MinimumAlpha(colour.Black, bg, colour.MinContrastTitleText)
	if darkBodyOK && darkTitleOK {
		return colour.Black.WithAlpha(darkTitle), colour.Black.WithAlpha(darkBody)
	}

	if lightTitleOK {
		title = colour.White.WithAlpha(lightTitle)
	} else {
		title = colour.Black.WithAlpha(alphaOrOpaque(darkTitle, darkTitleOK))
	}
	if lightBodyOK {
		body = colour.White.WithAlpha(lightBody)
	} else {
		body = colour.Black.WithAlpha(alphaOrOpaque(darkBody, darkBodyOK))
	}
	return title, body
}

func alphaOrOpaque(alpha uint8, ok bool) uint8 {
	if ok {
		return alpha
	}
	return 255
}

// Equal reports whether two swatches have the same population and colour.
func (s *Swatch) Equal(other *Swatch) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.population == other.population && s.rgb == other.rgb
}

func (s *Swatch) key() swatchKey {
	return swatchKey{population: s.population, rgb: s.rgb.Packed()}
}

type swatchKey struct {
	population int
	rgb        uint32
}

// String implements fmt.Stringer.
func (s *Swatch) String() string {
	return fmt.Sprintf("Swatch{%s %s population=%d}", s.rgb.Hex(), s.hsl, s.population)
}

type swatchJSON struct {
	Hex        string      `json:"hex"`
	RGB        colour.RGB  `json:"rgb"`
	HSL        colour.HSL  `json:"hsl"`
	Population int         `json:"population"`
	TitleText  colour.RGBA `json:"title_text"`
	BodyText   colour.RGBA `json:"body_text"`
}

// MarshalJSON implements json.Marshaler.
func (s *Swatch) MarshalJSON() ([]byte, error) {
	return json.Marshal(swatchJSON{
		Hex:        s.Hex(),
		RGB:        s.rgb,
		HSL:        s.hsl,
		Population: s.population,
		TitleText:  s.TitleTextColour(),
		BodyText:   s.BodyTextColour(),
	})
}
