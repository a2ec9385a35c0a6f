package palette

import (
	"math"

	"github.com/jmylchreest/swatch/pkg/colour"
)

// Filter decides whether a colour may take part in palette generation.
type Filter interface {
	IsAllowed(rgb colour.RGB, hsl colour.HSL) bool
}

// FilterFunc adapts a function to the Filter interface.
type FilterFunc func(rgb colour.RGB, hsl colour.HSL) bool

// IsAllowed calls f.
func (f FilterFunc) IsAllowed(rgb colour.RGB, hsl colour.HSL) bool {
	return f(rgb, hsl)
}

// BatchFilter is implemented by filters that evaluate many colours at once
// and may fail, such as out-of-process plugins. When a filter implements
// BatchFilter, AllowedColours is used instead of IsAllowed.
type BatchFilter interface {
	Filter
	AllowedColours(rgbs []colour.RGB, hsls []colour.HSL) ([]bool, error)
}

const (
	blackMaxLightness = 0.05
	whiteMinLightness = 0.95

	iLineMinHue        = 10
	iLineMaxHue        = 37
	iLineMaxSaturation = 0.82
)

// DefaultFilter rejects colours close to black or white, and colours close to
// the red side of the I line (skin tones).
var DefaultFilter Filter = FilterFunc(func(_ colour.RGB, hsl colour.HSL) bool {
	return !isBlack(hsl) && !isWhite(hsl) && !isNearRedILine(hsl)
})

func isBlack(hsl colour.HSL) bool {
	return hsl.L <= blackMaxLightness
}

func isWhite(hsl colour.HSL) bool {
	return hsl.L >= whiteMinLightness
}

func isNearRedILine(hsl colour.HSL) bool {
	return hsl.H >= iLineMinHue && hsl.H <= iLineMaxHue && hsl.S <= iLineMaxSaturation
}

// ExcludeFilter rejects colours within Distance (Euclidean, 8-bit RGB) of
// any colour in Colours.
type ExcludeFilter struct {
	Colours  []colour.RGB
	Distance float64
}

// IsAllowed reports whether rgb is far enough from every excluded colour.
func (f ExcludeFilter) IsAllowed(rgb colour.RGB, _ colour.HSL) bool {
	for _, c := range f.Colours {
		if rgbDistance(rgb, c) <= f.Distance {
			return false
		}
	}
	return true
}

func rgbDistance(a, b colour.RGB) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}
