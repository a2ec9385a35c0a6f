package colour

import "math"

// Minimum contrast ratios recommended by WCAG 2.0 level AA.
const (
	MinContrastBodyText  = 4.5
	MinContrastTitleText = 3.0
)

// alphaSearchIterations bounds the binary search in MinimumAlpha.
// 10 halvings of [0, 255] reach single-step precision.
const alphaSearchIterations = 10

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(c RGB) float64 {
	rf := gammaCorrect(float64(c.R) / 255.0)
	gf := gammaCorrect(float64(c.G) / 255.0)
	bf := gammaCorrect(float64(c.B) / 255.0)

	return 0.2126*rf + 0.7152*gf + 0.0722*bf
}

// gammaCorrect linearises an sRGB component.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two opaque colours.
// Returns a value between 1 and 21.
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(c1, c2 RGB) float64 {
	l1 := Luminance(c1)
	l2 := Luminance(c2)

	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}

// ForegroundContrast returns the contrast of a possibly translucent foreground
// drawn over an opaque background. The foreground is composited first.
func ForegroundContrast(fg RGBA, bg RGB) float64 {
	composite := fg.RGB()
	if fg.A < 0xff {
		composite = Composite(fg, bg.WithAlpha(0xff)).RGB()
	}
	return ContrastRatio(composite, bg)
}

// Composite lays fg over bg using source-over alpha blending.
func Composite(fg, bg RGBA) RGBA {
	fa := int(fg.A)
	ba := int(bg.A)
	a := 0xff - ((0xff - ba) * (0xff - fa) / 0xff)

	return RGBA{
		R: compositeComponent(int(fg.R), fa, int(bg.R), ba, a),
		G: compositeComponent(int(fg.G), fa, int(bg.G), ba, a),
		B: compositeComponent(int(fg.B), fa, int(bg.B), ba, a),
		A: uint8(a),
	}
}

func compositeComponent(fgC, fgA, bgC, bgA, a int) uint8 {
	if a == 0 {
		return 0
	}
	return uint8((0xff*fgC*fgA + bgC*bgA*(0xff-fgA)) / (a * 0xff))
}

// MinimumAlpha finds the smallest alpha for fg, laid over bg, that reaches
// minRatio. The second result is false when even a fully opaque fg falls short.
func MinimumAlpha(fg, bg RGB, minRatio float64) (uint8, bool) {
	if ForegroundContrast(fg.WithAlpha(0xff), bg) < minRatio {
		return 0, false
	}

	lo, hi := 0, 0xff
	for i := 0; i <= alphaSearchIterations && hi-lo > 1; i++ {
		mid := (lo + hi) / 2
		if ForegroundContrast(fg.WithAlpha(uint8(mid)), bg) < minRatio {
			lo = mid
		} else {
			hi = mid
		}
	}

	return uint8(hi), true
}
