package image

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/draw"

	"github.com/jmylchreest/swatch/pkg/colour"
)

// DefaultResizeArea is the pixel area images are scaled down to before
// sampling.
const DefaultResizeArea = 112 * 112

// Sampler turns an image into colour samples.
type Sampler struct {
	// ResizeArea is the maximum number of pixels sampled. Larger images are
	// scaled down keeping their aspect ratio. Zero or less disables scaling.
	ResizeArea int

	// Region restricts sampling to part of the image. The empty rectangle
	// samples the whole image.
	Region image.Rectangle

	// Scaler resamples large images. Defaults to draw.ApproxBiLinear.
	Scaler draw.Scaler
}

// NewSampler returns a Sampler with the default resize area.
func NewSampler() Sampler {
	return Sampler{ResizeArea: DefaultResizeArea}
}

// Samples crops img to the region, scales it down to the resize area and
// returns its pixels, row by row, as non-premultiplied colours.
func (s Sampler) Samples(img image.Image) ([]colour.RGBA, error) {
	src := img.Bounds()
	if !s.Region.Empty() {
		region := s.Region.Add(src.Min).Intersect(src)
		if region.Empty() {
			return nil, fmt.Errorf("region %v lies outside the %dx%d image", s.Region, src.Dx(), src.Dy())
		}
		src = region
	}
	if src.Empty() {
		return nil, nil
	}

	w, h := scaledSize(src.Dx(), src.Dy(), s.ResizeArea)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == src.Dx() && h == src.Dy() {
		draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Src)
	} else {
		scaler := s.Scaler
		if scaler == nil {
			scaler = draw.ApproxBiLinear
		}
		scaler.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
	}

	samples := make([]colour.RGBA, 0, w*h)
	for y := 0; y < h; y++ {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+w*4]
		for x := 0; x < len(row); x += 4 {
			samples = append(samples, colour.RGBA{R: row[x], G: row[x+1], B: row[x+2], A: row[x+3]})
		}
	}
	return samples, nil
}

// scaledSize shrinks w x h so its area does not exceed maxArea.
func scaledSize(w, h, maxArea int) (int, int) {
	if maxArea <= 0 || w*h <= maxArea {
		return w, h
	}
	ratio := math.Sqrt(float64(maxArea) / float64(w*h))
	sw := max(1, int(math.Floor(float64(w)*ratio)))
	sh := max(1, int(math.Floor(float64(h)*ratio)))
	return sw, sh
}

// ParseRegion parses "x0,y0,x1,y1" into a rectangle relative to the image
// origin. The empty string yields the empty rectangle.
func ParseRegion(s string) (image.Rectangle, error) {
	if strings.TrimSpace(s) == "" {
		return image.Rectangle{}, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("invalid region %q: expected x0,y0,x1,y1", s)
	}

	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return image.Rectangle{}, fmt.Errorf("invalid region %q: %q is not a non-negative integer", s, p)
		}
		v[i] = n
	}

	r := image.Rect(v[0], v[1], v[2], v[3])
	if r.Empty() {
		return image.Rectangle{}, fmt.Errorf("invalid region %q: zero area", s)
	}
	return r, nil
}
