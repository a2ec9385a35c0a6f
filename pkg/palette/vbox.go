package palette

import (
	"fmt"
	"math"
	"slices"
)

// dimension is a colour channel of a quantized colour.
type dimension int

const (
	dimensionRed dimension = iota
	dimensionGreen
	dimensionBlue
)

// vbox is a tightly fitting box around a contiguous range of the shared
// colour list. lower and upper are inclusive. Boxes created from the same
// list share it and reorder only their own range.
type vbox struct {
	colours []uint32
	hist    Histogram
	bits    int

	lower int
	upper int
	seq   int

	population int
	minRed     int
	maxRed     int
	minGreen   int
	maxGreen   int
	minBlue    int
	maxBlue    int
}

func newVBox(colours []uint32, hist Histogram, lower, upper, seq int) *vbox {
	b := &vbox{
		colours: colours,
		hist:    hist,
		bits:    hist.Bits(),
		lower:   lower,
		upper:   upper,
		seq:     seq,
	}
	b.fit()
	return b
}

func (b *vbox) volume() int {
	return (b.maxRed - b.minRed + 1) * (b.maxGreen - b.minGreen + 1) * (b.maxBlue - b.minBlue + 1)
}

func (b *vbox) colourCount() int {
	return 1 + b.upper - b.lower
}

func (b *vbox) canSplit() bool {
	return b.colourCount() > 1
}

// fit recomputes the channel bounds and population of the box's range.
func (b *vbox) fit() {
	b.minRed, b.minGreen, b.minBlue = math.MaxInt, math.MaxInt, math.MaxInt
	b.maxRed, b.maxGreen, b.maxBlue = math.MinInt, math.MinInt, math.MinInt
	b.population = 0

	for i := b.lower; i <= b.upper; i++ {
		c := b.colours[i]
		b.population += b.hist.Count(c)

		r := quantizedRed(c, b.bits)
		g := quantizedGreen(c, b.bits)
		bl := quantizedBlue(c, b.bits)
		b.minRed, b.maxRed = min(b.minRed, r), max(b.maxRed, r)
		b.minGreen, b.maxGreen = min(b.minGreen, g), max(b.maxGreen, g)
		b.minBlue, b.maxBlue = min(b.minBlue, bl), max(b.maxBlue, bl)
	}
}

// split divides the box at its population-weighted median along the longest
// channel. The receiver keeps the lower half; the upper half is returned.
func (b *vbox) split(seq int) (*vbox, error) {
	if !b.canSplit() {
		return nil, fmt.Errorf("%w: split of single-colour box [%d, %d]", ErrInvariantViolation, b.lower, b.upper)
	}

	splitPoint := b.findSplitPoint()
	upper := newVBox(b.colours, b.hist, splitPoint+1, b.upper, seq)

	b.upper = splitPoint
	b.fit()

	if b.population == 0 || upper.population == 0 {
		return nil, fmt.Errorf("%w: split produced an empty box at index %d", ErrInvariantViolation, splitPoint)
	}
	return upper, nil
}

// longestDimension prefers red, then green, then blue on equal lengths.
func (b *vbox) longestDimension() dimension {
	redLength := b.maxRed - b.minRed
	greenLength := b.maxGreen - b.minGreen
	blueLength := b.maxBlue - b.minBlue

	switch {
	case redLength >= greenLength && redLength >= blueLength:
		return dimensionRed
	case greenLength >= redLength && greenLength >= blueLength:
		return dimensionGreen
	default:
		return dimensionBlue
	}
}

// findSplitPoint sorts the box's range by its longest channel and returns the
// first index where the running population reaches half the box population.
// The result is capped at upper-1 so both halves keep at least one colour.
func (b *vbox) findSplitPoint() int {
	dim := b.longestDimension()

	// Packed colours sort by their most significant channel, so move the
	// chosen channel to the top, sort, then restore RGB order.
	modifySignificantOctet(b.colours, dim, b.lower, b.upper, b.bits)
	slices.Sort(b.colours[b.lower : b.upper+1])
	modifySignificantOctet(b.colours, dim, b.lower, b.upper, b.bits)

	midPoint := b.population / 2
	count := 0
	for i := b.lower; i <= b.upper; i++ {
		count += b.hist.Count(b.colours[i])
		if count >= midPoint {
			return min(b.upper-1, i)
		}
	}
	return b.lower
}

// averageColour reduces the box to a swatch with its population-weighted mean.
func (b *vbox) averageColour() (*Swatch, error) {
	var redSum, greenSum, blueSum, total int
	for i := b.lower; i <= b.upper; i++ {
		c := b.colours[i]
		n := b.hist.Count(c)
		total += n
		redSum += n * quantizedRed(c, b.bits)
		greenSum += n * quantizedGreen(c, b.bits)
		blueSum += n * quantizedBlue(c, b.bits)
	}
	if total == 0 {
		return nil, fmt.Errorf("%w: box [%d, %d] has no population", ErrInvariantViolation, b.lower, b.upper)
	}

	r := int(math.Round(float64(redSum) / float64(total)))
	g := int(math.Round(float64(greenSum) / float64(total)))
	bl := int(math.Round(float64(blueSum) / float64(total)))
	return NewSwatch(approximateToRGB888(r, g, bl, b.bits), total), nil
}

// modifySignificantOctet swaps channels of a[lower..upper] so dim becomes the
// most significant. Applying it twice restores the original packing.
func modifySignificantOctet(a []uint32, dim dimension, lower, upper, bits int) {
	switch dim {
	case dimensionRed:
	case dimensionGreen:
		for i := lower; i <= upper; i++ {
			c := a[i]
			a[i] = uint32(quantizedGreen(c, bits)<<(2*bits) | quantizedRed(c, bits)<<bits | quantizedBlue(c, bits))
		}
	case dimensionBlue:
		for i := lower; i <= upper; i++ {
			c := a[i]
			a[i] = uint32(quantizedBlue(c, bits)<<(2*bits) | quantizedGreen(c, bits)<<bits | quantizedRed(c, bits))
		}
	}
}
