package palette

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/jmylchreest/swatch/pkg/colour"
)

const (
	// DefaultQuantizeBits is the default channel width of quantized colours,
	// giving a 2^15 colour space.
	DefaultQuantizeBits = 5

	// MinQuantizeBits and MaxQuantizeBits bound the channel width.
	MinQuantizeBits = 1
	MaxQuantizeBits = 8

	// minSamplesPerShard keeps tiny inputs on a single goroutine.
	minSamplesPerShard = 4096
)

// Histogram maps quantized colours to the number of samples that fell into
// them. A Histogram is not modified once built; Filter returns a new one.
type Histogram struct {
	bits   int
	counts map[uint32]int
}

// BuildHistogram quantizes every sample to bits per channel and counts the
// populations. Alpha is ignored. An empty input yields an empty histogram.
func BuildHistogram(samples []colour.RGBA, bits int) Histogram {
	h := Histogram{bits: bits, counts: make(map[uint32]int)}
	for _, s := range samples {
		h.counts[quantizeFromRGB888(s.R, s.G, s.B, bits)]++
	}
	return h
}

// BuildHistogramParallel builds the same histogram as BuildHistogram using up
// to workers goroutines over contiguous shards of samples. Per-shard counts
// are merged by addition, so the result does not depend on the sharding.
func BuildHistogramParallel(samples []colour.RGBA, bits, workers int) Histogram {
	shards := min(workers, len(samples)/minSamplesPerShard)
	if shards <= 1 {
		return BuildHistogram(samples, bits)
	}

	locals := make([]Histogram, shards)
	var wg sync.WaitGroup
	for shard := range shards {
		start, end := splitRange(len(samples), shards, shard)
		wg.Add(1)
		go func(shard, start, end int) {
			defer wg.Done()
			locals[shard] = BuildHistogram(samples[start:end], bits)
		}(shard, start, end)
	}
	wg.Wait()

	merged := Histogram{bits: bits, counts: make(map[uint32]int)}
	for _, local := range locals {
		merged.merge(local)
	}
	return merged
}

// splitRange returns the bounds of part index of total split into parts.
func splitRange(total, parts, index int) (int, int) {
	size := total / parts
	remainder := total % parts
	start := index*size + min(index, remainder)
	end := start + size
	if index < remainder {
		end++
	}
	return start, end
}

func (h Histogram) merge(other Histogram) {
	for c, n := range other.counts {
		h.counts[c] += n
	}
}

// Bits returns the channel width of the quantized colours.
func (h Histogram) Bits() int {
	return h.bits
}

// Len returns the number of distinct quantized colours.
func (h Histogram) Len() int {
	return len(h.counts)
}

// Count returns the population of a quantized colour.
func (h Histogram) Count(c uint32) int {
	return h.counts[c]
}

// Total returns the sum of all populations.
func (h Histogram) Total() int {
	total := 0
	for _, n := range h.counts {
		total += n
	}
	return total
}

// Colours returns the distinct quantized colours in ascending order.
func (h Histogram) Colours() []uint32 {
	return slices.Sorted(maps.Keys(h.counts))
}

// RGB widens a quantized colour back to 8 bits per channel.
func (h Histogram) RGB(c uint32) colour.RGB {
	return approximateToRGB888(quantizedRed(c, h.bits), quantizedGreen(c, h.bits), quantizedBlue(c, h.bits), h.bits)
}

// Filter returns a histogram without the colours rejected by any filter.
// Filters see each quantized colour widened to 8 bits, plus its HSL.
func (h Histogram) Filter(filters []Filter) (Histogram, error) {
	if len(filters) == 0 || len(h.counts) == 0 {
		return h, nil
	}

	colours := h.Colours()
	rgbs := make([]colour.RGB, len(colours))
	hsls := make([]colour.HSL, len(colours))
	allowed := make([]bool, len(colours))
	for i, c := range colours {
		rgbs[i] = h.RGB(c)
		hsls[i] = colour.ToHSL(rgbs[i])
		allowed[i] = true
	}

	for _, f := range filters {
		if bf, ok := f.(BatchFilter); ok {
			result, err := bf.AllowedColours(rgbs, hsls)
			if err != nil {
				return Histogram{}, fmt.Errorf("filter failed: %w", err)
			}
			if len(result) != len(colours) {
				return Histogram{}, fmt.Errorf("filter returned %d results for %d colours", len(result), len(colours))
			}
			for i, ok := range result {
				allowed[i] = allowed[i] && ok
			}
			continue
		}

		for i := range colours {
			if allowed[i] && !f.IsAllowed(rgbs[i], hsls[i]) {
				allowed[i] = false
			}
		}
	}

	filtered := Histogram{bits: h.bits, counts: make(map[uint32]int, len(colours))}
	for i, c := range colours {
		if allowed[i] {
			filtered.counts[c] = h.counts[c]
		}
	}
	return filtered, nil
}

// quantizeFromRGB888 packs an 8-bit colour at the reduced channel width.
func quantizeFromRGB888(r, g, b uint8, bits int) uint32 {
	qr := modifyWordWidth(int(r), 8, bits)
	qg := modifyWordWidth(int(g), 8, bits)
	qb := modifyWordWidth(int(b), 8, bits)
	return uint32(qr<<(2*bits) | qg<<bits | qb)
}

func approximateToRGB888(r, g, b, bits int) colour.RGB {
	return colour.RGB{
		R: uint8(modifyWordWidth(r, bits, 8)),
		G: uint8(modifyWordWidth(g, bits, 8)),
		B: uint8(modifyWordWidth(b, bits, 8)),
	}
}

func quantizedRed(c uint32, bits int) int {
	return int(c>>(2*bits)) & wordMask(bits)
}

func quantizedGreen(c uint32, bits int) int {
	return int(c>>bits) & wordMask(bits)
}

func quantizedBlue(c uint32, bits int) int {
	return int(c) & wordMask(bits)
}

func wordMask(bits int) int {
	return (1 << bits) - 1
}

// modifyWordWidth shifts a channel value between widths, keeping the most
// significant bits when narrowing.
func modifyWordWidth(value, currentWidth, targetWidth int) int {
	var v int
	if targetWidth > currentWidth {
		v = value << (targetWidth - currentWidth)
	} else {
		v = value >> (currentWidth - targetWidth)
	}
	return v & wordMask(targetWidth)
}
