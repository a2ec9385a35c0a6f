package palette

import (
	"fmt"
	"slices"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/swatch/pkg/colour"
)

// DefaultMaximumColourCount is the default upper bound on swatches.
const DefaultMaximumColourCount = 16

// Builder configures and runs palette generation. Create one with NewBuilder
// for samples or NewBuilderFromSwatches for precomputed swatches.
type Builder struct {
	samples     []colour.RGBA
	swatches    []*Swatch
	fromSamples bool

	maxColours int
	bits       int
	workers    int
	filters    []Filter
	targets    []Target
	logger     hclog.Logger
}

// NewBuilder creates a builder that quantizes samples. Samples are not
// modified.
func NewBuilder(samples []colour.RGBA) *Builder {
	return &Builder{
		samples:     samples,
		fromSamples: true,
		maxColours:  DefaultMaximumColourCount,
		bits:        DefaultQuantizeBits,
		filters:     []Filter{DefaultFilter},
		targets:     StandardTargets(),
		logger:      hclog.NewNullLogger(),
	}
}

// NewBuilderFromSwatches creates a builder that skips quantization and only
// selects targets among the given swatches.
func NewBuilderFromSwatches(swatches []*Swatch) *Builder {
	b := NewBuilder(nil)
	b.fromSamples = false
	b.swatches = slices.Clone(swatches)
	return b
}

// MaximumColourCount sets the upper bound on the number of swatches.
func (b *Builder) MaximumColourCount(n int) *Builder {
	b.maxColours = n
	return b
}

// QuantizeBits sets the bits kept per channel when building the histogram.
func (b *Builder) QuantizeBits(bits int) *Builder {
	b.bits = bits
	return b
}

// Workers sets the number of goroutines used to build the histogram. Zero or
// one builds it on the calling goroutine.
func (b *Builder) Workers(n int) *Builder {
	b.workers = n
	return b
}

// ClearFilters removes all filters, including the default one.
func (b *Builder) ClearFilters() *Builder {
	b.filters = nil
	return b
}

// AddFilter appends a filter. A nil filter is ignored.
func (b *Builder) AddFilter(f Filter) *Builder {
	if f != nil {
		b.filters = append(b.filters, f)
	}
	return b
}

// ClearTargets removes all targets, including the standard ones.
func (b *Builder) ClearTargets() *Builder {
	b.targets = nil
	return b
}

// AddTarget appends a target. Targets are selected in insertion order.
func (b *Builder) AddTarget(t Target) *Builder {
	b.targets = append(b.targets, t)
	return b
}

// WithLogger sets the logger used for debug traces.
func (b *Builder) WithLogger(logger hclog.Logger) *Builder {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	b.logger = logger
	return b
}

// Validate checks the configuration without processing any samples.
func (b *Builder) Validate() error {
	if b.maxColours <= 0 {
		return fmt.Errorf("%w: maximum colour count must be positive, got %d", ErrInvalidConfig, b.maxColours)
	}
	if b.bits < MinQuantizeBits || b.bits > MaxQuantizeBits {
		return fmt.Errorf("%w: quantize bits must be in [%d, %d], got %d", ErrInvalidConfig, MinQuantizeBits, MaxQuantizeBits, b.bits)
	}
	if b.workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, b.workers)
	}

	seen := make(map[string]struct{}, len(b.targets))
	for _, t := range b.targets {
		if err := t.Validate(); err != nil {
			return err
		}
		if _, dup := seen[t.Name]; dup {
			return fmt.Errorf("%w: duplicate target %q", ErrInvalidConfig, t.Name)
		}
		seen[t.Name] = struct{}{}
	}
	return nil
}

// Generate runs the pipeline and returns the palette. No samples give an
// empty palette rather than an error.
func (b *Builder) Generate() (*Palette, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	swatches := b.swatches
	if b.fromSamples {
		var err error
		swatches, err = b.quantizeSamples()
		if err != nil {
			return nil, err
		}
	}

	dominant := dominantSwatch(swatches)
	selections := selectSwatches(swatches, b.targets, dominant, b.logger)

	return newPalette(swatches, slices.Clone(b.targets), selections, dominant), nil
}

func (b *Builder) quantizeSamples() ([]*Swatch, error) {
	if len(b.samples) == 0 {
		b.logger.Debug("no samples to quantize")
		return nil, nil
	}

	var hist Histogram
	if b.workers > 1 {
		hist = BuildHistogramParallel(b.samples, b.bits, b.workers)
	} else {
		hist = BuildHistogram(b.samples, b.bits)
	}
	b.logger.Debug("built histogram", "samples", len(b.samples), "distinct", hist.Len(), "bits", b.bits)

	hist, err := hist.Filter(b.filters)
	if err != nil {
		return nil, fmt.Errorf("failed to filter colours: %w", err)
	}
	b.logger.Debug("filtered histogram", "distinct", hist.Len(), "population", hist.Total())

	swatches, err := quantize(hist, b.maxColours, b.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to quantize colours: %w", err)
	}
	return swatches, nil
}
