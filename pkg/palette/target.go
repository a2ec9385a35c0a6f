package palette

import (
	"fmt"
)

// Standard target names.
const (
	TargetLightVibrant = "light-vibrant"
	TargetVibrant      = "vibrant"
	TargetDarkVibrant  = "dark-vibrant"
	TargetLightMuted   = "light-muted"
	TargetMuted        = "muted"
	TargetDarkMuted    = "dark-muted"
)

const (
	targetDarkLuma   = 0.26
	maxDarkLuma      = 0.45
	minLightLuma     = 0.55
	targetLightLuma  = 0.74
	minNormalLuma    = 0.3
	targetNormalLuma = 0.5
	maxNormalLuma    = 0.7
	targetMutedSat   = 0.3
	maxMutedSat      = 0.4
	targetVibrantSat = 1.0
	minVibrantSat    = 0.35
	weightSaturation = 0.24
	weightLuma       = 0.52
	weightPopulation = 0.24
)

// Target describes the characteristics of a swatch to pick from a palette:
// acceptable saturation and lightness bands, the ideal value inside each
// band, and how much each criterion weighs in the score. An exclusive target
// claims its swatch so later targets cannot select it.
type Target struct {
	Name string `json:"name"`

	MinSaturation    float64 `json:"min_saturation"`
	TargetSaturation float64 `json:"target_saturation"`
	MaxSaturation    float64 `json:"max_saturation"`

	MinLightness    float64 `json:"min_lightness"`
	TargetLightness float64 `json:"target_lightness"`
	MaxLightness    float64 `json:"max_lightness"`

	SaturationWeight float64 `json:"saturation_weight"`
	LightnessWeight  float64 `json:"lightness_weight"`
	PopulationWeight float64 `json:"population_weight"`

	Exclusive bool `json:"exclusive"`
}

func newTarget(name string) Target {
	return Target{
		Name:             name,
		MinSaturation:    0,
		TargetSaturation: 0.5,
		MaxSaturation:    1,
		MinLightness:     0,
		TargetLightness:  0.5,
		MaxLightness:     1,
		SaturationWeight: weightSaturation,
		LightnessWeight:  weightLuma,
		PopulationWeight: weightPopulation,
		Exclusive:        true,
	}
}

func lightTarget(t Target) Target {
	t.MinLightness = minLightLuma
	t.TargetLightness = targetLightLuma
	return t
}

func normalTarget(t Target) Target {
	t.MinLightness = minNormalLuma
	t.TargetLightness = targetNormalLuma
	t.MaxLightness = maxNormalLuma
	return t
}

func darkTarget(t Target) Target {
	t.TargetLightness = targetDarkLuma
	t.MaxLightness = maxDarkLuma
	return t
}

func vibrantTarget(t Target) Target {
	t.MinSaturation = minVibrantSat
	t.TargetSaturation = targetVibrantSat
	return t
}

func mutedTarget(t Target) Target {
	t.TargetSaturation = targetMutedSat
	t.MaxSaturation = maxMutedSat
	return t
}

// Standard targets.
var (
	LightVibrant = vibrantTarget(lightTarget(newTarget(TargetLightVibrant)))
	Vibrant      = vibrantTarget(normalTarget(newTarget(TargetVibrant)))
	DarkVibrant  = vibrantTarget(darkTarget(newTarget(TargetDarkVibrant)))
	LightMuted   = mutedTarget(lightTarget(newTarget(TargetLightMuted)))
	Muted        = mutedTarget(normalTarget(newTarget(TargetMuted)))
	DarkMuted    = mutedTarget(darkTarget(newTarget(TargetDarkMuted)))
)

// StandardTargets returns the six standard targets in processing order.
func StandardTargets() []Target {
	return []Target{LightVibrant, Vibrant, DarkVibrant, LightMuted, Muted, DarkMuted}
}

// StandardTarget returns the standard target with the given name.
func StandardTarget(name string) (Target, bool) {
	for _, t := range StandardTargets() {
		if t.Name == name {
			return t, true
		}
	}
	return Target{}, false
}

// Validate checks that the bands lie in [0, 1], are ordered, contain their
// target values, and that no weight is negative.
func (t Target) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: target has no name", ErrInvalidConfig)
	}
	if err := validateBand(t.Name, "saturation", t.MinSaturation, t.TargetSaturation, t.MaxSaturation); err != nil {
		return err
	}
	if err := validateBand(t.Name, "lightness", t.MinLightness, t.TargetLightness, t.MaxLightness); err != nil {
		return err
	}
	if t.SaturationWeight < 0 || t.LightnessWeight < 0 || t.PopulationWeight < 0 {
		return fmt.Errorf("%w: target %q has a negative weight", ErrInvalidConfig, t.Name)
	}
	return nil
}

func validateBand(name, band string, lo, target, hi float64) error {
	for _, v := range []float64{lo, target, hi} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: target %q %s value %g outside [0, 1]", ErrInvalidConfig, name, band, v)
		}
	}
	if lo > hi {
		return fmt.Errorf("%w: target %q minimum %s %g exceeds maximum %g", ErrInvalidConfig, name, band, lo, hi)
	}
	if target < lo || target > hi {
		return fmt.Errorf("%w: target %q %s %g outside [%g, %g]", ErrInvalidConfig, name, band, target, lo, hi)
	}
	return nil
}

// normalizedWeights scales the weights to sum to 1. All-zero weights are
// returned unchanged.
func (t Target) normalizedWeights() (sat, luma, pop float64) {
	sum := t.SaturationWeight + t.LightnessWeight + t.PopulationWeight
	if sum <= 0 {
		return t.SaturationWeight, t.LightnessWeight, t.PopulationWeight
	}
	return t.SaturationWeight / sum, t.LightnessWeight / sum, t.PopulationWeight / sum
}

// TargetBuilder builds a custom Target, starting from defaults or a copy of
// an existing target.
type TargetBuilder struct {
	target Target
}

// NewTargetBuilder starts a target with full bands centred on 0.5, the
// standard weights and exclusivity enabled.
func NewTargetBuilder(name string) *TargetBuilder {
	return &TargetBuilder{target: newTarget(name)}
}

// NewTargetBuilderFrom starts from a copy of t.
func NewTargetBuilderFrom(t Target) *TargetBuilder {
	return &TargetBuilder{target: t}
}

// Name sets the target name.
func (b *TargetBuilder) Name(name string) *TargetBuilder {
	b.target.Name = name
	return b
}

// MinimumSaturation sets the lowest accepted saturation.
func (b *TargetBuilder) MinimumSaturation(v float64) *TargetBuilder {
	b.target.MinSaturation = v
	return b
}

// TargetSaturation sets the ideal saturation.
func (b *TargetBuilder) TargetSaturation(v float64) *TargetBuilder {
	b.target.TargetSaturation = v
	return b
}

// MaximumSaturation sets the highest accepted saturation.
func (b *TargetBuilder) MaximumSaturation(v float64) *TargetBuilder {
	b.target.MaxSaturation = v
	return b
}

// MinimumLightness sets the lowest accepted lightness.
func (b *TargetBuilder) MinimumLightness(v float64) *TargetBuilder {
	b.target.MinLightness = v
	return b
}

// TargetLightness sets the ideal lightness.
func (b *TargetBuilder) TargetLightness(v float64) *TargetBuilder {
	b.target.TargetLightness = v
	return b
}

// MaximumLightness sets the highest accepted lightness.
func (b *TargetBuilder) MaximumLightness(v float64) *TargetBuilder {
	b.target.MaxLightness = v
	return b
}

// SaturationWeight sets how much saturation closeness counts.
func (b *TargetBuilder) SaturationWeight(v float64) *TargetBuilder {
	b.target.SaturationWeight = v
	return b
}

// LightnessWeight sets how much lightness closeness counts.
func (b *TargetBuilder) LightnessWeight(v float64) *TargetBuilder {
	b.target.LightnessWeight = v
	return b
}

// PopulationWeight sets how much relative population counts.
func (b *TargetBuilder) PopulationWeight(v float64) *TargetBuilder {
	b.target.PopulationWeight = v
	return b
}

// Exclusive sets whether the chosen swatch is withheld from later targets.
func (b *TargetBuilder) Exclusive(exclusive bool) *TargetBuilder {
	b.target.Exclusive = exclusive
	return b
}

// Build validates and returns the target.
func (b *TargetBuilder) Build() (Target, error) {
	if err := b.target.Validate(); err != nil {
		return Target{}, err
	}
	return b.target, nil
}
