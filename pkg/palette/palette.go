package palette

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Palette is the result of a generation run: the swatches, the targets they
// were matched against and the selections.
type Palette struct {
	swatches   []*Swatch
	targets    []Target
	selections []Selection
	dominant   *Swatch
}

func newPalette(swatches []*Swatch, targets []Target, selections []Selection, dominant *Swatch) *Palette {
	return &Palette{
		swatches:   swatches,
		targets:    targets,
		selections: selections,
		dominant:   dominant,
	}
}

// Swatches returns every swatch of the palette.
func (p *Palette) Swatches() []*Swatch {
	return slices.Clone(p.swatches)
}

// Targets returns the targets the palette was generated with.
func (p *Palette) Targets() []Target {
	return slices.Clone(p.targets)
}

// Selections returns the selected swatch of every target that found one, in
// target order.
func (p *Palette) Selections() []Selection {
	return slices.Clone(p.selections)
}

// SwatchFor returns the swatch selected for the named target, or nil.
func (p *Palette) SwatchFor(name string) *Swatch {
	for _, sel := range p.selections {
		if sel.Target.Name == name {
			return sel.Swatch
		}
	}
	return nil
}

// Dominant returns the most populous swatch, or nil for an empty palette.
func (p *Palette) Dominant() *Swatch {
	return p.dominant
}

// LightVibrant returns the swatch selected for the light-vibrant target, or nil.
func (p *Palette) LightVibrant() *Swatch { return p.SwatchFor(TargetLightVibrant) }

// Vibrant returns the swatch selected for the vibrant target, or nil.
func (p *Palette) Vibrant() *Swatch { return p.SwatchFor(TargetVibrant) }

// DarkVibrant returns the swatch selected for the dark-vibrant target, or nil.
func (p *Palette) DarkVibrant() *Swatch { return p.SwatchFor(TargetDarkVibrant) }

// LightMuted returns the swatch selected for the light-muted target, or nil.
func (p *Palette) LightMuted() *Swatch { return p.SwatchFor(TargetLightMuted) }

// Muted returns the swatch selected for the muted target, or nil.
func (p *Palette) Muted() *Swatch { return p.SwatchFor(TargetMuted) }

// DarkMuted returns the swatch selected for the dark-muted target, or nil.
func (p *Palette) DarkMuted() *Swatch { return p.SwatchFor(TargetDarkMuted) }

// Empty reports whether the palette has no swatches.
func (p *Palette) Empty() bool {
	return len(p.swatches) == 0
}

type paletteJSON struct {
	Swatches []*Swatch         `json:"swatches"`
	Dominant *Swatch           `json:"dominant,omitempty"`
	Targets  map[string]string `json:"targets"`
}

// ToJSON renders the swatches, the dominant swatch and the hex colour of
// every selection.
func (p *Palette) ToJSON() ([]byte, error) {
	out := paletteJSON{
		Swatches: p.swatches,
		Dominant: p.dominant,
		Targets:  make(map[string]string, len(p.selections)),
	}
	if out.Swatches == nil {
		out.Swatches = []*Swatch{}
	}
	for _, sel := range p.selections {
		out.Targets[sel.Target.Name] = sel.Swatch.Hex()
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal palette: %w", err)
	}
	return data, nil
}

// String implements fmt.Stringer.
func (p *Palette) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Palette with %d swatches\n", len(p.swatches))
	for _, sel := range p.selections {
		fmt.Fprintf(&sb, "  %-14s %s\n", sel.Target.Name, sel.Swatch.Hex())
	}
	return sb.String()
}
