package palette

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/swatch/pkg/colour"
)

func TestGenerateSingleColour(t *testing.T) {
	p, err := NewBuilder(repeat(colour.RGBA{R: 255, A: 255}, 4)).Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	swatches := p.Swatches()
	if len(swatches) != 1 {
		t.Fatalf("Expected 1 swatch, got %d", len(swatches))
	}
	if swatches[0].Population() != 4 {
		t.Errorf("Expected population 4, got %d", swatches[0].Population())
	}
	if swatches[0].RGB() != (colour.RGB{R: 248}) {
		t.Errorf("Expected rgb(248, 0, 0), got %s", swatches[0].RGB())
	}
	if !p.Dominant().Equal(swatches[0]) {
		t.Error("Expected the only swatch to be dominant")
	}
}

func TestGenerateBlackAndWhiteOnly(t *testing.T) {
	samples := append(repeat(colour.RGBA{R: 255, G: 255, B: 255, A: 255}, 500),
		repeat(colour.RGBA{A: 255}, 500)...)

	p, err := NewBuilder(samples).Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !p.Empty() {
		t.Errorf("Expected no swatches, got %d", len(p.Swatches()))
	}
	if p.Dominant() != nil {
		t.Error("Expected no dominant swatch")
	}
	if len(p.Selections()) != 0 {
		t.Errorf("Expected no selections, got %d", len(p.Selections()))
	}
}

func TestGenerateSingleBoxAverages(t *testing.T) {
	samples := []colour.RGBA{
		{R: 255, A: 255},
		{G: 255, A: 255},
		{B: 255, A: 255},
		{B: 255, A: 255},
	}

	p, err := NewBuilder(samples).ClearFilters().MaximumColourCount(1).Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	swatches := p.Swatches()
	if len(swatches) != 1 {
		t.Fatalf("Expected 1 swatch, got %d", len(swatches))
	}
	// Weighted means at 5 bits: 31/4, 31/4, 62/4, rounded and widened.
	want := colour.RGB{R: 8 << 3, G: 8 << 3, B: 16 << 3}
	if got := swatches[0].RGB(); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
	if swatches[0].Population() != 4 {
		t.Errorf("Expected population 4, got %d", swatches[0].Population())
	}
}

func TestGenerateEmpty(t *testing.T) {
	for _, samples := range [][]colour.RGBA{nil, {}} {
		p, err := NewBuilder(samples).Generate()
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if !p.Empty() || p.Dominant() != nil || p.Vibrant() != nil {
			t.Error("Expected an empty palette")
		}
		if len(p.Targets()) != len(StandardTargets()) {
			t.Errorf("Expected standard targets on empty palette, got %d", len(p.Targets()))
		}
	}
}

func TestGenerateProperties(t *testing.T) {
	tests := []struct {
		name       string
		samples    int
		maxColours int
		bits       int
		workers    int
	}{
		{name: "defaults", samples: 4000, maxColours: 16, bits: 5},
		{name: "small palette", samples: 4000, maxColours: 3, bits: 5},
		{name: "coarse", samples: 4000, maxColours: 16, bits: 2},
		{name: "fine", samples: 4000, maxColours: 32, bits: 8},
		{name: "parallel", samples: 20000, maxColours: 16, bits: 5, workers: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := randomSamples(uint64(tt.maxColours*tt.bits), tt.samples)
			build := func() *Builder {
				return NewBuilder(samples).MaximumColourCount(tt.maxColours).QuantizeBits(tt.bits).Workers(tt.workers)
			}

			p, err := build().Generate()
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}

			swatches := p.Swatches()
			if len(swatches) > tt.maxColours {
				t.Errorf("Expected at most %d swatches, got %d", tt.maxColours, len(swatches))
			}

			filtered, err := BuildHistogram(samples, tt.bits).Filter([]Filter{DefaultFilter})
			if err != nil {
				t.Fatalf("Filter failed: %v", err)
			}
			total := 0
			for _, s := range swatches {
				if s.Population() <= 0 {
					t.Errorf("Swatch %s has population %d", s, s.Population())
				}
				total += s.Population()
			}
			if total != filtered.Total() {
				t.Errorf("Expected total population %d, got %d", filtered.Total(), total)
			}

			again, err := build().Generate()
			if err != nil {
				t.Fatalf("second Generate failed: %v", err)
			}
			if diff := cmp.Diff(summarize(p), summarize(again)); diff != "" {
				t.Errorf("Generate is not deterministic (-first +second):\n%s", diff)
			}
		})
	}
}

type swatchSummary struct {
	Hex        string
	Population int
}

func summarize(p *Palette) map[string][]swatchSummary {
	out := map[string][]swatchSummary{}
	for _, s := range p.Swatches() {
		out["swatches"] = append(out["swatches"], swatchSummary{s.Hex(), s.Population()})
	}
	for _, sel := range p.Selections() {
		out[sel.Target.Name] = []swatchSummary{{sel.Swatch.Hex(), sel.Swatch.Population()}}
	}
	return out
}

func TestGenerateExclusiveSelections(t *testing.T) {
	p, err := NewBuilder(randomSamples(99, 8000)).MaximumColourCount(24).Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	seen := map[swatchKey]string{}
	for _, sel := range p.Selections() {
		if !sel.Target.accepts(sel.Swatch) {
			t.Errorf("Target %s selected ineligible swatch %s", sel.Target.Name, sel.Swatch)
		}
		if prev, ok := seen[sel.Swatch.key()]; ok {
			t.Errorf("Swatch %s selected by both %s and %s", sel.Swatch, prev, sel.Target.Name)
		}
		seen[sel.Swatch.key()] = sel.Target.Name
	}
}

func TestBuilderValidate(t *testing.T) {
	overlapping := LightVibrant
	overlapping.MinLightness = 0.9
	overlapping.MaxLightness = 0.5

	tests := []struct {
		name    string
		builder *Builder
	}{
		{name: "zero colours", builder: NewBuilder(nil).MaximumColourCount(0)},
		{name: "negative colours", builder: NewBuilder(nil).MaximumColourCount(-3)},
		{name: "zero bits", builder: NewBuilder(nil).QuantizeBits(0)},
		{name: "too many bits", builder: NewBuilder(nil).QuantizeBits(9)},
		{name: "negative workers", builder: NewBuilder(nil).Workers(-1)},
		{name: "invalid target", builder: NewBuilder(nil).AddTarget(overlapping)},
		{name: "duplicate target", builder: NewBuilder(nil).AddTarget(Vibrant)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.builder.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
			if _, err := tt.builder.Generate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Generate: expected ErrInvalidConfig, got %v", err)
			}
		})
	}

	if err := NewBuilder(nil).Validate(); err != nil {
		t.Errorf("Default builder should be valid: %v", err)
	}
}

func TestGenerateFilterError(t *testing.T) {
	_, err := NewBuilder(randomSamples(5, 100)).AddFilter(failingFilter{}).Generate()
	if err == nil {
		t.Fatal("Expected filter error")
	}
	if errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Filter failure should not be a config error: %v", err)
	}
}

func TestGenerateCustomFilter(t *testing.T) {
	samples := append(repeat(colour.RGBA{R: 200, G: 40, B: 40, A: 255}, 10),
		repeat(colour.RGBA{R: 40, G: 40, B: 200, A: 255}, 10)...)

	noBlue := FilterFunc(func(rgb colour.RGB, _ colour.HSL) bool { return rgb.B < 128 })
	p, err := NewBuilder(samples).AddFilter(noBlue).Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for _, s := range p.Swatches() {
		if s.RGB().B >= 128 {
			t.Errorf("Swatch %s should have been filtered", s)
		}
	}
	if len(p.Swatches()) != 1 {
		t.Errorf("Expected 1 swatch, got %d", len(p.Swatches()))
	}
}

func TestPaletteToJSON(t *testing.T) {
	p, err := NewBuilder(repeat(colour.RGBA{R: 255, A: 255}, 4)).Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	data, err := p.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON failed: %v", err)
	}

	var decoded struct {
		Swatches []struct {
			Hex        string `json:"hex"`
			Population int    `json:"population"`
		} `json:"swatches"`
		Targets map[string]string `json:"targets"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded.Swatches) != 1 || decoded.Swatches[0].Hex != "#f80000" || decoded.Swatches[0].Population != 4 {
		t.Errorf("Unexpected swatches %+v", decoded.Swatches)
	}
	if decoded.Targets[TargetVibrant] != "#f80000" {
		t.Errorf("Expected vibrant #f80000, got %q", decoded.Targets[TargetVibrant])
	}
}
