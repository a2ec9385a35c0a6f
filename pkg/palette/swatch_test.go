package palette

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/jmylchreest/swatch/pkg/colour"
)

func TestSwatchTextColours(t *testing.T) {
	tests := []struct {
		name string
		bg   colour.RGB
	}{
		{name: "white", bg: colour.White},
		{name: "black", bg: colour.Black},
		{name: "mid grey", bg: colour.RGB{R: 119, G: 119, B: 119}},
		{name: "vibrant red", bg: colour.RGB{R: 248}},
		{name: "dark blue", bg: colour.RGB{R: 16, G: 32, B: 96}},
		{name: "pale yellow", bg: colour.RGB{R: 248, G: 240, B: 160}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSwatch(tt.bg, 1)
			title := s.TitleTextColour()
			body := s.BodyTextColour()

			for _, c := range []colour.RGBA{title, body} {
				if c.RGB() != colour.White && c.RGB() != colour.Black {
					t.Errorf("Text colour %s is neither white nor black", c)
				}
			}
			if got := colour.ForegroundContrast(title, tt.bg); got < colour.MinContrastTitleText {
				t.Errorf("Title contrast %.2f below %.1f", got, colour.MinContrastTitleText)
			}
			if got := colour.ForegroundContrast(body, tt.bg); got < colour.MinContrastBodyText && body.A != 0xff {
				t.Errorf("Body contrast %.2f below %.1f", got, colour.MinContrastBodyText)
			}
		})
	}
}

func TestSwatchTextColoursPreference(t *testing.T) {
	dark := NewSwatch(colour.RGB{R: 16, G: 16, B: 16}, 1)
	if dark.BodyTextColour().RGB() != colour.White || dark.TitleTextColour().RGB() != colour.White {
		t.Error("Expected white text on a dark swatch")
	}
	if dark.TitleTextColour().A > dark.BodyTextColour().A {
		t.Error("Title text should need no more alpha than body text")
	}

	light := NewSwatch(colour.RGB{R: 240, G: 240, B: 240}, 1)
	if light.BodyTextColour().RGB() != colour.Black || light.TitleTextColour().RGB() != colour.Black {
		t.Error("Expected black text on a light swatch")
	}
}

func TestSwatchTextColoursConcurrent(t *testing.T) {
	s := NewSwatch(colour.RGB{R: 80, G: 120, B: 200}, 1)
	want := NewSwatch(s.RGB(), 1).BodyTextColour()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := s.BodyTextColour(); got != want {
				t.Errorf("Expected %s, got %s", want, got)
			}
		}()
	}
	wg.Wait()
}

func TestSwatchEqual(t *testing.T) {
	a := NewSwatch(colour.RGB{R: 1, G: 2, B: 3}, 10)
	b := NewSwatch(colour.RGB{R: 1, G: 2, B: 3}, 10)
	c := NewSwatch(colour.RGB{R: 1, G: 2, B: 3}, 11)

	if !a.Equal(b) {
		t.Error("Expected equal swatches")
	}
	if a.Equal(c) {
		t.Error("Expected swatches with different populations to differ")
	}
	if a.Equal(nil) {
		t.Error("Expected swatch to differ from nil")
	}
	if a.Packed() != 0x010203 {
		t.Errorf("Expected packed 0x010203, got %#06x", a.Packed())
	}
}

func TestSwatchMarshalJSON(t *testing.T) {
	data, err := json.Marshal(NewSwatch(colour.Black, 7))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	for _, key := range []string{"hex", "rgb", "hsl", "population", "title_text", "body_text"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %q in %s", key, data)
		}
	}
	if decoded["hex"] != "#000000" {
		t.Errorf("Expected hex #000000, got %v", decoded["hex"])
	}
}

func TestFilters(t *testing.T) {
	tests := []struct {
		name string
		rgb  colour.RGB
		want bool
	}{
		{name: "black", rgb: colour.RGB{R: 5, G: 5, B: 5}, want: false},
		{name: "white", rgb: colour.RGB{R: 250, G: 250, B: 250}, want: false},
		{name: "skin tone", rgb: colour.RGB{R: 224, G: 172, B: 105}, want: false},
		{name: "saturated orange", rgb: colour.RGB{R: 255, G: 128}, want: true},
		{name: "blue", rgb: colour.RGB{R: 30, G: 90, B: 200}, want: true},
		{name: "mid grey", rgb: colour.RGB{R: 128, G: 128, B: 128}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultFilter.IsAllowed(tt.rgb, colour.ToHSL(tt.rgb)); got != tt.want {
				t.Errorf("Expected %v for %s (%s), got %v", tt.want, tt.rgb, colour.ToHSL(tt.rgb), got)
			}
		})
	}

	exclude := ExcludeFilter{Colours: []colour.RGB{{R: 255}}, Distance: 10}
	if exclude.IsAllowed(colour.RGB{R: 250, G: 5}, colour.HSL{}) {
		t.Error("Expected nearby colour to be excluded")
	}
	if !exclude.IsAllowed(colour.RGB{R: 200}, colour.HSL{}) {
		t.Error("Expected distant colour to be allowed")
	}
}
