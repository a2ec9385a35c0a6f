package executor

import (
	"context"

	"github.com/jmylchreest/swatch/pkg/colour"
	"github.com/jmylchreest/swatch/pkg/palette"
	"github.com/jmylchreest/swatch/pkg/plugin"
)

// Filter adapts a FilterExecutor to palette.BatchFilter.
type Filter struct {
	ctx      context.Context
	executor *FilterExecutor
}

// AsFilter returns a palette filter backed by the plugin. Calls made by the
// palette builder use ctx.
func (e *FilterExecutor) AsFilter(ctx context.Context) *Filter {
	return &Filter{ctx: ctx, executor: e}
}

var _ palette.BatchFilter = (*Filter)(nil)

// AllowedColours sends every colour to the plugin in one call.
func (f *Filter) AllowedColours(rgbs []colour.RGB, hsls []colour.HSL) ([]bool, error) {
	return f.executor.Allowed(f.ctx, toFilterColours(rgbs, hsls))
}

// IsAllowed checks a single colour. Plugin failures are logged and the
// colour is allowed.
func (f *Filter) IsAllowed(rgb colour.RGB, hsl colour.HSL) bool {
	result, err := f.AllowedColours([]colour.RGB{rgb}, []colour.HSL{hsl})
	if err != nil {
		f.executor.logger.Warn("filter plugin failed, allowing colour", "colour", rgb.Hex(), "error", err)
		return true
	}
	return result[0]
}

func toFilterColours(rgbs []colour.RGB, hsls []colour.HSL) []plugin.FilterColour {
	out := make([]plugin.FilterColour, len(rgbs))
	for i, c := range rgbs {
		out[i] = plugin.FilterColour{
			RGB:        plugin.RGBColour{R: c.R, G: c.G, B: c.B},
			Hue:        hsls[i].H,
			Saturation: hsls[i].S,
			Lightness:  hsls[i].L,
		}
	}
	return out
}
