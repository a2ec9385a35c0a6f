package palette

import (
	"github.com/hashicorp/go-hclog"
)

// Selection pairs a target with the swatch chosen for it.
type Selection struct {
	Target Target  `json:"target"`
	Swatch *Swatch `json:"swatch"`
}

// dominantSwatch returns the most populous swatch, the first on ties.
func dominantSwatch(swatches []*Swatch) *Swatch {
	var dominant *Swatch
	for _, s := range swatches {
		if dominant == nil || s.Population() > dominant.Population() {
			dominant = s
		}
	}
	return dominant
}

// selectSwatches picks at most one swatch per target, in target order.
// Swatches won by an exclusive target are unavailable to later targets.
func selectSwatches(swatches []*Swatch, targets []Target, dominant *Swatch, logger hclog.Logger) []Selection {
	maxPopulation := 0
	if dominant != nil {
		maxPopulation = dominant.Population()
	}

	claimed := make(map[swatchKey]struct{})
	var selections []Selection
	for _, t := range targets {
		best := bestSwatch(swatches, t, maxPopulation, claimed)
		if best == nil {
			logger.Debug("no swatch for target", "target", t.Name)
			continue
		}
		logger.Debug("selected swatch", "target", t.Name, "swatch", best.Hex(), "population", best.Population())
		if t.Exclusive {
			claimed[best.key()] = struct{}{}
		}
		selections = append(selections, Selection{Target: t, Swatch: best})
	}
	return selections
}

func bestSwatch(swatches []*Swatch, t Target, maxPopulation int, claimed map[swatchKey]struct{}) *Swatch {
	var best *Swatch
	bestScore := 0.0
	for _, s := range swatches {
		if _, taken := claimed[s.key()]; taken {
			continue
		}
		if !t.accepts(s) {
			continue
		}
		score := t.score(s, maxPopulation)
		if best == nil || score > bestScore {
			best = s
			bestScore = score
		}
	}
	return best
}

// accepts reports whether the swatch lies inside both bands, inclusive.
func (t Target) accepts(s *Swatch) bool {
	hsl := s.HSL()
	return hsl.S >= t.MinSaturation && hsl.S <= t.MaxSaturation &&
		hsl.L >= t.MinLightness && hsl.L <= t.MaxLightness
}

func (t Target) score(s *Swatch, maxPopulation int) float64 {
	wSat, wLuma, wPop := t.normalizedWeights()
	hsl := s.HSL()

	score := wSat*closeness(hsl.S, t.MinSaturation, t.TargetSaturation, t.MaxSaturation) +
		wLuma*closeness(hsl.L, t.MinLightness, t.TargetLightness, t.MaxLightness)
	if maxPopulation > 0 {
		score += wPop * float64(s.Population()) / float64(maxPopulation)
	}
	return score
}

// closeness is 1 at target and falls linearly to 0 at the band edge on the
// same side. A band edge equal to the target scores 1 only at the target.
func closeness(value, lo, target, hi float64) float64 {
	var c float64
	switch {
	case value == target:
		return 1
	case value < target:
		if target == lo {
			return 0
		}
		c = 1 - (target-value)/(target-lo)
	default:
		if target == hi {
			return 0
		}
		c = 1 - (value-target)/(hi-target)
	}
	return max(0, min(1, c))
}
