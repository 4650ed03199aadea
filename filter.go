package stickercolors

import (
	"fmt"
	"math"
)

type feature struct {
	name  string
	max   float64
	value func(RGBA) float64
}

var (
	alphaFeature = feature{
		name:  "transparency",
		max:   255,
		value: func(c RGBA) float64 { return float64(c.A) },
	}
	saturationFeature = feature{
		name:  "saturation",
		max:   100,
		value: func(c RGBA) float64 { return RGBToHSV(c.RGB()).S },
	}
	valueFeature = feature{
		name:  "value",
		max:   100,
		value: func(c RGBA) float64 { return RGBToHSV(c.RGB()).V },
	}
)

// FilterTransparency approves colours whose alpha (0-255) is at least
// opt.Threshold. See DefaultTransparencyFilter.
func (p *ColorPool) FilterTransparency(opt FilterOptions) (*ColorPool, error) {
	return p.filter(alphaFeature, opt)
}

// FilterSaturation approves colours whose HSV saturation (0-100) is at least
// opt.Threshold. Alpha is ignored. See DefaultSaturationFilter.
func (p *ColorPool) FilterSaturation(opt FilterOptions) (*ColorPool, error) {
	return p.filter(saturationFeature, opt)
}

// FilterValue approves colours whose HSV value (0-100) is at least
// opt.Threshold. Alpha is ignored. See DefaultValueFilter.
func (p *ColorPool) FilterValue(opt FilterOptions) (*ColorPool, error) {
	return p.filter(valueFeature, opt)
}

// filter splits the pool into approved and rejected entries, keeps the
// approved ones (the rejected ones when inverted) and appends the other
// group unless opt.Remove is set. The result is sorted like any pool.
func (p *ColorPool) filter(f feature, opt FilterOptions) (*ColorPool, error) {
	if math.IsNaN(opt.Threshold) || opt.Threshold < 0 || opt.Threshold > f.max {
		return nil, fmt.Errorf("%w: %s threshold must be between 0 and %g, got %g",
			ErrInvalidParameter, f.name, f.max, opt.Threshold)
	}

	var approved, rejected []Entry
	for _, e := range p.entries {
		if f.value(e.Color) >= opt.Threshold {
			approved = append(approved, e)
		} else {
			rejected = append(rejected, e)
		}
	}

	keep, rest := approved, rejected
	if opt.Invert {
		keep, rest = rejected, approved
	}
	out := make([]Entry, 0, len(p.entries))
	out = append(out, keep...)
	if !opt.Remove {
		out = append(out, rest...)
	}

	p.log().Trace("filtered color pool", "filter", f.name, "threshold", opt.Threshold,
		"approved", len(approved), "rejected", len(rejected), "remove", opt.Remove, "invert", opt.Invert)
	return p.derive(out), nil
}
