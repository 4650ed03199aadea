package stickercolors

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/setanarut/stickercolors/utils"
)

const (
	// DefaultQuantize is the default maximum number of colours per sticker.
	DefaultQuantize = 16
	// MaxQuantize is the largest palette a sticker can be reduced to.
	MaxQuantize = 256
)

// Options controls how New aggregates stickers.
type Options struct {
	// Quantize is the maximum number of colours each sticker is reduced to
	// before its pixels are counted. Range [1, MaxQuantize].
	Quantize int
	// Quantizer performs the reduction. Nil uses utils.MedianCutQuantizer.
	Quantizer utils.Quantizer
	// Logger receives debug output. It is carried by every pool derived from
	// the one New returns. Nil discards everything.
	Logger hclog.Logger
}

func DefaultOptions() Options {
	return Options{
		Quantize:  DefaultQuantize,
		Quantizer: utils.MedianCutQuantizer{},
		Logger:    hclog.NewNullLogger(),
	}
}

func (o Options) Validate() error {
	if o.Quantize < 1 || o.Quantize > MaxQuantize {
		return fmt.Errorf("%w: quantize must be between 1 and %d, got %d", ErrInvalidParameter, MaxQuantize, o.Quantize)
	}
	return nil
}

func (o Options) quantizer() utils.Quantizer {
	if o.Quantizer == nil {
		return utils.MedianCutQuantizer{}
	}
	return o.Quantizer
}

func (o Options) logger() hclog.Logger {
	if o.Logger == nil {
		return hclog.NewNullLogger()
	}
	return o.Logger
}

// ClusterOptions controls ColorPool.Cluster.
type ClusterOptions struct {
	// Clusters is the number of colours to reduce the pool to.
	Clusters int
	// Runs is the number of randomly seeded restarts; the one with the
	// lowest within-cluster sum of squares wins.
	Runs int
	// MaxIter caps the iterations of each run.
	MaxIter int
	// Fitter performs the clustering. Nil uses utils.LloydFitter.
	Fitter utils.Fitter
}

func DefaultClusterOptions() ClusterOptions {
	return ClusterOptions{
		Clusters: 8,
		Runs:     64,
		MaxIter:  256,
	}
}

func (o ClusterOptions) Validate() error {
	if o.Clusters < 1 {
		return fmt.Errorf("%w: clusters must be at least 1, got %d", ErrInvalidParameter, o.Clusters)
	}
	if o.Runs < 1 {
		return fmt.Errorf("%w: runs must be at least 1, got %d", ErrInvalidParameter, o.Runs)
	}
	if o.MaxIter < 1 {
		return fmt.Errorf("%w: max iterations must be at least 1, got %d", ErrInvalidParameter, o.MaxIter)
	}
	return nil
}

func (o ClusterOptions) fitter() utils.Fitter {
	if o.Fitter == nil {
		return &utils.LloydFitter{}
	}
	return o.Fitter
}

// FilterOptions controls the three filters. Colours whose feature is at or
// above Threshold are approved, the rest rejected. Remove drops the rejected
// colours instead of keeping them; Invert swaps the two groups.
type FilterOptions struct {
	Threshold float64
	Remove    bool
	Invert    bool
}

// DefaultTransparencyFilter drops colours with alpha below 230.
func DefaultTransparencyFilter() FilterOptions {
	return FilterOptions{Threshold: 230, Remove: true}
}

// DefaultSaturationFilter sets apart colours under 35% saturation.
func DefaultSaturationFilter() FilterOptions {
	return FilterOptions{Threshold: 35}
}

// DefaultValueFilter sets apart colours under 20% value.
func DefaultValueFilter() FilterOptions {
	return FilterOptions{Threshold: 20}
}
