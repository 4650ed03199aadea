// Package stickercolors builds weighted colour palettes from sets of
// stickers.
//
// A ColorPool aggregates the quantized colours of every sticker, weighted by
// pixel count and sorted most relevant first. Pools never change once built:
// clustering and filtering return new pools, so operations chain naturally.
//
//	pool, _ := stickercolors.New(stickercolors.Paths("01.png", "02.png"), stickercolors.DefaultOptions())
//	pool, _ = pool.FilterTransparency(stickercolors.DefaultTransparencyFilter())
//	pool, _ = pool.Cluster(stickercolors.DefaultClusterOptions())
//	colors := pool.RGB()
package stickercolors

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/hashicorp/go-hclog"
	"github.com/setanarut/stickercolors/utils"
)

// Entry is a colour and its weight. After New the weight is a pixel count
// (after quantization); after Cluster it is the number of entries folded
// into the cluster.
type Entry struct {
	Weight int
	Color  RGBA
}

// ColorPool is an immutable list of entries sorted by descending weight.
// Equal weights are ordered by descending colour (see RGBA.Compare).
type ColorPool struct {
	entries []Entry
	logger  hclog.Logger
}

// Empty returns a pool with no colours.
func Empty() *ColorPool {
	return &ColorPool{logger: hclog.NewNullLogger()}
}

// New aggregates the colours of every source. Each sticker is converted to
// RGBA, quantized to at most opt.Quantize colours and its pixels counted;
// counts of identical colours are summed across stickers.
//
// A nil sources slice yields an empty pool. A source that cannot be decoded
// aborts the whole construction with an error wrapping ErrDecode.
func New(sources []Source, opt Options) (*ColorPool, error) {
	if sources == nil {
		return Empty(), nil
	}
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	logger := opt.logger()
	quantizer := opt.quantizer()

	aggregate := make(map[RGBA]int)
	for i, src := range sources {
		if src == nil {
			return nil, fmt.Errorf("%w: source %d is nil", ErrDecode, i)
		}
		img, err := src.decode()
		if err != nil {
			return nil, fmt.Errorf("%w: source %d (%s): %w", ErrDecode, i, src, err)
		}
		counts, err := quantizer.Quantize(utils.ToNRGBA(img), opt.Quantize)
		if err != nil {
			return nil, fmt.Errorf("%w: quantize source %d (%s): %w", ErrDecode, i, src, err)
		}
		for c, n := range counts {
			aggregate[fromNRGBA(c)] += n
		}
		logger.Debug("aggregated sticker", "index", i, "source", src.String(), "colors", len(counts))
	}

	entries := make([]Entry, 0, len(aggregate))
	for c, n := range aggregate {
		entries = append(entries, Entry{Weight: n, Color: c})
	}
	logger.Debug("built color pool", "stickers", len(sources), "colors", len(entries))
	return newPool(entries, logger), nil
}

// FromEntries builds a pool from explicit entries. The slice is copied and
// sorted.
func FromEntries(entries []Entry) *ColorPool {
	return newPool(slices.Clone(entries), hclog.NewNullLogger())
}

func newPool(entries []Entry, logger hclog.Logger) *ColorPool {
	sortEntries(entries)
	return &ColorPool{entries: entries, logger: logger}
}

func (p *ColorPool) derive(entries []Entry) *ColorPool {
	return newPool(entries, p.log())
}

func (p *ColorPool) log() hclog.Logger {
	if p.logger == nil {
		return hclog.NewNullLogger()
	}
	return p.logger
}

func sortEntries(entries []Entry) {
	slices.SortFunc(entries, func(a, b Entry) int {
		if d := cmp.Compare(b.Weight, a.Weight); d != 0 {
			return d
		}
		return b.Color.Compare(a.Color)
	})
}

// Len returns the number of entries.
func (p *ColorPool) Len() int {
	return len(p.entries)
}

// Entries returns a copy of the entries in pool order.
func (p *ColorPool) Entries() []Entry {
	return slices.Clone(p.entries)
}

// Weights returns the weight of every entry in pool order.
func (p *ColorPool) Weights() []int {
	out := make([]int, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.Weight
	}
	return out
}

// RGB returns every colour without its alpha channel, in pool order.
func (p *ColorPool) RGB() []RGB {
	out := make([]RGB, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.Color.RGB()
	}
	return out
}

// RGBA returns every colour in pool order. Stickers without an alpha channel
// report 255.
func (p *ColorPool) RGBA() []RGBA {
	out := make([]RGBA, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.Color
	}
	return out
}

// TotalWeight sums the weights of all entries.
func (p *ColorPool) TotalWeight() int {
	total := 0
	for _, e := range p.entries {
		total += e.Weight
	}
	return total
}

// Clone returns an independent pool with the same entries.
func (p *ColorPool) Clone() *ColorPool {
	return &ColorPool{entries: slices.Clone(p.entries), logger: p.log()}
}
