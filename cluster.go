package stickercolors

import (
	"fmt"
	"math"
)

// Cluster groups similar colours with k-means and returns a pool of exactly
// opt.Clusters entries. Every entry is treated as one RGBA point regardless
// of its weight. Each cluster becomes an entry whose colour is the centroid,
// every channel rounded half to even and clamped to [0, 255], and whose
// weight is the number of entries assigned to it, which may be zero.
//
// Clustering an empty pool, or asking for more clusters than there are
// entries, fails with ErrCluster.
func (p *ColorPool) Cluster(opt ClusterOptions) (*ColorPool, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	if len(p.entries) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrCluster, ErrEmptyPool)
	}

	points := make([][]float64, len(p.entries))
	for i, e := range p.entries {
		points[i] = []float64{float64(e.Color.R), float64(e.Color.G), float64(e.Color.B), float64(e.Color.A)}
	}

	k := opt.Clusters
	res, err := opt.fitter().Fit(points, k, opt.Runs, opt.MaxIter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCluster, err)
	}
	if len(res.Centroids) != k || len(res.Labels) != len(points) {
		return nil, fmt.Errorf("%w: fitter returned %d centroids and %d labels, want %d and %d",
			ErrCluster, len(res.Centroids), len(res.Labels), k, len(points))
	}

	counts := make([]int, k)
	for i, l := range res.Labels {
		if l < 0 || l >= k {
			return nil, fmt.Errorf("%w: label %d of entry %d out of range", ErrCluster, l, i)
		}
		counts[l]++
	}

	entries := make([]Entry, k)
	for i, c := range res.Centroids {
		if len(c) != 4 {
			return nil, fmt.Errorf("%w: centroid %d has %d channels", ErrCluster, i, len(c))
		}
		entries[i] = Entry{
			Weight: counts[i],
			Color: RGBA{
				R: roundChannel(c[0]),
				G: roundChannel(c[1]),
				B: roundChannel(c[2]),
				A: roundChannel(c[3]),
			},
		}
	}

	p.log().Debug("clustered color pool", "entries", len(points), "clusters", k, "runs", opt.Runs, "inertia", res.Inertia)
	return p.derive(entries), nil
}

func roundChannel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(max(0, min(255, math.RoundToEven(v))))
}
