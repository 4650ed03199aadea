package utils

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"gonum.org/v1/gonum/floats"
)

// Clustering is the outcome of a k-means fit. Labels[i] is the cluster index
// of points[i]; Centroids has exactly k rows.
type Clustering struct {
	Labels    []int
	Centroids [][]float64
	// Inertia is the within-cluster sum of squared distances.
	Inertia float64
}

// Fitter partitions points into k clusters, restarting runs times and
// keeping the run with the lowest inertia.
type Fitter interface {
	Fit(points [][]float64, k, runs, maxIter int) (Clustering, error)
}

type ClusterMethod int

const (
	ClusterLloyd ClusterMethod = iota
	ClusterMuesli
)

func (m ClusterMethod) String() string {
	switch m {
	case ClusterMuesli:
		return "muesli"
	default:
		return "lloyd"
	}
}

func ParseClusterMethod(name string) (ClusterMethod, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "lloyd":
		return ClusterLloyd, nil
	case "muesli", "kmeans":
		return ClusterMuesli, nil
	default:
		return 0, fmt.Errorf("unknown clusterer %q (valid: lloyd, muesli)", name)
	}
}

func NewFitter(m ClusterMethod) Fitter {
	switch m {
	case ClusterMuesli:
		return &MuesliFitter{}
	default:
		return &LloydFitter{}
	}
}

func validateFit(points [][]float64, k, runs, maxIter int) error {
	if len(points) == 0 {
		return errors.New("no points to cluster")
	}
	if k < 1 {
		return fmt.Errorf("k must be at least 1, got %d", k)
	}
	if k > len(points) {
		return fmt.Errorf("k (%d) exceeds the number of points (%d)", k, len(points))
	}
	if runs < 1 {
		return fmt.Errorf("runs must be at least 1, got %d", runs)
	}
	if maxIter < 1 {
		return fmt.Errorf("max iterations must be at least 1, got %d", maxIter)
	}
	dim := len(points[0])
	if dim == 0 {
		return errors.New("points must have at least one dimension")
	}
	for i, p := range points {
		if len(p) != dim {
			return fmt.Errorf("point %d has %d dimensions, want %d", i, len(p), dim)
		}
	}
	return nil
}

// LloydFitter is plain Lloyd k-means seeded with k distinct input points
// picked uniformly at random. A cluster that loses all of its points keeps
// its previous centroid and is reported with no members.
type LloydFitter struct {
	// Rand drives the seeding. Nil uses the global source.
	Rand *rand.Rand
}

func (f *LloydFitter) Fit(points [][]float64, k, runs, maxIter int) (Clustering, error) {
	if err := validateFit(points, k, runs, maxIter); err != nil {
		return Clustering{}, err
	}
	var best Clustering
	for run := range runs {
		c := f.run(points, k, maxIter)
		if run == 0 || c.Inertia < best.Inertia {
			best = c
		}
	}
	return best, nil
}

func (f *LloydFitter) perm(n int) []int {
	if f.Rand != nil {
		return f.Rand.Perm(n)
	}
	return rand.Perm(n)
}

func (f *LloydFitter) run(points [][]float64, k, maxIter int) Clustering {
	seeds := f.perm(len(points))[:k]
	centroids := make([][]float64, k)
	for i, idx := range seeds {
		centroids[i] = slices.Clone(points[idx])
	}

	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = -1
	}
	for range maxIter {
		if !assignNearest(points, centroids, labels) {
			break
		}
		recenter(points, centroids, labels)
	}
	// Labels must agree with the centroids that are returned.
	assignNearest(points, centroids, labels)

	return Clustering{
		Labels:    labels,
		Centroids: centroids,
		Inertia:   inertia(points, centroids, labels),
	}
}

// assignNearest moves every point to its closest centroid, lowest index on
// ties, and reports whether any label changed.
func assignNearest(points, centroids [][]float64, labels []int) bool {
	changed := false
	for i, p := range points {
		nearest, nearestD := 0, floats.Distance(p, centroids[0], 2)
		for ci := 1; ci < len(centroids); ci++ {
			if d := floats.Distance(p, centroids[ci], 2); d < nearestD {
				nearest, nearestD = ci, d
			}
		}
		if labels[i] != nearest {
			labels[i] = nearest
			changed = true
		}
	}
	return changed
}

func recenter(points, centroids [][]float64, labels []int) {
	dim := len(points[0])
	sums := make([][]float64, len(centroids))
	counts := make([]int, len(centroids))
	for i := range sums {
		sums[i] = make([]float64, dim)
	}
	for i, p := range points {
		floats.Add(sums[labels[i]], p)
		counts[labels[i]]++
	}
	for ci, n := range counts {
		if n == 0 {
			continue
		}
		floats.Scale(1/float64(n), sums[ci])
		centroids[ci] = sums[ci]
	}
}

func inertia(points, centroids [][]float64, labels []int) float64 {
	total := 0.0
	for i, p := range points {
		d := floats.Distance(p, centroids[labels[i]], 2)
		total += d * d
	}
	return total
}

// MuesliFitter delegates each run to github.com/muesli/kmeans. The library
// seeds centres uniformly in the unit cube, so coordinates are divided by
// Scale on the way in and multiplied back on the way out. The library
// applies its own iteration cap; maxIter is only validated.
type MuesliFitter struct {
	// Scale is the upper bound of every input coordinate. Zero means 255.
	Scale float64
}

// indexedObservation remembers which input point it came from so labels
// can be recovered from cluster membership.
type indexedObservation struct {
	index  int
	coords clusters.Coordinates
}

func (o indexedObservation) Coordinates() clusters.Coordinates {
	return o.coords
}

func (o indexedObservation) Distance(point clusters.Coordinates) float64 {
	d := floats.Distance(o.coords, point, 2)
	return d * d
}

func (f *MuesliFitter) scale() float64 {
	if f.Scale > 0 {
		return f.Scale
	}
	return 255
}

func (f *MuesliFitter) Fit(points [][]float64, k, runs, maxIter int) (Clustering, error) {
	if err := validateFit(points, k, runs, maxIter); err != nil {
		return Clustering{}, err
	}
	scale := f.scale()
	dataset := make(clusters.Observations, len(points))
	for i, p := range points {
		coords := make(clusters.Coordinates, len(p))
		for j, v := range p {
			coords[j] = v / scale
		}
		dataset[i] = indexedObservation{index: i, coords: coords}
	}

	km := kmeans.New()
	var best Clustering
	for run := range runs {
		cc, err := km.Partition(dataset, k)
		if err != nil {
			return Clustering{}, fmt.Errorf("kmeans partition: %w", err)
		}
		c, err := fromClusters(cc, len(points), scale)
		if err != nil {
			return Clustering{}, err
		}
		if run == 0 || c.Inertia < best.Inertia {
			best = c
		}
	}
	return best, nil
}

func fromClusters(cc clusters.Clusters, n int, scale float64) (Clustering, error) {
	c := Clustering{
		Labels:    make([]int, n),
		Centroids: make([][]float64, len(cc)),
	}
	seen := 0
	for ci, cluster := range cc {
		center := make([]float64, len(cluster.Center))
		copy(center, cluster.Center)
		floats.Scale(scale, center)
		c.Centroids[ci] = center
		for _, o := range cluster.Observations {
			obs, ok := o.(indexedObservation)
			if !ok {
				return Clustering{}, fmt.Errorf("unexpected observation type %T", o)
			}
			c.Labels[obs.index] = ci
			c.Inertia += obs.Distance(cluster.Center) * scale * scale
			seen++
		}
	}
	if seen != n {
		return Clustering{}, fmt.Errorf("kmeans assigned %d of %d points", seen, n)
	}
	return c, nil
}
