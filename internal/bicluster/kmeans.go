package bicluster

import (
	"fmt"
	"math"
	"math/rand/v2"
)

const kmeansMaxIter = 100

// kMeans clusters points into k groups with Lloyd's algorithm and k-means++
// seeding, returning a label per point. All randomness comes from rng.
func kMeans(points [][]float64, k int, rng *rand.Rand) ([]int, error) {
	if k < 1 {
		return nil, fmt.Errorf("k-means: k must be >= 1, got %d", k)
	}
	if len(points) < k {
		return nil, fmt.Errorf("k-means: %d points cannot form %d clusters", len(points), k)
	}

	centers := seedCenters(points, k, rng)
	labels := make([]int, len(points))

	for iter := 0; iter < kmeansMaxIter; iter++ {
		changed := false
		for i, p := range points {
			best := nearestCenter(p, centers)
			if best != labels[i] {
				labels[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}
		recomputeCenters(points, labels, centers, rng)
	}
	return labels, nil
}

// seedCenters picks initial centers with k-means++: the first uniformly, each
// subsequent one with probability proportional to squared distance from the
// nearest center already chosen.
func seedCenters(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	centers := make([][]float64, 0, k)
	first := points[rng.IntN(len(points))]
	centers = append(centers, cloneVec(first))

	dists := make([]float64, len(points))
	for len(centers) < k {
		var total float64
		for i, p := range points {
			d := sqDist(p, centers[0])
			for _, c := range centers[1:] {
				if dc := sqDist(p, c); dc < d {
					d = dc
				}
			}
			dists[i] = d
			total += d
		}
		idx := len(points) - 1
		if total > 0 {
			target := rng.Float64() * total
			var acc float64
			for i, d := range dists {
				acc += d
				if acc >= target {
					idx = i
					break
				}
			}
		} else {
			// All points coincide with a center; any choice works.
			idx = rng.IntN(len(points))
		}
		centers = append(centers, cloneVec(points[idx]))
	}
	return centers
}

func recomputeCenters(points [][]float64, labels []int, centers [][]float64, rng *rand.Rand) {
	dim := len(centers[0])
	counts := make([]int, len(centers))
	for c := range centers {
		for d := 0; d < dim; d++ {
			centers[c][d] = 0
		}
	}
	for i, p := range points {
		c := labels[i]
		counts[c]++
		for d, v := range p {
			centers[c][d] += v
		}
	}
	for c := range centers {
		if counts[c] == 0 {
			// Re-seed an emptied cluster from a random point.
			copy(centers[c], points[rng.IntN(len(points))])
			continue
		}
		for d := 0; d < dim; d++ {
			centers[c][d] /= float64(counts[c])
		}
	}
}

func nearestCenter(p []float64, centers [][]float64) int {
	best, bestDist := 0, math.Inf(1)
	for c, center := range centers {
		if d := sqDist(p, center); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func sqDist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func cloneVec(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}

// kMeansInertia returns the within-cluster sum of squared distances for a
// 1-D clustering, used to rank singular vectors by how piecewise-constant
// they are.
func kMeansInertia(values []float64, k int, rng *rand.Rand) (float64, error) {
	points := make([][]float64, len(values))
	for i, v := range values {
		points[i] = []float64{v}
	}
	labels, err := kMeans(points, k, rng)
	if err != nil {
		return 0, err
	}
	sums := make([]float64, k)
	counts := make([]int, k)
	for i, v := range values {
		sums[labels[i]] += v
		counts[labels[i]]++
	}
	var inertia float64
	for i, v := range values {
		c := labels[i]
		mean := sums[c] / float64(counts[c])
		d := v - mean
		inertia += d * d
	}
	return inertia, nil
}
