package bicluster

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// SpectralCoclustering finds k biclusters where each sample and each feature
// belongs to exactly one bicluster (Dhillon's spectral graph partitioning).
// The data matrix is treated as a bipartite graph between samples and
// features; rows and columns are embedded jointly from the singular vectors
// of the normalized matrix and clustered together.
type SpectralCoclustering struct {
	Clusters int

	rng *rand.Rand
}

// NewSpectralCoclustering builds the model from a grid configuration.
// Recognized parameters: clusters (default 3).
func NewSpectralCoclustering(p Params, rng *rand.Rand) (Model, error) {
	k, err := p.Int("clusters", 3)
	if err != nil {
		return nil, err
	}
	if k < 2 {
		return nil, fmt.Errorf("spectral coclustering: clusters must be >= 2, got %d", k)
	}
	return &SpectralCoclustering{Clusters: k, rng: rng}, nil
}

func (m *SpectralCoclustering) Fit(data *mat.Dense) (*Set, error) {
	n, d := data.Dims()
	if m.Clusters > n || m.Clusters > d {
		return nil, fmt.Errorf("spectral coclustering: %d clusters exceed data shape %dx%d", m.Clusters, n, d)
	}

	rowScale, colScale := normalizationScales(data)
	normed := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			normed.Set(i, j, data.At(i, j)*rowScale[i]*colScale[j])
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(normed, mat.SVDThin); !ok {
		return nil, fmt.Errorf("spectral coclustering: SVD failed to converge")
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// Partitioning information lives in singular vectors 2..l+1; the leading
	// pair only reflects the normalization.
	l := int(math.Ceil(math.Log2(float64(m.Clusters))))
	if _, uc := u.Dims(); 1+l > uc {
		return nil, fmt.Errorf("spectral coclustering: not enough singular vectors for %d clusters", m.Clusters)
	}

	points := make([][]float64, 0, n+d)
	for i := 0; i < n; i++ {
		p := make([]float64, l)
		for c := 0; c < l; c++ {
			p[c] = rowScale[i] * u.At(i, 1+c)
		}
		points = append(points, p)
	}
	for j := 0; j < d; j++ {
		p := make([]float64, l)
		for c := 0; c < l; c++ {
			p[c] = colScale[j] * v.At(j, 1+c)
		}
		points = append(points, p)
	}

	labels, err := kMeans(points, m.Clusters, m.rng)
	if err != nil {
		return nil, fmt.Errorf("spectral coclustering: %w", err)
	}
	return FromLabels(labels[:n], labels[n:], m.Clusters), nil
}

// normalizationScales returns the 1/sqrt row and column weights of the
// bipartite graph. Weights use absolute values so standardized (signed) data
// cannot produce a zero or negative degree; an all-zero row or column gets
// weight 1 to keep the scale finite.
func normalizationScales(data *mat.Dense) (rowScale, colScale []float64) {
	n, d := data.Dims()
	rowScale = make([]float64, n)
	colScale = make([]float64, d)
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			a := math.Abs(data.At(i, j))
			rowScale[i] += a
			colScale[j] += a
		}
	}
	for i, s := range rowScale {
		if s <= 0 {
			s = 1
		}
		rowScale[i] = 1 / math.Sqrt(s)
	}
	for j, s := range colScale {
		if s <= 0 {
			s = 1
		}
		colScale[j] = 1 / math.Sqrt(s)
	}
	return rowScale, colScale
}
