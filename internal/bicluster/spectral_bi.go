package bicluster

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Normalization methods for SpectralBiclustering.
const (
	MethodLog          = "log"
	MethodBistochastic = "bistochastic"
)

const bistochasticIters = 20

// SpectralBiclustering finds a checkerboard structure: independent row and
// column partitions whose outer product forms Clusters*Clusters biclusters
// (Kluger's spectral method). The data is normalized, its singular vectors
// ranked by how piecewise-constant they are, and rows and columns clustered
// separately in the projection onto the best vectors.
type SpectralBiclustering struct {
	Clusters   int
	Method     string
	Components int
	Best       int

	rng *rand.Rand
}

// NewSpectralBiclustering builds the model from a grid configuration.
// Recognized parameters: clusters (default 3), method ("log" or
// "bistochastic", default "bistochastic"), components (default 6),
// best (default 3).
func NewSpectralBiclustering(p Params, rng *rand.Rand) (Model, error) {
	k, err := p.Int("clusters", 3)
	if err != nil {
		return nil, err
	}
	method, err := p.String("method", MethodBistochastic)
	if err != nil {
		return nil, err
	}
	components, err := p.Int("components", 6)
	if err != nil {
		return nil, err
	}
	best, err := p.Int("best", 3)
	if err != nil {
		return nil, err
	}

	if k < 2 {
		return nil, fmt.Errorf("spectral biclustering: clusters must be >= 2, got %d", k)
	}
	if method != MethodLog && method != MethodBistochastic {
		return nil, fmt.Errorf("spectral biclustering: unknown method %q", method)
	}
	if components < 1 {
		return nil, fmt.Errorf("spectral biclustering: components must be >= 1, got %d", components)
	}
	if best < 1 || best > components {
		return nil, fmt.Errorf("spectral biclustering: best must be in [1, components], got %d", best)
	}
	return &SpectralBiclustering{
		Clusters:   k,
		Method:     method,
		Components: components,
		Best:       best,
		rng:        rng,
	}, nil
}

func (m *SpectralBiclustering) Fit(data *mat.Dense) (*Set, error) {
	n, d := data.Dims()
	if m.Clusters > n || m.Clusters > d {
		return nil, fmt.Errorf("spectral biclustering: %d clusters exceed data shape %dx%d", m.Clusters, n, d)
	}

	var normed *mat.Dense
	switch m.Method {
	case MethodLog:
		normed = logNormalize(data)
	case MethodBistochastic:
		normed = bistochastize(data)
	default:
		return nil, fmt.Errorf("spectral biclustering: unknown method %q", m.Method)
	}

	var svd mat.SVD
	if ok := svd.Factorize(normed, mat.SVDThin); !ok {
		return nil, fmt.Errorf("spectral biclustering: SVD failed to converge")
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// Bistochastic normalization leaves a constant leading singular vector,
	// so skip it; log normalization removes the means and keeps the block
	// structure in the leading vectors.
	discard := 0
	if m.Method == MethodBistochastic {
		discard = 1
	}
	_, uc := u.Dims()
	if discard+m.Components > uc {
		return nil, fmt.Errorf("spectral biclustering: %d components requested, only %d singular vectors available", m.Components, uc-discard)
	}

	bestCols, err := m.selectBest(&v, discard)
	if err != nil {
		return nil, err
	}
	bestRows, err := m.selectBest(&u, discard)
	if err != nil {
		return nil, err
	}

	// Rows cluster in the projection of the data onto the best right
	// singular vectors; columns in the projection onto the best left ones.
	rowEmbed := project(normed, &v, bestCols, false)
	colEmbed := project(normed, &u, bestRows, true)

	rowLabels, err := kMeans(rowEmbed, m.Clusters, m.rng)
	if err != nil {
		return nil, fmt.Errorf("spectral biclustering: %w", err)
	}
	colLabels, err := kMeans(colEmbed, m.Clusters, m.rng)
	if err != nil {
		return nil, fmt.Errorf("spectral biclustering: %w", err)
	}
	return FromCheckerboard(rowLabels, m.Clusters, colLabels, m.Clusters), nil
}

// selectBest ranks Components singular vector columns of basis, starting
// after the discarded leading ones, by 1-D k-means inertia (lower = closer
// to piecewise-constant) and returns the indices of the Best of them, in
// ascending column order.
func (m *SpectralBiclustering) selectBest(basis *mat.Dense, discard int) ([]int, error) {
	rows, _ := basis.Dims()
	type ranked struct {
		col     int
		inertia float64
	}
	candidates := make([]ranked, 0, m.Components)
	values := make([]float64, rows)
	for c := discard; c < discard+m.Components; c++ {
		for i := 0; i < rows; i++ {
			values[i] = basis.At(i, c)
		}
		inertia, err := kMeansInertia(values, m.Clusters, m.rng)
		if err != nil {
			return nil, fmt.Errorf("spectral biclustering: ranking singular vectors: %w", err)
		}
		candidates = append(candidates, ranked{col: c, inertia: inertia})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].inertia < candidates[j].inertia
	})
	cols := make([]int, m.Best)
	for i := 0; i < m.Best; i++ {
		cols[i] = candidates[i].col
	}
	sort.Ints(cols)
	return cols, nil
}

// project returns data * basis[:, cols] row by row. With transpose set, the
// data matrix is transposed first (projecting columns instead of rows).
func project(data, basis *mat.Dense, cols []int, transpose bool) [][]float64 {
	var src mat.Matrix = data
	if transpose {
		src = data.T()
	}
	n, d := src.Dims()
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		p := make([]float64, len(cols))
		for ci, c := range cols {
			var sum float64
			for j := 0; j < d; j++ {
				sum += src.At(i, j) * basis.At(j, c)
			}
			p[ci] = sum
		}
		out[i] = p
	}
	return out
}

// logNormalize applies the log transform: shift to positive, take logs, then
// remove row, column, and overall means so only block structure remains.
func logNormalize(data *mat.Dense) *mat.Dense {
	n, d := data.Dims()
	min := mat.Min(data)

	l := mat.NewDense(n, d, nil)
	rowMean := make([]float64, n)
	colMean := make([]float64, d)
	var total float64
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			v := math.Log1p(data.At(i, j) - min)
			l.Set(i, j, v)
			rowMean[i] += v
			colMean[j] += v
			total += v
		}
	}
	for i := range rowMean {
		rowMean[i] /= float64(d)
	}
	for j := range colMean {
		colMean[j] /= float64(n)
	}
	total /= float64(n * d)

	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			l.Set(i, j, l.At(i, j)-rowMean[i]-colMean[j]+total)
		}
	}
	return l
}

// bistochastize rescales rows and columns alternately until every row sum
// and column sum of absolute values converges to a common constant.
func bistochastize(data *mat.Dense) *mat.Dense {
	n, d := data.Dims()
	out := mat.DenseCopyOf(data)
	for iter := 0; iter < bistochasticIters; iter++ {
		for i := 0; i < n; i++ {
			var s float64
			for j := 0; j < d; j++ {
				s += math.Abs(out.At(i, j))
			}
			if s <= 0 {
				continue
			}
			for j := 0; j < d; j++ {
				out.Set(i, j, out.At(i, j)/s)
			}
		}
		for j := 0; j < d; j++ {
			var s float64
			for i := 0; i < n; i++ {
				s += math.Abs(out.At(i, j))
			}
			if s <= 0 {
				continue
			}
			for i := 0; i < n; i++ {
				out.Set(i, j, out.At(i, j)/s)
			}
		}
	}
	return out
}
