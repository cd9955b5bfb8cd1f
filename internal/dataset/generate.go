package dataset

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/skarland/clusterbench/internal/bicluster"
)

// Structure selects the latent layout of a generated dataset.
type Structure string

const (
	// StructureBlocks embeds k diagonal constant-valued biclusters.
	StructureBlocks Structure = "blocks"
	// StructureCheckerboard embeds independent row and column partitions
	// with one mean per block, k*k biclusters in total.
	StructureCheckerboard Structure = "checkerboard"
)

// Spec describes one class of synthetic test data.
type Spec struct {
	Name      string
	Rows      int
	Cols      int
	Clusters  int
	Structure Structure
	// Noise is the standard deviation of the gaussian background.
	Noise float64
	// MinValue and MaxValue bound the uniform draw of block signal means.
	MinValue float64
	MaxValue float64
}

// Dataset pairs a generated data matrix with the ground truth it was built
// from. The truth is consumed only at scoring time, never by a model.
type Dataset struct {
	Data  *mat.Dense
	Truth *bicluster.Set
}

// Generate builds a dataset for the spec. Rows and columns come out in
// cluster order; per-trial shuffling is the comparison runner's job, so the
// same generated dataset can serve every trial.
func Generate(spec Spec, rng *rand.Rand) (*Dataset, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	switch spec.Structure {
	case StructureBlocks:
		return generateBlocks(spec, rng), nil
	case StructureCheckerboard:
		return generateCheckerboard(spec, rng), nil
	default:
		return nil, fmt.Errorf("class %q: unknown structure %q", spec.Name, spec.Structure)
	}
}

// Validate checks the spec without generating anything.
func (spec Spec) Validate() error {
	switch spec.Structure {
	case StructureBlocks, StructureCheckerboard:
	default:
		return fmt.Errorf("class %q: unknown structure %q", spec.Name, spec.Structure)
	}
	if spec.Rows < 2 || spec.Cols < 2 {
		return fmt.Errorf("class %q: shape %dx%d is too small", spec.Name, spec.Rows, spec.Cols)
	}
	if spec.Clusters < 2 {
		return fmt.Errorf("class %q: clusters must be >= 2, got %d", spec.Name, spec.Clusters)
	}
	if spec.Clusters > spec.Rows || spec.Clusters > spec.Cols {
		return fmt.Errorf("class %q: %d clusters exceed shape %dx%d", spec.Name, spec.Clusters, spec.Rows, spec.Cols)
	}
	if spec.Noise < 0 {
		return fmt.Errorf("class %q: noise must be >= 0, got %g", spec.Name, spec.Noise)
	}
	if spec.MaxValue < spec.MinValue {
		return fmt.Errorf("class %q: max_value %g below min_value %g", spec.Name, spec.MaxValue, spec.MinValue)
	}
	return nil
}

func generateBlocks(spec Spec, rng *rand.Rand) *Dataset {
	rowLabels := partitionLabels(spec.Rows, spec.Clusters)
	colLabels := partitionLabels(spec.Cols, spec.Clusters)

	signal := make([]float64, spec.Clusters)
	for c := range signal {
		signal[c] = spec.MinValue + rng.Float64()*(spec.MaxValue-spec.MinValue)
	}

	data := noiseMatrix(spec.Rows, spec.Cols, spec.Noise, rng)
	for i := 0; i < spec.Rows; i++ {
		for j := 0; j < spec.Cols; j++ {
			if rowLabels[i] == colLabels[j] {
				data.Set(i, j, data.At(i, j)+signal[rowLabels[i]])
			}
		}
	}
	return &Dataset{
		Data:  data,
		Truth: bicluster.FromLabels(rowLabels, colLabels, spec.Clusters),
	}
}

func generateCheckerboard(spec Spec, rng *rand.Rand) *Dataset {
	rowLabels := partitionLabels(spec.Rows, spec.Clusters)
	colLabels := partitionLabels(spec.Cols, spec.Clusters)

	signal := make([]float64, spec.Clusters*spec.Clusters)
	for b := range signal {
		signal[b] = spec.MinValue + rng.Float64()*(spec.MaxValue-spec.MinValue)
	}

	data := noiseMatrix(spec.Rows, spec.Cols, spec.Noise, rng)
	for i := 0; i < spec.Rows; i++ {
		for j := 0; j < spec.Cols; j++ {
			b := rowLabels[i]*spec.Clusters + colLabels[j]
			data.Set(i, j, data.At(i, j)+signal[b])
		}
	}
	return &Dataset{
		Data:  data,
		Truth: bicluster.FromCheckerboard(rowLabels, spec.Clusters, colLabels, spec.Clusters),
	}
}

// partitionLabels splits n indices into k near-equal contiguous groups. The
// first n%k groups get one extra member.
func partitionLabels(n, k int) []int {
	labels := make([]int, n)
	base, extra := n/k, n%k
	idx := 0
	for c := 0; c < k; c++ {
		size := base
		if c < extra {
			size++
		}
		for s := 0; s < size; s++ {
			labels[idx] = c
			idx++
		}
	}
	return labels
}

func noiseMatrix(rows, cols int, std float64, rng *rand.Rand) *mat.Dense {
	data := mat.NewDense(rows, cols, nil)
	if std == 0 {
		return data
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data.Set(i, j, rng.NormFloat64()*std)
		}
	}
	return data
}
