package dataset

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// Shuffle returns a copy of data with rows and columns permuted, plus the
// permutations applied: shuffled(i, j) == data(rowPerm[i], colPerm[j]).
// Callers must reuse the returned permutations when reindexing ground truth
// for the same trial — scoring against unpermuted truth is silently wrong.
func Shuffle(data *mat.Dense, rng *rand.Rand) (*mat.Dense, []int, []int) {
	n, d := data.Dims()
	rowPerm := rng.Perm(n)
	colPerm := rng.Perm(d)

	out := mat.NewDense(n, d, nil)
	for i, src := range rowPerm {
		for j, srcCol := range colPerm {
			out.Set(i, j, data.At(src, srcCol))
		}
	}
	return out, rowPerm, colPerm
}
