package evaluate_test

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/skarland/clusterbench/internal/bicluster"
	"github.com/skarland/clusterbench/internal/evaluate"
	"github.com/skarland/clusterbench/internal/score"
)

// sizedModel emits n trivial biclusters; paired with sizeScorer it makes a
// configuration's score a pure function of its "n" parameter.
type sizedModel struct{ n int }

func (m sizedModel) Fit(*mat.Dense) (*bicluster.Set, error) {
	s := &bicluster.Set{Rows: make([][]bool, m.n), Cols: make([][]bool, m.n)}
	for i := range s.Rows {
		s.Rows[i] = []bool{true}
		s.Cols[i] = []bool{true}
	}
	return s, nil
}

type failingModel struct{}

func (failingModel) Fit(*mat.Dense) (*bicluster.Set, error) {
	return nil, fmt.Errorf("matrix is singular")
}

// stubFamily builds models whose score is n/10. n <= 0 fails at construction,
// n == 13 fails at fit time.
func stubFamily(name string, grid bicluster.Grid) bicluster.Family {
	return bicluster.Family{
		Name: name,
		New: func(p bicluster.Params, rng *rand.Rand) (bicluster.Model, error) {
			n, err := p.Int("n", 1)
			if err != nil {
				return nil, err
			}
			if n <= 0 {
				return nil, fmt.Errorf("n must be positive, got %d", n)
			}
			if n == 13 {
				return failingModel{}, nil
			}
			return sizedModel{n: n}, nil
		},
		Grid: grid,
	}
}

var sizeScorer = score.Func(func(candidate, truth *bicluster.Set) float64 {
	return float64(candidate.Len()) / 10
})

func testData() (*mat.Dense, *bicluster.Set) {
	data := mat.NewDense(4, 4, []float64{
		9, 9, 0, 0,
		9, 9, 0, 0,
		0, 0, 5, 5,
		0, 0, 5, 5,
	})
	truth := bicluster.FromLabels([]int{0, 0, 1, 1}, []int{0, 0, 1, 1}, 2)
	return data, truth
}

func TestSearchGridFindsBest(t *testing.T) {
	data, truth := testData()
	family := stubFamily("stub", bicluster.Grid{"n": {3, 9, 6}})
	params, s := evaluate.SearchGrid(family, data, truth, sizeScorer, rand.New(rand.NewPCG(1, 0)))
	if s != 0.9 {
		t.Errorf("best score = %g, want 0.9", s)
	}
	n, err := params.Int("n", 0)
	if err != nil || n != 9 {
		t.Errorf("best params = %v, want n=9", params)
	}
}

func TestSearchGridSkipsFailures(t *testing.T) {
	data, truth := testData()
	family := stubFamily("stub", bicluster.Grid{"n": {0, 13, 6}})
	params, s := evaluate.SearchGrid(family, data, truth, sizeScorer, rand.New(rand.NewPCG(1, 0)))
	if s != 0.6 {
		t.Errorf("best score = %g, want 0.6 from the only working configuration", s)
	}
	if n, _ := params.Int("n", 0); n != 6 {
		t.Errorf("best params = %v, want n=6", params)
	}
}

func TestSearchGridAllFail(t *testing.T) {
	data, truth := testData()
	family := stubFamily("stub", bicluster.Grid{"n": {0, 13}})
	_, s := evaluate.SearchGrid(family, data, truth, sizeScorer, rand.New(rand.NewPCG(1, 0)))
	if !math.IsInf(s, -1) {
		t.Errorf("score = %g, want -Inf when every configuration fails", s)
	}
}

func TestSearchGridTieKeepsFirst(t *testing.T) {
	data, truth := testData()
	family := stubFamily("stub", bicluster.Grid{"n": {3, 6}})
	constant := score.Func(func(candidate, truth *bicluster.Set) float64 { return 0.5 })
	params, s := evaluate.SearchGrid(family, data, truth, constant, rand.New(rand.NewPCG(1, 0)))
	if s != 0.5 {
		t.Errorf("score = %g, want 0.5", s)
	}
	if n, _ := params.Int("n", 0); n != 3 {
		t.Errorf("tie should keep the first configuration, got %v", params)
	}
}
