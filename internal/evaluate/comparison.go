package evaluate

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/skarland/clusterbench/internal/bicluster"
	"github.com/skarland/clusterbench/internal/dataset"
	"github.com/skarland/clusterbench/internal/score"
)

// Comparison evaluates every registered model family against one class's
// dataset and selects the best performer. Family order is registration
// order and breaks exact score ties.
type Comparison struct {
	Families []bicluster.Family
	Scorer   score.Scorer
}

// Outcome is the winning triple for one (trial, class) evaluation.
type Outcome struct {
	Family string
	Params bicluster.Params
	Score  float64
}

// Run prepares the trial's data and returns the best family triple.
//
// Preparation is per-trial only: the matrix is shuffled with fresh
// permutations, features are standardized with statistics fit on this
// trial's shuffled data, and the ground truth is reindexed with the same
// permutations before any scoring. Nothing is carried across calls.
func (c *Comparison) Run(data *mat.Dense, truth *bicluster.Set, mode Mode, rng *rand.Rand) (Outcome, error) {
	if err := ValidateMode(mode); err != nil {
		return Outcome{}, err
	}
	if len(c.Families) == 0 {
		return Outcome{}, fmt.Errorf("no model families registered")
	}
	if c.Scorer == nil {
		return Outcome{}, fmt.Errorf("no scorer configured")
	}

	shuffled, rowPerm, colPerm := dataset.Shuffle(data, rng)
	prepared := dataset.FitScaler(shuffled).Transform(shuffled)
	aligned, err := truth.Reindex(rowPerm, colPerm)
	if err != nil {
		return Outcome{}, fmt.Errorf("aligning ground truth: %w", err)
	}

	var best Outcome
	for i, family := range c.Families {
		params, s := SearchGrid(family, prepared, aligned, c.Scorer, rng)
		if i == 0 || s > best.Score {
			best = Outcome{Family: family.Name, Params: params, Score: s}
		}
	}
	return best, nil
}
