package evaluate

import (
	"log"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/skarland/clusterbench/internal/bicluster"
	"github.com/skarland/clusterbench/internal/score"
)

// SearchGrid fits one model family with every configuration in its grid on
// the prepared dataset and returns the configuration with the highest score
// along with that score. The whole dataset is a single pseudo-fold: fits and
// scores use the same matrix, since the experiment measures clustering
// quality, not generalization.
//
// A configuration whose construction or fit fails scores negative infinity;
// the sweep continues. Ties keep the first configuration in grid iteration
// order. If every configuration fails, the returned score is -Inf.
func SearchGrid(family bicluster.Family, data *mat.Dense, truth *bicluster.Set, scorer score.Scorer, rng *rand.Rand) (bicluster.Params, float64) {
	best := bicluster.Params{}
	bestScore := math.Inf(-1)

	for _, params := range family.Grid.Expand() {
		s := fitAndScore(family, params, data, truth, scorer, rng)
		if s > bestScore {
			best = params
			bestScore = s
		}
	}
	return best, bestScore
}

func fitAndScore(family bicluster.Family, params bicluster.Params, data *mat.Dense, truth *bicluster.Set, scorer score.Scorer, rng *rand.Rand) float64 {
	model, err := family.New(params, rng)
	if err != nil {
		log.Printf("warning: %s: configuration %v rejected: %v", family.Name, params, err)
		return math.Inf(-1)
	}
	set, err := model.Fit(data)
	if err != nil {
		log.Printf("warning: %s: fit failed for %v: %v", family.Name, params, err)
		return math.Inf(-1)
	}
	return scorer.Score(set, truth)
}
