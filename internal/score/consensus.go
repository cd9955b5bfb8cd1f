// Package score measures similarity between bicluster partitions.
package score

import "github.com/skarland/clusterbench/internal/bicluster"

// Scorer computes a similarity coefficient in [0, 1] between a candidate
// bicluster set and a ground-truth set: 1 means identical partitions, 0
// disjoint or degenerate ones.
type Scorer interface {
	Score(candidate, truth *bicluster.Set) float64
}

// Func adapts a plain function into a Scorer.
type Func func(candidate, truth *bicluster.Set) float64

func (f Func) Score(candidate, truth *bicluster.Set) float64 { return f(candidate, truth) }

// Consensus is the Jaccard consensus score: each bicluster is the set of
// (row, column) cells it covers, candidate and truth biclusters are matched
// one-to-one to maximize total pairwise Jaccard similarity, and the matched
// total is divided by the larger set size.
type Consensus struct{}

func (Consensus) Score(candidate, truth *bicluster.Set) float64 {
	// Degenerate clusterings are never rewarded.
	if candidate.Empty() || truth.Empty() {
		return 0
	}

	na, nb := candidate.Len(), truth.Len()
	sim := make([][]float64, na)
	for i := range sim {
		sim[i] = make([]float64, nb)
		for j := range sim[i] {
			sim[i][j] = jaccard(
				candidate.Rows[i], candidate.Cols[i],
				truth.Rows[j], truth.Cols[j],
			)
		}
	}

	larger := na
	if nb > larger {
		larger = nb
	}
	return maxAssignment(sim) / float64(larger)
}

// jaccard computes |A∩B| / |A∪B| where A and B are the cell sets rows×cols
// of two biclusters. Intersections factor per axis, so no cell sets are
// materialized.
func jaccard(rowsA, colsA, rowsB, colsB []bool) float64 {
	interRows := countBoth(rowsA, rowsB)
	interCols := countBoth(colsA, colsB)
	inter := interRows * interCols
	sizeA := countTrue(rowsA) * countTrue(colsA)
	sizeB := countTrue(rowsB) * countTrue(colsB)
	union := sizeA + sizeB - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func countTrue(v []bool) int {
	n := 0
	for _, b := range v {
		if b {
			n++
		}
	}
	return n
}

func countBoth(a, b []bool) int {
	n := 0
	for i := range a {
		if a[i] && b[i] {
			n++
		}
	}
	return n
}
