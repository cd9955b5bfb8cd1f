package bicluster

import "fmt"

// Set is a collection of biclusters over one data matrix. Rows[k][i] reports
// whether sample i belongs to bicluster k, Cols[k][j] whether feature j does.
// Ground-truth partitions and model output share this representation.
type Set struct {
	Rows [][]bool `json:"rows"`
	Cols [][]bool `json:"cols"`
}

// Len returns the number of biclusters in the set.
func (s *Set) Len() int {
	return len(s.Rows)
}

// Empty reports whether either partition side is degenerate. A model that
// produces no row or no column assignments gets scored zero, never an error.
func (s *Set) Empty() bool {
	return len(s.Rows) == 0 || len(s.Cols) == 0
}

// Reindex returns a copy of the set with sample and feature axes permuted.
// rowPerm and colPerm are the same permutations applied to the data matrix,
// so the returned set stays aligned with the shuffled data: if shuffled
// sample i came from original sample rowPerm[i], then the new Rows[k][i] is
// the old Rows[k][rowPerm[i]].
func (s *Set) Reindex(rowPerm, colPerm []int) (*Set, error) {
	out := &Set{
		Rows: make([][]bool, len(s.Rows)),
		Cols: make([][]bool, len(s.Cols)),
	}
	for k, rows := range s.Rows {
		if len(rowPerm) != len(rows) {
			return nil, fmt.Errorf("row permutation has %d entries, bicluster %d has %d samples", len(rowPerm), k, len(rows))
		}
		out.Rows[k] = make([]bool, len(rows))
		for i, src := range rowPerm {
			out.Rows[k][i] = rows[src]
		}
	}
	for k, cols := range s.Cols {
		if len(colPerm) != len(cols) {
			return nil, fmt.Errorf("column permutation has %d entries, bicluster %d has %d features", len(colPerm), k, len(cols))
		}
		out.Cols[k] = make([]bool, len(cols))
		for j, src := range colPerm {
			out.Cols[k][j] = cols[src]
		}
	}
	return out, nil
}

// FromLabels builds a set of k biclusters from joint row and column cluster
// labels, as produced by coclustering: bicluster c holds the samples labeled
// c and the features labeled c.
func FromLabels(rowLabels, colLabels []int, k int) *Set {
	s := &Set{
		Rows: make([][]bool, k),
		Cols: make([][]bool, k),
	}
	for c := 0; c < k; c++ {
		s.Rows[c] = make([]bool, len(rowLabels))
		s.Cols[c] = make([]bool, len(colLabels))
		for i, l := range rowLabels {
			s.Rows[c][i] = l == c
		}
		for j, l := range colLabels {
			s.Cols[c][j] = l == c
		}
	}
	return s
}

// FromCheckerboard builds the outer product of independent row and column
// partitions: every (row cluster, column cluster) pair is one bicluster,
// nRow*nCol in total, ordered row-major.
func FromCheckerboard(rowLabels []int, nRow int, colLabels []int, nCol int) *Set {
	s := &Set{
		Rows: make([][]bool, nRow*nCol),
		Cols: make([][]bool, nRow*nCol),
	}
	for r := 0; r < nRow; r++ {
		for c := 0; c < nCol; c++ {
			k := r*nCol + c
			s.Rows[k] = make([]bool, len(rowLabels))
			s.Cols[k] = make([]bool, len(colLabels))
			for i, l := range rowLabels {
				s.Rows[k][i] = l == r
			}
			for j, l := range colLabels {
				s.Cols[k][j] = l == c
			}
		}
	}
	return s
}
