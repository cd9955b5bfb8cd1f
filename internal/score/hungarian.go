package score

import "math"

// maxAssignment returns the maximum total similarity achievable by matching
// rows of sim to columns one-to-one (the assignment problem). The smaller
// dimension is fully matched.
func maxAssignment(sim [][]float64) float64 {
	if len(sim) == 0 || len(sim[0]) == 0 {
		return 0
	}
	// Solve as cost minimization over the negated matrix, rows <= columns.
	n, m := len(sim), len(sim[0])
	cost := make([][]float64, 0, n)
	if n <= m {
		for i := 0; i < n; i++ {
			row := make([]float64, m)
			for j := 0; j < m; j++ {
				row[j] = -sim[i][j]
			}
			cost = append(cost, row)
		}
	} else {
		n, m = m, n
		for j := 0; j < n; j++ {
			row := make([]float64, m)
			for i := 0; i < m; i++ {
				row[i] = -sim[i][j]
			}
			cost = append(cost, row)
		}
	}
	return -hungarian(cost)
}

// hungarian solves the rectangular assignment problem for cost (n rows,
// m >= n columns), returning the minimum total cost of matching every row to
// a distinct column. Kuhn-Munkres with row/column potentials, O(n²m).
func hungarian(cost [][]float64) float64 {
	n, m := len(cost), len(cost[0])

	u := make([]float64, n+1)
	v := make([]float64, m+1)
	match := make([]int, m+1) // match[j] = row assigned to column j, 0 = free
	way := make([]int, m+1)

	for i := 1; i <= n; i++ {
		match[0] = i
		j0 := 0
		minv := make([]float64, m+1)
		used := make([]bool, m+1)
		for j := range minv {
			minv[j] = math.Inf(1)
		}

		// Grow an alternating tree from row i until a free column is found.
		for {
			used[j0] = true
			i0, j1 := match[j0], 0
			delta := math.Inf(1)
			for j := 1; j <= m; j++ {
				if used[j] {
					continue
				}
				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= m; j++ {
				if used[j] {
					u[match[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if match[j0] == 0 {
				break
			}
		}

		// Augment along the found path.
		for j0 != 0 {
			j1 := way[j0]
			match[j0] = match[j1]
			j0 = j1
		}
	}

	var total float64
	for j := 1; j <= m; j++ {
		if match[j] != 0 {
			total += cost[match[j]-1][j-1]
		}
	}
	return total
}
