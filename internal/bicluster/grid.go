package bicluster

import "sort"

// Grid maps a hyperparameter name to its candidate values. An empty grid
// expands to a single empty configuration (the family's defaults).
type Grid map[string][]any

// Expand enumerates every combination of candidate values. Iteration order is
// deterministic: parameter names are visited sorted, values in declared order,
// with the last parameter varying fastest. Evaluator tie breaks depend on
// this order being stable across runs.
func (g Grid) Expand() []Params {
	if len(g) == 0 {
		return []Params{{}}
	}

	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)

	combos := []Params{{}}
	for _, name := range names {
		values := g[name]
		next := make([]Params, 0, len(combos)*len(values))
		for _, base := range combos {
			for _, v := range values {
				p := make(Params, len(base)+1)
				for k, bv := range base {
					p[k] = bv
				}
				p[name] = v
				next = append(next, p)
			}
		}
		combos = next
	}
	return combos
}

// Size returns the number of configurations Expand will produce.
func (g Grid) Size() int {
	n := 1
	for _, values := range g {
		n *= len(values)
	}
	return n
}
