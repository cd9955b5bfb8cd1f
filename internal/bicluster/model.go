package bicluster

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// Model fits a biclustering structure to a data matrix. Implementations see
// only the data, never the ground truth.
type Model interface {
	Fit(data *mat.Dense) (*Set, error)
}

// Params is one hyperparameter configuration drawn from a Grid. Values come
// from YAML or JSON decoding, so numeric types are loose; use the typed
// getters rather than asserting directly.
type Params map[string]any

// Int returns the named parameter as an int, or def when absent.
func (p Params) Int(name string, def int) (int, error) {
	v, ok := p[name]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("parameter %q: expected integer, got %T", name, v)
	}
}

// Float returns the named parameter as a float64, or def when absent.
func (p Params) Float(name string, def float64) (float64, error) {
	v, ok := p[name]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("parameter %q: expected number, got %T", name, v)
	}
}

// String returns the named parameter as a string, or def when absent.
func (p Params) String(name string, def string) (string, error) {
	v, ok := p[name]
	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("parameter %q: expected string, got %T", name, v)
	}
	return s, nil
}

// Constructor builds a model from one configuration. rng seeds any randomized
// initialization so fits reproduce under a fixed experiment seed.
type Constructor func(p Params, rng *rand.Rand) (Model, error)

// Family is one algorithm variant under comparison: a named constructor plus
// the hyperparameter grid searched for it. Registration order of families is
// significant — it breaks score ties throughout the experiment.
type Family struct {
	Name string
	New  Constructor
	Grid Grid
}
