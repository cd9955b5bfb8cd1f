package bicluster_test

import (
	"reflect"
	"testing"

	"github.com/skarland/clusterbench/internal/bicluster"
)

func TestGridExpandEmpty(t *testing.T) {
	combos := bicluster.Grid{}.Expand()
	if len(combos) != 1 {
		t.Fatalf("expected 1 configuration, got %d", len(combos))
	}
	if len(combos[0]) != 0 {
		t.Errorf("expected empty params, got %v", combos[0])
	}
}

func TestGridExpandOrder(t *testing.T) {
	g := bicluster.Grid{
		"b": {1, 2},
		"a": {"x", "y"},
	}
	got := g.Expand()
	want := []bicluster.Params{
		{"a": "x", "b": 1},
		{"a": "x", "b": 2},
		{"a": "y", "b": 1},
		{"a": "y", "b": 2},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d configurations, got %d", len(want), len(got))
	}
	for i := range want {
		if !reflect.DeepEqual(got[i], want[i]) {
			t.Errorf("configuration %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestGridSize(t *testing.T) {
	g := bicluster.Grid{
		"clusters":   {2, 4, 8},
		"method":     {"log", "bistochastic"},
		"components": {6, 9, 12},
	}
	if got := g.Size(); got != 18 {
		t.Errorf("Size = %d, want 18", got)
	}
	if got := len(g.Expand()); got != 18 {
		t.Errorf("len(Expand) = %d, want 18", got)
	}
}
