package dataset_test

import (
	"math/rand/v2"
	"testing"

	"github.com/skarland/clusterbench/internal/dataset"
)

func blocksSpec() dataset.Spec {
	return dataset.Spec{
		Name:      "blocks-small",
		Rows:      20,
		Cols:      12,
		Clusters:  3,
		Structure: dataset.StructureBlocks,
		Noise:     0.5,
		MinValue:  10,
		MaxValue:  100,
	}
}

func TestGenerateBlocks(t *testing.T) {
	ds, err := dataset.Generate(blocksSpec(), rand.New(rand.NewPCG(1, 0)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	n, d := ds.Data.Dims()
	if n != 20 || d != 12 {
		t.Errorf("data shape %dx%d, want 20x12", n, d)
	}
	if ds.Truth.Len() != 3 {
		t.Errorf("truth has %d biclusters, want 3", ds.Truth.Len())
	}
	for k := 0; k < ds.Truth.Len(); k++ {
		if len(ds.Truth.Rows[k]) != 20 || len(ds.Truth.Cols[k]) != 12 {
			t.Errorf("bicluster %d shape %dx%d, want 20x12", k, len(ds.Truth.Rows[k]), len(ds.Truth.Cols[k]))
		}
	}
	// Each sample belongs to exactly one bicluster.
	for i := 0; i < n; i++ {
		members := 0
		for k := 0; k < ds.Truth.Len(); k++ {
			if ds.Truth.Rows[k][i] {
				members++
			}
		}
		if members != 1 {
			t.Errorf("sample %d belongs to %d biclusters, want 1", i, members)
		}
	}
}

func TestGenerateCheckerboard(t *testing.T) {
	spec := blocksSpec()
	spec.Structure = dataset.StructureCheckerboard
	spec.Clusters = 2
	ds, err := dataset.Generate(spec, rand.New(rand.NewPCG(1, 0)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if ds.Truth.Len() != 4 {
		t.Errorf("truth has %d biclusters, want 2*2", ds.Truth.Len())
	}
	// Every cell is covered by exactly one bicluster of the outer product.
	n, d := ds.Data.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			covered := 0
			for k := 0; k < ds.Truth.Len(); k++ {
				if ds.Truth.Rows[k][i] && ds.Truth.Cols[k][j] {
					covered++
				}
			}
			if covered != 1 {
				t.Fatalf("cell (%d,%d) covered by %d biclusters, want 1", i, j, covered)
			}
		}
	}
}

func TestGenerateSignalDominatesNoise(t *testing.T) {
	spec := blocksSpec()
	spec.Noise = 0
	ds, err := dataset.Generate(spec, rand.New(rand.NewPCG(2, 0)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	n, d := ds.Data.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			inBlock := false
			for k := 0; k < ds.Truth.Len(); k++ {
				if ds.Truth.Rows[k][i] && ds.Truth.Cols[k][j] {
					inBlock = true
				}
			}
			v := ds.Data.At(i, j)
			if inBlock && v < spec.MinValue {
				t.Fatalf("block cell (%d,%d) = %g, below min_value %g", i, j, v, spec.MinValue)
			}
			if !inBlock && v != 0 {
				t.Fatalf("background cell (%d,%d) = %g, want 0 without noise", i, j, v)
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := dataset.Generate(blocksSpec(), rand.New(rand.NewPCG(9, 3)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := dataset.Generate(blocksSpec(), rand.New(rand.NewPCG(9, 3)))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	n, d := a.Data.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < d; j++ {
			if a.Data.At(i, j) != b.Data.At(i, j) {
				t.Fatalf("same seed produced different data at (%d,%d)", i, j)
			}
		}
	}
}

func TestSpecValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*dataset.Spec)
	}{
		{"unknown structure", func(s *dataset.Spec) { s.Structure = "spiral" }},
		{"too small", func(s *dataset.Spec) { s.Rows = 1 }},
		{"too few clusters", func(s *dataset.Spec) { s.Clusters = 1 }},
		{"clusters exceed shape", func(s *dataset.Spec) { s.Clusters = 50 }},
		{"negative noise", func(s *dataset.Spec) { s.Noise = -1 }},
		{"inverted bounds", func(s *dataset.Spec) { s.MinValue = 100; s.MaxValue = 10 }},
	}
	for _, tc := range cases {
		spec := blocksSpec()
		tc.mutate(&spec)
		if err := spec.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
	if err := blocksSpec().Validate(); err != nil {
		t.Errorf("valid spec rejected: %v", err)
	}
}
