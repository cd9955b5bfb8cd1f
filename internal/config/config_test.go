package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/skarland/clusterbench/internal/config"
)

func TestLoadMinimal(t *testing.T) {
	cfg, err := config.Load("../../testdata/minimal.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Trials != 1 {
		t.Errorf("expected 1 trial, got %d", cfg.Trials)
	}
	if len(cfg.Classes) != 1 {
		t.Fatalf("expected 1 class, got %d", len(cfg.Classes))
	}
	if len(cfg.Models) != 1 {
		t.Fatalf("expected 1 model, got %d", len(cfg.Models))
	}

	// Defaults fill everything the file left out.
	if cfg.Mode != "score" {
		t.Errorf("expected default mode 'score', got %q", cfg.Mode)
	}
	if cfg.Workers != 1 {
		t.Errorf("expected default workers 1, got %d", cfg.Workers)
	}
	if cfg.Results.Dir != "results" {
		t.Errorf("expected default results dir 'results', got %q", cfg.Results.Dir)
	}
	c := cfg.Classes[0]
	if c.Structure != "blocks" {
		t.Errorf("expected default structure 'blocks', got %q", c.Structure)
	}
	if c.MinValue != 10 || c.MaxValue != 100 {
		t.Errorf("expected default value range [10, 100], got [%g, %g]", c.MinValue, c.MaxValue)
	}
	if cfg.Models[0].Name != "spectral-coclustering" {
		t.Errorf("expected model name to default to the family, got %q", cfg.Models[0].Name)
	}
}

func TestLoadFull(t *testing.T) {
	cfg, err := config.Load("../../testdata/full.yaml")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Seed)
	}
	if len(cfg.Classes) != 3 {
		t.Errorf("expected 3 classes, got %d", len(cfg.Classes))
	}
	if len(cfg.Models) != 3 {
		t.Errorf("expected 3 models, got %d", len(cfg.Models))
	}
	for _, c := range cfg.Classes {
		if c.Name == "checkerboard" && c.Structure != "checkerboard" {
			t.Errorf("expected checkerboard structure, got %q", c.Structure)
		}
	}
	for _, m := range cfg.Models {
		if m.Name == "cocluster" && len(m.Grid["clusters"]) != 4 {
			t.Errorf("expected 4 cluster candidates on cocluster, got %v", m.Grid["clusters"])
		}
		fam, err := m.ToFamily()
		if err != nil {
			t.Errorf("model %q: %v", m.Name, err)
		}
		if fam.Name != m.Name {
			t.Errorf("family name %q, want %q", fam.Name, m.Name)
		}
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := config.Load("nonexistent.yaml")
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadInvalid(t *testing.T) {
	_, err := config.Load("../../testdata/invalid.yaml")
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"zero trials", `
classes:
  - {name: a, rows: 10, cols: 10, clusters: 2}
models:
  - family: spectral-coclustering
`},
		{"bad mode", `
trials: 1
mode: speed
classes:
  - {name: a, rows: 10, cols: 10, clusters: 2}
models:
  - family: spectral-coclustering
`},
		{"no classes", `
trials: 1
models:
  - family: spectral-coclustering
`},
		{"duplicate class", `
trials: 1
classes:
  - {name: a, rows: 10, cols: 10, clusters: 2}
  - {name: a, rows: 10, cols: 10, clusters: 2}
models:
  - family: spectral-coclustering
`},
		{"bad shape", `
trials: 1
classes:
  - {name: a, rows: 1, cols: 10, clusters: 2}
models:
  - family: spectral-coclustering
`},
		{"no models", `
trials: 1
classes:
  - {name: a, rows: 10, cols: 10, clusters: 2}
`},
		{"unknown family", `
trials: 1
classes:
  - {name: a, rows: 10, cols: 10, clusters: 2}
models:
  - family: dbscan
`},
		{"duplicate model name", `
trials: 1
classes:
  - {name: a, rows: 10, cols: 10, clusters: 2}
models:
  - {name: m, family: spectral-coclustering}
  - {name: m, family: spectral-biclustering}
`},
	}
	for _, tc := range cases {
		if _, err := config.Load(writeConfig(t, tc.body)); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}
