package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/skarland/clusterbench/internal/bicluster"
	"github.com/skarland/clusterbench/internal/dataset"
	"github.com/skarland/clusterbench/internal/evaluate"
)

type Config struct {
	Seed    uint64  `yaml:"seed"`
	Trials  int     `yaml:"trials"`
	Mode    string  `yaml:"mode"`
	Workers int     `yaml:"workers"`
	Results Results `yaml:"results"`
	Classes []Class `yaml:"classes"`
	Models  []Model `yaml:"models"`
}

type Results struct {
	Dir string `yaml:"dir"`
}

// Class describes one synthetic test data class.
type Class struct {
	Name      string  `yaml:"name"`
	Rows      int     `yaml:"rows"`
	Cols      int     `yaml:"cols"`
	Clusters  int     `yaml:"clusters"`
	Structure string  `yaml:"structure"`
	Noise     float64 `yaml:"noise"`
	MinValue  float64 `yaml:"min_value"`
	MaxValue  float64 `yaml:"max_value"`
}

// Model names one competing family and its hyperparameter grid. Declaration
// order in the config is the registration order, which breaks score ties.
type Model struct {
	Name   string           `yaml:"name"`
	Family string           `yaml:"family"`
	Grid   map[string][]any `yaml:"grid"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Trials < 1 {
		return fmt.Errorf("trials must be at least 1")
	}
	if cfg.Mode == "" {
		cfg.Mode = string(evaluate.ModeScore)
	}
	if _, err := evaluate.ParseMode(cfg.Mode); err != nil {
		return err
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Results.Dir == "" {
		cfg.Results.Dir = "results"
	}

	if len(cfg.Classes) == 0 {
		return fmt.Errorf("no data classes defined")
	}
	seenClass := map[string]bool{}
	for i := range cfg.Classes {
		c := &cfg.Classes[i]
		if c.Name == "" {
			return fmt.Errorf("class %d: name is required", i)
		}
		if seenClass[c.Name] {
			return fmt.Errorf("class %q: duplicate name", c.Name)
		}
		seenClass[c.Name] = true
		if c.Structure == "" {
			c.Structure = string(dataset.StructureBlocks)
		}
		if c.MinValue == 0 && c.MaxValue == 0 {
			c.MinValue, c.MaxValue = 10, 100
		}
		if err := c.Spec().Validate(); err != nil {
			return err
		}
	}

	if len(cfg.Models) == 0 {
		return fmt.Errorf("no models defined")
	}
	seenModel := map[string]bool{}
	for i := range cfg.Models {
		m := &cfg.Models[i]
		if m.Family == "" {
			return fmt.Errorf("model %d: family is required", i)
		}
		if _, err := bicluster.Lookup(m.Family); err != nil {
			return fmt.Errorf("model %d: %w", i, err)
		}
		if m.Name == "" {
			m.Name = m.Family
		}
		if seenModel[m.Name] {
			return fmt.Errorf("model %q: duplicate name", m.Name)
		}
		seenModel[m.Name] = true
	}
	return nil
}

// Spec converts the config entry to a dataset spec.
func (c Class) Spec() dataset.Spec {
	return dataset.Spec{
		Name:      c.Name,
		Rows:      c.Rows,
		Cols:      c.Cols,
		Clusters:  c.Clusters,
		Structure: dataset.Structure(c.Structure),
		Noise:     c.Noise,
		MinValue:  c.MinValue,
		MaxValue:  c.MaxValue,
	}
}

// ToFamily resolves the model entry against the built-in registry.
func (m Model) ToFamily() (bicluster.Family, error) {
	ctor, err := bicluster.Lookup(m.Family)
	if err != nil {
		return bicluster.Family{}, err
	}
	return bicluster.Family{
		Name: m.Name,
		New:  ctor,
		Grid: bicluster.Grid(m.Grid),
	}, nil
}
