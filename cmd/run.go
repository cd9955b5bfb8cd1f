package cmd

import (
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/skarland/clusterbench/internal/bicluster"
	"github.com/skarland/clusterbench/internal/config"
	"github.com/skarland/clusterbench/internal/dataset"
	"github.com/skarland/clusterbench/internal/evaluate"
	"github.com/skarland/clusterbench/internal/experiment"
	"github.com/skarland/clusterbench/internal/report"
	"github.com/skarland/clusterbench/internal/result"
	"github.com/skarland/clusterbench/internal/score"
)

var (
	flagClass    string
	flagModel    string
	flagTrials   int
	flagMode     string
	flagSeed     int64
	flagParallel int
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute an experiment run",
		RunE:  runExperiment,
	}
	cmd.Flags().StringVar(&flagClass, "class", "", "filter to a single data class")
	cmd.Flags().StringVar(&flagModel, "model", "", "filter to a single model family")
	cmd.Flags().IntVar(&flagTrials, "trials", 0, "override trial count")
	cmd.Flags().StringVar(&flagMode, "mode", "", "override comparison mode (score, time)")
	cmd.Flags().Int64Var(&flagSeed, "seed", -1, "override random seed")
	cmd.Flags().IntVar(&flagParallel, "parallel", 0, "max concurrent class evaluations per trial")
	return cmd
}

func runExperiment(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if flagTrials > 0 {
		cfg.Trials = flagTrials
	}
	if flagMode != "" {
		cfg.Mode = flagMode
	}
	if flagSeed >= 0 {
		cfg.Seed = uint64(flagSeed)
	}
	if flagParallel > 0 {
		cfg.Workers = flagParallel
	}

	mode, err := evaluate.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}

	classes := filterClasses(cfg.Classes, flagClass)
	if len(classes) == 0 {
		return fmt.Errorf("no data class matches %q", flagClass)
	}
	models := filterModels(cfg.Models, flagModel)
	if len(models) == 0 {
		return fmt.Errorf("no model matches %q", flagModel)
	}

	families, err := buildFamilies(models)
	if err != nil {
		return err
	}
	entries, err := buildEntries(classes, cfg.Seed)
	if err != nil {
		return err
	}

	runDir, err := result.CreateRunDir(cfg.Results.Dir)
	if err != nil {
		return err
	}
	fmt.Printf("Run directory: %s\n", runDir)

	var writeErr error
	orch := &experiment.Orchestrator{
		Families: families,
		Scorer:   score.Consensus{},
		Trials:   cfg.Trials,
		Seed:     cfg.Seed,
		Workers:  cfg.Workers,
		Observer: func(trial int, class string, out evaluate.Outcome, elapsed time.Duration) {
			fmt.Printf("Trial %d/%d × %s: %s (score %.3f, %s)\n",
				trial, cfg.Trials, class, out.Family, out.Score, elapsed.Round(time.Millisecond))
			rec := recordFor(class, trial, out, elapsed, mode)
			if err := result.WriteTrialRecord(runDir, rec); err != nil && writeErr == nil {
				writeErr = err
			}
		},
	}

	if _, err := orch.Run(entries, mode); err != nil {
		return err
	}
	if writeErr != nil {
		return fmt.Errorf("writing trial records: %w", writeErr)
	}

	fmt.Println("\n--- Results ---")
	return report.Generate(runDir, "table", os.Stdout)
}

// recordFor converts one outcome into its persisted form. A -Inf score (every
// configuration failed) is not representable in JSON and becomes a failed
// record with a placeholder score.
func recordFor(class string, trial int, out evaluate.Outcome, elapsed time.Duration, mode evaluate.Mode) *result.TrialRecord {
	rec := &result.TrialRecord{
		Class:      class,
		Trial:      trial,
		Winner:     out.Family,
		Params:     out.Params,
		Score:      out.Score,
		Status:     result.StatusScored,
		DurationMS: elapsed.Milliseconds(),
		Mode:       string(mode),
	}
	if math.IsInf(out.Score, -1) {
		rec.Score = -1
		rec.Status = result.StatusFailed
	}
	return rec
}

func buildFamilies(models []config.Model) ([]bicluster.Family, error) {
	families := make([]bicluster.Family, 0, len(models))
	for _, m := range models {
		fam, err := m.ToFamily()
		if err != nil {
			return nil, err
		}
		families = append(families, fam)
	}
	return families, nil
}

// buildEntries generates one dataset per class. Each class gets its own
// stream off the experiment seed, disjoint from the per-trial streams the
// orchestrator derives (those all carry a non-zero trial number in the high
// bits).
func buildEntries(classes []config.Class, seed uint64) ([]experiment.Entry, error) {
	entries := make([]experiment.Entry, 0, len(classes))
	for i, c := range classes {
		rng := rand.New(rand.NewPCG(seed, uint64(i)))
		ds, err := dataset.Generate(c.Spec(), rng)
		if err != nil {
			return nil, err
		}
		entries = append(entries, experiment.Entry{Class: c.Name, Data: ds.Data, Truth: ds.Truth})
	}
	return entries, nil
}

func filterClasses(classes []config.Class, name string) []config.Class {
	if name == "" {
		return classes
	}
	var filtered []config.Class
	for _, c := range classes {
		if c.Name == name {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

func filterModels(models []config.Model, name string) []config.Model {
	if name == "" {
		return models
	}
	var filtered []config.Model
	for _, m := range models {
		if m.Name == name || m.Family == name {
			filtered = append(filtered, m)
		}
	}
	return filtered
}
