// Package experiment drives repeated comparison trials across data classes
// and aggregates their outcomes.
package experiment

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/skarland/clusterbench/internal/bicluster"
	"github.com/skarland/clusterbench/internal/evaluate"
	"github.com/skarland/clusterbench/internal/score"
	"github.com/skarland/clusterbench/internal/track"
)

// Entry is one data class under test: its label, the generated data matrix,
// and the ground-truth partition the matrix was built from.
type Entry struct {
	Class string
	Data  *mat.Dense
	Truth *bicluster.Set
}

// Observer is called after each (trial, class) evaluation completes, in
// class order within a trial. Trials are numbered from 1.
type Observer func(trial int, class string, out evaluate.Outcome, elapsed time.Duration)

// Orchestrator runs Trials full passes over a set of data classes, comparing
// every model family per class and feeding per-class winners into a
// performance tracker.
type Orchestrator struct {
	Families []bicluster.Family
	Scorer   score.Scorer
	Trials   int
	// Seed fixes all shuffling and model initialization. Each (trial, class)
	// pair gets its own PCG stream derived from it, so results reproduce
	// for a fixed seed and class order regardless of worker count.
	Seed uint64
	// Workers bounds concurrent class evaluations within a trial. Zero or
	// one means sequential.
	Workers  int
	Observer Observer
}

// Results exposes the accumulated state of a finished (or mid-flight) run.
type Results struct {
	tracker *track.Tracker
	latest  map[string]evaluate.Outcome
}

// Run executes the experiment. The mode is validated before any trial
// starts; an invalid or unimplemented mode returns an error with no state
// recorded.
func (o *Orchestrator) Run(entries []Entry, mode evaluate.Mode) (*Results, error) {
	if err := evaluate.ValidateMode(mode); err != nil {
		return nil, err
	}
	if o.Trials < 1 {
		return nil, fmt.Errorf("trials must be at least 1, got %d", o.Trials)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no data classes to run")
	}

	classes := make([]string, len(entries))
	seen := make(map[string]bool, len(entries))
	for i, e := range entries {
		if seen[e.Class] {
			return nil, fmt.Errorf("duplicate data class %q", e.Class)
		}
		seen[e.Class] = true
		classes[i] = e.Class
	}
	families := make([]string, len(o.Families))
	for i, f := range o.Families {
		families[i] = f.Name
	}

	tracker, err := track.New(classes, families)
	if err != nil {
		return nil, err
	}
	comparison := &evaluate.Comparison{Families: o.Families, Scorer: o.Scorer}
	results := &Results{
		tracker: tracker,
		latest:  make(map[string]evaluate.Outcome, len(entries)),
	}

	for trial := 1; trial <= o.Trials; trial++ {
		outcomes := make([]evaluate.Outcome, len(entries))
		elapsed := make([]time.Duration, len(entries))

		evalClass := func(i int) error {
			e := entries[i]
			rng := o.trialRand(trial, i)
			start := time.Now()
			out, err := comparison.Run(e.Data, e.Truth, mode, rng)
			if err != nil {
				return fmt.Errorf("trial %d, class %q: %w", trial, e.Class, err)
			}
			outcomes[i] = out
			elapsed[i] = time.Since(start)
			return nil
		}

		if o.Workers > 1 {
			jobs := make([]job, len(entries))
			for i := range entries {
				i := i
				jobs[i] = func() error { return evalClass(i) }
			}
			if errs := runPool(o.Workers, jobs); len(errs) > 0 {
				return nil, errs[0]
			}
		} else {
			for i := range entries {
				if err := evalClass(i); err != nil {
					return nil, err
				}
			}
		}

		// One tracker update per trial keeps the win counter and score
		// history in lockstep even when classes were evaluated in parallel.
		update := make(map[string]track.Result, len(entries))
		for i, e := range entries {
			update[e.Class] = track.Result{Family: outcomes[i].Family, Score: outcomes[i].Score}
			results.latest[e.Class] = outcomes[i]
		}
		if err := tracker.Update(update); err != nil {
			return nil, fmt.Errorf("trial %d: %w", trial, err)
		}
		if o.Observer != nil {
			for i, e := range entries {
				o.Observer(trial, e.Class, outcomes[i], elapsed[i])
			}
		}
	}
	return results, nil
}

// trialRand derives the deterministic random stream for one (trial, class)
// evaluation.
func (o *Orchestrator) trialRand(trial, classIdx int) *rand.Rand {
	return rand.New(rand.NewPCG(o.Seed, uint64(trial)<<32|uint64(classIdx)))
}

// BestModels returns the winning triple per class from the most recent pass.
func (r *Results) BestModels() map[string]evaluate.Outcome {
	out := make(map[string]evaluate.Outcome, len(r.latest))
	for c, o := range r.latest {
		out[c] = o
	}
	return out
}

// WinCounts returns the cumulative win counter per (class, family).
func (r *Results) WinCounts() map[string]map[string]int {
	out := make(map[string]map[string]int)
	for _, c := range r.tracker.Classes() {
		out[c] = make(map[string]int)
		for _, f := range r.tracker.Families() {
			wins, _ := r.tracker.Wins(c, f)
			out[c][f] = wins
		}
	}
	return out
}

// ScoreHistories returns the cumulative per-(class, family) score histories
// in trial order. Only winning scores are recorded.
func (r *Results) ScoreHistories() map[string]map[string][]float64 {
	out := make(map[string]map[string][]float64)
	for _, c := range r.tracker.Classes() {
		out[c] = make(map[string][]float64)
		for _, f := range r.tracker.Families() {
			scores, _ := r.tracker.Scores(c, f)
			out[c][f] = scores
		}
	}
	return out
}

// Winners returns the per-class winning family by cumulative win count.
func (r *Results) Winners() map[string]string { return r.tracker.Winners() }

// Trials returns the number of completed trials.
func (r *Results) Trials() int { return r.tracker.Trials() }

// ClassSummary is one row of the performance report.
type ClassSummary struct {
	Class     string  `json:"class"`
	Winner    string  `json:"winner"`
	Wins      int     `json:"wins"`
	Trials    int     `json:"trials"`
	MeanScore float64 `json:"mean_score"`
	StdScore  float64 `json:"std_score"`
}

// Report derives the per-class winner summary: winning family with mean and
// population standard deviation of its recorded score history. Classes keep
// their registration order.
func (r *Results) Report() []ClassSummary {
	winners := r.tracker.Winners()
	summaries := make([]ClassSummary, 0, len(r.tracker.Classes()))
	for _, c := range r.tracker.Classes() {
		winner := winners[c]
		scores, _ := r.tracker.Scores(c, winner)
		wins, _ := r.tracker.Wins(c, winner)
		mean, std := meanPopStd(scores)
		summaries = append(summaries, ClassSummary{
			Class:     c,
			Winner:    winner,
			Wins:      wins,
			Trials:    r.tracker.Trials(),
			MeanScore: mean,
			StdScore:  std,
		})
	}
	return summaries
}

// meanPopStd returns the mean and population standard deviation of scores.
// An empty history yields zeros (a class queried before any trial).
func meanPopStd(scores []float64) (mean, std float64) {
	if len(scores) == 0 {
		return 0, 0
	}
	mean = stat.Mean(scores, nil)
	var ss float64
	for _, s := range scores {
		d := s - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss / float64(len(scores)))
}
