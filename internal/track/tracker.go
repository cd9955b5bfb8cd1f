// Package track accumulates win counts and score histories across trials.
package track

import "fmt"

// Result is one class's winning (family, score) pair from a single trial.
type Result struct {
	Family string
	Score  float64
}

type key struct {
	class  string
	family string
}

// record holds the per-(class, family) statistics. Both fields grow
// monotonically and are never rewritten.
type record struct {
	wins   int
	scores []float64
}

// Tracker maintains, per data class, the win counter and score history of
// every model family. Label sets are fixed at construction; class and family
// slices keep registration order, which settles every tie deterministically.
type Tracker struct {
	classes  []string
	families []string
	records  map[key]*record
	trials   int
}

// New builds a tracker with zero counts and empty histories for every
// (class, family) pair.
func New(classes, families []string) (*Tracker, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("tracker needs at least one data class")
	}
	if len(families) == 0 {
		return nil, fmt.Errorf("tracker needs at least one model family")
	}
	t := &Tracker{
		classes:  append([]string(nil), classes...),
		families: append([]string(nil), families...),
		records:  make(map[key]*record, len(classes)*len(families)),
	}
	for _, c := range classes {
		for _, f := range families {
			k := key{class: c, family: f}
			if _, dup := t.records[k]; dup {
				return nil, fmt.Errorf("duplicate label pair (%q, %q)", c, f)
			}
			t.records[k] = &record{}
		}
	}
	return t, nil
}

// Update records one trial: for every class, the winner's counter is
// incremented and its score appended. The update is atomic — every label is
// validated before anything mutates, so a bad trial leaves no partial state.
// Non-winning families are untouched.
func (t *Tracker) Update(results map[string]Result) error {
	if len(results) != len(t.classes) {
		return fmt.Errorf("trial has results for %d classes, tracker has %d", len(results), len(t.classes))
	}
	for _, c := range t.classes {
		res, ok := results[c]
		if !ok {
			return fmt.Errorf("trial is missing a result for class %q", c)
		}
		if _, ok := t.records[key{class: c, family: res.Family}]; !ok {
			return fmt.Errorf("class %q: unknown model family %q", c, res.Family)
		}
	}

	for _, c := range t.classes {
		res := results[c]
		rec := t.records[key{class: c, family: res.Family}]
		rec.wins++
		rec.scores = append(rec.scores, res.Score)
	}
	t.trials++
	return nil
}

// Wins returns the win counter for one (class, family) pair.
func (t *Tracker) Wins(class, family string) (int, error) {
	rec, ok := t.records[key{class: class, family: family}]
	if !ok {
		return 0, fmt.Errorf("unknown label pair (%q, %q)", class, family)
	}
	return rec.wins, nil
}

// Scores returns a copy of the score history for one (class, family) pair,
// in trial order.
func (t *Tracker) Scores(class, family string) ([]float64, error) {
	rec, ok := t.records[key{class: class, family: family}]
	if !ok {
		return nil, fmt.Errorf("unknown label pair (%q, %q)", class, family)
	}
	return append([]float64(nil), rec.scores...), nil
}

// Winners returns, per class, the family with the most wins. Ties — and the
// degenerate all-zero case before any trial — resolve to the family
// registered earliest, so the result is deterministic at any point.
func (t *Tracker) Winners() map[string]string {
	winners := make(map[string]string, len(t.classes))
	for _, c := range t.classes {
		best := t.families[0]
		bestWins := t.records[key{class: c, family: best}].wins
		for _, f := range t.families[1:] {
			if w := t.records[key{class: c, family: f}].wins; w > bestWins {
				best, bestWins = f, w
			}
		}
		winners[c] = best
	}
	return winners
}

// Trials returns the number of updates recorded so far.
func (t *Tracker) Trials() int { return t.trials }

// Classes returns the class labels in registration order.
func (t *Tracker) Classes() []string { return append([]string(nil), t.classes...) }

// Families returns the family labels in registration order.
func (t *Tracker) Families() []string { return append([]string(nil), t.families...) }
