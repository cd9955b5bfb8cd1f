package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/skarland/clusterbench/internal/result"
)

// ClassSummary is one row of the winner report for a data class.
type ClassSummary struct {
	Class     string  `json:"class"`
	Winner    string  `json:"winner"`
	Wins      int     `json:"wins"`
	Trials    int     `json:"trials"`
	MeanScore float64 `json:"mean_score"`
	StdScore  float64 `json:"std_score"`
}

// Generate reads a run directory's trial records and writes a summary report.
func Generate(runDir, format string, w io.Writer) error {
	records, err := result.ReadRunRecords(runDir)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no trial records found in %s", runDir)
	}

	summaries := Aggregate(records)

	switch format {
	case "markdown":
		return writeMarkdown(summaries, w)
	case "json":
		return writeJSON(summaries, w)
	default:
		return writeTable(summaries, w)
	}
}

// Aggregate rebuilds per-class winner statistics from stored records: the
// family with the most recorded wins per class, with mean and population
// standard deviation of its successfully scored trials. Ties go to the
// family that won earliest.
func Aggregate(records []*result.TrialRecord) []ClassSummary {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Class != records[j].Class {
			return records[i].Class < records[j].Class
		}
		return records[i].Trial < records[j].Trial
	})

	type accum struct {
		trials int
		wins   map[string]int
		order  []string
		scores map[string][]float64
	}
	byClass := map[string]*accum{}
	var classes []string

	for _, rec := range records {
		a, ok := byClass[rec.Class]
		if !ok {
			a = &accum{wins: map[string]int{}, scores: map[string][]float64{}}
			byClass[rec.Class] = a
			classes = append(classes, rec.Class)
		}
		a.trials++
		if _, seen := a.wins[rec.Winner]; !seen {
			a.order = append(a.order, rec.Winner)
		}
		a.wins[rec.Winner]++
		if rec.Status == result.StatusScored {
			a.scores[rec.Winner] = append(a.scores[rec.Winner], rec.Score)
		}
	}

	summaries := make([]ClassSummary, 0, len(classes))
	for _, class := range classes {
		a := byClass[class]
		winner := a.order[0]
		for _, f := range a.order[1:] {
			if a.wins[f] > a.wins[winner] {
				winner = f
			}
		}
		mean, std := meanPopStd(a.scores[winner])
		summaries = append(summaries, ClassSummary{
			Class:     class,
			Winner:    winner,
			Wins:      a.wins[winner],
			Trials:    a.trials,
			MeanScore: mean,
			StdScore:  std,
		})
	}
	return summaries
}

func meanPopStd(scores []float64) (mean, std float64) {
	if len(scores) == 0 {
		return 0, 0
	}
	for _, s := range scores {
		mean += s
	}
	mean /= float64(len(scores))
	var ss float64
	for _, s := range scores {
		d := s - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss/float64(len(scores)))
}

func writeTable(summaries []ClassSummary, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CLASS\tWINNER\tWINS\tTRIALS\tMEAN SCORE\tSTD SCORE")
	fmt.Fprintln(tw, strings.Repeat("-", 72))
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%.3f\t%.3f\n",
			s.Class, s.Winner, s.Wins, s.Trials, s.MeanScore, s.StdScore)
	}
	return tw.Flush()
}

func writeMarkdown(summaries []ClassSummary, w io.Writer) error {
	fmt.Fprintln(w, "| Class | Winner | Wins | Trials | Mean Score | Std Score |")
	fmt.Fprintln(w, "|---|---|---|---|---|---|")
	for _, s := range summaries {
		fmt.Fprintf(w, "| %s | %s | %d | %d | %.3f | %.3f |\n",
			s.Class, s.Winner, s.Wins, s.Trials, s.MeanScore, s.StdScore)
	}
	return nil
}

func writeJSON(summaries []ClassSummary, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summaries)
}
