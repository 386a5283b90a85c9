// Package summary folds per-prompt evaluation results into run-level
// accuracy statistics.
package summary

import (
	"math"

	"github.com/stellarlinkco/model-bench/internal/evaluator"
)

// CategoryStats counts outcomes for one category.
type CategoryStats struct {
	Total   int
	Correct int
}

// CategoryAccuracy is a finalized per-category figure.
type CategoryAccuracy struct {
	AccuracyPercent float64
	Correct         int
	Total           int
}

// RunSummary is the finalized accuracy summary for one run.
// sum(PerCategory[*].Total) == Total and likewise for Correct.
type RunSummary struct {
	Source          string
	Total           int
	Correct         int
	AccuracyPercent float64
	// Order lists categories by first occurrence during accumulation;
	// reports iterate in this order, not sorted.
	Order       []evaluator.Category
	PerCategory map[evaluator.Category]CategoryAccuracy
}

// Aggregator accumulates evaluation results for a single run. It is owned by
// the loop driving that run and is discarded once the summary is emitted.
// Accumulation is commutative, so results may be folded in any order, but the
// aggregator itself is not safe for concurrent use.
type Aggregator struct {
	total   int
	correct int
	order   []evaluator.Category
	stats   map[evaluator.Category]*CategoryStats
}

// NewAggregator returns an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{stats: make(map[evaluator.Category]*CategoryStats)}
}

// Add folds one result into the running totals. Category stats are created
// on first occurrence and never decremented.
func (a *Aggregator) Add(res evaluator.Result) {
	st, ok := a.stats[res.Category]
	if !ok {
		st = &CategoryStats{}
		a.stats[res.Category] = st
		a.order = append(a.order, res.Category)
	}

	a.total++
	st.Total++
	if res.Correct {
		a.correct++
		st.Correct++
	}
}

// AddAll folds a batch of results.
func (a *Aggregator) AddAll(results []evaluator.Result) {
	for _, res := range results {
		a.Add(res)
	}
}

// Total returns the number of results accumulated so far.
func (a *Aggregator) Total() int { return a.total }

// Correct returns the number of correct results accumulated so far.
func (a *Aggregator) Correct() int { return a.correct }

// Finalize computes the run summary from the accumulated stats. A run with
// no results is a defined "no data" state reported as zero accuracy, not a
// division fault; the same holds per category.
func (a *Aggregator) Finalize(source string) *RunSummary {
	out := &RunSummary{
		Source:      source,
		Total:       a.total,
		Correct:     a.correct,
		Order:       append([]evaluator.Category(nil), a.order...),
		PerCategory: make(map[evaluator.Category]CategoryAccuracy, len(a.stats)),
	}

	if a.total > 0 {
		out.AccuracyPercent = round2(float64(a.correct) / float64(a.total) * 100)
	}

	for cat, st := range a.stats {
		acc := 0.0
		if st.Total > 0 {
			acc = round2(float64(st.Correct) / float64(st.Total) * 100)
		}
		out.PerCategory[cat] = CategoryAccuracy{
			AccuracyPercent: acc,
			Correct:         st.Correct,
			Total:           st.Total,
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
