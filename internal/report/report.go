// Package report renders run summaries into the persisted correctness
// artifact and its human-readable text form.
package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/stellarlinkco/model-bench/internal/evaluator"
	"github.com/stellarlinkco/model-bench/internal/summary"
)

// Filename is the conventional artifact name, written next to the scored
// input table.
const Filename = "correctness_summary.json"

// CategoryEntry is one category's figures in the persisted report.
type CategoryEntry struct {
	AccuracyPercent float64 `json:"accuracy_percent"`
	Correct         int     `json:"correct"`
	Total           int     `json:"total"`
}

// Report is the stable machine-readable summary of a run. The JSON shape is
// a contract and must round-trip unchanged.
type Report struct {
	File            string                               `json:"file"`
	Total           int                                  `json:"total"`
	Correct         int                                  `json:"correct"`
	AccuracyPercent float64                              `json:"accuracy_percent"`
	PerCategory     map[evaluator.Category]CategoryEntry `json:"per_category"`
}

// Render builds the structured report and its fixed-format text rendering.
// Categories appear in the text in first-occurrence order.
func Render(sum *summary.RunSummary) (*Report, string) {
	if sum == nil {
		return nil, ""
	}

	rep := &Report{
		File:            sum.Source,
		Total:           sum.Total,
		Correct:         sum.Correct,
		AccuracyPercent: sum.AccuracyPercent,
		PerCategory:     make(map[evaluator.Category]CategoryEntry, len(sum.PerCategory)),
	}
	for cat, c := range sum.PerCategory {
		rep.PerCategory[cat] = CategoryEntry{
			AccuracyPercent: c.AccuracyPercent,
			Correct:         c.Correct,
			Total:           c.Total,
		}
	}

	var buf bytes.Buffer
	buf.WriteString("=== Correctness Report ===\n")
	fmt.Fprintf(&buf, "File: %s\n", sum.Source)
	fmt.Fprintf(&buf, "Total prompts: %d\n", sum.Total)
	fmt.Fprintf(&buf, "Correct responses: %d\n", sum.Correct)
	fmt.Fprintf(&buf, "Overall accuracy: %s%%\n\n", formatPercent(sum.AccuracyPercent))
	buf.WriteString("Per-category breakdown:\n")
	for _, cat := range sum.Order {
		c := sum.PerCategory[cat]
		fmt.Fprintf(&buf, " - %-10s: %s%% (%d/%d)\n",
			titleCase(string(cat)), formatPercent(c.AccuracyPercent), c.Correct, c.Total)
	}

	return rep, buf.String()
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
