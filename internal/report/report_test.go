package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/stellarlinkco/model-bench/internal/evaluator"
	"github.com/stellarlinkco/model-bench/internal/summary"
)

func sampleSummary() *summary.RunSummary {
	a := summary.NewAggregator()
	a.Add(evaluator.Result{Category: evaluator.CategoryMath, Correct: true})
	a.Add(evaluator.Result{Category: evaluator.CategoryWriting, Correct: true})
	a.Add(evaluator.Result{Category: evaluator.CategoryWriting, Correct: false})
	return a.Finalize("outputs.csv")
}

func TestRender_Text(t *testing.T) {
	t.Parallel()

	_, text := Render(sampleSummary())

	wantLines := []string{
		"=== Correctness Report ===",
		"File: outputs.csv",
		"Total prompts: 3",
		"Correct responses: 2",
		"Overall accuracy: 66.67%",
		"Per-category breakdown:",
		" - Math      : 100% (1/1)",
		" - Writing   : 50% (1/2)",
	}
	for _, line := range wantLines {
		if !strings.Contains(text, line) {
			t.Fatalf("text missing %q:\n%s", line, text)
		}
	}

	// Categories must appear in first-occurrence order.
	if strings.Index(text, "Math") > strings.Index(text, "Writing") {
		t.Fatalf("category order wrong:\n%s", text)
	}
}

func TestRender_Nil(t *testing.T) {
	t.Parallel()

	rep, text := Render(nil)
	if rep != nil || text != "" {
		t.Fatalf("got rep=%v text=%q", rep, text)
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	t.Parallel()

	rep, _ := Render(sampleSummary())
	path := filepath.Join(t.TempDir(), Filename)

	if err := Write(path, rep); err != nil {
		t.Fatalf("Write: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	var got Report
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(&got, rep) {
		t.Fatalf("round trip: got %+v, want %+v", got, *rep)
	}

	// Indented output with the contract's field names.
	s := string(b)
	for _, key := range []string{`"file"`, `"total"`, `"correct"`, `"accuracy_percent"`, `"per_category"`} {
		if !strings.Contains(s, key) {
			t.Fatalf("artifact missing key %s:\n%s", key, s)
		}
	}
	if !strings.Contains(s, "\n  ") {
		t.Fatalf("artifact not indented:\n%s", s)
	}
}

func TestWrite_OverwritesWholesale(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, Filename)

	first, _ := Render(sampleSummary())
	if err := Write(path, first); err != nil {
		t.Fatalf("Write: %v", err)
	}

	a := summary.NewAggregator()
	a.Add(evaluator.Result{Category: evaluator.CategoryCode, Correct: false})
	second, _ := Render(a.Finalize("other.csv"))
	if err := Write(path, second); err != nil {
		t.Fatalf("Write: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var got Report
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.File != "other.csv" || got.Total != 1 {
		t.Fatalf("got %+v, want the second report", got)
	}
}

func TestWrite_NilReport(t *testing.T) {
	t.Parallel()

	if err := Write(filepath.Join(t.TempDir(), Filename), nil); err == nil {
		t.Fatalf("Write: expected error")
	}
}

func TestPathFor(t *testing.T) {
	t.Parallel()

	got := PathFor(filepath.Join("results", "run1", "outputs.csv"))
	want := filepath.Join("results", "run1", Filename)
	if got != want {
		t.Fatalf("PathFor: got %q, want %q", got, want)
	}
}
