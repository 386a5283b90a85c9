// Package app wires the generation provider, evaluator, aggregator, and
// artifact writers into complete benchmark runs.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/stellarlinkco/model-bench/internal/dataset"
	"github.com/stellarlinkco/model-bench/internal/evaluator"
	"github.com/stellarlinkco/model-bench/internal/history"
	"github.com/stellarlinkco/model-bench/internal/llm"
	"github.com/stellarlinkco/model-bench/internal/report"
	"github.com/stellarlinkco/model-bench/internal/rundir"
	"github.com/stellarlinkco/model-bench/internal/summary"
	"github.com/stellarlinkco/model-bench/internal/telemetry"
)

// RunParams configures one benchmark run.
type RunParams struct {
	Model        string
	PromptsPath  string
	ResultsRoot  string
	MaxNewTokens int
}

// Runner executes benchmark runs. Provider is required; Telemetry and
// History are optional collaborators.
type Runner struct {
	Provider  llm.Provider
	Telemetry telemetry.Source
	History   *history.Store
	Out       io.Writer
}

// RunOutcome reports where a run's artifacts landed and its final figures.
type RunOutcome struct {
	RunDir      string
	ArchivePath string
	Summary     *summary.RunSummary
	Report      *report.Report
}

// runSummaryFile is the summary.json artifact shape.
type runSummaryFile struct {
	Model           string  `json:"model"`
	PromptsFile     string  `json:"prompts_file"`
	Timestamp       int64   `json:"timestamp"`
	TotalPrompts    int     `json:"total_prompts"`
	Correct         int     `json:"correct"`
	AccuracyPercent float64 `json:"accuracy_percent"`
}

// Run executes the full pipeline: generate an output per prompt, evaluate
// each pair as it arrives, and persist the run's artifacts. The evaluation
// pipeline is never invoked on an empty prompt list; that is fatal up front
// and no partial report is emitted.
func (r *Runner) Run(ctx context.Context, params RunParams) (*RunOutcome, error) {
	if r == nil {
		return nil, errors.New("app: nil runner")
	}
	if ctx == nil {
		return nil, errors.New("app: nil context")
	}
	if r.Provider == nil {
		return nil, errors.New("app: nil provider")
	}

	prompts, err := dataset.LoadPrompts(params.PromptsPath)
	if err != nil {
		return nil, err
	}
	if len(prompts) == 0 {
		return nil, fmt.Errorf("app: no prompts in %q", params.PromptsPath)
	}

	dir, err := rundir.New(params.ResultsRoot, params.Model, params.PromptsPath, time.Now())
	if err != nil {
		return nil, err
	}

	logger, err := rundir.NewLogger(dir.Join(rundir.LogFile), r.Out)
	if err != nil {
		return nil, err
	}
	defer logger.Close()

	logger.Printf("model-bench runner")
	logger.Printf("Model: %s", params.Model)
	logger.Printf("Prompts: %s", params.PromptsPath)
	logger.Printf("Output folder: %s", dir.Path)
	logger.Printf("Starting evaluation...")

	writer, err := dataset.NewOutputWriter(dir.Join(rundir.OutputsFile))
	if err != nil {
		return nil, err
	}

	agg := summary.NewAggregator()
	var snapshots []telemetry.Snapshot
	var totalLatencyMs int64

	for i, prompt := range prompts {
		if err := ctx.Err(); err != nil {
			_ = writer.Close()
			return nil, err
		}

		logger.Printf(" [%d/%d] Running prompt...", i+1, len(prompts))

		if r.Telemetry != nil {
			snap, err := r.Telemetry.Sample(ctx)
			if err != nil {
				logger.Printf("telemetry: %v", err)
			} else if snap != nil {
				snapshots = append(snapshots, *snap)
			}
		}

		gen, err := r.Provider.Generate(ctx, prompt, params.MaxNewTokens)
		if err != nil {
			_ = writer.Close()
			return nil, fmt.Errorf("app: generate prompt %d/%d: %w", i+1, len(prompts), err)
		}

		res := evaluator.Evaluate(prompt, gen.Text)
		agg.Add(res)
		totalLatencyMs += gen.LatencyMs

		if err := writer.Append(prompt, gen.Text, float64(gen.LatencyMs)/1000, res.Correct); err != nil {
			_ = writer.Close()
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	sum := agg.Finalize(rundir.OutputsFile)
	rep, text := report.Render(sum)

	if err := writeRunSummary(dir.Join(rundir.SummaryFile), params, sum); err != nil {
		return nil, err
	}
	if err := writeTelemetry(dir.Join(rundir.TelemetryFile), snapshots); err != nil {
		return nil, err
	}
	if err := report.Write(dir.Join(report.Filename), rep); err != nil {
		return nil, err
	}

	if r.Out != nil {
		_, _ = io.WriteString(r.Out, "\n"+text)
	}

	if r.History != nil {
		hrun := &history.Run{
			Model:           params.Model,
			Provider:        r.Provider.Name(),
			PromptsFile:     filepath.Base(params.PromptsPath),
			Total:           sum.Total,
			Correct:         sum.Correct,
			AccuracyPercent: sum.AccuracyPercent,
			TotalLatencyMs:  totalLatencyMs,
			RunDir:          dir.Path,
		}
		if err := r.History.Save(ctx, hrun); err != nil {
			return nil, err
		}
	}

	zipPath, err := dir.Archive()
	if err != nil {
		return nil, err
	}
	logger.Printf("Results packaged into: %s", zipPath)
	logger.Printf("Benchmark completed!")

	return &RunOutcome{
		RunDir:      dir.Path,
		ArchivePath: zipPath,
		Summary:     sum,
		Report:      rep,
	}, nil
}

// Score runs the evaluation pipeline over an existing outputs table, writes
// correctness_summary.json beside it, and prints the text report.
func Score(csvPath string, out io.Writer) (*report.Report, error) {
	pairs, err := dataset.ReadPairs(csvPath)
	if err != nil {
		return nil, err
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("app: no data in %q", csvPath)
	}

	agg := summary.NewAggregator()
	for _, p := range pairs {
		agg.Add(evaluator.Evaluate(p.Prompt, p.Output))
	}

	sum := agg.Finalize(filepath.Base(csvPath))
	rep, text := report.Render(sum)

	if err := report.Write(report.PathFor(csvPath), rep); err != nil {
		return nil, err
	}
	if out != nil {
		_, _ = io.WriteString(out, text)
	}
	return rep, nil
}

func writeRunSummary(path string, params RunParams, sum *summary.RunSummary) error {
	b, err := json.MarshalIndent(runSummaryFile{
		Model:           params.Model,
		PromptsFile:     params.PromptsPath,
		Timestamp:       time.Now().Unix(),
		TotalPrompts:    sum.Total,
		Correct:         sum.Correct,
		AccuracyPercent: sum.AccuracyPercent,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("app: marshal summary: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("app: write summary: %w", err)
	}
	return nil
}

func writeTelemetry(path string, snapshots []telemetry.Snapshot) error {
	if snapshots == nil {
		snapshots = []telemetry.Snapshot{}
	}
	b, err := json.MarshalIndent(snapshots, "", "  ")
	if err != nil {
		return fmt.Errorf("app: marshal telemetry: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("app: write telemetry: %w", err)
	}
	return nil
}
