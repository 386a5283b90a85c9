package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stellarlinkco/model-bench/internal/app"
	"github.com/stellarlinkco/model-bench/internal/config"
	"github.com/stellarlinkco/model-bench/internal/history"
	"github.com/stellarlinkco/model-bench/internal/llm"
	"github.com/stellarlinkco/model-bench/internal/telemetry"
)

type runOptions struct {
	prompts     string
	provider    string
	model       string
	resultsRoot string
	maxTokens   int
	noHistory   bool
}

func newRunCmd(st *cliState) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a benchmark over a prompts file",
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(st.configPath)
			if err != nil {
				return err
			}
			st.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBenchmark(cmd, st, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.prompts, "prompts", "", "path to prompts JSON file")
	cmd.Flags().StringVar(&opts.provider, "provider", "", "llm provider: claude|openai (overrides config)")
	cmd.Flags().StringVar(&opts.model, "model", "", "model name (overrides config)")
	cmd.Flags().StringVar(&opts.resultsRoot, "results", "", "results directory (overrides config)")
	cmd.Flags().IntVar(&opts.maxTokens, "max-tokens", -1, "max new tokens per response (overrides config)")
	cmd.Flags().BoolVar(&opts.noHistory, "no-history", false, "skip recording the run in the history store")

	return cmd
}

func runBenchmark(cmd *cobra.Command, st *cliState, opts *runOptions) error {
	if st == nil || st.cfg == nil {
		return fmt.Errorf("run: missing config (internal error)")
	}
	if opts == nil {
		return fmt.Errorf("run: nil options")
	}

	promptsPath := strings.TrimSpace(opts.prompts)
	if promptsPath == "" {
		return fmt.Errorf("run: specify --prompts <file>")
	}

	provider, modelName, err := llm.FromConfig(st.cfg, opts.provider, opts.model)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	resultsRoot := strings.TrimSpace(opts.resultsRoot)
	if resultsRoot == "" {
		resultsRoot = st.cfg.Benchmark.ResultsRoot
	}

	maxTokens := st.cfg.Benchmark.MaxNewTokens
	if opts.maxTokens >= 0 {
		maxTokens = opts.maxTokens
	}

	var store *history.Store
	if !opts.noHistory {
		store, err = history.Open(st.cfg)
		if err != nil {
			return fmt.Errorf("run: open history: %w", err)
		}
		defer store.Close()
	}

	runner := &app.Runner{
		Provider:  provider,
		Telemetry: telemetry.Sampler{},
		History:   store,
		Out:       cmd.OutOrStdout(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_, err = runner.Run(ctx, app.RunParams{
		Model:        modelName,
		PromptsPath:  promptsPath,
		ResultsRoot:  resultsRoot,
		MaxNewTokens: maxTokens,
	})
	return err
}
