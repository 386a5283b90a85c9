package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/stellarlinkco/model-bench/internal/config"
	"github.com/stellarlinkco/model-bench/internal/history"
)

type historyOptions struct {
	model string
	limit int
}

func newHistoryCmd(st *cliState) *cobra.Command {
	var opts historyOptions

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show benchmark run history",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(st.configPath)
			if err != nil {
				return err
			}
			st.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(cmd, st, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.model, "model", "", "model name to filter")
	cmd.Flags().IntVar(&opts.limit, "limit", 20, "max runs to list")

	cmd.AddCommand(newHistoryShowCmd(st))
	return cmd
}

func newHistoryShowCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show details for a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryShow(cmd, st, args[0])
		},
	}
}

func runHistoryList(cmd *cobra.Command, st *cliState, opts *historyOptions) error {
	if st == nil || st.cfg == nil {
		return fmt.Errorf("history: missing config (internal error)")
	}
	if opts == nil {
		return fmt.Errorf("history: nil options")
	}

	store, err := history.Open(st.cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	var runs []history.Run
	model := strings.TrimSpace(opts.model)
	if model != "" {
		runs, err = store.ByModel(cmd.Context(), model, opts.limit)
	} else {
		runs, err = store.List(cmd.Context(), opts.limit)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		_, _ = fmt.Fprintln(out, "No runs found.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tMODEL\tPROVIDER\tTOTAL\tCORRECT\tACCURACY")
	for _, r := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%s%%\n",
			r.ID,
			formatTime(r.CreatedAt),
			r.Model,
			r.Provider,
			r.Total,
			r.Correct,
			strconv.FormatFloat(r.AccuracyPercent, 'f', -1, 64),
		)
	}
	return tw.Flush()
}

func runHistoryShow(cmd *cobra.Command, st *cliState, rawID string) error {
	if st == nil || st.cfg == nil {
		return fmt.Errorf("history: missing config (internal error)")
	}

	id, err := strconv.ParseInt(strings.TrimSpace(rawID), 10, 64)
	if err != nil {
		return fmt.Errorf("history: invalid run id %q", rawID)
	}

	store, err := history.Open(st.cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.Get(cmd.Context(), id)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Run: %d\n", run.ID)
	_, _ = fmt.Fprintf(out, "Created: %s\n", formatTime(run.CreatedAt))
	_, _ = fmt.Fprintf(out, "Model: %s (provider=%s)\n", run.Model, run.Provider)
	_, _ = fmt.Fprintf(out, "Prompts: %s\n", run.PromptsFile)
	_, _ = fmt.Fprintf(out, "Results: total=%d correct=%d accuracy=%s%%\n",
		run.Total, run.Correct, strconv.FormatFloat(run.AccuracyPercent, 'f', -1, 64))
	_, _ = fmt.Fprintf(out, "Latency: %dms total\n", run.TotalLatencyMs)
	_, _ = fmt.Fprintf(out, "Artifacts: %s\n", run.RunDir)
	return nil
}

func formatTime(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.UTC().Format(time.RFC3339)
}
