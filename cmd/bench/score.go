package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stellarlinkco/model-bench/internal/app"
)

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <outputs.csv>",
		Short: "Score an existing outputs table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd, args[0])
		},
	}
}

func runScore(cmd *cobra.Command, csvPath string) error {
	csvPath = strings.TrimSpace(csvPath)
	if csvPath == "" {
		return fmt.Errorf("score: missing outputs file")
	}

	_, err := app.Score(csvPath, cmd.OutOrStdout())
	return err
}
