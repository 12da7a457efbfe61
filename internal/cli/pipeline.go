//-------------------------------------------------------------------------
//
// defectaudit - Inventory Defect Analysis
//
// Copyright (c) 2026, the defectaudit authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package cli

import (
	"context"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/invops/defectaudit/internal/pipeline"
)

var pipelineSkipGenerate bool

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run the full pipeline: generate, load, analyze, report",
	Long: `Run the full batch pipeline end to end: generate the synthetic
dataset, load it into the relational store, run the in-memory analysis,
and run the SQL query battery. A stage failure stops the run.

Example:
  defectaudit pipeline`,
	RunE: runPipeline,
}

func init() {
	pipelineCmd.Flags().BoolVar(&pipelineSkipGenerate, "skip-generate", false,
		"reuse an existing interchange CSV instead of generating one")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	stages := []pipeline.Stage{
		{Name: "generate", Run: func(context.Context) error {
			return stageGenerate(cfg)
		}},
		{Name: "load", Run: func(ctx context.Context) error {
			return stageLoad(ctx, cfg)
		}},
		{Name: "analyze", Run: func(context.Context) error {
			return stageAnalyze(cfg)
		}},
		{Name: "report", Run: func(ctx context.Context) error {
			return stageReport(ctx, cfg)
		}},
	}
	if pipelineSkipGenerate {
		stages = stages[1:]
	}

	runner, err := pipeline.New(stages...)
	if err != nil {
		return err
	}

	runErr := runner.Run(ctx)
	printStageSummary(cmd, runner.Results())
	return runErr
}

// printStageSummary renders the per-stage timing table after a run, complete
// or not.
func printStageSummary(cmd *cobra.Command, results []pipeline.StageResult) {
	if len(results) == 0 {
		return
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Stage", "Duration", "Outcome"})
	for _, r := range results {
		outcome := "ok"
		if r.Err != nil {
			outcome = r.Err.Error()
		}
		tw.AppendRow(table.Row{r.Name, r.Duration.Round(time.Millisecond), outcome})
	}
	cmd.Println(tw.Render())
}
