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

	"github.com/spf13/cobra"
)

var reportOutput string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the SQL query battery and write the results report",
	Long: `Run the fixed battery of aggregate queries against the loaded store
and write the results as a text report. Queries are isolated: a failing
query is reported in its section and the remaining queries still run.

Example:
  defectaudit report --output sql_analysis_results.txt`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportOutput, "output", "",
		"report file name (default: sql_analysis_results.txt)")
}

func runReport(cmd *cobra.Command, args []string) error {
	if reportOutput != "" {
		cfg.Output.SQLReportFile = reportOutput
	}
	return stageReport(context.Background(), cfg)
}
