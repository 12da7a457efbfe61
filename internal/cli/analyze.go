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
	"github.com/spf13/cobra"
)

var (
	analyzeDashboard string
	analyzeWorkbook  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the in-memory defect analysis over the interchange CSV",
	Long: `Run the full in-memory defect analysis over the interchange CSV:
data integrity validation, defect summaries, root causes, monthly
trends, warehouse and entry method comparisons, operator ranking, and
severity distribution. The text report goes to stdout; the XLSX
workbook and the chart dashboard are written next to the CSV.

Example:
  defectaudit analyze`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeDashboard, "dashboard", "",
		"dashboard PNG file name (default: defect_analysis_dashboard.png)")
	analyzeCmd.Flags().StringVar(&analyzeWorkbook, "workbook", "",
		"workbook XLSX file name (default: defect_analysis.xlsx)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzeDashboard != "" {
		cfg.Output.Dashboard = analyzeDashboard
	}
	if analyzeWorkbook != "" {
		cfg.Output.Workbook = analyzeWorkbook
	}
	return stageAnalyze(cfg)
}
