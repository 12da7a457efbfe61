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

var loadCSVFile string

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the interchange CSV into the relational store",
	Long: `Load the interchange CSV into the relational store, fully replacing
any previous contents. The CSV is located by searching the configured
data directories in order. After a successful load the row count is
verified against the file and load provenance is recorded.

Example:
  defectaudit load --driver sqlite --db-path inventory_analysis.db`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&loadCSVFile, "csv", "",
		"CSV file name to load (default: raw_inventory_data.csv)")
}

func runLoad(cmd *cobra.Command, args []string) error {
	if loadCSVFile != "" {
		cfg.Output.CSVFile = loadCSVFile
	}
	return stageLoad(context.Background(), cfg)
}
