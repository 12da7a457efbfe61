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
	generateRecords    int
	generateSeed       uint64
	generateStartDate  string
	generateWindowDays int
	generateOutput     string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the synthetic inventory dataset",
	Long: `Generate a synthetic inventory transaction dataset and write it as
the interchange CSV. The same seed always reproduces the same dataset,
so downstream results are repeatable.

Example:
  defectaudit generate --records 50000 --seed 42`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&generateRecords, "records", 0,
		"number of transactions to generate (default: 50000)")
	generateCmd.Flags().Uint64Var(&generateSeed, "seed", 0,
		"random seed (default: 42)")
	generateCmd.Flags().StringVar(&generateStartDate, "start-date", "",
		"first day of the transaction window, YYYY-MM-DD (default: 2024-01-01)")
	generateCmd.Flags().IntVar(&generateWindowDays, "window-days", 0,
		"length of the transaction window in days (default: 180)")
	generateCmd.Flags().StringVar(&generateOutput, "output", "",
		"output CSV file name (default: raw_inventory_data.csv)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if generateRecords > 0 {
		cfg.Generate.Records = generateRecords
	}
	if cmd.Flags().Changed("seed") {
		cfg.Generate.Seed = generateSeed
	}
	if generateStartDate != "" {
		cfg.Generate.StartDate = generateStartDate
	}
	if generateWindowDays > 0 {
		cfg.Generate.WindowDays = generateWindowDays
	}
	if generateOutput != "" {
		cfg.Output.CSVFile = generateOutput
	}

	return stageGenerate(cfg)
}
