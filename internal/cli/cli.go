//-------------------------------------------------------------------------
//
// defectaudit - Inventory Defect Analysis
//
// Copyright (c) 2026, the defectaudit authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for defectaudit.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/invops/defectaudit/internal/config"
	"github.com/invops/defectaudit/internal/logging"
	"github.com/invops/defectaudit/pkg/version"
)

var (
	// Global flags
	cfgFile     string
	storeDriver string
	storePath   string
	connection  string
	logLevel    string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "defectaudit",
		Short: "Inventory defect analysis pipeline",
		Long: `defectaudit is a batch pipeline for inventory defect analysis. It
generates a synthetic inventory transaction dataset, loads it into a
relational store, runs a fixed battery of aggregate queries, and renders
the results as text reports, an XLSX workbook, and a chart dashboard.

The stages communicate through files: a CSV interchange file between
generation and loading, and a database between loading and reporting.
Each stage can be run on its own or end to end with 'pipeline'.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./defectaudit.yaml)")
	rootCmd.PersistentFlags().StringVar(&storeDriver, "driver", "",
		"store driver (sqlite, postgres)")
	rootCmd.PersistentFlags().StringVar(&storePath, "db-path", "",
		"database file path (sqlite driver)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string (postgres driver)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(pipelineCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if storeDriver != "" {
		cfg.Store.Driver = storeDriver
	}
	if storePath != "" {
		cfg.Store.Path = storePath
	}
	if connection != "" {
		cfg.Store.Connection = connection
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}
