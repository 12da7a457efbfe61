//-------------------------------------------------------------------------
//
// defectaudit - Inventory Defect Analysis
//
// Copyright (c) 2026, the defectaudit authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for defectaudit.
// Configuration is loaded from config files and CLI flags (no environment
// variables). CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/invops/defectaudit/internal/analysis"
)

// Config holds all configuration for defectaudit.
type Config struct {
	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// DataDirs are the directories searched for the interchange CSV, in
	// order. The first directory is also where new files are written.
	DataDirs []string `mapstructure:"data_dirs"`

	// Generate holds configuration for the generate subcommand.
	Generate GenerateConfig `mapstructure:"generate"`

	// Store holds the relational backend configuration.
	Store StoreConfig `mapstructure:"store"`

	// Analysis holds the shared analysis parameters.
	Analysis AnalysisConfig `mapstructure:"analysis"`

	// Output holds the report and dashboard file paths.
	Output OutputConfig `mapstructure:"output"`
}

// GenerateConfig holds configuration for synthetic dataset generation.
type GenerateConfig struct {
	// Records is the number of transactions to generate.
	Records int `mapstructure:"records"`

	// Seed fixes the random source; the same seed reproduces the same
	// dataset bit for bit.
	Seed uint64 `mapstructure:"seed"`

	// StartDate is the first day of the generation window (YYYY-MM-DD).
	StartDate string `mapstructure:"start_date"`

	// WindowDays is the length of the generation window in days.
	WindowDays int `mapstructure:"window_days"`
}

// StoreConfig holds the relational backend configuration.
type StoreConfig struct {
	// Driver is "sqlite" (default) or "postgres".
	Driver string `mapstructure:"driver"`

	// Path is the database file path (sqlite only).
	Path string `mapstructure:"path"`

	// Connection is the connection string (postgres only).
	Connection string `mapstructure:"connection"`
}

// AnalysisConfig holds the parameters shared by the SQL battery and the
// in-memory analysis path.
type AnalysisConfig struct {
	// IntegrityThreshold is the completeness percentage below which the
	// integrity check warns.
	IntegrityThreshold float64 `mapstructure:"integrity_threshold"`

	// TargetDefectRate is the reference line on the warehouse panel, in
	// percent.
	TargetDefectRate float64 `mapstructure:"target_defect_rate"`

	// MinOperatorTransactions excludes low-volume operators from the
	// ranking (strictly greater-than).
	MinOperatorTransactions int `mapstructure:"min_operator_transactions"`

	// TopOperators caps the operator ranking length.
	TopOperators int `mapstructure:"top_operators"`

	// SeverityBands band defect variance magnitude. The last band has no
	// upper bound.
	SeverityBands []SeverityBand `mapstructure:"severity_bands"`
}

// SeverityBand is one configured severity band.
type SeverityBand struct {
	Label string `mapstructure:"label"`
	Upper int    `mapstructure:"upper"`
}

// OutputConfig holds the artifact file paths.
type OutputConfig struct {
	CSVFile       string `mapstructure:"csv_file"`
	SQLReportFile string `mapstructure:"sql_report_file"`
	Dashboard     string `mapstructure:"dashboard"`
	Workbook      string `mapstructure:"workbook"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		DataDirs: []string{".", "data"},
		Generate: GenerateConfig{
			Records:    50000,
			Seed:       42,
			StartDate:  "2024-01-01",
			WindowDays: 180,
		},
		Store: StoreConfig{
			Driver: "sqlite",
			Path:   "inventory_analysis.db",
		},
		Analysis: AnalysisConfig{
			IntegrityThreshold:      99.0,
			TargetDefectRate:        2.5,
			MinOperatorTransactions: 100,
			TopOperators:            10,
			SeverityBands: []SeverityBand{
				{Label: "Low", Upper: 10},
				{Label: "Medium", Upper: 25},
				{Label: "High", Upper: 50},
				{Label: "Critical", Upper: 0},
			},
		},
		Output: OutputConfig{
			CSVFile:       "raw_inventory_data.csv",
			SQLReportFile: "sql_analysis_results.txt",
			Dashboard:     "defect_analysis_dashboard.png",
			Workbook:      "defect_analysis.xlsx",
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./defectaudit.yaml
// 3. ~/.config/defectaudit/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("defectaudit")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "defectaudit"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Bands converts the configured severity bands to the analysis form.
func (c *Config) Bands() []analysis.Band {
	out := make([]analysis.Band, len(c.Analysis.SeverityBands))
	for i, b := range c.Analysis.SeverityBands {
		out[i] = analysis.Band{Label: b.Label, Upper: b.Upper}
	}
	return out
}

// Validate checks configuration shared by every subcommand.
func (c *Config) Validate() error {
	if len(c.DataDirs) == 0 {
		return fmt.Errorf("at least one data directory is required")
	}
	if c.Store.Driver != "sqlite" && c.Store.Driver != "postgres" {
		return fmt.Errorf("store driver must be 'sqlite' or 'postgres'")
	}
	if c.Store.Driver == "sqlite" && c.Store.Path == "" {
		return fmt.Errorf("store path is required for the sqlite driver")
	}
	if c.Store.Driver == "postgres" && c.Store.Connection == "" {
		return fmt.Errorf("connection string is required for the postgres driver")
	}
	return nil
}

// ValidateGenerate checks configuration required for the generate command.
func (c *Config) ValidateGenerate() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Generate.Records < 0 {
		return fmt.Errorf("records must be non-negative")
	}
	if c.Generate.WindowDays < 1 {
		return fmt.Errorf("window_days must be at least 1")
	}
	if _, err := c.Generate.Start(); err != nil {
		return err
	}
	return nil
}

// ValidateAnalysis checks configuration required for the analyze and report
// commands.
func (c *Config) ValidateAnalysis() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Analysis.IntegrityThreshold < 0 || c.Analysis.IntegrityThreshold > 100 {
		return fmt.Errorf("integrity_threshold must be between 0 and 100")
	}
	if c.Analysis.TopOperators < 1 {
		return fmt.Errorf("top_operators must be at least 1")
	}
	if c.Analysis.MinOperatorTransactions < 0 {
		return fmt.Errorf("min_operator_transactions must be non-negative")
	}
	if err := analysis.ValidateBands(c.Bands()); err != nil {
		return fmt.Errorf("invalid severity_bands: %w", err)
	}
	return nil
}

// Start parses the configured start date.
func (g *GenerateConfig) Start() (time.Time, error) {
	t, err := time.Parse("2006-01-02", g.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start_date %q: %w", g.StartDate, err)
	}
	return t, nil
}
