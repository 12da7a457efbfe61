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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/invops/defectaudit/internal/config"
	"github.com/invops/defectaudit/internal/csvfile"
	"github.com/invops/defectaudit/internal/dashboard"
	"github.com/invops/defectaudit/internal/datagen"
	"github.com/invops/defectaudit/internal/inventory"
	"github.com/invops/defectaudit/internal/logging"
	"github.com/invops/defectaudit/internal/report"
	"github.com/invops/defectaudit/internal/store"
	"github.com/invops/defectaudit/pkg/version"
)

// The subcommands and the pipeline command share these stage functions, so
// running 'pipeline' is exactly running the four subcommands in order.

func reportOptions(cfg *config.Config) report.Options {
	return report.Options{
		MinOperatorTransactions: cfg.Analysis.MinOperatorTransactions,
		TopOperators:            cfg.Analysis.TopOperators,
		Bands:                   cfg.Bands(),
	}
}

func storeConfig(cfg *config.Config) store.Config {
	return store.Config{
		Driver:     cfg.Store.Driver,
		Path:       cfg.Store.Path,
		Connection: cfg.Store.Connection,
	}
}

// outputPath places an artifact in the first data directory, creating it if
// needed. Absolute paths pass through.
func outputPath(cfg *config.Config, name string) (string, error) {
	if filepath.IsAbs(name) {
		return name, nil
	}
	dir := cfg.DataDirs[0]
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return filepath.Join(dir, name), nil
}

// stageGenerate produces the synthetic dataset and writes the interchange
// CSV.
func stageGenerate(cfg *config.Config) error {
	if err := cfg.ValidateGenerate(); err != nil {
		return err
	}
	start, err := cfg.Generate.Start()
	if err != nil {
		return err
	}

	gen, err := datagen.NewGenerator(datagen.Config{
		Records:    cfg.Generate.Records,
		Seed:       cfg.Generate.Seed,
		StartDate:  start,
		WindowDays: cfg.Generate.WindowDays,
	})
	if err != nil {
		return err
	}

	logging.Info().
		Int("records", cfg.Generate.Records).
		Uint64("seed", cfg.Generate.Seed).
		Str("start_date", cfg.Generate.StartDate).
		Int("window_days", cfg.Generate.WindowDays).
		Msg("Generating dataset")

	started := time.Now()
	txns := gen.Generate()

	path, err := outputPath(cfg, cfg.Output.CSVFile)
	if err != nil {
		return err
	}
	if err := csvfile.Write(path, txns); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}

	logging.Info().
		Int("records", len(txns)).
		Str("file", path).
		Dur("elapsed", time.Since(started)).
		Msg("Dataset written")
	return nil
}

// readDataset locates and reads the interchange CSV.
func readDataset(cfg *config.Config) (string, []inventory.Transaction, csvfile.MissingCounts, error) {
	path, err := csvfile.Locate(cfg.Output.CSVFile, cfg.DataDirs)
	if err != nil {
		if errors.Is(err, csvfile.ErrNotFound) {
			return "", nil, csvfile.MissingCounts{},
				fmt.Errorf("%w; run 'defectaudit generate' first", err)
		}
		return "", nil, csvfile.MissingCounts{}, err
	}

	txns, missing, err := csvfile.Read(path)
	if err != nil {
		return "", nil, csvfile.MissingCounts{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	logging.Info().
		Str("file", path).
		Int("records", len(txns)).
		Int("missing_cells", missing.Total()).
		Msg("Dataset read")
	return path, txns, missing, nil
}

// stageLoad replaces the store contents with the interchange CSV.
func stageLoad(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	path, txns, _, err := readDataset(cfg)
	if err != nil {
		return err
	}

	st, err := store.Open(ctx, storeConfig(cfg))
	if err != nil {
		return err
	}
	defer st.Close()

	started := time.Now()
	if err := st.Replace(ctx, txns); err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	count, err := st.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to verify row count: %w", err)
	}
	if count != int64(len(txns)) {
		return fmt.Errorf("row count mismatch after load: table has %d, file has %d",
			count, len(txns))
	}

	meta := store.LoadMetadata(path, count, version.Version)
	if err := st.SaveMetadata(ctx, meta); err != nil {
		return fmt.Errorf("failed to record load metadata: %w", err)
	}

	logging.Info().
		Int64("rows", count).
		Str("driver", cfg.Store.Driver).
		Dur("elapsed", time.Since(started)).
		Msg("Load complete")
	return nil
}

// stageAnalyze runs the in-memory analysis over the interchange CSV and
// writes the text report, workbook, and dashboard.
func stageAnalyze(cfg *config.Config) error {
	if err := cfg.ValidateAnalysis(); err != nil {
		return err
	}

	_, txns, missing, err := readDataset(cfg)
	if err != nil {
		return err
	}

	data := report.BuildAnalysis(txns, missing.PerColumn,
		cfg.Analysis.IntegrityThreshold, reportOptions(cfg))

	if err := report.WriteAnalysisReport(os.Stdout, data, time.Now()); err != nil {
		return fmt.Errorf("failed to write analysis report: %w", err)
	}

	workbookPath, err := outputPath(cfg, cfg.Output.Workbook)
	if err != nil {
		return err
	}
	if err := report.WriteWorkbook(workbookPath, data); err != nil {
		return err
	}
	logging.Info().Str("file", workbookPath).Msg("Workbook written")

	dashboardPath, err := outputPath(cfg, cfg.Output.Dashboard)
	if err != nil {
		return err
	}
	dashCfg := dashboard.DefaultConfig()
	dashCfg.TargetDefectRate = cfg.Analysis.TargetDefectRate
	if err := dashboard.Render(dashboardPath, data, dashCfg); err != nil {
		return err
	}
	logging.Info().Str("file", dashboardPath).Msg("Dashboard written")
	return nil
}

// stageReport runs the SQL battery against the store and writes the query
// results report.
func stageReport(ctx context.Context, cfg *config.Config) error {
	if err := cfg.ValidateAnalysis(); err != nil {
		return err
	}

	st, err := store.Open(ctx, storeConfig(cfg))
	if err != nil {
		return err
	}
	defer st.Close()

	count, err := st.Count(ctx)
	if err != nil {
		return fmt.Errorf("store has no loaded data (run 'defectaudit load' first): %w", err)
	}
	logging.Info().Int64("rows", count).Msg("Running query battery")

	results := report.RunBattery(ctx, st, reportOptions(cfg))

	path, err := outputPath(cfg, cfg.Output.SQLReportFile)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	// The report goes to the file and the console.
	if err := report.WriteSQLReport(io.MultiWriter(f, os.Stdout), results, time.Now()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	logging.Info().
		Str("file", path).
		Int("queries", len(results)).
		Int("failed", failed).
		Msg("SQL report written")
	return nil
}
