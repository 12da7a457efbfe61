//-------------------------------------------------------------------------
//
// defectaudit - Inventory Defect Analysis
//
// Copyright (c) 2026, the defectaudit authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package dashboard renders the six-panel defect analysis chart as a single
// PNG: root causes, warehouse comparison, monthly trend, entry method split,
// severity distribution, and a key-metrics text panel.
package dashboard

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	"github.com/invops/defectaudit/internal/logging"
	"github.com/invops/defectaudit/internal/report"
)

// DefaultFileName is the dashboard image written by the report stage.
const DefaultFileName = "defect_analysis_dashboard.png"

// Config sizes the dashboard and carries the reference line drawn on the
// warehouse panel.
type Config struct {
	// PanelWidth and PanelHeight size each of the six panels in pixels.
	PanelWidth  int
	PanelHeight int

	// TargetDefectRate is the horizontal reference line on the warehouse
	// panel, in percent.
	TargetDefectRate float64
}

// DefaultConfig returns the reference dashboard geometry.
func DefaultConfig() Config {
	return Config{
		PanelWidth:       640,
		PanelHeight:      420,
		TargetDefectRate: 2.5,
	}
}

// Render composites the six panels into a 3x2 grid and writes the PNG.
// A panel that cannot be charted (an empty dataset, a single-month trend)
// degrades to a placeholder instead of failing the dashboard.
func Render(path string, data report.AnalysisData, cfg Config) error {
	if cfg.PanelWidth <= 0 || cfg.PanelHeight <= 0 {
		return fmt.Errorf("invalid panel geometry %dx%d", cfg.PanelWidth, cfg.PanelHeight)
	}

	panels := []struct {
		name   string
		render func() (image.Image, error)
	}{
		{"root_causes", func() (image.Image, error) { return rootCausePanel(data.RootCauses, cfg) }},
		{"warehouses", func() (image.Image, error) { return warehousePanel(data.Warehouses, cfg) }},
		{"monthly_trend", func() (image.Image, error) { return trendPanel(data.Trends, cfg) }},
		{"entry_methods", func() (image.Image, error) { return entryMethodPanel(data.EntryMethods, cfg) }},
		{"severity", func() (image.Image, error) { return severityPanel(data.Severity, cfg) }},
		{"key_metrics", func() (image.Image, error) { return metricsPanel(data, cfg) }},
	}

	const cols = 3
	rows := (len(panels) + cols - 1) / cols
	canvas := image.NewRGBA(image.Rect(0, 0, cols*cfg.PanelWidth, rows*cfg.PanelHeight))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	for i, p := range panels {
		img, err := p.render()
		if err != nil {
			logging.Warn().
				Err(err).
				Str("panel", p.name).
				Msg("Panel degraded to placeholder")
			img, err = placeholderPanel(p.name, cfg)
			if err != nil {
				return fmt.Errorf("failed to render placeholder for %s: %w", p.name, err)
			}
		}

		x := (i % cols) * cfg.PanelWidth
		y := (i / cols) * cfg.PanelHeight
		cell := image.Rect(x, y, x+cfg.PanelWidth, y+cfg.PanelHeight)
		draw.Draw(canvas, cell, img, img.Bounds().Min, draw.Over)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dashboard file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, canvas); err != nil {
		return fmt.Errorf("failed to encode dashboard: %w", err)
	}
	return nil
}
