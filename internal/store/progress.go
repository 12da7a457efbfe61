//-------------------------------------------------------------------------
//
// defectaudit - Inventory Defect Analysis
//
// Copyright (c) 2026, the defectaudit authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package store

import "github.com/invops/defectaudit/internal/logging"

// loadProgress tracks and reports bulk-load progress.
type loadProgress struct {
	table            string
	totalRows        int64
	currentRow       int64
	progressInterval int64
}

func newLoadProgress(table string, totalRows, interval int64) *loadProgress {
	return &loadProgress{
		table:            table,
		totalRows:        totalRows,
		progressInterval: interval,
	}
}

// update advances the counter and logs when an interval boundary is crossed.
func (p *loadProgress) update(rowsInserted int64) {
	oldRow := p.currentRow
	p.currentRow += rowsInserted

	if p.progressInterval > 0 &&
		p.currentRow/p.progressInterval > oldRow/p.progressInterval {
		pct := float64(p.currentRow) / float64(p.totalRows) * 100
		logging.Info().
			Str("table", p.table).
			Int64("rows", p.currentRow).
			Int64("total", p.totalRows).
			Float64("percent", pct).
			Msg("Loading rows")
	}
}

func (p *loadProgress) done() {
	logging.Info().
		Str("table", p.table).
		Int64("rows", p.currentRow).
		Msg("Load complete")
}
