//-------------------------------------------------------------------------
//
// defectaudit - Inventory Defect Analysis
//
// Copyright (c) 2026, the defectaudit authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package analysis

import (
	"github.com/invops/defectaudit/internal/schema"
)

// DefaultIntegrityThreshold is the reference pass threshold, in percent.
const DefaultIntegrityThreshold = 99.0

// IntegrityResult reports dataset completeness. The outcome is advisory: a
// failing score warns, it never blocks the pipeline.
type IntegrityResult struct {
	TotalRecords int
	TotalCells   int
	MissingCells int

	// Score is the completeness percentage over all cells.
	Score float64

	// CriticalMissing maps each critical field to its missing-value count.
	CriticalMissing map[string]int

	Threshold float64
	Passed    bool
}

// Integrity computes the completeness score from the record count and the
// per-column missing-cell tally gathered while reading the interchange file.
// An empty dataset is fully complete by definition.
func Integrity(records int, missingPerColumn map[string]int, threshold float64) IntegrityResult {
	r := IntegrityResult{
		TotalRecords:    records,
		TotalCells:      records * schema.NumColumns(),
		CriticalMissing: make(map[string]int),
		Threshold:       threshold,
	}

	for _, n := range missingPerColumn {
		r.MissingCells += n
	}
	for _, field := range schema.CriticalFields() {
		r.CriticalMissing[field] = missingPerColumn[field]
	}

	if r.TotalCells > 0 {
		r.Score = (1 - float64(r.MissingCells)/float64(r.TotalCells)) * 100
	} else {
		r.Score = 100
	}
	r.Passed = r.Score >= threshold
	return r
}
