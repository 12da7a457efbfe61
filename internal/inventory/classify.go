//-------------------------------------------------------------------------
//
// defectaudit - Inventory Defect Analysis
//
// Copyright (c) 2026, the defectaudit authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package inventory

// Classification thresholds. A variance within DefectTolerance is treated
// as normal counting noise; beyond CountDiscrepancyCutoff the variance
// magnitude itself is the root cause regardless of entry method.
const (
	DefectTolerance        = 5
	CountDiscrepancyCutoff = 50
)

// Classification is the result of classifying a single transaction.
type Classification struct {
	Variance   int
	HasDefect  bool
	DefectType DefectType
}

// Classify derives the variance and defect fields for one transaction.
// It is pure and total: every input yields exactly one classification.
//
// The checks run in descending priority: a variance beyond the count
// discrepancy cutoff wins over any entry-method attribution, then Manual,
// then Scanner, and anything else is a system error. Non-defective
// transactions are always NoDefect.
func Classify(expected, actual int, method EntryMethod) Classification {
	variance := actual - expected
	c := Classification{Variance: variance}

	if abs(variance) <= DefectTolerance {
		c.DefectType = NoDefect
		return c
	}

	c.HasDefect = true
	switch {
	case abs(variance) > CountDiscrepancyCutoff:
		c.DefectType = DefectCountDiscrepancy
	case method == EntryManual:
		c.DefectType = DefectManualEntry
	case method == EntryScanner:
		c.DefectType = DefectScanner
	default:
		c.DefectType = DefectSystem
	}
	return c
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
