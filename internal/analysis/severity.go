//-------------------------------------------------------------------------
//
// defectaudit - Inventory Defect Analysis
//
// Copyright (c) 2026, the defectaudit authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package analysis

import "fmt"

// Band is one severity bucket over |variance|. A record falls into the
// first band whose Upper bound it does not exceed; the final band must have
// Upper = 0, meaning unbounded.
type Band struct {
	Label string
	Upper int
}

// DefaultBands returns the canonical severity bands. Defective records start
// past the tolerance of 5, so the lowest band effectively covers (5, 10].
func DefaultBands() []Band {
	return []Band{
		{Label: "Low", Upper: 10},
		{Label: "Medium", Upper: 25},
		{Label: "High", Upper: 50},
		{Label: "Critical", Upper: 0},
	}
}

// ValidateBands checks that the bands are usable: at least one band, strictly
// increasing upper bounds, and an unbounded final band.
func ValidateBands(bands []Band) error {
	if len(bands) == 0 {
		return fmt.Errorf("at least one severity band is required")
	}
	prev := 0
	for i, b := range bands {
		if b.Label == "" {
			return fmt.Errorf("severity band %d has no label", i)
		}
		last := i == len(bands)-1
		if last {
			if b.Upper != 0 {
				return fmt.Errorf("final severity band %q must be unbounded", b.Label)
			}
			continue
		}
		if b.Upper <= prev {
			return fmt.Errorf("severity band %q upper bound %d is not increasing", b.Label, b.Upper)
		}
		prev = b.Upper
	}
	return nil
}

// bandIndex returns the band index for a variance magnitude.
func bandIndex(bands []Band, absVariance int) int {
	for i, b := range bands {
		if b.Upper == 0 || absVariance <= b.Upper {
			return i
		}
	}
	return len(bands) - 1
}
