//-------------------------------------------------------------------------
//
// defectaudit - Inventory Defect Analysis
//
// Copyright (c) 2026, the defectaudit authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package datagen

import (
	"testing"
	"time"

	"github.com/invops/defectaudit/internal/inventory"
)

func testConfig(records int) Config {
	return Config{
		Records:    records,
		Seed:       42,
		StartDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		WindowDays: 180,
	}
}

func generate(t *testing.T, cfg Config) []inventory.Transaction {
	t.Helper()
	g, err := NewGenerator(cfg)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	return g.Generate()
}

func TestGeneratorDeterminism(t *testing.T) {
	a := generate(t, testConfig(2000))
	b := generate(t, testConfig(2000))

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("record %d differs between runs with the same seed:\n%+v\n%+v",
				i, a[i], b[i])
		}
	}
}

func TestGeneratorSeedChangesDataset(t *testing.T) {
	cfg := testConfig(500)
	a := generate(t, cfg)
	cfg.Seed = 43
	b := generate(t, cfg)

	same := 0
	for i := range a {
		if a[i].SKU == b[i].SKU && a[i].ExpectedQty == b[i].ExpectedQty {
			same++
		}
	}
	if same == len(a) {
		t.Error("different seeds produced an identical dataset")
	}
}

func TestGeneratorFieldRanges(t *testing.T) {
	cfg := testConfig(5000)
	txns := generate(t, cfg)

	end := cfg.StartDate.AddDate(0, 0, cfg.WindowDays-1)
	warehouses := map[string]bool{"WH-A": true, "WH-B": true, "WH-C": true, "WH-D": true}

	for i, tx := range txns {
		if tx.ID != int64(i+1) {
			t.Fatalf("record %d: ID = %d, want sequential %d", i, tx.ID, i+1)
		}
		if tx.Date.Before(cfg.StartDate) || tx.Date.After(end) {
			t.Fatalf("record %d: date %s outside window", i, tx.Date)
		}
		if !warehouses[tx.Warehouse] {
			t.Fatalf("record %d: unknown warehouse %q", i, tx.Warehouse)
		}
		if tx.ExpectedQty < minQty || tx.ExpectedQty > maxQty {
			t.Fatalf("record %d: expected_qty %d out of range", i, tx.ExpectedQty)
		}
		if tx.ActualQty < minQty || tx.ActualQty > maxQty {
			t.Fatalf("record %d: actual_qty %d out of range", i, tx.ActualQty)
		}
	}
}

// TestGeneratorDefectInvariants checks the variance/flag/type invariants on
// every generated record.
func TestGeneratorDefectInvariants(t *testing.T) {
	txns := generate(t, testConfig(5000))

	for i, tx := range txns {
		if tx.QtyVariance != tx.ActualQty-tx.ExpectedQty {
			t.Fatalf("record %d: variance %d != %d - %d",
				i, tx.QtyVariance, tx.ActualQty, tx.ExpectedQty)
		}
		v := tx.QtyVariance
		if v < 0 {
			v = -v
		}
		if tx.HasDefect != (v > inventory.DefectTolerance) {
			t.Fatalf("record %d: HasDefect = %v with |variance| = %d", i, tx.HasDefect, v)
		}
		if tx.HasDefect == (tx.DefectType == inventory.NoDefect) {
			t.Fatalf("record %d: HasDefect = %v but DefectType = %q",
				i, tx.HasDefect, tx.DefectType)
		}
	}
}

func TestGeneratorEntryMethodDistribution(t *testing.T) {
	txns := generate(t, testConfig(20000))

	counts := make(map[inventory.EntryMethod]int)
	for _, tx := range txns {
		counts[tx.EntryMethod]++
	}

	n := float64(len(txns))
	checks := []struct {
		method inventory.EntryMethod
		want   float64
	}{
		{inventory.EntryManual, 0.40},
		{inventory.EntryScanner, 0.50},
		{inventory.EntrySystem, 0.10},
	}
	for _, c := range checks {
		got := float64(counts[c.method]) / n
		if got < c.want-0.03 || got > c.want+0.03 {
			t.Errorf("%s share = %.3f, want %.2f ± 0.03", c.method, got, c.want)
		}
	}
}

// TestGeneratorWarehouseRateBroadcast verifies the denormalized per-warehouse
// defect rate matches the rate computed from the rows themselves.
func TestGeneratorWarehouseRateBroadcast(t *testing.T) {
	txns := generate(t, testConfig(8000))

	totals := make(map[string]int)
	defects := make(map[string]int)
	for _, tx := range txns {
		totals[tx.Warehouse]++
		if tx.HasDefect {
			defects[tx.Warehouse]++
		}
	}

	for i, tx := range txns {
		want := float64(defects[tx.Warehouse]) / float64(totals[tx.Warehouse]) * 100
		if diff := tx.WarehouseDefectRate - want; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("record %d: broadcast rate %.6f, want %.6f",
				i, tx.WarehouseDefectRate, want)
		}
	}
}

func TestGeneratorEmpty(t *testing.T) {
	txns := generate(t, testConfig(0))
	if len(txns) != 0 {
		t.Fatalf("expected empty dataset, got %d records", len(txns))
	}
}

func TestNewGeneratorRejectsBadConfig(t *testing.T) {
	if _, err := NewGenerator(Config{Records: -1, WindowDays: 180}); err == nil {
		t.Error("negative record count accepted")
	}
	if _, err := NewGenerator(Config{Records: 10, WindowDays: 0}); err == nil {
		t.Error("zero-day window accepted")
	}
}
