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
	"fmt"
	"time"

	"github.com/invops/defectaudit/internal/inventory"
	"github.com/invops/defectaudit/internal/logging"
)

// Reference data for the synthetic dataset.
var (
	warehouses   = []string{"WH-A", "WH-B", "WH-C", "WH-D"}
	entryMethods = []inventory.EntryMethod{
		inventory.EntryManual,
		inventory.EntryScanner,
		inventory.EntrySystem,
	}
	// Manual/Scanner/System drawn at 40/50/10.
	entryMethodWeights = []int{40, 50, 10}
)

// Draw bounds for the synthetic dataset.
const (
	numOperators     = 50
	numAisles        = 19
	numBins          = 49
	minQty           = 1
	maxQty           = 499
	damagedRate      = 0.03
	labelMissingRate = 0.04
)

// Config holds configuration for dataset generation.
type Config struct {
	// Records is the number of transactions to generate.
	Records int

	// Seed drives every random draw. The same seed reproduces the same
	// dataset.
	Seed uint64

	// StartDate is the first day of the transaction window.
	StartDate time.Time

	// WindowDays is the length of the transaction window in days.
	WindowDays int
}

// DefaultConfig returns the reference generation parameters: 50k records
// over the 180-day window starting 2024-01-01, seed 42.
func DefaultConfig() Config {
	return Config{
		Records:    50000,
		Seed:       42,
		StartDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		WindowDays: 180,
	}
}

// Generator produces synthetic inventory transactions.
type Generator struct {
	cfg   Config
	faker *Faker
}

// NewGenerator creates a generator with its own seeded random source.
func NewGenerator(cfg Config) (*Generator, error) {
	if cfg.Records < 0 {
		return nil, fmt.Errorf("record count must be non-negative, got %d", cfg.Records)
	}
	if cfg.WindowDays < 1 {
		return nil, fmt.Errorf("window must be at least 1 day, got %d", cfg.WindowDays)
	}
	return &Generator{
		cfg:   cfg,
		faker: NewFakerWithSeed(cfg.Seed),
	}, nil
}

// Generate produces the full record set. Records are immutable after this
// call; derived fields (variance, defect flags, per-warehouse defect rate)
// are computed here and never recomputed downstream.
func (g *Generator) Generate() []inventory.Transaction {
	n := g.cfg.Records
	logging.Info().
		Int("records", n).
		Uint64("seed", g.cfg.Seed).
		Msg("Generating inventory transactions")

	txns := make([]inventory.Transaction, n)
	for i := range txns {
		txns[i] = g.next(int64(i + 1))
	}

	broadcastWarehouseRates(txns)

	defects := 0
	for i := range txns {
		if txns[i].HasDefect {
			defects++
		}
	}
	logging.Info().
		Int("records", n).
		Int("defects", defects).
		Msg("Generation complete")

	return txns
}

// next draws a single transaction. Draw order is fixed; changing it changes
// the dataset produced by a given seed.
func (g *Generator) next(id int64) inventory.Transaction {
	f := g.faker

	t := inventory.Transaction{
		ID:          id,
		Date:        g.cfg.StartDate.AddDate(0, 0, f.Int(0, g.cfg.WindowDays-1)),
		Warehouse:   Choose(f, warehouses),
		SKU:         f.SKU(),
		ExpectedQty: f.Int(minQty, maxQty),
		ActualQty:   f.Int(minQty, maxQty),
		Location:    f.BinLocation(numAisles, numBins),
		OperatorID:  f.OperatorID(numOperators),
		EntryMethod: ChooseWeighted(f, entryMethods, entryMethodWeights),
	}

	c := inventory.Classify(t.ExpectedQty, t.ActualQty, t.EntryMethod)
	t.QtyVariance = c.Variance
	t.HasDefect = c.HasDefect
	t.DefectType = c.DefectType

	t.IsDamaged = f.Probability(damagedRate)
	t.LabelMissing = f.Probability(labelMissingRate)

	return t
}

// broadcastWarehouseRates computes the mean defect rate per warehouse and
// writes it onto every row of that warehouse, as a percentage.
func broadcastWarehouseRates(txns []inventory.Transaction) {
	totals := make(map[string]int)
	defects := make(map[string]int)
	for i := range txns {
		totals[txns[i].Warehouse]++
		if txns[i].HasDefect {
			defects[txns[i].Warehouse]++
		}
	}

	rates := make(map[string]float64, len(totals))
	for wh, total := range totals {
		rates[wh] = float64(defects[wh]) / float64(total) * 100
	}

	for i := range txns {
		txns[i].WarehouseDefectRate = rates[txns[i].Warehouse]
	}
}

// Warehouses returns the warehouse codes used by the generator.
func Warehouses() []string {
	out := make([]string, len(warehouses))
	copy(out, warehouses)
	return out
}
