//-------------------------------------------------------------------------
//
// defectaudit - Inventory Defect Analysis
//
// Copyright (c) 2026, the defectaudit authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package analysis computes the aggregate views over the transaction set.
// Every view is derived purely from record fields; there is no hidden state
// and every function tolerates an empty input.
package analysis

import "github.com/invops/defectaudit/internal/inventory"

// Summary holds the headline counts for the whole dataset.
type Summary struct {
	TotalRecords int
	TotalDefects int
	DefectRate   float64 // percent
	AccuracyRate float64 // percent, 100 - DefectRate
}

// RootCause is one row of the root-cause summary.
type RootCause struct {
	DefectType     inventory.DefectType
	IncidentCount  int
	AvgAbsVariance float64
	Percentage     float64 // share of all defective records
}

// MonthlyTrend is one row of the monthly trend view.
type MonthlyTrend struct {
	Month        string // YYYY-MM
	Transactions int
	Defects      int
	DefectRate   float64 // percent
}

// WarehouseStat is one row of the warehouse performance view.
type WarehouseStat struct {
	Warehouse      string
	Transactions   int
	DefectCount    int
	AvgAbsVariance float64
	DefectRate     float64 // percent
	AccuracyRate   float64 // percent
}

// WarehousePerformance holds per-warehouse stats ordered by defect rate
// ascending, with the best and worst performers called out.
type WarehousePerformance struct {
	Warehouses []WarehouseStat
	Best       string // minimum defect rate
	Worst      string // maximum defect rate
}

// EntryMethodStat is one row of the entry-method impact view.
type EntryMethodStat struct {
	Method       inventory.EntryMethod
	Transactions int
	DefectCount  int
	DefectRate   float64 // percent
}

// EntryMethodImpact holds per-method stats ordered by defect rate
// descending, with the best and worst methods called out.
type EntryMethodImpact struct {
	Methods []EntryMethodStat
	Best    inventory.EntryMethod
	Worst   inventory.EntryMethod
}

// OperatorStat is one row of the operator ranking.
type OperatorStat struct {
	OperatorID   string
	Transactions int // Manual-entry transactions only
	Errors       int
	ErrorRate    float64 // percent
}

// SeverityBucket is one row of the severity distribution.
type SeverityBucket struct {
	Label          string
	IncidentCount  int
	AvgAbsVariance float64
}
