//-------------------------------------------------------------------------
//
// defectaudit - Inventory Defect Analysis
//
// Copyright (c) 2026, the defectaudit authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package inventory defines the transaction domain model and the defect
// classification rules applied to it.
package inventory

import "time"

// EntryMethod is the mechanism by which a transaction's quantities were
// recorded.
type EntryMethod string

// Entry methods.
const (
	EntryManual  EntryMethod = "Manual"
	EntryScanner EntryMethod = "Scanner"
	EntrySystem  EntryMethod = "System"
)

// DefectType is the root-cause bucket assigned to a transaction.
type DefectType string

// Defect types, in classification priority order. NoDefect is assigned
// exactly when the transaction is within tolerance.
const (
	DefectCountDiscrepancy DefectType = "Count Discrepancy"
	DefectManualEntry      DefectType = "Manual Entry Error"
	DefectScanner          DefectType = "Scanner Malfunction"
	DefectSystem           DefectType = "System Error"
	NoDefect               DefectType = "No Defect"
)

// Transaction is a single inventory count event with its derived defect
// fields. Derived fields are computed once at generation time and treated
// as plain data by every later stage.
type Transaction struct {
	ID          int64
	Date        time.Time
	Warehouse   string
	SKU         string
	ExpectedQty int
	ActualQty   int
	Location    string
	OperatorID  string
	EntryMethod EntryMethod

	// Derived at generation time.
	QtyVariance  int
	HasDefect    bool
	DefectType   DefectType
	IsDamaged    bool
	LabelMissing bool

	// WarehouseDefectRate is the mean defect rate of this transaction's
	// warehouse (percent), broadcast onto every row of that warehouse.
	WarehouseDefectRate float64
}
