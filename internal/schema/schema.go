//-------------------------------------------------------------------------
//
// defectaudit - Inventory Defect Analysis
//
// Copyright (c) 2026, the defectaudit authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package schema defines the column contract shared by every pipeline stage.
// The generator writes it, the loader validates and stores it, and the
// analysis stages read it. Any drift between a stage and this definition is
// an error at the stage boundary, not a silently malformed aggregate.
package schema

import (
	"fmt"
	"strings"
)

// TableName is the relational table every loader run fully replaces.
const TableName = "inventory_transactions"

// Kind is the logical type of a column.
type Kind int

// Column kinds.
const (
	KindInt Kind = iota
	KindText
	KindDate
	KindBool
	KindFloat
)

// Column describes one column of the interchange file and the relational table.
type Column struct {
	Name string
	Kind Kind
}

// columns is the canonical column order. Derived columns follow the base
// columns, matching the interchange file layout.
var columns = []Column{
	{Name: "transaction_id", Kind: KindInt},
	{Name: "date", Kind: KindDate},
	{Name: "warehouse", Kind: KindText},
	{Name: "sku", Kind: KindText},
	{Name: "expected_qty", Kind: KindInt},
	{Name: "actual_qty", Kind: KindInt},
	{Name: "location", Kind: KindText},
	{Name: "operator_id", Kind: KindText},
	{Name: "entry_method", Kind: KindText},
	{Name: "qty_variance", Kind: KindInt},
	{Name: "has_defect", Kind: KindBool},
	{Name: "defect_type", Kind: KindText},
	{Name: "is_damaged", Kind: KindBool},
	{Name: "label_missing", Kind: KindBool},
	{Name: "defect_rate", Kind: KindFloat},
}

// criticalFields are the columns the integrity check reports individually.
var criticalFields = []string{"date", "warehouse", "operator_id", "sku"}

// Columns returns the canonical column list in order.
func Columns() []Column {
	out := make([]Column, len(columns))
	copy(out, columns)
	return out
}

// NumColumns returns the number of columns in the contract.
func NumColumns() int {
	return len(columns)
}

// Header returns the CSV header row.
func Header() []string {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
	}
	return names
}

// CriticalFields returns the columns checked individually for missing values.
func CriticalFields() []string {
	out := make([]string, len(criticalFields))
	copy(out, criticalFields)
	return out
}

// Index returns the position of the named column, or -1 if unknown.
func Index(name string) int {
	for i, c := range columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// ValidateHeader checks a CSV header row against the contract. The error
// names every missing, unexpected, or misordered column so schema drift is
// diagnosable from the message alone.
func ValidateHeader(header []string) error {
	want := Header()
	if len(header) != len(want) {
		return fmt.Errorf(
			"schema mismatch: expected %d columns, got %d (expected header: %s)",
			len(want), len(header), strings.Join(want, ","))
	}
	var bad []string
	for i, name := range header {
		if name != want[i] {
			bad = append(bad, fmt.Sprintf("column %d: got %q, want %q", i, name, want[i]))
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("schema mismatch: %s", strings.Join(bad, "; "))
	}
	return nil
}

// Dialect selects the SQL flavor for DDL generation.
type Dialect int

// Supported store dialects.
const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

// sqlType maps a column kind to a dialect-specific SQL type. Booleans are
// stored as 0/1 integers in both dialects so the report queries stay
// portable across backends.
func sqlType(k Kind, d Dialect) string {
	switch k {
	case KindInt, KindBool:
		return "INTEGER"
	case KindFloat:
		if d == DialectPostgres {
			return "DOUBLE PRECISION"
		}
		return "REAL"
	case KindDate:
		// Dates are stored as ISO-8601 text so SUBSTR-based month
		// grouping behaves identically on both backends.
		return "TEXT"
	default:
		return "TEXT"
	}
}

// CreateTableSQL returns the CREATE TABLE statement for the given dialect.
func CreateTableSQL(d Dialect) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", TableName)
	for i, c := range columns {
		fmt.Fprintf(&b, "    %-15s %s", c.Name, sqlType(c.Kind, d))
		if i < len(columns)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(")")
	return b.String()
}

// DropTableSQL returns the DROP TABLE statement used for replace semantics.
func DropTableSQL() string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s", TableName)
}

// InsertSQL returns a parameterized INSERT statement for the given dialect.
// SQLite uses ? placeholders, PostgreSQL uses $1..$n.
func InsertSQL(d Dialect) string {
	ph := make([]string, len(columns))
	for i := range columns {
		if d == DialectPostgres {
			ph[i] = fmt.Sprintf("$%d", i+1)
		} else {
			ph[i] = "?"
		}
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		TableName, strings.Join(Header(), ", "), strings.Join(ph, ", "))
}
