//-------------------------------------------------------------------------
//
// defectaudit - Inventory Defect Analysis
//
// Copyright (c) 2026, the defectaudit authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package schema

import (
	"strings"
	"testing"
)

func TestHeaderOrder(t *testing.T) {
	want := []string{
		"transaction_id", "date", "warehouse", "sku", "expected_qty",
		"actual_qty", "location", "operator_id", "entry_method",
		"qty_variance", "has_defect", "defect_type", "is_damaged",
		"label_missing", "defect_rate",
	}
	got := Header()
	if len(got) != len(want) {
		t.Fatalf("header has %d columns, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %d = %q, want %q", i, got[i], want[i])
		}
	}
	if NumColumns() != len(want) {
		t.Errorf("NumColumns() = %d, want %d", NumColumns(), len(want))
	}
}

func TestIndex(t *testing.T) {
	if i := Index("transaction_id"); i != 0 {
		t.Errorf("Index(transaction_id) = %d, want 0", i)
	}
	if i := Index("defect_rate"); i != NumColumns()-1 {
		t.Errorf("Index(defect_rate) = %d, want %d", i, NumColumns()-1)
	}
	if i := Index("no_such_column"); i != -1 {
		t.Errorf("Index(no_such_column) = %d, want -1", i)
	}
}

func TestValidateHeader(t *testing.T) {
	if err := ValidateHeader(Header()); err != nil {
		t.Errorf("canonical header rejected: %v", err)
	}

	short := Header()[:10]
	if err := ValidateHeader(short); err == nil {
		t.Error("truncated header accepted")
	}

	swapped := Header()
	swapped[0], swapped[1] = swapped[1], swapped[0]
	err := ValidateHeader(swapped)
	if err == nil {
		t.Fatal("misordered header accepted")
	}
	// The error must name the offending columns.
	if !strings.Contains(err.Error(), "transaction_id") {
		t.Errorf("error does not name the drifted column: %v", err)
	}
}

func TestCriticalFieldsAreColumns(t *testing.T) {
	for _, f := range CriticalFields() {
		if Index(f) == -1 {
			t.Errorf("critical field %q is not a schema column", f)
		}
	}
}

func TestCreateTableSQL(t *testing.T) {
	lite := CreateTableSQL(DialectSQLite)
	pg := CreateTableSQL(DialectPostgres)

	for _, ddl := range []string{lite, pg} {
		if !strings.HasPrefix(ddl, "CREATE TABLE inventory_transactions") {
			t.Errorf("unexpected DDL prefix:\n%s", ddl)
		}
		for _, name := range Header() {
			if !strings.Contains(ddl, name) {
				t.Errorf("DDL missing column %s", name)
			}
		}
		// Booleans stay 0/1 integers on both backends.
		if !strings.Contains(ddl, "has_defect") || strings.Contains(ddl, "BOOLEAN") {
			t.Errorf("boolean column must be INTEGER:\n%s", ddl)
		}
		// Dates stay ISO-8601 text so SUBSTR month grouping is portable.
		if strings.Contains(ddl, "TIMESTAMP") {
			t.Errorf("date column must be TEXT:\n%s", ddl)
		}
	}

	if !strings.Contains(lite, "REAL") {
		t.Errorf("sqlite float type missing:\n%s", lite)
	}
	if !strings.Contains(pg, "DOUBLE PRECISION") {
		t.Errorf("postgres float type missing:\n%s", pg)
	}
}

func TestInsertSQLPlaceholders(t *testing.T) {
	lite := InsertSQL(DialectSQLite)
	if strings.Count(lite, "?") != NumColumns() {
		t.Errorf("sqlite insert has %d placeholders, want %d:\n%s",
			strings.Count(lite, "?"), NumColumns(), lite)
	}

	pg := InsertSQL(DialectPostgres)
	if !strings.Contains(pg, "$1") || !strings.Contains(pg, "$15") {
		t.Errorf("postgres insert placeholders wrong:\n%s", pg)
	}
}
