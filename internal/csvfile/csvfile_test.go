//-------------------------------------------------------------------------
//
// defectaudit - Inventory Defect Analysis
//
// Copyright (c) 2026, the defectaudit authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package csvfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/invops/defectaudit/internal/inventory"
)

func sampleTransactions() []inventory.Transaction {
	return []inventory.Transaction{
		{
			ID:          1,
			Date:        time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC),
			Warehouse:   "WH-A",
			SKU:         "SKU-1234",
			ExpectedQty: 100,
			ActualQty:   160,
			Location:    "Aisle-3-Bin-17",
			OperatorID:  "OP-007",
			EntryMethod: inventory.EntryScanner,
			QtyVariance: 60,
			HasDefect:   true,
			DefectType:  inventory.DefectCountDiscrepancy,
			IsDamaged:   false, LabelMissing: true,
			WarehouseDefectRate: 12.5,
		},
		{
			ID:          2,
			Date:        time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			Warehouse:   "WH-D",
			SKU:         "SKU-9999",
			ExpectedQty: 50,
			ActualQty:   52,
			Location:    "Aisle-1-Bin-2",
			OperatorID:  "OP-050",
			EntryMethod: inventory.EntryManual,
			QtyVariance: 2,
			HasDefect:   false,
			DefectType:  inventory.NoDefect,
			WarehouseDefectRate: 8.25,
		},
	}
}

func TestWriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	want := sampleTransactions()

	if err := Write(path, want); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, missing, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d differs:\n got %+v\nwant %+v", i, got[i], want[i])
		}
	}
	if missing.Total() != 0 {
		t.Errorf("unexpected missing cells: %v", missing.PerColumn)
	}
}

func TestReadRejectsSchemaDrift(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drifted.csv")
	content := "transaction_id,when,warehouse\n1,2024-01-01,WH-A\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := Read(path)
	if err == nil {
		t.Fatal("drifted header accepted")
	}
	if !strings.Contains(err.Error(), "schema mismatch") {
		t.Errorf("error %q does not name the schema mismatch", err)
	}
}

func TestReadCountsMissingCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	txns := sampleTransactions()
	if err := Write(path, txns); err != nil {
		t.Fatal(err)
	}

	// Blank out the second row's operator_id and sku.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	mangled := strings.Replace(string(data), "OP-050", "", 1)
	mangled = strings.Replace(mangled, "SKU-9999", "", 1)
	if err := os.WriteFile(path, []byte(mangled), 0o644); err != nil {
		t.Fatal(err)
	}

	got, missing, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if missing.PerColumn["operator_id"] != 1 {
		t.Errorf("operator_id missing count = %d, want 1", missing.PerColumn["operator_id"])
	}
	if missing.PerColumn["sku"] != 1 {
		t.Errorf("sku missing count = %d, want 1", missing.PerColumn["sku"])
	}
	if missing.Total() != 2 {
		t.Errorf("total missing = %d, want 2", missing.Total())
	}
	if got[1].OperatorID != "" {
		t.Errorf("missing operator_id parsed as %q", got[1].OperatorID)
	}
}

func TestReadRejectsBadCell(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	if err := Write(path, sampleTransactions()); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	mangled := strings.Replace(string(data), "2024-02-14", "not-a-date", 1)
	if err := os.WriteFile(path, []byte(mangled), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := Read(path); err == nil {
		t.Fatal("unparseable date accepted")
	}
}

func TestLocate(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Locate(DefaultFileName, []string{other, dir})
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if got != path {
		t.Errorf("Locate = %q, want %q", got, path)
	}
}

func TestLocateMissing(t *testing.T) {
	_, err := Locate(DefaultFileName, []string{t.TempDir()})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
