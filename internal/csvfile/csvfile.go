//-------------------------------------------------------------------------
//
// defectaudit - Inventory Defect Analysis
//
// Copyright (c) 2026, the defectaudit authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package csvfile reads and writes the CSV interchange file that connects
// the pipeline stages. The header is validated against the schema contract
// on every read, so column drift fails at the stage boundary.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/invops/defectaudit/internal/inventory"
	"github.com/invops/defectaudit/internal/logging"
	"github.com/invops/defectaudit/internal/schema"
)

// DefaultFileName is the interchange file name every stage agrees on.
const DefaultFileName = "raw_inventory_data.csv"

// dateLayout is the on-disk date format.
const dateLayout = "2006-01-02"

// ErrNotFound reports that the interchange file is absent from every
// candidate directory.
var ErrNotFound = errors.New("interchange file not found")

// MissingCounts tallies empty cells seen while reading, per column.
type MissingCounts struct {
	Rows      int
	PerColumn map[string]int
}

// Total returns the total number of missing cells.
func (m MissingCounts) Total() int {
	total := 0
	for _, n := range m.PerColumn {
		total += n
	}
	return total
}

// Write writes the full record set to path, header first.
func Write(path string, txns []inventory.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create interchange file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(schema.Header()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range txns {
		if err := w.Write(record(&txns[i])); err != nil {
			return fmt.Errorf("failed to write record %d: %w", txns[i].ID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush interchange file: %w", err)
	}

	logging.Info().
		Str("path", path).
		Int("records", len(txns)).
		Msg("Wrote interchange file")

	return nil
}

// record renders one transaction in schema column order.
func record(t *inventory.Transaction) []string {
	return []string{
		strconv.FormatInt(t.ID, 10),
		t.Date.Format(dateLayout),
		t.Warehouse,
		t.SKU,
		strconv.Itoa(t.ExpectedQty),
		strconv.Itoa(t.ActualQty),
		t.Location,
		t.OperatorID,
		string(t.EntryMethod),
		strconv.Itoa(t.QtyVariance),
		strconv.FormatBool(t.HasDefect),
		string(t.DefectType),
		strconv.FormatBool(t.IsDamaged),
		strconv.FormatBool(t.LabelMissing),
		strconv.FormatFloat(t.WarehouseDefectRate, 'f', -1, 64),
	}
}

// Read parses the interchange file. The header must match the schema
// contract exactly. Empty cells are tallied in MissingCounts and leave the
// zero value in the parsed record; non-empty cells that fail to parse are
// errors.
func Read(path string) ([]inventory.Transaction, MissingCounts, error) {
	missing := MissingCounts{PerColumn: make(map[string]int)}

	f, err := os.Open(path)
	if err != nil {
		return nil, missing, fmt.Errorf("failed to open interchange file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = schema.NumColumns()

	header, err := r.Read()
	if err != nil {
		return nil, missing, fmt.Errorf("failed to read header: %w", err)
	}
	if err := schema.ValidateHeader(header); err != nil {
		return nil, missing, err
	}

	var txns []inventory.Transaction
	row := 1
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, missing, fmt.Errorf("malformed row %d: %w", row+1, err)
		}
		row++

		t, err := parseRecord(rec, &missing)
		if err != nil {
			return nil, missing, fmt.Errorf("row %d: %w", row, err)
		}
		txns = append(txns, t)
	}

	missing.Rows = len(txns)
	logging.Info().
		Str("path", path).
		Int("records", len(txns)).
		Msg("Loaded interchange file")

	return txns, missing, nil
}

func parseRecord(rec []string, missing *MissingCounts) (inventory.Transaction, error) {
	var t inventory.Transaction

	cell := func(name string) (string, bool) {
		v := rec[schema.Index(name)]
		if v == "" {
			missing.PerColumn[name]++
			return "", false
		}
		return v, true
	}

	var err error
	if v, ok := cell("transaction_id"); ok {
		if t.ID, err = strconv.ParseInt(v, 10, 64); err != nil {
			return t, fmt.Errorf("transaction_id %q: %w", v, err)
		}
	}
	if v, ok := cell("date"); ok {
		if t.Date, err = time.Parse(dateLayout, v); err != nil {
			return t, fmt.Errorf("date %q: %w", v, err)
		}
	}
	if v, ok := cell("warehouse"); ok {
		t.Warehouse = v
	}
	if v, ok := cell("sku"); ok {
		t.SKU = v
	}
	if v, ok := cell("expected_qty"); ok {
		if t.ExpectedQty, err = strconv.Atoi(v); err != nil {
			return t, fmt.Errorf("expected_qty %q: %w", v, err)
		}
	}
	if v, ok := cell("actual_qty"); ok {
		if t.ActualQty, err = strconv.Atoi(v); err != nil {
			return t, fmt.Errorf("actual_qty %q: %w", v, err)
		}
	}
	if v, ok := cell("location"); ok {
		t.Location = v
	}
	if v, ok := cell("operator_id"); ok {
		t.OperatorID = v
	}
	if v, ok := cell("entry_method"); ok {
		t.EntryMethod = inventory.EntryMethod(v)
	}
	if v, ok := cell("qty_variance"); ok {
		if t.QtyVariance, err = strconv.Atoi(v); err != nil {
			return t, fmt.Errorf("qty_variance %q: %w", v, err)
		}
	}
	if v, ok := cell("has_defect"); ok {
		if t.HasDefect, err = strconv.ParseBool(v); err != nil {
			return t, fmt.Errorf("has_defect %q: %w", v, err)
		}
	}
	if v, ok := cell("defect_type"); ok {
		t.DefectType = inventory.DefectType(v)
	}
	if v, ok := cell("is_damaged"); ok {
		if t.IsDamaged, err = strconv.ParseBool(v); err != nil {
			return t, fmt.Errorf("is_damaged %q: %w", v, err)
		}
	}
	if v, ok := cell("label_missing"); ok {
		if t.LabelMissing, err = strconv.ParseBool(v); err != nil {
			return t, fmt.Errorf("label_missing %q: %w", v, err)
		}
	}
	if v, ok := cell("defect_rate"); ok {
		if t.WarehouseDefectRate, err = strconv.ParseFloat(v, 64); err != nil {
			return t, fmt.Errorf("defect_rate %q: %w", v, err)
		}
	}

	return t, nil
}

// Locate searches the candidate directories for the interchange file, in
// order, and returns the first hit. A miss returns ErrNotFound; the caller
// turns that into the "run the generator first" operator message.
func Locate(fileName string, dirs []string) (string, error) {
	if fileName == "" {
		fileName = DefaultFileName
	}
	for _, dir := range dirs {
		path := filepath.Join(dir, fileName)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			logging.Debug().Str("path", path).Msg("Found interchange file")
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: searched %v for %s", ErrNotFound, dirs, fileName)
}
