//-------------------------------------------------------------------------
//
// defectaudit - Inventory Defect Analysis
//
// Copyright (c) 2026, the defectaudit authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package report

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/invops/defectaudit/internal/analysis"
	"github.com/invops/defectaudit/internal/inventory"
	"github.com/invops/defectaudit/internal/store"
)

// fakeStore fails a configurable subset of queries and returns a canned
// resultset for the rest.
type fakeStore struct {
	failing  map[string]bool
	executed []string
}

func (f *fakeStore) Replace(context.Context, []inventory.Transaction) error { return nil }
func (f *fakeStore) Count(context.Context) (int64, error)                   { return 0, nil }
func (f *fakeStore) SaveMetadata(context.Context, map[string]string) error  { return nil }
func (f *fakeStore) Metadata(context.Context) (map[string]string, error)    { return nil, nil }
func (f *fakeStore) Close() error                                           { return nil }

func (f *fakeStore) Select(_ context.Context, query string) (*store.Resultset, error) {
	f.executed = append(f.executed, query)
	for name := range f.failing {
		if strings.Contains(query, name) {
			return nil, fmt.Errorf("forced failure: %s", name)
		}
	}
	return &store.Resultset{
		Columns: []string{"a", "b"},
		Rows:    [][]any{{int64(1), 2.5}},
	}, nil
}

func TestBatteryShape(t *testing.T) {
	queries := Battery(DefaultOptions())
	if len(queries) != 7 {
		t.Fatalf("battery has %d queries, want 7", len(queries))
	}

	wantOrder := []string{
		"overall_summary", "root_cause", "warehouse_performance",
		"entry_method", "operator_ranking", "severity", "monthly_trends",
	}
	for i, q := range queries {
		if q.Name != wantOrder[i] {
			t.Errorf("query %d = %q, want %q", i, q.Name, wantOrder[i])
		}
		if q.SQL == "" || q.Title == "" {
			t.Errorf("query %q missing SQL or title", q.Name)
		}
	}
}

func TestBatteryOperatorParams(t *testing.T) {
	opts := Options{
		MinOperatorTransactions: 42,
		TopOperators:            3,
		Bands:                   analysis.DefaultBands(),
	}
	for _, q := range Battery(opts) {
		if q.Name != "operator_ranking" {
			continue
		}
		if !strings.Contains(q.SQL, "HAVING COUNT(*) > 42") {
			t.Errorf("missing volume floor:\n%s", q.SQL)
		}
		if !strings.Contains(q.SQL, "LIMIT 3") {
			t.Errorf("missing ranking cap:\n%s", q.SQL)
		}
		return
	}
	t.Fatal("operator_ranking query not found")
}

// The severity CASE must carry the configured band bounds, so the SQL path
// bands identically to the in-memory path.
func TestSeverityCaseFromBands(t *testing.T) {
	sql := severityCaseSQL(analysis.DefaultBands())
	for _, want := range []string{
		"ABS(qty_variance) <= 10 THEN 'Low'",
		"ABS(qty_variance) <= 25 THEN 'Medium'",
		"ABS(qty_variance) <= 50 THEN 'High'",
		"ELSE 'Critical'",
	} {
		if !strings.Contains(sql, want) {
			t.Errorf("severity CASE missing %q:\n%s", want, sql)
		}
	}
}

// The severity query must group and order without referencing the severity
// alias inside an expression, which sqlite tolerates but postgres rejects.
func TestSeverityQueryAgainstStore(t *testing.T) {
	st, err := store.Open(context.Background(),
		store.Config{Driver: store.DriverSQLite, Path: filepath.Join(t.TempDir(), "severity.db")})
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	// One defect per band: |variance| 8, 20, 40, 100.
	mk := func(id int64, expected, actual int) inventory.Transaction {
		c := inventory.Classify(expected, actual, inventory.EntryManual)
		return inventory.Transaction{
			ID: id, Date: mustDate("2024-01-15"), Warehouse: "WH-A",
			SKU: "SKU-1000", ExpectedQty: expected, ActualQty: actual,
			OperatorID: "OP-001", EntryMethod: inventory.EntryManual,
			QtyVariance: c.Variance, HasDefect: c.HasDefect, DefectType: c.DefectType,
		}
	}
	txns := []inventory.Transaction{
		mk(1, 100, 108), mk(2, 100, 120), mk(3, 100, 140), mk(4, 100, 200),
	}
	if err := st.Replace(context.Background(), txns); err != nil {
		t.Fatal(err)
	}

	var severitySQL string
	for _, q := range Battery(DefaultOptions()) {
		if q.Name == "severity" {
			severitySQL = q.SQL
		}
	}
	if severitySQL == "" {
		t.Fatal("severity query not found")
	}
	if strings.Contains(severitySQL, "CASE severity") {
		t.Fatalf("ORDER BY references the output alias inside an expression:\n%s", severitySQL)
	}

	rs, err := st.Select(context.Background(), severitySQL)
	if err != nil {
		t.Fatal(err)
	}
	if len(rs.Rows) != 4 {
		t.Fatalf("got %d severity rows, want 4", len(rs.Rows))
	}
	wantOrder := []string{"Low", "Medium", "High", "Critical"}
	for i, row := range rs.Rows {
		if got := fmt.Sprintf("%v", row[0]); got != wantOrder[i] {
			t.Errorf("row %d severity = %q, want %q", i, got, wantOrder[i])
		}
	}
}

func TestRunBatteryIsolatesFailures(t *testing.T) {
	st := &fakeStore{failing: map[string]bool{"defect_type": true}}
	results := RunBattery(context.Background(), st, DefaultOptions())

	if len(results) != 7 {
		t.Fatalf("got %d results, want 7", len(results))
	}
	if len(st.executed) != 7 {
		t.Errorf("executed %d queries, want all 7", len(st.executed))
	}

	var failed, ok int
	for _, r := range results {
		if r.Err != nil {
			failed++
		} else {
			ok++
			if r.Resultset == nil {
				t.Errorf("query %q succeeded without a resultset", r.Query.Name)
			}
		}
	}
	if failed != 1 || ok != 6 {
		t.Errorf("failed=%d ok=%d, want 1/6", failed, ok)
	}
}

func TestWriteSQLReportSkipsFailedSection(t *testing.T) {
	results := []SectionResult{
		{
			Query:     Query{Name: "overall_summary", Title: "1. OVERALL DEFECT SUMMARY"},
			Resultset: &store.Resultset{Columns: []string{"total_records", "total_defects", "defect_rate_pct", "accuracy_rate_pct"}, Rows: [][]any{{int64(100), int64(7), 7.0, 93.0}}},
		},
		{
			Query: Query{Name: "root_cause", Title: "2. ROOT CAUSE ANALYSIS"},
			Err:   errors.New("no such table"),
		},
	}

	var b strings.Builder
	if err := WriteSQLReport(&b, results, time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	out := b.String()

	if !strings.Contains(out, "1. OVERALL DEFECT SUMMARY") {
		t.Error("missing successful section title")
	}
	if !strings.Contains(out, "2. ROOT CAUSE ANALYSIS") {
		t.Error("failed section title must still appear")
	}
	if !strings.Contains(out, "section skipped: no such table") {
		t.Error("missing skip notice for failed section")
	}
	if !strings.Contains(out, "Total records: 100") {
		t.Errorf("missing key finding:\n%s", out)
	}
	if !strings.Contains(out, "Defect rate: 7.00%") {
		t.Errorf("missing formatted defect rate:\n%s", out)
	}
}

func TestWriteSQLReportEmpty(t *testing.T) {
	results := []SectionResult{
		{
			Query:     Query{Name: "overall_summary", Title: "1. OVERALL DEFECT SUMMARY"},
			Resultset: &store.Resultset{Columns: []string{"a"}},
		},
	}
	var b strings.Builder
	if err := WriteSQLReport(&b, results, time.Now()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "(no data)") {
		t.Error("empty resultset should render a placeholder")
	}
}

func sampleTransactions() []inventory.Transaction {
	mk := func(id int64, month string, wh string, expected, actual int,
		method inventory.EntryMethod, op string) inventory.Transaction {

		c := inventory.Classify(expected, actual, method)
		return inventory.Transaction{
			ID:          id,
			Date:        mustDate(month + "-15"),
			Warehouse:   wh,
			SKU:         "SKU-1000",
			ExpectedQty: expected,
			ActualQty:   actual,
			Location:    "Aisle-1-Bin-1",
			OperatorID:  op,
			EntryMethod: method,
			QtyVariance: c.Variance,
			HasDefect:   c.HasDefect,
			DefectType:  c.DefectType,
		}
	}
	return []inventory.Transaction{
		mk(1, "2024-01", "WH-A", 100, 100, inventory.EntryScanner, "OP-001"),
		mk(2, "2024-01", "WH-A", 100, 112, inventory.EntryManual, "OP-001"),
		mk(3, "2024-02", "WH-B", 100, 30, inventory.EntryScanner, "OP-002"),
		mk(4, "2024-02", "WH-B", 100, 101, inventory.EntrySystem, "OP-003"),
	}
}

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestWriteAnalysisReport(t *testing.T) {
	data := BuildAnalysis(sampleTransactions(), nil,
		analysis.DefaultIntegrityThreshold, DefaultOptions())

	var b strings.Builder
	if err := WriteAnalysisReport(&b, data, time.Now()); err != nil {
		t.Fatal(err)
	}
	out := b.String()

	for _, title := range []string{
		"DATA INTEGRITY VALIDATION",
		"OVERALL DEFECT SUMMARY",
		"ROOT CAUSE ANALYSIS",
		"MONTHLY DEFECT TRENDS",
		"WAREHOUSE PERFORMANCE COMPARISON",
		"ENTRY METHOD IMPACT ANALYSIS",
		"OPERATORS NEEDING TRAINING",
		"DEFECT SEVERITY DISTRIBUTION",
	} {
		if !strings.Contains(out, title) {
			t.Errorf("report missing section %q", title)
		}
	}

	if !strings.Contains(out, "Total records: 4") {
		t.Errorf("missing record count:\n%s", out)
	}
	if !strings.Contains(out, "Best performer: WH-A") {
		t.Errorf("missing best warehouse:\n%s", out)
	}
	// No operator clears the 100-transaction floor with four records.
	if !strings.Contains(out, "(no data)") {
		t.Error("operator section should be empty at this volume")
	}
}

func TestTrendDelta(t *testing.T) {
	improving := []analysis.MonthlyTrend{
		{Month: "2024-01", Transactions: 100, Defects: 10, DefectRate: 10},
		{Month: "2024-02", Transactions: 100, Defects: 8, DefectRate: 8},
		{Month: "2024-03", Transactions: 100, Defects: 5, DefectRate: 5},
	}
	body := trendBody(improving)
	if !strings.Contains(body, "50.00% improvement in defect rate") {
		t.Errorf("missing improvement delta:\n%s", body)
	}

	worsening := []analysis.MonthlyTrend{
		{Month: "2024-01", Transactions: 100, Defects: 5, DefectRate: 5},
		{Month: "2024-02", Transactions: 100, Defects: 10, DefectRate: 10},
	}
	body = trendBody(worsening)
	if !strings.Contains(body, "100.00% increase in defect rate") {
		t.Errorf("missing increase delta:\n%s", body)
	}

	// A single month or a zero first-month rate has no delta to report.
	single := improving[:1]
	if body := trendBody(single); strings.Contains(body, "Trend:") {
		t.Errorf("single month produced a delta:\n%s", body)
	}
	zeroFirst := []analysis.MonthlyTrend{
		{Month: "2024-01", Transactions: 100, Defects: 0, DefectRate: 0},
		{Month: "2024-02", Transactions: 100, Defects: 10, DefectRate: 10},
	}
	if body := trendBody(zeroFirst); strings.Contains(body, "Trend:") {
		t.Errorf("zero first-month rate produced a delta:\n%s", body)
	}
}

func TestRound2(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{1.5, 1.5},
		{0.375, 0.38},
		{-0.375, -0.38}, // rounds away from zero, not toward it
		{-1.5, -1.5},
		{0, 0},
	}
	for _, c := range cases {
		if got := round2(c.in); got != c.want {
			t.Errorf("round2(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestWriteWorkbook(t *testing.T) {
	data := BuildAnalysis(sampleTransactions(), nil,
		analysis.DefaultIntegrityThreshold, DefaultOptions())

	path := filepath.Join(t.TempDir(), DefaultWorkbookName)
	if err := WriteWorkbook(path, data); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	wantSheets := []string{"Summary", "Root Causes", "Monthly Trends",
		"Warehouses", "Entry Methods", "Operators", "Severity"}
	got := f.GetSheetList()
	for _, want := range wantSheets {
		found := false
		for _, name := range got {
			if name == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("workbook missing sheet %q (have %v)", want, got)
		}
	}

	v, err := f.GetCellValue("Summary", "B1")
	if err != nil {
		t.Fatal(err)
	}
	if v != "4" {
		t.Errorf("Summary!B1 = %q, want 4", v)
	}

	hdr, err := f.GetCellValue("Warehouses", "A1")
	if err != nil {
		t.Fatal(err)
	}
	if hdr != "Warehouse" {
		t.Errorf("Warehouses!A1 = %q", hdr)
	}
}
