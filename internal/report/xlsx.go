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
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/invops/defectaudit/internal/analysis"
)

// DefaultWorkbookName is the analysis workbook written next to the text
// report.
const DefaultWorkbookName = "defect_analysis.xlsx"

// WriteWorkbook exports every analysis view to an XLSX workbook, one sheet
// per view plus a summary sheet.
func WriteWorkbook(path string, data AnalysisData) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		return fmt.Errorf("failed to rename summary sheet: %w", err)
	}
	if err := writeSummarySheet(f, data); err != nil {
		return err
	}

	sheets := []struct {
		name   string
		header []string
		rows   [][]any
	}{
		{"Root Causes",
			[]string{"Defect Type", "Incidents", "Avg |Variance|", "Share %"},
			rootCauseRows(data.RootCauses)},
		{"Monthly Trends",
			[]string{"Month", "Transactions", "Defects", "Defect Rate %"},
			trendRows(data.Trends)},
		{"Warehouses",
			[]string{"Warehouse", "Transactions", "Defects", "Avg |Variance|",
				"Defect Rate %", "Accuracy %"},
			warehouseRows(data.Warehouses.Warehouses)},
		{"Entry Methods",
			[]string{"Entry Method", "Transactions", "Defects", "Defect Rate %"},
			entryMethodRows(data.EntryMethods.Methods)},
		{"Operators",
			[]string{"Operator", "Manual Transactions", "Errors", "Error Rate %"},
			operatorRows(data.Operators)},
		{"Severity",
			[]string{"Severity", "Incidents", "Avg |Variance|"},
			severityRows(data.Severity)},
	}

	for _, s := range sheets {
		if err := writeSheet(f, s.name, s.header, s.rows); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, data AnalysisData) error {
	rows := [][]any{
		{"Total records", data.Summary.TotalRecords},
		{"Total defects", data.Summary.TotalDefects},
		{"Defect rate %", round2(data.Summary.DefectRate)},
		{"Accuracy rate %", round2(data.Summary.AccuracyRate)},
		{"Data integrity score %", round2(data.Integrity.Score)},
		{"Missing cells", data.Integrity.MissingCells},
		{"Best warehouse", data.Warehouses.Best},
		{"Worst warehouse", data.Warehouses.Worst},
	}
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("failed to build cell name: %w", err)
			}
			if err := f.SetCellValue("Summary", cell, v); err != nil {
				return fmt.Errorf("failed to write summary cell %s: %w", cell, err)
			}
		}
	}
	return nil
}

func writeSheet(f *excelize.File, name string, header []string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", name, err)
	}

	for j, h := range header {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return fmt.Errorf("failed to build cell name: %w", err)
		}
		if err := f.SetCellValue(name, cell, h); err != nil {
			return fmt.Errorf("failed to write header on %q: %w", name, err)
		}
	}

	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return fmt.Errorf("failed to build cell name: %w", err)
			}
			if err := f.SetCellValue(name, cell, v); err != nil {
				return fmt.Errorf("failed to write cell %s on %q: %w", cell, name, err)
			}
		}
	}
	return nil
}

func rootCauseRows(causes []analysis.RootCause) [][]any {
	rows := make([][]any, len(causes))
	for i, c := range causes {
		rows[i] = []any{string(c.DefectType), c.IncidentCount,
			round2(c.AvgAbsVariance), round2(c.Percentage)}
	}
	return rows
}

func trendRows(trends []analysis.MonthlyTrend) [][]any {
	rows := make([][]any, len(trends))
	for i, m := range trends {
		rows[i] = []any{m.Month, m.Transactions, m.Defects, round2(m.DefectRate)}
	}
	return rows
}

func warehouseRows(stats []analysis.WarehouseStat) [][]any {
	rows := make([][]any, len(stats))
	for i, w := range stats {
		rows[i] = []any{w.Warehouse, w.Transactions, w.DefectCount,
			round2(w.AvgAbsVariance), round2(w.DefectRate), round2(w.AccuracyRate)}
	}
	return rows
}

func entryMethodRows(stats []analysis.EntryMethodStat) [][]any {
	rows := make([][]any, len(stats))
	for i, m := range stats {
		rows[i] = []any{string(m.Method), m.Transactions, m.DefectCount,
			round2(m.DefectRate)}
	}
	return rows
}

func operatorRows(ops []analysis.OperatorStat) [][]any {
	rows := make([][]any, len(ops))
	for i, o := range ops {
		rows[i] = []any{o.OperatorID, o.Transactions, o.Errors, round2(o.ErrorRate)}
	}
	return rows
}

func severityRows(buckets []analysis.SeverityBucket) [][]any {
	rows := make([][]any, len(buckets))
	for i, s := range buckets {
		rows[i] = []any{s.Label, s.IncidentCount, round2(s.AvgAbsVariance)}
	}
	return rows
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
