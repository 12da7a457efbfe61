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
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/invops/defectaudit/internal/analysis"
	"github.com/invops/defectaudit/internal/inventory"
	"github.com/invops/defectaudit/internal/schema"
)

// AnalysisData bundles every in-memory view for rendering and export.
type AnalysisData struct {
	Integrity    analysis.IntegrityResult
	Summary      analysis.Summary
	RootCauses   []analysis.RootCause
	Trends       []analysis.MonthlyTrend
	Warehouses   analysis.WarehousePerformance
	EntryMethods analysis.EntryMethodImpact
	Operators    []analysis.OperatorStat
	Severity     []analysis.SeverityBucket
}

// BuildAnalysis computes every view over the record set.
func BuildAnalysis(txns []inventory.Transaction, missingPerColumn map[string]int,
	integrityThreshold float64, opts Options) AnalysisData {

	return AnalysisData{
		Integrity:    analysis.Integrity(len(txns), missingPerColumn, integrityThreshold),
		Summary:      analysis.Overall(txns),
		RootCauses:   analysis.RootCauses(txns),
		Trends:       analysis.MonthlyTrends(txns),
		Warehouses:   analysis.Warehouses(txns),
		EntryMethods: analysis.EntryMethods(txns),
		Operators:    analysis.OperatorRanking(txns, opts.MinOperatorTransactions, opts.TopOperators),
		Severity:     analysis.Severity(txns, opts.Bands),
	}
}

// WriteAnalysisReport renders the in-memory views as titled sections.
func WriteAnalysisReport(w io.Writer, data AnalysisData, generatedAt time.Time) error {
	var b strings.Builder
	b.WriteString("INVENTORY DEFECT ANALYSIS REPORT\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", generatedAt.Format(time.RFC3339))

	b.WriteString(section("DATA INTEGRITY VALIDATION", integrityBody(data.Integrity)))
	b.WriteString("\n")
	b.WriteString(section("OVERALL DEFECT SUMMARY", summaryBody(data.Summary)))
	b.WriteString("\n")
	b.WriteString(section("ROOT CAUSE ANALYSIS", rootCauseTable(data.RootCauses)))
	b.WriteString("\n")
	b.WriteString(section("MONTHLY DEFECT TRENDS", trendBody(data.Trends)))
	b.WriteString("\n")
	b.WriteString(section("WAREHOUSE PERFORMANCE COMPARISON", warehouseBody(data.Warehouses)))
	b.WriteString("\n")
	b.WriteString(section("ENTRY METHOD IMPACT ANALYSIS", entryMethodBody(data.EntryMethods)))
	b.WriteString("\n")
	b.WriteString(section("OPERATORS NEEDING TRAINING", operatorTable(data.Operators)))
	b.WriteString("\n")
	b.WriteString(section("DEFECT SEVERITY DISTRIBUTION", severityTable(data.Severity)))

	_, err := io.WriteString(w, b.String())
	return err
}

func integrityBody(r analysis.IntegrityResult) string {
	var b strings.Builder
	if r.TotalRecords == 0 {
		b.WriteString("No records in dataset.\n")
	}
	fmt.Fprintf(&b, "Total records: %d\n", r.TotalRecords)
	fmt.Fprintf(&b, "Missing cells: %d of %d\n", r.MissingCells, r.TotalCells)
	fmt.Fprintf(&b, "Data integrity score: %.2f%%\n", r.Score)
	if r.Passed {
		fmt.Fprintf(&b, "PASSED - meets the %.0f%% completeness threshold\n", r.Threshold)
	} else {
		fmt.Fprintf(&b, "WARNING - below the %.0f%% completeness threshold\n", r.Threshold)
	}

	b.WriteString("\nCritical fields:\n")
	for _, field := range schema.CriticalFields() {
		fmt.Fprintf(&b, "  %-12s %d missing\n", field, r.CriticalMissing[field])
	}
	return b.String()
}

func summaryBody(s analysis.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total records: %d\n", s.TotalRecords)
	fmt.Fprintf(&b, "Total defects: %d\n", s.TotalDefects)
	fmt.Fprintf(&b, "Defect rate: %s\n", pct(s.DefectRate))
	fmt.Fprintf(&b, "Accuracy rate: %s\n", pct(s.AccuracyRate))
	return b.String()
}

func rootCauseTable(causes []analysis.RootCause) string {
	rows := make([][]string, len(causes))
	for i, c := range causes {
		rows[i] = []string{
			string(c.DefectType),
			strconv.Itoa(c.IncidentCount),
			fmt.Sprintf("%.2f", c.AvgAbsVariance),
			pct(c.Percentage),
		}
	}
	return renderTable(
		[]string{"Defect Type", "Incidents", "Avg |Variance|", "Share"}, rows)
}

func trendTable(trends []analysis.MonthlyTrend) string {
	rows := make([][]string, len(trends))
	for i, m := range trends {
		rows[i] = []string{
			m.Month,
			strconv.Itoa(m.Transactions),
			strconv.Itoa(m.Defects),
			pct(m.DefectRate),
		}
	}
	return renderTable(
		[]string{"Month", "Transactions", "Defects", "Defect Rate"}, rows)
}

// trendBody renders the monthly table followed by the first-to-last month
// delta.
func trendBody(trends []analysis.MonthlyTrend) string {
	body := trendTable(trends)
	if len(trends) < 2 {
		return body
	}

	first := trends[0].DefectRate
	last := trends[len(trends)-1].DefectRate
	if first == 0 {
		return body
	}

	change := (first - last) / first * 100
	if change > 0 {
		body += fmt.Sprintf("\nTrend: %.2f%% improvement in defect rate over period\n", change)
	} else {
		body += fmt.Sprintf("\nTrend: %.2f%% increase in defect rate - investigation needed\n", -change)
	}
	return body
}

func warehouseBody(perf analysis.WarehousePerformance) string {
	rows := make([][]string, len(perf.Warehouses))
	for i, w := range perf.Warehouses {
		rows[i] = []string{
			w.Warehouse,
			strconv.Itoa(w.Transactions),
			strconv.Itoa(w.DefectCount),
			fmt.Sprintf("%.2f", w.AvgAbsVariance),
			pct(w.DefectRate),
			pct(w.AccuracyRate),
		}
	}
	body := renderTable(
		[]string{"Warehouse", "Transactions", "Defects", "Avg |Variance|",
			"Defect Rate", "Accuracy"}, rows)

	if perf.Best != "" {
		body += fmt.Sprintf("\nBest performer: %s\nNeeds improvement: %s\n",
			perf.Best, perf.Worst)
	}
	return body
}

func entryMethodBody(impact analysis.EntryMethodImpact) string {
	rows := make([][]string, len(impact.Methods))
	for i, m := range impact.Methods {
		rows[i] = []string{
			string(m.Method),
			strconv.Itoa(m.Transactions),
			strconv.Itoa(m.DefectCount),
			pct(m.DefectRate),
		}
	}
	body := renderTable(
		[]string{"Entry Method", "Transactions", "Defects", "Defect Rate"}, rows)

	if impact.Best != "" {
		body += fmt.Sprintf("\nRecommendation: transition from %s to %s entry\n",
			impact.Worst, impact.Best)
	}
	return body
}

func operatorTable(ops []analysis.OperatorStat) string {
	rows := make([][]string, len(ops))
	for i, o := range ops {
		rows[i] = []string{
			o.OperatorID,
			strconv.Itoa(o.Transactions),
			strconv.Itoa(o.Errors),
			pct(o.ErrorRate),
		}
	}
	return renderTable(
		[]string{"Operator", "Manual Transactions", "Errors", "Error Rate"}, rows)
}

func severityTable(buckets []analysis.SeverityBucket) string {
	rows := make([][]string, len(buckets))
	for i, s := range buckets {
		rows[i] = []string{
			s.Label,
			strconv.Itoa(s.IncidentCount),
			fmt.Sprintf("%.2f", s.AvgAbsVariance),
		}
	}
	return renderTable([]string{"Severity", "Incidents", "Avg |Variance|"}, rows)
}
