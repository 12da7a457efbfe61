//-------------------------------------------------------------------------
//
// defectaudit - Inventory Defect Analysis
//
// Copyright (c) 2026, the defectaudit authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package report renders the aggregate views as titled table sections, both
// from the in-memory analysis path and from the SQL battery run against the
// relational store.
package report

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/invops/defectaudit/internal/store"
)

const sectionRule = "======================================================================"

// section renders one titled block: rule, title, rule, body.
func section(title, body string) string {
	var b strings.Builder
	b.WriteString(sectionRule + "\n")
	b.WriteString(title + "\n")
	b.WriteString(sectionRule + "\n")
	b.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

// renderTable renders a header and rows with the shared table style.
func renderTable(header []string, rows [][]string) string {
	if len(rows) == 0 {
		return "(no data)\n"
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)

	hdr := make(table.Row, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	tw.AppendHeader(hdr)

	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		tw.AppendRow(r)
	}
	return tw.Render() + "\n"
}

// renderResultset renders a store resultset, formatting driver values.
func renderResultset(rs *store.Resultset) string {
	rows := make([][]string, len(rs.Rows))
	for i, row := range rs.Rows {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = formatValue(v)
		}
		rows[i] = cells
	}
	return renderTable(rs.Columns, rows)
}

// formatValue renders a driver value for display. Floats are shown with two
// decimals, which replaces per-dialect SQL rounding.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return fmt.Sprintf("%.2f", x)
	case float32:
		return fmt.Sprintf("%.2f", x)
	case []byte:
		return string(x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

func pct(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}
