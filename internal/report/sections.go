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
	"strings"

	"github.com/invops/defectaudit/internal/analysis"
	"github.com/invops/defectaudit/internal/schema"
)

// Query is one entry of the SQL battery.
type Query struct {
	Name  string
	Title string
	SQL   string
}

// Options configures the tunable parts of the battery.
type Options struct {
	// MinOperatorTransactions excludes low-volume operators from the
	// ranking (strictly greater-than).
	MinOperatorTransactions int

	// TopOperators caps the operator ranking length.
	TopOperators int

	// Bands are the severity bands, shared with the in-memory path.
	Bands []analysis.Band
}

// DefaultOptions returns the reference battery parameters.
func DefaultOptions() Options {
	return Options{
		MinOperatorTransactions: 100,
		TopOperators:            10,
		Bands:                   analysis.DefaultBands(),
	}
}

// Battery returns the fixed query sequence. All SQL is portable across the
// sqlite and postgres backends: booleans are 0/1 integers, dates ISO-8601
// text, and divisions are guarded so an empty table yields empty or zero
// results instead of an execution error.
func Battery(opts Options) []Query {
	t := schema.TableName
	severityCase := severityCaseSQL(opts.Bands)

	return []Query{
		{
			Name:  "overall_summary",
			Title: "1. OVERALL DEFECT SUMMARY",
			SQL: fmt.Sprintf(`
SELECT
    COUNT(*) AS total_records,
    SUM(CASE WHEN has_defect = 1 THEN 1 ELSE 0 END) AS total_defects,
    CASE WHEN COUNT(*) = 0 THEN 0.0
         ELSE SUM(CASE WHEN has_defect = 1 THEN 1 ELSE 0 END) * 100.0 / COUNT(*)
    END AS defect_rate_pct,
    CASE WHEN COUNT(*) = 0 THEN 0.0
         ELSE 100 - SUM(CASE WHEN has_defect = 1 THEN 1 ELSE 0 END) * 100.0 / COUNT(*)
    END AS accuracy_rate_pct
FROM %s`, t),
		},
		{
			Name:  "root_cause",
			Title: "2. ROOT CAUSE ANALYSIS",
			SQL: fmt.Sprintf(`
SELECT
    defect_type,
    COUNT(*) AS incident_count,
    AVG(ABS(qty_variance)) AS avg_variance,
    COUNT(*) * 100.0 / (SELECT COUNT(*) FROM %s WHERE has_defect = 1) AS percentage
FROM %s
WHERE has_defect = 1
GROUP BY defect_type
ORDER BY incident_count DESC, defect_type ASC`, t, t),
		},
		{
			Name:  "warehouse_performance",
			Title: "3. WAREHOUSE PERFORMANCE",
			SQL: fmt.Sprintf(`
SELECT
    warehouse,
    COUNT(*) AS total_transactions,
    SUM(CASE WHEN has_defect = 1 THEN 1 ELSE 0 END) AS defect_count,
    SUM(CASE WHEN has_defect = 1 THEN 1 ELSE 0 END) * 100.0 / COUNT(*) AS defect_rate,
    100 - SUM(CASE WHEN has_defect = 1 THEN 1 ELSE 0 END) * 100.0 / COUNT(*) AS accuracy_rate
FROM %s
GROUP BY warehouse
ORDER BY defect_rate ASC, warehouse ASC`, t),
		},
		{
			Name:  "entry_method",
			Title: "4. ENTRY METHOD IMPACT",
			SQL: fmt.Sprintf(`
SELECT
    entry_method,
    COUNT(*) AS total_transactions,
    SUM(CASE WHEN has_defect = 1 THEN 1 ELSE 0 END) AS defect_count,
    SUM(CASE WHEN has_defect = 1 THEN 1 ELSE 0 END) * 100.0 / COUNT(*) AS defect_rate
FROM %s
GROUP BY entry_method
ORDER BY defect_rate DESC, entry_method ASC`, t),
		},
		{
			Name:  "operator_ranking",
			Title: fmt.Sprintf("5. TOP %d OPERATORS NEEDING TRAINING", opts.TopOperators),
			SQL: fmt.Sprintf(`
SELECT
    operator_id,
    COUNT(*) AS transactions,
    SUM(CASE WHEN has_defect = 1 THEN 1 ELSE 0 END) AS errors,
    SUM(CASE WHEN has_defect = 1 THEN 1 ELSE 0 END) * 100.0 / COUNT(*) AS error_rate
FROM %s
WHERE entry_method = 'Manual'
GROUP BY operator_id
HAVING COUNT(*) > %d
ORDER BY error_rate DESC, operator_id ASC
LIMIT %d`, t, opts.MinOperatorTransactions, opts.TopOperators),
		},
		{
			// Ordered by each band's minimum variance; postgres does not
			// resolve the severity alias inside an ORDER BY expression.
			Name:  "severity",
			Title: "6. DEFECT SEVERITY DISTRIBUTION",
			SQL: fmt.Sprintf(`
SELECT
    %s AS severity,
    COUNT(*) AS incident_count,
    AVG(ABS(qty_variance)) AS avg_variance
FROM %s
WHERE has_defect = 1
GROUP BY severity
ORDER BY MIN(ABS(qty_variance))`, severityCase, t),
		},
		{
			Name:  "monthly_trends",
			Title: "7. MONTHLY DEFECT TRENDS",
			SQL: fmt.Sprintf(`
SELECT
    SUBSTR(date, 1, 7) AS month,
    COUNT(*) AS total_transactions,
    SUM(CASE WHEN has_defect = 1 THEN 1 ELSE 0 END) AS defects,
    SUM(CASE WHEN has_defect = 1 THEN 1 ELSE 0 END) * 100.0 / COUNT(*) AS defect_rate
FROM %s
GROUP BY SUBSTR(date, 1, 7)
ORDER BY month`, t),
		},
	}
}

// severityCaseSQL builds the CASE expression banding |qty_variance| with the
// configured bounds. Generating it from the same bands the in-memory path
// uses keeps the two computation paths consistent.
func severityCaseSQL(bands []analysis.Band) string {
	var b strings.Builder
	b.WriteString("CASE\n")
	for _, band := range bands[:len(bands)-1] {
		fmt.Fprintf(&b, "        WHEN ABS(qty_variance) <= %d THEN '%s'\n", band.Upper, band.Label)
	}
	fmt.Fprintf(&b, "        ELSE '%s'\n    END", bands[len(bands)-1].Label)
	return b.String()
}
