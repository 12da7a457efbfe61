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
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/invops/defectaudit/internal/logging"
	"github.com/invops/defectaudit/internal/store"
)

// SectionResult is the outcome of one battery query. A failed query keeps
// its error here; it never aborts the battery.
type SectionResult struct {
	Query     Query
	Resultset *store.Resultset
	Err       error
}

// RunBattery executes the full query battery against the store. Each query
// is isolated: a failure is logged with its cause and the remaining queries
// still run.
func RunBattery(ctx context.Context, st store.Store, opts Options) []SectionResult {
	queries := Battery(opts)
	results := make([]SectionResult, 0, len(queries))

	for _, q := range queries {
		rs, err := st.Select(ctx, q.SQL)
		if err != nil {
			logging.Error().
				Err(err).
				Str("query", q.Name).
				Msg("Query failed; skipping section")
		}
		results = append(results, SectionResult{Query: q, Resultset: rs, Err: err})
	}
	return results
}

// WriteSQLReport renders the battery results as titled sections.
func WriteSQLReport(w io.Writer, results []SectionResult, generatedAt time.Time) error {
	var b strings.Builder
	b.WriteString("INVENTORY DEFECT ANALYSIS - SQL QUERY RESULTS\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", generatedAt.Format(time.RFC3339))

	for _, r := range results {
		var body string
		switch {
		case r.Err != nil:
			body = fmt.Sprintf("section skipped: %v\n", r.Err)
		case r.Resultset == nil || len(r.Resultset.Rows) == 0:
			body = "(no data)\n"
		default:
			body = renderResultset(r.Resultset)
		}
		b.WriteString(section(r.Query.Title, body))
		b.WriteString("\n")
	}

	b.WriteString(keyFindings(results))

	_, err := io.WriteString(w, b.String())
	return err
}

// keyFindings pulls the headline numbers out of the battery results, when
// the sections that carry them succeeded and returned rows.
func keyFindings(results []SectionResult) string {
	byName := make(map[string]SectionResult, len(results))
	for _, r := range results {
		byName[r.Query.Name] = r
	}

	var b strings.Builder
	b.WriteString("Key findings:\n")
	found := false

	if r, ok := byName["overall_summary"]; ok && r.Err == nil && len(r.Resultset.Rows) > 0 {
		row := r.Resultset.Rows[0]
		fmt.Fprintf(&b, "  - Total records: %s\n", formatValue(row[0]))
		fmt.Fprintf(&b, "  - Total defects: %s\n", formatValue(row[1]))
		fmt.Fprintf(&b, "  - Defect rate: %s%%\n", formatValue(row[2]))
		fmt.Fprintf(&b, "  - Accuracy rate: %s%%\n", formatValue(row[3]))
		found = true
	}
	if r, ok := byName["root_cause"]; ok && r.Err == nil && len(r.Resultset.Rows) > 0 {
		row := r.Resultset.Rows[0]
		fmt.Fprintf(&b, "  - Top root cause: %s (%s%% of all defects)\n",
			formatValue(row[0]), formatValue(row[3]))
		found = true
	}
	if r, ok := byName["warehouse_performance"]; ok && r.Err == nil && len(r.Resultset.Rows) > 0 {
		best := r.Resultset.Rows[0]
		worst := r.Resultset.Rows[len(r.Resultset.Rows)-1]
		fmt.Fprintf(&b, "  - Best warehouse: %s (%s%% accuracy)\n",
			formatValue(best[0]), formatValue(best[4]))
		fmt.Fprintf(&b, "  - Needs work: %s (%s%% defect rate)\n",
			formatValue(worst[0]), formatValue(worst[3]))
		found = true
	}

	if !found {
		b.WriteString("  (no data)\n")
	}
	return b.String()
}
