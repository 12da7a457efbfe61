//-------------------------------------------------------------------------
//
// defectaudit - Inventory Defect Analysis
//
// Copyright (c) 2026, the defectaudit authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package analysis

import (
	"sort"

	"github.com/invops/defectaudit/internal/inventory"
)

// Overall computes the headline defect summary.
func Overall(txns []inventory.Transaction) Summary {
	s := Summary{TotalRecords: len(txns)}
	for i := range txns {
		if txns[i].HasDefect {
			s.TotalDefects++
		}
	}
	if s.TotalRecords > 0 {
		s.DefectRate = float64(s.TotalDefects) / float64(s.TotalRecords) * 100
		s.AccuracyRate = 100 - s.DefectRate
	}
	return s
}

// RootCauses summarizes defective records by defect type, ordered by
// incident count descending with ties broken by type name ascending.
func RootCauses(txns []inventory.Transaction) []RootCause {
	counts := make(map[inventory.DefectType]int)
	varSums := make(map[inventory.DefectType]int)
	defects := 0

	for i := range txns {
		t := &txns[i]
		if !t.HasDefect {
			continue
		}
		defects++
		counts[t.DefectType]++
		varSums[t.DefectType] += absInt(t.QtyVariance)
	}

	out := make([]RootCause, 0, len(counts))
	for dt, n := range counts {
		out = append(out, RootCause{
			DefectType:     dt,
			IncidentCount:  n,
			AvgAbsVariance: float64(varSums[dt]) / float64(n),
			Percentage:     float64(n) / float64(defects) * 100,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IncidentCount != out[j].IncidentCount {
			return out[i].IncidentCount > out[j].IncidentCount
		}
		return out[i].DefectType < out[j].DefectType
	})
	return out
}

// MonthlyTrends groups transactions by calendar month, chronologically.
func MonthlyTrends(txns []inventory.Transaction) []MonthlyTrend {
	totals := make(map[string]int)
	defects := make(map[string]int)

	for i := range txns {
		month := txns[i].Date.Format("2006-01")
		totals[month]++
		if txns[i].HasDefect {
			defects[month]++
		}
	}

	out := make([]MonthlyTrend, 0, len(totals))
	for month, total := range totals {
		out = append(out, MonthlyTrend{
			Month:        month,
			Transactions: total,
			Defects:      defects[month],
			DefectRate:   float64(defects[month]) / float64(total) * 100,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// Warehouses compares warehouse defect and accuracy rates, ordered by defect
// rate ascending. Best and Worst are empty when the dataset is.
func Warehouses(txns []inventory.Transaction) WarehousePerformance {
	totals := make(map[string]int)
	defects := make(map[string]int)
	varSums := make(map[string]int)

	for i := range txns {
		t := &txns[i]
		totals[t.Warehouse]++
		varSums[t.Warehouse] += absInt(t.QtyVariance)
		if t.HasDefect {
			defects[t.Warehouse]++
		}
	}

	perf := WarehousePerformance{}
	for wh, total := range totals {
		rate := float64(defects[wh]) / float64(total) * 100
		perf.Warehouses = append(perf.Warehouses, WarehouseStat{
			Warehouse:      wh,
			Transactions:   total,
			DefectCount:    defects[wh],
			AvgAbsVariance: float64(varSums[wh]) / float64(total),
			DefectRate:     rate,
			AccuracyRate:   100 - rate,
		})
	}
	sort.Slice(perf.Warehouses, func(i, j int) bool {
		a, b := perf.Warehouses[i], perf.Warehouses[j]
		if a.DefectRate != b.DefectRate {
			return a.DefectRate < b.DefectRate
		}
		return a.Warehouse < b.Warehouse
	})

	if len(perf.Warehouses) > 0 {
		perf.Best = perf.Warehouses[0].Warehouse
		perf.Worst = perf.Warehouses[len(perf.Warehouses)-1].Warehouse
	}
	return perf
}

// EntryMethods compares defect rates by entry method, ordered by defect rate
// descending.
func EntryMethods(txns []inventory.Transaction) EntryMethodImpact {
	totals := make(map[inventory.EntryMethod]int)
	defects := make(map[inventory.EntryMethod]int)

	for i := range txns {
		totals[txns[i].EntryMethod]++
		if txns[i].HasDefect {
			defects[txns[i].EntryMethod]++
		}
	}

	impact := EntryMethodImpact{}
	for m, total := range totals {
		impact.Methods = append(impact.Methods, EntryMethodStat{
			Method:       m,
			Transactions: total,
			DefectCount:  defects[m],
			DefectRate:   float64(defects[m]) / float64(total) * 100,
		})
	}
	sort.Slice(impact.Methods, func(i, j int) bool {
		a, b := impact.Methods[i], impact.Methods[j]
		if a.DefectRate != b.DefectRate {
			return a.DefectRate > b.DefectRate
		}
		return a.Method < b.Method
	})

	if len(impact.Methods) > 0 {
		impact.Worst = impact.Methods[0].Method
		impact.Best = impact.Methods[len(impact.Methods)-1].Method
	}
	return impact
}

// OperatorRanking ranks operators by error rate over their Manual-entry
// transactions. Operators at or below minTransactions are excluded outright,
// whatever their rate; at most topN rows are returned, error rate descending
// with ties broken by operator ID.
func OperatorRanking(txns []inventory.Transaction, minTransactions, topN int) []OperatorStat {
	totals := make(map[string]int)
	errors := make(map[string]int)

	for i := range txns {
		t := &txns[i]
		if t.EntryMethod != inventory.EntryManual {
			continue
		}
		totals[t.OperatorID]++
		if t.HasDefect {
			errors[t.OperatorID]++
		}
	}

	out := make([]OperatorStat, 0, len(totals))
	for op, total := range totals {
		if total <= minTransactions {
			continue
		}
		out = append(out, OperatorStat{
			OperatorID:   op,
			Transactions: total,
			Errors:       errors[op],
			ErrorRate:    float64(errors[op]) / float64(total) * 100,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ErrorRate != out[j].ErrorRate {
			return out[i].ErrorRate > out[j].ErrorRate
		}
		return out[i].OperatorID < out[j].OperatorID
	})

	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

// Severity buckets defective records by variance magnitude into the given
// bands. Every band appears in the output, in band order, including empty
// ones.
func Severity(txns []inventory.Transaction, bands []Band) []SeverityBucket {
	counts := make([]int, len(bands))
	varSums := make([]int, len(bands))

	for i := range txns {
		t := &txns[i]
		if !t.HasDefect {
			continue
		}
		idx := bandIndex(bands, absInt(t.QtyVariance))
		counts[idx]++
		varSums[idx] += absInt(t.QtyVariance)
	}

	out := make([]SeverityBucket, len(bands))
	for i, b := range bands {
		out[i] = SeverityBucket{Label: b.Label, IncidentCount: counts[i]}
		if counts[i] > 0 {
			out[i].AvgAbsVariance = float64(varSums[i]) / float64(counts[i])
		}
	}
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
