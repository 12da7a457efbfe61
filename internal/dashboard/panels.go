//-------------------------------------------------------------------------
//
// defectaudit - Inventory Defect Analysis
//
// Copyright (c) 2026, the defectaudit authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package dashboard

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/invops/defectaudit/internal/analysis"
)

// rootCausePanel charts defect incident counts per root cause.
func rootCausePanel(causes []analysis.RootCause, cfg Config) (image.Image, error) {
	if len(causes) == 0 {
		return nil, fmt.Errorf("no defects to chart")
	}

	bars := make([]chart.Value, len(causes))
	for i, c := range causes {
		bars[i] = chart.Value{
			Label: string(c.DefectType),
			Value: float64(c.IncidentCount),
		}
	}

	graph := chart.BarChart{
		Title:    "Defects by Root Cause",
		Width:    cfg.PanelWidth,
		Height:   cfg.PanelHeight,
		BarWidth: barWidth(cfg.PanelWidth, len(bars)),
		Bars:     bars,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
	}
	return renderChart(&graph)
}

// warehousePanel charts defect rates per warehouse with the target rate as a
// horizontal reference line.
func warehousePanel(perf analysis.WarehousePerformance, cfg Config) (image.Image, error) {
	if len(perf.Warehouses) == 0 {
		return nil, fmt.Errorf("no warehouses to chart")
	}

	bars := make([]chart.Value, len(perf.Warehouses))
	maxRate := cfg.TargetDefectRate
	for i, w := range perf.Warehouses {
		bars[i] = chart.Value{Label: w.Warehouse, Value: w.DefectRate}
		if w.DefectRate > maxRate {
			maxRate = w.DefectRate
		}
	}

	graph := chart.BarChart{
		Title:    "Warehouse Defect Rate (%)",
		Width:    cfg.PanelWidth,
		Height:   cfg.PanelHeight,
		BarWidth: barWidth(cfg.PanelWidth, len(bars)),
		Bars:     bars,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxRate * 1.2},
			GridMajorStyle: chart.Style{
				Hidden:          false,
				StrokeColor:     chart.ColorRed,
				StrokeWidth:     1.5,
				StrokeDashArray: []float64{5.0, 5.0},
			},
			GridLines: []chart.GridLine{{Value: cfg.TargetDefectRate}},
		},
	}
	return renderChart(&graph)
}

// trendPanel charts the monthly defect rate. A line needs two months.
func trendPanel(trends []analysis.MonthlyTrend, cfg Config) (image.Image, error) {
	if len(trends) < 2 {
		return nil, fmt.Errorf("need at least two months, have %d", len(trends))
	}

	xs := make([]float64, len(trends))
	ys := make([]float64, len(trends))
	ticks := make([]chart.Tick, len(trends))
	for i, m := range trends {
		xs[i] = float64(i)
		ys[i] = m.DefectRate
		ticks[i] = chart.Tick{Value: float64(i), Label: m.Month}
	}

	graph := chart.Chart{
		Title:  "Monthly Defect Rate (%)",
		Width:  cfg.PanelWidth,
		Height: cfg.PanelHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{Ticks: ticks},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2.0,
					DotColor:    chart.ColorBlue,
					DotWidth:    3.0,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}
	return renderChart(&graph)
}

// entryMethodPanel charts the defect share per entry method.
func entryMethodPanel(impact analysis.EntryMethodImpact, cfg Config) (image.Image, error) {
	values := make([]chart.Value, 0, len(impact.Methods))
	total := 0
	for _, m := range impact.Methods {
		if m.DefectCount == 0 {
			continue
		}
		total += m.DefectCount
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%d)", m.Method, m.DefectCount),
			Value: float64(m.DefectCount),
		})
	}
	if total == 0 {
		return nil, fmt.Errorf("no defects to chart")
	}

	graph := chart.PieChart{
		Title:  "Defects by Entry Method",
		Width:  cfg.PanelWidth,
		Height: cfg.PanelHeight,
		Values: values,
	}
	return renderChart(&graph)
}

// severityPanel charts incident counts per severity band.
func severityPanel(buckets []analysis.SeverityBucket, cfg Config) (image.Image, error) {
	total := 0
	bars := make([]chart.Value, len(buckets))
	for i, s := range buckets {
		total += s.IncidentCount
		bars[i] = chart.Value{Label: s.Label, Value: float64(s.IncidentCount)}
	}
	if total == 0 {
		return nil, fmt.Errorf("no defects to chart")
	}

	graph := chart.BarChart{
		Title:    "Defect Severity Distribution",
		Width:    cfg.PanelWidth,
		Height:   cfg.PanelHeight,
		BarWidth: barWidth(cfg.PanelWidth, len(bars)),
		Bars:     bars,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
	}
	return renderChart(&graph)
}

// renderChart draws a go-chart graph and decodes it back to an image for
// compositing.
func renderChart(graph interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}) (image.Image, error) {
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("chart decode failed: %w", err)
	}
	return img, nil
}

// barWidth spreads the bars across roughly two thirds of the panel.
func barWidth(panelWidth, bars int) int {
	if bars == 0 {
		return 1
	}
	w := panelWidth * 2 / 3 / bars
	if w < 10 {
		w = 10
	}
	return w
}
