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
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/invops/defectaudit/internal/report"
)

const (
	titleFontSize = 20.0
	bodyFontSize  = 15.0
	lineSpacing   = 1.6
	textMargin    = 28
)

// metricsPanel renders the key-metrics summary as a text panel.
func metricsPanel(data report.AnalysisData, cfg Config) (image.Image, error) {
	lines := []string{
		fmt.Sprintf("Total records: %d", data.Summary.TotalRecords),
		fmt.Sprintf("Total defects: %d", data.Summary.TotalDefects),
		fmt.Sprintf("Defect rate: %.2f%%", data.Summary.DefectRate),
		fmt.Sprintf("Accuracy rate: %.2f%%", data.Summary.AccuracyRate),
		fmt.Sprintf("Data integrity: %.2f%%", data.Integrity.Score),
		"",
	}
	if data.Warehouses.Best != "" {
		lines = append(lines,
			fmt.Sprintf("Best warehouse: %s", data.Warehouses.Best),
			fmt.Sprintf("Needs work: %s", data.Warehouses.Worst),
		)
	}
	if len(data.RootCauses) > 0 {
		lines = append(lines, fmt.Sprintf("Top root cause: %s (%.1f%%)",
			data.RootCauses[0].DefectType, data.RootCauses[0].Percentage))
	}
	lines = append(lines, "",
		fmt.Sprintf("Target defect rate: %.1f%%", cfg.TargetDefectRate))

	return textPanel("KEY METRICS", lines, cfg)
}

// placeholderPanel fills a panel slot when its chart cannot be drawn.
func placeholderPanel(name string, cfg Config) (image.Image, error) {
	return textPanel(name, []string{"(no data)"}, cfg)
}

// textPanel draws a title and body lines onto a white panel.
func textPanel(title string, lines []string, cfg Config) (image.Image, error) {
	titleFont, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse title font: %w", err)
	}
	bodyFont, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse body font: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, cfg.PanelWidth, cfg.PanelHeight))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetClip(img.Bounds())
	c.SetDst(img)
	c.SetSrc(image.NewUniform(color.RGBA{R: 30, G: 30, B: 30, A: 255}))

	c.SetFont(titleFont)
	c.SetFontSize(titleFontSize)
	y := textMargin + int(titleFontSize)
	if _, err := c.DrawString(title, freetype.Pt(textMargin, y)); err != nil {
		return nil, fmt.Errorf("failed to draw title: %w", err)
	}

	c.SetFont(bodyFont)
	c.SetFontSize(bodyFontSize)
	y += int(titleFontSize * lineSpacing)
	for _, line := range lines {
		y += int(bodyFontSize * lineSpacing)
		if y > cfg.PanelHeight-textMargin {
			break
		}
		if line == "" {
			continue
		}
		if _, err := c.DrawString(line, freetype.Pt(textMargin, y)); err != nil {
			return nil, fmt.Errorf("failed to draw line: %w", err)
		}
	}
	return img, nil
}
