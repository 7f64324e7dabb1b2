package ui

import (
	"fmt"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
)

const (
	chartHours  = 24
	chartHeight = 8
)

// chartWindow returns up to chartHours slots starting at the cursor
func chartWindow(cursor, total int) (int, int) {
	start := cursor
	if start+chartHours > total {
		start = total - chartHours
	}
	if start < 0 {
		start = 0
	}
	end := start + chartHours
	if end > total {
		end = total
	}
	return start, end
}

// renderPrecipitationChart renders hourly precipitation as a bar chart
func (m Model) renderPrecipitationChart(width int) string {
	if m.bundle == nil {
		return ""
	}
	h := m.bundle.Hourly
	start, end := chartWindow(m.cursor(), h.Len())

	unit := m.bundle.HourlyUnits.Precipitation
	header := titleStyle.Render("Precipitation")
	if unit != "" {
		header += "  " + mutedStyle.Render(fmt.Sprintf("(%s)", unit))
	}

	total := 0.0
	for i := start; i < end; i++ {
		total += h.Precipitation[i]
	}
	if total == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header,
			mutedStyle.Render("No precipitation expected in the next 24 hours"))
	}

	// 24 bars with a gap of one column each
	barWidth := (width - chartHours) / chartHours
	if barWidth < 2 {
		barWidth = 2
	}
	layout := "15"
	if barWidth >= 5 {
		layout = "15:04"
	}

	data := make([]barchart.BarData, 0, end-start)
	for i := start; i < end; i++ {
		data = append(data, barchart.BarData{
			Label: h.Time[i].Format(layout),
			Values: []barchart.BarValue{{
				Name:  "precipitation",
				Value: h.Precipitation[i],
				Style: chartBarStyle,
			}},
		})
	}

	chartWidth := (barWidth + 1) * len(data)
	bc := barchart.New(chartWidth, chartHeight,
		barchart.WithDataSet(data),
		barchart.WithBarWidth(barWidth),
		barchart.WithBarGap(1),
		barchart.WithStyles(chartAxisStyle, mutedStyle),
	)
	bc.Draw()

	peak := 0.0
	for _, d := range data {
		if v := d.Values[0].Value; v > peak {
			peak = v
		}
	}
	caption := mutedStyle.Render(fmt.Sprintf("Peak %.1f %s", peak, unit))

	return lipgloss.JoinVertical(lipgloss.Left, header, bc.View(), caption)
}
