package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

var compassPoints = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// compassPoint converts a bearing in degrees to a 16-point compass direction
func compassPoint(degrees float64) string {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	idx := int(math.Round(d/22.5)) % len(compassPoints)
	return compassPoints[idx]
}

// renderDetailsPane renders the secondary measurements of the snapshot
func (m Model) renderDetailsPane(width int) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("Details"))
	content.WriteString("\n\n")

	snap := m.snapshot
	if snap == nil || m.bundle == nil {
		content.WriteString(mutedStyle.Render("No details available"))
		return paneStyle.Width(width).Render(content.String())
	}

	idx, hourly := snap.Selection.Index()
	current, hours := m.bundle.CurrentUnits, m.bundle.HourlyUnits
	unit := func(series []*float64, hourlyUnit, currentUnit string) string {
		if hourly && idx < len(series) && series[idx] != nil {
			return hourlyUnit
		}
		return currentUnit
	}
	precipUnit := current.Precipitation
	if hourly {
		precipUnit = hours.Precipitation
	}

	rows := []struct {
		label string
		value string
	}{
		{"Feels like", formatOptionalTemperature(snap.ApparentTemperature, m.unit)},
		{"Humidity", formatMeasurement(snap.Humidity, "%.0f",
			unit(m.bundle.Hourly.Humidity, hours.Humidity, current.Humidity))},
		{"Cloud cover", formatMeasurement(snap.CloudCover, "%.0f",
			unit(m.bundle.Hourly.CloudCover, hours.CloudCover, current.CloudCover))},
		{"Wind", formatMeasurement(snap.WindSpeed, "%.1f",
			unit(m.bundle.Hourly.WindSpeed, hours.WindSpeed, current.WindSpeed))},
		{"Direction", formatWindDirection(snap.WindDirection)},
		{"Precipitation", formatMeasurement(snap.Precipitation, "%.1f", precipUnit)},
	}

	for _, r := range rows {
		content.WriteString(labelStyle.Render(fmt.Sprintf("%-14s", r.label)))
		content.WriteString(valueStyle.Render(r.value))
		content.WriteString("\n")
	}

	return paneStyle.Width(width).Render(strings.TrimRight(content.String(), "\n"))
}

func formatOptionalTemperature(v *float64, unit models.TemperatureUnit) string {
	if v == nil {
		return "--"
	}
	return formatTemperature(*v, unit)
}

// formatMeasurement renders a value with its provider unit, "--" when unknown
func formatMeasurement(v *float64, format, unit string) string {
	if v == nil {
		return "--"
	}
	s := fmt.Sprintf(format, *v)
	if unit == "" {
		return s
	}
	if unit == "%" {
		return s + unit
	}
	return s + " " + unit
}

func formatWindDirection(v *float64) string {
	if v == nil {
		return "--"
	}
	return fmt.Sprintf("%.0f° %s", *v, compassPoint(*v))
}
