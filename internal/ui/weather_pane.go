package ui

import (
	"fmt"
	"strings"

	"github.com/ngmaloney/weather-terminal/internal/models"
)

// renderWeatherPane renders the headline conditions for the current snapshot
func (m Model) renderWeatherPane(width int) string {
	var content strings.Builder

	snap := m.snapshot
	if snap == nil {
		content.WriteString(mutedStyle.Render("No weather data available"))
		return paneStyle.Width(width).Render(content.String())
	}

	title := "Now"
	if !snap.Selection.IsLive() {
		title = "Forecast"
	}
	content.WriteString(titleStyle.Render(title))
	content.WriteString("  ")
	content.WriteString(mutedStyle.Render(formatSnapshotTime(snap)))
	content.WriteString("\n\n")

	content.WriteString(fmt.Sprintf("%s  %s\n",
		snap.WeatherIcon,
		temperatureStyle.Render(formatTemperature(snap.Temperature, m.unit)),
	))
	content.WriteString(valueStyle.Render(snap.WeatherDescription))
	content.WriteString("\n")

	if snap.ApparentTemperature != nil {
		content.WriteString(labelStyle.Render("Feels like "))
		content.WriteString(valueStyle.Render(formatTemperature(*snap.ApparentTemperature, m.unit)))
		content.WriteString("\n")
	}

	return paneStyle.Width(width).Render(content.String())
}

// formatTemperature converts a Celsius value for display, e.g. "31°C"
func formatTemperature(celsius float64, unit models.TemperatureUnit) string {
	return fmt.Sprintf("%d%s", models.ConvertTemperature(celsius, unit), unit.Symbol())
}

// formatSnapshotTime renders the snapshot timestamp in the forecast's zone
func formatSnapshotTime(snap *models.ForecastSnapshot) string {
	if snap.Selection.IsLive() {
		return snap.Time.Format("Mon Jan 2, 15:04 MST")
	}
	return snap.Time.Format("Mon Jan 2, 3 PM")
}

// formatHour renders an hourly slot label such as "3 PM"
func formatHour(h int) string {
	switch {
	case h == 0:
		return "12 AM"
	case h < 12:
		return fmt.Sprintf("%d AM", h)
	case h == 12:
		return "12 PM"
	default:
		return fmt.Sprintf("%d PM", h-12)
	}
}
