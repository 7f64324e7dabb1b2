package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/weather-terminal/internal/geocoding"
	"github.com/ngmaloney/weather-terminal/internal/geolocation"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/ui"
	"github.com/ngmaloney/weather-terminal/internal/wmo"
)

var home = models.Coordinates{Latitude: 21.0285, Longitude: 105.8542}

var zone = time.FixedZone("GMT+7", 7*3600)

// demoResolver answers a few well-known places without network access
type demoResolver map[string]geocoding.Location

func (d demoResolver) Geocode(ctx context.Context, query string) (*geocoding.Location, error) {
	loc, ok := d[query]
	if !ok {
		return nil, fmt.Errorf("%w: no results for '%s'", models.ErrNotFound, query)
	}
	return &loc, nil
}

// demoForecast generates a plausible two-day forecast for any coordinates
type demoForecast struct{}

func (demoForecast) Fetch(ctx context.Context, coords models.Coordinates) (*models.ForecastBundle, error) {
	return mockBundle(coords, time.Now().In(zone)), nil
}

func ptr(v float64) *float64 { return &v }

func mockBundle(coords models.Coordinates, now time.Time) *models.ForecastBundle {
	const hours = 48
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, zone)
	// cooler further from the equator
	base := 30 - math.Abs(coords.Latitude)/3

	units := models.Units{
		Temperature:         "°C",
		ApparentTemperature: "°C",
		Humidity:            "%",
		CloudCover:          "%",
		WindSpeed:           "km/h",
		WindDirection:       "°",
		Precipitation:       "mm",
	}

	b := &models.ForecastBundle{
		Coordinates:          coords,
		Timezone:             "Asia/Bangkok",
		TimezoneAbbreviation: "GMT+7",
		UTCOffset:            7 * 3600,
		CurrentUnits:         units,
		HourlyUnits:          units,
		FetchedAt:            now.Add(-4 * time.Minute),
	}

	h := &b.Hourly
	for i := 0; i < hours; i++ {
		hour := i % 24
		temp := base + 4*math.Sin(float64(hour-9)*math.Pi/12)
		code := 1
		precip := 0.0
		switch {
		case hour >= 14 && hour < 18:
			code = 63
			precip = 0.8 + float64(hour-14)*0.6
		case hour >= 18 && hour < 20:
			code = 61
			precip = 0.3
		case hour >= 10:
			code = 3
		}

		h.Time = append(h.Time, start.Add(time.Duration(i)*time.Hour))
		h.Temperature = append(h.Temperature, math.Round(temp*10)/10)
		h.WeatherCode = append(h.WeatherCode, code)
		h.Precipitation = append(h.Precipitation, precip)
		h.Humidity = append(h.Humidity, ptr(float64(60+hour)))
		h.CloudCover = append(h.CloudCover, ptr(float64(hour*4)))
		h.WindSpeed = append(h.WindSpeed, ptr(8+float64(hour)/2))
		h.WindDirection = append(h.WindDirection, ptr(float64(hour*15)))
		h.ApparentTemperature = append(h.ApparentTemperature, ptr(math.Round((temp+2)*10)/10))
	}

	idx, ok := h.IndexAt(now)
	if !ok {
		idx = 0
	}
	b.Current = models.CurrentObservation{
		Time:                now,
		Temperature:         h.Temperature[idx],
		WeatherCode:         h.WeatherCode[idx],
		ApparentTemperature: h.ApparentTemperature[idx],
		Humidity:            h.Humidity[idx],
		CloudCover:          h.CloudCover[idx],
		WindSpeed:           h.WindSpeed[idx],
		WindDirection:       h.WindDirection[idx],
		Precipitation:       ptr(h.Precipitation[idx]),
	}
	return b
}

// This demo shows the dashboard with generated data
func main() {
	codes, err := wmo.Default()
	if err != nil {
		fmt.Printf("Error loading weather codes: %v\n", err)
		os.Exit(1)
	}

	m := ui.NewModel(ui.Deps{
		Locator: geolocation.Static(home),
		Resolver: demoResolver{
			"Hanoi":   {Latitude: 21.0285, Longitude: 105.8542, Name: "Hà Nội, Việt Nam"},
			"Da Nang": {Latitude: 16.0544, Longitude: 108.2022, Name: "Đà Nẵng, Việt Nam"},
			"Chatham": {Latitude: 41.6821, Longitude: -69.9597, Name: "Chatham, Barnstable County, Massachusetts, United States"},
		},
		Forecast: demoForecast{},
		Codes:    codes,
		Units:    models.Celsius,
	})

	m.SetFix(&geolocation.Fix{Coordinates: home, City: "Hanoi", Country: "Vietnam"})
	if err := m.SetBundle(mockBundle(home, time.Now().In(zone))); err != nil {
		fmt.Printf("Error building demo forecast: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running demo: %v\n", err)
		os.Exit(1)
	}
}
