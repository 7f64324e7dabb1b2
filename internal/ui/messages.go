package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/weather-terminal/internal/geocoding"
	"github.com/ngmaloney/weather-terminal/internal/geolocation"
	"github.com/ngmaloney/weather-terminal/internal/models"
	"github.com/ngmaloney/weather-terminal/internal/openmeteo"
)

// origin identifies the action chain a response belongs to
type origin int

const (
	originLocate origin = iota // device position, initial load or relocate
	originSearch               // text search
)

const (
	locateTimeout   = 15 * time.Second
	searchTimeout   = 10 * time.Second
	forecastTimeout = 30 * time.Second
)

// locateMsg is sent when the device position lookup completes
type locateMsg struct {
	gen uint64
	fix *geolocation.Fix
	err error
}

// searchResultMsg is sent when geocoding a search query completes
type searchResultMsg struct {
	gen      uint64
	query    string
	location *geocoding.Location
	err      error
}

// forecastMsg is sent when a forecast fetch completes
type forecastMsg struct {
	gen    uint64
	origin origin
	bundle *models.ForecastBundle
	err    error
}

// clockMsg refreshes the live snapshot and relative timestamps
type clockMsg time.Time

// locateDevice asks the locator for a single fix
func locateDevice(locator geolocation.Locator, gen uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), locateTimeout)
		defer cancel()

		fix, err := locator.Locate(ctx)
		return locateMsg{gen: gen, fix: fix, err: err}
	}
}

// searchLocation geocodes query in the background
func searchLocation(resolver geocoding.Resolver, query string, gen uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()

		location, err := resolver.Geocode(ctx, query)
		return searchResultMsg{gen: gen, query: query, location: location, err: err}
	}
}

// fetchForecast fetches the forecast for coords. place is attached to the bundle
// for search results and nil for the device position.
func fetchForecast(client openmeteo.ForecastClient, coords models.Coordinates, place *models.Location, gen uint64, from origin) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), forecastTimeout)
		defer cancel()

		bundle, err := client.Fetch(ctx, coords)
		if err == nil {
			bundle.Location = place
		}
		return forecastMsg{gen: gen, origin: from, bundle: bundle, err: err}
	}
}

func tickClock() tea.Cmd {
	return tea.Every(time.Minute, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}
